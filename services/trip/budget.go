package trip

import "serendibgo/models"

// ComputeTotalBudget aggregates a staff assignment into a cost breakdown.
// Pure: no I/O, no mutation of the input. Missing component lists count as
// zero cost. The stored TotalBudget on a trip request is always the output of
// this function, recomputed on every assignment mutation.
func ComputeTotalBudget(a models.StaffAssignment) models.TotalBudget {
	b := models.TotalBudget{
		GuideFees:      a.GuideFee,
		ActivityCosts:  a.ActivityCosts,
		AdditionalFees: a.AdditionalFees,
	}

	for _, v := range a.AssignedVehicles {
		b.VehicleCosts += v.DailyRate * float64(v.TotalDays)
	}
	for _, h := range a.HotelBookings {
		if h.TotalPrice > 0 {
			b.HotelCosts += h.TotalPrice
			continue
		}
		b.HotelCosts += h.PricePerNight * float64(h.Nights) * float64(h.Rooms)
	}

	b.TotalAmount = b.GuideFees + b.VehicleCosts + b.HotelCosts + b.ActivityCosts + b.AdditionalFees
	return b
}
