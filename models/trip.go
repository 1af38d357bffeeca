package models

import "time"

// Trip request statuses. A request holds exactly one status at a time and
// transitions are one-way; a rejected request is terminal.
const (
	TripStatusPending    = "pending"
	TripStatusInProgress = "in_progress"
	TripStatusApproved   = "approved"
	TripStatusRejected   = "rejected"
	TripStatusConfirmed  = "confirmed"
	TripStatusCompleted  = "completed"
)

// Trip payment statuses, tracked independently of the workflow status because
// payment settles after approval and booking materialization.
const (
	TripPaymentUnpaid  = "unpaid"
	TripPaymentPending = "pending"
	TripPaymentPaid    = "paid"
)

// ContactInfo is the customer contact block captured at submission time.
type ContactInfo struct {
	Name             string `bson:"name" json:"name"`
	Email            string `bson:"email" json:"email"`
	Phone            string `bson:"phone" json:"phone"`
	EmergencyContact string `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
}

// Activity is a customer-selected add-on with its advertised price.
type Activity struct {
	ID    string  `bson:"id" json:"id"`
	Label string  `bson:"label" json:"label"`
	Price float64 `bson:"price" json:"price"`
}

// RequestDetails is the customer-submitted portion of a trip request.
// Immutable after submission except by staff correction.
type RequestDetails struct {
	Destination         string      `bson:"destination" json:"destination"`
	Destinations        []string    `bson:"destinations,omitempty" json:"destinations,omitempty"`
	StartDate           time.Time   `bson:"startDate" json:"startDate"`
	EndDate             time.Time   `bson:"endDate" json:"endDate"`
	GroupSize           int         `bson:"groupSize" json:"groupSize"`
	BudgetCeiling       float64     `bson:"budgetCeiling" json:"budgetCeiling"`
	Interests           []string    `bson:"interests,omitempty" json:"interests,omitempty"`
	Activities          []Activity  `bson:"activities,omitempty" json:"activities,omitempty"`
	Accommodation       string      `bson:"accommodation,omitempty" json:"accommodation,omitempty"`
	Transport           []string    `bson:"transport,omitempty" json:"transport,omitempty"`
	SpecialRequests     string      `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	DietaryRequirements string      `bson:"dietaryRequirements,omitempty" json:"dietaryRequirements,omitempty"`
	Accessibility       string      `bson:"accessibility,omitempty" json:"accessibility,omitempty"`
	ContactInfo         ContactInfo `bson:"contactInfo" json:"contactInfo"`
}

// VehicleAssignment is one vehicle attached to a trip by staff.
type VehicleAssignment struct {
	VehicleID   string  `bson:"vehicleId" json:"vehicleId"`
	VehicleType string  `bson:"vehicleType,omitempty" json:"vehicleType,omitempty"`
	DriverID    string  `bson:"driverId,omitempty" json:"driverId,omitempty"`
	DailyRate   float64 `bson:"dailyRate" json:"dailyRate"`
	TotalDays   int     `bson:"totalDays" json:"totalDays"`
}

// HotelBooking is one hotel stay attached to a trip by staff.
type HotelBooking struct {
	HotelID         string    `bson:"hotelId" json:"hotelId"`
	RoomType        string    `bson:"roomType,omitempty" json:"roomType,omitempty"`
	CheckInDate     time.Time `bson:"checkInDate" json:"checkInDate"`
	CheckOutDate    time.Time `bson:"checkOutDate" json:"checkOutDate"`
	Nights          int       `bson:"nights" json:"nights"`
	Rooms           int       `bson:"rooms" json:"rooms"`
	PricePerNight   float64   `bson:"pricePerNight" json:"pricePerNight"`
	TotalPrice      float64   `bson:"totalPrice" json:"totalPrice"`
	City            string    `bson:"city,omitempty" json:"city,omitempty"`
	SpecialRequests string    `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
}

// ItineraryDay is one day of the staff-built plan.
type ItineraryDay struct {
	Day           int       `bson:"day" json:"day"`
	Date          time.Time `bson:"date" json:"date"`
	Location      string    `bson:"location,omitempty" json:"location,omitempty"`
	Activities    []string  `bson:"activities,omitempty" json:"activities,omitempty"`
	Accommodation string    `bson:"accommodation,omitempty" json:"accommodation,omitempty"`
	Meals         []string  `bson:"meals,omitempty" json:"meals,omitempty"`
	Transport     string    `bson:"transport,omitempty" json:"transport,omitempty"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// TotalBudget is the computed cost breakdown for a staff assignment. The
// stored value is always a cache of ComputeTotalBudget, never hand-edited.
type TotalBudget struct {
	GuideFees      float64 `bson:"guideFees" json:"guideFees"`
	VehicleCosts   float64 `bson:"vehicleCosts" json:"vehicleCosts"`
	HotelCosts     float64 `bson:"hotelCosts" json:"hotelCosts"`
	ActivityCosts  float64 `bson:"activityCosts" json:"activityCosts"`
	AdditionalFees float64 `bson:"additionalFees" json:"additionalFees"`
	TotalAmount    float64 `bson:"totalAmount" json:"totalAmount"`
}

// StaffAssignment is the staff-owned, mutable portion of a trip request.
type StaffAssignment struct {
	AssignedGuide    string              `bson:"assignedGuide,omitempty" json:"assignedGuide,omitempty"`
	GuideFee         float64             `bson:"guideFee" json:"guideFee"`
	AssignedVehicles []VehicleAssignment `bson:"assignedVehicles,omitempty" json:"assignedVehicles,omitempty"`
	HotelBookings    []HotelBooking      `bson:"hotelBookings,omitempty" json:"hotelBookings,omitempty"`
	ActivityCosts    float64             `bson:"activityCosts" json:"activityCosts"`
	AdditionalFees   float64             `bson:"additionalFees" json:"additionalFees"`
	TotalBudget      TotalBudget         `bson:"totalBudget" json:"totalBudget"`
	Itinerary        []ItineraryDay      `bson:"itinerary,omitempty" json:"itinerary,omitempty"`
	AdditionalNotes  string              `bson:"additionalNotes,omitempty" json:"additionalNotes,omitempty"`
	AssignedBy       string              `bson:"assignedBy,omitempty" json:"assignedBy,omitempty"`
	AssignedAt       *time.Time          `bson:"assignedAt,omitempty" json:"assignedAt,omitempty"`
}

// ApprovalDetails records the approval or rejection decision.
type ApprovalDetails struct {
	ApprovedBy      string     `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	StaffComments   string     `bson:"staffComments,omitempty" json:"staffComments,omitempty"`
	RejectionReason string     `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

// TripRequest is a customer-submitted custom trip request with its staff
// assignment and approval workflow state.
type TripRequest struct {
	ID              string          `bson:"id" json:"id"`
	CustomerID      string          `bson:"customerId" json:"customerId"`
	CustomerName    string          `bson:"customerName" json:"customerName"`
	CustomerEmail   string          `bson:"customerEmail" json:"customerEmail"`
	RequestDetails  RequestDetails  `bson:"requestDetails" json:"requestDetails"`
	StaffAssignment StaffAssignment `bson:"staffAssignment" json:"staffAssignment"`
	ApprovalDetails ApprovalDetails `bson:"approvalDetails" json:"approvalDetails"`
	Status          string          `bson:"status" json:"status"`
	PaymentStatus   string          `bson:"paymentStatus" json:"paymentStatus"`
	// BookingID is set exactly once, when a booking is materialized.
	BookingID string    `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CanBeApproved reports whether the request may be approved or rejected.
func (t *TripRequest) CanBeApproved() bool {
	return t.Status == TripStatusPending || t.Status == TripStatusInProgress
}

// CanBeConfirmed reports whether the customer may confirm the request.
func (t *TripRequest) CanBeConfirmed() bool {
	return t.Status == TripStatusApproved
}

// DurationDays returns the trip length in whole days, rounded up.
func (t *TripRequest) DurationDays() int {
	d := t.RequestDetails.EndDate.Sub(t.RequestDetails.StartDate)
	days := int(d.Hours() / 24)
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// TripStatistics is the staff dashboard count breakdown.
type TripStatistics struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Approved   int64 `json:"approved"`
	Rejected   int64 `json:"rejected"`
	InProgress int64 `json:"inProgress"`
	Confirmed  int64 `json:"confirmed"`
	Completed  int64 `json:"completed"`
}

// Bulk staff actions over trip requests.
const (
	BulkActionApprove = "approve"
	BulkActionReject  = "reject"
	BulkActionDelete  = "delete"
)

// BulkActionResult summarizes a batch action. Errors maps trip id to the
// per-trip failure; trips that failed are not counted as processed.
type BulkActionResult struct {
	Processed int               `json:"processed"`
	Errors    map[string]string `json:"errors,omitempty"`
}
