package trip

import (
	"context"
	"fmt"
	"time"

	"serendibgo/models"
	"serendibgo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit validates and persists a new custom trip request for the actor.
func (s *DefaultTripService) Submit(ctx context.Context, actor models.Actor, in SubmitTripInput) (*models.TripRequest, error) {
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return nil, utils.ValidationError{Message: fmt.Sprintf("invalid start date: %s", in.StartDate)}
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return nil, utils.ValidationError{Message: fmt.Sprintf("invalid end date: %s", in.EndDate)}
	}
	if !end.After(start) {
		return nil, utils.ValidationError{Message: "end date must be after start date"}
	}
	if in.GroupSize < 1 || in.GroupSize > 50 {
		return nil, utils.ValidationError{Message: "group size must be between 1 and 50"}
	}
	if in.ContactInfo.Name == "" || in.ContactInfo.Email == "" {
		return nil, utils.ValidationError{Message: "contact name and email are required"}
	}

	accommodation := in.Accommodation
	if accommodation == "" {
		accommodation = "mid-range"
	}

	now := time.Now().UTC()
	trip := &models.TripRequest{
		ID:            uuid.New().String(),
		CustomerID:    actor.ID,
		CustomerName:  in.ContactInfo.Name,
		CustomerEmail: in.ContactInfo.Email,
		RequestDetails: models.RequestDetails{
			Destination:         in.Destination,
			Destinations:        in.Destinations,
			StartDate:           start,
			EndDate:             end,
			GroupSize:           in.GroupSize,
			BudgetCeiling:       in.BudgetCeiling,
			Interests:           in.Interests,
			Activities:          in.Activities,
			Accommodation:       accommodation,
			Transport:           in.Transport,
			SpecialRequests:     in.SpecialRequests,
			DietaryRequirements: in.DietaryRequirements,
			Accessibility:       in.Accessibility,
			ContactInfo:         in.ContactInfo,
		},
		Status:        models.TripStatusPending,
		PaymentStatus: models.TripPaymentUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip request: %w", err)
	}

	// Best-effort heads-up to the staff inbox; the submission stands either way.
	s.NotificationSvc.NotifyTripSubmitted(ctx, s.StaffInbox, trip)

	utils.GetLogger().Info("trip request submitted",
		zap.String("tripId", trip.ID), zap.String("customerId", actor.ID))
	return trip, nil
}

// GetByID returns a trip request. Customers can only read their own requests;
// staff and admins can read any.
func (s *DefaultTripService) GetByID(ctx context.Context, actor models.Actor, id string) (*models.TripRequest, error) {
	trip, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, utils.NotFoundError{Resource: "trip request", ID: id}
	}
	if !actor.IsStaff() && trip.CustomerID != actor.ID {
		return nil, utils.UnauthorizedError{Message: "not authorized to view this trip request"}
	}
	return trip, nil
}

// ListForCustomer returns the actor's own trip requests.
func (s *DefaultTripService) ListForCustomer(ctx context.Context, actor models.Actor, status string) ([]models.TripRequest, error) {
	return s.Repo.GetByCustomer(ctx, actor.ID, status)
}

// ListAll returns all trip requests, optionally filtered by status. Staff only.
func (s *DefaultTripService) ListAll(ctx context.Context, actor models.Actor, status string) ([]models.TripRequest, error) {
	if !actor.IsStaff() {
		return nil, utils.UnauthorizedError{Message: "staff role required"}
	}
	return s.Repo.GetByStatus(ctx, status)
}

// Statistics returns the per-status request counts for the staff dashboard.
func (s *DefaultTripService) Statistics(ctx context.Context, actor models.Actor) (*models.TripStatistics, error) {
	if !actor.IsStaff() {
		return nil, utils.UnauthorizedError{Message: "staff role required"}
	}
	counts, err := s.Repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats := &models.TripStatistics{
		Pending:    counts[models.TripStatusPending],
		Approved:   counts[models.TripStatusApproved],
		Rejected:   counts[models.TripStatusRejected],
		InProgress: counts[models.TripStatusInProgress],
		Confirmed:  counts[models.TripStatusConfirmed],
		Completed:  counts[models.TripStatusCompleted],
	}
	for _, c := range counts {
		stats.Total += c
	}
	return stats, nil
}

// UpdateAssignment merges the staff input into the trip's assignment block and
// recomputes the budget. The stored total is always derived, never hand-set.
func (s *DefaultTripService) UpdateAssignment(ctx context.Context, actor models.Actor, id string, in AssignmentInput) (*models.TripRequest, error) {
	if !actor.IsStaff() {
		return nil, utils.UnauthorizedError{Message: "staff role required"}
	}

	trip, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, utils.NotFoundError{Resource: "trip request", ID: id}
	}
	if trip.Status == models.TripStatusConfirmed || trip.Status == models.TripStatusCompleted {
		return nil, utils.InvalidStateError{Message: "cannot modify assignment of a confirmed or completed trip"}
	}

	a := trip.StaffAssignment
	if in.AssignedGuide != nil {
		a.AssignedGuide = *in.AssignedGuide
	}
	if in.GuideFee != nil {
		a.GuideFee = *in.GuideFee
	}
	if in.AssignedVehicles != nil {
		a.AssignedVehicles = in.AssignedVehicles
	}
	if in.HotelBookings != nil {
		a.HotelBookings = in.HotelBookings
	}
	if in.ActivityCosts != nil {
		a.ActivityCosts = *in.ActivityCosts
	}
	if in.AdditionalFees != nil {
		a.AdditionalFees = *in.AdditionalFees
	}
	if in.Itinerary != nil {
		a.Itinerary = in.Itinerary
	}
	if in.AdditionalNotes != nil {
		a.AdditionalNotes = *in.AdditionalNotes
	}

	for _, v := range a.AssignedVehicles {
		if v.DailyRate < 0 || v.TotalDays < 0 {
			return nil, utils.ValidationError{Message: "vehicle rates and days must not be negative"}
		}
	}
	for _, h := range a.HotelBookings {
		if h.PricePerNight < 0 || h.TotalPrice < 0 {
			return nil, utils.ValidationError{Message: "hotel prices must not be negative"}
		}
	}

	now := time.Now().UTC()
	a.AssignedBy = actor.ID
	a.AssignedAt = &now
	a.TotalBudget = ComputeTotalBudget(a)

	if err := s.Repo.UpdateAssignment(ctx, id, a); err != nil {
		return nil, fmt.Errorf("failed to update trip assignment: %w", err)
	}
	trip.StaffAssignment = a
	trip.UpdatedAt = now
	return trip, nil
}

// Delete removes a trip request. Owners and staff may delete, but confirmed
// and completed trips are kept for the financial record.
func (s *DefaultTripService) Delete(ctx context.Context, actor models.Actor, id string) error {
	trip, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if trip == nil {
		return utils.NotFoundError{Resource: "trip request", ID: id}
	}
	if !actor.IsStaff() && trip.CustomerID != actor.ID {
		return utils.UnauthorizedError{Message: "not authorized to delete this trip request"}
	}
	if trip.Status == models.TripStatusConfirmed || trip.Status == models.TripStatusCompleted {
		return utils.InvalidStateError{Message: "cannot delete a confirmed or completed trip"}
	}
	return s.Repo.Delete(ctx, id)
}
