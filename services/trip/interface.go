package trip

import (
	"context"

	"serendibgo/database/repository/trip"
	"serendibgo/models"
	"serendibgo/services/notification"
)

// SubmitTripInput is the customer-facing submission payload.
type SubmitTripInput struct {
	Destination         string             `json:"destination" binding:"required"`
	Destinations        []string           `json:"destinations"`
	StartDate           string             `json:"startDate" binding:"required"`
	EndDate             string             `json:"endDate" binding:"required"`
	GroupSize           int                `json:"groupSize" binding:"required"`
	BudgetCeiling       float64            `json:"budget"`
	Interests           []string           `json:"interests"`
	Activities          []models.Activity  `json:"activities"`
	Accommodation       string             `json:"accommodation"`
	Transport           []string           `json:"transport"`
	SpecialRequests     string             `json:"specialRequests"`
	DietaryRequirements string             `json:"dietaryRequirements"`
	Accessibility       string             `json:"accessibility"`
	ContactInfo         models.ContactInfo `json:"contactInfo" binding:"required"`
}

// AssignmentInput is the staff-facing assignment payload. Nil slices and
// pointers mean "leave as is"; numeric fields default to zero at the boundary
// so the calculator never sees missing values.
type AssignmentInput struct {
	AssignedGuide    *string                    `json:"assignedGuide"`
	GuideFee         *float64                   `json:"guideFee"`
	AssignedVehicles []models.VehicleAssignment `json:"assignedVehicles"`
	HotelBookings    []models.HotelBooking      `json:"hotelBookings"`
	ActivityCosts    *float64                   `json:"activityCosts"`
	AdditionalFees   *float64                   `json:"additionalFees"`
	Itinerary        []models.ItineraryDay      `json:"itinerary"`
	AdditionalNotes  *string                    `json:"additionalNotes"`
}

// BulkActionInput names a batch of trips and the action to apply to each.
type BulkActionInput struct {
	TripIDs       []string `json:"tripIds" binding:"required"`
	Action        string   `json:"action" binding:"required"`
	StaffComments string   `json:"staffComments"`
	Reason        string   `json:"reason"`
}

// TripService covers the trip request store, the staff assignment workflow
// and the approval state machine.
type TripService interface {
	Submit(ctx context.Context, actor models.Actor, in SubmitTripInput) (*models.TripRequest, error)
	GetByID(ctx context.Context, actor models.Actor, id string) (*models.TripRequest, error)
	ListForCustomer(ctx context.Context, actor models.Actor, status string) ([]models.TripRequest, error)
	ListAll(ctx context.Context, actor models.Actor, status string) ([]models.TripRequest, error)
	Statistics(ctx context.Context, actor models.Actor) (*models.TripStatistics, error)
	UpdateAssignment(ctx context.Context, actor models.Actor, id string, in AssignmentInput) (*models.TripRequest, error)
	Approve(ctx context.Context, actor models.Actor, id, staffComments string) (*models.TripRequest, error)
	Reject(ctx context.Context, actor models.Actor, id, reason string) (*models.TripRequest, error)
	BulkAction(ctx context.Context, actor models.Actor, in BulkActionInput) (*models.BulkActionResult, error)
	Complete(ctx context.Context, actor models.Actor, id string) (*models.TripRequest, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
}

// DefaultTripService implements TripService.
type DefaultTripService struct {
	Repo            tripRepo.TripRepository
	NotificationSvc notification.NotificationService
	StaffInbox      string
}
