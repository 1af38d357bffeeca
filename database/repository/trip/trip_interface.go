package tripRepo

import (
	"context"

	"serendibgo/models"
)

// TripRepository defines methods for trip request data access.
type TripRepository interface {
	// Create inserts a new trip request record.
	Create(ctx context.Context, trip *models.TripRequest) error
	// GetByID retrieves a trip request by its unique ID.
	GetByID(ctx context.Context, id string) (*models.TripRequest, error)
	// GetByCustomer retrieves all trip requests owned by a customer, optionally
	// filtered by status (empty status means all).
	GetByCustomer(ctx context.Context, customerID, status string) ([]models.TripRequest, error)
	// GetByStatus retrieves all trip requests in the given status (empty means all).
	GetByStatus(ctx context.Context, status string) ([]models.TripRequest, error)
	// UpdateAssignment replaces the staff assignment block and stamps UpdatedAt.
	UpdateAssignment(ctx context.Context, id string, assignment models.StaffAssignment) error
	// UpdateStatus sets the workflow status. A non-nil approval replaces the
	// approval details; nil leaves them untouched.
	UpdateStatus(ctx context.Context, id, status string, approval *models.ApprovalDetails) error
	// SetBookingID writes the booking back-reference. It only succeeds while no
	// booking is linked yet.
	SetBookingID(ctx context.Context, id, bookingID string) error
	// MarkConfirmedPaid idempotently moves the trip to confirmed/paid after a
	// successful payment. Re-running it on an already confirmed and paid trip
	// is a no-op.
	MarkConfirmedPaid(ctx context.Context, id string) error
	// CountByStatus returns the number of trip requests per workflow status.
	CountByStatus(ctx context.Context) (map[string]int64, error)
	// Delete removes a trip request record by its ID.
	Delete(ctx context.Context, id string) error
}
