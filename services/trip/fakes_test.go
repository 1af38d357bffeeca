package trip

import (
	"context"
	"sync"

	"serendibgo/models"
)

// fakeTripRepo is an in-memory TripRepository for service tests.
type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[string]*models.TripRequest
}

func newFakeTripRepo(seed ...*models.TripRequest) *fakeTripRepo {
	r := &fakeTripRepo{trips: make(map[string]*models.TripRequest)}
	for _, t := range seed {
		cp := *t
		r.trips[t.ID] = &cp
	}
	return r
}

func (r *fakeTripRepo) Create(ctx context.Context, trip *models.TripRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *trip
	r.trips[trip.ID] = &cp
	return nil
}

func (r *fakeTripRepo) GetByID(ctx context.Context, id string) (*models.TripRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTripRepo) GetByCustomer(ctx context.Context, customerID, status string) ([]models.TripRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TripRequest
	for _, t := range r.trips {
		if t.CustomerID == customerID && (status == "" || t.Status == status) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTripRepo) GetByStatus(ctx context.Context, status string) ([]models.TripRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TripRequest
	for _, t := range r.trips {
		if status == "" || t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTripRepo) UpdateAssignment(ctx context.Context, id string, assignment models.StaffAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[id].StaffAssignment = assignment
	return nil
}

func (r *fakeTripRepo) UpdateStatus(ctx context.Context, id, status string, approval *models.ApprovalDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.trips[id]
	t.Status = status
	if approval != nil {
		t.ApprovalDetails = *approval
	}
	return nil
}

func (r *fakeTripRepo) SetBookingID(ctx context.Context, id, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[id].BookingID = bookingID
	return nil
}

func (r *fakeTripRepo) MarkConfirmedPaid(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.trips[id]
	t.Status = models.TripStatusConfirmed
	t.PaymentStatus = models.TripPaymentPaid
	return nil
}

func (r *fakeTripRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, t := range r.trips {
		counts[t.Status]++
	}
	return counts, nil
}

func (r *fakeTripRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.trips, id)
	return nil
}

// fakeNotifier records which notifications fired.
type fakeNotifier struct {
	mu    sync.Mutex
	kinds []string
}

func (n *fakeNotifier) record(kind string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, kind)
}

func (n *fakeNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.kinds...)
}

func (n *fakeNotifier) NotifyTripSubmitted(ctx context.Context, staffInbox string, trip *models.TripRequest) {
	n.record(models.MailTripSubmitted)
}

func (n *fakeNotifier) NotifyTripApproved(ctx context.Context, trip *models.TripRequest) {
	n.record(models.MailTripApproved)
}

func (n *fakeNotifier) NotifyTripRejected(ctx context.Context, trip *models.TripRequest, reason string) {
	n.record(models.MailTripRejected)
}

func (n *fakeNotifier) NotifyPaymentConfirmation(ctx context.Context, booking *models.Booking, email, name string) {
	n.record(models.MailPaymentConfirmation)
}

func (n *fakeNotifier) NotifyPaymentFailure(ctx context.Context, booking *models.Booking, email, name string) {
	n.record(models.MailPaymentFailure)
}

func (n *fakeNotifier) NotifyRefundConfirmation(ctx context.Context, booking *models.Booking, email, name string, amount float64) {
	n.record(models.MailRefundConfirmation)
}
