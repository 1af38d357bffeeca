package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	"serendibgo/models"
	"serendibgo/utils"
)

// fakeBookingStore mirrors the conditional update semantics of the Mongo
// repository: paid is terminal for MarkPaid, failed only applies to pending.
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingStore(seed ...*models.Booking) *fakeBookingStore {
	s := &fakeBookingStore{bookings: make(map[string]*models.Booking)}
	for _, b := range seed {
		cp := *b
		s.bookings[b.ID] = &cp
	}
	return s
}

func (s *fakeBookingStore) Create(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *booking
	s.bookings[booking.ID] = &cp
	return nil
}

func (s *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) GetByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return nil, nil
}

func (s *fakeBookingStore) GetByPaymentIntentID(ctx context.Context, intentID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.PaymentIntentID == intentID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeBookingStore) SetPaymentIntentID(ctx context.Context, bookingID, intentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bookings[bookingID]
	if b.PaymentIntentID != "" {
		return utils.InvalidStateError{Message: "booking already has a payment intent"}
	}
	b.PaymentIntentID = intentID
	return nil
}

func (s *fakeBookingStore) MarkPaid(ctx context.Context, intentID string, amountPaid float64, paidAt time.Time) (*models.Booking, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.PaymentIntentID != intentID {
			continue
		}
		if b.PaymentStatus == models.PaymentStatusPaid {
			cp := *b
			return &cp, false, nil
		}
		b.PaymentStatus = models.PaymentStatusPaid
		b.Status = models.BookingStatusConfirmed
		b.AmountPaid = amountPaid
		b.PaymentDate = &paidAt
		cp := *b
		return &cp, true, nil
	}
	return nil, false, nil
}

func (s *fakeBookingStore) MarkFailed(ctx context.Context, intentID string) (*models.Booking, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.PaymentIntentID != intentID {
			continue
		}
		if b.PaymentStatus != models.PaymentStatusPending {
			cp := *b
			return &cp, false, nil
		}
		b.PaymentStatus = models.PaymentStatusFailed
		cp := *b
		return &cp, true, nil
	}
	return nil, false, nil
}

func (s *fakeBookingStore) MarkRefunded(ctx context.Context, bookingID string, refundAmount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bookings[bookingID]
	b.PaymentStatus = models.PaymentStatusRefunded
	b.Status = models.BookingStatusCancelled
	b.RefundAmount = refundAmount
	return nil
}

// fakeTripStore tracks only what reconciliation touches.
type fakeTripStore struct {
	mu               sync.Mutex
	trips            map[string]*models.TripRequest
	markPaidFailures int
}

func newFakeTripStore(seed ...*models.TripRequest) *fakeTripStore {
	s := &fakeTripStore{trips: make(map[string]*models.TripRequest)}
	for _, t := range seed {
		cp := *t
		s.trips[t.ID] = &cp
	}
	return s
}

func (s *fakeTripStore) Create(ctx context.Context, trip *models.TripRequest) error { return nil }

func (s *fakeTripStore) GetByID(ctx context.Context, id string) (*models.TripRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTripStore) GetByCustomer(ctx context.Context, customerID, status string) ([]models.TripRequest, error) {
	return nil, nil
}

func (s *fakeTripStore) GetByStatus(ctx context.Context, status string) ([]models.TripRequest, error) {
	return nil, nil
}

func (s *fakeTripStore) UpdateAssignment(ctx context.Context, id string, assignment models.StaffAssignment) error {
	return nil
}

func (s *fakeTripStore) UpdateStatus(ctx context.Context, id, status string, approval *models.ApprovalDetails) error {
	return nil
}

func (s *fakeTripStore) SetBookingID(ctx context.Context, id, bookingID string) error { return nil }

func (s *fakeTripStore) MarkConfirmedPaid(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markPaidFailures > 0 {
		s.markPaidFailures--
		return errors.New("write conflict")
	}
	t := s.trips[id]
	t.Status = models.TripStatusConfirmed
	t.PaymentStatus = models.TripPaymentPaid
	return nil
}

func (s *fakeTripStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return nil, nil
}

func (s *fakeTripStore) Delete(ctx context.Context, id string) error { return nil }

// fakeGateway scripts gateway responses per intent.
type fakeGateway struct {
	mu            sync.Mutex
	nextIntentID  string
	intents       map[string]*models.PaymentIntent
	refundAmount  float64
	createdCount  int
	refundedCount int
	webhookEvent  *models.PaymentEvent
	webhookErr    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{nextIntentID: "pi_1", intents: make(map[string]*models.PaymentIntent)}
}

func (g *fakeGateway) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*models.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createdCount++
	intent := &models.PaymentIntent{
		ID:           g.nextIntentID,
		ClientSecret: g.nextIntentID + "_secret",
		Amount:       amount,
		Currency:     currency,
		Status:       "requires_payment_method",
	}
	g.intents[intent.ID] = intent
	return intent, nil
}

func (g *fakeGateway) RetrieveIntent(ctx context.Context, intentID string) (*models.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	intent, ok := g.intents[intentID]
	if !ok {
		return nil, utils.GatewayError{Op: "retrieve intent", Err: context.Canceled}
	}
	cp := *intent
	return &cp, nil
}

func (g *fakeGateway) CreateRefund(ctx context.Context, intentID string, amount float64) (*models.RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refundedCount++
	return &models.RefundResult{RefundID: "re_1", Amount: g.refundAmount, Status: "succeeded"}, nil
}

func (g *fakeGateway) VerifyWebhook(payload []byte, signature string) (*models.PaymentEvent, error) {
	return g.webhookEvent, g.webhookErr
}

func (g *fakeGateway) setIntentStatus(intentID, status string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intents[intentID].Status = status
}

// fakeNotifier records fired notification kinds.
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
