package trip

import (
	"context"
	"testing"
	"time"

	"serendibgo/models"
	"serendibgo/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	staff    = models.Actor{ID: "staff-1", Role: models.RoleStaff}
	customer = models.Actor{ID: "cust-1", Role: models.RoleCustomer}
)

func newService(repo *fakeTripRepo, notifier *fakeNotifier) *DefaultTripService {
	return &DefaultTripService{
		Repo:            repo,
		NotificationSvc: notifier,
		StaffInbox:      "staff@example.com",
	}
}

func seedTrip(status string) *models.TripRequest {
	return &models.TripRequest{
		ID:            "trip-1",
		CustomerID:    customer.ID,
		CustomerName:  "Amal Perera",
		CustomerEmail: "amal@example.com",
		RequestDetails: models.RequestDetails{
			Destination: "Ella",
			StartDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
			GroupSize:   4,
			ContactInfo: models.ContactInfo{Name: "Amal Perera", Email: "amal@example.com"},
		},
		Status:        status,
		PaymentStatus: models.TripPaymentUnpaid,
	}
}

func TestApprovePendingTrip(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusPending))
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier)

	got, err := svc.Approve(context.Background(), staff, "trip-1", "looks good")
	require.NoError(t, err)

	assert.Equal(t, models.TripStatusApproved, got.Status)
	assert.Equal(t, staff.ID, got.ApprovalDetails.ApprovedBy)
	assert.NotNil(t, got.ApprovalDetails.ApprovedAt)
	assert.Equal(t, "looks good", got.ApprovalDetails.StaffComments)
	assert.Contains(t, notifier.sent(), models.MailTripApproved)
}

func TestApproveInProgressTrip(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusInProgress))
	svc := newService(repo, &fakeNotifier{})

	got, err := svc.Approve(context.Background(), staff, "trip-1", "")
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusApproved, got.Status)
}

func TestApproveAlreadyApprovedIsNoOp(t *testing.T) {
	seeded := seedTrip(models.TripStatusApproved)
	firstApproval := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	seeded.ApprovalDetails = models.ApprovalDetails{
		ApprovedBy:    "staff-0",
		ApprovedAt:    &firstApproval,
		StaffComments: "original",
	}
	repo := newFakeTripRepo(seeded)
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier)

	got, err := svc.Approve(context.Background(), staff, "trip-1", "retry comments")
	require.NoError(t, err)

	// The original approval record stands untouched and no mail fires again.
	assert.Equal(t, "staff-0", got.ApprovalDetails.ApprovedBy)
	assert.Equal(t, firstApproval, *got.ApprovalDetails.ApprovedAt)
	assert.Equal(t, "original", got.ApprovalDetails.StaffComments)
	assert.Empty(t, notifier.sent())
}

func TestApproveRejectedTripFails(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusRejected))
	svc := newService(repo, &fakeNotifier{})

	_, err := svc.Approve(context.Background(), staff, "trip-1", "")
	var stateErr utils.InvalidStateError
	require.ErrorAs(t, err, &stateErr)

	stored, _ := repo.GetByID(context.Background(), "trip-1")
	assert.Equal(t, models.TripStatusRejected, stored.Status)
}

func TestApproveRequiresStaff(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusPending))
	svc := newService(repo, &fakeNotifier{})

	_, err := svc.Approve(context.Background(), customer, "trip-1", "")
	var authErr utils.UnauthorizedError
	assert.ErrorAs(t, err, &authErr)
}

func TestRejectRequiresReason(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusPending))
	svc := newService(repo, &fakeNotifier{})

	_, err := svc.Reject(context.Background(), staff, "trip-1", "   ")
	var valErr utils.ValidationError
	require.ErrorAs(t, err, &valErr)

	stored, _ := repo.GetByID(context.Background(), "trip-1")
	assert.Equal(t, models.TripStatusPending, stored.Status)
}

func TestRejectPendingTrip(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusPending))
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier)

	got, err := svc.Reject(context.Background(), staff, "trip-1", "dates unavailable")
	require.NoError(t, err)

	assert.Equal(t, models.TripStatusRejected, got.Status)
	assert.Equal(t, "dates unavailable", got.ApprovalDetails.RejectionReason)
	assert.Contains(t, notifier.sent(), models.MailTripRejected)
}

func TestRejectApprovedTripFails(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusApproved))
	svc := newService(repo, &fakeNotifier{})

	_, err := svc.Reject(context.Background(), staff, "trip-1", "too late")
	var stateErr utils.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestCompleteConfirmedTrip(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusConfirmed))
	svc := newService(repo, &fakeNotifier{})

	got, err := svc.Complete(context.Background(), staff, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusCompleted, got.Status)
}

func TestCompleteApprovedTripFails(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusApproved))
	svc := newService(repo, &fakeNotifier{})

	_, err := svc.Complete(context.Background(), staff, "trip-1")
	var stateErr utils.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestApproveUnknownTrip(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newService(repo, &fakeNotifier{})

	_, err := svc.Approve(context.Background(), staff, "nope", "")
	var nfErr utils.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func seedTripWithID(id, status string) *models.TripRequest {
	tr := seedTrip(status)
	tr.ID = id
	return tr
}

func TestBulkApproveSkipsIneligibleTrips(t *testing.T) {
	repo := newFakeTripRepo(
		seedTripWithID("trip-1", models.TripStatusPending),
		seedTripWithID("trip-2", models.TripStatusInProgress),
		seedTripWithID("trip-3", models.TripStatusConfirmed),
	)
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier)

	result, err := svc.BulkAction(context.Background(), staff, BulkActionInput{
		TripIDs: []string{"trip-1", "trip-2", "trip-3"},
		Action:  models.BulkActionApprove,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Contains(t, result.Errors, "trip-3")

	for _, id := range []string{"trip-1", "trip-2"} {
		tr, _ := repo.GetByID(context.Background(), id)
		assert.Equal(t, models.TripStatusApproved, tr.Status)
	}
	tr, _ := repo.GetByID(context.Background(), "trip-3")
	assert.Equal(t, models.TripStatusConfirmed, tr.Status)
	assert.Equal(t, []string{models.MailTripApproved, models.MailTripApproved}, notifier.sent())
}

func TestBulkRejectAppliesSharedReason(t *testing.T) {
	repo := newFakeTripRepo(
		seedTripWithID("trip-1", models.TripStatusPending),
		seedTripWithID("trip-2", models.TripStatusPending),
	)
	svc := newService(repo, &fakeNotifier{})

	result, err := svc.BulkAction(context.Background(), staff, BulkActionInput{
		TripIDs: []string{"trip-1", "trip-2"},
		Action:  models.BulkActionReject,
		Reason:  "season fully booked",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Nil(t, result.Errors)
	tr, _ := repo.GetByID(context.Background(), "trip-1")
	assert.Equal(t, models.TripStatusRejected, tr.Status)
	assert.Equal(t, "season fully booked", tr.ApprovalDetails.RejectionReason)
}

func TestBulkRejectWithoutReasonFailsEachTrip(t *testing.T) {
	repo := newFakeTripRepo(seedTripWithID("trip-1", models.TripStatusPending))
	svc := newService(repo, &fakeNotifier{})

	result, err := svc.BulkAction(context.Background(), staff, BulkActionInput{
		TripIDs: []string{"trip-1"},
		Action:  models.BulkActionReject,
	})
	require.NoError(t, err)

	assert.Zero(t, result.Processed)
	assert.Contains(t, result.Errors, "trip-1")
	tr, _ := repo.GetByID(context.Background(), "trip-1")
	assert.Equal(t, models.TripStatusPending, tr.Status)
}

func TestBulkDeleteKeepsConfirmedTrips(t *testing.T) {
	repo := newFakeTripRepo(
		seedTripWithID("trip-1", models.TripStatusPending),
		seedTripWithID("trip-2", models.TripStatusConfirmed),
	)
	svc := newService(repo, &fakeNotifier{})

	result, err := svc.BulkAction(context.Background(), staff, BulkActionInput{
		TripIDs: []string{"trip-1", "trip-2"},
		Action:  models.BulkActionDelete,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Contains(t, result.Errors, "trip-2")
	gone, _ := repo.GetByID(context.Background(), "trip-1")
	assert.Nil(t, gone)
	kept, _ := repo.GetByID(context.Background(), "trip-2")
	assert.NotNil(t, kept)
}

func TestBulkActionGuards(t *testing.T) {
	repo := newFakeTripRepo(seedTripWithID("trip-1", models.TripStatusPending))
	svc := newService(repo, &fakeNotifier{})

	_, err := svc.BulkAction(context.Background(), customer, BulkActionInput{
		TripIDs: []string{"trip-1"}, Action: models.BulkActionApprove,
	})
	var authErr utils.UnauthorizedError
	assert.ErrorAs(t, err, &authErr)

	_, err = svc.BulkAction(context.Background(), staff, BulkActionInput{Action: models.BulkActionApprove})
	var validationErr utils.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.BulkAction(context.Background(), staff, BulkActionInput{
		TripIDs: []string{"trip-1"}, Action: "archive",
	})
	assert.ErrorAs(t, err, &validationErr)
}
