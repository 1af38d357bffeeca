package trip

import (
	"context"
	"testing"

	"serendibgo/models"
	"serendibgo/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmitInput() SubmitTripInput {
	return SubmitTripInput{
		Destination: "Kandy",
		StartDate:   "2026-10-01",
		EndDate:     "2026-10-05",
		GroupSize:   4,
		ContactInfo: models.ContactInfo{Name: "Amal Perera", Email: "amal@example.com"},
	}
}

func TestSubmitCreatesPendingTrip(t *testing.T) {
	repo := newFakeTripRepo()
	notifier := &fakeNotifier{}
	svc := newService(repo, notifier)

	got, err := svc.Submit(context.Background(), customer, validSubmitInput())
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, customer.ID, got.CustomerID)
	assert.Equal(t, models.TripStatusPending, got.Status)
	assert.Equal(t, models.TripPaymentUnpaid, got.PaymentStatus)
	assert.Equal(t, "mid-range", got.RequestDetails.Accommodation)
	assert.Contains(t, notifier.sent(), models.MailTripSubmitted)

	stored, _ := repo.GetByID(context.Background(), got.ID)
	require.NotNil(t, stored)
}

func TestSubmitRejectsBackwardDates(t *testing.T) {
	svc := newService(newFakeTripRepo(), &fakeNotifier{})

	in := validSubmitInput()
	in.StartDate = "2026-10-05"
	in.EndDate = "2026-10-01"

	_, err := svc.Submit(context.Background(), customer, in)
	var valErr utils.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestSubmitRejectsZeroGroupSize(t *testing.T) {
	svc := newService(newFakeTripRepo(), &fakeNotifier{})

	in := validSubmitInput()
	in.GroupSize = 0

	_, err := svc.Submit(context.Background(), customer, in)
	var valErr utils.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestGetByIDEnforcesOwnership(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusPending))
	svc := newService(repo, &fakeNotifier{})

	other := models.Actor{ID: "cust-2", Role: models.RoleCustomer}
	_, err := svc.GetByID(context.Background(), other, "trip-1")
	var authErr utils.UnauthorizedError
	require.ErrorAs(t, err, &authErr)

	// Owner and staff both read fine.
	_, err = svc.GetByID(context.Background(), customer, "trip-1")
	assert.NoError(t, err)
	_, err = svc.GetByID(context.Background(), staff, "trip-1")
	assert.NoError(t, err)
}

func TestUpdateAssignmentRecomputesBudget(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusPending))
	svc := newService(repo, &fakeNotifier{})

	guide := "guide-1"
	fee := 5000.0
	activities := 10000.0
	got, err := svc.UpdateAssignment(context.Background(), staff, "trip-1", AssignmentInput{
		AssignedGuide: &guide,
		GuideFee:      &fee,
		ActivityCosts: &activities,
		AssignedVehicles: []models.VehicleAssignment{
			{VehicleID: "v1", DailyRate: 8000, TotalDays: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, staff.ID, got.StaffAssignment.AssignedBy)
	assert.NotNil(t, got.StaffAssignment.AssignedAt)
	assert.Equal(t, 47000.0, got.StaffAssignment.TotalBudget.TotalAmount)

	// Partial update keeps earlier fields and recomputes again.
	newFee := 7000.0
	got, err = svc.UpdateAssignment(context.Background(), staff, "trip-1", AssignmentInput{GuideFee: &newFee})
	require.NoError(t, err)
	assert.Equal(t, "guide-1", got.StaffAssignment.AssignedGuide)
	assert.Equal(t, 49000.0, got.StaffAssignment.TotalBudget.TotalAmount)
}

func TestUpdateAssignmentRejectsConfirmedTrip(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusConfirmed))
	svc := newService(repo, &fakeNotifier{})

	fee := 100.0
	_, err := svc.UpdateAssignment(context.Background(), staff, "trip-1", AssignmentInput{GuideFee: &fee})
	var stateErr utils.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestUpdateAssignmentRejectsNegativeRates(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusPending))
	svc := newService(repo, &fakeNotifier{})

	_, err := svc.UpdateAssignment(context.Background(), staff, "trip-1", AssignmentInput{
		AssignedVehicles: []models.VehicleAssignment{{VehicleID: "v1", DailyRate: -1, TotalDays: 2}},
	})
	var valErr utils.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestDeleteRefusesConfirmedTrip(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusConfirmed))
	svc := newService(repo, &fakeNotifier{})

	err := svc.Delete(context.Background(), customer, "trip-1")
	var stateErr utils.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestStatisticsRequiresStaff(t *testing.T) {
	repo := newFakeTripRepo(seedTrip(models.TripStatusPending))
	svc := newService(repo, &fakeNotifier{})

	_, err := svc.Statistics(context.Background(), customer)
	var authErr utils.UnauthorizedError
	require.ErrorAs(t, err, &authErr)

	stats, err := svc.Statistics(context.Background(), staff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Total)
}
