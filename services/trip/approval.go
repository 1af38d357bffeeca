package trip

import (
	"context"
	"fmt"
	"strings"
	"time"

	"serendibgo/models"
	"serendibgo/utils"

	"go.uber.org/zap"
)

// Approve moves a pending or in-progress request to approved. Approving an
// already-approved request is a no-op that reports success; the original
// approval record is kept untouched so retried requests stay harmless.
func (s *DefaultTripService) Approve(ctx context.Context, actor models.Actor, id, staffComments string) (*models.TripRequest, error) {
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

	if trip.Status == models.TripStatusApproved {
		return trip, nil
	}
	if !trip.CanBeApproved() {
		return nil, utils.InvalidStateError{
			Message: fmt.Sprintf("trip in status %q cannot be approved", trip.Status),
		}
	}

	now := time.Now().UTC()
	approval := models.ApprovalDetails{
		ApprovedBy:    actor.ID,
		ApprovedAt:    &now,
		StaffComments: staffComments,
	}
	if err := s.Repo.UpdateStatus(ctx, id, models.TripStatusApproved, &approval); err != nil {
		return nil, fmt.Errorf("failed to approve trip: %w", err)
	}
	trip.Status = models.TripStatusApproved
	trip.ApprovalDetails = approval
	trip.UpdatedAt = now

	s.NotificationSvc.NotifyTripApproved(ctx, trip)

	utils.GetLogger().Info("trip approved",
		zap.String("tripId", id), zap.String("approvedBy", actor.ID))
	return trip, nil
}

// Reject moves a pending or in-progress request to rejected, a terminal
// state. A rejection reason is mandatory.
func (s *DefaultTripService) Reject(ctx context.Context, actor models.Actor, id, reason string) (*models.TripRequest, error) {
	if !actor.IsStaff() {
		return nil, utils.UnauthorizedError{Message: "staff role required"}
	}
	if strings.TrimSpace(reason) == "" {
		return nil, utils.ValidationError{Message: "rejection reason is required"}
	}

	trip, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, utils.NotFoundError{Resource: "trip request", ID: id}
	}
	if !trip.CanBeApproved() {
		return nil, utils.InvalidStateError{
			Message: fmt.Sprintf("trip in status %q cannot be rejected", trip.Status),
		}
	}

	approval := models.ApprovalDetails{RejectionReason: reason}
	if err := s.Repo.UpdateStatus(ctx, id, models.TripStatusRejected, &approval); err != nil {
		return nil, fmt.Errorf("failed to reject trip: %w", err)
	}
	trip.Status = models.TripStatusRejected
	trip.ApprovalDetails = approval
	trip.UpdatedAt = time.Now().UTC()

	s.NotificationSvc.NotifyTripRejected(ctx, trip, reason)

	utils.GetLogger().Info("trip rejected",
		zap.String("tripId", id), zap.String("rejectedBy", actor.ID))
	return trip, nil
}

// BulkAction applies approve, reject or delete to a batch of trip requests.
// Each trip goes through the same single-trip path, so per-trip guards and
// idempotence hold; one bad trip never aborts the rest of the batch.
func (s *DefaultTripService) BulkAction(ctx context.Context, actor models.Actor, in BulkActionInput) (*models.BulkActionResult, error) {
	if !actor.IsStaff() {
		return nil, utils.UnauthorizedError{Message: "staff role required"}
	}
	if len(in.TripIDs) == 0 {
		return nil, utils.ValidationError{Message: "trip ids are required"}
	}

	result := &models.BulkActionResult{Errors: make(map[string]string)}
	for _, id := range in.TripIDs {
		var err error
		switch in.Action {
		case models.BulkActionApprove:
			_, err = s.Approve(ctx, actor, id, in.StaffComments)
		case models.BulkActionReject:
			_, err = s.Reject(ctx, actor, id, in.Reason)
		case models.BulkActionDelete:
			err = s.Delete(ctx, actor, id)
		default:
			return nil, utils.ValidationError{Message: fmt.Sprintf("unknown bulk action %q", in.Action)}
		}
		if err != nil {
			result.Errors[id] = err.Error()
			continue
		}
		result.Processed++
	}
	if len(result.Errors) == 0 {
		result.Errors = nil
	}

	utils.GetLogger().Info("bulk trip action applied",
		zap.String("action", in.Action),
		zap.Int("requested", len(in.TripIDs)),
		zap.Int("processed", result.Processed),
		zap.String("actedBy", actor.ID))
	return result, nil
}

// Complete marks a confirmed trip as completed once travel has finished.
func (s *DefaultTripService) Complete(ctx context.Context, actor models.Actor, id string) (*models.TripRequest, error) {
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
	if trip.Status != models.TripStatusConfirmed {
		return nil, utils.InvalidStateError{
			Message: fmt.Sprintf("trip in status %q cannot be completed", trip.Status),
		}
	}

	if err := s.Repo.UpdateStatus(ctx, id, models.TripStatusCompleted, nil); err != nil {
		return nil, fmt.Errorf("failed to complete trip: %w", err)
	}
	trip.Status = models.TripStatusCompleted
	trip.UpdatedAt = time.Now().UTC()
	return trip, nil
}
