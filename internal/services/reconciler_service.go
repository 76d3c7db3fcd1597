package services

import (
	"context"
	"time"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/repositories"
)

// ReconcilerService keeps stored assignment status consistent with the
// clock. It never reads the system time itself; callers pass now so sweeps
// stay deterministic.
type ReconcilerService struct {
	repo repositories.AssignmentRepository
}

func NewReconcilerService(repo repositories.AssignmentRepository) *ReconcilerService {
	return &ReconcilerService{repo: repo}
}

// Reconcile promotes pending assignments whose start has passed, then
// in-progress assignments whose end has passed, in that order, so a row past
// both thresholds moves through both states in one pass. Returns one
// notification per promoted row; notifications are not persisted.
func (s *ReconcilerService) Reconcile(ctx context.Context, now time.Time) ([]models.Notification, error) {
	started, completed, err := s.repo.SweepDue(ctx, now)
	if err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(started)+len(completed))
	for _, row := range started {
		notifications = append(notifications, models.Notification{
			Type:         models.NotificationStarted,
			AssignmentID: row.ID,
			UserID:       row.UserID,
			CreatedAt:    now,
		})
	}
	for _, row := range completed {
		notifications = append(notifications, models.Notification{
			Type:         models.NotificationCompleteReminder,
			AssignmentID: row.ID,
			UserID:       row.UserID,
			CreatedAt:    now,
		})
	}
	return notifications, nil
}
