package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/repositories"
)

func TestReconcileEmitsNotificationsInSweepOrder(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.started = []repositories.SweptRow{{ID: 11, UserID: 1}, {ID: 12, UserID: 2}}
	repo.completed = []repositories.SweptRow{{ID: 9, UserID: 1}}
	svc := NewReconcilerService(repo)

	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)
	notifications, err := svc.Reconcile(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, notifications, 3)

	// started promotions come first, matching the sweep's step order
	assert.Equal(t, models.NotificationStarted, notifications[0].Type)
	assert.Equal(t, int64(11), notifications[0].AssignmentID)
	assert.Equal(t, int64(1), notifications[0].UserID)
	assert.Equal(t, models.NotificationStarted, notifications[1].Type)
	assert.Equal(t, models.NotificationCompleteReminder, notifications[2].Type)
	assert.Equal(t, int64(9), notifications[2].AssignmentID)

	for _, n := range notifications {
		assert.Equal(t, now, n.CreatedAt)
	}
}

func TestReconcileNothingDue(t *testing.T) {
	svc := NewReconcilerService(newFakeAssignmentRepo())

	notifications, err := svc.Reconcile(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestReconcilePropagatesSweepError(t *testing.T) {
	repo := newFakeAssignmentRepo()
	repo.sweepErr = errors.New("db down")
	svc := NewReconcilerService(repo)

	_, err := svc.Reconcile(context.Background(), time.Now())
	assert.Error(t, err)
}

// sweepingRepo runs the real two-step promotion over the stored assignments,
// in id order, mirroring the batched SQL: the pending step first, then the
// in-progress step over its results.
type sweepingRepo struct {
	*fakeAssignmentRepo
}

func (r *sweepingRepo) SweepDue(_ context.Context, now time.Time) ([]repositories.SweptRow, []repositories.SweptRow, error) {
	ids := make([]int64, 0, len(r.assignments))
	for id := range r.assignments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var started []repositories.SweptRow
	for _, id := range ids {
		a := r.assignments[id]
		if a.Status == models.StatusPending && !a.StartTime.After(now) {
			a.Status = models.StatusInProgress
			r.assignments[id] = a
			started = append(started, repositories.SweptRow{ID: a.ID, UserID: a.UserID})
		}
	}
	var completed []repositories.SweptRow
	for _, id := range ids {
		a := r.assignments[id]
		if a.Status == models.StatusInProgress && !a.EndTime.After(now) {
			a.Status = models.StatusCompleted
			r.assignments[id] = a
			completed = append(completed, repositories.SweptRow{ID: a.ID, UserID: a.UserID})
		}
	}
	return started, completed, nil
}

func TestReconcilePromotesThroughBothStatesInOnePass(t *testing.T) {
	repo := &sweepingRepo{fakeAssignmentRepo: newFakeAssignmentRepo()}
	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)
	repo.assignments[1] = models.Assignment{
		ID: 1, UserID: 1,
		StartTime: now.Add(-2 * time.Hour),
		EndTime:   now.Add(-time.Hour),
		Status:    models.StatusPending,
	}
	svc := NewReconcilerService(repo)

	notifications, err := svc.Reconcile(context.Background(), now)
	require.NoError(t, err)

	// the row whose end has also passed moves pending -> in_progress ->
	// completed in the same sweep and emits both notifications
	require.Len(t, notifications, 2)
	assert.Equal(t, models.NotificationStarted, notifications[0].Type)
	assert.Equal(t, models.NotificationCompleteReminder, notifications[1].Type)
	assert.Equal(t, int64(1), notifications[0].AssignmentID)
	assert.Equal(t, int64(1), notifications[1].AssignmentID)
	assert.Equal(t, models.StatusCompleted, repo.assignments[1].Status)
}

func TestReconcileStatefulSweepThresholds(t *testing.T) {
	repo := &sweepingRepo{fakeAssignmentRepo: newFakeAssignmentRepo()}
	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)
	repo.assignments[1] = models.Assignment{ // past start, end still ahead
		ID: 1, UserID: 1,
		StartTime: now.Add(-10 * time.Minute),
		EndTime:   now.Add(50 * time.Minute),
		Status:    models.StatusPending,
	}
	repo.assignments[2] = models.Assignment{ // not yet due
		ID: 2, UserID: 1,
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
		Status:    models.StatusPending,
	}
	repo.assignments[3] = models.Assignment{ // in progress, past end
		ID: 3, UserID: 2,
		StartTime: now.Add(-2 * time.Hour),
		EndTime:   now.Add(-time.Minute),
		Status:    models.StatusInProgress,
	}
	svc := NewReconcilerService(repo)

	notifications, err := svc.Reconcile(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, models.NotificationStarted, notifications[0].Type)
	assert.Equal(t, int64(1), notifications[0].AssignmentID)
	assert.Equal(t, models.NotificationCompleteReminder, notifications[1].Type)
	assert.Equal(t, int64(3), notifications[1].AssignmentID)

	assert.Equal(t, models.StatusInProgress, repo.assignments[1].Status)
	assert.Equal(t, models.StatusPending, repo.assignments[2].Status)
	assert.Equal(t, models.StatusCompleted, repo.assignments[3].Status)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.AssignmentStatus
		ok       bool
	}{
		{models.StatusPending, models.StatusInProgress, true},
		{models.StatusPending, models.StatusCompleted, true},
		{models.StatusInProgress, models.StatusCompleted, true},
		{models.StatusInProgress, models.StatusPending, false},
		{models.StatusCompleted, models.StatusPending, false},
		{models.StatusCompleted, models.StatusInProgress, false},
		{models.StatusPending, models.StatusPending, true},
		{models.StatusCompleted, models.StatusCompleted, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, canTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
