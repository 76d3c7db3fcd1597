package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
)

func newAssignmentFixture(t *testing.T) (AssignmentService, *fakeAssignmentRepo, *models.TaskDefinition) {
	t.Helper()
	repo := newFakeAssignmentRepo()
	taskRepo := newFakeTaskRepo()
	tasks := NewTaskDefinitionService(taskRepo)
	users := newFakeUserRepo(
		models.User{ID: 1, Name: "Mara", Email: "mara@example.com", Role: models.RoleRegular},
		models.User{ID: 2, Name: "Iris", Email: "iris@example.com", Role: models.RoleAdministrator},
		models.User{ID: 3, Name: "Odd", Email: "odd@example.com", Role: models.RoleRegular},
	)
	task, err := tasks.Create(context.Background(), models.TaskDefinitionInput{
		Name: "Deep work block", Category: "Flow", Subcategory: "Deep Work",
		Intensity: "7", Duration: "60",
	})
	require.NoError(t, err)
	return NewAssignmentService(repo, tasks, users), repo, task
}

var (
	regular = models.Actor{UserID: 1, Role: models.RoleRegular}
	admin   = models.Actor{UserID: 2, Role: models.RoleAdministrator}
)

func TestScheduleComputesEndTime(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)

	a, err := svc.Schedule(context.Background(), regular, ScheduleInput{
		TaskID:    task.ID,
		StartDate: "2025-06-16",
		StartTime: "09:30",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.UserID)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 30, 0, 0, time.UTC), a.StartTime)
	assert.Equal(t, a.StartTime.Add(60*time.Minute), a.EndTime)
	assert.Equal(t, 7, a.Intensity)
	assert.Equal(t, 60, a.ActualDuration)
	assert.Equal(t, models.StatusPending, a.Status)
}

func TestScheduleBlankTimeMeansMidnight(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)

	a, err := svc.Schedule(context.Background(), regular, ScheduleInput{
		TaskID:    task.ID,
		StartDate: "2025-06-16",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), a.StartTime)
}

func TestScheduleInvalidDate(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)

	_, err := svc.Schedule(context.Background(), regular, ScheduleInput{
		TaskID:    task.ID,
		StartDate: "16/06/2025",
		StartTime: "09:00",
	})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "invalid datetime")
}

func TestScheduleDurationFallsBackSilently(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)

	for _, raw := range []string{"", "soon", "-15", "0"} {
		a, err := svc.Schedule(context.Background(), regular, ScheduleInput{
			TaskID:    task.ID,
			StartDate: "2025-06-16",
			StartTime: "10:00",
			Duration:  raw,
		})
		require.NoError(t, err, "duration %q", raw)
		assert.Equal(t, 60, a.ActualDuration, "duration %q", raw)
	}
}

func TestScheduleBadIntensityRejected(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)

	_, err := svc.Schedule(context.Background(), regular, ScheduleInput{
		TaskID:    task.ID,
		StartDate: "2025-06-16",
		Intensity: "15",
	})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestScheduleNormalizesStatusHint(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)

	a, err := svc.Schedule(context.Background(), regular, ScheduleInput{
		TaskID:    task.ID,
		StartDate: "2025-06-16",
		Status:    "In Progress",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, a.Status)
}

func TestScheduleInlineTask(t *testing.T) {
	svc, _, _ := newAssignmentFixture(t)

	a, err := svc.Schedule(context.Background(), regular, ScheduleInput{
		NewTask: &models.TaskDefinitionInput{
			Name: "Trail hike", Category: "Motion", Subcategory: "Outdoor & Active Lifestyle",
		},
		StartDate: "2025-06-17",
		StartTime: "07:00",
	})
	require.NoError(t, err)
	// taxonomy defaults of the inline task drive the assignment
	assert.Equal(t, 6, a.Intensity)
	assert.Equal(t, 7, a.ActualDuration)
}

func TestScheduleAdminTargetsAnotherUser(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)

	a, err := svc.Schedule(context.Background(), admin, ScheduleInput{
		TargetUserID: 1,
		TaskID:       task.ID,
		StartDate:    "2025-06-16",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.UserID)

	// a regular user's target is ignored, the row stays theirs
	a, err = svc.Schedule(context.Background(), regular, ScheduleInput{
		TargetUserID: 3,
		TaskID:       task.ID,
		StartDate:    "2025-06-16",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.UserID)
}

func TestGetForeignAssignmentForbidden(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)
	ctx := context.Background()

	a, err := svc.Schedule(ctx, admin, ScheduleInput{
		TargetUserID: 3, TaskID: task.ID, StartDate: "2025-06-16",
	})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, regular, a.ID)
	var aerr *models.AuthorizationError
	require.ErrorAs(t, err, &aerr)

	// admins read anything
	_, err = svc.GetByID(ctx, admin, a.ID)
	assert.NoError(t, err)
}

func TestUpdateStatusCannotMoveBackwards(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)
	ctx := context.Background()

	a, err := svc.Schedule(ctx, regular, ScheduleInput{
		TaskID: task.ID, StartDate: "2025-06-16", Status: "completed",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, regular, a.ID, AssignmentUpdateInput{Status: "pending"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "status cannot move backwards")
}

func TestUpdateForwardStatusAndRecomputedEnd(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)
	ctx := context.Background()

	a, err := svc.Schedule(ctx, regular, ScheduleInput{
		TaskID: task.ID, StartDate: "2025-06-16", StartTime: "09:00",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, regular, a.ID, AssignmentUpdateInput{
		Status:   "in_progress",
		Duration: "90",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, 90, updated.ActualDuration)
	assert.Equal(t, updated.StartTime.Add(90*time.Minute), updated.EndTime)
}

func TestStartRequiresPending(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

	a, err := svc.Schedule(ctx, regular, ScheduleInput{
		TaskID: task.ID, StartDate: "2025-06-16", StartTime: "09:00",
	})
	require.NoError(t, err)

	started, err := svc.Start(ctx, regular, a.ID, now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, started.Status)
	// explicit start never overwrites a populated start time
	assert.Equal(t, a.StartTime, started.StartTime)

	_, err = svc.Start(ctx, regular, a.ID, now)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "task is not in 'pending' state")
}

func TestCompleteFromAnyState(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

	a, err := svc.Schedule(ctx, regular, ScheduleInput{
		TaskID: task.ID, StartDate: "2025-06-16", StartTime: "09:00",
	})
	require.NoError(t, err)

	// straight from pending
	done, err := svc.Complete(ctx, regular, a.ID, now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	// populated end time is kept
	assert.Equal(t, a.EndTime, done.EndTime)

	// completing again is a no-op on state
	done, err = svc.Complete(ctx, regular, a.ID, now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
}

func TestDeleteCascadesFeedback(t *testing.T) {
	svc, repo, task := newAssignmentFixture(t)
	ctx := context.Background()

	a, err := svc.Schedule(ctx, regular, ScheduleInput{
		TaskID: task.ID, StartDate: "2025-06-16",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, regular, a.ID))
	assert.Equal(t, []int64{a.ID}, repo.cascaded)
}

func TestListScopesRegularUsers(t *testing.T) {
	svc, _, task := newAssignmentFixture(t)
	ctx := context.Background()

	_, err := svc.Schedule(ctx, regular, ScheduleInput{TaskID: task.ID, StartDate: "2025-06-16"})
	require.NoError(t, err)
	_, err = svc.Schedule(ctx, admin, ScheduleInput{TargetUserID: 3, TaskID: task.ID, StartDate: "2025-06-16"})
	require.NoError(t, err)

	mine, err := svc.List(ctx, regular, models.AssignmentFilter{}, true)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(1), mine[0].UserID)

	all, err := svc.List(ctx, admin, models.AssignmentFilter{}, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
