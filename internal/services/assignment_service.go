package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/repositories"
)

// ScheduleInput carries raw scheduling form values. Exactly one of TaskID or
// NewTask selects the master task; NewTask delegates to the catalog service.
type ScheduleInput struct {
	TargetUserID int64                       `json:"user_id"`
	TaskID       int64                       `json:"task_id"`
	NewTask      *models.TaskDefinitionInput `json:"new_task,omitempty"`
	StartDate    string                      `json:"start_date"` // YYYY-MM-DD
	StartTime    string                      `json:"start_time"` // HH:MM
	Intensity    string                      `json:"intensity"`  // blank = task default
	Duration     string                      `json:"duration"`   // blank/garbage = task default
	Status       string                      `json:"status"`     // hint, normalized leniently
}

// AssignmentUpdateInput mirrors ScheduleInput for edits; blank fields keep
// or re-derive the current values.
type AssignmentUpdateInput struct {
	TargetUserID int64  `json:"user_id"`
	TaskID       int64  `json:"task_id"`
	StartDate    string `json:"start_date"`
	StartTime    string `json:"start_time"`
	Intensity    string `json:"intensity"`
	Duration     string `json:"duration"`
	Status       string `json:"status"`
}

type AssignmentService interface {
	Schedule(ctx context.Context, actor models.Actor, in ScheduleInput) (*models.Assignment, error)
	GetByID(ctx context.Context, actor models.Actor, id int64) (*models.Assignment, error)
	List(ctx context.Context, actor models.Actor, filter models.AssignmentFilter, ascending bool) ([]models.Assignment, error)
	Update(ctx context.Context, actor models.Actor, id int64, in AssignmentUpdateInput) (*models.Assignment, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error

	// Start moves a pending assignment to in_progress; Complete moves any
	// assignment to completed. Neither overwrites an already-populated
	// start/end time.
	Start(ctx context.Context, actor models.Actor, id int64, now time.Time) (*models.Assignment, error)
	Complete(ctx context.Context, actor models.Actor, id int64, now time.Time) (*models.Assignment, error)
}

type assignmentService struct {
	repo  repositories.AssignmentRepository
	tasks TaskDefinitionService
	users repositories.UserRepository
}

func NewAssignmentService(repo repositories.AssignmentRepository, tasks TaskDefinitionService, users repositories.UserRepository) AssignmentService {
	return &assignmentService{repo: repo, tasks: tasks, users: users}
}

func (s *assignmentService) Schedule(ctx context.Context, actor models.Actor, in ScheduleInput) (*models.Assignment, error) {
	// The acting user owns the assignment unless an administrator picked an
	// explicit target.
	userID := actor.UserID
	if actor.IsAdmin() && in.TargetUserID != 0 {
		userID = in.TargetUserID
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	var task *models.TaskDefinition
	var err error
	if in.NewTask != nil {
		task, err = s.tasks.Create(ctx, *in.NewTask)
	} else {
		task, err = s.tasks.GetByID(ctx, in.TaskID)
	}
	if err != nil {
		return nil, err
	}

	start, err := parseStart(in.StartDate, in.StartTime)
	if err != nil {
		return nil, err
	}

	intensity, err := resolveIntensity(in.Intensity, task.DefaultIntensity)
	if err != nil {
		return nil, err
	}
	duration := resolveDuration(in.Duration, task.DefaultDuration)

	a := &models.Assignment{
		UserID:         userID,
		TaskID:         task.ID,
		StartTime:      start,
		EndTime:        start.Add(time.Duration(duration) * time.Minute),
		Status:         models.NormalizeStatus(in.Status),
		Intensity:      intensity,
		ActualDuration: duration,
	}
	if err := s.repo.Store(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) GetByID(ctx context.Context, actor models.Actor, id int64) (*models.Assignment, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actor, a.UserID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) List(ctx context.Context, actor models.Actor, filter models.AssignmentFilter, ascending bool) ([]models.Assignment, error) {
	// Regular users only ever see their own rows.
	if !actor.IsAdmin() {
		filter.UserID = &actor.UserID
	}
	return s.repo.FindAll(ctx, filter, ascending)
}

func (s *assignmentService) Update(ctx context.Context, actor models.Actor, id int64, in AssignmentUpdateInput) (*models.Assignment, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actor, a.UserID); err != nil {
		return nil, err
	}

	if actor.IsAdmin() && in.TargetUserID != 0 {
		if _, err := s.users.GetByID(ctx, in.TargetUserID); err != nil {
			return nil, err
		}
		a.UserID = in.TargetUserID
	}

	if in.TaskID != 0 {
		a.TaskID = in.TaskID
	}
	task, err := s.tasks.GetByID(ctx, a.TaskID)
	if err != nil {
		return nil, err
	}

	if in.StartDate != "" || in.StartTime != "" {
		date := in.StartDate
		if date == "" {
			date = a.StartTime.Format("2006-01-02")
		}
		start, err := parseStart(date, in.StartTime)
		if err != nil {
			return nil, err
		}
		a.StartTime = start
	}

	if in.Intensity != "" {
		intensity, err := resolveIntensity(in.Intensity, task.DefaultIntensity)
		if err != nil {
			return nil, err
		}
		a.Intensity = intensity
	}
	if in.Duration != "" {
		a.ActualDuration = resolveDuration(in.Duration, task.DefaultDuration)
	}

	if in.Status != "" {
		next := models.NormalizeStatus(in.Status)
		if !canTransition(a.Status, next) {
			return nil, models.NewValidationError("status cannot move backwards")
		}
		a.Status = next
	}

	// End time always tracks start plus the effective duration.
	a.EndTime = a.StartTime.Add(time.Duration(a.ActualDuration) * time.Minute)

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(actor, a.UserID); err != nil {
		return err
	}
	return s.repo.DeleteCascade(ctx, id)
}

func (s *assignmentService) Start(ctx context.Context, actor models.Actor, id int64, now time.Time) (*models.Assignment, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actor, a.UserID); err != nil {
		return nil, err
	}
	if a.Status != models.StatusPending {
		return nil, models.NewValidationError("task is not in 'pending' state")
	}
	a.Status = models.StatusInProgress
	if a.StartTime.IsZero() {
		a.StartTime = now
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) Complete(ctx context.Context, actor models.Actor, id int64, now time.Time) (*models.Assignment, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actor, a.UserID); err != nil {
		return nil, err
	}
	// Completion is accepted from any prior state.
	a.Status = models.StatusCompleted
	if a.EndTime.IsZero() {
		a.EndTime = now
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func authorizeOwner(actor models.Actor, ownerID int64) error {
	if actor.IsAdmin() || actor.UserID == ownerID {
		return nil
	}
	return &models.AuthorizationError{Msg: "assignment belongs to another user"}
}

func parseStart(dateStr, timeStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		timeStr = "00:00"
	}
	start, err := time.Parse("2006-01-02 15:04", dateStr+" "+timeStr)
	if err != nil {
		return time.Time{}, models.NewValidationError("invalid datetime")
	}
	return start, nil
}

func resolveIntensity(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewValidationError("intensity must be an integer")
	}
	if n < 1 || n > 10 {
		return 0, models.NewValidationError("intensity must be between 1 and 10")
	}
	return n, nil
}

// resolveDuration never fails: a blank or unparsable override falls back to
// the task default instead of rejecting the whole operation.
func resolveDuration(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
