package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/repositories"
)

// TimestampFormat is the canonical textual timestamp crossing the service
// boundary. Input may use a T or a space separator; storage is normalized.
const TimestampFormat = "2006-01-02 15:04:05"

type FeedbackService interface {
	Record(ctx context.Context, actor models.Actor, in models.FeedbackInput) (*models.Feedback, error)
	GetByID(ctx context.Context, actor models.Actor, id int64) (*models.Feedback, error)
	List(ctx context.Context, actor models.Actor, targetUser int64) ([]models.Feedback, error)
	Update(ctx context.Context, actor models.Actor, id int64, in models.FeedbackInput) (*models.Feedback, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
}

type feedbackService struct {
	repo        repositories.FeedbackRepository
	assignments repositories.AssignmentRepository
}

func NewFeedbackService(repo repositories.FeedbackRepository, assignments repositories.AssignmentRepository) FeedbackService {
	return &feedbackService{repo: repo, assignments: assignments}
}

func (s *feedbackService) Record(ctx context.Context, actor models.Actor, in models.FeedbackInput) (*models.Feedback, error) {
	userID := actor.UserID
	if actor.IsAdmin() && in.TargetUserID != 0 {
		userID = in.TargetUserID
	}

	verr := &models.ValidationError{}

	if in.UserTaskID == 0 {
		verr.Add("assignment is required")
	} else if _, err := s.assignments.FindByID(ctx, in.UserTaskID); err != nil {
		if _, ok := err.(*models.NotFoundError); ok {
			verr.Add("assignment %d does not exist", in.UserTaskID)
		} else {
			return nil, err
		}
	}

	f := &models.Feedback{
		UserID:     userID,
		UserTaskID: in.UserTaskID,
		Comments:   strings.TrimSpace(in.Comments),
	}
	applyFeedbackFields(f, in, verr)

	if err := verr.Err(); err != nil {
		return nil, err
	}
	if err := s.repo.Store(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *feedbackService) GetByID(ctx context.Context, actor models.Actor, id int64) (*models.Feedback, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actor, f.UserID); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *feedbackService) List(ctx context.Context, actor models.Actor, targetUser int64) ([]models.Feedback, error) {
	if !actor.IsAdmin() {
		return s.repo.FindByUser(ctx, actor.UserID)
	}
	if targetUser == 0 {
		return s.repo.FindAll(ctx)
	}
	return s.repo.FindByUser(ctx, targetUser)
}

// Update loads the existing row, merges only the provided fields, then
// re-validates with the same rules as Record.
func (s *feedbackService) Update(ctx context.Context, actor models.Actor, id int64, in models.FeedbackInput) (*models.Feedback, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actor, f.UserID); err != nil {
		return nil, err
	}

	if actor.IsAdmin() && in.TargetUserID != 0 {
		f.UserID = in.TargetUserID
	}
	if in.UserTaskID != 0 && in.UserTaskID != f.UserTaskID {
		if _, err := s.assignments.FindByID(ctx, in.UserTaskID); err != nil {
			return nil, err
		}
		f.UserTaskID = in.UserTaskID
	}
	if in.Comments != "" {
		f.Comments = strings.TrimSpace(in.Comments)
	}

	verr := &models.ValidationError{}
	if in.Timestamp == "" {
		// keep the stored timestamp
		in.Timestamp = f.Timestamp.Format(TimestampFormat)
	}
	applyFeedbackFields(f, in, verr)

	if err := verr.Err(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *feedbackService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(actor, f.UserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// applyFeedbackFields parses and validates the raw numeric/timestamp fields,
// accumulating every violation instead of stopping at the first.
func applyFeedbackFields(f *models.Feedback, in models.FeedbackInput, verr *models.ValidationError) {
	if strings.TrimSpace(in.Timestamp) == "" {
		verr.Add("timestamp is required")
	} else if ts, err := ParseTimestamp(in.Timestamp); err != nil {
		verr.Add("invalid timestamp format")
	} else {
		f.Timestamp = ts
	}

	f.MoodBefore = parseMood("mood before", in.MoodBefore, f.MoodBefore, verr)
	f.MoodAfter = parseMood("mood after", in.MoodAfter, f.MoodAfter, verr)

	if v := strings.TrimSpace(in.Intensity); v != "" {
		if n, err := strconv.Atoi(v); err != nil {
			verr.Add("intensity must be an integer")
		} else {
			f.Intensity = &n
		}
	}
	if v := strings.TrimSpace(in.ActualDuration); v != "" {
		if n, err := strconv.Atoi(v); err != nil {
			verr.Add("actual duration must be an integer")
		} else {
			f.ActualDuration = &n
		}
	}
}

func parseMood(field, raw string, current *int, verr *models.ValidationError) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return current
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		verr.Add("%s must be an integer", field)
		return current
	}
	if n < 1 || n > 10 {
		verr.Add("%s must be between 1 and 10", field)
		return current
	}
	return &n
}

// ParseTimestamp accepts YYYY-MM-DD HH:MM:SS with either a space or a T
// separator, with or without seconds.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.Replace(strings.TrimSpace(raw), " ", "T", 1)
	ts, err := time.Parse("2006-01-02T15:04:05", raw)
	if err != nil {
		ts, err = time.Parse("2006-01-02T15:04", raw)
	}
	return ts, err
}
