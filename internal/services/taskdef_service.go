package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/repositories"
)

// TaskDefinitionService manages the master task catalog. Route-level guards
// already restrict mutations to administrators.
type TaskDefinitionService interface {
	Create(ctx context.Context, in models.TaskDefinitionInput) (*models.TaskDefinition, error)
	GetByID(ctx context.Context, id int64) (*models.TaskDefinition, error)
	List(ctx context.Context) ([]models.TaskDefinition, error)
	Update(ctx context.Context, id int64, in models.TaskDefinitionInput) (*models.TaskDefinition, error)

	// Delete refuses with a ConflictError while assignments or feedback
	// still reference the task. DeleteCascade removes them first.
	Delete(ctx context.Context, id int64) error
	DeleteCascade(ctx context.Context, id int64) error
}

type taskDefinitionService struct {
	repo repositories.TaskDefinitionRepository
}

func NewTaskDefinitionService(repo repositories.TaskDefinitionRepository) TaskDefinitionService {
	return &taskDefinitionService{repo: repo}
}

func (s *taskDefinitionService) Create(ctx context.Context, in models.TaskDefinitionInput) (*models.TaskDefinition, error) {
	task, err := buildTaskDefinition(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskDefinitionService) GetByID(ctx context.Context, id int64) (*models.TaskDefinition, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *taskDefinitionService) List(ctx context.Context) ([]models.TaskDefinition, error) {
	return s.repo.FindAll(ctx)
}

func (s *taskDefinitionService) Update(ctx context.Context, id int64, in models.TaskDefinitionInput) (*models.TaskDefinition, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := models.TaskDefinitionInput{
		Name:        in.Name,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Intensity:   in.Intensity,
		Duration:    in.Duration,
	}
	if merged.Name == "" {
		merged.Name = existing.Name
	}
	if merged.Category == "" {
		merged.Category = string(existing.Category)
	}
	if merged.Subcategory == "" {
		merged.Subcategory = existing.Subcategory
	}
	if merged.Intensity == "" {
		merged.Intensity = strconv.Itoa(existing.DefaultIntensity)
	}
	if merged.Duration == "" {
		merged.Duration = strconv.Itoa(existing.DefaultDuration)
	}

	task, err := buildTaskDefinition(merged)
	if err != nil {
		return nil, err
	}
	task.ID = id
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskDefinitionService) Delete(ctx context.Context, id int64) error {
	assignments, feedback, err := s.repo.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if assignments > 0 || feedback > 0 {
		return &models.ConflictError{
			Msg: "task still has assignments or feedback; remove them first or delete with cascade",
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *taskDefinitionService) DeleteCascade(ctx context.Context, id int64) error {
	return s.repo.DeleteCascade(ctx, id)
}

// buildTaskDefinition validates raw input and fills taxonomy defaults for
// blank intensity/duration. All violations are accumulated; the subcategory
// is not checked when the category itself is invalid.
func buildTaskDefinition(in models.TaskDefinitionInput) (*models.TaskDefinition, error) {
	verr := &models.ValidationError{}

	if strings.TrimSpace(in.Name) == "" {
		verr.Add("task name cannot be empty")
	}

	category := models.Category(in.Category)
	if !category.Valid() {
		verr.Add("task category must be either 'Flow' or 'Motion'")
		return nil, verr
	}

	defaults, ok := models.DefaultsFor(category, in.Subcategory)
	if !ok {
		verr.Add("task subcategory must be one of: %s",
			strings.Join(models.Subcategories(category), ", "))
		return nil, verr
	}

	intensity := defaults.Intensity
	if strings.TrimSpace(in.Intensity) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(in.Intensity))
		switch {
		case err != nil:
			verr.Add("default intensity must be an integer")
		case n < 1 || n > 10:
			verr.Add("default intensity must be between 1 and 10")
		default:
			intensity = n
		}
	}

	duration := defaults.Duration
	if strings.TrimSpace(in.Duration) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(in.Duration))
		switch {
		case err != nil:
			verr.Add("default duration must be an integer")
		case n <= 0:
			verr.Add("default duration must be positive")
		default:
			duration = n
		}
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return &models.TaskDefinition{
		Name:             strings.TrimSpace(in.Name),
		Category:         category,
		Subcategory:      in.Subcategory,
		DefaultIntensity: intensity,
		DefaultDuration:  duration,
	}, nil
}
