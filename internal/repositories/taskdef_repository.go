package repositories

import (
	"context"
	"database/sql"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
)

type TaskDefinitionRepository interface {
	Store(ctx context.Context, task *models.TaskDefinition) error
	FindByID(ctx context.Context, id int64) (*models.TaskDefinition, error)
	FindAll(ctx context.Context) ([]models.TaskDefinition, error)
	Update(ctx context.Context, task *models.TaskDefinition) error
	Delete(ctx context.Context, id int64) error

	// CountDependents reports how many assignment and feedback rows still
	// reference the task, for the guarded (non-cascading) delete.
	CountDependents(ctx context.Context, id int64) (assignments, feedback int, err error)

	// DeleteCascade removes feedback joined through the task's assignments,
	// then the assignments, then the task itself, atomically.
	DeleteCascade(ctx context.Context, id int64) error
}

type taskDefinitionRepository struct {
	db *sql.DB
}

func NewTaskDefinitionRepository(db *sql.DB) TaskDefinitionRepository {
	return &taskDefinitionRepository{db: db}
}

func (r *taskDefinitionRepository) Store(ctx context.Context, task *models.TaskDefinition) error {
	const q = `
		INSERT INTO tasks (name, category, subcategory, default_intensity, default_duration)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		task.Name, task.Category, task.Subcategory, task.DefaultIntensity, task.DefaultDuration,
	).Scan(&task.ID)
}

func (r *taskDefinitionRepository) FindByID(ctx context.Context, id int64) (*models.TaskDefinition, error) {
	const q = `SELECT id, name, category, subcategory, default_intensity, default_duration
		FROM tasks WHERE id = $1`
	task := &models.TaskDefinition{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&task.ID, &task.Name, &task.Category, &task.Subcategory,
		&task.DefaultIntensity, &task.DefaultDuration,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "task", ID: id}
		}
		return nil, err
	}
	return task, nil
}

func (r *taskDefinitionRepository) FindAll(ctx context.Context) ([]models.TaskDefinition, error) {
	const q = `SELECT id, name, category, subcategory, default_intensity, default_duration
		FROM tasks ORDER BY category, subcategory, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.TaskDefinition
	for rows.Next() {
		var t models.TaskDefinition
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Subcategory,
			&t.DefaultIntensity, &t.DefaultDuration); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskDefinitionRepository) Update(ctx context.Context, task *models.TaskDefinition) error {
	const q = `
		UPDATE tasks SET name=$1, category=$2, subcategory=$3,
			default_intensity=$4, default_duration=$5
		WHERE id=$6`
	_, err := r.db.ExecContext(ctx, q,
		task.Name, task.Category, task.Subcategory,
		task.DefaultIntensity, task.DefaultDuration, task.ID,
	)
	return err
}

func (r *taskDefinitionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *taskDefinitionRepository) CountDependents(ctx context.Context, id int64) (int, int, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM user_tasks WHERE task_id = $1),
			(SELECT COUNT(*) FROM feedback f
				JOIN user_tasks ut ON ut.id = f.user_task_id
				WHERE ut.task_id = $1)`
	var assignments, feedback int
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&assignments, &feedback); err != nil {
		return 0, 0, err
	}
	return assignments, feedback, nil
}

func (r *taskDefinitionRepository) DeleteCascade(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM feedback f
			USING user_tasks ut
			WHERE ut.id = f.user_task_id AND ut.task_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_tasks WHERE task_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
		return err
	})
}
