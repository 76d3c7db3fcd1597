package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
)

// SweptRow identifies one assignment promoted by a reconciler sweep step.
type SweptRow struct {
	ID     int64
	UserID int64
}

type AssignmentRepository interface {
	Store(ctx context.Context, a *models.Assignment) error
	FindByID(ctx context.Context, id int64) (*models.Assignment, error)
	FindAll(ctx context.Context, filter models.AssignmentFilter, ascending bool) ([]models.Assignment, error)
	Update(ctx context.Context, a *models.Assignment) error
	Delete(ctx context.Context, id int64) error

	// DeleteCascade removes the assignment's feedback first, then the
	// assignment, atomically.
	DeleteCascade(ctx context.Context, id int64) error

	// SweepDue runs both reconciler steps in one transaction: pending rows
	// whose start has passed, then in-progress rows whose end has passed.
	// Each step is a single batched statement. The pending step runs first
	// so a row past both thresholds moves through both states in one pass.
	SweepDue(ctx context.Context, now time.Time) (started, completed []SweptRow, err error)
}

type assignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Store(ctx context.Context, a *models.Assignment) error {
	const q = `
		INSERT INTO user_tasks (user_id, task_id, start_time, end_time, status, intensity, actual_duration)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		a.UserID, a.TaskID, a.StartTime, a.EndTime, a.Status, a.Intensity, a.ActualDuration,
	).Scan(&a.ID)
}

func (r *assignmentRepository) FindByID(ctx context.Context, id int64) (*models.Assignment, error) {
	const q = `SELECT id, user_id, task_id, start_time, end_time, status, intensity, actual_duration
		FROM user_tasks WHERE id = $1`
	a := &models.Assignment{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.UserID, &a.TaskID, &a.StartTime, &a.EndTime,
		&a.Status, &a.Intensity, &a.ActualDuration,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "assignment", ID: id}
		}
		return nil, err
	}
	return a, nil
}

func (r *assignmentRepository) FindAll(ctx context.Context, filter models.AssignmentFilter, ascending bool) ([]models.Assignment, error) {
	base := `SELECT ut.id, ut.user_id, ut.task_id, ut.start_time, ut.end_time,
		ut.status, ut.intensity, ut.actual_duration
		FROM user_tasks ut`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.Category != nil {
		base += " JOIN tasks t ON t.id = ut.task_id"
		conditions = append(conditions, fmt.Sprintf("t.category = $%d", argID))
		args = append(args, *filter.Category)
		argID++
	}
	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("ut.user_id = $%d", argID))
		args = append(args, *filter.UserID)
		argID++
	}

	if len(conditions) > 0 {
		base += " WHERE " + strings.Join(conditions, " AND ")
	}
	if ascending {
		base += " ORDER BY ut.start_time ASC"
	} else {
		base += " ORDER BY ut.start_time DESC"
	}

	rows, err := r.db.QueryContext(ctx, base, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.TaskID, &a.StartTime, &a.EndTime,
			&a.Status, &a.Intensity, &a.ActualDuration); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *assignmentRepository) Update(ctx context.Context, a *models.Assignment) error {
	const q = `
		UPDATE user_tasks SET
			user_id=$1, task_id=$2, start_time=$3, end_time=$4,
			status=$5, intensity=$6, actual_duration=$7
		WHERE id=$8`
	_, err := r.db.ExecContext(ctx, q,
		a.UserID, a.TaskID, a.StartTime, a.EndTime,
		a.Status, a.Intensity, a.ActualDuration, a.ID,
	)
	return err
}

func (r *assignmentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_tasks WHERE id = $1`, id)
	return err
}

func (r *assignmentRepository) DeleteCascade(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM feedback WHERE user_task_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM user_tasks WHERE id = $1`, id)
		return err
	})
}

func (r *assignmentRepository) SweepDue(ctx context.Context, now time.Time) ([]SweptRow, []SweptRow, error) {
	var started, completed []SweptRow
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		started, err = sweepStep(ctx, tx, `
			UPDATE user_tasks SET status='in_progress'
			WHERE status='pending' AND start_time <= $1
			RETURNING id, user_id`, now)
		if err != nil {
			return err
		}
		completed, err = sweepStep(ctx, tx, `
			UPDATE user_tasks SET status='completed'
			WHERE status='in_progress' AND end_time <= $1
			RETURNING id, user_id`, now)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return started, completed, nil
}

func sweepStep(ctx context.Context, tx *sql.Tx, q string, now time.Time) ([]SweptRow, error) {
	rows, err := tx.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SweptRow
	for rows.Next() {
		var s SweptRow
		if err := rows.Scan(&s.ID, &s.UserID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
