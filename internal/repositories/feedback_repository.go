package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
)

type FeedbackRepository interface {
	Store(ctx context.Context, f *models.Feedback) error
	FindByID(ctx context.Context, id int64) (*models.Feedback, error)
	FindAll(ctx context.Context) ([]models.Feedback, error)
	FindByUser(ctx context.Context, userID int64) ([]models.Feedback, error)
	FindByUserBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.Feedback, error)
	Update(ctx context.Context, f *models.Feedback) error
	Delete(ctx context.Context, id int64) error
}

type feedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

const feedbackColumns = `id, user_id, user_task_id, recorded_at, mood_before, mood_after, intensity, actual_duration, comments`

func (r *feedbackRepository) Store(ctx context.Context, f *models.Feedback) error {
	const q = `
		INSERT INTO feedback (user_id, user_task_id, recorded_at, mood_before, mood_after, intensity, actual_duration, comments)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		f.UserID, f.UserTaskID, f.Timestamp, f.MoodBefore, f.MoodAfter,
		f.Intensity, f.ActualDuration, f.Comments,
	).Scan(&f.ID)
}

func (r *feedbackRepository) FindByID(ctx context.Context, id int64) (*models.Feedback, error) {
	f := &models.Feedback{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE id = $1`, id).Scan(
		&f.ID, &f.UserID, &f.UserTaskID, &f.Timestamp, &f.MoodBefore,
		&f.MoodAfter, &f.Intensity, &f.ActualDuration, &f.Comments,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &models.NotFoundError{Entity: "feedback", ID: id}
		}
		return nil, err
	}
	return f, nil
}

func (r *feedbackRepository) FindAll(ctx context.Context) ([]models.Feedback, error) {
	return r.query(ctx, `SELECT `+feedbackColumns+` FROM feedback ORDER BY recorded_at DESC`)
}

func (r *feedbackRepository) FindByUser(ctx context.Context, userID int64) ([]models.Feedback, error) {
	return r.query(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE user_id = $1 ORDER BY recorded_at DESC`,
		userID)
}

func (r *feedbackRepository) FindByUserBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.Feedback, error) {
	return r.query(ctx,
		`SELECT `+feedbackColumns+` FROM feedback
		WHERE user_id = $1 AND recorded_at >= $2 AND recorded_at < $3
		ORDER BY recorded_at`,
		userID, from, to)
}

func (r *feedbackRepository) query(ctx context.Context, q string, args ...interface{}) ([]models.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Feedback
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.UserTaskID, &f.Timestamp,
			&f.MoodBefore, &f.MoodAfter, &f.Intensity, &f.ActualDuration, &f.Comments); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *feedbackRepository) Update(ctx context.Context, f *models.Feedback) error {
	const q = `
		UPDATE feedback SET
			user_id=$1, user_task_id=$2, recorded_at=$3, mood_before=$4,
			mood_after=$5, intensity=$6, actual_duration=$7, comments=$8
		WHERE id=$9`
	_, err := r.db.ExecContext(ctx, q,
		f.UserID, f.UserTaskID, f.Timestamp, f.MoodBefore, f.MoodAfter,
		f.Intensity, f.ActualDuration, f.Comments, f.ID,
	)
	return err
}

func (r *feedbackRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	return err
}
