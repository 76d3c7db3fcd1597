package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
)

type ReportRepository interface {
	// DailyStreak counts the current run of consecutive days with at least
	// one completed assignment.
	DailyStreak(ctx context.Context, userID int64) (int, error)
	ModeBreakdown(ctx context.Context, userID int64) ([]models.ModeMinutes, error)
	Heatmap(ctx context.Context, userID int64) ([]models.HeatmapCell, error)

	// PlannerRows joins assignments with task defaults and feedback for one
	// category, ascending by start time. Status is derived from now rather
	// than the stored column so the view never lags the clock.
	PlannerRows(ctx context.Context, userID int64, category models.Category, now time.Time) ([]models.ScoreRow, error)

	// HistoryRows lists a user's assignments with feedback, newest first.
	HistoryRows(ctx context.Context, userID int64) ([]models.HistoryRow, error)
}

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) DailyStreak(ctx context.Context, userID int64) (int, error) {
	const q = `
		WITH days AS (
			SELECT DISTINCT end_time::date AS d
			FROM user_tasks
			WHERE user_id = $1 AND status = 'completed'
		), runs AS (
			SELECT d, d - (ROW_NUMBER() OVER (ORDER BY d))::int AS grp
			FROM days
		)
		SELECT COUNT(*) FROM runs
		WHERE grp = (SELECT grp FROM runs ORDER BY d DESC LIMIT 1)`
	var streak int
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&streak); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return streak, nil
}

func (r *reportRepository) ModeBreakdown(ctx context.Context, userID int64) ([]models.ModeMinutes, error) {
	const q = `
		SELECT t.category,
			COALESCE(SUM(EXTRACT(EPOCH FROM (ut.end_time - ut.start_time)) / 60), 0)::bigint
		FROM user_tasks ut
		JOIN tasks t ON t.id = ut.task_id
		WHERE ut.user_id = $1
		GROUP BY t.category`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ModeMinutes
	for rows.Next() {
		var m models.ModeMinutes
		if err := rows.Scan(&m.Mode, &m.TotalMinutes); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *reportRepository) Heatmap(ctx context.Context, userID int64) ([]models.HeatmapCell, error) {
	const q = `
		SELECT EXTRACT(HOUR FROM start_time)::int,
			EXTRACT(DOW FROM start_time)::int,
			COUNT(*)
		FROM user_tasks
		WHERE user_id = $1
		GROUP BY 1, 2`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HeatmapCell
	for rows.Next() {
		var c models.HeatmapCell
		if err := rows.Scan(&c.Hour, &c.Weekday, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *reportRepository) PlannerRows(ctx context.Context, userID int64, category models.Category, now time.Time) ([]models.ScoreRow, error) {
	const q = `
		SELECT ut.id, t.name, t.category, t.subcategory,
			CASE
				WHEN $3 < ut.start_time THEN 'pending'
				WHEN $3 < ut.end_time THEN 'in_progress'
				ELSE 'completed'
			END,
			ut.start_time, ut.end_time,
			f.mood_before, f.mood_after, f.intensity, f.actual_duration,
			t.default_intensity, t.default_duration
		FROM user_tasks ut
		JOIN tasks t ON t.id = ut.task_id
		LEFT JOIN feedback f ON f.user_task_id = ut.id
		WHERE ut.user_id = $1 AND t.category = $2
		ORDER BY ut.start_time`
	rows, err := r.db.QueryContext(ctx, q, userID, category, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ScoreRow
	for rows.Next() {
		var sr models.ScoreRow
		if err := rows.Scan(&sr.AssignmentID, &sr.TaskName, &sr.Category, &sr.Subcategory,
			&sr.Status, &sr.StartTime, &sr.EndTime,
			&sr.MoodBefore, &sr.MoodAfter, &sr.Intensity, &sr.ActualDuration,
			&sr.DefaultIntensity, &sr.DefaultDuration); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

func (r *reportRepository) HistoryRows(ctx context.Context, userID int64) ([]models.HistoryRow, error) {
	const q = `
		SELECT ut.id, t.name, t.category, ut.status, ut.start_time, ut.end_time,
			f.mood_before, f.mood_after, f.actual_duration
		FROM user_tasks ut
		JOIN tasks t ON t.id = ut.task_id
		LEFT JOIN feedback f ON f.user_task_id = ut.id
		WHERE ut.user_id = $1
		ORDER BY ut.start_time DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HistoryRow
	for rows.Next() {
		var h models.HistoryRow
		if err := rows.Scan(&h.AssignmentID, &h.TaskName, &h.Category, &h.Status,
			&h.StartTime, &h.EndTime, &h.MoodBefore, &h.MoodAfter, &h.ActualDuration); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
