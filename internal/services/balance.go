package services

import (
	"math"
	"time"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
)

// BlockLength is the normalization constant: one standard work/exercise
// block in minutes. Duration ratios above or below 1 scale a row's
// contribution proportionally.
const BlockLength = 30

// ComputeBalanceScore aggregates a well-being score over planner rows.
// ok is false for an empty row set; callers surface that as the "NA"
// sentinel, which is distinct from the weekly balance's null.
func ComputeBalanceScore(rows []models.ScoreRow) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	total := 0.0
	for _, row := range rows {
		moodDelta := 0
		if row.MoodBefore != nil && row.MoodAfter != nil {
			moodDelta = *row.MoodAfter - *row.MoodBefore
		}
		intensity := row.DefaultIntensity
		if row.Intensity != nil {
			intensity = *row.Intensity
		}
		if intensity == 0 {
			intensity = 1
		}
		duration := row.DefaultDuration
		if row.ActualDuration != nil {
			duration = *row.ActualDuration
		}
		if duration == 0 {
			duration = BlockLength
		}
		total += float64(moodDelta) * float64(intensity) * (float64(duration) / BlockLength)
	}
	return round2(total / float64(len(rows))), true
}

// ComputeWeeklyBalance averages (moodAfter-moodBefore)*intensity*(duration/30)
// over feedback rows recorded within the 7-day window starting at weekStart.
// Rows missing any component are skipped, matching SQL AVG over NULLs. A nil
// result means no row qualified.
func ComputeWeeklyBalance(rows []models.Feedback, weekStart time.Time) *float64 {
	weekEnd := weekStart.AddDate(0, 0, 7)
	total := 0.0
	count := 0
	for _, f := range rows {
		if f.Timestamp.Before(weekStart) || !f.Timestamp.Before(weekEnd) {
			continue
		}
		if f.MoodBefore == nil || f.MoodAfter == nil || f.Intensity == nil || f.ActualDuration == nil {
			continue
		}
		total += float64(*f.MoodAfter-*f.MoodBefore) * float64(*f.Intensity) *
			(float64(*f.ActualDuration) / BlockLength)
		count++
	}
	if count == 0 {
		return nil
	}
	score := round2(total / float64(count))
	return &score
}

// WeekStart returns the Monday 00:00 anchoring the week containing t.
func WeekStart(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -daysSinceMonday)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
