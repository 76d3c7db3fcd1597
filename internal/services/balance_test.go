package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
)

func intp(n int) *int { return &n }

func TestComputeBalanceScoreEmpty(t *testing.T) {
	_, ok := ComputeBalanceScore(nil)
	assert.False(t, ok)
}

func TestComputeBalanceScoreSingleRow(t *testing.T) {
	rows := []models.ScoreRow{{
		MoodBefore:     intp(5),
		MoodAfter:      intp(8),
		Intensity:      intp(6),
		ActualDuration: intp(30),
	}}
	score, ok := ComputeBalanceScore(rows)
	require.True(t, ok)
	// (8-5) * 6 * 30/30 = 18
	assert.Equal(t, 18.0, score)
}

func TestComputeBalanceScoreMissingMoodsContributeZero(t *testing.T) {
	rows := []models.ScoreRow{
		{MoodBefore: intp(4), MoodAfter: intp(8), Intensity: intp(5), ActualDuration: intp(30)},
		{Intensity: intp(9), ActualDuration: intp(60)}, // no moods, delta 0
	}
	score, ok := ComputeBalanceScore(rows)
	require.True(t, ok)
	// (4*5*1 + 0) / 2
	assert.Equal(t, 10.0, score)
}

func TestComputeBalanceScoreFallbacks(t *testing.T) {
	// No feedback values at all: defaults fill in, zero defaults fall back
	// to 1 and the block length.
	rows := []models.ScoreRow{{
		MoodBefore: intp(3),
		MoodAfter:  intp(6),
	}}
	score, ok := ComputeBalanceScore(rows)
	require.True(t, ok)
	// delta 3, intensity 0->1, duration 0->30 so ratio 1
	assert.Equal(t, 3.0, score)

	rows[0].DefaultIntensity = 4
	rows[0].DefaultDuration = 60
	score, ok = ComputeBalanceScore(rows)
	require.True(t, ok)
	// 3 * 4 * 60/30
	assert.Equal(t, 24.0, score)
}

func TestComputeBalanceScoreRounding(t *testing.T) {
	rows := []models.ScoreRow{
		{MoodBefore: intp(5), MoodAfter: intp(6), Intensity: intp(1), ActualDuration: intp(10)},
		{MoodBefore: intp(5), MoodAfter: intp(6), Intensity: intp(1), ActualDuration: intp(10)},
		{MoodBefore: intp(5), MoodAfter: intp(6), Intensity: intp(1), ActualDuration: intp(10)},
	}
	score, ok := ComputeBalanceScore(rows)
	require.True(t, ok)
	// each row contributes 10/30, mean is 1/3 rounded to 0.33
	assert.Equal(t, 0.33, score)
}

func TestWeekStart(t *testing.T) {
	// 2025-06-18 is a Wednesday
	wed := time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), WeekStart(wed))

	// Monday anchors to itself
	mon := time.Date(2025, 6, 16, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), WeekStart(mon))

	// Sunday belongs to the week started the previous Monday
	sun := time.Date(2025, 6, 22, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), WeekStart(sun))
}

func TestComputeWeeklyBalance(t *testing.T) {
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	inWeek := weekStart.Add(36 * time.Hour)
	rows := []models.Feedback{
		{Timestamp: inWeek, MoodBefore: intp(4), MoodAfter: intp(7), Intensity: intp(2), ActualDuration: intp(30)},
		{Timestamp: inWeek, MoodBefore: intp(6), MoodAfter: intp(6), Intensity: intp(5), ActualDuration: intp(60)},
	}
	got := ComputeWeeklyBalance(rows, weekStart)
	require.NotNil(t, got)
	// (3*2*1 + 0*5*2) / 2
	assert.Equal(t, 3.0, *got)
}

func TestComputeWeeklyBalanceSkipsIncompleteRows(t *testing.T) {
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	inWeek := weekStart.Add(24 * time.Hour)
	rows := []models.Feedback{
		{Timestamp: inWeek, MoodBefore: intp(4), MoodAfter: intp(7)}, // no intensity/duration
		{Timestamp: inWeek, MoodBefore: intp(1), MoodAfter: intp(9), Intensity: intp(3), ActualDuration: intp(30)},
	}
	got := ComputeWeeklyBalance(rows, weekStart)
	require.NotNil(t, got)
	assert.Equal(t, 24.0, *got)
}

func TestComputeWeeklyBalanceWindow(t *testing.T) {
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	full := func(ts time.Time) models.Feedback {
		return models.Feedback{Timestamp: ts, MoodBefore: intp(1), MoodAfter: intp(2), Intensity: intp(1), ActualDuration: intp(30)}
	}
	rows := []models.Feedback{
		full(weekStart.Add(-time.Second)),     // before the window
		full(weekStart.AddDate(0, 0, 7)),      // exactly at the exclusive end
		full(weekStart),                       // inclusive start
		full(weekStart.AddDate(0, 0, 7).Add(-time.Second)),
	}
	got := ComputeWeeklyBalance(rows, weekStart)
	require.NotNil(t, got)
	assert.Equal(t, 1.0, *got)
}

func TestComputeWeeklyBalanceNoQualifyingRows(t *testing.T) {
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, ComputeWeeklyBalance(nil, weekStart))

	rows := []models.Feedback{
		{Timestamp: weekStart.Add(time.Hour), MoodBefore: intp(5)},
	}
	assert.Nil(t, ComputeWeeklyBalance(rows, weekStart))
}
