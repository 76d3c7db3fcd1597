package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/pdf"
)

type fakeReportRepo struct {
	streak  int
	planner []models.ScoreRow
	history []models.HistoryRow
}

func (r *fakeReportRepo) DailyStreak(_ context.Context, _ int64) (int, error) {
	return r.streak, nil
}

func (r *fakeReportRepo) ModeBreakdown(_ context.Context, _ int64) ([]models.ModeMinutes, error) {
	return nil, nil
}

func (r *fakeReportRepo) Heatmap(_ context.Context, _ int64) ([]models.HeatmapCell, error) {
	return nil, nil
}

func (r *fakeReportRepo) PlannerRows(_ context.Context, _ int64, _ models.Category, _ time.Time) ([]models.ScoreRow, error) {
	return r.planner, nil
}

func (r *fakeReportRepo) HistoryRows(_ context.Context, _ int64) ([]models.HistoryRow, error) {
	return r.history, nil
}

type fakePDFGenerator struct {
	data pdf.WeeklyReportData
}

func (g *fakePDFGenerator) GenerateWeeklyReport(data pdf.WeeklyReportData) (string, error) {
	g.data = data
	return "/tmp/report.pdf", nil
}

func TestPlannerScoreNAWithoutRows(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, newFakeFeedbackRepo(), newFakeUserRepo(), &fakePDFGenerator{})

	view, err := svc.Planner(context.Background(), 1, models.CategoryFlow, time.Now())
	require.NoError(t, err)
	assert.Empty(t, view.Rows)
	assert.False(t, view.ScoreOK)
}

func TestPlannerScoresRows(t *testing.T) {
	reports := &fakeReportRepo{planner: []models.ScoreRow{
		{MoodBefore: intp(4), MoodAfter: intp(6), Intensity: intp(5), ActualDuration: intp(30)},
	}}
	svc := NewReportService(reports, newFakeFeedbackRepo(), newFakeUserRepo(), &fakePDFGenerator{})

	view, err := svc.Planner(context.Background(), 1, models.CategoryFlow, time.Now())
	require.NoError(t, err)
	require.True(t, view.ScoreOK)
	assert.Equal(t, 10.0, view.Score)
}

func TestWeeklyBalanceUsesFeedbackWindow(t *testing.T) {
	feedback := newFakeFeedbackRepo()
	now := time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC) // Wednesday
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	require.NoError(t, feedback.Store(context.Background(), &models.Feedback{
		UserID: 1, Timestamp: weekStart.Add(time.Hour),
		MoodBefore: intp(3), MoodAfter: intp(7), Intensity: intp(2), ActualDuration: intp(30),
	}))
	// outside the window
	require.NoError(t, feedback.Store(context.Background(), &models.Feedback{
		UserID: 1, Timestamp: weekStart.AddDate(0, 0, -1),
		MoodBefore: intp(1), MoodAfter: intp(10), Intensity: intp(9), ActualDuration: intp(90),
	}))

	svc := NewReportService(&fakeReportRepo{}, feedback, newFakeUserRepo(), &fakePDFGenerator{})
	gotStart, balance, err := svc.WeeklyBalance(context.Background(), 1, now)
	require.NoError(t, err)
	assert.Equal(t, weekStart, gotStart)
	require.NotNil(t, balance)
	assert.Equal(t, 8.0, *balance)
}

func TestWeeklyBalanceNilWithoutFeedback(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, newFakeFeedbackRepo(), newFakeUserRepo(), &fakePDFGenerator{})

	_, balance, err := svc.WeeklyBalance(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.Nil(t, balance)
}

func TestExportWeeklyReportFiltersWeekRows(t *testing.T) {
	now := time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	reports := &fakeReportRepo{history: []models.HistoryRow{
		{AssignmentID: 1, TaskName: "inside", StartTime: weekStart.Add(26 * time.Hour)},
		{AssignmentID: 2, TaskName: "before", StartTime: weekStart.Add(-time.Hour)},
		{AssignmentID: 3, TaskName: "after", StartTime: weekStart.AddDate(0, 0, 7)},
	}}
	users := newFakeUserRepo(models.User{ID: 1, Name: "Mara", Email: "mara@example.com", Role: models.RoleRegular})
	gen := &fakePDFGenerator{}
	svc := NewReportService(reports, newFakeFeedbackRepo(), users, gen)

	path, err := svc.ExportWeeklyReport(context.Background(), 1, now)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/report.pdf", path)
	assert.Equal(t, "Mara", gen.data.UserName)
	assert.Equal(t, weekStart, gen.data.WeekStart)
	require.Len(t, gen.data.Rows, 1)
	assert.Equal(t, int64(1), gen.data.Rows[0].AssignmentID)
}
