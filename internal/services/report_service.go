package services

import (
	"context"
	"time"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/pdf"
	"github.com/Thooms-coder/Shibui-Planner/internal/repositories"
)

// PlannerView is the per-category planner: rows plus their balance score.
// ScoreOK false means no rows, surfaced to the client as the "NA" sentinel.
type PlannerView struct {
	Rows    []models.ScoreRow
	Score   float64
	ScoreOK bool
}

type ReportService struct {
	reports  repositories.ReportRepository
	feedback repositories.FeedbackRepository
	users    repositories.UserRepository
	pdfGen   pdf.Generator
}

func NewReportService(reports repositories.ReportRepository, feedback repositories.FeedbackRepository, users repositories.UserRepository, pdfGen pdf.Generator) *ReportService {
	return &ReportService{reports: reports, feedback: feedback, users: users, pdfGen: pdfGen}
}

func (s *ReportService) DailyStreak(ctx context.Context, userID int64) (int, error) {
	return s.reports.DailyStreak(ctx, userID)
}

func (s *ReportService) ModeBreakdown(ctx context.Context, userID int64) ([]models.ModeMinutes, error) {
	return s.reports.ModeBreakdown(ctx, userID)
}

func (s *ReportService) Heatmap(ctx context.Context, userID int64) ([]models.HeatmapCell, error) {
	return s.reports.Heatmap(ctx, userID)
}

func (s *ReportService) Planner(ctx context.Context, userID int64, category models.Category, now time.Time) (*PlannerView, error) {
	rows, err := s.reports.PlannerRows(ctx, userID, category, now)
	if err != nil {
		return nil, err
	}
	score, ok := ComputeBalanceScore(rows)
	return &PlannerView{Rows: rows, Score: score, ScoreOK: ok}, nil
}

func (s *ReportService) History(ctx context.Context, userID int64) ([]models.HistoryRow, error) {
	return s.reports.HistoryRows(ctx, userID)
}

// WeeklyBalance scores the Monday-anchored week containing now from the
// user's feedback rows alone. A nil score means no feedback qualified,
// which is distinct from the planner's "NA".
func (s *ReportService) WeeklyBalance(ctx context.Context, userID int64, now time.Time) (time.Time, *float64, error) {
	weekStart := WeekStart(now)
	rows, err := s.feedback.FindByUserBetween(ctx, userID, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return time.Time{}, nil, err
	}
	return weekStart, ComputeWeeklyBalance(rows, weekStart), nil
}

// ExportWeeklyReport writes the week's balance report as a PDF and returns
// the file path.
func (s *ReportService) ExportWeeklyReport(ctx context.Context, userID int64, now time.Time) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	weekStart, score, err := s.WeeklyBalance(ctx, userID, now)
	if err != nil {
		return "", err
	}
	history, err := s.reports.HistoryRows(ctx, userID)
	if err != nil {
		return "", err
	}

	var weekRows []models.HistoryRow
	weekEnd := weekStart.AddDate(0, 0, 7)
	for _, row := range history {
		if !row.StartTime.Before(weekStart) && row.StartTime.Before(weekEnd) {
			weekRows = append(weekRows, row)
		}
	}

	return s.pdfGen.GenerateWeeklyReport(pdf.WeeklyReportData{
		UserName:  user.Name,
		WeekStart: weekStart,
		Score:     score,
		Rows:      weekRows,
	})
}
