package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// targetUser resolves which user a report is about: regular users always get
// their own data, administrators may ask for anyone via user_id.
func targetUser(c *gin.Context) (int64, bool) {
	actor := getActor(c)
	if raw := c.Query("user_id"); raw != "" {
		if !actor.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "reports for other users require administrator role"})
			return 0, false
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return 0, false
		}
		return id, true
	}
	return actor.UserID, true
}

type scoreRowView struct {
	AssignmentID   int64  `json:"assignment_id"`
	TaskName       string `json:"task_name"`
	Category       string `json:"category"`
	Subcategory    string `json:"subcategory"`
	Status         string `json:"status"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	MoodBefore     *int   `json:"mood_before"`
	MoodAfter      *int   `json:"mood_after"`
	Intensity      *int   `json:"intensity"`
	ActualDuration *int   `json:"actual_duration"`
}

func viewScoreRows(rows []models.ScoreRow) []scoreRowView {
	out := make([]scoreRowView, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		out = append(out, scoreRowView{
			AssignmentID:   r.AssignmentID,
			TaskName:       r.TaskName,
			Category:       string(r.Category),
			Subcategory:    r.Subcategory,
			Status:         string(r.Status),
			StartTime:      fmtTS(r.StartTime),
			EndTime:        fmtTS(r.EndTime),
			MoodBefore:     r.MoodBefore,
			MoodAfter:      r.MoodAfter,
			Intensity:      r.Intensity,
			ActualDuration: r.ActualDuration,
		})
	}
	return out
}

type historyRowView struct {
	AssignmentID   int64  `json:"assignment_id"`
	TaskName       string `json:"task_name"`
	Category       string `json:"category"`
	Status         string `json:"status"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	MoodBefore     *int   `json:"mood_before"`
	MoodAfter      *int   `json:"mood_after"`
	ActualDuration *int   `json:"actual_duration"`
}

func viewHistoryRows(rows []models.HistoryRow) []historyRowView {
	out := make([]historyRowView, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		out = append(out, historyRowView{
			AssignmentID:   r.AssignmentID,
			TaskName:       r.TaskName,
			Category:       string(r.Category),
			Status:         string(r.Status),
			StartTime:      fmtTS(r.StartTime),
			EndTime:        fmtTS(r.EndTime),
			MoodBefore:     r.MoodBefore,
			MoodAfter:      r.MoodAfter,
			ActualDuration: r.ActualDuration,
		})
	}
	return out
}

// DailyStreak godoc
// @Summary      Consecutive days ending today with at least one completed assignment
// @Tags         reports
// @Produce      json
// @Success      200  {object}  map[string]int
// @Security     BearerAuth
// @Router       /reports/daily_streak [get]
func (h *ReportHandler) DailyStreak(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	streak, err := h.reports.DailyStreak(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

// ModeBreakdown godoc
// @Summary      Total completed minutes per category
// @Tags         reports
// @Produce      json
// @Success      200  {array}  models.ModeMinutes
// @Security     BearerAuth
// @Router       /reports/mode_breakdown [get]
func (h *ReportHandler) ModeBreakdown(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	rows, err := h.reports.ModeBreakdown(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Heatmap godoc
// @Summary      Assignment counts by start hour and weekday
// @Tags         reports
// @Produce      json
// @Success      200  {array}  models.HeatmapCell
// @Security     BearerAuth
// @Router       /reports/heatmap [get]
func (h *ReportHandler) Heatmap(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	cells, err := h.reports.Heatmap(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cells)
}

// Planner godoc
// @Summary      Planner view for one category with its balance score
// @Description  Score is "NA" when no row in the category has any feedback signal
// @Tags         reports
// @Produce      json
// @Param        mode  query  string  true  "Flow or Motion"
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /reports/planner [get]
func (h *ReportHandler) Planner(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	mode := models.Category(c.DefaultQuery("mode", string(models.CategoryFlow)))
	if !mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mode"})
		return
	}
	view, err := h.reports.Planner(c.Request.Context(), userID, mode, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	var score interface{} = "NA"
	if view.ScoreOK {
		score = view.Score
	}
	c.JSON(http.StatusOK, gin.H{
		"mode":          string(mode),
		"rows":          viewScoreRows(view.Rows),
		"balance_score": score,
	})
}

// History godoc
// @Summary      Assignment history, most recent first
// @Tags         reports
// @Produce      json
// @Success      200  {array}  handlers.historyRowView
// @Security     BearerAuth
// @Router       /reports/history [get]
func (h *ReportHandler) History(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	rows, err := h.reports.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewHistoryRows(rows))
}

// WeeklyBalance godoc
// @Summary      Mean mood delta over the current Monday-anchored week
// @Description  balance is null when no feedback in the week carries all four signals
// @Tags         reports
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /reports/weekly_balance [get]
func (h *ReportHandler) WeeklyBalance(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	weekStart, balance, err := h.reports.WeeklyBalance(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"week_start": weekStart.Format("2006-01-02"),
		"balance":    balance,
	})
}

// ExportWeekly godoc
// @Summary      Export the current week as a PDF report
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Security     BearerAuth
// @Router       /reports/weekly/export [get]
func (h *ReportHandler) ExportWeekly(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	path, err := h.reports.ExportWeeklyReport(c.Request.Context(), userID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "weekly_report.pdf")
}
