package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/services"
)

func getActor(c *gin.Context) models.Actor {
	actor := models.Actor{Role: models.RoleRegular}
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int64); ok {
			actor.UserID = id
		}
	}
	if v, ok := c.Get("role"); ok {
		if r, ok := v.(string); ok {
			actor.Role = models.Role(r)
		}
	}
	return actor
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps domain errors onto HTTP statuses. Validation failures
// carry the full accumulated message list so a form can show all of them.
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Messages})
		return
	}
	var nferr *models.NotFoundError
	if errors.As(err, &nferr) {
		c.JSON(http.StatusNotFound, gin.H{"error": nferr.Error()})
		return
	}
	var aerr *models.AuthorizationError
	if errors.As(err, &aerr) {
		c.JSON(http.StatusForbidden, gin.H{"error": aerr.Error()})
		return
	}
	var cerr *models.ConflictError
	if errors.As(err, &cerr) {
		c.JSON(http.StatusConflict, gin.H{"error": cerr.Error()})
		return
	}
	log.Printf("[http][err] %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// Boundary formats: timestamps YYYY-MM-DD HH:MM:SS, dates YYYY-MM-DD.
func fmtTS(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(services.TimestampFormat)
}

type assignmentView struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	TaskID         int64  `json:"task_id"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Status         string `json:"status"`
	Intensity      int    `json:"intensity"`
	ActualDuration int    `json:"actual_duration"`
}

func viewAssignment(a *models.Assignment) assignmentView {
	return assignmentView{
		ID:             a.ID,
		UserID:         a.UserID,
		TaskID:         a.TaskID,
		StartTime:      fmtTS(a.StartTime),
		EndTime:        fmtTS(a.EndTime),
		Status:         string(a.Status),
		Intensity:      a.Intensity,
		ActualDuration: a.ActualDuration,
	}
}

func viewAssignments(list []models.Assignment) []assignmentView {
	out := make([]assignmentView, 0, len(list))
	for i := range list {
		out = append(out, viewAssignment(&list[i]))
	}
	return out
}

type feedbackView struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	UserTaskID     int64  `json:"user_task_id"`
	Timestamp      string `json:"timestamp"`
	MoodBefore     *int   `json:"mood_before"`
	MoodAfter      *int   `json:"mood_after"`
	Intensity      *int   `json:"intensity"`
	ActualDuration *int   `json:"actual_duration"`
	Comments       string `json:"comments"`
}

func viewFeedback(f *models.Feedback) feedbackView {
	return feedbackView{
		ID:             f.ID,
		UserID:         f.UserID,
		UserTaskID:     f.UserTaskID,
		Timestamp:      fmtTS(f.Timestamp),
		MoodBefore:     f.MoodBefore,
		MoodAfter:      f.MoodAfter,
		Intensity:      f.Intensity,
		ActualDuration: f.ActualDuration,
		Comments:       f.Comments,
	}
}

func viewFeedbackList(list []models.Feedback) []feedbackView {
	out := make([]feedbackView, 0, len(list))
	for i := range list {
		out = append(out, viewFeedback(&list[i]))
	}
	return out
}

type notificationView struct {
	Type         string `json:"type"`
	AssignmentID int64  `json:"assignment_id"`
	CreatedAt    string `json:"created_at"`
}

func viewNotifications(list []models.Notification) []notificationView {
	out := make([]notificationView, 0, len(list))
	for _, n := range list {
		out = append(out, notificationView{
			Type:         n.Type,
			AssignmentID: n.AssignmentID,
			CreatedAt:    fmtTS(n.CreatedAt),
		})
	}
	return out
}
