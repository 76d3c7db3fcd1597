package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Thooms-coder/Shibui-Planner/internal/middleware"
	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/services"
)

type AssignmentHandler struct {
	assignments services.AssignmentService
	reconciler  *services.ReconcilerService
}

func NewAssignmentHandler(assignments services.AssignmentService, reconciler *services.ReconcilerService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, reconciler: reconciler}
}

// Schedule godoc
// @Summary      Schedule a task for a user
// @Description  Assigns an existing or inline-created task starting at the given date and time
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        assignment  body  services.ScheduleInput  true  "Assignment"
// @Success      201  {object}  handlers.assignmentView
// @Failure      400  {object}  map[string][]string
// @Security     BearerAuth
// @Router       /assignments [post]
func (h *AssignmentHandler) Schedule(c *gin.Context) {
	var in services.ScheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	a, err := h.assignments.Schedule(c.Request.Context(), getActor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewAssignment(a))
}

// List godoc
// @Summary      List assignments
// @Description  Regular users see their own rows; administrators may filter by user_id
// @Tags         assignments
// @Produce      json
// @Param        user_id   query  int     false  "Filter by owner (admin only)"
// @Param        category  query  string  false  "Filter by task category"
// @Param        order     query  string  false  "asc or desc by start time"  default(asc)
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	var filter models.AssignmentFilter
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		filter.UserID = &id
	}
	if raw := c.Query("category"); raw != "" {
		cat := models.Category(raw)
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		filter.Category = &cat
	}
	ascending := c.DefaultQuery("order", "asc") != "desc"

	list, err := h.assignments.List(c.Request.Context(), getActor(c), filter, ascending)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"assignments":   viewAssignments(list),
		"notifications": viewNotifications(middleware.Notifications(c)),
	})
}

// Get godoc
// @Summary      Get an assignment
// @Tags         assignments
// @Produce      json
// @Param        id  path  int  true  "Assignment ID"
// @Success      200  {object}  handlers.assignmentView
// @Security     BearerAuth
// @Router       /assignments/{id} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	a, err := h.assignments.GetByID(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewAssignment(a))
}

// Update godoc
// @Summary      Update an assignment
// @Description  Status may only move forward along pending, in_progress, completed
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        id          path  int                            true  "Assignment ID"
// @Param        assignment  body  services.AssignmentUpdateInput true  "Changed fields"
// @Success      200  {object}  handlers.assignmentView
// @Security     BearerAuth
// @Router       /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in services.AssignmentUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	a, err := h.assignments.Update(c.Request.Context(), getActor(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewAssignment(a))
}

// Delete godoc
// @Summary      Delete an assignment and its feedback
// @Tags         assignments
// @Param        id  path  int  true  "Assignment ID"
// @Success      204
// @Security     BearerAuth
// @Router       /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.assignments.Delete(c.Request.Context(), getActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Start godoc
// @Summary      Start a pending assignment now
// @Tags         assignments
// @Produce      json
// @Param        id  path  int  true  "Assignment ID"
// @Success      200  {object}  handlers.assignmentView
// @Failure      400  {object}  map[string][]string
// @Security     BearerAuth
// @Router       /assignments/{id}/start [post]
func (h *AssignmentHandler) Start(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	a, err := h.assignments.Start(c.Request.Context(), getActor(c), id, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewAssignment(a))
}

// Complete godoc
// @Summary      Mark an assignment completed now
// @Tags         assignments
// @Produce      json
// @Param        id  path  int  true  "Assignment ID"
// @Success      200  {object}  handlers.assignmentView
// @Security     BearerAuth
// @Router       /assignments/{id}/complete [post]
func (h *AssignmentHandler) Complete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	a, err := h.assignments.Complete(c.Request.Context(), getActor(c), id, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewAssignment(a))
}

// Reconcile godoc
// @Summary      Run the status sweep explicitly
// @Description  Advances overdue pending assignments to in_progress and past-end ones to completed
// @Tags         assignments
// @Produce      json
// @Param        now  query  string  false  "Override clock, YYYY-MM-DD HH:MM:SS"
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /assignments/reconcile [post]
func (h *AssignmentHandler) Reconcile(c *gin.Context) {
	now := time.Now()
	if raw := c.Query("now"); raw != "" {
		parsed, err := time.ParseInLocation(services.TimestampFormat, raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid now timestamp"})
			return
		}
		now = parsed
	}
	notifications, err := h.reconciler.Reconcile(c.Request.Context(), now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": viewNotifications(notifications)})
}
