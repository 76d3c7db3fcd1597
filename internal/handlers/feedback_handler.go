package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/services"
)

type FeedbackHandler struct {
	feedback services.FeedbackService
}

func NewFeedbackHandler(feedback services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Record godoc
// @Summary      Record feedback for an assignment
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        feedback  body  models.FeedbackInput  true  "Feedback"
// @Success      201  {object}  handlers.feedbackView
// @Failure      400  {object}  map[string][]string
// @Security     BearerAuth
// @Router       /feedback [post]
func (h *FeedbackHandler) Record(c *gin.Context) {
	var in models.FeedbackInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	f, err := h.feedback.Record(c.Request.Context(), getActor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewFeedback(f))
}

// List godoc
// @Summary      List feedback
// @Description  Regular users see their own entries; administrators may filter by user_id
// @Tags         feedback
// @Produce      json
// @Param        user_id  query  int  false  "Filter by owner (admin only)"
// @Success      200  {array}  handlers.feedbackView
// @Security     BearerAuth
// @Router       /feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	var target int64
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		target = id
	}
	list, err := h.feedback.List(c.Request.Context(), getActor(c), target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewFeedbackList(list))
}

// Get godoc
// @Summary      Get a feedback entry
// @Tags         feedback
// @Produce      json
// @Param        id  path  int  true  "Feedback ID"
// @Success      200  {object}  handlers.feedbackView
// @Security     BearerAuth
// @Router       /feedback/{id} [get]
func (h *FeedbackHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	f, err := h.feedback.GetByID(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewFeedback(f))
}

// Update godoc
// @Summary      Update a feedback entry
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        id        path  int                   true  "Feedback ID"
// @Param        feedback  body  models.FeedbackInput  true  "Changed fields"
// @Success      200  {object}  handlers.feedbackView
// @Security     BearerAuth
// @Router       /feedback/{id} [put]
func (h *FeedbackHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in models.FeedbackInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	f, err := h.feedback.Update(c.Request.Context(), getActor(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewFeedback(f))
}

// Delete godoc
// @Summary      Delete a feedback entry
// @Tags         feedback
// @Param        id  path  int  true  "Feedback ID"
// @Success      204
// @Security     BearerAuth
// @Router       /feedback/{id} [delete]
func (h *FeedbackHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.feedback.Delete(c.Request.Context(), getActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
