package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thooms-coder/Shibui-Planner/internal/models"
	"github.com/Thooms-coder/Shibui-Planner/internal/services"
)

type TaskDefinitionHandler struct {
	tasks services.TaskDefinitionService
}

func NewTaskDefinitionHandler(tasks services.TaskDefinitionService) *TaskDefinitionHandler {
	return &TaskDefinitionHandler{tasks: tasks}
}

// Taxonomy godoc
// @Summary      List categories with their subcategory defaults
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Security     BearerAuth
// @Router       /tasks/taxonomy [get]
func (h *TaskDefinitionHandler) Taxonomy(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		string(models.CategoryFlow):   models.TaxonomyFor(models.CategoryFlow),
		string(models.CategoryMotion): models.TaxonomyFor(models.CategoryMotion),
	})
}

// Create godoc
// @Summary      Add a task to the catalog
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        task  body  models.TaskDefinitionInput  true  "New task"
// @Success      201  {object}  models.TaskDefinition
// @Failure      400  {object}  map[string][]string
// @Security     BearerAuth
// @Router       /tasks [post]
func (h *TaskDefinitionHandler) Create(c *gin.Context) {
	var in models.TaskDefinitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// Get godoc
// @Summary      Get a catalog task
// @Tags         tasks
// @Produce      json
// @Param        id  path  int  true  "Task ID"
// @Success      200  {object}  models.TaskDefinition
// @Security     BearerAuth
// @Router       /tasks/{id} [get]
func (h *TaskDefinitionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// List godoc
// @Summary      List the task catalog
// @Tags         tasks
// @Produce      json
// @Success      200  {array}  models.TaskDefinition
// @Security     BearerAuth
// @Router       /tasks [get]
func (h *TaskDefinitionHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Update godoc
// @Summary      Update a catalog task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path  int                         true  "Task ID"
// @Param        task  body  models.TaskDefinitionInput  true  "Changed fields"
// @Success      200  {object}  models.TaskDefinition
// @Security     BearerAuth
// @Router       /tasks/{id} [put]
func (h *TaskDefinitionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in models.TaskDefinitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	task, err := h.tasks.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary      Delete a catalog task
// @Description  Refuses when assignments or feedback reference the task unless cascade=true
// @Tags         tasks
// @Param        id       path   int     true   "Task ID"
// @Param        cascade  query  bool    false  "Also delete dependent assignments and feedback"
// @Success      204
// @Failure      409  {object}  map[string]string
// @Security     BearerAuth
// @Router       /tasks/{id} [delete]
func (h *TaskDefinitionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var err error
	if c.Query("cascade") == "true" {
		err = h.tasks.DeleteCascade(c.Request.Context(), id)
	} else {
		err = h.tasks.Delete(c.Request.Context(), id)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
