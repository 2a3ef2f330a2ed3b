package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskhub/backend/internal/model"
	"github.com/taskhub/backend/internal/service"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// List godoc
// @Summary List tasks
// @Description All tasks owned by the authenticated user. An empty list is a normal 200.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.TaskListResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	user := GetAuthUser(c)
	tasks, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.TaskListResponse{Tasks: tasks})
}

// Get godoc
// @Summary Get a task
// @Description A task that exists but belongs to another user is reported as not found.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.TaskEnvelope
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	user := GetAuthUser(c)
	task, err := h.svc.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.TaskEnvelope{Task: *task})
}

// Create godoc
// @Summary Create a task
// @Description The owner is always the authenticated user; any owner field in the body is ignored.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateTaskRequest true "Task fields"
// @Success 201 {object} model.TaskEnvelope
// @Failure 401 {object} model.ErrorResponse
// @Failure 422 {object} model.ErrorResponse
// @Router /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req model.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}
	// min=1 lets a whitespace-only title through.
	if strings.TrimSpace(req.Title) == "" {
		writeError(c, http.StatusBadRequest, model.CodeValidationError, "Title is required")
		return
	}

	user := GetAuthUser(c)
	task, err := h.svc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.TaskEnvelope{Task: *task})
}

// Update godoc
// @Summary Update a task
// @Description Partial update: only fields present in the body change. A body with no fields is a 400.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body model.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} model.TaskEnvelope
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 422 {object} model.ErrorResponse
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var req model.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		writeError(c, http.StatusBadRequest, model.CodeValidationError, "Title is required")
		return
	}

	user := GetAuthUser(c)
	task, err := h.svc.Update(c.Request.Context(), user.ID, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.TaskEnvelope{Task: *task})
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	user := GetAuthUser(c)
	if err := h.svc.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Task deleted successfully"})
}
