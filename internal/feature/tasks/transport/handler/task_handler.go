// Package handler provides the HTTP handlers for the tasks feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/leonsos/insightt-test/internal/api"
	authentity "github.com/leonsos/insightt-test/internal/feature/auth/domain/entity"
	"github.com/leonsos/insightt-test/internal/feature/tasks/domain/entity"
	"github.com/leonsos/insightt-test/internal/feature/tasks/transport/http/dto"
	"github.com/leonsos/insightt-test/internal/feature/tasks/usecase"
	"github.com/leonsos/insightt-test/internal/platform/token"
)

// TasksUsecase defines the task operations consumed by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TasksUsecase interface {
	Create(ctx context.Context, ident authentity.Identity, in usecase.CreateTaskInput) (*entity.Task, error)
	List(ctx context.Context, ident authentity.Identity) ([]entity.Task, error)
	Get(ctx context.Context, ident authentity.Identity, id uint) (*entity.Task, error)
	Update(ctx context.Context, ident authentity.Identity, id uint, in usecase.UpdateTaskInput) (*entity.Task, error)
	Delete(ctx context.Context, ident authentity.Identity, id uint) error
	MarkDone(ctx context.Context, ident authentity.Identity, id uint, entry string) (*entity.Task, error)
}

// TaskHandler translates HTTP requests into task operations.
type TaskHandler struct {
	uc TasksUsecase
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(uc TasksUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	ident, ok := token.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}

	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "title is required"})
		return
	}

	task, err := h.uc.Create(c.Request.Context(), ident, usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Done:        req.Done,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTaskResponse(task))
}

// List handles GET /tasks.
func (h *TaskHandler) List(c *gin.Context) {
	ident, ok := token.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}

	tasks, err := h.uc.List(c.Request.Context(), ident)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, dto.NewTaskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	ident, ok := token.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.uc.Get(c.Request.Context(), ident, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// Update handles PATCH /tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	ident, ok := token.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	task, err := h.uc.Update(c.Request.Context(), ident, id, usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Done:        req.Done,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// Delete handles DELETE /tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	ident, ok := token.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), ident, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkDone handles PATCH /tasks/:id/done.
func (h *TaskHandler) MarkDone(c *gin.Context) {
	ident, ok := token.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.uc.MarkDone(c.Request.Context(), ident, id, usecase.EntryAPI)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// taskID parses the :id path parameter, writing a 400 on failure.
func taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid task id"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps usecase errors onto the stable response taxonomy.
// Not-found covers both absent and foreign-owned tasks; unexpected
// failures are logged with their cause and surfaced as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "task not found"})
	case errors.Is(err, usecase.ErrTitleRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "title is required"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("task operation failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}
