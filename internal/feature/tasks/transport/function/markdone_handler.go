// Package function exposes the standalone mark-done entry point: the
// same atomic mark-done operation as the API, reachable as a
// single-purpose HTTP function that talks straight to the database.
package function

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/leonsos/insightt-test/internal/api"
	authentity "github.com/leonsos/insightt-test/internal/feature/auth/domain/entity"
	"github.com/leonsos/insightt-test/internal/feature/tasks/domain/entity"
	"github.com/leonsos/insightt-test/internal/feature/tasks/transport/http/dto"
	"github.com/leonsos/insightt-test/internal/feature/tasks/usecase"
	"github.com/leonsos/insightt-test/internal/platform/token"
)

// MarkDoneUsecase is the single domain operation this function adapts.
type MarkDoneUsecase interface {
	MarkDone(ctx context.Context, ident authentity.Identity, id uint, entry string) (*entity.Task, error)
}

// MarkDoneReq is the function's request body.
type MarkDoneReq struct {
	TaskID uint `json:"taskId" binding:"required"`
}

// MarkDoneHandler handles the function's single route.
type MarkDoneHandler struct {
	uc MarkDoneUsecase
}

// NewMarkDoneHandler creates a new MarkDoneHandler.
func NewMarkDoneHandler(uc MarkDoneUsecase) *MarkDoneHandler {
	return &MarkDoneHandler{uc: uc}
}

// Handle processes POST / with body {"taskId": N}. Auth, validation, and
// not-found behave exactly as on the API route; only the entry label
// differs.
func (h *MarkDoneHandler) Handle(c *gin.Context) {
	ident, ok := token.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}

	var req MarkDoneReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "taskId is required"})
		return
	}

	task, err := h.uc.MarkDone(c.Request.Context(), ident, req.TaskID, usecase.EntryFunction)
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "task not found"})
			return
		}
		log.Error().Err(err).Uint("task_id", req.TaskID).Msg("mark-done function failed")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}
