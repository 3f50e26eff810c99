package dto

import (
	"time"

	"github.com/leonsos/insightt-test/internal/feature/tasks/domain/entity"
)

// TaskResponse is the JSON shape of a task record.
type TaskResponse struct {
	ID          uint      `json:"taskId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Done        bool      `json:"done"`
	UserID      uint      `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTaskResponse maps a task entity to its response shape.
func NewTaskResponse(t *entity.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Done:        t.Done,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
