// Package adapters provides the repository implementations for the tasks feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/leonsos/insightt-test/internal/feature/tasks/domain/entity"
	"github.com/leonsos/insightt-test/internal/feature/tasks/usecase"
)

type taskGorm struct {
	db *gorm.DB
}

var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskGorm creates a new taskGorm backed by the given gorm.DB connection.
func NewTaskGorm(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

// TaskModel is the storage representation of a task.
type TaskModel struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"size:1024"`
	Done        bool   `gorm:"not null;default:false"`
	UserID      uint   `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TaskModel) TableName() string {
	return "tasks"
}

func toModel(e *entity.Task) TaskModel {
	return TaskModel{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Done:        e.Done,
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEntity(m TaskModel) entity.Task {
	return entity.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Done:        m.Done,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Create inserts a new task row and copies the generated id and
// timestamps back onto the entity.
func (r *taskGorm) Create(ctx context.Context, task *entity.Task) error {
	m := toModel(task)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*task = toEntity(m)
	return nil
}

// ListByOwner returns all tasks owned by userID, ordered by creation time
// descending. The id tiebreak keeps the order stable for rows created
// within the same timestamp resolution.
func (r *taskGorm) ListByOwner(ctx context.Context, userID uint) ([]entity.Task, error) {
	var rows []TaskModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Task, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// FindByIDAndOwner fetches a task scoped to its owner. A task owned by a
// different user is reported exactly like a missing one.
func (r *taskGorm) FindByIDAndOwner(ctx context.Context, id, userID uint) (*entity.Task, error) {
	var m TaskModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	t := toEntity(m)
	return &t, nil
}

// Update persists the full state of an existing task row.
func (r *taskGorm) Update(ctx context.Context, task *entity.Task) error {
	m := toModel(task)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	*task = toEntity(m)
	return nil
}

// Delete removes a task row scoped to its owner. Zero affected rows mean
// the task vanished or never belonged to the caller.
func (r *taskGorm) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&TaskModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}

// MarkDone performs the ownership check and the done transition as one
// conditional update inside a transaction, so concurrent completions of
// the same task cannot interleave between check and write. The updated
// row is re-read within the same transaction for the caller's response.
func (r *taskGorm) MarkDone(ctx context.Context, id, userID uint) (*entity.Task, error) {
	var out entity.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&TaskModel{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]interface{}{
				"done":       true,
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrTaskNotFound
		}

		var m TaskModel
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			return err
		}
		out = toEntity(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
