package usecase

import (
	"context"
	"strings"
	"time"

	authentity "github.com/leonsos/insightt-test/internal/feature/auth/domain/entity"
	"github.com/leonsos/insightt-test/internal/feature/tasks/domain/entity"
	"github.com/leonsos/insightt-test/internal/platform/metrics"
)

// Entry points for the mark-done operation, used as a metric label and
// carried on completion events. The API server and the standalone
// function are thin adapters over the same usecase method.
const (
	EntryAPI      = "api"
	EntryFunction = "function"
)

// TaskRepository abstracts the persistence layer for task records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TaskRepository interface {
	// Create persists a new task and fills in its generated id and timestamps.
	Create(ctx context.Context, task *entity.Task) error

	// ListByOwner returns all tasks owned by userID, newest first.
	ListByOwner(ctx context.Context, userID uint) ([]entity.Task, error)

	// FindByIDAndOwner returns the task iff it exists and is owned by
	// userID, otherwise ErrTaskNotFound.
	FindByIDAndOwner(ctx context.Context, id, userID uint) (*entity.Task, error)

	// Update persists the full state of an existing task.
	Update(ctx context.Context, task *entity.Task) error

	// Delete removes the task iff it exists and is owned by userID,
	// otherwise ErrTaskNotFound.
	Delete(ctx context.Context, id, userID uint) error

	// MarkDone sets done = true and refreshes the update timestamp with a
	// single conditional statement scoped to the owner, committed as one
	// transaction. Zero matched rows yield ErrTaskNotFound.
	MarkDone(ctx context.Context, id, userID uint) (*entity.Task, error)
}

// IdentityResolver maps a verified external identity to the internal user record.
type IdentityResolver interface {
	Resolve(ctx context.Context, ident authentity.Identity) (*authentity.User, error)
}

// CompletionEvent describes a task that transitioned to done.
type CompletionEvent struct {
	TaskID      uint
	UserID      uint
	Title       string
	Entry       string
	CompletedAt time.Time
}

// CompletionNotifier receives best-effort notifications after a mark-done
// commits. Implementations must not block and must swallow their own
// failures; the caller's result is already decided when Notify runs.
type CompletionNotifier interface {
	Notify(event CompletionEvent)
}

// CreateTaskInput carries the fields accepted when creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Done        bool
}

// UpdateTaskInput carries a partial update. Nil fields are left unchanged,
// so an explicit done=false is distinct from omitting the field.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Done        *bool
}

// taskUsecase implements the ownership-scoped task mutation protocol:
// every operation resolves the caller's identity first and only ever
// touches tasks owned by the resolved user.
type taskUsecase struct {
	tasks    TaskRepository
	resolver IdentityResolver
	notifier CompletionNotifier
}

// NewTaskUsecase creates a new taskUsecase.
func NewTaskUsecase(tasks TaskRepository, resolver IdentityResolver, notifier CompletionNotifier) *taskUsecase {
	return &taskUsecase{tasks: tasks, resolver: resolver, notifier: notifier}
}

// Create inserts a new task owned by the caller.
func (u *taskUsecase) Create(ctx context.Context, ident authentity.Identity, in CreateTaskInput) (*entity.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}
	user, err := u.resolver.Resolve(ctx, ident)
	if err != nil {
		return nil, err
	}

	task := &entity.Task{
		Title:       in.Title,
		Description: in.Description,
		Done:        in.Done,
		UserID:      user.ID,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	metrics.TasksCreatedTotal.Inc()
	return task, nil
}

// List returns all of the caller's tasks, newest first.
func (u *taskUsecase) List(ctx context.Context, ident authentity.Identity) ([]entity.Task, error) {
	user, err := u.resolver.Resolve(ctx, ident)
	if err != nil {
		return nil, err
	}
	return u.tasks.ListByOwner(ctx, user.ID)
}

// Get returns a single task, or ErrTaskNotFound when it is absent or
// owned by someone else.
func (u *taskUsecase) Get(ctx context.Context, ident authentity.Identity, id uint) (*entity.Task, error) {
	user, err := u.resolver.Resolve(ctx, ident)
	if err != nil {
		return nil, err
	}
	return u.tasks.FindByIDAndOwner(ctx, id, user.ID)
}

// Update applies a partial update to an ownership-guarded task. Only the
// supplied fields change.
func (u *taskUsecase) Update(ctx context.Context, ident authentity.Identity, id uint, in UpdateTaskInput) (*entity.Task, error) {
	user, err := u.resolver.Resolve(ctx, ident)
	if err != nil {
		return nil, err
	}

	task, err := u.tasks.FindByIDAndOwner(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Done != nil {
		task.Done = *in.Done
	}

	if err := u.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete permanently removes an ownership-guarded task.
func (u *taskUsecase) Delete(ctx context.Context, ident authentity.Identity, id uint) error {
	user, err := u.resolver.Resolve(ctx, ident)
	if err != nil {
		return err
	}
	if _, err := u.tasks.FindByIDAndOwner(ctx, id, user.ID); err != nil {
		return err
	}
	return u.tasks.Delete(ctx, id, user.ID)
}

// MarkDone completes a task through the atomic conditional update.
// Calling it on an already-done task reaffirms done = true and refreshes
// the timestamp. After the commit a completion notification is dispatched
// fire-and-forget; it can never affect the returned result.
func (u *taskUsecase) MarkDone(ctx context.Context, ident authentity.Identity, id uint, entry string) (*entity.Task, error) {
	user, err := u.resolver.Resolve(ctx, ident)
	if err != nil {
		return nil, err
	}

	task, err := u.tasks.MarkDone(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}

	metrics.TasksCompletedTotal.WithLabelValues(entry).Inc()
	if u.notifier != nil {
		u.notifier.Notify(CompletionEvent{
			TaskID:      task.ID,
			UserID:      task.UserID,
			Title:       task.Title,
			Entry:       entry,
			CompletedAt: task.UpdatedAt,
		})
	}
	return task, nil
}
