package adapters

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/leonsos/insightt-test/internal/feature/tasks/domain/entity"
	"github.com/leonsos/insightt-test/internal/feature/tasks/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing. SQLite
// in-memory databases are per-connection, so the pool is pinned to a
// single connection; concurrent access serializes on it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&TaskModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

// createTask inserts a task owned by userID and returns it.
func createTask(t *testing.T, repo *taskGorm, userID uint, title string) *entity.Task {
	t.Helper()

	task := &entity.Task{Title: title, UserID: userID}
	err := repo.Create(context.Background(), task)
	require.NoError(t, err, "failed to create test task")
	return task
}

func TestNewTaskGorm(t *testing.T) {
	db := setupTestDB(t)

	repo := NewTaskGorm(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestTaskGorm_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskGorm(db)

	task := &entity.Task{Title: "Buy milk", UserID: 1}

	err := repo.Create(context.Background(), task)

	assert.NoError(t, err, "failed to create task")
	assert.NotZero(t, task.ID, "ID is not set")
	assert.False(t, task.Done, "a new task defaults to not done")
	assert.Equal(t, uint(1), task.UserID, "owner does not match")
	assert.False(t, task.CreatedAt.IsZero(), "CreatedAt is not set")
}

func TestTaskGorm_ListByOwner(t *testing.T) {
	t.Run("returns only the owner's tasks, newest first", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskGorm(db)

		base := time.Now().Add(-time.Hour).UTC()
		for i, title := range []string{"first", "second", "third"} {
			task := &entity.Task{
				Title:     title,
				UserID:    1,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}
			require.NoError(t, repo.Create(context.Background(), task))
		}
		createTask(t, repo, 2, "other tenant")

		tasks, err := repo.ListByOwner(context.Background(), 1)

		require.NoError(t, err)
		require.Len(t, tasks, 3, "foreign tasks must not appear")
		assert.Equal(t, "third", tasks[0].Title, "newest task should come first")
		assert.Equal(t, "second", tasks[1].Title)
		assert.Equal(t, "first", tasks[2].Title)
	})

	t.Run("empty list for a user with no tasks", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskGorm(db)

		tasks, err := repo.ListByOwner(context.Background(), 42)

		assert.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestTaskGorm_FindByIDAndOwner(t *testing.T) {
	t.Run("owner can fetch the task", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskGorm(db)
		created := createTask(t, repo, 1, "mine")

		found, err := repo.FindByIDAndOwner(context.Background(), created.ID, 1)

		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "mine", found.Title)
	})

	t.Run("foreign owner gets not-found, not the task", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskGorm(db)
		created := createTask(t, repo, 1, "mine")

		found, err := repo.FindByIDAndOwner(context.Background(), created.ID, 2)

		assert.Nil(t, found, "foreign owner must never see task data")
		assert.ErrorIs(t, err, usecase.ErrTaskNotFound)
	})

	t.Run("absent task gets the same not-found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskGorm(db)

		found, err := repo.FindByIDAndOwner(context.Background(), 999, 1)

		assert.Nil(t, found)
		assert.ErrorIs(t, err, usecase.ErrTaskNotFound)
	})
}

func TestTaskGorm_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskGorm(db)
	created := createTask(t, repo, 1, "before")

	created.Title = "after"
	created.Done = true
	err := repo.Update(context.Background(), created)
	require.NoError(t, err)

	found, err := repo.FindByIDAndOwner(context.Background(), created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "after", found.Title)
	assert.True(t, found.Done)
}

func TestTaskGorm_Delete(t *testing.T) {
	t.Run("delete then fetch yields not-found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskGorm(db)
		created := createTask(t, repo, 1, "doomed")

		err := repo.Delete(context.Background(), created.ID, 1)
		require.NoError(t, err)

		_, err = repo.FindByIDAndOwner(context.Background(), created.ID, 1)
		assert.ErrorIs(t, err, usecase.ErrTaskNotFound)
	})

	t.Run("foreign owner cannot delete", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskGorm(db)
		created := createTask(t, repo, 1, "protected")

		err := repo.Delete(context.Background(), created.ID, 2)
		assert.ErrorIs(t, err, usecase.ErrTaskNotFound)

		// Still there for the real owner.
		found, err := repo.FindByIDAndOwner(context.Background(), created.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})
}

func TestTaskGorm_MarkDone(t *testing.T) {
	t.Run("sets done and refreshes the update timestamp", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskGorm(db)
		created := createTask(t, repo, 1, "finish me")
		time.Sleep(20 * time.Millisecond)

		updated, err := repo.MarkDone(context.Background(), created.ID, 1)

		require.NoError(t, err)
		assert.True(t, updated.Done)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "UpdatedAt should be refreshed")
	})

	t.Run("foreign owner gets not-found and no mutation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskGorm(db)
		created := createTask(t, repo, 1, "not yours")

		_, err := repo.MarkDone(context.Background(), created.ID, 2)
		assert.ErrorIs(t, err, usecase.ErrTaskNotFound)

		found, err := repo.FindByIDAndOwner(context.Background(), created.ID, 1)
		require.NoError(t, err)
		assert.False(t, found.Done, "foreign mark-done must not apply")
	})

	t.Run("absent task gets not-found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskGorm(db)

		_, err := repo.MarkDone(context.Background(), 999, 1)
		assert.ErrorIs(t, err, usecase.ErrTaskNotFound)
	})

	t.Run("marking an already-done task is idempotent", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskGorm(db)
		created := createTask(t, repo, 1, "twice")

		first, err := repo.MarkDone(context.Background(), created.ID, 1)
		require.NoError(t, err)
		assert.True(t, first.Done)

		second, err := repo.MarkDone(context.Background(), created.ID, 1)
		require.NoError(t, err, "second mark-done must not error")
		assert.True(t, second.Done)
		assert.False(t, second.UpdatedAt.Before(first.UpdatedAt), "timestamp is refreshed, never rolled back")
	})

	t.Run("concurrent mark-done calls leave one clean transition", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskGorm(db)
		created := createTask(t, repo, 1, "contended")

		const callers = 4
		var wg sync.WaitGroup
		errs := make([]error, callers)
		results := make([]*entity.Task, callers)

		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = repo.MarkDone(context.Background(), created.ID, 1)
			}(i)
		}
		wg.Wait()

		for i := 0; i < callers; i++ {
			require.NoError(t, errs[i], "caller %d failed", i)
			assert.True(t, results[i].Done, "caller %d must observe done = true", i)
		}

		final, err := repo.FindByIDAndOwner(context.Background(), created.ID, 1)
		require.NoError(t, err)
		assert.True(t, final.Done, "committed state must be done")
	})
}
