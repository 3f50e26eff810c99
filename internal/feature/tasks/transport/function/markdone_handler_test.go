package function

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authentity "github.com/leonsos/insightt-test/internal/feature/auth/domain/entity"
	"github.com/leonsos/insightt-test/internal/feature/tasks/domain/entity"
	"github.com/leonsos/insightt-test/internal/feature/tasks/usecase"
	"github.com/leonsos/insightt-test/internal/platform/token"
)

type mockMarkDoneUsecase struct {
	markDoneFn func(ctx context.Context, ident authentity.Identity, id uint, entry string) (*entity.Task, error)
}

func (m *mockMarkDoneUsecase) MarkDone(ctx context.Context, ident authentity.Identity, id uint, entry string) (*entity.Task, error) {
	return m.markDoneFn(ctx, ident, id, entry)
}

var testIdent = authentity.Identity{SubjectID: "uid-1", Email: "alice@example.com"}

func newFunctionRouter(uc MarkDoneUsecase, withIdentity bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if withIdentity {
		r.Use(func(c *gin.Context) { c.Set(token.ContextIdentity, testIdent) })
	}
	r.POST("/", NewMarkDoneHandler(uc).Handle)
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMarkDoneHandler_Handle(t *testing.T) {
	t.Run("marks done through the function entry", func(t *testing.T) {
		uc := &mockMarkDoneUsecase{
			markDoneFn: func(ctx context.Context, ident authentity.Identity, id uint, entry string) (*entity.Task, error) {
				assert.Equal(t, testIdent, ident)
				assert.Equal(t, uint(42), id)
				assert.Equal(t, usecase.EntryFunction, entry, "the function reports its own entry label")
				return &entity.Task{ID: id, Title: "t", Done: true, UserID: 7}, nil
			},
		}
		r := newFunctionRouter(uc, true)

		w := post(r, `{"taskId":42}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"taskId":42`)
		assert.Contains(t, w.Body.String(), `"done":true`)
	})

	t.Run("missing taskId is a 400", func(t *testing.T) {
		r := newFunctionRouter(&mockMarkDoneUsecase{}, true)

		w := post(r, `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "taskId is required")
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		r := newFunctionRouter(&mockMarkDoneUsecase{}, true)

		w := post(r, `{"taskId":"not-a-number"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("absent or foreign task is a 404", func(t *testing.T) {
		uc := &mockMarkDoneUsecase{
			markDoneFn: func(ctx context.Context, ident authentity.Identity, id uint, entry string) (*entity.Task, error) {
				return nil, usecase.ErrTaskNotFound
			},
		}
		r := newFunctionRouter(uc, true)

		w := post(r, `{"taskId":42}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "task not found")
	})

	t.Run("no identity is a 401", func(t *testing.T) {
		r := newFunctionRouter(&mockMarkDoneUsecase{}, false)

		w := post(r, `{"taskId":42}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unexpected errors map to a generic 500", func(t *testing.T) {
		uc := &mockMarkDoneUsecase{
			markDoneFn: func(ctx context.Context, ident authentity.Identity, id uint, entry string) (*entity.Task, error) {
				return nil, errors.New("db gone")
			},
		}
		r := newFunctionRouter(uc, true)

		w := post(r, `{"taskId":42}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db gone")
	})
}
