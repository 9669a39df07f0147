package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingo-backend/internal/board"
	"bingo-backend/internal/model"
	"bingo-backend/internal/staging"
)

// captureRecorder 이벤트 수집용 레코더
type captureRecorder struct {
	events []string
}

func (r *captureRecorder) Record(event string, params map[string]any) {
	r.events = append(r.events, event)
}

// restoreApp restoreStagedBoard만 호출하는 테스트 전용 라우트
func restoreApp(h *AuthHandler) *fiber.App {
	app := fiber.New()
	app.Post("/restore", func(c *fiber.Ctx) error {
		restored := h.restoreStagedBoard(c, 1)
		return c.JSON(fiber.Map{"restored": restored})
	})
	return app
}

func stagedRecord() board.Record {
	return board.Record{
		Title:       "2026 버킷리스트",
		GridData:    []string{"독서"},
		PeriodType:  model.PeriodYearly,
		PeriodValue: "2026",
		GridSize:    model.Grid3x3,
	}
}

func TestRestoreStagedBoard(t *testing.T) {
	t.Run("staged board is saved exactly once", func(t *testing.T) {
		store := newFakeBoardStore()
		staged := staging.NewMemoryStore()
		rec := &captureRecorder{}
		h := NewAuthHandler(nil, nil, nil, store, staged, rec, false)
		app := restoreApp(h)

		require.NoError(t, staged.Stage(context.Background(), "sess-1", stagedRecord()))

		req := httptest.NewRequest(http.MethodPost, "/restore", nil)
		req.AddCookie(&http.Cookie{Name: "pending_session", Value: "sess-1"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, store.saved, 1)
		assert.Equal(t, []string{"restore_pending_board"}, rec.events)

		// 두 번째 로그인: 버퍼가 비어 있으니 다시 저장되지 않는다
		req = httptest.NewRequest(http.MethodPost, "/restore", nil)
		req.AddCookie(&http.Cookie{Name: "pending_session", Value: "sess-1"})
		_, err = app.Test(req)
		require.NoError(t, err)
		assert.Len(t, store.saved, 1)
		assert.Len(t, rec.events, 1)
	})

	t.Run("no session cookie is a no-op", func(t *testing.T) {
		store := newFakeBoardStore()
		h := NewAuthHandler(nil, nil, nil, store, staging.NewMemoryStore(), &captureRecorder{}, false)
		app := restoreApp(h)

		req := httptest.NewRequest(http.MethodPost, "/restore", nil)
		_, err := app.Test(req)
		require.NoError(t, err)
		assert.Empty(t, store.saved)
	})

	t.Run("failed save puts the record back in the buffer", func(t *testing.T) {
		store := newFakeBoardStore()
		store.saveErr = errors.New("db down")
		staged := staging.NewMemoryStore()
		h := NewAuthHandler(nil, nil, nil, store, staged, &captureRecorder{}, false)
		app := restoreApp(h)

		require.NoError(t, staged.Stage(context.Background(), "sess-1", stagedRecord()))

		req := httptest.NewRequest(http.MethodPost, "/restore", nil)
		req.AddCookie(&http.Cookie{Name: "pending_session", Value: "sess-1"})
		_, err := app.Test(req)
		require.NoError(t, err)

		// 다음 로그인에서 재시도할 수 있어야 한다
		rec, err := staged.Take(context.Background(), "sess-1")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "2026 버킷리스트", rec.Title)
	})
}
