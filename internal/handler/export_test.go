package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingo-backend/internal/analytics"
	"bingo-backend/internal/export"
	"bingo-backend/internal/render"
)

func newExportApp(store *fakeBoardStore, authed bool) *fiber.App {
	renderer := render.NewCardRenderer(render.Options{Width: 120, Height: 213, PixelRatio: 1, Quality: 80})
	pipeline := export.NewPipeline(export.Config{SettleDelay: time.Millisecond, Backoff: time.Millisecond}, renderer, nil, nil, analytics.NopRecorder{})
	h := NewExportHandler(pipeline, store, analytics.NopRecorder{})

	app := fiber.New()
	if authed {
		app.Use(asUser(1))
	}
	app.Post("/api/boards/export", h.ExportBoard)
	return app
}

func TestExportBoard_StreamsJPEG(t *testing.T) {
	store := newFakeBoardStore()
	app := newExportApp(store, false)

	req := httptest.NewRequest(http.MethodPost, "/api/boards/export", validBody(t))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="bucket_list_bingo.jpg"`, resp.Header.Get("Content-Disposition"))

	buf := make([]byte, 2)
	_, err = resp.Body.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, buf)
}

func TestExportBoard_AuthenticatedIncrementsDownloadCount(t *testing.T) {
	store := newFakeBoardStore()
	app := newExportApp(store, true)

	req := httptest.NewRequest(http.MethodPost, "/api/boards/export", validBody(t))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	select {
	case <-store.counterCh:
	case <-time.After(time.Second):
		t.Fatal("download counter was not incremented")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, 1, store.counters["download_count"])
}

func TestExportBoard_InvalidRecord(t *testing.T) {
	store := newFakeBoardStore()
	app := newExportApp(store, false)

	req := httptest.NewRequest(http.MethodPost, "/api/boards/export", bytes.NewReader([]byte(`{"period_type":"weekly"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
