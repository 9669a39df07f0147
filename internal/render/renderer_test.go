package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingo-backend/internal/board"
	"bingo-backend/internal/canvas"
	"bingo-backend/internal/model"
)

func plainRecord() board.Record {
	return board.Record{
		Title:       "2026 버킷리스트",
		GridData:    []string{"독서", "여행", "운동", "", "", "", "", "", ""},
		PeriodType:  model.PeriodYearly,
		PeriodValue: "2026",
		GridSize:    model.Grid3x3,
	}
}

func decoratedRecord() board.Record {
	rec := plainRecord()
	rec.DrawingData = []canvas.Stroke{
		{
			Points:   []canvas.Point{{X: 0.1, Y: 0.1}, {X: 0.8, Y: 0.8}},
			Width:    0.02,
			Color:    "#FF0000",
			DrawMode: true,
		},
	}
	rec.IsDecorated = true
	return rec
}

// 테스트는 저해상도로 돌려 렌더링 시간을 줄인다
func testOptions() Options {
	return Options{Width: 120, Height: 213, PixelRatio: 1, Quality: 80}
}

func TestCapture_ProducesJPEG(t *testing.T) {
	r := NewCardRenderer(testOptions())

	data, err := r.Capture(context.Background(), plainRecord())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// JPEG SOI 마커
	assert.True(t, bytes.HasPrefix(data, []byte{0xFF, 0xD8}))
}

func TestCapture_DecorationChangesOutput(t *testing.T) {
	r := NewCardRenderer(testOptions())
	ctx := context.Background()

	plain, err := r.Capture(ctx, plainRecord())
	require.NoError(t, err)

	decorated, err := r.Capture(ctx, decoratedRecord())
	require.NoError(t, err)

	assert.NotEqual(t, plain, decorated)
}

func TestCapture_ExcludedDecorationLayer(t *testing.T) {
	opts := testOptions()
	opts.Exclude = []Layer{LayerDecoration}
	excluding := NewCardRenderer(opts)
	plainRenderer := NewCardRenderer(testOptions())

	ctx := context.Background()
	withExclude, err := excluding.Capture(ctx, decoratedRecord())
	require.NoError(t, err)

	plain, err := plainRenderer.Capture(ctx, plainRecord())
	require.NoError(t, err)

	// 데코 레이어를 빼면 스트로크 없는 렌더링과 같아야 한다
	assert.Equal(t, plain, withExclude)
}

func TestCapture_AllGridSizes(t *testing.T) {
	r := NewCardRenderer(testOptions())
	ctx := context.Background()

	for _, size := range []model.GridSize{model.Grid3x3, model.Grid4x4, model.Grid5x5} {
		rec := plainRecord()
		rec.GridSize = size
		rec.Recompute()

		data, err := r.Capture(ctx, rec)
		require.NoError(t, err, "grid size %s", size)
		assert.NotEmpty(t, data)
	}
}

func TestCapture_CancelledContext(t *testing.T) {
	r := NewCardRenderer(testOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Capture(ctx, plainRecord())
	assert.ErrorIs(t, err, context.Canceled)
}
