package canvas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_RoundTrip(t *testing.T) {
	box := Size{Width: 400, Height: 800}

	o := NewOverlay()
	o.SetWidth(8)
	drawStroke(o, Point{X: 100, Y: 200}, Point{X: 300, Y: 400})

	records := o.ExportNormalized(box)
	require.Len(t, records, 1)
	assert.InDelta(t, 0.25, records[0].Points[0].X, 1e-9)
	assert.InDelta(t, 0.25, records[0].Points[0].Y, 1e-9)
	assert.InDelta(t, 8.0/400, records[0].Width, 1e-9)

	// 같은 박스로 복원하면 원래 좌표가 나와야 한다
	restored := NewOverlay()
	restored.LoadNormalized(records, box)
	require.Equal(t, 1, restored.Len())
	got := restored.Strokes()[0]
	assert.InDelta(t, 100, got.Points[0].X, 1e-9)
	assert.InDelta(t, 400, got.Points[1].Y, 1e-9)
	assert.InDelta(t, 8, got.Width, 1e-9)
}

func TestNormalize_ScaleInvariance(t *testing.T) {
	// 절반 크기 화면에서 복원하면 모든 값이 절반이 되어야 한다
	o := NewOverlay()
	o.SetWidth(8)
	drawStroke(o, Point{X: 100, Y: 200})

	records := o.ExportNormalized(Size{Width: 400, Height: 800})

	restored := NewOverlay()
	restored.LoadNormalized(records, Size{Width: 200, Height: 400})
	got := restored.Strokes()[0]
	assert.InDelta(t, 50, got.Points[0].X, 1e-9)
	assert.InDelta(t, 100, got.Points[0].Y, 1e-9)
	assert.InDelta(t, 4, got.Width, 1e-9)
}

func TestNormalize_ZeroBox(t *testing.T) {
	o := NewOverlay()
	drawStroke(o, Point{X: 1, Y: 1})

	assert.Nil(t, o.ExportNormalized(Size{}))
	assert.Nil(t, o.ExportNormalized(Size{Width: 100}))

	// 박스 크기가 없으면 로드는 비우기만 한다
	o.LoadNormalized([]Stroke{{Points: []Point{{X: 0.5, Y: 0.5}}, Width: 0.01}}, Size{})
	assert.Equal(t, 0, o.Len())
}

func TestLoadNormalized_ReplacesExisting(t *testing.T) {
	box := Size{Width: 100, Height: 100}
	o := NewOverlay()
	drawStroke(o, Point{X: 1, Y: 1})
	drawStroke(o, Point{X: 2, Y: 2})

	o.LoadNormalized([]Stroke{
		{Points: []Point{{X: 0.5, Y: 0.5}}, Width: 0.04},
	}, box)

	require.Equal(t, 1, o.Len())
	assert.InDelta(t, 50, o.Strokes()[0].Points[0].X, 1e-9)
}

func TestLoadNormalized_SkipsCorruptRecords(t *testing.T) {
	box := Size{Width: 100, Height: 100}
	records := []Stroke{
		{Points: []Point{{X: 0.1, Y: 0.1}}, Width: 0.04},
		{Points: nil, Width: 0.04},                               // 빈 경로
		{Points: []Point{{X: math.NaN(), Y: 0.1}}, Width: 0.04},  // NaN 좌표
		{Points: []Point{{X: math.Inf(1), Y: 0.1}}, Width: 0.04}, // Inf 좌표
		{Points: []Point{{X: 0.2, Y: 0.2}}, Width: -1},           // 음수 굵기
		{Points: []Point{{X: 0.3, Y: 0.3}}, Width: math.Inf(1)},  // Inf 굵기
		{Points: []Point{{X: 0.4, Y: 0.4}}, Width: 0.08, Color: "#00FF00"},
	}

	o := NewOverlay()
	o.LoadNormalized(records, box)

	require.Equal(t, 2, o.Len())
	assert.Equal(t, "#00FF00", o.Strokes()[1].Color)
}

func TestLoadNormalized_MissingWidthDefaults(t *testing.T) {
	o := NewOverlay()
	o.LoadNormalized([]Stroke{
		{Points: []Point{{X: 0.5, Y: 0.5}}, Width: 0},
	}, Size{Width: 100, Height: 100})

	require.Equal(t, 1, o.Len())
	assert.Equal(t, DefaultPenWidth, o.Strokes()[0].Width)
}
