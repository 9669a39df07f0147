package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingo-backend/internal/model"
)

func TestPeriod(t *testing.T) {
	t.Run("yearly value and title", func(t *testing.T) {
		p := Period{Type: model.PeriodYearly, Year: 2026}
		assert.Equal(t, "2026", p.Value())
		assert.Equal(t, "2026 버킷리스트", p.Title())
	})

	t.Run("monthly value is zero padded", func(t *testing.T) {
		p := Period{Type: model.PeriodMonthly, Year: 2026, Month: 2}
		assert.Equal(t, "2026-02", p.Value())
		assert.Equal(t, "2026년 2월 버킷리스트", p.Title())
	})
}

func TestValidPeriodValue(t *testing.T) {
	assert.True(t, ValidPeriodValue(model.PeriodYearly, "2026"))
	assert.True(t, ValidPeriodValue(model.PeriodMonthly, "2026-01"))
	assert.True(t, ValidPeriodValue(model.PeriodMonthly, "2026-12"))

	assert.False(t, ValidPeriodValue(model.PeriodYearly, "26"))
	assert.False(t, ValidPeriodValue(model.PeriodYearly, "20x6"))
	assert.False(t, ValidPeriodValue(model.PeriodMonthly, "2026"))
	assert.False(t, ValidPeriodValue(model.PeriodMonthly, "2026-13"))
	assert.False(t, ValidPeriodValue(model.PeriodMonthly, "2026-00"))
	assert.False(t, ValidPeriodValue(model.PeriodMonthly, "202602"))
	assert.False(t, ValidPeriodValue(model.PeriodType("weekly"), "2026"))
}

func TestBoard_Cells(t *testing.T) {
	t.Run("new board starts empty", func(t *testing.T) {
		b, err := New(model.Grid3x3)
		require.NoError(t, err)
		assert.Len(t, b.Cells(), 9)
		assert.Equal(t, 0, b.FilledCount())
	})

	t.Run("unsupported size is rejected", func(t *testing.T) {
		_, err := New(model.GridSize("6x6"))
		assert.ErrorIs(t, err, ErrInvalidGridSize)
	})

	t.Run("set and get by index", func(t *testing.T) {
		b, _ := New(model.Grid3x3)
		b.SetCell(4, "운동하기")
		assert.Equal(t, "운동하기", b.Cell(4))
		assert.Equal(t, 1, b.FilledCount())

		// 범위 밖 인덱스는 무시
		b.SetCell(-1, "x")
		b.SetCell(9, "x")
		assert.Equal(t, "", b.Cell(9))
	})

	t.Run("cell text longer than the limit is clipped", func(t *testing.T) {
		b, _ := New(model.Grid3x3)
		b.SetCell(0, strings.Repeat("가", 25))
		assert.Equal(t, strings.Repeat("가", MaxCellLen), b.Cell(0))
	})

	t.Run("whitespace-only cells do not count as filled", func(t *testing.T) {
		b, _ := New(model.Grid3x3)
		b.SetCell(0, "   ")
		b.SetCell(1, "a")
		assert.Equal(t, 1, b.FilledCount())
	})
}

func TestBoard_Resize(t *testing.T) {
	t.Run("growing preserves existing indices and pads the rest", func(t *testing.T) {
		b, _ := New(model.Grid3x3)
		for i := 0; i < 9; i++ {
			b.SetCell(i, "c")
		}

		require.NoError(t, b.Resize(model.Grid5x5))
		cells := b.Cells()
		require.Len(t, cells, 25)
		for i := 0; i < 9; i++ {
			assert.Equal(t, "c", cells[i])
		}
		for i := 9; i < 25; i++ {
			assert.Equal(t, "", cells[i])
		}
	})

	t.Run("shrinking drops trailing cells", func(t *testing.T) {
		b, _ := New(model.Grid4x4)
		b.SetCell(0, "keep")
		b.SetCell(15, "drop")

		require.NoError(t, b.Resize(model.Grid3x3))
		cells := b.Cells()
		require.Len(t, cells, 9)
		assert.Equal(t, "keep", cells[0])
	})

	t.Run("invalid target size is rejected", func(t *testing.T) {
		b, _ := New(model.Grid3x3)
		assert.ErrorIs(t, b.Resize(model.GridSize("2x2")), ErrInvalidGridSize)
	})
}

func TestBoard_Load(t *testing.T) {
	b, _ := New(model.Grid3x3)
	b.Load([]string{"a", "b"})

	cells := b.Cells()
	require.Len(t, cells, 9)
	assert.Equal(t, "a", cells[0])
	assert.Equal(t, "b", cells[1])
	assert.Equal(t, "", cells[2])
}
