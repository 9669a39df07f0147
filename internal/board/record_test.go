package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingo-backend/internal/canvas"
	"bingo-backend/internal/model"
)

func TestRecord_Validate(t *testing.T) {
	valid := Record{
		PeriodType:  model.PeriodYearly,
		PeriodValue: "2026",
		GridSize:    model.Grid3x3,
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.PeriodType = "weekly"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidPeriodType)

	bad = valid
	bad.PeriodValue = "2026-01"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidPeriodValue)

	bad = valid
	bad.GridSize = "9x9"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidGridSize)
}

func TestRecord_Recompute(t *testing.T) {
	t.Run("client supplied stats are overwritten", func(t *testing.T) {
		rec := Record{
			GridData:         []string{"a", "", "b"},
			GridSize:         model.Grid3x3,
			FinalFilledCount: 99,
			IsDecorated:      true,
		}
		rec.Recompute()

		assert.Equal(t, 2, rec.FinalFilledCount)
		assert.False(t, rec.IsDecorated)
		require.Len(t, rec.GridData, 9)
	})

	t.Run("decoration flag follows stroke presence", func(t *testing.T) {
		rec := Record{
			GridSize: model.Grid3x3,
			DrawingData: []canvas.Stroke{
				{Points: []canvas.Point{{X: 0.5, Y: 0.5}}, Width: 0.01},
			},
		}
		rec.Recompute()
		assert.True(t, rec.IsDecorated)
	})

	t.Run("oversized cells are clipped and extras dropped", func(t *testing.T) {
		long := strings.Repeat("z", MaxCellLen+5)
		cells := make([]string, 12)
		cells[0] = long
		rec := Record{GridData: cells, GridSize: model.Grid3x3}
		rec.Recompute()

		require.Len(t, rec.GridData, 9)
		assert.Equal(t, strings.Repeat("z", MaxCellLen), rec.GridData[0])
	})
}
