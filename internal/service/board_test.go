package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingo-backend/internal/model"
)

func TestRowToRecord(t *testing.T) {
	t.Run("full row round-trips grid and drawing data", func(t *testing.T) {
		drawing := `[{"paths":[{"x":0.1,"y":0.2}],"strokeWidth":0.01,"strokeColor":"#000000","drawMode":true}]`
		row := &model.BingoBoard{
			ID:               1,
			Title:            "2026 버킷리스트",
			GridData:         `["독서","","여행"]`,
			DrawingData:      &drawing,
			PeriodType:       "Yearly",
			PeriodValue:      "2026",
			GridSize:         "3x3",
			FinalFilledCount: 2,
			IsDecorated:      true,
		}

		rec := RowToRecord(row)
		assert.Equal(t, "2026 버킷리스트", rec.Title)
		assert.Equal(t, model.PeriodYearly, rec.PeriodType)
		assert.Equal(t, model.Grid3x3, rec.GridSize)
		require.Len(t, rec.GridData, 3)
		require.Len(t, rec.DrawingData, 1)
		assert.InDelta(t, 0.1, rec.DrawingData[0].Points[0].X, 1e-9)
		assert.True(t, rec.DrawingData[0].DrawMode)
	})

	t.Run("nil drawing data stays nil", func(t *testing.T) {
		row := &model.BingoBoard{GridData: `[]`, PeriodType: "Yearly", PeriodValue: "2026", GridSize: "3x3"}
		rec := RowToRecord(row)
		assert.Nil(t, rec.DrawingData)
	})

	t.Run("corrupt stroke entries are skipped, rest survive", func(t *testing.T) {
		drawing := `[{"paths":[{"x":0.1,"y":0.2}],"strokeWidth":0.01},"not a stroke",{"paths":[{"x":0.3,"y":0.4}],"strokeWidth":0.02}]`
		row := &model.BingoBoard{
			GridData:    `[]`,
			DrawingData: &drawing,
			PeriodType:  "Yearly",
			PeriodValue: "2026",
			GridSize:    "3x3",
		}

		rec := RowToRecord(row)
		require.Len(t, rec.DrawingData, 2)
		assert.InDelta(t, 0.3, rec.DrawingData[1].Points[0].X, 1e-9)
	})

	t.Run("unparseable drawing array is dropped entirely", func(t *testing.T) {
		drawing := `{broken`
		row := &model.BingoBoard{
			GridData:    `[]`,
			DrawingData: &drawing,
			PeriodType:  "Yearly",
			PeriodValue: "2026",
			GridSize:    "3x3",
		}

		rec := RowToRecord(row)
		assert.Nil(t, rec.DrawingData)
	})
}
