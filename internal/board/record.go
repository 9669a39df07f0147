package board

import (
	"bingo-backend/internal/canvas"
	"bingo-backend/internal/model"
)

// Record 저장소로 전달되는 보드 한 건의 정규화 형태.
// final_filled_count / is_decorated는 파생 값이므로 저장 직전에
// Recompute로 항상 다시 계산한다.
type Record struct {
	Title            string           `json:"title"`
	GridData         []string         `json:"grid_data"`
	DrawingData      []canvas.Stroke  `json:"drawing_data,omitempty"`
	PeriodType       model.PeriodType `json:"period_type"`
	PeriodValue      string           `json:"period_value"`
	GridSize         model.GridSize   `json:"grid_size"`
	FinalFilledCount int              `json:"final_filled_count"`
	IsDecorated      bool             `json:"is_decorated"`
}

// Validate upsert 키 필드 검증
func (r *Record) Validate() error {
	if !r.PeriodType.Valid() {
		return ErrInvalidPeriodType
	}
	if !ValidPeriodValue(r.PeriodType, r.PeriodValue) {
		return ErrInvalidPeriodValue
	}
	if !r.GridSize.Valid() {
		return ErrInvalidGridSize
	}
	return nil
}

// Recompute 파생 필드 재계산 + 셀 배열을 그리드 크기에 맞게 정돈.
// 클라이언트가 보낸 통계 값은 무시한다.
func (r *Record) Recompute() {
	n := r.GridSize.Cells()
	r.GridData = PadCells(r.GridData, n*n)
	for i, c := range r.GridData {
		r.GridData[i] = ClipCell(c)
	}
	r.FinalFilledCount = CountFilled(r.GridData)
	r.IsDecorated = len(r.DrawingData) > 0
}
