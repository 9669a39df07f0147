package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bingo-backend/internal/board"
	"bingo-backend/internal/canvas"
	"bingo-backend/internal/model"
)

// BoardService 보드 저장/조회 비즈니스 로직
type BoardService struct {
	db *gorm.DB
}

// NewBoardService BoardService 생성
func NewBoardService(db *gorm.DB) *BoardService {
	return &BoardService{db: db}
}

// Save 보드 upsert. (user_id, period_type, period_value, grid_size) 조합이
// 이미 있으면 그 자리에서 덮어쓰고, 없으면 새로 만든다. 중복 행은 생기지 않는다.
// 파생 통계는 저장 직전에 재계산한다.
func (s *BoardService) Save(userID int64, rec *board.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	rec.Recompute()

	gridJSON, err := json.Marshal(rec.GridData)
	if err != nil {
		return fmt.Errorf("marshal grid data: %w", err)
	}

	var drawing *string
	if len(rec.DrawingData) > 0 {
		drawingJSON, err := json.Marshal(rec.DrawingData)
		if err != nil {
			return fmt.Errorf("marshal drawing data: %w", err)
		}
		str := string(drawingJSON)
		drawing = &str
	}

	row := model.BingoBoard{
		UserID:           userID,
		Title:            rec.Title,
		GridData:         string(gridJSON),
		DrawingData:      drawing,
		PeriodType:       rec.PeriodType.String(),
		PeriodValue:      rec.PeriodValue,
		GridSize:         rec.GridSize.String(),
		FinalFilledCount: rec.FinalFilledCount,
		IsDecorated:      rec.IsDecorated,
	}

	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "period_type"},
			{Name: "period_value"},
			{Name: "grid_size"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "grid_data", "drawing_data",
			"final_filled_count", "is_decorated", "updated_at",
		}),
	}).Create(&row).Error
}

// Fetch 기간/그리드 조합으로 보드 조회. 없으면 (nil, nil).
func (s *BoardService) Fetch(userID int64, periodType model.PeriodType, periodValue string, gridSize model.GridSize) (*model.BingoBoard, error) {
	var row model.BingoBoard
	err := s.db.
		Where("user_id = ? AND period_type = ? AND period_value = ? AND grid_size = ?",
			userID, periodType.String(), periodValue, gridSize.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// IncrementCounter visit_count / download_count 증가.
// 통계는 best-effort라 대상 행이 없으면 조용히 넘어간다.
func (s *BoardService) IncrementCounter(userID int64, periodValue string, gridSize model.GridSize, column model.CounterColumn) error {
	if !column.Valid() {
		return fmt.Errorf("unknown counter column: %s", column)
	}
	col := column.String()
	return s.db.Model(&model.BingoBoard{}).
		Where("user_id = ? AND period_value = ? AND grid_size = ?", userID, periodValue, gridSize.String()).
		UpdateColumn(col, gorm.Expr(col+" + 1")).Error
}

// RowToRecord 저장된 행을 레코드 형태로 복원.
// 손상된 drawing_data는 레코드 단위로 건너뛰고 살릴 수 있는 것만 살린다.
func RowToRecord(row *model.BingoBoard) board.Record {
	rec := board.Record{
		Title:            row.Title,
		PeriodType:       model.PeriodType(row.PeriodType),
		PeriodValue:      row.PeriodValue,
		GridSize:         model.GridSize(row.GridSize),
		FinalFilledCount: row.FinalFilledCount,
		IsDecorated:      row.IsDecorated,
	}

	if err := json.Unmarshal([]byte(row.GridData), &rec.GridData); err != nil {
		log.Printf("[Board] Failed to parse grid data for board %d: %v", row.ID, err)
	}

	if row.DrawingData != nil {
		rec.DrawingData = parseDrawing(row.ID, *row.DrawingData)
	}
	return rec
}

// parseDrawing drawing_data를 스트로크 단위로 관대하게 파싱
func parseDrawing(boardID int64, data string) []canvas.Stroke {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		log.Printf("[Board] Failed to parse drawing data for board %d: %v", boardID, err)
		return nil
	}
	strokes := make([]canvas.Stroke, 0, len(raw))
	for _, item := range raw {
		var s canvas.Stroke
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		strokes = append(strokes, s)
	}
	return strokes
}
