package board

import (
	"errors"
	"fmt"
	"strings"

	"bingo-backend/internal/model"
)

// MaxCellLen 셀 텍스트 최대 길이 (rune 기준)
const MaxCellLen = 18

var (
	ErrInvalidPeriodType  = errors.New("invalid period type")
	ErrInvalidPeriodValue = errors.New("invalid period value")
	ErrInvalidGridSize    = errors.New("invalid grid size")
)

// Period 보드가 속한 연간/월간 기간
type Period struct {
	Type  model.PeriodType
	Year  int
	Month int // Monthly일 때만 사용
}

// Value 저장용 기간 문자열 ("2026" | "2026-02")
func (p Period) Value() string {
	if p.Type == model.PeriodMonthly {
		return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	}
	return fmt.Sprintf("%04d", p.Year)
}

// Title 보드 표시 제목
func (p Period) Title() string {
	if p.Type == model.PeriodMonthly {
		return fmt.Sprintf("%d년 %d월 버킷리스트", p.Year, p.Month)
	}
	return fmt.Sprintf("%d 버킷리스트", p.Year)
}

// ValidPeriodValue 기간 문자열 포맷 검증 (Yearly: "YYYY", Monthly: "YYYY-MM")
func ValidPeriodValue(t model.PeriodType, value string) bool {
	switch t {
	case model.PeriodYearly:
		return len(value) == 4 && allDigits(value)
	case model.PeriodMonthly:
		if len(value) != 7 || value[4] != '-' {
			return false
		}
		if !allDigits(value[:4]) || !allDigits(value[5:]) {
			return false
		}
		return value[5:] >= "01" && value[5:] <= "12"
	}
	return false
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Board 편집 중인 텍스트 그리드. 셀은 인덱스 단위 last-write-wins이며
// 단일 에디터 뷰가 독점 소유한다.
type Board struct {
	size  model.GridSize
	cells []string
}

// New 빈 보드 생성. 지원되지 않는 크기는 에러.
func New(size model.GridSize) (*Board, error) {
	if !size.Valid() {
		return nil, ErrInvalidGridSize
	}
	n := size.Cells()
	return &Board{size: size, cells: make([]string, n*n)}, nil
}

// Size 그리드 크기
func (b *Board) Size() model.GridSize {
	return b.size
}

// SetCell 셀 내용 변경. 길이는 MaxCellLen으로 잘린다.
func (b *Board) SetCell(index int, text string) {
	if index < 0 || index >= len(b.cells) {
		return
	}
	b.cells[index] = ClipCell(text)
}

// Cell 셀 내용 조회
func (b *Board) Cell(index int) string {
	if index < 0 || index >= len(b.cells) {
		return ""
	}
	return b.cells[index]
}

// Cells 셀 사본 (읽기 순서)
func (b *Board) Cells() []string {
	out := make([]string, len(b.cells))
	copy(out, b.cells)
	return out
}

// Resize 그리드 크기 변경. 기존 인덱스의 내용은 보존하고
// 모자라는 셀은 빈 문자열로 채운다 (3x3 → 5x5: 0~8 유지, 9~24 빈칸).
func (b *Board) Resize(size model.GridSize) error {
	if !size.Valid() {
		return ErrInvalidGridSize
	}
	n := size.Cells()
	b.cells = PadCells(b.cells, n*n)
	b.size = size
	return nil
}

// FilledCount 공백 제외 내용이 있는 셀 개수.
// 저장 시마다 다시 계산해야 하며 이전 값을 재사용하면 안 된다.
func (b *Board) FilledCount() int {
	return CountFilled(b.cells)
}

// Load 저장된 셀 배열을 현재 크기에 맞춰 로드
func (b *Board) Load(cells []string) {
	n := b.size.Cells()
	loaded := PadCells(cells, n*n)
	for i, c := range loaded {
		loaded[i] = ClipCell(c)
	}
	b.cells = loaded
}

// CountFilled 공백 제외 내용이 있는 셀 개수
func CountFilled(cells []string) int {
	count := 0
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			count++
		}
	}
	return count
}

// PadCells 셀 배열을 지정 길이로 패딩/자르기 (앞쪽 인덱스 보존)
func PadCells(cells []string, want int) []string {
	out := make([]string, want)
	copy(out, cells)
	return out
}

// ClipCell 셀 텍스트를 최대 길이로 자르기
func ClipCell(text string) string {
	runes := []rune(text)
	if len(runes) > MaxCellLen {
		return string(runes[:MaxCellLen])
	}
	return text
}
