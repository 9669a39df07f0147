package model

// PeriodType 보드가 속한 기간 타입
type PeriodType string

const (
	PeriodYearly  PeriodType = "Yearly"
	PeriodMonthly PeriodType = "Monthly"
)

// String 메서드
func (p PeriodType) String() string {
	return string(p)
}

// Valid 지원되는 기간 타입인지 확인
func (p PeriodType) Valid() bool {
	return p == PeriodYearly || p == PeriodMonthly
}

// GridSize 보드 그리드 크기 ("3x3" | "4x4" | "5x5")
type GridSize string

const (
	Grid3x3 GridSize = "3x3"
	Grid4x4 GridSize = "4x4"
	Grid5x5 GridSize = "5x5"
)

func (g GridSize) String() string {
	return string(g)
}

// Valid 지원되는 그리드 크기인지 확인
func (g GridSize) Valid() bool {
	return g == Grid3x3 || g == Grid4x4 || g == Grid5x5
}

// Cells 그리드 한 변의 셀 개수 (3, 4, 5)
func (g GridSize) Cells() int {
	switch g {
	case Grid3x3:
		return 3
	case Grid4x4:
		return 4
	case Grid5x5:
		return 5
	}
	return 0
}

// CounterColumn 보드 통계 카운터 컬럼
type CounterColumn string

const (
	CounterVisit    CounterColumn = "visit_count"
	CounterDownload CounterColumn = "download_count"
)

func (c CounterColumn) String() string {
	return string(c)
}

// Valid 증가 가능한 카운터 컬럼인지 확인
func (c CounterColumn) Valid() bool {
	return c == CounterVisit || c == CounterDownload
}
