package canvas

// Tool 드로잉 도구 모드
type Tool string

const (
	ToolPen         Tool = "pen"
	ToolHighlighter Tool = "highlighter"
	ToolEraser      Tool = "eraser"
)

func (t Tool) String() string {
	return string(t)
}

// 도구별 기본값. 형광펜은 굵기 15 고정 + 30% 투명도,
// 지우개는 캔버스 배경색으로 덧칠한다 (벡터 데이터는 지우지 않음).
const (
	DefaultPenWidth    = 4.0
	HighlighterWidth   = 15.0
	HighlighterOpacity = 0.3
	EraserColor        = "#FFFFFF"
	DefaultPenColor    = "#000000"
)

// Point 2차원 좌표 (픽셀 또는 0~1 정규화 비율)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke 한 번의 pointer-down ~ pointer-up 드로잉 동작.
// 완료된 스트로크는 불변이며, 시퀀스 순서가 곧 그리기/z-order 순서다.
// JSON 필드명은 클라이언트가 저장해 온 기존 drawing_data 포맷과 호환된다.
type Stroke struct {
	Points    []Point `json:"paths"`
	Width     float64 `json:"strokeWidth"`
	Color     string  `json:"strokeColor"`
	DrawMode  bool    `json:"drawMode"` // false = 지우개 스트로크
	StartedAt int64   `json:"startTimestamp,omitempty"`
	EndedAt   int64   `json:"endTimestamp,omitempty"`
	Tool      Tool    `json:"tool,omitempty"`
}

// clone Points까지 복사한 사본 반환
func (s Stroke) clone() Stroke {
	out := s
	out.Points = make([]Point, len(s.Points))
	copy(out.Points, s.Points)
	return out
}

// ToolConfig 다음 스트로크에 적용될 도구 설정
type ToolConfig struct {
	Tool  Tool
	Color string
	Width float64
}
