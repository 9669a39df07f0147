package canvas

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Overlay 콘텐츠 카드 위에 올라가는 프리핸드 데코레이션 레이어.
// 스트로크 캡처, 도구 전환, undo/redo, 정규화 직렬화를 담당한다.
// 단일 에디터 뷰가 독점 소유하며 고루틴 안전하지 않다.
type Overlay struct {
	strokes []Stroke
	redo    []Stroke
	open    *Stroke

	penColor string
	penWidth float64
	tool     Tool

	observers []func(Stroke)
	now       func() int64
}

// NewOverlay 빈 오버레이 생성 (기본 도구: 펜)
func NewOverlay() *Overlay {
	return &Overlay{
		penColor: DefaultPenColor,
		penWidth: DefaultPenWidth,
		tool:     ToolPen,
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// OnStrokeComplete 스트로크 완료 옵저버 등록.
// EndStroke에서 동기 호출된다 (데코레이션 플래그, 분석 이벤트용).
func (o *Overlay) OnStrokeComplete(fn func(Stroke)) {
	o.observers = append(o.observers, fn)
}

// SetTool 도구 전환. 진행 중이거나 완료된 스트로크에는 영향이 없고
// 다음 BeginStroke부터 적용된다.
func (o *Overlay) SetTool(t Tool) {
	switch t {
	case ToolPen, ToolHighlighter, ToolEraser:
		o.tool = t
	}
}

// SetColor 펜 색상 변경 (hex, 예: "#FF0000")
func (o *Overlay) SetColor(hex string) {
	o.penColor = hex
}

// SetWidth 펜/지우개 굵기 변경
func (o *Overlay) SetWidth(w float64) {
	if w > 0 {
		o.penWidth = w
	}
}

// Tool 현재 도구
func (o *Overlay) Tool() Tool {
	return o.tool
}

// toolConfig 현재 도구 설정 계산
func (o *Overlay) toolConfig() ToolConfig {
	switch o.tool {
	case ToolHighlighter:
		return ToolConfig{Tool: ToolHighlighter, Color: highlightColor(o.penColor), Width: HighlighterWidth}
	case ToolEraser:
		return ToolConfig{Tool: ToolEraser, Color: EraserColor, Width: o.penWidth}
	default:
		return ToolConfig{Tool: ToolPen, Color: o.penColor, Width: o.penWidth}
	}
}

// BeginStroke 새 스트로크 시작. 제스처 라이프사이클이 open/close 짝을
// 보장하지만, 열린 스트로크가 남아 있으면 먼저 닫는다 (포인터 캡처 유실 대비).
func (o *Overlay) BeginStroke(p Point) {
	if o.open != nil {
		o.EndStroke()
	}
	cfg := o.toolConfig()
	o.open = &Stroke{
		Points:    []Point{p},
		Width:     cfg.Width,
		Color:     cfg.Color,
		DrawMode:  cfg.Tool != ToolEraser,
		StartedAt: o.now(),
		Tool:      cfg.Tool,
	}
}

// ExtendStroke 열린 스트로크에 점 추가. 열린 스트로크가 없으면 no-op.
func (o *Overlay) ExtendStroke(p Point) {
	if o.open == nil {
		return
	}
	o.open.Points = append(o.open.Points, p)
}

// EndStroke 열린 스트로크를 닫고 시퀀스에 추가한 뒤 옵저버에 알린다.
// 새 스트로크가 완료되면 redo 스택은 무효화된다.
func (o *Overlay) EndStroke() {
	if o.open == nil {
		return
	}
	s := *o.open
	s.EndedAt = o.now()
	o.open = nil
	o.strokes = append(o.strokes, s)
	o.redo = o.redo[:0]
	for _, fn := range o.observers {
		fn(s.clone())
	}
}

// Undo 가장 최근에 완료된 스트로크 제거. 비어 있으면 no-op.
func (o *Overlay) Undo() {
	if len(o.strokes) == 0 {
		return
	}
	last := o.strokes[len(o.strokes)-1]
	o.strokes = o.strokes[:len(o.strokes)-1]
	o.redo = append(o.redo, last)
}

// Redo 마지막 Undo 복원. 단일 선형 스택이므로 새 스트로크가
// 완료된 뒤에는 복원할 수 없다.
func (o *Overlay) Redo() {
	if len(o.redo) == 0 {
		return
	}
	last := o.redo[len(o.redo)-1]
	o.redo = o.redo[:len(o.redo)-1]
	o.strokes = append(o.strokes, last)
}

// Clear 스트로크 시퀀스 전체 무조건 비우기.
// "전체 지우기"와 다른 기간/그리드 데이터 로드 전 초기화 양쪽에 쓰인다.
func (o *Overlay) Clear() {
	o.strokes = o.strokes[:0]
	o.redo = o.redo[:0]
	o.open = nil
}

// Strokes 완료된 스트로크 사본 (그리기 순서)
func (o *Overlay) Strokes() []Stroke {
	out := make([]Stroke, 0, len(o.strokes))
	for _, s := range o.strokes {
		out = append(out, s.clone())
	}
	return out
}

// IsDecorated 스트로크 시퀀스 비어있지 않음 여부
func (o *Overlay) IsDecorated() bool {
	return len(o.strokes) > 0
}

// Len 완료된 스트로크 개수
func (o *Overlay) Len() int {
	return len(o.strokes)
}

// highlightColor hex 색상을 30% 투명도의 rgba 문자열로 변환.
// 파싱이 불가능한 입력은 그대로 돌려준다.
func highlightColor(hex string) string {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return hex
	}
	r, err1 := strconv.ParseUint(h[0:2], 16, 8)
	g, err2 := strconv.ParseUint(h[2:4], 16, 8)
	b, err3 := strconv.ParseUint(h[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return hex
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, HighlighterOpacity)
}
