package analytics

import (
	"log"
)

// 이벤트 이름 (클라이언트 GA 이벤트와 같은 이름을 쓴다)
const (
	EventDownload      = "click_download"
	EventSaveError     = "error_save_image"
	EventDrawTool      = "interact_draw_tool"
	EventSaveBoard     = "save_board"
	EventVisit         = "visit_board"
	EventStagedRestore = "restore_pending_board"
)

// Recorder 분석 이벤트 수집 인터페이스.
// 구현은 항상 non-blocking이어야 하고 실패를 밖으로 내보내면 안 된다.
// 이벤트 전송 실패가 사용자 동작을 중단시키는 일은 없어야 한다.
type Recorder interface {
	Record(event string, params map[string]any)
}

// LogRecorder 진단 로그로 이벤트를 남기는 기본 구현
type LogRecorder struct{}

// NewLogRecorder LogRecorder 생성
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

// Record 이벤트 기록
func (r *LogRecorder) Record(event string, params map[string]any) {
	log.Printf("[Analytics] %s %v", event, params)
}

// NopRecorder 아무것도 하지 않는 구현 (테스트/비활성화용)
type NopRecorder struct{}

func (NopRecorder) Record(event string, params map[string]any) {}
