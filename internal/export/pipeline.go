package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"bingo-backend/internal/analytics"
	"bingo-backend/internal/board"
)

// Filename 내보내기 산출물 고정 파일명
const Filename = "bucket_list_bingo.jpg"

// MIMEType 산출물 MIME 타입
const MIMEType = "image/jpeg"

var (
	// ErrShareCancelled 사용자가 공유 시트를 닫음. 에러가 아닌 정상 중단으로
	// 취급하고 다운로드 폴백을 타면 안 된다.
	ErrShareCancelled = errors.New("share cancelled by user")

	// ErrEmptyCapture 래스터라이저가 빈 결과를 반환
	ErrEmptyCapture = errors.New("capture returned empty image")
)

// Capturer 렌더링된 카드를 인코딩된 이미지 바이트로 캡처
type Capturer interface {
	Capture(ctx context.Context, rec board.Record) ([]byte, error)
}

// Artifact 전달 대상 이미지 파일
type Artifact struct {
	Filename string
	MIMEType string
	Data     []byte
}

// ShareTarget 네이티브 공유 시트 (모바일 갤러리 저장 UX).
// 사용자가 취소하면 Share는 ErrShareCancelled를 반환해야 한다.
type ShareTarget interface {
	CanShare(a Artifact) bool
	Share(ctx context.Context, a Artifact) error
}

// Downloader 직접 파일 다운로드 폴백
type Downloader interface {
	Download(ctx context.Context, a Artifact) error
}

// Config 파이프라인 재시도/지연 설정
type Config struct {
	SettleDelay time.Duration // 캡처 전 렌더링 안정화 대기
	Attempts    int           // 캡처 최대 시도 횟수
	Backoff     time.Duration // 시도 간 고정 대기
}

// DefaultConfig 기본값 (100ms 안정화, 3회, 500ms 간격)
func DefaultConfig() Config {
	return Config{
		SettleDelay: 100 * time.Millisecond,
		Attempts:    3,
		Backoff:     500 * time.Millisecond,
	}
}

// Result 내보내기 결과
type Result struct {
	Method    string // "share_sheet" | "download_fallback"
	Cancelled bool   // 공유 시트 취소로 조용히 중단됨
}

// Pipeline 카드 캡처 + 전달 파이프라인.
// 캡처는 고정 횟수 재시도하고, 전달은 공유 가능 여부에 따라 분기한다.
type Pipeline struct {
	cfg      Config
	capturer Capturer
	share    ShareTarget // nil이면 항상 다운로드
	download Downloader
	recorder analytics.Recorder

	sleep func(ctx context.Context, d time.Duration) error
}

// NewPipeline Pipeline 생성. cfg의 0 값은 기본값으로 채운다.
func NewPipeline(cfg Config, capturer Capturer, share ShareTarget, download Downloader, recorder analytics.Recorder) *Pipeline {
	def := DefaultConfig()
	if cfg.Attempts <= 0 {
		cfg.Attempts = def.Attempts
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = def.Backoff
	}
	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = def.SettleDelay
	}
	if recorder == nil {
		recorder = analytics.NopRecorder{}
	}
	return &Pipeline{
		cfg:      cfg,
		capturer: capturer,
		share:    share,
		download: download,
		recorder: recorder,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Produce 안정화 대기 후 캡처를 재시도 한도 내에서 수행.
// 에러/빈 결과 모두 일시 실패로 보고 고정 백오프 후 재시도하며,
// 한도 소진은 이 내보내기 시도의 하드 실패다.
func (p *Pipeline) Produce(ctx context.Context, rec board.Record) ([]byte, error) {
	if err := p.sleep(ctx, p.cfg.SettleDelay); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= p.cfg.Attempts; attempt++ {
		if attempt > 1 {
			if err := p.sleep(ctx, p.cfg.Backoff); err != nil {
				return nil, err
			}
		}
		data, err := p.capturer.Capture(ctx, rec)
		if err != nil {
			log.Printf("[Export] Capture attempt %d failed: %v", attempt, err)
			lastErr = err
			continue
		}
		if len(data) == 0 {
			log.Printf("[Export] Capture attempt %d returned empty image", attempt)
			lastErr = ErrEmptyCapture
			continue
		}
		return data, nil
	}

	p.recorder.Record(analytics.EventSaveError, map[string]any{
		"error_message": lastErr.Error(),
	})
	return nil, fmt.Errorf("capture failed after %d attempts: %w", p.cfg.Attempts, lastErr)
}

// Export 캡처부터 전달까지 전체 파이프라인 수행.
// 공유 시트 취소는 에러 없이 Result.Cancelled로 끝난다.
func (p *Pipeline) Export(ctx context.Context, rec board.Record) (Result, error) {
	data, err := p.Produce(ctx, rec)
	if err != nil {
		return Result{}, err
	}

	artifact := Artifact{Filename: Filename, MIMEType: MIMEType, Data: data}

	if p.share != nil && p.share.CanShare(artifact) {
		err := p.share.Share(ctx, artifact)
		switch {
		case err == nil:
			p.recordDelivered(rec, "share_sheet")
			return Result{Method: "share_sheet"}, nil
		case errors.Is(err, ErrShareCancelled):
			// 취소는 폴백도 에러 메시지도 없이 조용히 끝낸다
			return Result{Cancelled: true}, nil
		default:
			log.Printf("[Export] Share failed, falling back to download: %v", err)
		}
	}

	if err := p.download.Download(ctx, artifact); err != nil {
		p.recorder.Record(analytics.EventSaveError, map[string]any{
			"error_message": err.Error(),
		})
		return Result{}, fmt.Errorf("download delivery: %w", err)
	}
	p.recordDelivered(rec, "download_fallback")
	return Result{Method: "download_fallback"}, nil
}

func (p *Pipeline) recordDelivered(rec board.Record, method string) {
	p.recorder.Record(analytics.EventDownload, map[string]any{
		"method":          method,
		"final_grid_size": rec.GridSize.String(),
		"is_decorated":    len(rec.DrawingData) > 0,
	})
}
