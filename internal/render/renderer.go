package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/gogpu/gg"

	"bingo-backend/internal/board"
	"bingo-backend/internal/canvas"
	"bingo-backend/internal/model"
)

// Layer 캡처에서 제외할 수 있는 카드 레이어
type Layer string

const (
	LayerTitle      Layer = "title"
	LayerFooter     Layer = "footer"
	LayerDecoration Layer = "decoration"
)

// Options 카드 렌더링 설정
type Options struct {
	Width      int     // 기준 레이아웃 너비 (px)
	Height     int     // 기준 레이아웃 높이 (px), 카드는 9:16
	PixelRatio float64 // 출력 배율 (기본 2배)
	Quality    int     // JPEG 품질 (1~100)
	FontPath   string  // 텍스트 렌더링용 폰트 파일, 없으면 지오메트리만 그림
	Exclude    []Layer // 캡처에서 제외할 레이어
}

// DefaultOptions 공유 카드 레이아웃 기본값 (480px 너비, 9:16, 2배율, 품질 95)
func DefaultOptions() Options {
	return Options{
		Width:      480,
		Height:     853,
		PixelRatio: 2.0,
		Quality:    95,
	}
}

// CardRenderer 보드 카드(제목 + 그리드 + 데코레이션)를 JPEG 래스터로 그린다.
// export.Capturer 구현체.
type CardRenderer struct {
	opts Options
}

// NewCardRenderer CardRenderer 생성. 비어 있는 옵션 필드는 기본값으로 채운다.
func NewCardRenderer(opts Options) *CardRenderer {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.PixelRatio <= 0 {
		opts.PixelRatio = def.PixelRatio
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = def.Quality
	}
	return &CardRenderer{opts: opts}
}

func (r *CardRenderer) excluded(l Layer) bool {
	for _, e := range r.opts.Exclude {
		if e == l {
			return true
		}
	}
	return false
}

// Capture 보드 레코드를 단일 JPEG 이미지로 래스터화.
// 스트로크 좌표는 정규화(0~1) 상태로 들어와 출력 박스 기준으로 복원된다.
func (r *CardRenderer) Capture(ctx context.Context, rec board.Record) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ratio := r.opts.PixelRatio
	w := float64(r.opts.Width) * ratio
	h := float64(r.opts.Height) * ratio

	dc := gg.NewContext(int(w), int(h))
	defer dc.Close()

	// 카드 배경
	dc.SetHexColor("#FFFFFF")
	dc.DrawRectangle(0, 0, w, h)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("fill background: %w", err)
	}

	pad := 24.0 * ratio
	headerH := 80.0 * ratio
	footerH := 60.0 * ratio

	if !r.excluded(LayerTitle) {
		r.drawTitle(dc, rec, pad, headerH, ratio)
	}

	gridTop := pad + headerH
	gridSize := w - 2*pad
	if gridSize > h-gridTop-footerH-pad {
		gridSize = h - gridTop - footerH - pad
	}
	if err := r.drawGrid(dc, rec, pad, gridTop, gridSize, ratio); err != nil {
		return nil, err
	}

	if !r.excluded(LayerFooter) {
		r.drawFooter(dc, w, h, footerH, ratio)
	}

	if !r.excluded(LayerDecoration) {
		if err := r.drawStrokes(dc, rec.DrawingData, w, h); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodeJPEG(&buf, r.opts.Quality); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// drawTitle 기간 숫자 헤더 ("2026" 또는 월 2자리)
func (r *CardRenderer) drawTitle(dc *gg.Context, rec board.Record, pad, headerH, ratio float64) {
	if r.opts.FontPath == "" {
		return
	}
	if err := dc.LoadFontFace(r.opts.FontPath, 36*ratio); err != nil {
		return
	}
	dc.SetHexColor("#1A1C20")
	dc.DrawStringAnchored(headline(rec), pad, pad+headerH/2, 0, 0.35)
}

// headline 카드 상단의 큰 기간 표기. 월간 보드는 "YYYY MM", 연간은 "YYYY".
func headline(rec board.Record) string {
	if rec.PeriodType == model.PeriodMonthly && len(rec.PeriodValue) == 7 {
		return rec.PeriodValue[:4] + " " + rec.PeriodValue[5:]
	}
	return rec.PeriodValue
}

// drawGrid N×N 셀 그리드와 셀 텍스트
func (r *CardRenderer) drawGrid(dc *gg.Context, rec board.Record, left, top, size float64, ratio float64) error {
	n := rec.GridSize.Cells()
	if n == 0 {
		return board.ErrInvalidGridSize
	}
	cell := size / float64(n)

	// 셀 배경
	dc.SetHexColor("#FFFFFF")
	dc.DrawRectangle(left, top, size, size)
	if err := dc.Fill(); err != nil {
		return err
	}

	// 그리드 라인
	dc.SetHexColor("#9CA3AF")
	dc.SetLineWidth(1 * ratio)
	for i := 0; i <= n; i++ {
		offset := float64(i) * cell
		dc.DrawLine(left, top+offset, left+size, top+offset)
		dc.DrawLine(left+offset, top, left+offset, top+size)
	}
	if err := dc.Stroke(); err != nil {
		return err
	}

	if r.opts.FontPath == "" {
		return nil
	}
	if err := dc.LoadFontFace(r.opts.FontPath, 13*ratio); err != nil {
		return nil
	}
	dc.SetHexColor("#374151")
	for i, text := range rec.GridData {
		if i >= n*n {
			break
		}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		cx := left + (float64(i%n)+0.5)*cell
		cy := top + (float64(i/n)+0.5)*cell
		dc.DrawStringAnchored(trimmed, cx, cy, 0.5, 0.35)
	}
	return nil
}

// drawFooter 하단 브랜딩
func (r *CardRenderer) drawFooter(dc *gg.Context, w, h, footerH, ratio float64) {
	if r.opts.FontPath == "" {
		return
	}
	if err := dc.LoadFontFace(r.opts.FontPath, 12*ratio); err != nil {
		return
	}
	dc.SetHexColor("#1A1C20")
	dc.DrawStringAnchored("Bucket List BINGO", w/2, h-footerH, 0.5, 0.35)
	dc.SetHexColor("#9CA3AF")
	dc.DrawStringAnchored("www.bucketlist.design", w/2, h-footerH+18*ratio, 0.5, 0.35)
}

// drawStrokes 정규화 스트로크를 출력 박스 기준 픽셀로 복원해 순서대로 합성.
// 지우개 스트로크는 저장된 배경색 그대로 덧칠된다 (벡터는 보존되는 의미론).
func (r *CardRenderer) drawStrokes(dc *gg.Context, strokes []canvas.Stroke, w, h float64) error {
	if len(strokes) == 0 {
		return nil
	}
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for _, s := range strokes {
		if len(s.Points) == 0 {
			continue
		}
		width := s.Width * w
		if width <= 0 {
			width = canvas.DefaultPenWidth * r.opts.PixelRatio
		}
		dc.SetColor(parseStrokeColor(s.Color))
		dc.SetLineWidth(width)

		first := s.Points[0]
		dc.MoveTo(first.X*w, first.Y*h)
		if len(s.Points) == 1 {
			// 탭 한 번으로 찍힌 점
			dc.LineTo(first.X*w+0.1, first.Y*h+0.1)
		}
		for _, p := range s.Points[1:] {
			dc.LineTo(p.X*w, p.Y*h)
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke render: %w", err)
		}
	}
	return nil
}
