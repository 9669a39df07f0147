package canvas

import (
	"math"
)

// Size 정규화 기준 바운딩 박스 (픽셀).
// 레이아웃 상태를 암묵적으로 읽지 않도록 호출자가 명시적으로 넘긴다.
type Size struct {
	Width  float64
	Height float64
}

// Zero 레이아웃 전이라 크기가 없는 상태인지 확인
func (s Size) Zero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// ExportNormalized 완료된 스트로크 시퀀스를 정규화 레코드로 변환.
// 좌표는 박스 너비/높이에 대한 비율(0~1), 굵기는 너비에 대한 비율로 저장해서
// 어떤 화면 크기에서 다시 열어도 같은 비율로 복원된다.
// 박스 크기가 0이면 (아직 레이아웃 전) 빈 결과를 돌려준다.
func (o *Overlay) ExportNormalized(box Size) []Stroke {
	if box.Zero() {
		return nil
	}
	out := make([]Stroke, 0, len(o.strokes))
	for _, s := range o.strokes {
		n := s.clone()
		for i, p := range n.Points {
			n.Points[i] = Point{X: p.X / box.Width, Y: p.Y / box.Height}
		}
		n.Width = s.Width / box.Width
		out = append(out, n)
	}
	return out
}

// LoadNormalized 정규화 레코드를 현재 박스 크기 기준 픽셀 좌표로 복원하고
// 스트로크 시퀀스를 통째로 교체한다 (기존 내용과 병합하지 않음).
// 손상된 레코드는 건너뛰고 나머지는 살린다.
func (o *Overlay) LoadNormalized(records []Stroke, box Size) {
	o.Clear()
	if box.Zero() {
		return
	}
	for _, r := range records {
		if !validRecord(r) {
			continue
		}
		s := r.clone()
		for i, p := range s.Points {
			s.Points[i] = Point{X: p.X * box.Width, Y: p.Y * box.Height}
		}
		if r.Width > 0 {
			s.Width = r.Width * box.Width
		} else {
			// 구버전 데이터는 굵기가 빠져 있을 수 있다
			s.Width = DefaultPenWidth
		}
		o.strokes = append(o.strokes, s)
	}
}

// validRecord 레코드 단위 검증: 음수/비유한 굵기, 비유한 좌표, 빈 경로 거부
func validRecord(r Stroke) bool {
	if len(r.Points) == 0 {
		return false
	}
	if r.Width < 0 || math.IsNaN(r.Width) || math.IsInf(r.Width, 0) {
		return false
	}
	for _, p := range r.Points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}
