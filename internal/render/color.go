package render

import (
	"image/color"
	"strconv"
	"strings"
)

// parseStrokeColor 클라이언트가 저장하는 세 가지 색 표기를 모두 처리한다:
// "#RRGGBB", 알파 포함 "#RRGGBBAA" (지우개 "#ffffff00"), 형광펜 "rgba(r, g, b, 0.3)".
// 해석 불가 시 불투명 검정으로 폴백.
func parseStrokeColor(s string) color.NRGBA {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb(") {
		return parseRGBAFunc(s)
	}
	return parseHex(s)
}

func parseHex(s string) color.NRGBA {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3: // #RGB
		r := hexNibble(h[0])
		g := hexNibble(h[1])
		b := hexNibble(h[2])
		return color.NRGBA{R: r*16 + r, G: g*16 + g, B: b*16 + b, A: 255}
	case 6, 8:
		r, err1 := strconv.ParseUint(h[0:2], 16, 8)
		g, err2 := strconv.ParseUint(h[2:4], 16, 8)
		b, err3 := strconv.ParseUint(h[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return color.NRGBA{A: 255}
		}
		a := uint64(255)
		if len(h) == 8 {
			if parsed, err := strconv.ParseUint(h[6:8], 16, 8); err == nil {
				a = parsed
			}
		}
		return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
	}
	return color.NRGBA{A: 255}
}

func hexNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func parseRGBAFunc(s string) color.NRGBA {
	open := strings.IndexByte(s, '(')
	closing := strings.IndexByte(s, ')')
	if open < 0 || closing <= open {
		return color.NRGBA{A: 255}
	}
	parts := strings.Split(s[open+1:closing], ",")
	if len(parts) < 3 {
		return color.NRGBA{A: 255}
	}
	channel := func(p string) uint8 {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	out := color.NRGBA{R: channel(parts[0]), G: channel(parts[1]), B: channel(parts[2]), A: 255}
	if len(parts) >= 4 {
		if a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64); err == nil && a >= 0 && a <= 1 {
			out.A = uint8(a*255 + 0.5)
		}
	}
	return out
}
