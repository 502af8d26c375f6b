package typewriter

import (
	"image/color"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Span is a run of text drawn in a single color. A nil Color means the
// surface's default color.
type Span struct {
	Text  string
	Color color.Color
}

// Spans parses <color=#RRGGBB[AA]>...</color> markup. Tags are not glyphs and
// never show up in span text. Nested colors restore the outer color on close.
func Spans(text string) []Span {
	var (
		spans []Span
		stack []color.Color
		cur   color.Color
		b     strings.Builder
	)
	flush := func() {
		if b.Len() == 0 {
			return
		}
		spans = append(spans, Span{Text: b.String(), Color: cur})
		b.Reset()
	}

	for i := 0; i < len(text); {
		if text[i] == '<' {
			if end := strings.IndexByte(text[i:], '>'); end > 0 {
				tag := text[i+1 : i+end]
				if c, ok := parseColorTag(tag); ok {
					flush()
					stack = append(stack, cur)
					cur = c
					i += end + 1
					continue
				}
				if strings.EqualFold(tag, "/color") {
					flush()
					if n := len(stack); n > 0 {
						cur = stack[n-1]
						stack = stack[:n-1]
					} else {
						cur = nil
					}
					i += end + 1
					continue
				}
			}
		}
		b.WriteByte(text[i])
		i++
	}
	flush()
	return spans
}

// Glyphs counts visible characters, skipping markup.
func Glyphs(text string) int {
	n := 0
	for _, s := range Spans(text) {
		n += utf8.RuneCountInString(s.Text)
	}
	return n
}

// Plain strips markup.
func Plain(text string) string {
	var b strings.Builder
	for _, s := range Spans(text) {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Truncate keeps the first n glyphs. A negative n keeps everything.
func Truncate(spans []Span, n int) []Span {
	if n < 0 {
		return spans
	}
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if n <= 0 {
			break
		}
		count := utf8.RuneCountInString(s.Text)
		if count <= n {
			out = append(out, s)
			n -= count
			continue
		}
		cut := 0
		for i := 0; i < n; i++ {
			_, size := utf8.DecodeRuneInString(s.Text[cut:])
			cut += size
		}
		out = append(out, Span{Text: s.Text[:cut], Color: s.Color})
		n = 0
	}
	return out
}

// ColorTag renders c as a #RRGGBBAA hex string.
func ColorTag(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return "#" + hex2(n.R) + hex2(n.G) + hex2(n.B) + hex2(n.A)
}

func hex2(v uint8) string {
	s := strconv.FormatUint(uint64(v), 16)
	if len(s) == 1 {
		s = "0" + s
	}
	return strings.ToUpper(s)
}

func parseColorTag(tag string) (color.Color, bool) {
	name, value, ok := strings.Cut(tag, "=")
	if !ok || !strings.EqualFold(strings.TrimSpace(name), "color") {
		return nil, false
	}
	value = strings.Trim(strings.TrimSpace(value), "\"")
	return ParseHexColor(value)
}

// ParseHexColor parses #RRGGBB or #RRGGBBAA.
func ParseHexColor(s string) (color.Color, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, false
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}
