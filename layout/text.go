package layout

import (
	"strings"
	"unicode/utf8"
)

// Measurer 返回文本在给定字体下的前进宽度（逻辑像素）。这是排版的唯一度量原语。
type Measurer interface {
	MeasureText(text string, font Font) float64
}

// MeasureFunc 让普通函数满足 Measurer。
type MeasureFunc func(text string, font Font) float64

func (f MeasureFunc) MeasureText(text string, font Font) float64 { return f(text, font) }

// FixedMeasurer 假定每个字符的宽度都是 Advance×字号，用作已知等宽的测试字体。
type FixedMeasurer struct {
	Advance float64
}

func (m FixedMeasurer) MeasureText(text string, font Font) float64 {
	return float64(utf8.RuneCountInString(text)) * m.Advance * font.Size
}

// WrapRunes 按字符逐个累积候选行：加入第 n 个字符（n>0）后若宽度超过 maxWidth，
// 先输出已累积的行，再以该字符开始新行。最后一行总会输出，因此空串得到一行空内容。
// 单个字符本身超宽时独占一行，不再拆分。按字符而不是按词折行，词内断开是有意的简化。
func WrapRunes(text string, maxWidth float64, font Font, m Measurer) []string {
	var lines []string
	var line strings.Builder
	n := 0
	for _, r := range text {
		candidate := line.String() + string(r)
		if n > 0 && m.MeasureText(candidate, font) > maxWidth {
			lines = append(lines, line.String())
			line.Reset()
			line.WriteRune(r)
		} else {
			line.Reset()
			line.WriteString(candidate)
		}
		n++
	}
	return append(lines, line.String())
}

// Glyph 是字距排版后需要单独绘制的一段文本及其起点。
type Glyph struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// SpaceLetters 计算带字距文本的绘制位置。
// spacing 为 0 时整串作为一次绘制；否则总宽 = 各字符宽度之和 + spacing×(字符数-1)，
// 居中时起点左移总宽的一半，之后每个字符前进自身宽度加 spacing。
func SpaceLetters(text string, x, spacing float64, centered bool, font Font, m Measurer) ([]Glyph, float64) {
	if text == "" {
		return nil, 0
	}
	if spacing == 0 {
		w := m.MeasureText(text, font)
		if centered {
			x -= w / 2
		}
		return []Glyph{{Text: text, X: x, Width: w}}, w
	}

	glyphs := make([]Glyph, 0, utf8.RuneCountInString(text))
	total := 0.0
	for _, r := range text {
		s := string(r)
		w := m.MeasureText(s, font)
		if len(glyphs) > 0 {
			total += spacing
		}
		glyphs = append(glyphs, Glyph{Text: s, Width: w})
		total += w
	}

	cursor := x
	if centered {
		cursor = x - total/2
	}
	for i := range glyphs {
		glyphs[i].X = cursor
		cursor += glyphs[i].Width + spacing
	}
	return glyphs, total
}
