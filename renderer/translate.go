package renderer

import (
	"image/color"

	"github.com/ByLCY/labelgen/layout"
)

// Translate 返回一个把局部坐标平移 (dx, dy) 后转发给 s 的表面，
// 用来让质检章这类独立区块在自己的坐标系里绘制。
func Translate(s Surface, dx, dy float64) Surface {
	if t, ok := s.(*translated); ok {
		return &translated{inner: t.inner, dx: t.dx + dx, dy: t.dy + dy}
	}
	return &translated{inner: s, dx: dx, dy: dy}
}

type translated struct {
	inner  Surface
	dx, dy float64
}

func (t *translated) MeasureText(text string, font layout.Font) float64 {
	return t.inner.MeasureText(text, font)
}

func (t *translated) FillRect(r layout.Rect, fill color.Color) {
	t.inner.FillRect(r.Translate(t.dx, t.dy), fill)
}

func (t *translated) StrokeRect(r layout.Rect, stroke Stroke) {
	t.inner.StrokeRect(r.Translate(t.dx, t.dy), stroke)
}

func (t *translated) Line(seg layout.Segment, stroke Stroke) {
	t.inner.Line(layout.Segment{
		X1: seg.X1 + t.dx, Y1: seg.Y1 + t.dy,
		X2: seg.X2 + t.dx, Y2: seg.Y2 + t.dy,
	}, stroke)
}

func (t *translated) FillText(text string, x, y float64, style TextStyle) {
	t.inner.FillText(text, x+t.dx, y+t.dy, style)
}
