package canvasrenderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/labelgen/layout"
	"github.com/ByLCY/labelgen/renderer"
)

// Surface 是基于 tdewolff/canvas 的绘图表面。每次导出新建一个，用完即弃。
// 坐标系设为 CartesianIV，使原点位于左上角，与布局一致。
type Surface struct {
	book *FontBook

	c   *canvas.Canvas
	ctx *canvas.Context

	mu  sync.Mutex
	err error
}

var _ renderer.RasterSurface = (*Surface)(nil)

// NewSurface 创建 width×height（逻辑像素）的画布。
func NewSurface(book *FontBook, width, height float64) (*Surface, error) {
	if book == nil {
		return nil, errors.New("canvas: font book is nil")
	}
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("canvas: invalid surface size %gx%g", width, height)
	}
	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	return &Surface{book: book, c: c, ctx: ctx}, nil
}

func (s *Surface) MeasureText(text string, font layout.Font) float64 {
	face, err := s.book.Face(font, color.Black)
	if err != nil {
		s.fail(err)
		return 0
	}
	return face.TextWidth(text)
}

func (s *Surface) FillRect(r layout.Rect, fill color.Color) {
	s.ctx.SetFillColor(fill)
	s.ctx.SetStrokeColor(color.RGBA{})
	s.ctx.SetStrokeWidth(0)
	s.ctx.DrawPath(r.X, r.Y, canvas.Rectangle(r.W, r.H))
}

func (s *Surface) StrokeRect(r layout.Rect, stroke renderer.Stroke) {
	s.ctx.SetFillColor(color.RGBA{})
	s.ctx.SetStrokeColor(stroke.Color)
	s.ctx.SetStrokeWidth(stroke.Width)
	s.ctx.DrawPath(r.X, r.Y, canvas.Rectangle(r.W, r.H))
}

func (s *Surface) Line(seg layout.Segment, stroke renderer.Stroke) {
	s.ctx.SetFillColor(color.RGBA{})
	s.ctx.SetStrokeColor(stroke.Color)
	s.ctx.SetStrokeWidth(stroke.Width)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(seg.X2-seg.X1, seg.Y2-seg.Y1)
	s.ctx.DrawPath(seg.X1, seg.Y1, p)
}

// FillText 把顶部坐标 y 加上字体上升部换算为基线后绘制。
func (s *Surface) FillText(text string, x, y float64, style renderer.TextStyle) {
	face, err := s.book.Face(style.Font, style.Color)
	if err != nil {
		s.fail(err)
		return
	}
	align := canvas.Left
	switch style.Align {
	case renderer.AlignCenter:
		align = canvas.Center
	case renderer.AlignRight:
		align = canvas.Right
	}
	line := canvas.NewTextLine(face, text, align)
	s.ctx.DrawText(x, y+face.Metrics().Ascent, line)
}

// Rasterize 以 scale 倍过采样栅格化，返回 (width×scale)×(height×scale) 的位图。
// 绘制过程中出现的第一个字体错误在这里返回。
func (s *Surface) Rasterize(scale float64) (image.Image, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}
	if !(scale > 0) {
		return nil, fmt.Errorf("canvas: invalid scale %g", scale)
	}
	return rasterizer.Draw(s.c, canvas.DPMM(scale), canvas.DefaultColorSpace), nil
}

// Err 返回绘制过程中记录的第一个错误。
func (s *Surface) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Surface) fail(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}
