package renderer

import (
	"image/color"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ByLCY/labelgen/label"
	"github.com/ByLCY/labelgen/layout"
)

// Scene 把一条标签记录画到 Surface 上。所有偏移都相对内容区，
// 带框与无框两种预设共用同一份绘制代码。
type Scene struct {
	Geometry layout.Geometry
	Theme    layout.Theme
}

// NewScene 使用默认主题构造场景。
func NewScene(g layout.Geometry) *Scene {
	return &Scene{Geometry: g, Theme: layout.DefaultTheme()}
}

// Paint 绘制完整标签：底色、外框与裁切线、产品信息、质检章、分隔线和公司信息。
func (s *Scene) Paint(surface Surface, rec label.Record) {
	s.Background(surface)
	s.Content(surface, rec)
}

// Background 只铺画布底色与标签纸面。导出流程在等待字体之前先调用它。
func (s *Scene) Background(surface Surface) {
	g := s.Geometry
	surface.FillRect(layout.Rect{W: g.Canvas.W, H: g.Canvas.H}, s.Theme.Colors.Canvas)
	surface.FillRect(g.Box, s.Theme.Colors.Paper)
}

// Content 绘制背景之上的全部内容。
func (s *Scene) Content(surface Surface, rec label.Record) {
	s.paintFrame(surface)
	s.paintProduct(surface, rec)
	stamp := s.Geometry.StampRect(s.Theme)
	paintStamp(Translate(surface, stamp.X, stamp.Y), s.Theme, rec.QCStatus, rec.QCDate)
	s.paintBottom(surface, rec)
}

func (s *Scene) paintFrame(surface Surface) {
	g := s.Geometry
	if g.Frame == nil {
		return
	}
	colors := s.Theme.Colors
	surface.StrokeRect(g.Box, Stroke{Color: colors.Border, Width: g.Frame.StrokeWidth})
	marks := Stroke{Color: colors.Marks, Width: g.Frame.CornerWidth}
	for _, seg := range g.CornerMarks() {
		surface.Line(seg, marks)
	}
	for _, dash := range g.GuideDashes() {
		surface.FillRect(dash, colors.Marks)
	}
}

func (s *Scene) paintProduct(surface Surface, rec label.Record) {
	t := s.Theme
	c := s.Geometry.Content
	p := t.Product

	y := c.Y + p.TopInset
	drawSpaced(surface, t.Labels.ProductName, c.X, y, p.LabelSpacing, false, p.LabelFont, t.Colors.Muted)
	y += p.LabelGap

	lines := drawWrapped(surface, rec.ProductName, c.X, y, c.W*p.NameRatio, p.NameLeading, p.NameFont, t.Colors.Ink)
	y += p.RowAdvance + p.NameLeading*float64(lines-1)

	columns := []struct {
		caption string
		value   string
	}{
		{t.Labels.Model, rec.ProductModel},
		{t.Labels.Date, rec.ProductionYear},
	}
	for i, col := range columns {
		x := c.X + p.ColumnGap*float64(i)
		drawSpaced(surface, col.caption, x, y, p.LabelSpacing, false, p.LabelFont, t.Colors.Muted)
		drawText(surface, col.value, x, y+p.LabelGap, TextStyle{Font: p.ValueFont, Color: t.Colors.Ink})
	}
}

func (s *Scene) paintBottom(surface Surface, rec label.Record) {
	t := s.Theme
	c := s.Geometry.Content
	b := t.Bottom

	dividerY := s.Geometry.DividerY(t)
	surface.Line(layout.Segment{X1: c.X, Y1: dividerY, X2: c.Right(), Y2: dividerY},
		Stroke{Color: t.Colors.Divider, Width: b.DividerWidth})

	y := dividerY + b.TopGap
	wrapWidth := c.W * b.CompanyRatio
	company := cases.Upper(language.Und).String(rec.CompanyName)
	lines := drawWrapped(surface, company, c.X, y, wrapWidth, b.CompanyLeading, b.CompanyFont, t.Colors.Ink)
	y += b.CompanyAdvance + b.CompanyLeading*float64(lines-1)

	drawText(surface, rec.Website, c.X, y, TextStyle{Font: b.WebsiteFont, Color: t.Colors.Muted})
	y += b.WebsiteAdvance + b.SectionGap

	valueX := c.X + b.GridLabelWidth
	drawSpaced(surface, t.Labels.Address, c.X, y, b.GridSpacing, false, b.GridLabelFont, t.Colors.Faint)
	lines = drawWrapped(surface, rec.Address, valueX, y, wrapWidth-b.GridLabelWidth, b.AddressLeading, b.AddressFont, t.Colors.Body)
	y += b.RowAdvance + b.AddressLeading*float64(lines-1) + b.RowGap

	drawSpaced(surface, t.Labels.Mail, c.X, y, b.GridSpacing, false, b.GridLabelFont, t.Colors.Faint)
	drawText(surface, rec.Email, valueX, y, TextStyle{Font: b.EmailFont, Color: t.Colors.Body})
}

// drawWrapped 折行后逐行绘制，返回行数（至少为 1）。
func drawWrapped(surface Surface, text string, x, y, maxWidth, leading float64, font layout.Font, col color.Color) int {
	lines := layout.WrapRunes(text, maxWidth, font, surface)
	style := TextStyle{Font: font, Color: col}
	for i, line := range lines {
		drawText(surface, line, x, y+leading*float64(i), style)
	}
	return len(lines)
}

// drawSpaced 逐字绘制带字距的文本。每个字符都左对齐绘制在计算出的起点上，
// 居中只体现在起点的计算里。
func drawSpaced(surface Surface, text string, x, y, spacing float64, centered bool, font layout.Font, col color.Color) {
	glyphs, _ := layout.SpaceLetters(text, x, spacing, centered, font, surface)
	style := TextStyle{Font: font, Color: col, Align: AlignLeft}
	for _, g := range glyphs {
		drawText(surface, g.Text, g.X, y, style)
	}
}

// 空串不产生绘制调用。
func drawText(surface Surface, text string, x, y float64, style TextStyle) {
	if text == "" {
		return
	}
	surface.FillText(text, x, y, style)
}
