package renderer

import "github.com/ByLCY/labelgen/layout"

// paintStamp 在章自身的局部坐标系里绘制质检章，(0,0) 为章的左上角。
func paintStamp(surface Surface, t layout.Theme, status, date string) {
	st := t.Stamp
	ink := t.Colors.Ink

	outer := layout.Rect{W: st.Width, H: st.Height}
	surface.StrokeRect(outer, Stroke{Color: ink, Width: st.OuterWidth})
	surface.StrokeRect(outer.Inset(st.InnerInset), Stroke{Color: t.Colors.StampRim, Width: st.InnerWidth})

	mid := st.Width / 2
	drawText(surface, status, mid, st.StatusY, TextStyle{Font: st.StatusFont, Color: ink, Align: AlignCenter})

	surface.Line(layout.Segment{X1: st.RuleInset, Y1: st.RuleY, X2: st.Width - st.RuleInset, Y2: st.RuleY},
		Stroke{Color: ink, Width: st.RuleWidth})

	drawSpaced(surface, t.Labels.Inspected, mid, st.CaptionY, st.CaptionSpacing, true, st.CaptionFont, t.Colors.Body)
	drawText(surface, date, mid, st.DateY, TextStyle{Font: st.DateFont, Color: ink, Align: AlignCenter})
}
