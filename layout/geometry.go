package layout

// 几何模型：画布尺寸、标签外框、内边距与由此推导出的子区域。
// 两种预设共用同一套场景代码，区别只在外框与裁切线是否存在。

// Size 描述宽高。
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect 是左上角 + 宽高形式的矩形。
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Inset 返回四边各收缩 d 的矩形。
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Translate 平移矩形。
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Segment 是一条线段。
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// PresetKind 选择几何预设。
type PresetKind int

const (
	Bordered   PresetKind = iota // 700×500 画布，带外框、角标与裁切虚线
	Borderless                   // 内容铺满声明的宽高，仅保留内边距
)

func (k PresetKind) String() string {
	switch k {
	case Bordered:
		return "bordered"
	case Borderless:
		return "borderless"
	default:
		return "unknown"
	}
}

// 带框预设的固定常量。
const (
	BorderedCanvasWidth  = 700.0
	BorderedCanvasHeight = 500.0
	BorderInset          = 20.0
	BorderedBoxWidth     = 600.0
	BorderedBoxHeight    = 400.0
	BorderedPadding      = 48.0
)

// Frame 描述外框、角标与裁切虚线。
type Frame struct {
	StrokeWidth    float64 `json:"strokeWidth"`
	CornerMark     float64 `json:"cornerMark"`
	CornerWidth    float64 `json:"cornerWidth"`
	GuideOffset    float64 `json:"guideOffset"`
	GuideThickness float64 `json:"guideThickness"`
	GuideDash      float64 `json:"guideDash"`
	GuideGap       float64 `json:"guideGap"`
}

// DefaultFrame 与预览中的外框样式一致。
func DefaultFrame() Frame {
	return Frame{
		StrokeWidth:    2,
		CornerMark:     15,
		CornerWidth:    2,
		GuideOffset:    10,
		GuideThickness: 10,
		GuideDash:      5,
		GuideGap:       5,
	}
}

// Geometry 是解析后的预设。
type Geometry struct {
	Kind    PresetKind `json:"kind"`
	Canvas  Size       `json:"canvas"`
	Box     Rect       `json:"box"`
	Padding float64    `json:"padding"`
	Content Rect       `json:"content"`
	Frame   *Frame     `json:"frame,omitempty"`
}

// BorderedGeometry 返回固定的带框几何：700×500 画布，(20,20) 处 600×400 外框，内边距 48。
func BorderedGeometry() Geometry {
	box := Rect{X: BorderInset, Y: BorderInset, W: BorderedBoxWidth, H: BorderedBoxHeight}
	frame := DefaultFrame()
	return Geometry{
		Kind:    Bordered,
		Canvas:  Size{W: BorderedCanvasWidth, H: BorderedCanvasHeight},
		Box:     box,
		Padding: BorderedPadding,
		Content: box.Inset(BorderedPadding),
		Frame:   &frame,
	}
}

// BorderlessGeometry 返回铺满 width×height 的无框几何。
func BorderlessGeometry(width, height, padding float64) Geometry {
	box := Rect{W: width, H: height}
	return Geometry{
		Kind:    Borderless,
		Canvas:  Size{W: width, H: height},
		Box:     box,
		Padding: padding,
		Content: box.Inset(padding),
	}
}

// NewGeometry 按预设解析几何。带框预设使用固定常量，忽略传入的尺寸。
func NewGeometry(kind PresetKind, width, height, padding float64) Geometry {
	if kind == Borderless {
		return BorderlessGeometry(width, height, padding)
	}
	return BorderedGeometry()
}

// CornerMarks 返回四个角的 L 形角标（每个角两段）。
func (g Geometry) CornerMarks() []Segment {
	if g.Frame == nil {
		return nil
	}
	m := g.Frame.CornerMark
	b := g.Box
	left, right := b.X, b.Right()-m
	top, bottom := b.Y, b.Bottom()
	return []Segment{
		{X1: left, Y1: top, X2: left + m, Y2: top},
		{X1: left, Y1: top, X2: left, Y2: top + m},
		{X1: right, Y1: top, X2: right + m, Y2: top},
		{X1: right + m, Y1: top, X2: right + m, Y2: top + m},
		{X1: left, Y1: bottom, X2: left + m, Y2: bottom},
		{X1: left, Y1: bottom, X2: left, Y2: bottom - m},
		{X1: right, Y1: bottom, X2: right + m, Y2: bottom},
		{X1: right + m, Y1: bottom, X2: right + m, Y2: bottom - m},
	}
}

// GuideStrips 返回四条裁切虚线所在的条带：上、下、左、右。
func (g Geometry) GuideStrips() []Rect {
	if g.Frame == nil {
		return nil
	}
	f := g.Frame
	b := g.Box
	along := b.W - 2*f.CornerMark
	across := b.H - 2*f.CornerMark
	return []Rect{
		{X: b.X + f.CornerMark, Y: b.Y - f.GuideOffset, W: along, H: f.GuideThickness},
		{X: b.X + f.CornerMark, Y: b.Bottom() + f.GuideOffset - f.GuideThickness, W: along, H: f.GuideThickness},
		{X: b.X - f.GuideOffset, Y: b.Y + f.CornerMark, W: f.GuideThickness, H: across},
		{X: b.Right() + f.GuideOffset - f.GuideThickness, Y: b.Y + f.CornerMark, W: f.GuideThickness, H: across},
	}
}

// GuideDashes 把裁切条带切成实线段。横向条带从左端起算，纵向条带从底端起算，
// 与预览里 90deg / 0deg 重复渐变的起点一致。
func (g Geometry) GuideDashes() []Rect {
	if g.Frame == nil {
		return nil
	}
	f := g.Frame
	period := f.GuideDash + f.GuideGap
	var dashes []Rect
	for _, strip := range g.GuideStrips() {
		if strip.W >= strip.H {
			for x := strip.X; x < strip.Right(); x += period {
				w := min(f.GuideDash, strip.Right()-x)
				dashes = append(dashes, Rect{X: x, Y: strip.Y, W: w, H: strip.H})
			}
			continue
		}
		for y := strip.Bottom(); y > strip.Y; y -= period {
			h := min(f.GuideDash, y-strip.Y)
			dashes = append(dashes, Rect{X: strip.X, Y: y - h, W: strip.W, H: h})
		}
	}
	return dashes
}

// StampRect 是质检章所在区域：贴内容区右缘，顶部下移 StampTop。
func (g Geometry) StampRect(t Theme) Rect {
	return Rect{
		X: g.Content.Right() - t.Stamp.Width,
		Y: g.Content.Y + t.Stamp.Top,
		W: t.Stamp.Width,
		H: t.Stamp.Height,
	}
}

// DividerY 是底部信息区上方分隔线的纵坐标。
func (g Geometry) DividerY(t Theme) float64 {
	return g.Content.Bottom() - t.Bottom.Height
}

// BottomRect 是底部公司信息区（分隔线以下）。
func (g Geometry) BottomRect(t Theme) Rect {
	y := g.DividerY(t)
	return Rect{X: g.Content.X, Y: y, W: g.Content.W, H: g.Content.Bottom() - y}
}

// ProductRect 是左上产品信息区：内容区顶部到分隔线，宽度截止到质检章左侧。
func (g Geometry) ProductRect(t Theme) Rect {
	stamp := g.StampRect(t)
	return Rect{X: g.Content.X, Y: g.Content.Y, W: stamp.X - g.Content.X, H: g.DividerY(t) - g.Content.Y}
}
