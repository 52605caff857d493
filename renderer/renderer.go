package renderer

import (
	"image"
	"image/color"

	"github.com/ByLCY/labelgen/layout"
)

// Surface 是没有流式布局的底层绘图目标。每个原语都携带完整样式，
// 不依赖上一次调用留下的字体、颜色或对齐状态。坐标为逻辑像素，原点左上角。
type Surface interface {
	layout.Measurer
	FillRect(r layout.Rect, fill color.Color)
	StrokeRect(r layout.Rect, stroke Stroke)
	Line(seg layout.Segment, stroke Stroke)
	// FillText 以 top 语义绘制单行文本：y 为文字顶部，由表面自行换算基线。
	FillText(text string, x, y float64, style TextStyle)
}

// RasterSurface 是可以栅格化的 Surface，每次导出独占一个。
type RasterSurface interface {
	Surface
	// Rasterize 按 scale 倍过采样输出位图，像素尺寸为画布尺寸×scale。
	Rasterize(scale float64) (image.Image, error)
}

// Align 是文本相对锚点 x 的水平对齐方式。
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Stroke 是描边样式。
type Stroke struct {
	Color color.Color
	Width float64
}

// TextStyle 是单次文本绘制的样式。
type TextStyle struct {
	Font  layout.Font
	Color color.Color
	Align Align
}
