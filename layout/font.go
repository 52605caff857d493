package layout

import "fmt"

// Family 是逻辑字体族，具体字体文件由渲染后端决定。
type Family string

const (
	Sans Family = "sans"
	Mono Family = "mono"
)

// Weight 使用 CSS 数值字重。
type Weight int

const (
	Regular Weight = 400
	Medium  Weight = 500
	Bold    Weight = 700
	Black   Weight = 900
)

// Weights 按从细到粗列出支持的字重。
func Weights() []Weight { return []Weight{Regular, Medium, Bold, Black} }

// Font 是一次绘制或测量所用的字体描述。Size 为逻辑像素。
type Font struct {
	Family Family  `json:"family"`
	Weight Weight  `json:"weight"`
	Size   float64 `json:"size"`
}

func (f Font) String() string {
	return fmt.Sprintf("%s/%d/%gpx", f.Family, f.Weight, f.Size)
}
