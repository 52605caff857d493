package renderer

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"github.com/ByLCY/labelgen/layout"
)

// Op 是 Recorder 记录下的一次绘制调用，字段按类型选用。
type Op struct {
	Kind    string          `json:"kind"`
	Rect    *layout.Rect    `json:"rect,omitempty"`
	Segment *layout.Segment `json:"segment,omitempty"`
	Text    string          `json:"text,omitempty"`
	X       float64         `json:"x,omitempty"`
	Y       float64         `json:"y,omitempty"`
	Color   string          `json:"color"`
	Width   float64         `json:"width,omitempty"`
	Font    *layout.Font    `json:"font,omitempty"`
	Align   string          `json:"align,omitempty"`
}

const (
	OpFillRect   = "fillRect"
	OpStrokeRect = "strokeRect"
	OpLine       = "line"
	OpText       = "text"
)

// Recorder 记录每一次绘制调用。若度量器本身也是 Surface，调用会继续转发给它，
// 因此既可以包在真实画布外面导出调试 JSON，也可以只配一个 FixedMeasurer 做纯布局测试。
type Recorder struct {
	m     layout.Measurer
	inner Surface

	mu  sync.Mutex
	ops []Op
}

var _ Surface = (*Recorder)(nil)

func NewRecorder(m layout.Measurer) *Recorder {
	r := &Recorder{m: m}
	if s, ok := m.(Surface); ok {
		r.inner = s
	}
	return r
}

// Ops 返回目前为止记录的调用副本。
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Texts 按绘制顺序返回全部文本调用。
func (r *Recorder) Texts() []Op {
	var out []Op
	for _, op := range r.Ops() {
		if op.Kind == OpText {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) MeasureText(text string, font layout.Font) float64 {
	return r.m.MeasureText(text, font)
}

func (r *Recorder) FillRect(rect layout.Rect, fill color.Color) {
	r.record(Op{Kind: OpFillRect, Rect: &rect, Color: hexColor(fill)})
	if r.inner != nil {
		r.inner.FillRect(rect, fill)
	}
}

func (r *Recorder) StrokeRect(rect layout.Rect, stroke Stroke) {
	r.record(Op{Kind: OpStrokeRect, Rect: &rect, Color: hexColor(stroke.Color), Width: stroke.Width})
	if r.inner != nil {
		r.inner.StrokeRect(rect, stroke)
	}
}

func (r *Recorder) Line(seg layout.Segment, stroke Stroke) {
	r.record(Op{Kind: OpLine, Segment: &seg, Color: hexColor(stroke.Color), Width: stroke.Width})
	if r.inner != nil {
		r.inner.Line(seg, stroke)
	}
}

func (r *Recorder) FillText(text string, x, y float64, style TextStyle) {
	font := style.Font
	r.record(Op{Kind: OpText, Text: text, X: x, Y: y, Color: hexColor(style.Color), Font: &font, Align: style.Align.String()})
	if r.inner != nil {
		r.inner.FillText(text, x, y, style)
	}
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

// RasterRecorder 在记录绘制调用的同时把栅格化转发给被包裹的表面。
type RasterRecorder struct {
	*Recorder
	raster RasterSurface
}

var _ RasterSurface = (*RasterRecorder)(nil)

func NewRasterRecorder(s RasterSurface) *RasterRecorder {
	return &RasterRecorder{Recorder: NewRecorder(s), raster: s}
}

func (r *RasterRecorder) Rasterize(scale float64) (image.Image, error) {
	return r.raster.Rasterize(scale)
}

// WriteDebugJSON 将记录的绘制调用输出为 JSON，便于调试或可视化。
func (r *Recorder) WriteDebugJSON(path string) error {
	data, err := json.MarshalIndent(r.Ops(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func hexColor(c color.Color) string {
	if c == nil {
		return ""
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
