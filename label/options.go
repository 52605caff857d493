package label

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOptions 表示导出参数本身不合法（尺寸或内边距）。
var ErrInvalidOptions = errors.New("label: invalid layout options")

// 默认导出参数，与编辑器调用处保持一致。
const (
	DefaultWidth   = 600.0
	DefaultHeight  = 400.0
	DefaultPadding = 48.0
)

// Options 是一次导出所需的全部输入：输出宽高、统一内边距以及标签内容快照。
// Record 以值的形式嵌入，调用方之后对自身副本的修改不会影响进行中的导出。
type Options struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
	Record  Record  `json:"record"`
}

// DefaultOptions 使用默认尺寸包装给定的标签内容。
func DefaultOptions(rec Record) Options {
	return Options{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Padding: DefaultPadding,
		Record:  rec,
	}
}

// Validate 校验尺寸与内边距，内边距必须给内容区留出正的宽高。
func (o Options) Validate() error {
	if !finitePositive(o.Width) || !finitePositive(o.Height) {
		return fmt.Errorf("%w: size %gx%g", ErrInvalidOptions, o.Width, o.Height)
	}
	if o.Padding < 0 || math.IsNaN(o.Padding) {
		return fmt.Errorf("%w: padding %g", ErrInvalidOptions, o.Padding)
	}
	if 2*o.Padding >= o.Width || 2*o.Padding >= o.Height {
		return fmt.Errorf("%w: padding %g leaves no content area in %gx%g", ErrInvalidOptions, o.Padding, o.Width, o.Height)
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
