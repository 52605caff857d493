package dsl

import (
	"fmt"
	"strings"

	"github.com/ByLCY/labelgen/binding"
	"github.com/ByLCY/labelgen/fonts"
	"github.com/ByLCY/labelgen/label"
	"github.com/ByLCY/labelgen/layout"
)

// 输出格式。
const (
	FormatPNG           = "png"
	FormatPNGBorderless = "png-borderless"
	FormatPDF           = "pdf"
)

// Spec 是编译后的标签定义：导出参数、预设、字体覆盖与输出设置。
type Spec struct {
	Name    string
	Version string
	Preset  layout.PresetKind
	Options label.Options
	Fonts   map[fonts.Key]string
	Format  string
	File    string
}

// FileName 返回输出文件名：显式设置优先，否则为 <型号>.<扩展名>。
func (s *Spec) FileName() string {
	if s.File != "" {
		return s.File
	}
	ext := "png"
	if s.Format == FormatPDF {
		ext = "pdf"
	}
	return s.Options.Record.FileStem() + "." + ext
}

// SetFormat 覆盖输出格式，并与预设一起重新校验。
func (s *Spec) SetFormat(format string) error {
	s.Format = format
	return s.resolveFormat()
}

// resolveFormat 让预设与格式保持一致：png-borderless 选择无框预设，
// 无框预设下的 png 即无框位图；文档固定使用带框预设，与无框预设冲突。
func (s *Spec) resolveFormat() error {
	switch s.Format {
	case FormatPNG:
		if s.Preset == layout.Borderless {
			s.Format = FormatPNGBorderless
		}
	case FormatPNGBorderless:
		s.Preset = layout.Borderless
	case FormatPDF:
		if s.Preset == layout.Borderless {
			return fmt.Errorf("无框预设不能输出 pdf：文档始终使用带框预设")
		}
	default:
		return fmt.Errorf("未知输出格式 %q", s.Format)
	}
	return nil
}

// Compile 把语法树转换为 Spec。record 段的字段值以默认记录为底，
// 支持 ${path} 插值，data 为空时占位符保持原样。
func Compile(doc *Document, data any) (*Spec, error) {
	if doc == nil {
		return nil, fmt.Errorf("label 文档为空")
	}
	spec := &Spec{
		Name:    doc.Name,
		Version: doc.Version,
		Preset:  layout.Bordered,
		Options: label.DefaultOptions(label.Default()),
		Fonts:   map[fonts.Key]string{},
		Format:  FormatPNG,
	}
	for _, section := range doc.Sections {
		var err error
		switch section.Kind() {
		case "record":
			err = compileRecord(spec, section.Record, data)
		case "layout":
			err = compileLayout(spec, section.Layout)
		case "fonts":
			err = compileFonts(spec, section.Fonts)
		case "output":
			err = compileOutput(spec, section.Output)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := spec.resolveFormat(); err != nil {
		return nil, err
	}
	if err := spec.Options.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func compileRecord(spec *Spec, block *Block, data any) error {
	for _, st := range block.Statements {
		a := st.Assignment
		if a == nil {
			return fmt.Errorf("%s: record 段只允许 key: value", st.Command.Pos)
		}
		if a.Value.String == nil {
			return fmt.Errorf("%s: 字段 %s 必须是字符串", a.Pos, a.Key)
		}
		if !spec.Options.Record.Set(a.Key, string(*a.Value.String)) {
			return fmt.Errorf("%s: 未知字段 %s（可用字段 %s）", a.Pos, a.Key, strings.Join(label.Fields(), ", "))
		}
	}
	if data == nil {
		return nil
	}
	rec, err := binding.Record(spec.Options.Record, data)
	if err != nil {
		return err
	}
	spec.Options.Record = rec
	return nil
}

func compileLayout(spec *Spec, block *Block) error {
	for _, st := range block.Statements {
		a := st.Assignment
		if a == nil {
			return fmt.Errorf("%s: layout 段只允许 key: value", st.Command.Pos)
		}
		switch a.Key {
		case "preset":
			switch a.Value.Text() {
			case "bordered":
				spec.Preset = layout.Bordered
			case "borderless":
				spec.Preset = layout.Borderless
			default:
				return fmt.Errorf("%s: 未知预设 %q", a.Pos, a.Value.Text())
			}
		case "width", "height", "padding":
			px, err := lengthPX(a)
			if err != nil {
				return err
			}
			switch a.Key {
			case "width":
				spec.Options.Width = px
			case "height":
				spec.Options.Height = px
			default:
				spec.Options.Padding = px
			}
		case "size":
			if a.Value.Array == nil || len(a.Value.Array.Values) != 2 {
				return fmt.Errorf("%s: size 需要 [宽, 高]", a.Pos)
			}
			w, err := lengthPX(&Assignment{Pos: a.Pos, Key: "width", Value: a.Value.Array.Values[0]})
			if err != nil {
				return err
			}
			h, err := lengthPX(&Assignment{Pos: a.Pos, Key: "height", Value: a.Value.Array.Values[1]})
			if err != nil {
				return err
			}
			spec.Options.Width, spec.Options.Height = w, h
		default:
			return fmt.Errorf("%s: 未知布局属性 %s", a.Pos, a.Key)
		}
	}
	return nil
}

// lengthPX 把数值换算成逻辑像素，无单位时按 px。
func lengthPX(a *Assignment) (float64, error) {
	if a.Value.Number == nil {
		return 0, fmt.Errorf("%s: %s 需要数值", a.Pos, a.Key)
	}
	l, ok := layout.ParseLength(*a.Value.Number)
	if !ok {
		return 0, fmt.Errorf("%s: 无法解析长度 %q", a.Pos, *a.Value.Number)
	}
	return l.PX(), nil
}

// compileFonts 处理形如 `sans black "fonts/NotoSansSC-Black.otf"` 的命令。
func compileFonts(spec *Spec, block *Block) error {
	for _, st := range block.Statements {
		c := st.Command
		if c == nil {
			return fmt.Errorf("%s: fonts 段只允许 <family> <weight> \"src\"", st.Assignment.Pos)
		}
		family := layout.Family(c.Name)
		if family != layout.Sans && family != layout.Mono {
			return fmt.Errorf("%s: 未知字体族 %s", c.Pos, c.Name)
		}
		if len(c.Args) != 2 || c.Args[1].Type != "String" {
			return fmt.Errorf("%s: 字体声明需要字重和字体来源", c.Pos)
		}
		weight, ok := parseWeight(c.Args[0].Value)
		if !ok {
			return fmt.Errorf("%s: 未知字重 %s", c.Args[0].Pos, c.Args[0].Value)
		}
		spec.Fonts[fonts.Key{Family: family, Weight: weight}] = c.Args[1].Value
	}
	return nil
}

func parseWeight(s string) (layout.Weight, bool) {
	switch strings.ToLower(s) {
	case "regular", "400":
		return layout.Regular, true
	case "medium", "500":
		return layout.Medium, true
	case "bold", "700":
		return layout.Bold, true
	case "black", "900":
		return layout.Black, true
	default:
		return 0, false
	}
}

func compileOutput(spec *Spec, block *Block) error {
	for _, st := range block.Statements {
		a := st.Assignment
		if a == nil {
			return fmt.Errorf("%s: output 段只允许 key: value", st.Command.Pos)
		}
		switch a.Key {
		case "format":
			switch f := a.Value.Text(); f {
			case FormatPNG, FormatPNGBorderless, FormatPDF:
				spec.Format = f
			default:
				return fmt.Errorf("%s: 未知输出格式 %q", a.Pos, f)
			}
		case "file":
			spec.File = a.Value.Text()
		default:
			return fmt.Errorf("%s: 未知输出属性 %s", a.Pos, a.Key)
		}
	}
	return nil
}
