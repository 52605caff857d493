package layout

import "image/color"

// Theme 汇集场景中除几何预设外的全部数值：字号、间距、行高、颜色与固定文案。
// 位图导出与预览都应从这里取值，避免两套魔法数字各自漂移。
type Theme struct {
	Colors  Palette
	Labels  Captions
	Product ProductTheme
	Stamp   StampTheme
	Bottom  BottomTheme
}

// Palette 使用 Tailwind slate 色阶，与预览一致。
type Palette struct {
	Canvas   color.RGBA // 画布底色
	Paper    color.RGBA // 标签纸面
	Border   color.RGBA
	Marks    color.RGBA // 角标与裁切线
	Ink      color.RGBA // slate-900
	Muted    color.RGBA // slate-500
	Faint    color.RGBA // slate-400
	Body     color.RGBA // slate-600
	Divider  color.RGBA // slate-200
	StampRim color.RGBA // 章内框
}

// Captions 是标签上固定的双语字段名。
type Captions struct {
	ProductName string
	Model       string
	Date        string
	Inspected   string
	Address     string
	Mail        string
}

// ProductTheme 描述左上产品信息区。
type ProductTheme struct {
	TopInset     float64 // 对应预览 pt-1
	LabelFont    Font
	LabelSpacing float64
	LabelGap     float64 // 字段名到字段值
	NameFont     Font
	NameLeading  float64
	NameRatio    float64 // 折行宽度占内容宽度的比例
	RowAdvance   float64 // 产品名顶部到型号行
	ColumnGap    float64 // 型号列到日期列
	ValueFont    Font
}

// StampTheme 描述质检章，所有偏移都相对章的左上角。
type StampTheme struct {
	Width          float64
	Height         float64
	Top            float64 // 相对内容区顶部，对应 mt-2
	OuterWidth     float64
	InnerInset     float64
	InnerWidth     float64
	StatusFont     Font
	StatusY        float64
	RuleY          float64
	RuleInset      float64 // 分隔线两端各缩进的距离（章宽的 7.5%）
	RuleWidth      float64
	CaptionFont    Font
	CaptionSpacing float64
	CaptionY       float64
	DateFont       Font
	DateY          float64
}

// BottomTheme 描述分隔线以下的公司信息区。
type BottomTheme struct {
	Height         float64 // 分隔线到内容区底部
	DividerWidth   float64
	TopGap         float64
	CompanyFont    Font
	CompanyRatio   float64
	CompanyLeading float64
	CompanyAdvance float64
	WebsiteFont    Font
	WebsiteAdvance float64
	SectionGap     float64
	GridLabelFont  Font
	GridLabelWidth float64
	GridSpacing    float64
	AddressFont    Font
	AddressLeading float64
	RowAdvance     float64
	RowGap         float64
	EmailFont      Font
}

// DefaultTheme 返回与预览逐项对应的主题。
func DefaultTheme() Theme {
	label := Font{Family: Sans, Weight: Bold, Size: 10}
	return Theme{
		Colors: Palette{
			Canvas:   rgb(0xf8, 0xf9, 0xfa),
			Paper:    rgb(0xff, 0xff, 0xff),
			Border:   rgb(0x6b, 0x72, 0x80),
			Marks:    rgb(0x37, 0x41, 0x51),
			Ink:      rgb(0x0f, 0x17, 0x2a),
			Muted:    rgb(0x64, 0x74, 0x8b),
			Faint:    rgb(0x94, 0xa3, 0xb8),
			Body:     rgb(0x47, 0x55, 0x69),
			Divider:  rgb(0xe2, 0xe8, 0xf0),
			StampRim: rgb(0x94, 0xa3, 0xb8),
		},
		Labels: Captions{
			ProductName: "产品名称 / PRODUCT NAME:",
			Model:       "型号 / MODEL:",
			Date:        "日期 / DATE:",
			Inspected:   "INSPECTED",
			Address:     "ADD:",
			Mail:        "MAIL:",
		},
		Product: ProductTheme{
			TopInset:     4,
			LabelFont:    label,
			LabelSpacing: 2,
			LabelGap:     16,
			NameFont:     Font{Family: Sans, Weight: Black, Size: 30},
			NameLeading:  38,
			NameRatio:    0.6,
			RowAdvance:   70,
			ColumnGap:    200,
			ValueFont:    Font{Family: Mono, Weight: Bold, Size: 24},
		},
		Stamp: StampTheme{
			Width:          120,
			Height:         100,
			Top:            8,
			OuterWidth:     4,
			InnerInset:     4,
			InnerWidth:     1,
			StatusFont:     Font{Family: Sans, Weight: Black, Size: 30},
			StatusY:        25,
			RuleY:          55,
			RuleInset:      9,
			RuleWidth:      2,
			CaptionFont:    Font{Family: Sans, Weight: Bold, Size: 8},
			CaptionSpacing: 1.5,
			CaptionY:       68,
			DateFont:       Font{Family: Mono, Weight: Bold, Size: 9},
			DateY:          80,
		},
		Bottom: BottomTheme{
			Height:         120,
			DividerWidth:   1,
			TopGap:         16,
			CompanyFont:    Font{Family: Sans, Weight: Black, Size: 16},
			CompanyRatio:   0.7,
			CompanyLeading: 16,
			CompanyAdvance: 18,
			WebsiteFont:    Font{Family: Mono, Weight: Bold, Size: 10},
			WebsiteAdvance: 12,
			SectionGap:     12,
			GridLabelFont:  label,
			GridLabelWidth: 35,
			GridSpacing:    1,
			AddressFont:    Font{Family: Sans, Weight: Medium, Size: 10},
			AddressLeading: 10,
			RowAdvance:     12,
			RowGap:         4,
			EmailFont:      Font{Family: Mono, Weight: Regular, Size: 10},
		},
	}
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xff} }
