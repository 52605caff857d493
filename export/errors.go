package export

import "errors"

// 导出失败的分类。返回的错误用 %w 同时包裹分类与底层原因，用 errors.Is 判断。
var (
	// ErrSurface 表示无法获得绘图表面，或表面在栅格化时失败。此时不会产生任何产物。
	ErrSurface = errors.New("export: render surface unavailable")
	// ErrFontsNotReady 表示等待字体就绪失败，或等待期间 ctx 结束。绘制尚未开始。
	ErrFontsNotReady = errors.New("export: fonts not ready")
	// ErrEncoding 表示位图编码失败。
	ErrEncoding = errors.New("export: image encoding failed")
	// ErrDocument 表示位图已导出但文档生成失败，位图随之丢弃。
	ErrDocument = errors.New("export: document generation failed")
	// ErrDelivery 表示产物已生成但交付失败。
	ErrDelivery = errors.New("export: delivery failed")
)
