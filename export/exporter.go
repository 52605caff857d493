// Package export 是标签导出流程：创建表面、等待字体、绘制场景、栅格化、编码，
// 然后按入口交给调用方、文档生成器或交付目标。
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ByLCY/labelgen/delivery"
	"github.com/ByLCY/labelgen/document"
	"github.com/ByLCY/labelgen/label"
	"github.com/ByLCY/labelgen/layout"
	"github.com/ByLCY/labelgen/renderer"
	canvasrenderer "github.com/ByLCY/labelgen/renderer/canvas"
)

// 默认参数。
const (
	DefaultScale       = 3.0
	DefaultSettleDelay = 200 * time.Millisecond
)

// FontWaiter 报告字体是否可用于绘制。
type FontWaiter interface {
	Ready(ctx context.Context) error
}

// FontWaiterFunc 让普通函数满足 FontWaiter。
type FontWaiterFunc func(ctx context.Context) error

func (f FontWaiterFunc) Ready(ctx context.Context) error { return f(ctx) }

// SurfaceFactory 为每次导出创建一个独占的绘图表面，尺寸为逻辑像素。
type SurfaceFactory func(width, height float64) (renderer.RasterSurface, error)

// Image 是编码后的位图产物。
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// Document 是内嵌位图的单页文档。
type Document struct {
	PDF  []byte
	Page document.Page
}

// Exporter 持有导出所需的协作者，可被多个 goroutine 同时使用：
// 每次调用都会新建自己的表面与文档生成器。
type Exporter struct {
	logger    *zap.Logger
	fonts     FontWaiter
	surfaces  SurfaceFactory
	documents document.Factory
	sink      delivery.Sink
	theme     layout.Theme
	settle    time.Duration
	scale     float64
	encoding  Encoding
	hook      StateHook
}

// Option 配置 Exporter。
type Option func(*Exporter)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithFontBook 让字体等待与绘图表面都使用同一个 canvas 字体簿。
func WithFontBook(book *canvasrenderer.FontBook) Option {
	return func(e *Exporter) {
		e.fonts = book
		e.surfaces = canvasSurfaces(book)
	}
}

func WithFontWaiter(w FontWaiter) Option {
	return func(e *Exporter) { e.fonts = w }
}

func WithSurfaceFactory(f SurfaceFactory) Option {
	return func(e *Exporter) { e.surfaces = f }
}

func WithDocuments(f document.Factory) Option {
	return func(e *Exporter) { e.documents = f }
}

func WithSink(s delivery.Sink) Option {
	return func(e *Exporter) { e.sink = s }
}

func WithTheme(t layout.Theme) Option {
	return func(e *Exporter) { e.theme = t }
}

// WithSettleDelay 设置字体就绪后、绘制前的等待时间，0 表示不等待。
func WithSettleDelay(d time.Duration) Option {
	return func(e *Exporter) {
		if d >= 0 {
			e.settle = d
		}
	}
}

// WithScale 设置过采样倍数。
func WithScale(scale float64) Option {
	return func(e *Exporter) {
		if scale > 0 {
			e.scale = scale
		}
	}
}

func WithEncoding(enc Encoding) Option {
	return func(e *Exporter) { e.encoding = enc }
}

func WithStateHook(h StateHook) Option {
	return func(e *Exporter) { e.hook = h }
}

// New 创建 Exporter。默认使用内置 Go 字体的 canvas 后端、canvas PDF 文档与 3 倍过采样。
func New(opts ...Option) *Exporter {
	book := canvasrenderer.NewFontBook(nil)
	e := &Exporter{
		logger:   zap.NewNop(),
		fonts:    book,
		surfaces: canvasSurfaces(book),
		documents: func(meta document.Meta) document.Writer {
			return document.NewCanvasWriter(meta)
		},
		theme:    layout.DefaultTheme(),
		settle:   DefaultSettleDelay,
		scale:    DefaultScale,
		encoding: EncodingPNG,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func canvasSurfaces(book *canvasrenderer.FontBook) SurfaceFactory {
	return func(width, height float64) (renderer.RasterSurface, error) {
		return canvasrenderer.NewSurface(book, width, height)
	}
}

// ExportImage 按带框预设导出位图，尺寸为 700×500 乘以过采样倍数。
func (e *Exporter) ExportImage(ctx context.Context, opts label.Options) (Image, error) {
	return e.exportImage(ctx, opts, layout.Bordered)
}

// ExportBorderlessImage 按无框预设导出位图，内容铺满 width×height。
func (e *Exporter) ExportBorderlessImage(ctx context.Context, opts label.Options) (Image, error) {
	return e.exportImage(ctx, opts, layout.Borderless)
}

func (e *Exporter) exportImage(ctx context.Context, opts label.Options, kind layout.PresetKind) (Image, error) {
	j := e.newJob("image", kind)
	img, err := e.render(ctx, j, opts, kind)
	if err != nil {
		return Image{}, j.fail(err)
	}
	j.done(zap.Int("width", img.Width), zap.Int("height", img.Height))
	return img, nil
}

// ExportDocument 导出带框位图，再生成单页文档：页面为 width×height（宽不小于高时为横向），位图铺满整页。
func (e *Exporter) ExportDocument(ctx context.Context, opts label.Options) (Document, error) {
	j := e.newJob("document", layout.Bordered)
	doc, err := e.exportDocument(ctx, j, opts)
	if err != nil {
		return Document{}, j.fail(err)
	}
	j.done(zap.Int("bytes", len(doc.PDF)))
	return doc, nil
}

func (e *Exporter) exportDocument(ctx context.Context, j *job, opts label.Options) (Document, error) {
	img, err := e.render(ctx, j, opts, layout.Bordered)
	if err != nil {
		return Document{}, err
	}
	if e.documents == nil {
		return Document{}, fmt.Errorf("%w: no document factory", ErrDocument)
	}
	rec := opts.Record
	w := e.documents(document.Meta{
		Title:    rec.ProductName,
		Subject:  rec.ProductModel,
		Author:   rec.CompanyName,
		Creator:  "labelgen",
		Keywords: []string{rec.ProductModel, rec.QCStatus},
	})
	page := document.NewPage(opts.Width, opts.Height)
	if err := w.AddPage(page); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrDocument, err)
	}
	if err := w.PlaceImage(img.PNG, 0, 0, opts.Width, opts.Height); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrDocument, err)
	}
	var buf bytes.Buffer
	if err := w.Finalize(&buf); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrDocument, err)
	}
	return Document{PDF: buf.Bytes(), Page: page}, nil
}

// DownloadImage 导出位图并交给交付目标。filename 为空时使用 <型号>.png。
func (e *Exporter) DownloadImage(ctx context.Context, opts label.Options, filename string) error {
	if filename == "" {
		filename = opts.Record.FileStem() + ".png"
	}
	j := e.newJob("download-image", layout.Bordered)
	img, err := e.render(ctx, j, opts, layout.Bordered)
	if err != nil {
		return j.fail(err)
	}
	if err := e.deliver(ctx, filename, delivery.ContentTypePNG, img.PNG); err != nil {
		return j.fail(err)
	}
	j.done(zap.String("file", filename))
	return nil
}

// ExportPDF 导出文档并交给交付目标。filename 为空时使用 <型号>.pdf。
func (e *Exporter) ExportPDF(ctx context.Context, opts label.Options, filename string) error {
	if filename == "" {
		filename = opts.Record.FileStem() + ".pdf"
	}
	j := e.newJob("download-pdf", layout.Bordered)
	doc, err := e.exportDocument(ctx, j, opts)
	if err != nil {
		return j.fail(err)
	}
	if err := e.deliver(ctx, filename, delivery.ContentTypePDF, doc.PDF); err != nil {
		return j.fail(err)
	}
	j.done(zap.String("file", filename))
	return nil
}

func (e *Exporter) deliver(ctx context.Context, name, contentType string, payload []byte) error {
	if e.sink == nil {
		return fmt.Errorf("%w: no sink configured", ErrDelivery)
	}
	if err := e.sink.Deliver(ctx, name, contentType, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}

// render 是所有入口共用的位图流程。opts 以值传入，绘制只读这份快照。
func (e *Exporter) render(ctx context.Context, j *job, opts label.Options, kind layout.PresetKind) (Image, error) {
	if err := opts.Validate(); err != nil {
		return Image{}, err
	}
	j.enter(StateRendering)

	g := layout.NewGeometry(kind, opts.Width, opts.Height, opts.Padding)
	if e.surfaces == nil {
		return Image{}, fmt.Errorf("%w: no surface factory", ErrSurface)
	}
	surface, err := e.surfaces(g.Canvas.W, g.Canvas.H)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrSurface, err)
	}
	scene := &renderer.Scene{Geometry: g, Theme: e.theme}
	scene.Background(surface)

	if err := e.awaitFonts(ctx); err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrFontsNotReady, err)
	}
	e.warnMissingGlyphs(j, opts.Record)
	scene.Content(surface, opts.Record)

	raster, err := surface.Rasterize(e.scale)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrSurface, err)
	}

	j.enter(StateEncoding)
	data, err := encode(raster, e.encoding)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	b := raster.Bounds()
	return Image{PNG: data, Width: b.Dx(), Height: b.Dy()}, nil
}

// awaitFonts 等待字体就绪，再等待一段固定时间让字体生效。两段等待都受 ctx 约束。
func (e *Exporter) awaitFonts(ctx context.Context) error {
	if e.fonts == nil {
		return errors.New("no font waiter")
	}
	if err := e.fonts.Ready(ctx); err != nil {
		return err
	}
	if e.settle <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(e.settle)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
