// Package document 把导出的位图装进单页可打印文档。
package document

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

var (
	// ErrPageCount 表示页面数量不是恰好一页。
	ErrPageCount = errors.New("document: exactly one page is supported")
	// ErrNoImage 表示定稿时还没有放置图像。
	ErrNoImage = errors.New("document: no image placed")
)

// Orientation 是页面方向。
type Orientation int

const (
	Landscape Orientation = iota
	Portrait
)

func (o Orientation) String() string {
	if o == Portrait {
		return "portrait"
	}
	return "landscape"
}

// Page 以逻辑像素描述页面尺寸，与导出参数的宽高同一单位。
// 页面始终按 Width×Height 输出，方向必须与宽高一致：宽不小于高为横向，否则为纵向。
type Page struct {
	Width       float64
	Height      float64
	Orientation Orientation
}

// NewPage 返回 width×height 的页面，方向由宽高推导。
func NewPage(width, height float64) Page {
	o := Landscape
	if width < height {
		o = Portrait
	}
	return Page{Width: width, Height: height, Orientation: o}
}

func (p Page) validate() error {
	if !(p.Width > 0) || !(p.Height > 0) || math.IsInf(p.Width, 0) || math.IsInf(p.Height, 0) {
		return fmt.Errorf("document: invalid page size %gx%g", p.Width, p.Height)
	}
	if p.Orientation != NewPage(p.Width, p.Height).Orientation {
		return fmt.Errorf("document: %gx%g page cannot be %s", p.Width, p.Height, p.Orientation)
	}
	return nil
}

// Meta 写入文档信息字典。
type Meta struct {
	Title    string
	Subject  string
	Author   string
	Creator  string
	Keywords []string
}

func (m Meta) keywords() string { return strings.Join(m.Keywords, ", ") }

// Writer 是单页文档生成器：一次 AddPage，一次 PlaceImage，最后 Finalize。
type Writer interface {
	AddPage(page Page) error
	// PlaceImage 把 PNG 放到页面上，坐标与尺寸为逻辑像素。
	PlaceImage(png []byte, x, y, w, h float64) error
	Finalize(w io.Writer) error
}

// Factory 为每次导出创建新的 Writer。
type Factory func(meta Meta) Writer

// 可选的文档后端。
const (
	BackendCanvas = "canvas"
	BackendFPDF   = "fpdf"
)

// NewFactory 按后端名返回工厂，空名称使用 canvas。
func NewFactory(backend string) (Factory, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendCanvas:
		return func(meta Meta) Writer { return NewCanvasWriter(meta) }, nil
	case BackendFPDF:
		return func(meta Meta) Writer { return NewFPDFWriter(meta) }, nil
	default:
		return nil, fmt.Errorf("document: unknown backend %q", backend)
	}
}

// placement 是两个后端共用的单页状态。
type placement struct {
	page   *Page
	png    []byte
	x, y   float64
	w, h   float64
	placed bool
}

func (p *placement) addPage(page Page) error {
	if p.page != nil {
		return ErrPageCount
	}
	if err := page.validate(); err != nil {
		return err
	}
	p.page = &page
	return nil
}

func (p *placement) placeImage(png []byte, x, y, w, h float64) error {
	if p.page == nil {
		return ErrPageCount
	}
	if p.placed {
		return errors.New("document: image already placed")
	}
	if len(png) == 0 {
		return errors.New("document: empty image")
	}
	if !(w > 0) || !(h > 0) {
		return fmt.Errorf("document: invalid image box %gx%g", w, h)
	}
	p.png = append([]byte(nil), png...)
	p.x, p.y, p.w, p.h = x, y, w, h
	p.placed = true
	return nil
}

func (p *placement) ready() error {
	if p.page == nil {
		return ErrPageCount
	}
	if !p.placed {
		return ErrNoImage
	}
	return nil
}
