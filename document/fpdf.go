package document

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/labelgen/layout"
)

// FPDFWriter 用 go-pdf/fpdf 生成文档，单位为 pt（1px = 0.75pt），
// 图像按给定框的宽高分别缩放。
type FPDFWriter struct {
	meta Meta
	placement
}

var _ Writer = (*FPDFWriter)(nil)

func NewFPDFWriter(meta Meta) *FPDFWriter { return &FPDFWriter{meta: meta} }

func (w *FPDFWriter) AddPage(page Page) error { return w.addPage(page) }

func (w *FPDFWriter) PlaceImage(data []byte, x, y, width, height float64) error {
	return w.placeImage(data, x, y, width, height)
}

func (w *FPDFWriter) Finalize(out io.Writer) error {
	if err := w.ready(); err != nil {
		return err
	}
	// fpdf 的横向页面会交换 Size 的宽高，这里预先交换，保证页面就是 Width×Height
	width, height := w.page.Width*layout.PxToPt, w.page.Height*layout.PxToPt
	orientation, size := "P", fpdf.SizeType{Wd: width, Ht: height}
	if w.page.Orientation == Landscape {
		orientation, size = "L", fpdf.SizeType{Wd: height, Ht: width}
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           size,
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(w.meta.Title, true)
	doc.SetSubject(w.meta.Subject, true)
	doc.SetAuthor(w.meta.Author, true)
	doc.SetCreator(w.meta.Creator, true)
	doc.SetKeywords(w.meta.keywords(), true)
	doc.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("label", opts, bytes.NewReader(w.png))
	doc.ImageOptions("label",
		w.x*layout.PxToPt, w.y*layout.PxToPt, w.w*layout.PxToPt, w.h*layout.PxToPt,
		false, opts, 0, "")
	if err := doc.Output(out); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}
