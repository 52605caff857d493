package document

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/labelgen/layout"
)

// CanvasWriter 用 tdewolff/canvas 的 PDF 渲染器生成文档。页面尺寸按 96 dpi 从像素换算为毫米。
type CanvasWriter struct {
	meta Meta
	placement
}

var _ Writer = (*CanvasWriter)(nil)

func NewCanvasWriter(meta Meta) *CanvasWriter { return &CanvasWriter{meta: meta} }

func (w *CanvasWriter) AddPage(page Page) error { return w.addPage(page) }

func (w *CanvasWriter) PlaceImage(data []byte, x, y, width, height float64) error {
	return w.placeImage(data, x, y, width, height)
}

func (w *CanvasWriter) Finalize(out io.Writer) error {
	if err := w.ready(); err != nil {
		return err
	}
	img, err := png.Decode(bytes.NewReader(w.png))
	if err != nil {
		return fmt.Errorf("解码页面图像失败: %w", err)
	}
	img = fitAspect(img, w.w/w.h)

	c := canvas.New(w.page.Width*layout.PxToMm, w.page.Height*layout.PxToMm)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	dpmm := float64(img.Bounds().Dx()) / (w.w * layout.PxToMm)
	ctx.DrawImage(w.x*layout.PxToMm, w.y*layout.PxToMm, img, canvas.DPMM(dpmm))

	var buf bytes.Buffer
	writer := pdf.New(&buf, c.W, c.H, nil)
	writer.SetInfo(w.meta.Title, w.meta.Subject, w.meta.keywords(), w.meta.Author, w.meta.Creator)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	_, err = out.Write(buf.Bytes())
	return err
}

// fitAspect 在图像宽高比与目标框不一致时重采样高度，让图像铺满目标框。
// canvas 的 DrawImage 只接受单一分辨率，无法分别拉伸两个方向。
func fitAspect(img image.Image, ratio float64) image.Image {
	b := img.Bounds()
	wantH := int(math.Round(float64(b.Dx()) / ratio))
	if wantH <= 0 || wantH == b.Dy() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), wantH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
