package export

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/labelgen/document"
	"github.com/ByLCY/labelgen/label"
	canvasrenderer "github.com/ByLCY/labelgen/renderer/canvas"
)

// 以下测试走真实的 canvas 后端与内置 Go 字体。

func canvasExporter(opts ...Option) *Exporter {
	base := []Option{WithFontBook(canvasrenderer.NewFontBook(nil)), WithSettleDelay(0)}
	return New(append(base, opts...)...)
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestCanvasExportIsDeterministic(t *testing.T) {
	e := canvasExporter()
	ctx := testContext(t)
	opts := label.DefaultOptions(label.Default())

	a, err := e.ExportImage(ctx, opts)
	require.NoError(t, err)
	b, err := e.ExportImage(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, a.PNG, b.PNG)

	cfg, err := png.DecodeConfig(bytes.NewReader(a.PNG))
	require.NoError(t, err)
	assert.Equal(t, 2100, cfg.Width)
	assert.Equal(t, 1500, cfg.Height)
}

func TestCanvasExportEmptyRecord(t *testing.T) {
	img, err := canvasExporter().ExportImage(testContext(t), label.DefaultOptions(label.Record{}))
	require.NoError(t, err)
	assert.Equal(t, 2100, img.Width)
}

var mediaBoxPattern = regexp.MustCompile(`/MediaBox\s*\[\s*([-\d.]+)\s+([-\d.]+)\s+([-\d.]+)\s+([-\d.]+)\s*\]`)

// pageSizePt 返回文档里出现的全部 MediaBox 的宽高（pt）。
func pageSizePt(t *testing.T, pdf []byte) [][2]float64 {
	t.Helper()
	var out [][2]float64
	for _, m := range mediaBoxPattern.FindAllSubmatch(pdf, -1) {
		var v [4]float64
		for i := range v {
			f, err := strconv.ParseFloat(string(m[i+1]), 64)
			require.NoError(t, err)
			v[i] = f
		}
		out = append(out, [2]float64{v[2] - v[0], v[3] - v[1]})
	}
	require.NotEmpty(t, out, "no MediaBox in document")
	return out
}

func TestCanvasExportDocument(t *testing.T) {
	tests := []struct {
		width, height float64
		orientation   document.Orientation
	}{
		{600, 400, document.Landscape},
		{400, 600, document.Portrait},
	}
	for _, backend := range []string{document.BackendCanvas, document.BackendFPDF} {
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/%gx%g", backend, tt.width, tt.height), func(t *testing.T) {
				factory, err := document.NewFactory(backend)
				require.NoError(t, err)
				opts := label.DefaultOptions(label.Default())
				opts.Width, opts.Height = tt.width, tt.height

				doc, err := canvasExporter(WithDocuments(factory)).ExportDocument(testContext(t), opts)
				require.NoError(t, err)
				assert.True(t, bytes.HasPrefix(doc.PDF, []byte("%PDF")))
				assert.Equal(t, document.Page{Width: tt.width, Height: tt.height, Orientation: tt.orientation}, doc.Page)

				// 1px = 0.75pt
				for _, size := range pageSizePt(t, doc.PDF) {
					assert.InDelta(t, tt.width*0.75, size[0], 0.01)
					assert.InDelta(t, tt.height*0.75, size[1], 0.01)
				}
			})
		}
	}
}

func TestConcurrentExportsAreIsolated(t *testing.T) {
	e := canvasExporter()
	ctx := testContext(t)

	records := make([]label.Options, 4)
	want := make([][]byte, len(records))
	for i := range records {
		rec := label.Default()
		rec.ProductModel = fmt.Sprintf("M-%d", i)
		rec.QCStatus = fmt.Sprintf("OK%d", i)
		records[i] = label.Options{Width: 240, Height: 160, Padding: 12, Record: rec}
		img, err := e.ExportBorderlessImage(ctx, records[i])
		require.NoError(t, err)
		want[i] = img.PNG
	}

	got := make([][]byte, len(records))
	errs := make([]error, len(records))
	var wg sync.WaitGroup
	for i := range records {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			img, err := e.ExportBorderlessImage(ctx, records[i])
			got[i], errs[i] = img.PNG, err
		}(i)
	}
	wg.Wait()

	for i := range records {
		require.NoError(t, errs[i])
		assert.Equal(t, want[i], got[i], "record %d", i)
	}
	assert.NotEqual(t, want[0], want[1])
}
