package renderer

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/labelgen/label"
	"github.com/ByLCY/labelgen/layout"
)

// 每个字符宽度 = 字号，便于手算坐标。
var unitMeasurer = layout.FixedMeasurer{Advance: 1}

func paintRecorded(t *testing.T, g layout.Geometry, rec label.Record) *Recorder {
	t.Helper()
	r := NewRecorder(unitMeasurer)
	NewScene(g).Paint(r, rec)
	require.NotEmpty(t, r.Ops())
	return r
}

func findText(ops []Op, text string) (Op, bool) {
	for _, op := range ops {
		if op.Kind == OpText && op.Text == text {
			return op, true
		}
	}
	return Op{}, false
}

func opsOfKind(ops []Op, kind string) []Op {
	var out []Op
	for _, op := range ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func TestScenePaintBorderedDefault(t *testing.T) {
	r := paintRecorded(t, layout.BorderedGeometry(), label.Default())
	ops := r.Ops()

	require.Equal(t, OpFillRect, ops[0].Kind)
	assert.Equal(t, layout.Rect{W: 700, H: 500}, *ops[0].Rect)
	assert.Equal(t, "#f8f9fa", ops[0].Color)
	assert.Equal(t, layout.Rect{X: 20, Y: 20, W: 600, H: 400}, *ops[1].Rect)
	assert.Equal(t, "#ffffff", ops[1].Color)

	require.Equal(t, OpStrokeRect, ops[2].Kind)
	assert.Equal(t, layout.Rect{X: 20, Y: 20, W: 600, H: 400}, *ops[2].Rect)
	assert.Equal(t, "#6b7280", ops[2].Color)
	assert.Equal(t, 2.0, ops[2].Width)

	// 产品名称标签逐字绘制，首字在内容区左上角下方 4。
	first := r.Texts()[0]
	assert.Equal(t, "产", first.Text)
	assert.Equal(t, 68.0, first.X)
	assert.Equal(t, 72.0, first.Y)

	name, ok := findText(ops, "AR内容工作站")
	require.True(t, ok)
	assert.Equal(t, 68.0, name.X)
	assert.Equal(t, 88.0, name.Y)
	assert.Equal(t, "#0f172a", name.Color)
	assert.Equal(t, layout.Black, name.Font.Weight)

	model, ok := findText(ops, "EZAE1")
	require.True(t, ok)
	assert.Equal(t, 68.0, model.X)
	assert.Equal(t, 174.0, model.Y)
	assert.Equal(t, layout.Mono, model.Font.Family)

	year, ok := findText(ops, "2025")
	require.True(t, ok)
	assert.Equal(t, 268.0, year.X)
	assert.Equal(t, 174.0, year.Y)

	company, ok := findText(ops, "杭州易现先进科技有限公司")
	require.True(t, ok)
	assert.Equal(t, 268.0, company.Y)

	website, ok := findText(ops, "https://www.ezxr.com/")
	require.True(t, ok)
	assert.Equal(t, 286.0, website.Y)

	address, ok := findText(ops, "浙江省杭州市萧山区天人大厦3101室")
	require.True(t, ok)
	assert.Equal(t, 103.0, address.X)
	assert.Equal(t, 310.0, address.Y)

	email, ok := findText(ops, "pm@service.ezxr.com")
	require.True(t, ok)
	assert.Equal(t, 103.0, email.X)
	assert.Equal(t, 326.0, email.Y)
	assert.Equal(t, layout.Regular, email.Font.Weight)
}

func TestScenePaintFrame(t *testing.T) {
	r := paintRecorded(t, layout.BorderedGeometry(), label.Default())
	ops := r.Ops()

	lines := opsOfKind(ops, OpLine)
	// 8 段角标 + 质检章分隔线 + 底部分隔线
	require.Len(t, lines, 10)
	for _, l := range lines[:8] {
		assert.Equal(t, "#374151", l.Color)
		assert.Equal(t, 2.0, l.Width)
	}

	divider := lines[9]
	assert.Equal(t, layout.Segment{X1: 68, Y1: 252, X2: 572, Y2: 252}, *divider.Segment)
	assert.Equal(t, "#e2e8f0", divider.Color)

	dashes := 0
	for _, op := range opsOfKind(ops, OpFillRect)[2:] {
		assert.Equal(t, "#374151", op.Color)
		dashes++
	}
	assert.Equal(t, len(layout.BorderedGeometry().GuideDashes()), dashes)
}

func TestScenePaintStamp(t *testing.T) {
	r := paintRecorded(t, layout.BorderedGeometry(), label.Default())
	ops := r.Ops()

	rects := opsOfKind(ops, OpStrokeRect)
	require.Len(t, rects, 3)
	assert.Equal(t, layout.Rect{X: 452, Y: 76, W: 120, H: 100}, *rects[1].Rect)
	assert.Equal(t, 4.0, rects[1].Width)
	assert.Equal(t, layout.Rect{X: 456, Y: 80, W: 112, H: 92}, *rects[2].Rect)
	assert.Equal(t, "#94a3b8", rects[2].Color)

	rule := opsOfKind(ops, OpLine)[8]
	assert.Equal(t, layout.Segment{X1: 461, Y1: 131, X2: 563, Y2: 131}, *rule.Segment)

	status, ok := findText(ops, "已检验")
	require.True(t, ok)
	assert.Equal(t, 512.0, status.X)
	assert.Equal(t, 101.0, status.Y)
	assert.Equal(t, "center", status.Align)

	date, ok := findText(ops, "2025.05")
	require.True(t, ok)
	assert.Equal(t, 512.0, date.X)
	assert.Equal(t, 156.0, date.Y)

	// INSPECTED：9 个字符×8 + 1.5×8 = 84，起点 512-42。
	var caption []Op
	for _, op := range r.Texts() {
		if op.Y == 144 {
			caption = append(caption, op)
		}
	}
	require.Len(t, caption, 9)
	assert.Equal(t, "I", caption[0].Text)
	assert.InDelta(t, 470.0, caption[0].X, 1e-9)
	assert.InDelta(t, 470.0+8*9.5, caption[8].X, 1e-9)
	for _, op := range caption {
		assert.Equal(t, "left", op.Align)
	}
}

func TestSceneWrappedNamePushesRowsDown(t *testing.T) {
	rec := label.Default()
	// 11 个字符 × 30 = 330 > 302.4，第 11 个字符换到第二行。
	rec.ProductName = strings.Repeat("名", 11)
	r := paintRecorded(t, layout.BorderedGeometry(), rec)
	ops := r.Ops()

	first, ok := findText(ops, strings.Repeat("名", 10))
	require.True(t, ok)
	assert.Equal(t, 88.0, first.Y)
	var second []Op
	for _, op := range ops {
		if op.Kind == OpText && op.Text == "名" && op.Y == 126 {
			second = append(second, op)
		}
	}
	assert.Len(t, second, 1)

	model, ok := findText(ops, "EZAE1")
	require.True(t, ok)
	assert.Equal(t, 212.0, model.Y)
}

func TestSceneUppercasesCompany(t *testing.T) {
	rec := label.Default()
	rec.CompanyName = "acme straße"
	r := paintRecorded(t, layout.BorderedGeometry(), rec)

	_, ok := findText(r.Ops(), "ACME STRASSE")
	assert.True(t, ok)
}

func TestSceneEmptyRecordKeepsFrameAndStamp(t *testing.T) {
	r := paintRecorded(t, layout.BorderedGeometry(), label.Record{})
	ops := r.Ops()

	assert.Len(t, opsOfKind(ops, OpStrokeRect), 3)
	assert.Len(t, opsOfKind(ops, OpLine), 10)
	for _, op := range r.Texts() {
		assert.NotEmpty(t, op.Text)
		assert.Len(t, []rune(op.Text), 1, "只剩逐字绘制的固定字段名")
	}
}

func TestSceneBorderless(t *testing.T) {
	g := layout.BorderlessGeometry(600, 400, 48)
	r := paintRecorded(t, g, label.Default())
	ops := r.Ops()

	assert.Equal(t, layout.Rect{W: 600, H: 400}, *ops[0].Rect)
	assert.Equal(t, layout.Rect{W: 600, H: 400}, *ops[1].Rect)
	assert.Len(t, opsOfKind(ops, OpFillRect), 2, "无框预设没有裁切线")
	assert.Len(t, opsOfKind(ops, OpStrokeRect), 2, "只有质检章两层框")

	name, ok := findText(ops, "AR内容工作站")
	require.True(t, ok)
	assert.Equal(t, 48.0, name.X)
	assert.Equal(t, 68.0, name.Y)
}

func TestTranslateNests(t *testing.T) {
	r := NewRecorder(unitMeasurer)
	s := Translate(Translate(r, 10, 20), 1, 2)
	s.FillRect(layout.Rect{X: 1, Y: 1, W: 5, H: 5}, nil)
	s.FillText("a", 0, 0, TextStyle{})

	ops := r.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, layout.Rect{X: 12, Y: 23, W: 5, H: 5}, *ops[0].Rect)
	assert.Equal(t, 11.0, ops[1].X)
	assert.Equal(t, 22.0, ops[1].Y)
}

func TestRecorderWriteDebugJSON(t *testing.T) {
	r := paintRecorded(t, layout.BorderedGeometry(), label.Default())
	path := filepath.Join(t.TempDir(), "ops.json")
	require.NoError(t, r.WriteDebugJSON(path))
	assert.FileExists(t, path)
}

// stubRaster 把所有调用转到内部 Recorder，Rasterize 返回固定尺寸的空图。
type stubRaster struct {
	*Recorder
	scales []float64
}

func (s *stubRaster) Rasterize(scale float64) (image.Image, error) {
	s.scales = append(s.scales, scale)
	return image.NewRGBA(image.Rect(0, 0, 3, 2)), nil
}

func TestRasterRecorderForwards(t *testing.T) {
	inner := &stubRaster{Recorder: NewRecorder(unitMeasurer)}
	r := NewRasterRecorder(inner)
	r.FillRect(layout.Rect{W: 2, H: 2}, color.White)

	img, err := r.Rasterize(3)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, []float64{3}, inner.scales)
	assert.Len(t, r.Ops(), 1)
	assert.Len(t, inner.Ops(), 1)
	assert.Equal(t, "#ffffff", r.Ops()[0].Color)
}
