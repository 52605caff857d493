package layout

import (
	"math"
	"testing"
)

// TestPxPtRoundTrip 验证 px↔pt↔mm 换算的往返精度。
func TestPxPtRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 10, 30, 96, 400, 600, 1000}
	for _, px := range samples {
		if back := px * PxToPt * PtToPx; math.Abs(back-px) > 1e-9 {
			t.Fatalf("px→pt→px 往返误差过大: in=%g back=%g", px, back)
		}
		if back := px * PxToMm * MmToPx; math.Abs(back-px) > 1e-9 {
			t.Fatalf("px→mm→px 往返误差过大: in=%g back=%g", px, back)
		}
	}
	if got := 72 * PtToMm; math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("72pt 应为 25.4mm，实际 %g", got)
	}
}

// TestLengthConversions 覆盖常见单位到 px/pt/mm 的转换。
func TestLengthConversions(t *testing.T) {
	if got := (Length{Value: 1, Unit: UnitIN}).PX(); got != 96 {
		t.Fatalf("1in 转 px 期望 96，实际 %g", got)
	}
	if got := (Length{Value: 600, Unit: UnitPX}).PT(); math.Abs(got-450) > 1e-9 {
		t.Fatalf("600px 转 pt 期望 450，实际 %g", got)
	}
	if got := (Length{Value: 400}).PX(); got != 400 {
		t.Fatalf("无单位数值应按 px 处理，实际 %g", got)
	}
	if got := (Length{Value: 25.4, Unit: UnitMM}).PX(); math.Abs(got-96) > 1e-9 {
		t.Fatalf("25.4mm 转 px 期望 96，实际 %g", got)
	}
}

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want Length
		ok   bool
	}{
		{"600", Length{Value: 600, Unit: UnitNone}, true},
		{"600px", Length{Value: 600, Unit: UnitPX}, true},
		{" 12PT ", Length{Value: 12, Unit: UnitPT}, true},
		{"10.5mm", Length{Value: 10.5, Unit: UnitMM}, true},
		{"4in", Length{Value: 4, Unit: UnitIN}, true},
		{"abcpx", Length{}, false},
		{"", Length{}, false},
	}
	for _, c := range cases {
		got, ok := ParseLength(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseLength(%q) = %+v,%v want %+v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}
