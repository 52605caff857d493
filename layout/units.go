package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe lengths. Logical layout units are CSS pixels;
// documents want points or millimetres, so conversions happen at the edges.

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers, treated as px
	UnitPX               // CSS pixels (logical layout units)
	UnitPT               // points
	UnitMM               // millimeters
	UnitIN               // inches
)

// Conversion constants. One CSS pixel is 1/96 in, one point is 1/72 in.
const (
	PxToPt = 72.0 / 96.0
	PtToPx = 96.0 / 72.0
	PxToMm = 25.4 / 96.0
	MmToPx = 96.0 / 25.4
	PtToMm = 25.4 / 72.0
	MmToPt = 72.0 / 25.4
)

// String returns a short suffix for a Unit value.
func (u Unit) String() string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	case UnitIN:
		return "in"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// PX converts the length to logical pixels.
func (l Length) PX() float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PtToPx
	case UnitMM:
		return l.Value * MmToPx
	case UnitIN:
		return l.Value * 96
	default:
		return l.Value
	}
}

func (l Length) PT() float64 { return l.PX() * PxToPt }

// ParseLength parses "600", "600px", "12pt", "10mm" or "4in".
// ok is false when the numeric part is malformed.
func ParseLength(value string) (Length, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := lower
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"in", UnitIN}} {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}
