package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/makeworld-the-better-one/dither/v2"
)

// Encoding 选择位图的编码方式。
type Encoding int

const (
	// EncodingPNG 为无损真彩 PNG。
	EncodingPNG Encoding = iota
	// EncodingMonochrome 为 Floyd–Steinberg 抖动后的 1 位 PNG，供热敏标签打印机使用。
	EncodingMonochrome
)

func (e Encoding) String() string {
	if e == EncodingMonochrome {
		return "monochrome"
	}
	return "png"
}

// ParseEncoding 解析配置中的编码名，空串为 png。
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return EncodingPNG, nil
	case "monochrome", "mono", "1bit":
		return EncodingMonochrome, nil
	default:
		return EncodingPNG, fmt.Errorf("unknown encoding %q", s)
	}
}

var monochrome = color.Palette{color.Gray{Y: 0}, color.Gray{Y: 255}}

func encode(img image.Image, enc Encoding) ([]byte, error) {
	if enc == EncodingMonochrome {
		ditherer := dither.NewDitherer(monochrome)
		ditherer.Matrix = dither.FloydSteinberg
		img = ditherer.DitherPaletted(img)
	}
	var buf bytes.Buffer
	encoder := &png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
