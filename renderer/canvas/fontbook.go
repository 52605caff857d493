package canvasrenderer

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"
	"unicode"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/sfnt"

	"github.com/ByLCY/labelgen/fonts"
	"github.com/ByLCY/labelgen/layout"
)

// ErrFontsNotLoaded 表示在字体就绪之前请求了字体面。
var ErrFontsNotLoaded = errors.New("canvas: fonts not loaded")

// FontBook 持有全部逻辑字体对应的 canvas 字体族，整个进程共享。
// 字体在第一次 Ready 时加载且只加载一次，之后只读；创建字体面时加锁。
type FontBook struct {
	set *fonts.Set

	once   sync.Once
	loaded chan struct{}
	err    error

	mu       sync.Mutex
	families map[fonts.Key]*canvas.FontFamily
	cmaps    map[fonts.Key]*sfnt.Font // 只用于查字形覆盖，解析失败的字体不在其中
}

// NewFontBook 以给定字体集创建字体簿，set 为 nil 时使用内置 Go 字体。
func NewFontBook(set *fonts.Set) *FontBook {
	if set == nil {
		set = fonts.Default()
	}
	return &FontBook{
		set:      set,
		loaded:   make(chan struct{}),
		families: map[fonts.Key]*canvas.FontFamily{},
		cmaps:    map[fonts.Key]*sfnt.Font{},
	}
}

// Ready 等待字体加载完成。ctx 结束时返回 ctx.Err()，加载在后台继续。
func (b *FontBook) Ready(ctx context.Context) error {
	b.once.Do(func() { go b.load() })
	select {
	case <-b.loaded:
		return b.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *FontBook) load() {
	defer close(b.loaded)
	families := make(map[fonts.Key]*canvas.FontFamily)
	cmaps := make(map[fonts.Key]*sfnt.Font)
	for _, key := range b.set.Keys() {
		data, err := b.set.Read(key)
		if err != nil {
			b.err = err
			return
		}
		family := canvas.NewFontFamily(key.String())
		if err := family.LoadFont(data, 0, fontStyle(key.Weight)); err != nil {
			b.err = fmt.Errorf("加载字体 %s 失败: %w", key, err)
			return
		}
		families[key] = family
		if f, err := sfnt.Parse(data); err == nil {
			cmaps[key] = f
		}
	}
	b.mu.Lock()
	b.families = families
	b.cmaps = cmaps
	b.mu.Unlock()
}

func (b *FontBook) isLoaded() bool {
	select {
	case <-b.loaded:
		return b.err == nil
	default:
		return false
	}
}

// Face 返回给定逻辑字体与颜色的字体面。字号为逻辑像素，一个逻辑像素对应一个画布单位。
func (b *FontBook) Face(font layout.Font, col color.Color) (*canvas.FontFace, error) {
	if !b.isLoaded() {
		return nil, ErrFontsNotLoaded
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	key := fonts.Key{Family: font.Family, Weight: font.Weight}
	family, ok := b.families[key]
	if !ok {
		// 未配置的字重退回同族常规体
		if family, ok = b.families[fonts.Key{Family: font.Family, Weight: layout.Regular}]; !ok {
			return nil, fmt.Errorf("字体 %s 未配置", key)
		}
		return family.Face(toPt(font.Size), col, canvas.FontRegular, canvas.FontNormal), nil
	}
	return family.Face(toPt(font.Size), col, fontStyle(font.Weight), canvas.FontNormal), nil
}

// MissingGlyphs 返回 text 中该字体没有字形的字符，去重并保持出现顺序。
// 字体尚未加载或无法解析时返回 nil。未配置的字重按 Face 的规则退回常规体。
func (b *FontBook) MissingGlyphs(font layout.Font, text string) []rune {
	if !b.isLoaded() {
		return nil
	}
	b.mu.Lock()
	f, ok := b.cmaps[fonts.Key{Family: font.Family, Weight: font.Weight}]
	if !ok {
		f, ok = b.cmaps[fonts.Key{Family: font.Family, Weight: layout.Regular}]
	}
	b.mu.Unlock()
	if !ok {
		return nil
	}

	var buf sfnt.Buffer
	var missing []rune
	seen := map[rune]bool{}
	for _, r := range text {
		if unicode.IsSpace(r) || seen[r] {
			continue
		}
		seen[r] = true
		if idx, err := f.GlyphIndex(&buf, r); err != nil || idx == 0 {
			missing = append(missing, r)
		}
	}
	return missing
}

func fontStyle(w layout.Weight) canvas.FontStyle {
	switch w {
	case layout.Medium:
		return canvas.FontMedium
	case layout.Bold:
		return canvas.FontBold
	case layout.Black:
		return canvas.FontBlack
	default:
		return canvas.FontRegular
	}
}

// toPt 把以画布单位表示的字号换算成 canvas 字体面使用的 pt。
func toPt(units float64) float64 { return units * layout.MmToPt }
