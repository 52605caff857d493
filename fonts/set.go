package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/labelgen/layout"
)

// Set 把逻辑字体（字体族 + 字重）映射到字体来源。来源可以是内置字体
// （"embed:go-bold"），也可以是相对 BaseDir 的 TTF/OTF 路径。
type Set struct {
	BaseDir string
	sources map[Key]string
}

// Key 标识一个逻辑字体。
type Key struct {
	Family layout.Family
	Weight layout.Weight
}

func (k Key) String() string { return fmt.Sprintf("%s/%d", k.Family, k.Weight) }

// Default 返回只用 Go 字体的字体集。Go 字体没有 900 字重，black 退化为 bold；
// 等宽字体只有常规与粗体两档。
func Default() *Set {
	return &Set{sources: map[Key]string{
		{layout.Sans, layout.Regular}: EmbedPrefix + "go-regular",
		{layout.Sans, layout.Medium}:  EmbedPrefix + "go-medium",
		{layout.Sans, layout.Bold}:    EmbedPrefix + "go-bold",
		{layout.Sans, layout.Black}:   EmbedPrefix + "go-bold",
		{layout.Mono, layout.Regular}: EmbedPrefix + "go-mono",
		{layout.Mono, layout.Medium}:  EmbedPrefix + "go-mono",
		{layout.Mono, layout.Bold}:    EmbedPrefix + "go-mono-bold",
		{layout.Mono, layout.Black}:   EmbedPrefix + "go-mono-bold",
	}}
}

// Override 替换某个逻辑字体的来源，空来源忽略。
func (s *Set) Override(family layout.Family, weight layout.Weight, src string) {
	src = strings.TrimSpace(src)
	if src == "" {
		return
	}
	if s.sources == nil {
		s.sources = map[Key]string{}
	}
	s.sources[Key{family, weight}] = src
}

// Source 返回逻辑字体的来源。
func (s *Set) Source(family layout.Family, weight layout.Weight) (string, bool) {
	src, ok := s.sources[Key{family, weight}]
	return src, ok
}

// Keys 返回已配置的全部逻辑字体。
func (s *Set) Keys() []Key {
	keys := make([]Key, 0, len(s.sources))
	for _, f := range []layout.Family{layout.Sans, layout.Mono} {
		for _, w := range layout.Weights() {
			if _, ok := s.sources[Key{f, w}]; ok {
				keys = append(keys, Key{f, w})
			}
		}
	}
	return keys
}

// Read 读取逻辑字体的字节数据。
func (s *Set) Read(key Key) ([]byte, error) {
	src, ok := s.sources[key]
	if !ok {
		return nil, fmt.Errorf("未配置字体 %s", key)
	}
	if strings.HasPrefix(src, EmbedPrefix) {
		return Load(src)
	}
	path := src
	if !filepath.IsAbs(path) && s.BaseDir != "" {
		path = filepath.Join(s.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}
