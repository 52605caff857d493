package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// EmbedPrefix 标记内置字体，例如 "embed:go-bold"。
const EmbedPrefix = "embed:"

var builtin = map[string][]byte{
	"go-regular":   goregular.TTF,
	"go-medium":    gomedium.TTF,
	"go-bold":      gobold.TTF,
	"go-mono":      gomono.TTF,
	"go-mono-bold": gomonobold.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:go-bold" 或直接 "go-bold"。
func Load(name string) ([]byte, error) {
	name = strings.TrimPrefix(name, EmbedPrefix)
	data, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 可用字体 %s", name, strings.Join(Builtin(), ", "))
	}
	return data, nil
}

// Builtin 列出全部内置字体名。
func Builtin() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
