// Package delivery 把编码好的导出产物交给调用方：写入本地目录或上传到 S3 兼容存储。
package delivery

import (
	"context"
	"errors"
	"path"
	"strings"
)

// Sink 接收一次导出的最终产物。
type Sink interface {
	Deliver(ctx context.Context, name, contentType string, payload []byte) error
}

// SinkFunc 让普通函数满足 Sink。
type SinkFunc func(ctx context.Context, name, contentType string, payload []byte) error

func (f SinkFunc) Deliver(ctx context.Context, name, contentType string, payload []byte) error {
	return f(ctx, name, contentType, payload)
}

// 常用的内容类型。
const (
	ContentTypePNG = "image/png"
	ContentTypePDF = "application/pdf"
)

// cleanName 只保留文件名部分，拒绝空名称与目录名。
func cleanName(name string) (string, error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." || base == "" {
		return "", errors.New("delivery: file name is required")
	}
	return base, nil
}
