package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileSink 把产物写到 Dir 目录下，相当于浏览器里的“另存为”。
type FileSink struct {
	Dir    string
	Logger *zap.Logger
}

var _ Sink = (*FileSink)(nil)

func NewFileSink(dir string, logger *zap.Logger) *FileSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink{Dir: dir, Logger: logger}
}

// Deliver 先写临时文件再改名，失败时不会留下半截文件。
func (s *FileSink) Deliver(ctx context.Context, name, contentType string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	base, err := cleanName(name)
	if err != nil {
		return err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录 %s 失败: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("写入 %s 失败: %w", base, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", base, err)
	}
	target := filepath.Join(dir, base)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("保存 %s 失败: %w", target, err)
	}
	s.Logger.Info("label saved",
		zap.String("path", target),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(payload)))
	return nil
}
