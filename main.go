package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ByLCY/labelgen/binding"
	"github.com/ByLCY/labelgen/config"
	"github.com/ByLCY/labelgen/delivery"
	"github.com/ByLCY/labelgen/document"
	"github.com/ByLCY/labelgen/dsl"
	"github.com/ByLCY/labelgen/export"
	"github.com/ByLCY/labelgen/fonts"
	"github.com/ByLCY/labelgen/label"
	"github.com/ByLCY/labelgen/layout"
	"github.com/ByLCY/labelgen/logger"
	"github.com/ByLCY/labelgen/renderer"
	canvasrenderer "github.com/ByLCY/labelgen/renderer/canvas"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "导出标签失败: %v\n", err)
		os.Exit(1)
	}
}

// cliOptions 是只属于命令行的参数，其余参数经 config 绑定。
type cliOptions struct {
	configPath string
	input      string
	data       string
	format     string
	output     string
	debug      string
	timeout    time.Duration
}

func newFlagSet() (*pflag.FlagSet, *cliOptions) {
	o := &cliOptions{}
	fs := pflag.NewFlagSet("labelgen", pflag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "配置文件路径，默认查找 ./labelgen.{toml,yaml,json}")
	fs.StringVarP(&o.input, "in", "i", "", "标签定义：.label 文件或 JSON 记录，留空使用默认记录")
	fs.StringVar(&o.data, "data", "", "绑定数据：JSON 文件路径或内联 JSON")
	fs.StringVarP(&o.format, "format", "f", "", "输出格式 png|png-borderless|pdf，留空取标签定义")
	fs.StringVarP(&o.output, "out", "o", "", "输出文件路径，留空时交给配置的交付目标")
	fs.StringVar(&o.debug, "debug", "", "绘制调用调试 JSON 输出路径")
	fs.DurationVar(&o.timeout, "timeout", time.Minute, "单次导出的超时时间")

	// 以下标志绑定到 config，未显式设置时不覆盖配置文件与环境变量。
	fs.String("log-level", "info", "日志级别 debug|info|warn|error")
	fs.String("log-format", "console", "日志格式 console|json")
	fs.Duration("settle-delay", export.DefaultSettleDelay, "字体就绪后的等待时间")
	fs.String("encoding", "png", "位图编码 png|monochrome")
	fs.String("document-backend", document.BackendCanvas, "PDF 生成器 canvas|fpdf")
	fs.String("delivery", "file", "未指定 --out 时的交付目标 file|s3")
	return fs, o
}

// run 串联配置、输入解析、导出与交付。
func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs, o := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(o.configPath, fs)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	log, err := logger.New(cfg.Logger())
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer func() { _ = log.Sync() }()

	data, err := loadData(o.data)
	if err != nil {
		return err
	}
	spec, err := loadSpec(cfg, o.input, data)
	if err != nil {
		return err
	}
	if o.format != "" {
		if err := spec.SetFormat(o.format); err != nil {
			return err
		}
	}

	enc, err := export.ParseEncoding(cfg.Export.Encoding)
	if err != nil {
		return err
	}
	documents, err := document.NewFactory(cfg.Export.DocumentBackend)
	if err != nil {
		return err
	}
	sink, name, err := openSink(ctx, cfg, log, o.output, spec.FileName())
	if err != nil {
		return err
	}

	book := canvasrenderer.NewFontBook(fontSet(cfg, spec, filepath.Dir(o.input)))
	exporterOpts := []export.Option{
		export.WithLogger(log),
		export.WithFontBook(book),
		export.WithDocuments(documents),
		export.WithSink(sink),
		export.WithSettleDelay(cfg.Export.SettleDelay),
		export.WithScale(cfg.Export.Scale),
		export.WithEncoding(enc),
	}
	var rec *renderer.RasterRecorder
	if o.debug != "" {
		exporterOpts = append(exporterOpts, export.WithSurfaceFactory(func(w, h float64) (renderer.RasterSurface, error) {
			s, err := canvasrenderer.NewSurface(book, w, h)
			if err != nil {
				return nil, err
			}
			rec = renderer.NewRasterRecorder(s)
			return rec, nil
		}))
	}
	exporter := export.New(exporterOpts...)

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	log.Info("exporting label",
		zap.String("label", spec.Name),
		zap.String("format", spec.Format),
		zap.String("file", name))
	if err := exportSpec(ctx, exporter, sink, spec, name); err != nil {
		return err
	}

	if rec != nil {
		if err := writeDebug(rec, o.debug); err != nil {
			return err
		}
	}
	fmt.Fprintf(stdout, "已导出标签：%s\n", name)
	return nil
}

func exportSpec(ctx context.Context, e *export.Exporter, sink delivery.Sink, spec *dsl.Spec, name string) error {
	switch spec.Format {
	case dsl.FormatPNG:
		return e.DownloadImage(ctx, spec.Options, name)
	case dsl.FormatPDF:
		return e.ExportPDF(ctx, spec.Options, name)
	case dsl.FormatPNGBorderless:
		img, err := e.ExportBorderlessImage(ctx, spec.Options)
		if err != nil {
			return err
		}
		if err := sink.Deliver(ctx, name, delivery.ContentTypePNG, img.PNG); err != nil {
			return fmt.Errorf("%w: %w", export.ErrDelivery, err)
		}
		return nil
	default:
		return fmt.Errorf("未知输出格式 %q", spec.Format)
	}
}

// loadData 接受 JSON 文件路径或内联 JSON，留空返回 nil。
func loadData(arg string) (any, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, nil
	}
	if strings.HasPrefix(arg, "{") || strings.HasPrefix(arg, "[") {
		return binding.Decode(strings.NewReader(arg))
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("无法打开数据文件 %s: %w", arg, err)
	}
	defer f.Close()
	return binding.Decode(f)
}

// loadSpec 读取标签定义。.label 文件走 DSL 编译；其他文件按 JSON 记录读取，
// 缺省字段沿用默认记录，尺寸取配置。
func loadSpec(cfg *config.Config, input string, data any) (*dsl.Spec, error) {
	if input == "" {
		return recordSpec(cfg, label.Default(), data)
	}
	if strings.EqualFold(filepath.Ext(input), ".label") {
		file, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("无法打开标签文件 %s: %w", input, err)
		}
		defer file.Close()

		doc, err := dsl.Parse(filepath.Base(input), file)
		if err != nil {
			return nil, fmt.Errorf("解析标签文件失败: %w", err)
		}
		spec, err := dsl.Compile(doc, data)
		if err != nil {
			return nil, fmt.Errorf("编译标签文件失败: %w", err)
		}
		return spec, nil
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("无法读取记录文件 %s: %w", input, err)
	}
	rec := label.Default()
	if err := json.Unmarshal(bytes.TrimSpace(raw), &rec); err != nil {
		return nil, fmt.Errorf("解析记录 JSON 失败: %w", err)
	}
	return recordSpec(cfg, rec, data)
}

func recordSpec(cfg *config.Config, rec label.Record, data any) (*dsl.Spec, error) {
	if data != nil {
		bound, err := binding.Record(rec, data)
		if err != nil {
			return nil, err
		}
		rec = bound
	}
	return &dsl.Spec{
		Name:    "record",
		Preset:  layout.Bordered,
		Options: cfg.Options(rec),
		Format:  dsl.FormatPNG,
	}, nil
}

// fontSet 合并配置字体与标签文件里的字体覆盖；后者的相对路径相对于标签文件所在目录。
func fontSet(cfg *config.Config, spec *dsl.Spec, baseDir string) *fonts.Set {
	set := cfg.FontSet()
	for key, src := range spec.Fonts {
		if !strings.HasPrefix(src, fonts.EmbedPrefix) && !filepath.IsAbs(src) {
			src = filepath.Join(baseDir, src)
			if abs, err := filepath.Abs(src); err == nil {
				src = abs
			}
		}
		set.Override(key.Family, key.Weight, src)
	}
	return set
}

// openSink 决定交付目标与文件名：指定 --out 时写到该路径，否则交给配置的目标。
func openSink(ctx context.Context, cfg *config.Config, log *zap.Logger, output, fallback string) (delivery.Sink, string, error) {
	if output != "" {
		return delivery.NewFileSink(filepath.Dir(output), log), filepath.Base(output), nil
	}
	switch cfg.Delivery.Kind {
	case "s3":
		sink, err := delivery.NewS3Sink(ctx, cfg.Delivery.S3Sink(), delivery.WithLogger(log))
		if err != nil {
			return nil, "", fmt.Errorf("初始化 S3 交付失败: %w", err)
		}
		return sink, fallback, nil
	default:
		return delivery.NewFileSink(cfg.Delivery.Dir, log), fallback, nil
	}
}

func writeDebug(rec *renderer.RasterRecorder, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := rec.WriteDebugJSON(debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
