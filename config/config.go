// Package config loads labelgen settings from an optional config file,
// LABELGEN_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ByLCY/labelgen/delivery"
	"github.com/ByLCY/labelgen/document"
	"github.com/ByLCY/labelgen/export"
	"github.com/ByLCY/labelgen/fonts"
	"github.com/ByLCY/labelgen/label"
	"github.com/ByLCY/labelgen/layout"
	"github.com/ByLCY/labelgen/logger"
)

// EnvPrefix is prepended to every environment override, e.g. LABELGEN_EXPORT_SETTLE_DELAY.
const EnvPrefix = "LABELGEN"

// Config holds all labelgen configuration
type Config struct {
	Log      LogConfig
	Export   ExportConfig
	Layout   LayoutConfig
	Fonts    FontsConfig
	Delivery DeliveryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// ExportConfig tunes the export pipeline
type ExportConfig struct {
	Scale           float64
	SettleDelay     time.Duration
	Encoding        string // png, monochrome
	DocumentBackend string // canvas, fpdf
}

// LayoutConfig holds the default label size used when the input does not set one
type LayoutConfig struct {
	Width   float64
	Height  float64
	Padding float64
}

// FontsConfig maps weights (regular, medium, bold, black) to font sources.
// Sources are "embed:<name>" or paths relative to Dir.
type FontsConfig struct {
	Dir  string
	Sans map[layout.Weight]string
	Mono map[layout.Weight]string
}

// DeliveryConfig selects where DownloadImage/ExportPDF put their output
type DeliveryConfig struct {
	Kind string // file, s3
	Dir  string
	S3   S3Config
}

// S3Config holds S3-compatible storage settings
type S3Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Prefix       string
	UsePathStyle bool
}

var weightNames = map[layout.Weight]string{
	layout.Regular: "regular",
	layout.Medium:  "medium",
	layout.Bold:    "bold",
	layout.Black:   "black",
}

// Load reads configuration.
// Priority (highest to lowest):
// 1. Command-line flags bound through flags (may be nil)
// 2. Environment variables with LABELGEN_ prefix
// 3. The config file at path, or ./labelgen.{toml,yaml,json} when path is empty
// 4. Built-in defaults
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("labelgen")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Export: ExportConfig{
			Scale:           v.GetFloat64("export.scale"),
			SettleDelay:     v.GetDuration("export.settle_delay"),
			Encoding:        v.GetString("export.encoding"),
			DocumentBackend: v.GetString("export.document_backend"),
		},
		Layout: LayoutConfig{
			Width:   v.GetFloat64("layout.width"),
			Height:  v.GetFloat64("layout.height"),
			Padding: v.GetFloat64("layout.padding"),
		},
		Fonts: FontsConfig{
			Dir:  v.GetString("fonts.dir"),
			Sans: readWeights(v, "fonts.sans"),
			Mono: readWeights(v, "fonts.mono"),
		},
		Delivery: DeliveryConfig{
			Kind: v.GetString("delivery.kind"),
			Dir:  v.GetString("delivery.dir"),
			S3: S3Config{
				Bucket:       v.GetString("delivery.s3.bucket"),
				Region:       v.GetString("delivery.s3.region"),
				Endpoint:     v.GetString("delivery.s3.endpoint"),
				AccessKey:    v.GetString("delivery.s3.access_key"),
				SecretKey:    v.GetString("delivery.s3.secret_key"),
				Prefix:       v.GetString("delivery.s3.prefix"),
				UsePathStyle: v.GetBool("delivery.s3.use_path_style"),
			},
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("export.scale", 3.0)
	v.SetDefault("export.settle_delay", 200*time.Millisecond)
	v.SetDefault("export.encoding", "png")
	v.SetDefault("export.document_backend", document.BackendCanvas)
	v.SetDefault("layout.width", label.DefaultWidth)
	v.SetDefault("layout.height", label.DefaultHeight)
	v.SetDefault("layout.padding", label.DefaultPadding)
	v.SetDefault("delivery.kind", "file")
	v.SetDefault("delivery.dir", ".")
	v.SetDefault("delivery.s3.region", "us-east-1")
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"log-level":        "log.level",
	"log-format":       "log.format",
	"settle-delay":     "export.settle_delay",
	"encoding":         "export.encoding",
	"document-backend": "export.document_backend",
	"delivery":         "delivery.kind",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// readWeights reads fonts.<family>.<weight> keys one by one so that each can be
// overridden from the environment (LABELGEN_FONTS_SANS_BLACK).
func readWeights(v *viper.Viper, prefix string) map[layout.Weight]string {
	out := map[layout.Weight]string{}
	for w, name := range weightNames {
		if src := strings.TrimSpace(v.GetString(prefix + "." + name)); src != "" {
			out[w] = src
		}
	}
	return out
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Export.Scale <= 0 {
		return fmt.Errorf("export.scale must be positive")
	}
	if c.Export.SettleDelay < 0 {
		return fmt.Errorf("export.settle_delay cannot be negative")
	}
	if _, err := export.ParseEncoding(c.Export.Encoding); err != nil {
		return fmt.Errorf("export.encoding: %w", err)
	}
	if _, err := document.NewFactory(c.Export.DocumentBackend); err != nil {
		return fmt.Errorf("export.document_backend: %w", err)
	}
	opts := label.Options{Width: c.Layout.Width, Height: c.Layout.Height, Padding: c.Layout.Padding}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	switch c.Delivery.Kind {
	case "file":
	case "s3":
		if c.Delivery.S3.Bucket == "" {
			return fmt.Errorf("delivery.s3.bucket is required when delivery.kind is s3")
		}
	default:
		return fmt.Errorf("delivery.kind must be file or s3, got %q", c.Delivery.Kind)
	}
	return nil
}

// Logger returns the logger configuration.
func (c *Config) Logger() *logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	cfg.Output = c.Log.Output
	return cfg
}

// FontSet builds the font set: built-in Go fonts with configured overrides.
func (c *Config) FontSet() *fonts.Set {
	set := fonts.Default()
	set.BaseDir = c.Fonts.Dir
	for w, src := range c.Fonts.Sans {
		set.Override(layout.Sans, w, src)
	}
	for w, src := range c.Fonts.Mono {
		set.Override(layout.Mono, w, src)
	}
	return set
}

// Options wraps rec with the configured default size.
func (c *Config) Options(rec label.Record) label.Options {
	return label.Options{Width: c.Layout.Width, Height: c.Layout.Height, Padding: c.Layout.Padding, Record: rec}
}

// S3Sink converts the storage settings for the delivery package.
func (c DeliveryConfig) S3Sink() delivery.S3Config {
	return delivery.S3Config{
		Bucket:       c.S3.Bucket,
		Region:       c.S3.Region,
		Endpoint:     c.S3.Endpoint,
		AccessKey:    c.S3.AccessKey,
		SecretKey:    c.S3.SecretKey,
		Prefix:       c.S3.Prefix,
		UsePathStyle: c.S3.UsePathStyle,
	}
}
