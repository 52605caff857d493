package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3Config 描述 S3 兼容存储（AWS S3、MinIO、RustFS 等）。
// AccessKey 与 SecretKey 留空时使用 SDK 默认凭证链。
type S3Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Prefix       string
	UsePathStyle bool
}

// PutObjectAPI 是 S3Sink 用到的唯一客户端方法，测试时可替换。
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink 把产物上传到存储桶，对象键为 Prefix/文件名。
type S3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
	logger *zap.Logger
}

var _ Sink = (*S3Sink)(nil)

// S3SinkOption is a functional option for configuring S3Sink
type S3SinkOption func(*S3Sink)

// WithLogger sets a custom logger for S3Sink
func WithLogger(logger *zap.Logger) S3SinkOption {
	return func(s *S3Sink) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClient replaces the S3 client, mainly for tests
func WithClient(client PutObjectAPI) S3SinkOption {
	return func(s *S3Sink) {
		s.client = client
	}
}

// NewS3Sink creates an S3Sink from configuration.
func NewS3Sink(ctx context.Context, cfg S3Config, opts ...S3SinkOption) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("delivery: s3 bucket is required")
	}
	if (cfg.AccessKey == "") != (cfg.SecretKey == "") {
		return nil, errors.New("delivery: s3 access key and secret key must be set together")
	}

	sink := &S3Sink{
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(sink)
	}
	if sink.client != nil {
		return sink, nil
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid s3 endpoint: %w", err)
		}
	}
	sink.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return sink, nil
}

// Key 返回文件名对应的对象键。
func (s *S3Sink) Key(name string) (string, error) {
	base, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return base, nil
	}
	return path.Join(s.prefix, base), nil
}

func (s *S3Sink) Deliver(ctx context.Context, name, contentType string, payload []byte) error {
	key, err := s.Key(name)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(payload),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(payload))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	s.logger.Info("label uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(payload)))
	return nil
}
