package delivery

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestFileSinkWritesPayload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := NewFileSink(dir, zaptest.NewLogger(t))

	require.NoError(t, sink.Deliver(context.Background(), "EZAE1.png", ContentTypePNG, []byte("png")))
	data, err := os.ReadFile(filepath.Join(dir, "EZAE1.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "临时文件应被清理")
}

func TestFileSinkStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir, nil)
	require.NoError(t, sink.Deliver(context.Background(), "../../etc/label.pdf", ContentTypePDF, []byte("%PDF")))
	assert.FileExists(t, filepath.Join(dir, "label.pdf"))
}

func TestFileSinkRejectsEmptyNameAndCanceledContext(t *testing.T) {
	sink := NewFileSink(t.TempDir(), nil)
	assert.Error(t, sink.Deliver(context.Background(), " ", ContentTypePNG, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sink.Deliver(ctx, "a.png", ContentTypePNG, nil), context.Canceled)
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestNewS3SinkValidation(t *testing.T) {
	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3Sink(context.Background(), S3Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("half credentials return error", func(t *testing.T) {
		_, err := NewS3Sink(context.Background(), S3Config{Bucket: "labels", AccessKey: "key"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be set together")
	})

	t.Run("static credentials build a client", func(t *testing.T) {
		sink, err := NewS3Sink(context.Background(), S3Config{
			Bucket:       "labels",
			Endpoint:     "localhost:9000",
			AccessKey:    "key",
			SecretKey:    "secret",
			UsePathStyle: true,
		})
		require.NoError(t, err)
		assert.NotNil(t, sink.client)
	})
}

func TestS3SinkUploadsUnderPrefix(t *testing.T) {
	fake := &fakePutter{}
	sink, err := NewS3Sink(context.Background(), S3Config{Bucket: "labels", Prefix: "/exports/"},
		WithClient(fake), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	require.NoError(t, sink.Deliver(context.Background(), "EZAE1.pdf", ContentTypePDF, []byte("%PDF-1.7")))
	require.NotNil(t, fake.input)
	assert.Equal(t, "labels", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "exports/EZAE1.pdf", aws.ToString(fake.input.Key))
	assert.Equal(t, ContentTypePDF, aws.ToString(fake.input.ContentType))
	assert.Equal(t, []byte("%PDF-1.7"), fake.body)
}

func TestS3SinkWrapsUploadError(t *testing.T) {
	boom := errors.New("boom")
	sink, err := NewS3Sink(context.Background(), S3Config{Bucket: "labels"}, WithClient(&fakePutter{err: boom}))
	require.NoError(t, err)

	err = sink.Deliver(context.Background(), "a.png", ContentTypePNG, []byte("x"))
	assert.ErrorIs(t, err, boom)
}

func TestSinkFunc(t *testing.T) {
	var got string
	var s Sink = SinkFunc(func(_ context.Context, name, _ string, _ []byte) error {
		got = name
		return nil
	})
	require.NoError(t, s.Deliver(context.Background(), "x.png", ContentTypePNG, nil))
	assert.Equal(t, "x.png", got)
}
