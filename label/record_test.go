package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStem(t *testing.T) {
	assert.Equal(t, "EZAE1", Default().FileStem())
	assert.Equal(t, "label", Record{}.FileStem())
	assert.Equal(t, "label", Record{ProductModel: "   "}.FileStem())
}

func TestSetGetRoundTripsEveryField(t *testing.T) {
	var rec Record
	for _, f := range Fields() {
		require.True(t, rec.Set(f, "v-"+f), f)
	}
	for _, f := range Fields() {
		got, ok := rec.Get(f)
		require.True(t, ok, f)
		assert.Equal(t, "v-"+f, got)
	}
	assert.False(t, rec.Set("barcode", "x"))
	_, ok := rec.Get("barcode")
	assert.False(t, ok)
}

func TestOptionsSnapshotIsIndependent(t *testing.T) {
	rec := Default()
	opts := DefaultOptions(rec)
	rec.ProductName = "changed"
	assert.Equal(t, "AR内容工作站", opts.Record.ProductName)
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "defaults", opts: DefaultOptions(Record{})},
		{name: "zero padding", opts: Options{Width: 100, Height: 50}},
		{name: "zero width", opts: Options{Width: 0, Height: 400, Padding: 10}, wantErr: true},
		{name: "negative padding", opts: Options{Width: 600, Height: 400, Padding: -1}, wantErr: true},
		{name: "padding eats content", opts: Options{Width: 600, Height: 80, Padding: 40}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOptions)
				return
			}
			assert.NoError(t, err)
		})
	}
}
