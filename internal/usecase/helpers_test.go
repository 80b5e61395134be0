package usecase

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"
	"testing"
	"time"

	"zeecrown-admin/pkg/media"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testBucket = "product_images"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pngUpload(t *testing.T, name string) ImageUpload {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 10), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return ImageUpload{Filename: name, ContentType: "image/png", Data: buf.Bytes()}
}

// newTestMedia returns a MediaUsecase whose clock advances one millisecond per key.
func newTestMedia(store *fakeStore) *MediaUsecase {
	uc := NewMediaUsecase(store, media.Constraints{
		MaxBytes:        250 * 1024,
		MaxDimensionPx:  1280,
		PreferredFormat: media.FormatWebP,
	}, 2)
	var tick atomic.Int64
	tick.Store(1700000000000)
	uc.now = func() time.Time { return time.UnixMilli(tick.Add(1)) }
	return uc
}
