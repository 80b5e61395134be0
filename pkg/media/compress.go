// Package media turns user-supplied images into compressed payloads sized for object
// storage, and builds the keys they are stored under.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/chai2010/webp" // also registers the WebP decoder
	"github.com/disintegration/imaging"
)

// Quality stepping for lossy formats.
const (
	StartQuality = 90
	MinQuality   = 40
	QualityStep  = 10
)

// DefaultMaxPixels caps the decoded area when Constraints.MaxPixels is unset.
const DefaultMaxPixels = 40_000_000

type Format string

const (
	FormatWebP Format = "webp"
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// ParseFormat accepts the common spellings of the supported output formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "webp":
		return FormatWebP, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	}
	return "", &UnsupportedFormatError{Format: s}
}

func (f Format) ContentType() string {
	switch f {
	case FormatWebP:
		return "image/webp"
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	}
	return "application/octet-stream"
}

func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

type Constraints struct {
	MaxBytes        int64
	MaxDimensionPx  int
	PreferredFormat Format
	// MaxPixels bounds width*height of the input before it is decoded. Zero means DefaultMaxPixels.
	MaxPixels int64
}

// CompressedImage is a transient artifact handed straight to the object store.
type CompressedImage struct {
	Bytes       []byte
	ContentType string
	SizeBytes   int64
	Format      Format
	Width       int
	Height      int
	Quality     int
	// OverBudget is set when even the smallest attempt exceeds MaxBytes.
	OverBudget bool
}

type encoder struct {
	lossy  bool
	encode func(img image.Image, quality int) ([]byte, error)
}

var encoders = map[Format]encoder{
	FormatWebP: {lossy: true, encode: encodeWebP},
	FormatJPEG: {lossy: true, encode: encodeJPEG},
	FormatPNG:  {lossy: false, encode: encodePNG},
}

// Compress re-encodes input in the preferred format, downscaled to fit MaxDimensionPx,
// lowering quality until the payload fits MaxBytes. When the quality floor is reached
// the smallest attempt is returned with OverBudget set.
func Compress(input []byte, c Constraints) (*CompressedImage, error) {
	if c.MaxBytes <= 0 || c.MaxDimensionPx <= 0 {
		return nil, ErrInvalidConstraints
	}
	enc, ok := encoders[c.PreferredFormat]
	if !ok {
		return nil, &UnsupportedFormatError{Format: string(c.PreferredFormat)}
	}
	if len(input) == 0 {
		return nil, &DecodeError{Err: errEmptyInput}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(input))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	limit := c.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > limit {
		return nil, &DecodeError{Err: fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, limit)}
	}

	img, err := imaging.Decode(bytes.NewReader(input), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	img = fit(img, c.MaxDimensionPx)
	bounds := img.Bounds()

	var best *CompressedImage
	for quality := StartQuality; ; quality -= QualityStep {
		data, err := enc.encode(img, quality)
		if err != nil {
			return nil, &UnsupportedFormatError{Format: string(c.PreferredFormat), Err: err}
		}

		attempt := &CompressedImage{
			Bytes:       data,
			ContentType: c.PreferredFormat.ContentType(),
			SizeBytes:   int64(len(data)),
			Format:      c.PreferredFormat,
			Width:       bounds.Dx(),
			Height:      bounds.Dy(),
			Quality:     quality,
		}
		if attempt.SizeBytes <= c.MaxBytes {
			return attempt, nil
		}
		if best == nil || attempt.SizeBytes < best.SizeBytes {
			best = attempt
		}
		if !enc.lossy || quality-QualityStep < MinQuality {
			break
		}
	}

	best.OverBudget = true
	return best, nil
}

func fit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: false, Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	// JPEG has no alpha channel; flatten onto white so transparent areas do not turn black.
	b := img.Bounds()
	flat := imaging.New(b.Dx(), b.Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodePNG(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
