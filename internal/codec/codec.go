// Package codec decodes and encodes card photographs.
//
// Decoders for PNG, JPEG, and GIF are registered through the standard image
// package; WebP is handled with an explicit fallback because the libwebp
// binding does not register itself.
package codec

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/webp"
)

// Decode reads an encoded image from r. The returned format string is the
// registered decoder name ("png", "jpeg", "gif", "webp").
func Decode(r io.Reader) (image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an image held in memory, trying the registered
// decoders first and libwebp as a fallback.
func DecodeBytes(data []byte) (image.Image, string, error) {
	if img, format, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, format, nil
	}

	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, "webp", nil
	}

	return nil, "", fmt.Errorf("decode image: unknown or unsupported format")
}

// DecodeFile decodes the image at path.
func DecodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodeJPEG writes img to w as JPEG with the given quality (1-100).
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}

// EncodeWebP writes img to w as lossy WebP with the given quality (1-100).
func EncodeWebP(w io.Writer, img image.Image, quality int) error {
	opts := &webp.Options{Quality: float32(quality)}
	if err := webp.Encode(w, img, opts); err != nil {
		return fmt.Errorf("encode webp: %w", err)
	}
	return nil
}

// EncodeFile writes img to path, choosing the format from the extension.
// Unknown extensions encode as PNG.
func EncodeFile(path string, img image.Image, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return EncodeJPEG(f, img, quality)
	case ".webp":
		return EncodeWebP(f, img, quality)
	default:
		return EncodePNG(f, img)
	}
}
