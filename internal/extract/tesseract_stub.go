//go:build !cgo || !linux

package extract

import (
	"errors"
	"image"
)

// ErrUnavailable is returned when the build has no OCR engine compiled in.
var ErrUnavailable = errors.New("extract: tesseract engine not available in this build")

// Available reports whether the Tesseract engine can be used in this build.
func Available() bool { return false }

// Tesseract is a placeholder for builds without CGO. Every Recognize call
// returns ErrUnavailable.
type Tesseract struct {
	language string
}

// NewTesseract returns the stub recognizer.
func NewTesseract(language string) *Tesseract {
	return &Tesseract{language: language}
}

func (t *Tesseract) Recognize(img image.Image) (*Result, error) {
	return nil, ErrUnavailable
}
