//go:build cgo && linux

package extract

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// Available reports whether the Tesseract engine can be used in this build.
func Available() bool { return true }

// Tesseract recognizes text with the system Tesseract installation.
// The zero value is not usable; construct with NewTesseract.
type Tesseract struct {
	language string
}

// NewTesseract returns a recognizer for the given Tesseract language code.
// Indonesian cards use "ind"; the data file must be installed system-wide.
func NewTesseract(language string) *Tesseract {
	return &Tesseract{language: language}
}

// Recognize runs OCR over the whole image and returns word-level regions.
// When word bounding boxes cannot be read the full text is still returned
// with an empty region list.
func (t *Tesseract) Recognize(img image.Image) (*Result, error) {
	tmpPath, err := saveTemp(img)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return &Result{FullText: text, Regions: []TextRegion{}}, nil
	}

	regions := make([]TextRegion, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		regions = append(regions, TextRegion{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &Result{FullText: text, Regions: regions}, nil
}

// saveTemp writes img to a temporary PNG; Tesseract wants a file path.
func saveTemp(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "extract-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
