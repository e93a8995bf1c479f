// Package extract recognizes text on a normalized card image and assembles
// it into structured fields.
//
// Text recognition uses Tesseract through gosseract and is only available
// on Linux builds with CGO enabled; other builds get a stub that reports
// the engine as unavailable. Field assembly is pure Go and works on any
// recognizer output.
package extract

import "image"

// Bounds is a rectangular region in pixel coordinates of the card image.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// TextRegion is one recognized word with its location and confidence.
type TextRegion struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Bounds     Bounds  `json:"bounds"`
}

// Result holds the output of a recognition pass over a card image.
type Result struct {
	FullText string       `json:"full_text"`
	Regions  []TextRegion `json:"regions"`
}

// Recognizer turns a card image into text regions. The pipeline accepts any
// implementation; Tesseract is the default when available.
type Recognizer interface {
	Recognize(img image.Image) (*Result, error)
}
