// Package layout checks whether recognized text is arranged like an
// Indonesian identity card.
//
// The check is positional: a card has a header band, a photo column on the
// left, the NIK line near the top, a personal-info block on the right, and
// a footer band. Text regions are binned into those areas and the card
// score blends how many areas are populated with the caller's own content
// score.
package layout

import (
	"sort"

	"github.com/Nengock/katepeh/internal/extract"
)

// Span is a fractional coordinate range over the card, 0 at the top-left.
type Span struct {
	Min, Max float64
}

// Area is a named card area constrained on either axis. A zero Span on an
// axis leaves that axis unconstrained.
type Area struct {
	Name string
	X, Y Span
	HasX bool
	HasY bool
}

// Box is a region's normalized bounding box with its relative area,
// reported for the dominant region of each card area.
type Box struct {
	X1, Y1, X2, Y2 float64
	RelativeArea   float64
}

// Report summarizes a layout analysis.
type Report struct {
	IsCard     bool
	Confidence float64
	Regions    map[string]Box
	Valid      bool
}

// Config tunes the analysis. Values are fractions of a blended score.
type Config struct {
	// Tolerance widens every area boundary, as a fraction of the card.
	Tolerance float64
	// MinAreas is how many populated areas make the layout valid.
	MinAreas int
	// Threshold is the blended score above which the image counts as a card.
	Threshold float64
	// ContentWeight and LayoutWeight blend the caller's content score with
	// the positional score. They should sum to 1.
	ContentWeight float64
	LayoutWeight  float64
}

// DefaultConfig returns the tuning the card reader ships with.
func DefaultConfig() Config {
	return Config{
		Tolerance:     0.05,
		MinAreas:      3,
		Threshold:     0.4,
		ContentWeight: 0.7,
		LayoutWeight:  0.3,
	}
}

// cardAreas are the five bands a card layout is expected to populate.
var cardAreas = []Area{
	{Name: "header", Y: Span{0, 0.25}, HasY: true},
	{Name: "photo", X: Span{0, 0.35}, HasX: true},
	{Name: "nik", Y: Span{0.15, 0.35}, HasY: true},
	{Name: "personal_info", X: Span{0.25, 1.0}, Y: Span{0.2, 0.85}, HasX: true, HasY: true},
	{Name: "footer", Y: Span{0.75, 1.0}, HasY: true},
}

// Analyze bins the recognized regions into the expected card areas and
// scores the arrangement. contentScore is the caller's confidence that the
// TEXT is card-like (0 to 1); width and height are the image dimensions the
// region boxes refer to.
func Analyze(regions []extract.TextRegion, width, height int, contentScore float64, cfg Config) Report {
	found := map[string]Box{}
	if width > 0 && height > 0 {
		for _, area := range cardAreas {
			if box, ok := dominantBox(regions, area, width, height, cfg.Tolerance); ok {
				found[area.Name] = box
			}
		}
	}

	valid := len(found) >= cfg.MinAreas
	layoutScore := 0.5
	if valid {
		layoutScore = 1.0
	}
	confidence := contentScore*cfg.ContentWeight + layoutScore*cfg.LayoutWeight

	return Report{
		IsCard:     confidence > cfg.Threshold,
		Confidence: confidence,
		Regions:    found,
		Valid:      valid,
	}
}

// dominantBox returns the largest region whose top-left corner falls inside
// the area, widened by the tolerance.
func dominantBox(regions []extract.TextRegion, area Area, width, height int, tol float64) (Box, bool) {
	var boxes []Box
	fw, fh := float64(width), float64(height)

	for _, r := range regions {
		x1, y1 := float64(r.Bounds.X1)/fw, float64(r.Bounds.Y1)/fh
		x2, y2 := float64(r.Bounds.X2)/fw, float64(r.Bounds.Y2)/fh

		if area.HasX && (x1 < area.X.Min-tol || x1 > area.X.Max+tol) {
			continue
		}
		if area.HasY && (y1 < area.Y.Min-tol || y1 > area.Y.Max+tol) {
			continue
		}
		boxes = append(boxes, Box{
			X1: x1, Y1: y1, X2: x2, Y2: y2,
			RelativeArea: (x2 - x1) * (y2 - y1),
		})
	}
	if len(boxes) == 0 {
		return Box{}, false
	}

	sort.Slice(boxes, func(i, j int) bool {
		return boxes[i].RelativeArea > boxes[j].RelativeArea
	})
	return boxes[0], true
}
