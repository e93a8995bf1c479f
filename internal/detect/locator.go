package detect

import (
	"fmt"
	"image"

	"github.com/Nengock/katepeh/internal/imaging"
)

// CannyThresholds is the ordered list of (low, high) hysteresis pairs the
// locator cascades through, most permissive first. The first pair that
// produces any contour wins.
var CannyThresholds = [][2]int{{30, 150}, {50, 200}, {75, 250}}

// EpsilonLadder is the ordered list of perimeter fractions tried when
// reducing the winning contour to exactly four corners.
var EpsilonLadder = []float64{0.02, 0.03, 0.01, 0.04}

// maxCandidates bounds how many of the largest contours are examined as
// potential card boundaries.
const maxCandidates = 5

// candidateEpsilon is the perimeter fraction used for the initial
// plausibility check of each contour.
const candidateEpsilon = 0.02

// Result reports the outcome of a card search. Found distinguishes a
// successfully located quadrilateral from the expected "no card here"
// outcome; Reason carries a short diagnostic for the latter.
type Result struct {
	Found bool
	Quad  Quad
	// Area is the enclosed area of the winning contour in square pixels.
	Area   float64
	Reason string
}

// NotFound builds a negative Result with a formatted diagnostic.
func NotFound(format string, args ...interface{}) Result {
	return Result{Reason: fmt.Sprintf(format, args...)}
}

// Locate searches a color frame for the four-corner boundary of an ID card.
//
// minArea is the smallest contour area (in square pixels) accepted as a card
// candidate; callers retry with progressively smaller values when a frame
// yields nothing.
//
// The search never returns an error: an undetectable card is an expected
// outcome and is reported through Result.Found.
func Locate(img image.Image, minArea float64) Result {
	gray := imaging.Grayscale(img)
	blurred := imaging.GaussianBlur(gray, 2)

	// Adaptive threshold plus close/open gives a second, cleaner view of the
	// frame for edge detection under uneven lighting.
	binary := imaging.AdaptiveThreshold(blurred, 11, 2)
	morph := imaging.MorphOpen(imaging.MorphClose(binary, 2), 2)

	contours := cascadeContours(blurred, morph)
	if len(contours) == 0 {
		return NotFound("no contours at any edge threshold")
	}

	candidate, ok := selectCandidate(contours, minArea)
	if !ok {
		return NotFound("no contour above min area %.0f with 4-6 corners", minArea)
	}

	quad, ok := reduceToQuad(candidate)
	if !ok {
		return NotFound("no epsilon yielded exactly 4 corners")
	}

	return Result{Found: true, Quad: quad, Area: candidate.Area()}
}

// cascadeContours runs the Canny threshold cascade over both frame
// renditions, OR-combines the edge maps, bridges small gaps, and extracts
// contours. It stops at the first threshold pair that yields at least one
// contour.
func cascadeContours(blurred, morph *image.Gray) []Contour {
	for _, pair := range CannyThresholds {
		edges := imaging.Or(
			imaging.Canny(blurred, pair[0], pair[1]),
			imaging.Canny(morph, pair[0], pair[1]),
		)
		edges = imaging.Dilate(edges, 2)

		if contours := FindContours(edges); len(contours) > 0 {
			return contours
		}
	}
	return nil
}

// selectCandidate picks the largest contour among the top candidates whose
// area clears minArea and whose polygon approximation has a card-like corner
// count (4 to 6 vertices).
func selectCandidate(contours []Contour, minArea float64) (Contour, bool) {
	limit := len(contours)
	if limit > maxCandidates {
		limit = maxCandidates
	}

	var best Contour
	bestArea := 0.0
	found := false

	for _, c := range contours[:limit] {
		area := c.Area()
		if area <= bestArea || area <= minArea {
			continue
		}
		approx := ApproxPolygon(c, candidateEpsilon*c.Perimeter())
		if len(approx) >= 4 && len(approx) <= 6 {
			best = c
			bestArea = area
			found = true
		}
	}
	return best, found
}

// reduceToQuad walks the epsilon ladder until an approximation with exactly
// four corners emerges. Approximations with more than four vertices get one
// convex-hull reduction attempt before the next epsilon is tried.
func reduceToQuad(c Contour) (Quad, bool) {
	perimeter := c.Perimeter()

	for _, frac := range EpsilonLadder {
		approx := ApproxPolygon(c, frac*perimeter)

		switch {
		case len(approx) == 4:
			return OrderQuad([4]Point{approx[0], approx[1], approx[2], approx[3]}), true
		case len(approx) > 4:
			hull := ConvexHull(approx)
			if len(hull) == 4 {
				return OrderQuad([4]Point{hull[0], hull[1], hull[2], hull[3]}), true
			}
		}
	}
	return Quad{}, false
}
