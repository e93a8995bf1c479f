package detect

import "math"

// ApproxPolygon simplifies a closed contour to a polygon using the
// Douglas-Peucker algorithm. Points farther than epsilon from the current
// chord survive; everything else is dropped.
//
// Epsilon is an absolute distance in pixels. Callers typically derive it as
// a fraction of the contour perimeter (0.02 yields the classic "2% of arc
// length" card approximation).
func ApproxPolygon(c Contour, epsilon float64) []Point {
	pts := c.Points
	if len(pts) < 3 {
		return append([]Point(nil), pts...)
	}

	// For a closed curve, split at the point farthest from the start so the
	// two chords cut the boundary roughly in half.
	far := 1
	maxDist := 0.0
	for i := 1; i < len(pts); i++ {
		d := math.Hypot(pts[i].X-pts[0].X, pts[i].Y-pts[0].Y)
		if d > maxDist {
			maxDist = d
			far = i
		}
	}

	first := douglasPeucker(pts[:far+1], epsilon)
	second := douglasPeucker(append(append([]Point(nil), pts[far:]...), pts[0]), epsilon)

	// Join halves without duplicating the shared endpoints.
	approx := append(first, second[1:len(second)-1]...)
	return approx
}

// douglasPeucker recursively simplifies an open polyline, keeping both
// endpoints.
func douglasPeucker(pts []Point, epsilon float64) []Point {
	if len(pts) < 3 {
		return append([]Point(nil), pts...)
	}

	maxDist := 0.0
	index := 0
	for i := 1; i < len(pts)-1; i++ {
		d := perpendicularDistance(pts[i], pts[0], pts[len(pts)-1])
		if d > maxDist {
			maxDist = d
			index = i
		}
	}

	if maxDist <= epsilon {
		return []Point{pts[0], pts[len(pts)-1]}
	}

	left := douglasPeucker(pts[:index+1], epsilon)
	right := douglasPeucker(pts[index:], epsilon)
	return append(left[:len(left)-1], right...)
}

// perpendicularDistance returns the distance from p to the line through a
// and b. Degenerate segments fall back to point distance.
func perpendicularDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / length
}
