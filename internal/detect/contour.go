package detect

import (
	"image"
	"math"
	"sort"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X float64 `json:"x"` // Horizontal position (0 = leftmost)
	Y float64 `json:"y"` // Vertical position (0 = topmost)
}

// Contour is an ordered closed boundary traced around one connected region
// of a binary image. Consecutive points are 8-connected neighbors; the last
// point connects back to the first.
type Contour struct {
	Points []Point
}

// Area returns the enclosed area of the contour in square pixels, computed
// with the shoelace formula. The result is always non-negative.
func (c Contour) Area() float64 {
	n := len(c.Points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		p := c.Points[i]
		q := c.Points[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the length of the closed boundary polyline.
func (c Contour) Perimeter() float64 {
	n := len(c.Points)
	if n < 2 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		p := c.Points[i]
		q := c.Points[(i+1)%n]
		sum += math.Hypot(q.X-p.X, q.Y-p.Y)
	}
	return sum
}

// mooreDirs enumerates the 8 neighbors in clockwise order starting from west.
var mooreDirs = [8][2]int{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// FindContours extracts the outer boundary of every connected set region in
// a binary image and returns the resulting contours sorted by enclosed area,
// largest first.
//
// Boundaries are traced with Moore-neighbor tracing (8-connectivity); each
// connected component contributes exactly one external contour. Components
// smaller than a few pixels produce degenerate boundaries and are discarded.
func FindContours(bin *image.Gray) []Contour {
	bounds := bin.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	on := func(x, y int) bool {
		if x < 0 || x >= width || y < 0 || y >= height {
			return false
		}
		return bin.Pix[y*bin.Stride+x] > 127
	}

	visited := make([]bool, width*height)
	contours := make([]Contour, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !on(x, y) || visited[y*width+x] {
				continue
			}
			boundary := traceBoundary(on, x, y, width, height)
			markComponent(on, visited, x, y, width, height)
			if len(boundary) >= 4 {
				contours = append(contours, Contour{Points: boundary})
			}
		}
	}

	sort.Slice(contours, func(i, j int) bool {
		return contours[i].Area() > contours[j].Area()
	})
	return contours
}

// traceBoundary walks the outer boundary of the component containing the
// start pixel using Moore-neighbor tracing. The start pixel is the first set
// pixel of its component in scan order, so its west neighbor is guaranteed
// unset and tracing begins from there.
func traceBoundary(on func(x, y int) bool, startX, startY, width, height int) []Point {
	boundary := []Point{{X: float64(startX), Y: float64(startY)}}

	// Direction index of the neighbor we entered from (west of start).
	backtrack := 0
	curX, curY := startX, startY

	// A closed boundary revisits the start with the same backtrack direction.
	// The iteration cap guards against pathological single-pixel spurs.
	maxSteps := 4 * width * height
	for step := 0; step < maxSteps; step++ {
		found := false
		dir := backtrack
		for i := 0; i < 8; i++ {
			dir = (dir + 1) % 8
			nx := curX + mooreDirs[dir][0]
			ny := curY + mooreDirs[dir][1]
			if on(nx, ny) {
				// Re-enter the next pixel from the neighbor just before it.
				backtrack = (dir + 4) % 8
				curX, curY = nx, ny
				found = true
				break
			}
		}
		if !found {
			// Isolated pixel.
			return boundary
		}
		if curX == startX && curY == startY {
			return boundary
		}
		boundary = append(boundary, Point{X: float64(curX), Y: float64(curY)})
	}
	return boundary
}

// markComponent flood-fills the connected component containing (startX,
// startY), marking every pixel visited so the component is traced only once.
// Uses an explicit stack to avoid recursion depth limits on large regions.
func markComponent(on func(x, y int) bool, visited []bool, startX, startY, width, height int) {
	stack := [][2]int{{startX, startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := p[0], p[1]
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		if visited[y*width+x] || !on(x, y) {
			continue
		}
		visited[y*width+x] = true

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, [2]int{x + dx, y + dy})
			}
		}
	}
}
