// Package warp applies projective transforms that map a located card
// quadrilateral onto an axis-aligned target rectangle.
package warp

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/Nengock/katepeh/internal/detect"
)

// Matrix is a 3x3 projective transform in row-major order.
type Matrix [9]float64

// Apply maps a point through the transform, performing the perspective
// divide. Points mapped to the line at infinity return far out-of-bounds
// coordinates so bilinear sampling rejects them.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	denom := m[6]*x + m[7]*y + m[8]
	if denom == 0 {
		return -1e9, -1e9
	}
	sx := (m[0]*x + m[1]*y + m[2]) / denom
	sy := (m[3]*x + m[4]*y + m[5]) / denom
	return sx, sy
}

// Homography computes the 3x3 projective matrix mapping src[i] to dst[i] for
// four point correspondences. Returns an error when the correspondence is
// degenerate (three or more collinear points).
//
// The matrix is found by solving the standard 8x8 linear system for the
// eight unknowns h00..h21 with h22 fixed at 1, using Gaussian elimination
// with partial pivoting.
func Homography(src, dst detect.Quad) (Matrix, error) {
	var a [8][8]float64
	var b [8]float64

	for i := 0; i < 4; i++ {
		sx, sy := src[i].X, src[i].Y
		dx, dy := dst[i].X, dst[i].Y
		r := 2 * i

		// dx = (h00 sx + h01 sy + h02) / (h20 sx + h21 sy + 1)
		a[r] = [8]float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx}
		b[r] = dx

		// dy = (h10 sx + h11 sy + h12) / (h20 sx + h21 sy + 1)
		a[r+1] = [8]float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy}
		b[r+1] = dy
	}

	h, ok := solve(a, b)
	if !ok {
		return Matrix{}, errors.New("degenerate quadrilateral: no unique projective transform")
	}
	return Matrix{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}, nil
}

// Perspective warps the quadrilateral region srcQuad of img onto a new
// width x height image, sampling bilinearly through the inverse transform.
// Destination corners are (0,0), (width-1,0), (width-1,height-1) and
// (0,height-1), matching srcQuad's canonical corner order.
func Perspective(img image.Image, srcQuad detect.Quad, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("target dimensions must be positive")
	}

	dst := detect.Quad{
		{X: 0, Y: 0},
		{X: float64(width - 1), Y: 0},
		{X: float64(width - 1), Y: float64(height - 1)},
		{X: 0, Y: float64(height - 1)},
	}

	// Invert the mapping by computing dst -> src directly, so every output
	// pixel pulls from a source location.
	inv, err := Homography(dst, srcQuad)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx, sy := inv.Apply(float64(x), float64(y))
			out.Set(x, y, bilinear(img, sx+float64(bounds.Min.X), sy+float64(bounds.Min.Y)))
		}
	}
	return out, nil
}

// bilinear samples img at a fractional coordinate, blending the four
// surrounding pixels. Samples outside the image resolve to black.
func bilinear(img image.Image, x, y float64) color.Color {
	b := img.Bounds()
	if x < float64(b.Min.X) || y < float64(b.Min.Y) || x > float64(b.Max.X-1) || y > float64(b.Max.Y-1) {
		return color.RGBA{A: 255}
	}

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 >= b.Max.X {
		x1 = b.Max.X - 1
	}
	if y1 >= b.Max.Y {
		y1 = b.Max.Y - 1
	}
	fx := x - float64(x0)
	fy := y - float64(y0)

	r00, g00, b00, _ := img.At(x0, y0).RGBA()
	r10, g10, b10, _ := img.At(x1, y0).RGBA()
	r01, g01, b01, _ := img.At(x0, y1).RGBA()
	r11, g11, b11, _ := img.At(x1, y1).RGBA()

	lerp2 := func(v00, v10, v01, v11 uint32) uint8 {
		top := float64(v00)*(1-fx) + float64(v10)*fx
		bot := float64(v01)*(1-fx) + float64(v11)*fx
		return uint8(uint32(top*(1-fy)+bot*fy) >> 8)
	}

	return color.RGBA{
		R: lerp2(r00, r10, r01, r11),
		G: lerp2(g00, g10, g01, g11),
		B: lerp2(b00, b10, b01, b11),
		A: 255,
	}
}

// solve performs Gaussian elimination with partial pivoting on an 8x8
// system, reducing it to the identity in place.
func solve(a [8][8]float64, b [8]float64) ([8]float64, bool) {
	for col := 0; col < 8; col++ {
		// Pivot on the row with the largest magnitude in this column.
		pivot := col
		maxAbs := math.Abs(a[col][col])
		for r := col + 1; r < 8; r++ {
			if v := math.Abs(a[r][col]); v > maxAbs {
				maxAbs = v
				pivot = r
			}
		}
		if maxAbs == 0 {
			return [8]float64{}, false
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			b[col], b[pivot] = b[pivot], b[col]
		}

		div := a[col][col]
		for c := col; c < 8; c++ {
			a[col][c] /= div
		}
		b[col] /= div

		for r := 0; r < 8; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			factor := a[r][col]
			for c := col; c < 8; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}
	return b, true
}
