package preprocess

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
)

// Bilateral applies an edge-preserving smoothing filter: each output pixel
// is a weighted average of its neighborhood where weights fall off with both
// spatial distance and color distance. Flat regions are smoothed aggressively
// while strong edges -- the card boundary the locator needs -- survive.
//
// Parameters follow the usual bilateral convention:
//   - diameter: Side length of the square neighborhood. Typical: 9.
//   - sigmaColor: Color-distance falloff in 0-255 intensity units. Larger
//     values mix more dissimilar colors together.
//   - sigmaSpace: Spatial falloff in pixels.
//
// The output intensity standard deviation never exceeds the input's, since
// every output pixel is a convex combination of input pixels.
func Bilateral(img image.Image, diameter int, sigmaColor, sigmaSpace float64) *image.RGBA {
	src := clone.AsRGBA(img)
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	radius := diameter / 2
	if radius < 1 {
		radius = 1
	}

	// Spatial weights depend only on the offset; precompute the window.
	spatial := make([]float64, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+radius)*(2*radius+1)+(dx+radius)] = math.Exp(-d2 / (2 * sigmaSpace * sigmaSpace))
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	twoSigmaColor2 := 2 * sigmaColor * sigmaColor

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ci := y*src.Stride + x*4
			cr := float64(src.Pix[ci])
			cg := float64(src.Pix[ci+1])
			cb := float64(src.Pix[ci+2])

			var sumR, sumG, sumB, sumW float64
			for dy := -radius; dy <= radius; dy++ {
				ny := y + dy
				if ny < 0 || ny >= height {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if nx < 0 || nx >= width {
						continue
					}
					ni := ny*src.Stride + nx*4
					nr := float64(src.Pix[ni])
					ng := float64(src.Pix[ni+1])
					nb := float64(src.Pix[ni+2])

					dr := nr - cr
					dg := ng - cg
					db := nb - cb
					colorDist2 := dr*dr + dg*dg + db*db

					w := spatial[(dy+radius)*(2*radius+1)+(dx+radius)] *
						math.Exp(-colorDist2/twoSigmaColor2)

					sumR += nr * w
					sumG += ng * w
					sumB += nb * w
					sumW += w
				}
			}

			oi := y*out.Stride + x*4
			out.Pix[oi] = uint8(sumR/sumW + 0.5)
			out.Pix[oi+1] = uint8(sumG/sumW + 0.5)
			out.Pix[oi+2] = uint8(sumB/sumW + 0.5)
			out.Pix[oi+3] = src.Pix[ci+3]
		}
	}
	return out
}
