package preprocess

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// Contrast-enhancement constants. The clip limit and tile grid follow the
// usual CLAHE defaults for document images; the stretch gain doubles the
// spread of luminance around its mean.
const (
	claheClipLimit = 3.0
	claheTiles     = 8
	stretchGain    = 2.0
)

// EnhanceContrast improves luminance contrast without materially shifting
// hue.
//
// The image is split into CIE-Lab luminance and chrominance; fully
// transparent pixels are composited onto a white background. The luminance
// channel gets tile-based, clip-limited histogram equalization (CLAHE)
// followed by a global linear stretch around its mean with a fixed gain,
// clipped to the valid range. The original chrominance channels are then
// recombined and the result converted back to RGB.
//
// For any non-constant input the output luminance standard deviation is at
// least the input's; a flat input is returned unchanged up to rounding.
func EnhanceContrast(img image.Image) (*image.RGBA, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	n := width * height

	// Split into Lab planes. Luminance is quantized to 0-255 for the
	// histogram stages.
	lum := make([]uint8, n)
	chromaA := make([]float64, n)
	chromaB := make([]float64, n)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, ok := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			if !ok {
				// zero alpha: composite onto a white background
				c = colorful.Color{R: 1, G: 1, B: 1}
			}
			l, a, b := c.Lab()
			lum[y*width+x] = quantizeLum(l)
			chromaA[y*width+x] = a
			chromaB[y*width+x] = b
		}
	}

	if isFlat(lum) {
		return recombine(lum, chromaA, chromaB, width, height), nil
	}

	equalized := clahe(lum, width, height, claheTiles, claheClipLimit)

	// Global linear stretch around the mean.
	plane := make([]float64, n)
	for i, v := range equalized {
		plane[i] = float64(v)
	}
	mean := stat.Mean(plane, nil)

	stretched := make([]uint8, n)
	for i, v := range plane {
		stretched[i] = clampLum((v-mean)*stretchGain + mean)
	}

	return recombine(stretched, chromaA, chromaB, width, height), nil
}

// quantizeLum maps a Lab luminance in [0,1] to a 0-255 bin.
func quantizeLum(l float64) uint8 {
	return clampLum(l * 255)
}

// clampLum rounds and clips a luminance value to the valid 0-255 range.
func clampLum(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// isFlat reports whether every luminance value is identical.
func isFlat(lum []uint8) bool {
	for _, v := range lum[1:] {
		if v != lum[0] {
			return false
		}
	}
	return true
}

// recombine rebuilds an RGB image from a luminance plane and the original
// chrominance planes.
func recombine(lum []uint8, chromaA, chromaB []float64, width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			c := colorful.Lab(float64(lum[i])/255, chromaA[i], chromaB[i]).Clamped()
			r, g, b := c.RGB255()
			oi := y*out.Stride + x*4
			out.Pix[oi] = r
			out.Pix[oi+1] = g
			out.Pix[oi+2] = b
			out.Pix[oi+3] = 255
		}
	}
	return out
}

// clahe performs clip-limited adaptive histogram equalization on a
// luminance plane.
//
// The plane is divided into a tiles x tiles grid. Each tile gets its own
// clipped histogram and equalization mapping; the excess above the clip
// limit is redistributed evenly across all bins before the cumulative
// mapping is built. Every pixel is then remapped by bilinear interpolation
// between the mappings of the four nearest tile centers, which removes the
// block seams plain tiled equalization would produce.
func clahe(lum []uint8, width, height, tiles int, clipLimit float64) []uint8 {
	tileW := (width + tiles - 1) / tiles
	tileH := (height + tiles - 1) / tiles

	// Build one 256-entry mapping per tile.
	mappings := make([][256]uint8, tiles*tiles)
	for ty := 0; ty < tiles; ty++ {
		for tx := 0; tx < tiles; tx++ {
			x0 := tx * tileW
			y0 := ty * tileH
			x1 := minInt(x0+tileW, width)
			y1 := minInt(y0+tileH, height)

			var hist [256]float64
			count := 0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					hist[lum[y*width+x]]++
					count++
				}
			}
			if count == 0 {
				continue
			}

			// Clip the histogram and redistribute the excess evenly.
			limit := clipLimit * float64(count) / 256
			if limit < 1 {
				limit = 1
			}
			var excess float64
			for i := range hist {
				if hist[i] > limit {
					excess += hist[i] - limit
					hist[i] = limit
				}
			}
			bonus := excess / 256
			for i := range hist {
				hist[i] += bonus
			}

			// Cumulative mapping normalized to 0-255.
			var cdf float64
			var m [256]uint8
			for i := range hist {
				cdf += hist[i]
				m[i] = clampLum(cdf / float64(count) * 255)
			}
			mappings[ty*tiles+tx] = m
		}
	}

	// Remap each pixel, interpolating between the four surrounding tile
	// mappings.
	out := make([]uint8, len(lum))
	for y := 0; y < height; y++ {
		// Position relative to tile centers.
		fy := (float64(y)-float64(tileH)/2 + 0.5) / float64(tileH)
		ty0 := int(math.Floor(fy))
		wy := fy - float64(ty0)
		ty1 := ty0 + 1
		ty0 = clampTile(ty0, tiles)
		ty1 = clampTile(ty1, tiles)

		for x := 0; x < width; x++ {
			fx := (float64(x)-float64(tileW)/2 + 0.5) / float64(tileW)
			tx0 := int(math.Floor(fx))
			wx := fx - float64(tx0)
			tx1 := tx0 + 1
			tx0 = clampTile(tx0, tiles)
			tx1 = clampTile(tx1, tiles)

			v := lum[y*width+x]
			top := (1-wx)*float64(mappings[ty0*tiles+tx0][v]) + wx*float64(mappings[ty0*tiles+tx1][v])
			bot := (1-wx)*float64(mappings[ty1*tiles+tx0][v]) + wx*float64(mappings[ty1*tiles+tx1][v])
			out[y*width+x] = clampLum((1-wy)*top + wy*bot)
		}
	}
	return out
}

func clampTile(t, tiles int) int {
	if t < 0 {
		return 0
	}
	if t >= tiles {
		return tiles - 1
	}
	return t
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
