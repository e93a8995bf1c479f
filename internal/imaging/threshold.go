package imaging

import (
	"image"
	"math"
)

// AdaptiveThreshold binarizes a grayscale image against a locally computed
// cutoff instead of a single global one, which keeps card boundaries visible
// under uneven lighting.
//
// For each pixel, a Gaussian-weighted mean of the surrounding block x block
// window is computed; the pixel becomes 255 when its value exceeds that mean
// minus the bias constant c, and 0 otherwise.
//
// Parameters:
//   - gray: Source grayscale image.
//   - block: Side length of the local window. Must be odd and >= 3; even or
//     smaller values are bumped to the nearest valid size. Typical: 11.
//   - c: Constant subtracted from the weighted mean. Typical: 2.
func AdaptiveThreshold(gray *image.Gray, block int, c float64) *image.Gray {
	if block < 3 {
		block = 3
	}
	if block%2 == 0 {
		block++
	}
	radius := block / 2

	kernel := gaussianKernel1D(block)

	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Separable pass: horizontal then vertical weighted means.
	horiz := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				px := clamp(x+k, 0, width-1)
				sum += float64(gray.GrayAt(px+bounds.Min.X, y+bounds.Min.Y).Y) * kernel[k+radius]
			}
			horiz[y*width+x] = sum
		}
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var mean float64
			for k := -radius; k <= radius; k++ {
				py := clamp(y+k, 0, height-1)
				mean += horiz[py*width+x] * kernel[k+radius]
			}
			v := float64(gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)
			if v > mean-c {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// gaussianKernel1D builds a normalized 1D Gaussian kernel of the given odd
// size, with sigma derived from the size the same way OpenCV derives it:
// sigma = 0.3*((size-1)*0.5 - 1) + 0.8.
func gaussianKernel1D(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	radius := size / 2

	kernel := make([]float64, size)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
