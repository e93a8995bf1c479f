package imaging

import (
	"image"
	"image/color"
)

// Grayscale converts any image to an 8-bit grayscale image using ITU-R BT.601
// luminance weights (0.299*R + 0.587*G + 0.114*B).
//
// The output shares the bounds of the input but is always re-origined at
// (0,0) so downstream index arithmetic stays simple.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			out.SetGray(x, y, color.Gray{Y: uint8(lum + 0.5)})
		}
	}
	return out
}

// Binarize maps every pixel of a grayscale image to 0 or 255 using a fixed
// cutoff. Pixels strictly greater than the cutoff become 255.
func Binarize(gray *image.Gray, cutoff uint8) *image.Gray {
	out := image.NewGray(gray.Bounds())
	for i, v := range gray.Pix {
		if v > cutoff {
			out.Pix[i] = 255
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
