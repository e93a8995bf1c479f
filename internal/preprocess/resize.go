package preprocess

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Fit scales an image down to fit within targetWidth x targetHeight while
// preserving aspect ratio. Images already inside the bounds are returned
// unchanged; Fit never upscales.
func Fit(img image.Image, targetWidth, targetHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	scale := math.Min(
		float64(targetWidth)/float64(width),
		float64(targetHeight)/float64(height),
	)
	if scale >= 1 {
		return img
	}

	newWidth := int(math.Round(float64(width) * scale))
	newHeight := int(math.Round(float64(height) * scale))
	return imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
}

// forceMinSize stretches any dimension below the pipeline floor up to it,
// without preserving aspect ratio. Used only in bypass mode in place of the
// too-small error.
func forceMinSize(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width >= MinDimension && height >= MinDimension {
		return img
	}
	if width < MinDimension {
		width = MinDimension
	}
	if height < MinDimension {
		height = MinDimension
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}
