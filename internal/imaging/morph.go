package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// MorphClose performs a morphological close (dilate then erode) on a binary
// image, filling small gaps and holes. The radius corresponds to half the
// structuring-element side, so radius 2 matches a 5x5 kernel.
func MorphClose(bin *image.Gray, radius float64) *image.Gray {
	return Binarize(Grayscale(effect.Erode(effect.Dilate(bin, radius), radius)), 127)
}

// MorphOpen performs a morphological open (erode then dilate) on a binary
// image, removing speckle noise smaller than the structuring element.
func MorphOpen(bin *image.Gray, radius float64) *image.Gray {
	return Binarize(Grayscale(effect.Dilate(effect.Erode(bin, radius), radius)), 127)
}

// Dilate grows the set regions of a binary image by the given radius. Used to
// bridge small breaks in edge maps before contour extraction.
func Dilate(bin *image.Gray, radius float64) *image.Gray {
	return Binarize(Grayscale(effect.Dilate(bin, radius)), 127)
}

// Or combines two binary images of identical dimensions; a pixel is set in
// the result when it is set in either input.
func Or(a, b *image.Gray) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, a.Bounds().Dx(), a.Bounds().Dy()))
	copy(out.Pix, a.Pix)
	for i, v := range b.Pix {
		if v > 127 {
			out.Pix[i] = 255
		}
	}
	return out
}
