package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
)

// GaussianBlur smooths a grayscale image with a Gaussian kernel of the given
// radius. A radius of 2 corresponds to the 5x5 kernel used ahead of edge
// detection.
func GaussianBlur(gray *image.Gray, radius float64) *image.Gray {
	return Grayscale(blur.Gaussian(gray, radius))
}
