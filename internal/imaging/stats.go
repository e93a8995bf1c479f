package imaging

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// LuminancePlane flattens an image into a slice of BT.601 luminance values,
// one float64 per pixel, in row-major order.
func LuminancePlane(img image.Image) []float64 {
	bounds := img.Bounds()
	plane := make([]float64, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			plane = append(plane, 0.299*float64(r>>8)+0.587*float64(g>>8)+0.114*float64(b>>8))
		}
	}
	return plane
}

// Mean returns the mean luminance of an image on the 0-255 scale.
func Mean(img image.Image) float64 {
	return stat.Mean(LuminancePlane(img), nil)
}

// StdDev returns the luminance standard deviation of an image on the 0-255
// scale. A flat image has a standard deviation of 0.
func StdDev(img image.Image) float64 {
	plane := LuminancePlane(img)
	if len(plane) < 2 {
		return 0
	}
	return stat.StdDev(plane, nil)
}
