package preprocess

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/Nengock/katepeh/internal/imaging"
)

func noisyImage(width, height int, base uint8, amplitude int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := int(base) + rng.Intn(2*amplitude+1) - amplitude
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			img.SetRGBA(x, y, color.RGBA{uint8(v), uint8(v), uint8(v), 255})
		}
	}
	return img
}

func TestBilateralReducesNoise(t *testing.T) {
	img := noisyImage(64, 64, 128, 40, 1)

	before := imaging.StdDev(img)
	out := Bilateral(img, 9, 75, 75)
	after := imaging.StdDev(out)

	if after > before {
		t.Errorf("noise grew: std %.2f -> %.2f", before, after)
	}
	if after > before*0.9 {
		t.Errorf("smoothing too weak: std %.2f -> %.2f", before, after)
	}
}

func TestBilateralPreservesSize(t *testing.T) {
	img := noisyImage(40, 30, 100, 10, 2)
	out := Bilateral(img, 9, 75, 75)

	if got := out.Bounds(); got.Dx() != 40 || got.Dy() != 30 {
		t.Errorf("bounds: got %v, want 40x30", got)
	}
}

func TestBilateralFlatImageUnchanged(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.SetRGBA(x, y, color.RGBA{90, 120, 150, 255})
		}
	}

	out := Bilateral(img, 9, 75, 75)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if out.RGBAAt(x, y) != (color.RGBA{90, 120, 150, 255}) {
				t.Fatalf("pixel (%d,%d) changed: %v", x, y, out.RGBAAt(x, y))
			}
		}
	}
}
