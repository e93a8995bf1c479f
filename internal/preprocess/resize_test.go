package preprocess

import (
	"image"
	"testing"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name                 string
		width, height        int
		wantWidth, wantHeight int
	}{
		{"exact fit unchanged", 800, 500, 800, 500},
		{"smaller unchanged", 320, 240, 320, 240},
		{"wide downscale", 1600, 1000, 800, 500},
		{"width bound", 1600, 500, 800, 250},
		{"height bound", 800, 1000, 400, 500},
		{"huge", 4000, 3000, 667, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.width, tt.height))
			out := Fit(img, 800, 500)

			bounds := out.Bounds()
			if bounds.Dx() != tt.wantWidth || bounds.Dy() != tt.wantHeight {
				t.Errorf("got %dx%d, want %dx%d",
					bounds.Dx(), bounds.Dy(), tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestFitNeverUpscales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	out := Fit(img, 800, 500)
	if out != image.Image(img) {
		t.Error("small image was not returned unchanged")
	}
}

func TestForceMinSize(t *testing.T) {
	tests := []struct {
		name                  string
		width, height         int
		wantWidth, wantHeight int
	}{
		{"both small", 50, 50, 100, 100},
		{"width small", 50, 200, 100, 200},
		{"height small", 200, 50, 200, 100},
		{"large unchanged", 200, 200, 200, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.width, tt.height))
			out := forceMinSize(img)

			bounds := out.Bounds()
			if bounds.Dx() != tt.wantWidth || bounds.Dy() != tt.wantHeight {
				t.Errorf("got %dx%d, want %dx%d",
					bounds.Dx(), bounds.Dy(), tt.wantWidth, tt.wantHeight)
			}
		})
	}
}
