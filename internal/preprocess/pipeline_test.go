package preprocess

import (
	"image"
	"image/color"
	"testing"
)

func cardScene(width, height int, corners [4][2]int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{15, 15, 15, 255})
		}
	}

	// Fill the convex quadrilateral by half-plane tests against each edge.
	inside := func(x, y int) bool {
		for i := 0; i < 4; i++ {
			x1, y1 := corners[i][0], corners[i][1]
			x2, y2 := corners[(i+1)%4][0], corners[(i+1)%4][1]
			if (x2-x1)*(y-y1)-(y2-y1)*(x-x1) < 0 {
				return false
			}
		}
		return true
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if inside(x, y) {
				img.SetRGBA(x, y, color.RGBA{225, 225, 225, 255})
			}
		}
	}
	return img
}

func TestProcessNilInputStrict(t *testing.T) {
	p := New(DefaultConfig())

	_, err := p.Process(nil)
	if err == nil {
		t.Fatal("expected an error for nil input")
	}
	if !IsKind(err, KindInvalidInput) {
		t.Errorf("got %v, want kind %s", err, KindInvalidInput)
	}
}

func TestProcessNilInputBypass(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bypass = true
	p := New(cfg)

	out, err := p.Process(nil)
	if err != nil {
		t.Fatalf("bypass mode returned an error: %v", err)
	}
	if out != nil {
		t.Errorf("got %v, want nil image", out)
	}
}

func TestProcessTooSmallStrict(t *testing.T) {
	p := New(DefaultConfig())
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))

	_, err := p.Process(img)
	if err == nil {
		t.Fatal("expected an error for a 50x50 frame")
	}
	if !IsKind(err, KindImageTooSmall) {
		t.Errorf("got %v, want kind %s", err, KindImageTooSmall)
	}
}

func TestProcessTooSmallBypass(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bypass = true
	p := New(cfg)
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))

	out, err := p.Process(img)
	if err != nil {
		t.Fatalf("bypass mode returned an error: %v", err)
	}
	bounds := out.Bounds()
	if bounds.Dx() < MinDimension || bounds.Dy() < MinDimension {
		t.Errorf("got %dx%d, want at least %dx%d",
			bounds.Dx(), bounds.Dy(), MinDimension, MinDimension)
	}
}

func TestProcessInvalidConfigStrict(t *testing.T) {
	p := New(Config{TargetWidth: 0, TargetHeight: 500, MinArea: 5000})
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))

	_, err := p.Process(img)
	if !IsKind(err, KindInvalidInput) {
		t.Errorf("got %v, want kind %s", err, KindInvalidInput)
	}
}

func TestProcessBlankImageStrict(t *testing.T) {
	// No card anywhere: the search must degrade to the uncorrected frame,
	// not fail.
	p := New(DefaultConfig())
	img := image.NewRGBA(image.Rect(0, 0, 640, 400))
	for i := range img.Pix {
		img.Pix[i] = 128
	}

	out, err := p.Process(img)
	if err != nil {
		t.Fatalf("blank frame errored: %v", err)
	}
	bounds := out.Bounds()
	if bounds.Dx() != 640 || bounds.Dy() != 400 {
		t.Errorf("got %dx%d, want 640x400", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessSkewedCard(t *testing.T) {
	img := cardScene(800, 500, [4][2]int{{100, 50}, {700, 100}, {650, 400}, {150, 450}})
	p := New(DefaultConfig())

	out, err := p.Process(img)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	bounds := out.Bounds()
	if bounds.Dx() != 800 || bounds.Dy() != 500 {
		t.Errorf("got %dx%d, want 800x500", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessSkewedCardLocated(t *testing.T) {
	img := cardScene(800, 500, [4][2]int{{100, 50}, {700, 100}, {650, 400}, {150, 450}})
	p := New(DefaultConfig())

	res := p.LocateCard(img)
	if !res.Found {
		t.Fatalf("card not located: %s", res.Reason)
	}
	if res.Area < 100000 {
		t.Errorf("area: got %.0f, want a large card region", res.Area)
	}
}

func TestProcessBypassSkipsCorrection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bypass = true
	p := New(cfg)

	img := cardScene(1600, 1000, [4][2]int{{200, 100}, {1400, 200}, {1300, 800}, {300, 900}})
	out, err := p.Process(img)
	if err != nil {
		t.Fatalf("bypass mode returned an error: %v", err)
	}

	// Bypass still resizes to the working bounds but leaves the card skewed.
	bounds := out.Bounds()
	if bounds.Dx() != 800 || bounds.Dy() != 500 {
		t.Errorf("got %dx%d, want 800x500", bounds.Dx(), bounds.Dy())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero width", Config{TargetHeight: 500, MinArea: 5000}, true},
		{"negative height", Config{TargetWidth: 800, TargetHeight: -1, MinArea: 5000}, true},
		{"zero min area", Config{TargetWidth: 800, TargetHeight: 500}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
