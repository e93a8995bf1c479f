package detect

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func filledRect(width, height int, r image.Rectangle) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

func TestContourAreaPerimeter(t *testing.T) {
	square := Contour{Points: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	if got := square.Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("Area: got %.2f, want 100", got)
	}
	if got := square.Perimeter(); math.Abs(got-40) > 1e-9 {
		t.Errorf("Perimeter: got %.2f, want 40", got)
	}

	// Orientation must not matter.
	reversed := Contour{Points: []Point{{0, 10}, {10, 10}, {10, 0}, {0, 0}}}
	if got := reversed.Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("reversed Area: got %.2f, want 100", got)
	}
}

func TestFindContoursSingleSquare(t *testing.T) {
	bin := filledRect(40, 40, image.Rect(10, 10, 30, 30))

	contours := FindContours(bin)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}

	// Boundary polygon of a 20x20 pixel block encloses 19x19 pixel centers.
	area := contours[0].Area()
	if area < 300 || area > 420 {
		t.Errorf("area: got %.1f, want near 361", area)
	}
}

func TestFindContoursSeparatesComponents(t *testing.T) {
	bin := filledRect(60, 30, image.Rect(5, 5, 25, 25))
	for y := 5; y < 25; y++ {
		for x := 35; x < 55; x++ {
			bin.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	contours := FindContours(bin)
	if len(contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(contours))
	}
	if contours[0].Area() < contours[1].Area() {
		t.Error("contours not sorted by descending area")
	}
}

func TestFindContoursEmpty(t *testing.T) {
	bin := image.NewGray(image.Rect(0, 0, 20, 20))
	if contours := FindContours(bin); len(contours) != 0 {
		t.Errorf("blank image: got %d contours, want 0", len(contours))
	}
}

func TestApproxPolygonRectangle(t *testing.T) {
	// Dense rectangle boundary, traced clockwise.
	var pts []Point
	for x := 0; x <= 30; x++ {
		pts = append(pts, Point{float64(x), 0})
	}
	for y := 1; y <= 20; y++ {
		pts = append(pts, Point{30, float64(y)})
	}
	for x := 29; x >= 0; x-- {
		pts = append(pts, Point{float64(x), 20})
	}
	for y := 19; y >= 1; y-- {
		pts = append(pts, Point{0, float64(y)})
	}

	approx := ApproxPolygon(Contour{Points: pts}, 2)
	if len(approx) != 4 {
		t.Fatalf("got %d vertices, want 4: %v", len(approx), approx)
	}
}

func TestConvexHull(t *testing.T) {
	pts := []Point{
		{0, 0}, {10, 0}, {10, 10}, {0, 10},
		{5, 5}, {3, 7}, // interior
	}
	hull := ConvexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("got %d hull points, want 4: %v", len(hull), hull)
	}
	for _, p := range hull {
		if p == (Point{5, 5}) || p == (Point{3, 7}) {
			t.Errorf("interior point %v on hull", p)
		}
	}
}

func TestOrderQuad(t *testing.T) {
	want := Quad{{10, 10}, {90, 20}, {80, 70}, {5, 60}}

	// Feed the corners in every rotation; ordering must be stable.
	perms := [][4]Point{
		{want[0], want[1], want[2], want[3]},
		{want[2], want[0], want[3], want[1]},
		{want[3], want[2], want[1], want[0]},
	}
	for i, perm := range perms {
		got := OrderQuad(perm)
		if got != want {
			t.Errorf("perm %d: got %v, want %v", i, got, want)
		}
	}
}

func TestLocateFindsCard(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for y := 50; y < 250; y++ {
		for x := 50; x < 350; x++ {
			img.SetRGBA(x, y, color.RGBA{230, 230, 230, 255})
		}
	}

	res := Locate(img, 1000)
	if !res.Found {
		t.Fatalf("card not found: %s", res.Reason)
	}
	if res.Area < 30000 {
		t.Errorf("area: got %.0f, want near 60000", res.Area)
	}

	wantCorners := Quad{{50, 50}, {349, 50}, {349, 249}, {50, 249}}
	for i, c := range res.Quad {
		dx, dy := c.X-wantCorners[i].X, c.Y-wantCorners[i].Y
		if math.Hypot(dx, dy) > 15 {
			t.Errorf("corner %d: got %v, want near %v", i, c, wantCorners[i])
		}
	}
}

func TestLocateBlankImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))

	res := Locate(img, 1000)
	if res.Found {
		t.Fatal("card reported on a blank image")
	}
	if res.Reason == "" {
		t.Error("missing reason on a not-found result")
	}
}

func TestLocateRespectsMinArea(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for y := 90; y < 110; y++ {
		for x := 90; x < 110; x++ {
			img.SetRGBA(x, y, color.RGBA{240, 240, 240, 255})
		}
	}

	if res := Locate(img, 5000); res.Found {
		t.Errorf("tiny blob accepted against minArea=5000, area %.0f", res.Area)
	}
}
