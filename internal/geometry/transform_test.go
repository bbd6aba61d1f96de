package geometry

import (
	"math"
	"testing"

	"studyhub/internal/domain"
)

func TestScreenToWorld_IdentityCamera(t *testing.T) {
	cam := domain.Camera{X: 0, Y: 0, Zoom: 1}
	p := ScreenToWorld(250, 130, 0, 0, cam)
	if p.X != 250 || p.Y != 130 {
		t.Errorf("expected (250, 130), got (%.2f, %.2f)", p.X, p.Y)
	}
}

func TestScreenToWorld_PanAndZoom(t *testing.T) {
	tests := []struct {
		name           string
		px, py, ox, oy float64
		cam            domain.Camera
		wantX, wantY   float64
	}{
		{"pan only", 300, 200, 0, 0, domain.Camera{X: 100, Y: 50, Zoom: 1}, 200, 150},
		{"zoom only", 300, 200, 0, 0, domain.Camera{Zoom: 2}, 150, 100},
		{"pan and zoom", 300, 200, 0, 0, domain.Camera{X: 100, Y: 50, Zoom: 0.5}, 400, 300},
		{"container origin", 300, 200, 40, 60, domain.Camera{Zoom: 1}, 260, 140},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ScreenToWorld(tt.px, tt.py, tt.ox, tt.oy, tt.cam)
			if p.X != tt.wantX || p.Y != tt.wantY {
				t.Errorf("got (%.2f, %.2f), want (%.2f, %.2f)", p.X, p.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

// Round-trip must hold for arbitrary camera states within float tolerance.
func TestCoordinateRoundTrip(t *testing.T) {
	cams := []domain.Camera{
		{X: 0, Y: 0, Zoom: 1},
		{X: -340.5, Y: 912.25, Zoom: 0.1},
		{X: 57, Y: -33, Zoom: 3},
		{X: 1e4, Y: -1e4, Zoom: 0.73},
	}
	points := [][2]float64{{0, 0}, {13.37, -42.42}, {1920, 1080}, {-500.5, 2.125}}

	for _, cam := range cams {
		for _, pt := range points {
			w := ScreenToWorld(pt[0], pt[1], 12, 34, cam)
			s := WorldToScreen(w.X, w.Y, 12, 34, cam)
			if math.Abs(s.X-pt[0]) > 1e-9 || math.Abs(s.Y-pt[1]) > 1e-9 {
				t.Errorf("round trip drifted: cam=%+v point=(%v,%v) got (%v,%v)",
					cam, pt[0], pt[1], s.X, s.Y)
			}
		}
	}
}

func TestClampZoom(t *testing.T) {
	tests := []struct {
		zoom, min, max, want float64
	}{
		{0.05, 0.1, 3.0, 0.1},
		{5.0, 0.1, 3.0, 3.0},
		{1.5, 0.1, 3.0, 1.5},
		{0.5, 0.5, 2.0, 0.5},
	}
	for _, tt := range tests {
		if got := ClampZoom(tt.zoom, tt.min, tt.max); got != tt.want {
			t.Errorf("ClampZoom(%v, %v, %v) = %v, want %v", tt.zoom, tt.min, tt.max, got, tt.want)
		}
	}
}
