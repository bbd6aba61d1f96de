package geometry

import "studyhub/internal/domain"

// ─────────────────────────────────────────────────────────────
// Coordinate transforms
// ─────────────────────────────────────────────────────────────
//
// The frontend renders the scene with `translate(cam.X, cam.Y)
// scale(cam.Zoom)`. ScreenToWorld is the exact inverse of that
// transform, so a pointer position maps back onto the block it is
// visually over.

// Point is a 2D coordinate in either space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScreenToWorld converts a pointer position (viewport pixels) to
// world coordinates. originX/originY is the canvas container's
// top-left corner in viewport pixels.
func ScreenToWorld(pointerX, pointerY, originX, originY float64, cam domain.Camera) Point {
	return Point{
		X: (pointerX - originX - cam.X) / cam.Zoom,
		Y: (pointerY - originY - cam.Y) / cam.Zoom,
	}
}

// WorldToScreen converts a world coordinate back to viewport pixels.
func WorldToScreen(worldX, worldY, originX, originY float64, cam domain.Camera) Point {
	return Point{
		X: worldX*cam.Zoom + cam.X + originX,
		Y: worldY*cam.Zoom + cam.Y + originY,
	}
}

// ClampZoom bounds a zoom factor to [min, max].
func ClampZoom(zoom, min, max float64) float64 {
	if zoom < min {
		return min
	}
	if zoom > max {
		return max
	}
	return zoom
}
