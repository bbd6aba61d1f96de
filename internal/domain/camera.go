package domain

// Camera is the pan+zoom transform applied when projecting
// world-space onto the screen: translate(X, Y) scale(Zoom).
type Camera struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// DefaultCamera is the camera of a freshly created scene.
func DefaultCamera() Camera {
	return Camera{X: 0, Y: 0, Zoom: 1.0}
}

// CameraPatch is a typed partial camera update.
type CameraPatch struct {
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Zoom *float64 `json:"zoom,omitempty"`
}
