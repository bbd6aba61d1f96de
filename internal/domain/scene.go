package domain

// SceneState is the complete state of one canvas.
// Returned to the frontend to render the full scene, and serialized
// piecewise by the persistence adapter.
type SceneState struct {
	Blocks      []Block      `json:"blocks"`
	Connections []Connection `json:"connections"`
	Folders     []string     `json:"folders"`
	Camera      Camera       `json:"camera"`
}
