package render

import (
	"math"

	"studyhub/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Connection Graph Renderer — edge list → curve paths
// ─────────────────────────────────────────────────────────────
//
// A pure projection: it owns no state and re-derives on every call.
// The frontend asks for paths after each scene change and draws them
// under the blocks.

// MaxCurvature caps how far the cubic control points extend from
// their endpoints, in world units.
const MaxCurvature = 150.0

// EdgePath is one renderable connection curve. Coordinates are world
// units; the frontend applies the camera transform.
type EdgePath struct {
	ConnectionID string                 `json:"connectionId"`
	FromBlockID  string                 `json:"fromBlockId"`
	ToBlockID    string                 `json:"toBlockId"`
	Label        string                 `json:"label,omitempty"`
	Color        string                 `json:"color"`
	Style        domain.ConnectionStyle `json:"style"`

	// Cubic bezier: start, two control points, end.
	X1  float64 `json:"x1"`
	Y1  float64 `json:"y1"`
	C1X float64 `json:"c1x"`
	C1Y float64 `json:"c1y"`
	C2X float64 `json:"c2x"`
	C2Y float64 `json:"c2y"`
	X2  float64 `json:"x2"`
	Y2  float64 `json:"y2"`
}

// Project derives the renderable paths for every connection whose
// endpoints both exist and are not trashed. Edges with a missing or
// trashed endpoint are skipped silently; they come back when the
// block is restored.
func Project(blocks []domain.Block, conns []domain.Connection) []EdgePath {
	centers := make(map[string][2]float64, len(blocks))
	for _, b := range blocks {
		if b.Trashed {
			continue
		}
		centers[b.ID] = [2]float64{b.X + b.Width/2, b.Y + b.Height/2}
	}

	paths := make([]EdgePath, 0, len(conns))
	for _, c := range conns {
		from, okFrom := centers[c.FromBlockID]
		to, okTo := centers[c.ToBlockID]
		if !okFrom || !okTo {
			continue
		}

		p := EdgePath{
			ConnectionID: c.ID,
			FromBlockID:  c.FromBlockID,
			ToBlockID:    c.ToBlockID,
			Label:        c.Label,
			Color:        c.Color,
			Style:        c.Style,
			X1:           from[0],
			Y1:           from[1],
			X2:           to[0],
			Y2:           to[1],
		}
		p.C1X, p.C1Y, p.C2X, p.C2Y = controlPoints(from[0], from[1], to[0], to[1])
		paths = append(paths, p)
	}
	return paths
}

// controlPoints offsets each control point horizontally from its
// endpoint by min(distance*0.5, MaxCurvature), pointed at the far
// endpoint, which bends a straight line into an S-curve.
func controlPoints(x1, y1, x2, y2 float64) (c1x, c1y, c2x, c2y float64) {
	dist := math.Hypot(x2-x1, y2-y1)
	offset := math.Min(dist*0.5, MaxCurvature)
	dir := 1.0
	if x2 < x1 {
		dir = -1.0
	}
	return x1 + dir*offset, y1, x2 - dir*offset, y2
}
