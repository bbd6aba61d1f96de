package geometry

import (
	"math"

	"studyhub/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Magnetic alignment (snapping)
// ─────────────────────────────────────────────────────────────

// DefaultSnapThreshold is the screen-pixel distance within which a
// dragged edge locks onto a neighbor's edge.
const DefaultSnapThreshold = 5.0

// Rect is an axis-aligned bounding box in world units.
type Rect struct {
	X, Y, W, H float64
}

// BlockRect returns a block's bounding box.
func BlockRect(b domain.Block) Rect {
	return Rect{b.X, b.Y, b.Width, b.Height}
}

func (a Rect) Intersects(b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// AxisSnap is the result of snapping one axis: the corrected world
// coordinate for the dragged block and the world position of the
// alignment guide line.
type AxisSnap struct {
	Position float64 `json:"position"`
	Guide    float64 `json:"guide"`
}

// SnapResult holds at most one snap per axis. A nil axis means no
// edge pair came within the threshold on that axis.
type SnapResult struct {
	X *AxisSnap `json:"x,omitempty"`
	Y *AxisSnap `json:"y,omitempty"`
}

// ComputeSnap tests the candidate rect's left/center/right edges
// against every other rect's left/center/right edges (and the same
// for the vertical axis), in screen-pixel space so the threshold
// feels constant at any zoom. The nearest match per axis wins.
//
// Runs on every pointer move during a drag, so it is a single O(n)
// pass over the other rects. Only the dragged position is adjusted;
// other blocks are never touched.
func ComputeSnap(candidate Rect, others []Rect, zoom, threshold float64) SnapResult {
	var res SnapResult
	bestX := threshold
	bestY := threshold

	candX := [3]float64{candidate.X, candidate.X + candidate.W/2, candidate.X + candidate.W}
	candY := [3]float64{candidate.Y, candidate.Y + candidate.H/2, candidate.Y + candidate.H}

	for _, o := range others {
		otherX := [3]float64{o.X, o.X + o.W/2, o.X + o.W}
		otherY := [3]float64{o.Y, o.Y + o.H/2, o.Y + o.H}

		for ci, cx := range candX {
			for _, ox := range otherX {
				d := math.Abs(cx-ox) * zoom
				if d < bestX {
					bestX = d
					// Shift so the candidate edge lands exactly on the other edge.
					offset := candX[ci] - candidate.X
					res.X = &AxisSnap{Position: ox - offset, Guide: ox}
				}
			}
		}
		for ci, cy := range candY {
			for _, oy := range otherY {
				d := math.Abs(cy-oy) * zoom
				if d < bestY {
					bestY = d
					offset := candY[ci] - candidate.Y
					res.Y = &AxisSnap{Position: oy - offset, Guide: oy}
				}
			}
		}
	}

	return res
}

// SnapRects collects the bounding boxes of every live block except
// the one being dragged. Trashed blocks never attract.
func SnapRects(blocks []domain.Block, excludeID string) []Rect {
	rects := make([]Rect, 0, len(blocks))
	for _, b := range blocks {
		if b.ID == excludeID || b.Trashed {
			continue
		}
		rects = append(rects, BlockRect(b))
	}
	return rects
}
