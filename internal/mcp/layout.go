package mcpserver

import (
	"math"

	"studyhub/internal/domain"
)

const (
	GridSize = 30.0 // matches frontend GRID_SIZE
	Padding  = 60.0 // 2 grid cells between blocks
	MaxRowW  = 1800.0
)

// LayoutEngine handles automatic placement of blocks on the canvas
// so that MCP-created blocks don't overlap existing ones.
type LayoutEngine struct {
	gridSize float64
	padding  float64
	maxRowW  float64
}

func NewLayoutEngine() *LayoutEngine {
	return &LayoutEngine{
		gridSize: GridSize,
		padding:  Padding,
		maxRowW:  MaxRowW,
	}
}

// snap rounds v to the nearest grid point.
func (le *LayoutEngine) snap(v float64) float64 {
	return math.Round(v/le.gridSize) * le.gridSize
}

type rect struct {
	x, y, w, h float64
}

func (a rect) intersects(b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

// NextPosition finds the next non-overlapping grid position for a
// block of size (newW, newH) given the existing live blocks.
func (le *LayoutEngine) NextPosition(existing []domain.Block, newW, newH float64) (float64, float64) {
	if len(existing) == 0 {
		return 0, 0
	}

	occupied := make([]rect, 0, len(existing))
	for _, b := range existing {
		if b.Trashed {
			continue
		}
		occupied = append(occupied, rect{b.X, b.Y, b.Width, b.Height})
	}

	candidate := rect{w: newW, h: newH}
	for y := 0.0; y < 100000; y += le.gridSize {
		for x := 0.0; x < le.maxRowW; x += le.gridSize {
			candidate.x = le.snap(x)
			candidate.y = le.snap(y)

			overlaps := false
			for _, occ := range occupied {
				padded := rect{
					x: occ.x - le.padding,
					y: occ.y - le.padding,
					w: occ.w + le.padding*2,
					h: occ.h + le.padding*2,
				}
				if candidate.intersects(padded) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				return candidate.x, candidate.y
			}
		}
	}

	// Fallback: place below all existing blocks
	maxY := 0.0
	for _, b := range existing {
		if b.Y+b.Height > maxY {
			maxY = b.Y + b.Height
		}
	}
	return 0, le.snap(maxY + le.padding)
}

// ArrangePlan computes grid positions for a group of blocks starting
// from (startX, startY). Returns a position per input block, in order.
func (le *LayoutEngine) ArrangePlan(blocks []domain.Block, startX, startY float64) [][2]float64 {
	x := le.snap(startX)
	y := le.snap(startY)
	rowHeight := 0.0

	plan := make([][2]float64, len(blocks))
	for i, b := range blocks {
		plan[i] = [2]float64{x, y}

		if b.Height > rowHeight {
			rowHeight = b.Height
		}

		x += le.snap(b.Width + le.padding)

		// Wrap to next row
		if x+b.Width > le.maxRowW {
			x = le.snap(startX)
			y += le.snap(rowHeight + le.padding)
			rowHeight = 0
		}
	}

	return plan
}
