package mcpserver

import (
	"testing"

	"studyhub/internal/domain"
)

func TestNextPosition_EmptyCanvas(t *testing.T) {
	le := NewLayoutEngine()
	x, y := le.NextPosition(nil, 320, 240)
	if x != 0 || y != 0 {
		t.Errorf("expected (0, 0) for empty canvas, got (%.0f, %.0f)", x, y)
	}
}

func TestNextPosition_AvoidsExistingBlock(t *testing.T) {
	le := NewLayoutEngine()
	existing := []domain.Block{
		{X: 0, Y: 0, Width: 320, Height: 240},
	}
	x, y := le.NextPosition(existing, 320, 240)

	r := rect{x, y, 320, 240}
	padded := rect{-Padding, -Padding, 320 + Padding*2, 240 + Padding*2}
	if r.intersects(padded) {
		t.Errorf("position (%.0f, %.0f) overlaps existing block", x, y)
	}
}

func TestNextPosition_MultipleBlocks(t *testing.T) {
	le := NewLayoutEngine()
	existing := []domain.Block{
		{X: 0, Y: 0, Width: 320, Height: 240},
		{X: 440, Y: 0, Width: 320, Height: 240},
	}
	x, y := le.NextPosition(existing, 320, 240)

	for _, b := range existing {
		r := rect{x, y, 320, 240}
		padded := rect{b.X - Padding, b.Y - Padding, b.Width + Padding*2, b.Height + Padding*2}
		if r.intersects(padded) {
			t.Errorf("position (%.0f, %.0f) overlaps block at (%.0f, %.0f)", x, y, b.X, b.Y)
		}
	}
}

func TestNextPosition_IgnoresTrashedBlocks(t *testing.T) {
	le := NewLayoutEngine()
	existing := []domain.Block{
		{X: 0, Y: 0, Width: 320, Height: 240, Trashed: true},
	}
	x, y := le.NextPosition(existing, 320, 240)
	if x != 0 || y != 0 {
		t.Errorf("trashed blocks should not occupy space, got (%.0f, %.0f)", x, y)
	}
}

func TestArrangePlan(t *testing.T) {
	le := NewLayoutEngine()
	blocks := []domain.Block{
		{ID: "1", Width: 300, Height: 200},
		{ID: "2", Width: 300, Height: 200},
		{ID: "3", Width: 300, Height: 200},
	}

	plan := le.ArrangePlan(blocks, 0, 0)

	if len(plan) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(plan))
	}

	// No overlaps
	for i := 0; i < len(plan); i++ {
		for j := i + 1; j < len(plan); j++ {
			a := rect{plan[i][0], plan[i][1], blocks[i].Width, blocks[i].Height}
			b := rect{plan[j][0], plan[j][1], blocks[j].Width, blocks[j].Height}
			if a.intersects(b) {
				t.Errorf("positions %d and %d overlap: (%.0f,%.0f) and (%.0f,%.0f)",
					i, j, a.x, a.y, b.x, b.y)
			}
		}
	}
}

func TestArrangePlan_WrapsRows(t *testing.T) {
	le := NewLayoutEngine()
	var blocks []domain.Block
	for i := 0; i < 6; i++ {
		blocks = append(blocks, domain.Block{Width: 600, Height: 200})
	}

	plan := le.ArrangePlan(blocks, 0, 0)

	rows := map[float64]bool{}
	for _, p := range plan {
		rows[p[1]] = true
	}
	if len(rows) < 2 {
		t.Errorf("expected wide blocks to wrap onto multiple rows, got %d row(s)", len(rows))
	}
}

func TestSnap(t *testing.T) {
	le := NewLayoutEngine()
	tests := []struct {
		input, want float64
	}{
		{0, 0},
		{15, 30},
		{29, 30},
		{30, 30},
		{45, 60},
		{100, 90}, // rounds to nearest grid: 3*30=90
	}
	for _, tt := range tests {
		got := le.snap(tt.input)
		if got != tt.want {
			t.Errorf("snap(%.0f) = %.0f, want %.0f", tt.input, got, tt.want)
		}
	}
}
