package gesture

import (
	"context"
	"testing"

	"studyhub/internal/domain"
	"studyhub/internal/geometry"
	"studyhub/internal/scene"
	"studyhub/internal/service"
)

func newMachine(t *testing.T, cfg scene.Config) (*Machine, *scene.Store, *service.MockEmitter) {
	t.Helper()
	store := scene.New(cfg)
	emitter := &service.MockEmitter{}
	m := New(context.Background(), store, emitter, geometry.DefaultSnapThreshold)
	return m, store, emitter
}

func TestDrag_MovesBlockByWorldDelta(t *testing.T) {
	m, store, _ := newMachine(t, scene.NotesConfig())
	b := store.AddBlock(domain.BlockTypeContainer, 100, 100, nil)
	zoom := 2.0
	store.SetCamera(domain.CameraPatch{Zoom: &zoom})

	if st := m.PointerDown(b.ID, RegionBody, 500, 500, 0, 0); st != StateDragging {
		t.Fatalf("expected dragging, got %s", st)
	}
	// 40 screen px at zoom 2 is 20 world units.
	m.PointerMove(540, 520)
	m.PointerUp()

	got, _ := store.Get(b.ID)
	if got.X != 120 || got.Y != 110 {
		t.Errorf("block at (%v, %v), want (120, 110)", got.X, got.Y)
	}
	if m.State() != StateIdle {
		t.Errorf("machine not idle after pointer-up: %s", m.State())
	}
}

func TestDrag_SnapsToNeighborEdge(t *testing.T) {
	m, store, emitter := newMachine(t, scene.NotesConfig())
	a := store.AddBlock(domain.BlockTypeContainer, 100, 100, &domain.BlockPatch{
		Width: f(300), Height: f(200),
	})
	store.AddBlock(domain.BlockTypeContainer, 410, 100, &domain.BlockPatch{
		Width: f(300), Height: f(200),
	})

	m.PointerDown(a.ID, RegionBody, 0, 0, 0, 0)
	// Move right edge (at 400+7) within 5px of B's left edge at 410.
	guides := m.PointerMove(7, 400)

	got, _ := store.Get(a.ID)
	if got.X != 110 {
		t.Errorf("snapped x = %v, want 110 (B.x - A.width)", got.X)
	}
	if guides.X == nil || *guides.X != 410 {
		t.Errorf("expected X guide at 410, got %+v", guides.X)
	}

	m.PointerUp()
	// Guides cleared on release.
	last, ok := emitter.Last(EventGuides)
	if !ok {
		t.Fatal("no guides event emitted")
	}
	if g := last.Data.(Guides); g.X != nil || g.Y != nil {
		t.Errorf("guides not cleared on pointer-up: %+v", g)
	}
}

func TestDrag_ToleratesBlockRemovedMidGesture(t *testing.T) {
	m, store, _ := newMachine(t, scene.NotesConfig())
	b := store.AddBlock(domain.BlockTypeContainer, 0, 0, nil)

	m.PointerDown(b.ID, RegionBody, 0, 0, 0, 0)
	store.RemoveBlock(b.ID)
	m.PointerMove(50, 50) // must not panic, mutation is a no-op
	m.PointerUp()

	if m.State() != StateIdle {
		t.Errorf("machine stuck in %s", m.State())
	}
}

func TestPointerDown_NoDragRegionIgnored(t *testing.T) {
	m, store, _ := newMachine(t, scene.NotesConfig())
	b := store.AddBlock(domain.BlockTypeContainer, 0, 0, nil)

	if st := m.PointerDown(b.ID, RegionNoDrag, 0, 0, 0, 0); st != StateIdle {
		t.Errorf("no-drag region started a gesture: %s", st)
	}
}

func TestResize_ClampsAndSkipsSnapping(t *testing.T) {
	m, store, _ := newMachine(t, scene.NotesConfig())
	b := store.AddBlock(domain.BlockTypeContainer, 0, 0, nil)

	if st := m.PointerDown(b.ID, RegionResizeHandle, 0, 0, 0, 0); st != StateResizing {
		t.Fatalf("expected resizing, got %s", st)
	}
	m.PointerMove(-1000, -1000)
	m.PointerUp()

	got, _ := store.Get(b.ID)
	cfg := store.Config()
	if got.Width != cfg.MinWidth || got.Height != cfg.MinHeight {
		t.Errorf("resize not clamped: %vx%v", got.Width, got.Height)
	}
}

func TestRotate_SetsDegreesFromPointerAngle(t *testing.T) {
	m, store, _ := newMachine(t, scene.BoardConfig())
	// Block centered at world (100, 100) under the identity camera.
	b := store.AddBlock(domain.BlockTypeText, 50, 50, &domain.BlockPatch{
		Width: f(100), Height: f(100),
	})

	if st := m.PointerDown(b.ID, RegionRotateHandle, 100, 0, 0, 0); st != StateRotating {
		t.Fatalf("expected rotating, got %s", st)
	}
	// Pointer due right of center: atan2 = 0, +90 offset.
	m.PointerMove(200, 100)
	m.PointerUp()

	got, _ := store.Get(b.ID)
	if got.Rotation != 90 {
		t.Errorf("rotation = %v, want 90", got.Rotation)
	}
}

func TestRotate_RejectedOnNotesCanvas(t *testing.T) {
	m, store, _ := newMachine(t, scene.NotesConfig())
	b := store.AddBlock(domain.BlockTypeContainer, 0, 0, nil)

	if st := m.PointerDown(b.ID, RegionRotateHandle, 0, 0, 0, 0); st != StateIdle {
		t.Errorf("rotation gesture started on notes canvas: %s", st)
	}
}

func TestConnect_CommitOnSecondBlock(t *testing.T) {
	m, store, emitter := newMachine(t, scene.NotesConfig())
	a := store.AddBlock(domain.BlockTypeContainer, 0, 0, nil)
	b := store.AddBlock(domain.BlockTypeContainer, 500, 0, nil)

	if !m.StartConnection(a.ID) {
		t.Fatal("StartConnection failed")
	}
	m.PointerDown(b.ID, RegionBody, 0, 0, 0, 0)

	conns := store.Connections()
	if len(conns) != 1 || conns[0].FromBlockID != a.ID || conns[0].ToBlockID != b.ID {
		t.Fatalf("expected a->b connection, got %+v", conns)
	}
	if m.State() != StateIdle {
		t.Errorf("machine not idle after commit: %s", m.State())
	}
	if _, ok := emitter.Last(EventConnected); !ok {
		t.Error("no connected event emitted")
	}
}

func TestConnect_EmptyCanvasCancels(t *testing.T) {
	m, store, _ := newMachine(t, scene.NotesConfig())
	a := store.AddBlock(domain.BlockTypeContainer, 0, 0, nil)

	m.StartConnection(a.ID)
	m.PointerDown("", RegionBody, 0, 0, 0, 0)

	if got := len(store.Connections()); got != 0 {
		t.Errorf("cancelled draft created %d connections", got)
	}
	if m.State() != StateIdle {
		t.Errorf("machine not idle after cancel: %s", m.State())
	}
}

func TestConnect_EscapeCancels(t *testing.T) {
	m, store, _ := newMachine(t, scene.NotesConfig())
	a := store.AddBlock(domain.BlockTypeContainer, 0, 0, nil)

	m.StartConnection(a.ID)
	m.Cancel()

	if got := len(store.Connections()); got != 0 {
		t.Errorf("escape committed %d connections", got)
	}
	if m.State() != StateIdle {
		t.Errorf("machine not idle: %s", m.State())
	}
}

func TestConnect_SelfTargetCancelsWithoutEdge(t *testing.T) {
	m, store, _ := newMachine(t, scene.NotesConfig())
	a := store.AddBlock(domain.BlockTypeContainer, 0, 0, nil)

	m.StartConnection(a.ID)
	m.PointerDown(a.ID, RegionBody, 0, 0, 0, 0)

	if got := len(store.Connections()); got != 0 {
		t.Errorf("self-target created %d connections", got)
	}
}

func TestConnect_SuppressesDragOnOtherBlocks(t *testing.T) {
	m, store, _ := newMachine(t, scene.NotesConfig())
	a := store.AddBlock(domain.BlockTypeContainer, 0, 0, nil)
	b := store.AddBlock(domain.BlockTypeContainer, 500, 500, nil)

	m.StartConnection(a.ID)
	// The press on b commits the draft instead of starting a drag,
	// so a following move must not displace b.
	m.PointerDown(b.ID, RegionBody, 0, 0, 0, 0)
	m.PointerMove(100, 100)

	got, _ := store.Get(b.ID)
	if got.X != 500 || got.Y != 500 {
		t.Errorf("block dragged during connection draft: (%v, %v)", got.X, got.Y)
	}
}

func TestDraftLine_FollowsPointer(t *testing.T) {
	m, store, emitter := newMachine(t, scene.BoardConfig())
	a := store.AddBlock(domain.BlockTypeText, 100, 100, &domain.BlockPatch{
		Width: f(200), Height: f(100),
	})

	m.PointerDown(a.ID, RegionConnectHandle, 0, 0, 0, 0)
	m.PointerMove(300, 400)

	last, ok := emitter.Last(EventDraft)
	if !ok {
		t.Fatal("no draft event emitted")
	}
	line := last.Data.(DraftLine)
	if line.FromX != 200 || line.FromY != 150 {
		t.Errorf("draft start (%v, %v), want block center (200, 150)", line.FromX, line.FromY)
	}
	if line.ToX != 300 || line.ToY != 400 {
		t.Errorf("draft end (%v, %v), want pointer (300, 400)", line.ToX, line.ToY)
	}
}

func f(v float64) *float64 { return &v }
