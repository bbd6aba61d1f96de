package scene

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"studyhub/internal/domain"
)

func zValues(s *Store) []int {
	st := s.State()
	zs := make([]int, 0, len(st.Blocks))
	for _, b := range st.Blocks {
		zs = append(zs, b.Z)
	}
	sort.Ints(zs)
	return zs
}

// assertDenseZ checks the z-density invariant: live z-values are
// exactly {ZBase .. ZBase+n-1}.
func assertDenseZ(t *testing.T, s *Store) {
	t.Helper()
	zs := zValues(s)
	for i, z := range zs {
		if z != ZBase+i {
			t.Fatalf("z-density violated: got %v", zs)
		}
	}
}

func TestAddBlock_AssignsSequentialZ(t *testing.T) {
	s := New(NotesConfig())
	a := s.AddBlock(domain.BlockTypeText, 0, 0, nil)
	b := s.AddBlock(domain.BlockTypeImage, 0, 0, nil)

	if a.Z != 1 {
		t.Errorf("first block z = %d, want 1", a.Z)
	}
	if b.Z != 2 {
		t.Errorf("second block z = %d, want 2", b.Z)
	}
	assertDenseZ(t, s)
}

func TestAddBlock_AppliesTypeDefaults(t *testing.T) {
	s := New(BoardConfig())
	b := s.AddBlock(domain.BlockTypeText, 10, 20, nil)

	if b.Width != 220 || b.Height != 80 {
		t.Errorf("unexpected default size %vx%v", b.Width, b.Height)
	}
	if b.Style == nil {
		t.Error("text block should get a default style")
	}
	if b.ID == "" {
		t.Error("block id not assigned")
	}
}

func TestRemoveBlock_KeepsZDense(t *testing.T) {
	s := New(NotesConfig())
	s.AddBlock(domain.BlockTypeText, 0, 0, nil)
	mid := s.AddBlock(domain.BlockTypeText, 0, 0, nil)
	s.AddBlock(domain.BlockTypeText, 0, 0, nil)

	s.RemoveBlock(mid.ID)
	assertDenseZ(t, s)
	if got := len(s.State().Blocks); got != 2 {
		t.Errorf("expected 2 blocks, got %d", got)
	}
}

func TestReorderZ(t *testing.T) {
	s := New(NotesConfig())
	a := s.AddBlock(domain.BlockTypeText, 0, 0, nil)
	b := s.AddBlock(domain.BlockTypeText, 0, 0, nil)
	c := s.AddBlock(domain.BlockTypeText, 0, 0, nil)

	z := func(id string) int {
		blk, _ := s.Get(id)
		return blk.Z
	}

	s.ReorderZ(a.ID, ZFront, 0)
	if z(a.ID) != 3 || z(b.ID) != 1 || z(c.ID) != 2 {
		t.Errorf("after front: a=%d b=%d c=%d", z(a.ID), z(b.ID), z(c.ID))
	}

	s.ReorderZ(a.ID, ZBack, 0)
	if z(a.ID) != 1 || z(b.ID) != 2 || z(c.ID) != 3 {
		t.Errorf("after back: a=%d b=%d c=%d", z(a.ID), z(b.ID), z(c.ID))
	}

	s.ReorderZ(a.ID, ZUp, 0)
	if z(a.ID) != 2 || z(b.ID) != 1 {
		t.Errorf("after up: a=%d b=%d", z(a.ID), z(b.ID))
	}

	s.ReorderZ(a.ID, ZDown, 0)
	if z(a.ID) != 1 {
		t.Errorf("after down: a=%d", z(a.ID))
	}

	s.ReorderZ(c.ID, ZIndex, 0)
	if z(c.ID) != 1 {
		t.Errorf("after absolute index 0: c=%d", z(c.ID))
	}
	assertDenseZ(t, s)

	// Out-of-range indexes clamp instead of panicking.
	s.ReorderZ(c.ID, ZIndex, 99)
	if z(c.ID) != 3 {
		t.Errorf("after clamped index: c=%d", z(c.ID))
	}
	assertDenseZ(t, s)
}

func TestUpdateBlock_UnknownIDIsNoop(t *testing.T) {
	s := New(NotesConfig())
	s.AddBlock(domain.BlockTypeText, 0, 0, nil)
	before := s.State()

	x := 50.0
	s.UpdateBlock("no-such-id", domain.BlockPatch{X: &x})
	s.MoveBlock("no-such-id", 1, 2)
	s.ResizeBlock("no-such-id", 500, 500)
	s.RemoveBlock("no-such-id")

	after := s.State()
	if diff := cmp.Diff(before.Blocks, after.Blocks); diff != "" {
		t.Errorf("scene changed by unknown-id mutations:\n%s", diff)
	}
}

func TestResizeBlock_ClampsToMinimum(t *testing.T) {
	s := New(NotesConfig())
	b := s.AddBlock(domain.BlockTypeContainer, 0, 0, nil)

	s.ResizeBlock(b.ID, 10, 10)
	got, _ := s.Get(b.ID)
	if got.Width != s.Config().MinWidth || got.Height != s.Config().MinHeight {
		t.Errorf("expected clamp to %vx%v, got %vx%v",
			s.Config().MinWidth, s.Config().MinHeight, got.Width, got.Height)
	}
}

func TestConnect_RejectsSelfLoopAndDuplicate(t *testing.T) {
	s := New(NotesConfig())
	a := s.AddBlock(domain.BlockTypeText, 0, 0, nil)
	b := s.AddBlock(domain.BlockTypeText, 0, 0, nil)

	if _, err := s.Connect(a.ID, a.ID); err == nil {
		t.Error("self-loop was not rejected")
	}
	if _, err := s.Connect(a.ID, b.ID); err != nil {
		t.Fatalf("first connect failed: %v", err)
	}
	if _, err := s.Connect(a.ID, b.ID); err == nil {
		t.Error("duplicate connection was not rejected")
	}
	// Reverse direction is a different edge.
	if _, err := s.Connect(b.ID, a.ID); err != nil {
		t.Errorf("reverse connect failed: %v", err)
	}
	if got := len(s.Connections()); got != 2 {
		t.Errorf("expected 2 connections, got %d", got)
	}
}

func TestRemoveBlock_CascadesConnections(t *testing.T) {
	s := New(NotesConfig())
	a := s.AddBlock(domain.BlockTypeText, 0, 0, nil)
	b := s.AddBlock(domain.BlockTypeText, 0, 0, nil)
	c := s.AddBlock(domain.BlockTypeText, 0, 0, nil)
	s.Connect(a.ID, b.ID)
	s.Connect(b.ID, c.ID)
	s.Connect(c.ID, a.ID)

	s.RemoveBlock(a.ID)

	conns := s.Connections()
	if len(conns) != 1 {
		t.Fatalf("expected 1 surviving connection, got %d", len(conns))
	}
	if conns[0].FromBlockID != b.ID || conns[0].ToBlockID != c.ID {
		t.Errorf("wrong connection survived: %+v", conns[0])
	}
}

func TestDuplicateBlock_DisjointIDs(t *testing.T) {
	s := New(NotesConfig())
	orig := s.AddBlock(domain.BlockTypeContainer, 100, 100, &domain.BlockPatch{
		SubBlocks: &[]domain.SubBlock{
			{ID: "sub-1", Kind: domain.SubBlockHeading, Text: "Title"},
			{ID: "sub-2", Kind: domain.SubBlockToggle, Text: "More", Children: []domain.SubBlock{
				{ID: "sub-3", Kind: domain.SubBlockBullet, Text: "nested"},
			}},
		},
	})

	dup, ok := s.DuplicateBlock(orig.ID)
	if !ok {
		t.Fatal("duplicate failed")
	}

	if dup.ID == orig.ID {
		t.Error("duplicate shares id with original")
	}
	if dup.X != orig.X+30 || dup.Y != orig.Y+30 {
		t.Errorf("duplicate not offset: (%v, %v)", dup.X, dup.Y)
	}
	if dup.Z <= orig.Z {
		t.Errorf("duplicate z %d not above original %d", dup.Z, orig.Z)
	}

	seen := map[string]bool{orig.ID: true, "sub-1": true, "sub-2": true, "sub-3": true}
	var walk func(subs []domain.SubBlock)
	walk = func(subs []domain.SubBlock) {
		for _, sb := range subs {
			if seen[sb.ID] {
				t.Errorf("sub-block id %q reused in duplicate", sb.ID)
			}
			seen[sb.ID] = true
			walk(sb.Children)
		}
	}
	walk(dup.SubBlocks)

	// Original untouched.
	after, _ := s.Get(orig.ID)
	if after.SubBlocks[0].ID != "sub-1" {
		t.Error("original sub-block ids were mutated")
	}
	if after.X != 100 || after.Y != 100 {
		t.Error("original position was mutated")
	}
}

func TestSetCamera_ClampsZoom(t *testing.T) {
	tests := []struct {
		cfg  Config
		zoom float64
		want float64
	}{
		{NotesConfig(), 0.01, 0.1},
		{NotesConfig(), 10, 3.0},
		{NotesConfig(), 1.7, 1.7},
		{BoardConfig(), 0.1, 0.5},
		{BoardConfig(), 2.5, 2.0},
	}
	for _, tt := range tests {
		s := New(tt.cfg)
		cam := s.SetCamera(domain.CameraPatch{Zoom: &tt.zoom})
		if cam.Zoom != tt.want {
			t.Errorf("%s: zoom %v clamped to %v, want %v", tt.cfg.Name, tt.zoom, cam.Zoom, tt.want)
		}
	}
}

func TestSetCamera_PartialMerge(t *testing.T) {
	s := New(NotesConfig())
	x := 120.0
	s.SetCamera(domain.CameraPatch{X: &x})
	cam := s.Camera()
	if cam.X != 120 || cam.Y != 0 || cam.Zoom != 1.0 {
		t.Errorf("partial merge broke camera: %+v", cam)
	}
}

func TestReplace_RenumbersZ(t *testing.T) {
	s := New(BoardConfig())
	s.Replace(domain.SceneState{
		Blocks: []domain.Block{
			{ID: "a", Type: domain.BlockTypeText, Z: 7},
			{ID: "b", Type: domain.BlockTypeText, Z: 3},
			{ID: "c", Type: domain.BlockTypeText, Z: 99},
		},
	})
	assertDenseZ(t, s)
	a, _ := s.Get("a")
	b, _ := s.Get("b")
	if b.Z >= a.Z {
		t.Errorf("paint order not preserved: a=%d b=%d", a.Z, b.Z)
	}
}

func TestStateReturnsDeepCopy(t *testing.T) {
	s := New(NotesConfig())
	b := s.AddBlock(domain.BlockTypeContainer, 0, 0, &domain.BlockPatch{
		SubBlocks: &[]domain.SubBlock{{ID: "s1", Kind: domain.SubBlockBullet, Text: "x"}},
	})

	st := s.State()
	st.Blocks[0].SubBlocks[0].Text = "mutated"
	st.Blocks[0].X = 999

	fresh, _ := s.Get(b.ID)
	if fresh.SubBlocks[0].Text != "x" || fresh.X != 0 {
		t.Error("State() leaked internal references")
	}
}
