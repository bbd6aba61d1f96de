package scene

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"studyhub/internal/domain"
	"studyhub/internal/geometry"
)

// ─────────────────────────────────────────────────────────────
// Scene Store — authoritative state of one canvas
// ─────────────────────────────────────────────────────────────
//
// The store owns the block list, the connection list, the folder set
// and the camera. All mutations are synchronous and keep the z-order
// invariant: live block z-values are always exactly {1..n}.
//
// Wails bindings can be invoked from multiple goroutines, so every
// entry point takes the store mutex.

// ZBase is the z value of the bottom-most block.
const ZBase = 1

// ZDirective names a relative stacking move.
type ZDirective string

const (
	ZFront ZDirective = "front"
	ZBack  ZDirective = "back"
	ZUp    ZDirective = "up"
	ZDown  ZDirective = "down"
	ZIndex ZDirective = "index" // absolute insertion index into z-sorted order
)

// Config describes one canvas's behavior. The notes canvas and the
// vision board are the same engine with different configs.
type Config struct {
	Name            string  // persistence key prefix, e.g. "notes"
	MinZoom         float64 // camera zoom clamp
	MaxZoom         float64
	MinWidth        float64 // resize clamps
	MinHeight       float64
	SoftDelete      bool // blocks go to trash instead of being removed
	AllowRotation   bool
	DuplicateOffset float64 // world-unit offset applied to duplicates
}

// NotesConfig is the notes canvas configuration.
func NotesConfig() Config {
	return Config{
		Name:            "notes",
		MinZoom:         0.1,
		MaxZoom:         3.0,
		MinWidth:        200,
		MinHeight:       100,
		SoftDelete:      true,
		AllowRotation:   false,
		DuplicateOffset: 30,
	}
}

// BoardConfig is the vision board configuration.
func BoardConfig() Config {
	return Config{
		Name:            "vision-board",
		MinZoom:         0.5,
		MaxZoom:         2.0,
		MinWidth:        100,
		MinHeight:       50,
		SoftDelete:      false,
		AllowRotation:   true,
		DuplicateOffset: 30,
	}
}

// Store holds the live scene for one canvas.
type Store struct {
	mu      sync.Mutex
	cfg     Config
	blocks  []domain.Block
	conns   []domain.Connection
	folders []string
	camera  domain.Camera

	// onChange fires after every successful mutation. The persistence
	// adapter hooks in here; it must not call back into the store.
	onChange func()
}

// New creates an empty scene store.
func New(cfg Config) *Store {
	return &Store{cfg: cfg, camera: domain.DefaultCamera()}
}

// Config returns the scene configuration.
func (s *Store) Config() Config { return s.cfg }

// OnChange registers the mutation callback. Pass nil to detach.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// ── Queries ────────────────────────────────────────────────

// State returns a deep copy of the full scene, trashed blocks included.
func (s *Store) State() domain.SceneState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() domain.SceneState {
	st := domain.SceneState{
		Blocks:      make([]domain.Block, len(s.blocks)),
		Connections: make([]domain.Connection, len(s.conns)),
		Folders:     append([]string(nil), s.folders...),
		Camera:      s.camera,
	}
	for i, b := range s.blocks {
		st.Blocks[i] = cloneBlock(b)
	}
	copy(st.Connections, s.conns)
	return st
}

// Get returns a copy of one block.
func (s *Store) Get(id string) (domain.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return cloneBlock(s.blocks[i]), true
	}
	return domain.Block{}, false
}

// Camera returns the current camera.
func (s *Store) Camera() domain.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera
}

func (s *Store) indexOf(id string) int {
	for i := range s.blocks {
		if s.blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// ── Block mutations ────────────────────────────────────────

// AddBlock inserts a new block of the given type at a world position,
// applying type defaults for size, content and style. The new block
// is stacked on top (z = max+1). Never fails.
func (s *Store) AddBlock(t domain.BlockType, x, y float64, extra *domain.BlockPatch) domain.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := domain.DefaultSize(t)
	now := time.Now()
	b := domain.Block{
		ID:        uuid.New().String(),
		Type:      t,
		X:         x,
		Y:         y,
		Width:     w,
		Height:    h,
		Z:         s.maxZLocked() + 1,
		Content:   domain.DefaultContent(t),
		Style:     domain.DefaultStyle(t),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if extra != nil {
		extra.Apply(&b)
	}
	// Clone on the way in so callers can't alias store internals.
	s.blocks = append(s.blocks, cloneBlock(b))
	s.notify()
	return cloneBlock(b)
}

func (s *Store) maxZLocked() int {
	max := ZBase - 1
	for i := range s.blocks {
		if s.blocks[i].Z > max {
			max = s.blocks[i].Z
		}
	}
	return max
}

// UpdateBlock merges a typed partial update into a block and
// refreshes UpdatedAt. No-op if the id is unknown.
func (s *Store) UpdateBlock(id string, patch domain.BlockPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	if patch.Rotation != nil && !s.cfg.AllowRotation {
		patch.Rotation = nil
	}
	patch.Apply(&s.blocks[i])
	s.blocks[i].UpdatedAt = time.Now()
	s.notify()
}

// MoveBlock sets a block's world position. No-op on unknown id.
func (s *Store) MoveBlock(id string, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.blocks[i].X = x
	s.blocks[i].Y = y
	s.blocks[i].UpdatedAt = time.Now()
	s.notify()
}

// ResizeBlock sets a block's size, clamped to the scene minimums.
func (s *Store) ResizeBlock(id string, width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	if width < s.cfg.MinWidth {
		width = s.cfg.MinWidth
	}
	if height < s.cfg.MinHeight {
		height = s.cfg.MinHeight
	}
	s.blocks[i].Width = width
	s.blocks[i].Height = height
	s.blocks[i].UpdatedAt = time.Now()
	s.notify()
}

// RemoveBlock hard-deletes a block and every connection touching it,
// then renumbers z densely. No-op on unknown id.
func (s *Store) RemoveBlock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
	s.removeConnectionsOfLocked(id)
	s.renumberZLocked()
	s.notify()
}

func (s *Store) removeConnectionsOfLocked(blockID string) {
	kept := s.conns[:0]
	for _, c := range s.conns {
		if c.FromBlockID != blockID && c.ToBlockID != blockID {
			kept = append(kept, c)
		}
	}
	s.conns = kept
}

// renumberZLocked renumbers every block's z densely from ZBase,
// preserving the current paint order.
func (s *Store) renumberZLocked() {
	order := make([]*domain.Block, len(s.blocks))
	for i := range s.blocks {
		order[i] = &s.blocks[i]
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].Z < order[j].Z })
	for i, b := range order {
		b.Z = ZBase + i
	}
}

// ReorderZ moves a block within the stacking order. dir selects a
// relative move (front/back/up/down) or, with ZIndex, an absolute
// insertion index into the z-sorted order. After the move every z is
// renumbered densely from ZBase.
func (s *Store) ReorderZ(id string, dir ZDirective, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return
	}

	// Work on the z-sorted order.
	order := make([]*domain.Block, len(s.blocks))
	for i := range s.blocks {
		order[i] = &s.blocks[i]
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].Z < order[j].Z })

	cur := 0
	for i, b := range order {
		if b.ID == id {
			cur = i
			break
		}
	}
	target := order[cur]
	order = append(order[:cur], order[cur+1:]...)

	pos := cur
	switch dir {
	case ZFront:
		pos = len(order)
	case ZBack:
		pos = 0
	case ZUp:
		pos = cur + 1
	case ZDown:
		pos = cur - 1
	case ZIndex:
		pos = index
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(order) {
		pos = len(order)
	}

	order = append(order[:pos], append([]*domain.Block{target}, order[pos:]...)...)
	for i, b := range order {
		b.Z = ZBase + i
	}
	s.notify()
}

// DuplicateBlock deep-clones a block, giving the copy and every
// nested sub-block fresh ids, offsetting the position and stacking
// the copy on top. Returns false if the id is unknown.
func (s *Store) DuplicateBlock(id string) (domain.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Block{}, false
	}

	now := time.Now()
	dup := cloneBlock(s.blocks[i])
	dup.ID = uuid.New().String()
	dup.X += s.cfg.DuplicateOffset
	dup.Y += s.cfg.DuplicateOffset
	dup.Z = s.maxZLocked() + 1
	dup.SubBlocks = regenerateSubBlockIDs(dup.SubBlocks)
	dup.CreatedAt = now
	dup.UpdatedAt = now

	s.blocks = append(s.blocks, dup)
	s.notify()
	return cloneBlock(dup), true
}

func regenerateSubBlockIDs(subs []domain.SubBlock) []domain.SubBlock {
	for i := range subs {
		subs[i].ID = uuid.New().String()
		subs[i].Children = regenerateSubBlockIDs(subs[i].Children)
	}
	return subs
}

// ── Connections ────────────────────────────────────────────

// Connect creates a directed connection between two blocks.
// Self-loops and duplicate (from, to) pairs are rejected.
func (s *Store) Connect(fromID, toID string) (domain.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fromID == toID {
		return domain.Connection{}, fmt.Errorf("connect: self-loop on block %s", fromID)
	}
	for _, c := range s.conns {
		if c.FromBlockID == fromID && c.ToBlockID == toID {
			return domain.Connection{}, fmt.Errorf("connect: %s -> %s already exists", fromID, toID)
		}
	}

	c := domain.Connection{
		ID:          uuid.New().String(),
		FromBlockID: fromID,
		ToBlockID:   toID,
		Color:       "#666666",
		Style:       domain.ConnectionStyleSolid,
		CreatedAt:   time.Now(),
	}
	s.conns = append(s.conns, c)
	s.notify()
	return c, nil
}

// Disconnect removes a connection by id. No-op on unknown id.
func (s *Store) Disconnect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.conns {
		if c.ID == id {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			s.notify()
			return
		}
	}
}

// Connections returns a copy of the connection list.
func (s *Store) Connections() []domain.Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Connection(nil), s.conns...)
}

// ── Camera ─────────────────────────────────────────────────

// SetCamera merges a partial camera update, clamping zoom to the
// scene's configured range before storing.
func (s *Store) SetCamera(patch domain.CameraPatch) domain.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.X != nil {
		s.camera.X = *patch.X
	}
	if patch.Y != nil {
		s.camera.Y = *patch.Y
	}
	if patch.Zoom != nil {
		s.camera.Zoom = geometry.ClampZoom(*patch.Zoom, s.cfg.MinZoom, s.cfg.MaxZoom)
	}
	s.notify()
	return s.camera
}

// ResetCamera restores the default pan and zoom.
func (s *Store) ResetCamera() domain.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = domain.DefaultCamera()
	s.notify()
	return s.camera
}

// ── Bulk replace ───────────────────────────────────────────

// Replace swaps in an entire scene. Used on load and by the vision
// board JSON import. Z values are renumbered densely so imported
// data can't violate the invariant.
func (s *Store) Replace(st domain.SceneState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = make([]domain.Block, len(st.Blocks))
	for i, b := range st.Blocks {
		s.blocks[i] = cloneBlock(b)
	}
	s.conns = append([]domain.Connection(nil), st.Connections...)
	s.folders = append([]string(nil), st.Folders...)
	if st.Camera.Zoom != 0 {
		s.camera = st.Camera
		s.camera.Zoom = geometry.ClampZoom(s.camera.Zoom, s.cfg.MinZoom, s.cfg.MaxZoom)
	} else {
		s.camera = domain.DefaultCamera()
	}
	s.renumberZLocked()
	s.notify()
}

// ── helpers ────────────────────────────────────────────────

func cloneBlock(b domain.Block) domain.Block {
	out := b
	out.SubBlocks = cloneSubBlocks(b.SubBlocks)
	out.Tags = append([]string(nil), b.Tags...)
	if b.Style != nil {
		st := *b.Style
		out.Style = &st
	}
	return out
}

func cloneSubBlocks(subs []domain.SubBlock) []domain.SubBlock {
	if subs == nil {
		return nil
	}
	out := make([]domain.SubBlock, len(subs))
	for i, sb := range subs {
		out[i] = sb
		out[i].Children = cloneSubBlocks(sb.Children)
		if sb.Rows != nil {
			rows := make([][]string, len(sb.Rows))
			for j, r := range sb.Rows {
				rows[j] = append([]string(nil), r...)
			}
			out[i].Rows = rows
		}
	}
	return out
}
