package gesture

import (
	"context"
	"math"
	"sync"

	"studyhub/internal/domain"
	"studyhub/internal/geometry"
	"studyhub/internal/scene"
	"studyhub/internal/service"
)

// ─────────────────────────────────────────────────────────────
// Interaction Controller — pointer-gesture state machine
// ─────────────────────────────────────────────────────────────
//
// One machine per canvas. The frontend forwards raw pointer events
// (down/move/up/escape) through Wails bindings; the machine converts
// them into scene mutations. Single-pointer input means at most one
// gesture is in flight, so the states are mutually exclusive.
//
// Every gesture ends through finish(), which resets the machine and
// clears guide lines no matter how the gesture ended — success,
// cancel, or the target block vanishing mid-drag.

// State is the machine's current gesture.
type State string

const (
	StateIdle       State = "idle"
	StateDragging   State = "dragging"
	StateResizing   State = "resizing"
	StateRotating   State = "rotating"
	StateConnecting State = "connecting"
)

// Region tags where on a block a pointer-down landed.
type Region string

const (
	RegionBody          Region = "body"
	RegionResizeHandle  Region = "resize"
	RegionRotateHandle  Region = "rotate"
	RegionConnectHandle Region = "connect"
	// RegionNoDrag marks inline inputs and action buttons; pointer-downs
	// there never start a gesture.
	RegionNoDrag Region = "no-drag"
)

// Guides carries the active alignment guide lines (world coords) for
// the canvas to render during a drag. Nil pointers mean no guide.
type Guides struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}

// DraftLine is the temporary connection line from the source block's
// center to the live pointer, in world coordinates.
type DraftLine struct {
	FromX float64 `json:"fromX"`
	FromY float64 `json:"fromY"`
	ToX   float64 `json:"toX"`
	ToY   float64 `json:"toY"`
}

const (
	// EventGuides is emitted with Guides on every drag move and with an
	// empty Guides when the drag ends.
	EventGuides = "gesture:guides"
	// EventDraft is emitted with a DraftLine while connecting, and with
	// nil when the draft ends.
	EventDraft = "gesture:draft"
	// EventConnected is emitted when a connection draft commits.
	EventConnected = "gesture:connected"
)

// Machine runs the gesture state machine for one scene store.
type Machine struct {
	mu      sync.Mutex
	store   *scene.Store
	emitter service.EventEmitter
	ctx     context.Context

	state    State
	targetID string

	// Captured at gesture start.
	startPointerX float64
	startPointerY float64
	originX       float64
	originY       float64
	startX        float64
	startY        float64
	startW        float64
	startH        float64
	centerX       float64 // rotation center, screen space
	centerY       float64

	snapThreshold float64
}

// New creates an idle machine bound to a scene store.
func New(ctx context.Context, store *scene.Store, emitter service.EventEmitter, snapThreshold float64) *Machine {
	if snapThreshold <= 0 {
		snapThreshold = geometry.DefaultSnapThreshold
	}
	return &Machine{
		ctx:           ctx,
		store:         store,
		emitter:       emitter,
		state:         StateIdle,
		snapThreshold: snapThreshold,
	}
}

// State returns the current gesture state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// TargetID returns the id of the block the active gesture targets,
// or the connection-draft source while connecting.
func (m *Machine) TargetID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.targetID
}

// PointerDown handles a primary-button press. blockID is empty for
// presses on bare canvas; originX/originY is the canvas container's
// screen origin. Returns the state entered.
func (m *Machine) PointerDown(blockID string, region Region, pointerX, pointerY, originX, originY float64) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A pending connection draft claims every pointer-down: a press on
	// another block commits it, anything else cancels it.
	if m.state == StateConnecting {
		if blockID != "" && blockID != m.targetID {
			m.commitConnectionLocked(blockID)
		} else {
			m.finishLocked()
		}
		return m.state
	}

	if m.state != StateIdle || blockID == "" || region == RegionNoDrag {
		return m.state
	}

	b, ok := m.store.Get(blockID)
	if !ok {
		return m.state
	}

	m.targetID = blockID
	m.startPointerX = pointerX
	m.startPointerY = pointerY
	m.originX = originX
	m.originY = originY
	m.startX = b.X
	m.startY = b.Y
	m.startW = b.Width
	m.startH = b.Height

	switch region {
	case RegionResizeHandle:
		m.state = StateResizing
	case RegionRotateHandle:
		if !m.store.Config().AllowRotation {
			m.targetID = ""
			return m.state
		}
		cam := m.store.Camera()
		center := geometry.WorldToScreen(b.X+b.Width/2, b.Y+b.Height/2, originX, originY, cam)
		m.centerX = center.X
		m.centerY = center.Y
		m.state = StateRotating
	case RegionConnectHandle:
		m.state = StateConnecting
		m.emitDraftLocked(pointerX, pointerY)
	default:
		m.state = StateDragging
	}
	return m.state
}

// PointerMove handles a pointer move while a gesture is active.
// Listeners live at the document level on the frontend, so moves keep
// arriving after the pointer leaves the block. Returns the guides
// active after this move (drag only).
func (m *Machine) PointerMove(pointerX, pointerY float64) Guides {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateDragging:
		return m.dragMoveLocked(pointerX, pointerY)
	case StateResizing:
		m.resizeMoveLocked(pointerX, pointerY)
	case StateRotating:
		m.rotateMoveLocked(pointerX, pointerY)
	case StateConnecting:
		m.emitDraftLocked(pointerX, pointerY)
	}
	return Guides{}
}

func (m *Machine) dragMoveLocked(pointerX, pointerY float64) Guides {
	cam := m.store.Camera()
	dx := (pointerX - m.startPointerX) / cam.Zoom
	dy := (pointerY - m.startPointerY) / cam.Zoom

	candidate := geometry.Rect{X: m.startX + dx, Y: m.startY + dy, W: m.startW, H: m.startH}
	others := geometry.SnapRects(m.store.State().Blocks, m.targetID)
	snap := geometry.ComputeSnap(candidate, others, cam.Zoom, m.snapThreshold)

	x, y := candidate.X, candidate.Y
	var guides Guides
	if snap.X != nil {
		x = snap.X.Position
		guides.X = &snap.X.Guide
	}
	if snap.Y != nil {
		y = snap.Y.Position
		guides.Y = &snap.Y.Guide
	}

	// No-op if the block was removed mid-drag.
	m.store.MoveBlock(m.targetID, x, y)
	m.emit(EventGuides, guides)
	return guides
}

func (m *Machine) resizeMoveLocked(pointerX, pointerY float64) {
	cam := m.store.Camera()
	w := m.startW + (pointerX-m.startPointerX)/cam.Zoom
	h := m.startH + (pointerY-m.startPointerY)/cam.Zoom
	// The store clamps to the scene minimums. No snapping during resize.
	m.store.ResizeBlock(m.targetID, w, h)
}

func (m *Machine) rotateMoveLocked(pointerX, pointerY float64) {
	// +90 so the handle points up at zero rotation.
	deg := math.Atan2(pointerY-m.centerY, pointerX-m.centerX)*180/math.Pi + 90
	m.store.UpdateBlock(m.targetID, domain.BlockPatch{Rotation: &deg})
}

func (m *Machine) emitDraftLocked(pointerX, pointerY float64) {
	b, ok := m.store.Get(m.targetID)
	if !ok {
		m.finishLocked()
		return
	}
	cam := m.store.Camera()
	to := geometry.ScreenToWorld(pointerX, pointerY, m.originX, m.originY, cam)
	m.emit(EventDraft, DraftLine{
		FromX: b.X + b.Width/2,
		FromY: b.Y + b.Height/2,
		ToX:   to.X,
		ToY:   to.Y,
	})
}

// PointerUp ends a drag, resize or rotate. A connection draft stays
// active across pointer-up; it ends on the next pointer-down or on
// Cancel.
func (m *Machine) PointerUp() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateConnecting {
		return
	}
	m.finishLocked()
}

// StartConnection enters the connecting state from a menu action
// rather than a handle press.
func (m *Machine) StartConnection(blockID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateIdle {
		return false
	}
	if _, ok := m.store.Get(blockID); !ok {
		return false
	}
	m.targetID = blockID
	m.state = StateConnecting
	return true
}

// Cancel aborts the gesture in flight (Escape key, component
// teardown). Always safe to call.
func (m *Machine) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finishLocked()
}

func (m *Machine) commitConnectionLocked(toID string) {
	fromID := m.targetID
	if _, err := m.store.Connect(fromID, toID); err == nil {
		m.emit(EventConnected, map[string]string{"fromBlockId": fromID, "toBlockId": toID})
	}
	m.finishLocked()
}

// finishLocked resets the machine unconditionally and clears any
// guide or draft feedback.
func (m *Machine) finishLocked() {
	wasDragging := m.state == StateDragging
	wasConnecting := m.state == StateConnecting
	m.state = StateIdle
	m.targetID = ""
	if wasDragging {
		m.emit(EventGuides, Guides{})
	}
	if wasConnecting {
		m.emit(EventDraft, nil)
	}
}

func (m *Machine) emit(event string, data any) {
	if m.emitter != nil {
		m.emitter.Emit(m.ctx, event, data)
	}
}
