package app

import (
	"studyhub/internal/gesture"
)

// ============================================================
// Gesture bindings — pointer stream from the frontend
// ============================================================

// PointerDown begins a gesture on a block region. originX/originY is
// the canvas element's screen offset.
func (a *App) PointerDown(sceneName, blockID, region string, pointerX, pointerY, originX, originY float64) (string, error) {
	m, err := a.gestureByName(sceneName)
	if err != nil {
		return "", err
	}
	state := m.PointerDown(blockID, gesture.Region(region), pointerX, pointerY, originX, originY)
	return string(state), nil
}

// PointerMove advances the active gesture and returns the current
// snap guides, if any.
func (a *App) PointerMove(sceneName string, pointerX, pointerY float64) (gesture.Guides, error) {
	m, err := a.gestureByName(sceneName)
	if err != nil {
		return gesture.Guides{}, err
	}
	return m.PointerMove(pointerX, pointerY), nil
}

// PointerUp ends the active gesture. Pending connections survive
// until their second click.
func (a *App) PointerUp(sceneName string) error {
	m, err := a.gestureByName(sceneName)
	if err != nil {
		return err
	}
	m.PointerUp()
	return nil
}

// StartConnection arms connect mode from a block's connect handle.
func (a *App) StartConnection(sceneName, blockID string) (bool, error) {
	m, err := a.gestureByName(sceneName)
	if err != nil {
		return false, err
	}
	return m.StartConnection(blockID), nil
}

// CancelGesture aborts whatever gesture is active (Escape key).
func (a *App) CancelGesture(sceneName string) error {
	m, err := a.gestureByName(sceneName)
	if err != nil {
		return err
	}
	m.Cancel()
	return nil
}
