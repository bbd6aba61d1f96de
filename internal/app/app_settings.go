package app

import (
	"context"
	"encoding/json"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"
)

// ============================================================
// App settings (window geometry, active canvas)
// ============================================================

const (
	settingWindow       = "window-size"
	settingActiveCanvas = "active-canvas"
)

type windowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (a *App) restoreWindow(ctx context.Context) {
	raw, err := a.settings.Get(settingWindow, "")
	if err != nil || raw == "" {
		return
	}
	var ws windowSize
	if json.Unmarshal([]byte(raw), &ws) != nil || ws.Width < 400 || ws.Height < 300 {
		return
	}
	wailsRuntime.WindowSetSize(ctx, ws.Width, ws.Height)
}

func (a *App) saveWindow(ctx context.Context) {
	if a.settings == nil {
		return
	}
	w, h := wailsRuntime.WindowGetSize(ctx)
	raw, err := json.Marshal(windowSize{Width: w, Height: h})
	if err != nil {
		return
	}
	if err := a.settings.Set(settingWindow, string(raw)); err != nil {
		a.log.Warn("save window size failed", zap.Error(err))
	}
}

// GetActiveCanvas returns the canvas shown on last quit.
func (a *App) GetActiveCanvas() string {
	name, err := a.settings.Get(settingActiveCanvas, a.notes.Config().Name)
	if err != nil {
		return a.notes.Config().Name
	}
	return name
}

// SetActiveCanvas records which canvas the user is on.
func (a *App) SetActiveCanvas(name string) error {
	if _, err := a.sceneByName(name); err != nil {
		return err
	}
	return a.settings.Set(settingActiveCanvas, name)
}
