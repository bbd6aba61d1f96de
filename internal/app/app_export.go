package app

import (
	"fmt"
	"path/filepath"
	"strings"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"studyhub/internal/export"
)

// ============================================================
// Vision board export / import
// ============================================================

// ExportBoardJSON returns the board's blocks as pretty JSON.
func (a *App) ExportBoardJSON() (string, error) {
	data, err := export.BlocksJSON(a.board)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CopyBoardJSON puts the board export on the system clipboard.
func (a *App) CopyBoardJSON() error {
	return export.CopyBlocksJSON(a.board)
}

// ImportBoardJSON validates a block array and replaces the board with
// it. A single bad entry rejects the whole payload. Overwriting a
// non-empty board asks for confirmation first.
func (a *App) ImportBoardJSON(payload string) (int, error) {
	if len(a.board.Live()) > 0 {
		ok, err := a.confirm("Replace board?", "Importing will overwrite everything on the vision board.")
		if err != nil || !ok {
			return 0, err
		}
	}
	return export.ImportBlocksJSON(a.board, []byte(payload))
}

// ClearBoard removes every block from the vision board, after a
// native confirmation dialog.
func (a *App) ClearBoard() error {
	ok, err := a.confirm("Clear board?", "Every block on the vision board will be gone for good.")
	if err != nil || !ok {
		return err
	}
	st := a.board.State()
	st.Blocks = nil
	st.Connections = nil
	a.board.Replace(st)
	return nil
}

// ExportBoardImage rasterizes the board and writes it where the user
// chooses. The format follows the chosen extension.
func (a *App) ExportBoardImage(scale float64) (string, error) {
	path, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           "Export board image",
		DefaultFilename: "vision-board.png",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "PNG image", Pattern: "*.png"},
			{DisplayName: "JPEG image", Pattern: "*.jpg;*.jpeg"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("save dialog: %w", err)
	}
	if path == "" {
		return "", nil // user cancelled
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		path += ".png"
	}

	if err := export.ExportImage(a.board, path, export.ImageOptions{Scale: scale}); err != nil {
		return "", err
	}
	return path, nil
}
