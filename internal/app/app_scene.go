package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"studyhub/internal/domain"
	"studyhub/internal/render"
	"studyhub/internal/scene"
)

// ============================================================
// Scene bindings — blocks, connections, camera
// ============================================================

// GetScene returns the full state of one canvas.
func (a *App) GetScene(sceneName string) (domain.SceneState, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return domain.SceneState{}, err
	}
	return st.State(), nil
}

// CreateBlock adds a block at a world position. Code blocks on the
// notes canvas get a file on disk and a live watch on it.
func (a *App) CreateBlock(sceneName, blockType string, x, y float64) (domain.Block, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return domain.Block{}, err
	}

	t := domain.BlockType(blockType)
	if !t.Valid() {
		return domain.Block{}, fmt.Errorf("unknown block type %q", blockType)
	}

	b := st.AddBlock(t, x, y, nil)

	if st == a.notes && t == domain.BlockTypeCode {
		path := a.blockFilePath(b.ID, ".txt")
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return b, fmt.Errorf("create block file: %w", err)
		}
		st.UpdateBlock(b.ID, domain.BlockPatch{FilePath: &path})
		if a.watcher != nil {
			if err := a.watcher.Watch(b.ID, path); err != nil {
				a.log.Warn("watch new code block failed", zap.Error(err))
			}
		}
		b, _ = st.Get(b.ID)
	}

	return b, nil
}

// UpdateBlock applies a partial update. Unknown ids are a no-op.
func (a *App) UpdateBlock(sceneName, blockID string, patch domain.BlockPatch) error {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return err
	}
	st.UpdateBlock(blockID, patch)
	return nil
}

// MoveBlock sets a block's world position.
func (a *App) MoveBlock(sceneName, blockID string, x, y float64) error {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return err
	}
	st.MoveBlock(blockID, x, y)
	return nil
}

// ResizeBlock sets a block's size, clamped to the canvas minimums.
func (a *App) ResizeBlock(sceneName, blockID string, width, height float64) error {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return err
	}
	st.ResizeBlock(blockID, width, height)
	return nil
}

// ReorderBlock moves a block in the stacking order: "front", "back",
// "up", "down", or "index" with an explicit position.
func (a *App) ReorderBlock(sceneName, blockID, directive string, index int) error {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return err
	}
	st.ReorderZ(blockID, scene.ZDirective(directive), index)
	return nil
}

// DuplicateBlock clones a block with a small offset.
func (a *App) DuplicateBlock(sceneName, blockID string) (domain.Block, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return domain.Block{}, err
	}
	dup, ok := st.DuplicateBlock(blockID)
	if !ok {
		return domain.Block{}, fmt.Errorf("block %s not found", blockID)
	}
	return dup, nil
}

// ConnectBlocks adds a connection between two blocks.
func (a *App) ConnectBlocks(sceneName, fromID, toID string) (domain.Connection, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return domain.Connection{}, err
	}
	return st.Connect(fromID, toID)
}

// DisconnectBlocks removes a connection by id.
func (a *App) DisconnectBlocks(sceneName, connectionID string) error {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return err
	}
	st.Disconnect(connectionID)
	return nil
}

// GetEdgePaths returns the renderable connection curves for a canvas.
func (a *App) GetEdgePaths(sceneName string) ([]render.EdgePath, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return nil, err
	}
	state := st.State()
	return render.Project(state.Blocks, state.Connections), nil
}

// UpdateCamera pans or zooms the viewport. Zoom is clamped to the
// canvas range.
func (a *App) UpdateCamera(sceneName string, patch domain.CameraPatch) (domain.Camera, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return domain.Camera{}, err
	}
	return st.SetCamera(patch), nil
}

// ResetCamera recenters the viewport at origin, zoom 1.
func (a *App) ResetCamera(sceneName string) (domain.Camera, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return domain.Camera{}, err
	}
	return st.ResetCamera(), nil
}
