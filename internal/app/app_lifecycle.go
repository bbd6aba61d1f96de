package app

import (
	"fmt"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"studyhub/internal/domain"
)

// ============================================================
// Lifecycle bindings — favorites, trash, folders
// ============================================================

// ToggleFavorite flips a block's favorite flag.
func (a *App) ToggleFavorite(sceneName, blockID string) error {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return err
	}
	st.ToggleFavorite(blockID)
	return nil
}

// TrashBlock deletes a block. On the notes canvas it goes to the
// trash; on the vision board deletion is immediate and final.
func (a *App) TrashBlock(sceneName, blockID string) error {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return err
	}
	st.Trash(blockID)
	return nil
}

// RestoreBlock brings a trashed block back, with its connections.
func (a *App) RestoreBlock(sceneName, blockID string) error {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return err
	}
	st.RestoreFromTrash(blockID)
	return nil
}

// PermanentlyDeleteBlock removes a trashed block for good, after a
// native confirmation dialog. Connections cascade.
func (a *App) PermanentlyDeleteBlock(sceneName, blockID string) error {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return err
	}

	ok, err := a.confirm("Delete permanently?", "This block and its connections will be gone for good.")
	if err != nil || !ok {
		return err
	}

	if a.watcher != nil {
		a.watcher.Unwatch(blockID)
	}
	st.PermanentlyDelete(blockID)
	return nil
}

// EmptyTrash permanently deletes every trashed block, after a native
// confirmation dialog. Returns the number of blocks removed.
func (a *App) EmptyTrash(sceneName string) (int, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return 0, err
	}

	ok, err := a.confirm("Empty trash?", "Every trashed block will be gone for good.")
	if err != nil || !ok {
		return 0, err
	}
	return st.EmptyTrash(), nil
}

// ListTrash returns the trashed blocks, bottom to top.
func (a *App) ListTrash(sceneName string) ([]domain.Block, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return nil, err
	}
	return st.Trashed(), nil
}

// ListFavorites returns the live favorite blocks.
func (a *App) ListFavorites(sceneName string) ([]domain.Block, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return nil, err
	}
	return st.Favorites(), nil
}

// ListFolder returns the live blocks filed under a folder.
func (a *App) ListFolder(sceneName, folder string) ([]domain.Block, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return nil, err
	}
	return st.InFolder(folder), nil
}

// ListFolders returns the folder names, sorted.
func (a *App) ListFolders(sceneName string) ([]string, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return nil, err
	}
	return st.Folders(), nil
}

// CreateFolder adds a folder. Creating an existing folder is a no-op.
func (a *App) CreateFolder(sceneName, name string) error {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return err
	}
	st.CreateFolder(name)
	return nil
}

// RenameFolder renames a folder and refiles its blocks. Renaming onto
// an existing folder merges the two.
func (a *App) RenameFolder(sceneName, oldName, newName string) error {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return err
	}
	st.RenameFolder(oldName, newName)
	return nil
}

// DeleteFolder removes a folder; its blocks stay, unfiled. Deleting
// a folder that still has members asks for confirmation first.
func (a *App) DeleteFolder(sceneName, name string) error {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return err
	}
	if len(st.InFolder(name)) > 0 {
		ok, err := a.confirm("Delete folder?", fmt.Sprintf("Blocks filed under %q will be unfiled, not deleted.", name))
		if err != nil || !ok {
			return err
		}
	}
	st.DeleteFolder(name)
	return nil
}

// confirm shows a native yes/no dialog.
func (a *App) confirm(title, message string) (bool, error) {
	choice, err := wailsRuntime.MessageDialog(a.ctx, wailsRuntime.MessageDialogOptions{
		Type:          wailsRuntime.QuestionDialog,
		Title:         title,
		Message:       message,
		Buttons:       []string{"Yes", "Cancel"},
		DefaultButton: "Cancel",
	})
	if err != nil {
		return false, fmt.Errorf("dialog: %w", err)
	}
	return choice == "Yes", nil
}
