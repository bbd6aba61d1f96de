package scene

import (
	"sort"
	"time"

	"studyhub/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Lifecycle — trash, favorites and folders
// ─────────────────────────────────────────────────────────────
//
// Lifecycle operations are independent of spatial concerns. The
// trash policy: trashed blocks keep their connections (the renderer
// hides them); only permanent deletion cascades to connections.

// ToggleFavorite flips the favorite flag. Independent of trash state.
// No-op on unknown id.
func (s *Store) ToggleFavorite(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.blocks[i].Favorite = !s.blocks[i].Favorite
	s.blocks[i].UpdatedAt = time.Now()
	s.notify()
}

// Trash soft-deletes a block. On scenes without soft delete the
// block is removed outright.
func (s *Store) Trash(id string) {
	if !s.cfg.SoftDelete {
		s.RemoveBlock(id)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.blocks[i].Trashed = true
	s.blocks[i].UpdatedAt = time.Now()
	s.notify()
}

// RestoreFromTrash clears the trash flag. No-op on unknown id.
func (s *Store) RestoreFromTrash(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.blocks[i].Trashed = false
	s.blocks[i].UpdatedAt = time.Now()
	s.notify()
}

// PermanentlyDelete removes a block for good, cascading to every
// connection that references it. The app layer is responsible for
// confirming with the user first.
func (s *Store) PermanentlyDelete(id string) {
	s.RemoveBlock(id)
}

// EmptyTrash permanently deletes every trashed block and cascades
// their connections. Returns the number of blocks deleted.
func (s *Store) EmptyTrash() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var trashedIDs []string
	kept := s.blocks[:0]
	for _, b := range s.blocks {
		if b.Trashed {
			trashedIDs = append(trashedIDs, b.ID)
		} else {
			kept = append(kept, b)
		}
	}
	if len(trashedIDs) == 0 {
		return 0
	}
	s.blocks = kept
	for _, id := range trashedIDs {
		s.removeConnectionsOfLocked(id)
	}
	s.renumberZLocked()
	s.notify()
	return len(trashedIDs)
}

// ── Views ──────────────────────────────────────────────────

// Live returns non-trashed blocks in z order.
func (s *Store) Live() []domain.Block {
	return s.filter(func(b domain.Block) bool { return !b.Trashed })
}

// Trashed returns the trash view.
func (s *Store) Trashed() []domain.Block {
	return s.filter(func(b domain.Block) bool { return b.Trashed })
}

// Favorites returns non-trashed favorite blocks.
func (s *Store) Favorites() []domain.Block {
	return s.filter(func(b domain.Block) bool { return b.Favorite && !b.Trashed })
}

// InFolder returns non-trashed blocks referencing a folder name.
func (s *Store) InFolder(name string) []domain.Block {
	return s.filter(func(b domain.Block) bool { return b.Folder == name && !b.Trashed })
}

func (s *Store) filter(keep func(domain.Block) bool) []domain.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Block
	for _, b := range s.blocks {
		if keep(b) {
			out = append(out, cloneBlock(b))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// ── Folders ────────────────────────────────────────────────
//
// A folder is a plain name in a set maintained next to the blocks.
// Blocks reference folders by name, not by id.

// Folders returns the folder name set.
func (s *Store) Folders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.folders...)
}

// CreateFolder adds a folder name. Idempotent.
func (s *Store) CreateFolder(name string) {
	if name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.folders {
		if f == name {
			return
		}
	}
	s.folders = append(s.folders, name)
	s.notify()
}

// RenameFolder renames a folder and cascades the new name to every
// member block. If newName already exists the two folders merge.
func (s *Store) RenameFolder(oldName, newName string) {
	if oldName == "" || newName == "" || oldName == newName {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.folders[:0]
	exists := false
	for _, f := range s.folders {
		switch f {
		case oldName:
			found = true
		case newName:
			exists = true
			kept = append(kept, f)
		default:
			kept = append(kept, f)
		}
	}
	if !found {
		return
	}
	s.folders = kept
	if !exists {
		s.folders = append(s.folders, newName)
	}

	now := time.Now()
	for i := range s.blocks {
		if s.blocks[i].Folder == oldName {
			s.blocks[i].Folder = newName
			s.blocks[i].UpdatedAt = now
		}
	}
	s.notify()
}

// DeleteFolder removes a folder name and clears the reference on
// member blocks. The blocks themselves are kept.
func (s *Store) DeleteFolder(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.folders[:0]
	for _, f := range s.folders {
		if f == name {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return
	}
	s.folders = kept

	now := time.Now()
	for i := range s.blocks {
		if s.blocks[i].Folder == name {
			s.blocks[i].Folder = ""
			s.blocks[i].UpdatedAt = now
		}
	}
	s.notify()
}
