// Package watch keeps code blocks in sync with the files they link
// to. When an external editor saves a linked file, the block content
// is refreshed and the frontend is notified.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"studyhub/internal/domain"
	"studyhub/internal/scene"
	"studyhub/internal/service"
)

// EventFileChanged notifies the frontend that a block's linked file
// was rewritten on disk.
const EventFileChanged = "watch:file-changed"

// Watcher mirrors linked files into block content.
type Watcher struct {
	fsw     *fsnotify.Watcher
	store   *scene.Store
	emitter service.EventEmitter
	ctx     context.Context
	log     *zap.Logger

	mu       sync.RWMutex
	watching map[string]string // absolute file path -> block id
}

// New creates the watcher and starts its event loop.
func New(ctx context.Context, store *scene.Store, emitter service.EventEmitter, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	w := &Watcher{
		fsw:      fsw,
		store:    store,
		emitter:  emitter,
		ctx:      ctx,
		log:      log,
		watching: make(map[string]string),
	}
	go w.loop()
	return w, nil
}

// Watch links a block to a file. fsnotify watches directories, so the
// parent directory is registered and events are filtered by path.
func (w *Watcher) Watch(blockID, filePath string) error {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.watching[abs] = blockID
	w.mu.Unlock()

	if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", abs, err)
	}
	return nil
}

// Unwatch drops a block's file link.
func (w *Watcher) Unwatch(blockID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, id := range w.watching {
		if id == blockID {
			delete(w.watching, path)
			break
		}
	}
}

// Sync registers every code block in the scene that links a file.
// Called once after the scene is loaded.
func (w *Watcher) Sync() {
	for _, b := range w.store.State().Blocks {
		if b.Type != domain.BlockTypeCode || b.FilePath == "" || b.Trashed {
			continue
		}
		if err := w.Watch(b.ID, b.FilePath); err != nil {
			w.log.Warn("watch: link skipped", zap.String("block", b.ID), zap.Error(err))
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) {
				w.handleWrite(event.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch: watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleWrite(name string) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return
	}

	w.mu.RLock()
	blockID, watched := w.watching[abs]
	w.mu.RUnlock()
	if !watched {
		return
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		w.log.Warn("watch: read failed", zap.String("path", abs), zap.Error(err))
		return
	}

	content := strings.TrimSpace(string(data))
	w.store.UpdateBlock(blockID, domain.BlockPatch{Content: &content})

	if w.emitter != nil {
		w.emitter.Emit(w.ctx, EventFileChanged, map[string]string{
			"blockId": blockID,
			"path":    abs,
		})
	}
}
