package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"go.uber.org/zap"

	"studyhub/internal/domain"
	"studyhub/internal/scene"
)

// ─────────────────────────────────────────────────────────────
// Persistence Adapter — debounced scene serialization
// ─────────────────────────────────────────────────────────────
//
// Mutations hit the in-memory store synchronously; this adapter
// trails behind, coalescing bursts of changes into one write per
// debounce window. A crash inside the window loses at most that
// window's edits.
//
// Storage failures are logged and swallowed: persistence must never
// crash the app, and a failed load yields an empty scene.

// DefaultDebounce is the write-coalescing window.
const DefaultDebounce = 1500 * time.Millisecond

// KV is the external key-value boundary: JSON blobs per feature key.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Adapter persists one scene store through a KV boundary under keys
// "<name>-blocks", "<name>-connections", "<name>-folders" and
// "<name>-camera".
type Adapter struct {
	kv        KV
	store     *scene.Store
	log       *zap.Logger
	debounced func(func())
}

// New creates an adapter for a scene store. interval <= 0 selects
// DefaultDebounce.
func New(kv KV, store *scene.Store, interval time.Duration, log *zap.Logger) *Adapter {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{
		kv:        kv,
		store:     store,
		log:       log,
		debounced: debounce.New(interval),
	}
}

func (a *Adapter) key(part string) string {
	return a.store.Config().Name + "-" + part
}

// Attach hooks the adapter into the store's change notifications.
// Call after Load, or the initial Replace schedules a redundant save.
func (a *Adapter) Attach() {
	a.store.OnChange(func() {
		a.debounced(a.save)
	})
}

// Detach stops listening. Pending debounced writes may still fire.
func (a *Adapter) Detach() {
	a.store.OnChange(nil)
}

// Flush writes the current scene immediately, bypassing the
// debounce. Used on shutdown.
func (a *Adapter) Flush() {
	a.save()
}

func (a *Adapter) save() {
	st := a.store.State()

	parts := map[string]any{
		"blocks":      st.Blocks,
		"connections": st.Connections,
		"folders":     st.Folders,
		"camera":      st.Camera,
	}
	for part, v := range parts {
		data, err := json.Marshal(v)
		if err != nil {
			a.log.Error("persist: marshal failed", zap.String("key", a.key(part)), zap.Error(err))
			continue
		}
		if err := a.kv.Set(a.key(part), data); err != nil {
			a.log.Error("persist: write failed", zap.String("key", a.key(part)), zap.Error(err))
		}
	}
}

// Load reads the persisted scene into the store. Missing or corrupt
// keys load as their empty defaults, never as errors.
func (a *Adapter) Load() {
	st := domain.SceneState{Camera: domain.DefaultCamera()}

	a.loadPart("blocks", &st.Blocks)
	a.loadPart("connections", &st.Connections)
	a.loadPart("folders", &st.Folders)
	a.loadPart("camera", &st.Camera)

	a.store.Replace(st)
}

func (a *Adapter) loadPart(part string, target any) {
	data, ok, err := a.kv.Get(a.key(part))
	if err != nil {
		a.log.Error("persist: read failed", zap.String("key", a.key(part)), zap.Error(err))
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal(data, target); err != nil {
		a.log.Warn("persist: corrupt blob ignored", zap.String("key", a.key(part)), zap.Error(err))
	}
}

// ── Legacy migration ───────────────────────────────────────

// MigrateLegacy moves a scene out of the old per-scene JSON file
// store into the KV boundary, once, then deletes the file. Runs
// before Load; every failure is logged and ignored — migration is
// best effort and must never block startup.
func (a *Adapter) MigrateLegacy(legacyDir string) {
	name := a.store.Config().Name
	path := filepath.Join(legacyDir, name+".json")

	if _, ok, err := a.kv.Get(a.key("blocks")); err != nil || ok {
		return // already migrated (or boundary unavailable)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			a.log.Warn("legacy migration: read failed", zap.String("path", path), zap.Error(err))
		}
		return
	}

	var st domain.SceneState
	if err := json.Unmarshal(data, &st); err != nil {
		a.log.Warn("legacy migration: malformed file skipped", zap.String("path", path), zap.Error(err))
		return
	}

	if err := a.writeState(st); err != nil {
		a.log.Warn("legacy migration: write failed", zap.String("scene", name), zap.Error(err))
		return
	}
	if err := os.Remove(path); err != nil {
		a.log.Warn("legacy migration: cleanup failed", zap.String("path", path), zap.Error(err))
	}
	a.log.Info("legacy migration: scene imported", zap.String("scene", name))
}

func (a *Adapter) writeState(st domain.SceneState) error {
	parts := map[string]any{
		"blocks":      st.Blocks,
		"connections": st.Connections,
		"folders":     st.Folders,
		"camera":      st.Camera,
	}
	for part, v := range parts {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", part, err)
		}
		if err := a.kv.Set(a.key(part), data); err != nil {
			return err
		}
	}
	return nil
}
