package app

import (
	"context"
	"fmt"
	"path/filepath"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"studyhub/internal/config"
	"studyhub/internal/gesture"
	"studyhub/internal/persist"
	"studyhub/internal/scene"
	"studyhub/internal/storage"
	"studyhub/internal/watch"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context
	cfg *config.Config
	log *zap.Logger

	db       *storage.DB
	kv       *storage.KVStore
	snaps    *storage.SnapshotStore
	settings *storage.SettingsStore

	notes *scene.Store
	board *scene.Store

	notesPersist *persist.Adapter
	boardPersist *persist.Adapter
	backups      *persist.Backups

	notesGesture *gesture.Machine
	boardGesture *gesture.Machine

	watcher *watch.Watcher
}

// New creates a new App.
func New(cfg *config.Config, log *zap.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &App{cfg: cfg, log: log}
}

// Emit pushes an event to the frontend. Satisfies the engine's
// EventEmitter interface.
func (a *App) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	db, err := storage.New(a.cfg.Storage.DBPath, a.cfg.Storage.DataDir, a.log)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open database: %v", err)
		return
	}
	a.db = db
	a.kv = storage.NewKVStore(db)
	a.snaps = storage.NewSnapshotStore(db)
	a.settings = storage.NewSettingsStore(db)

	a.notes = scene.New(scene.NotesConfig())
	a.board = scene.New(scene.BoardConfig())

	a.notesPersist = persist.New(a.kv, a.notes, a.cfg.Persist.Debounce, a.log)
	a.boardPersist = persist.New(a.kv, a.board, a.cfg.Persist.Debounce, a.log)
	for _, p := range []*persist.Adapter{a.notesPersist, a.boardPersist} {
		p.MigrateLegacy(a.cfg.Storage.LegacyDir)
		p.Load()
		p.Attach()
	}

	a.notesGesture = gesture.New(ctx, a.notes, a, a.cfg.Canvas.SnapThreshold)
	a.boardGesture = gesture.New(ctx, a.board, a, a.cfg.Canvas.SnapThreshold)

	watcher, err := watch.New(ctx, a.notes, a, a.log)
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to create file watcher: %v", err)
	} else {
		a.watcher = watcher
		a.watcher.Sync()
	}

	a.backups = persist.NewBackups(a.snaps, []*scene.Store{a.notes, a.board}, a.cfg.Backup.Keep, a.log)
	a.backups.Start(a.cfg.Backup.Spec)

	a.restoreWindow(ctx)
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	a.saveWindow(ctx)

	if a.backups != nil {
		a.backups.Stop()
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.notesPersist != nil {
		a.notesPersist.Flush()
	}
	if a.boardPersist != nil {
		a.boardPersist.Flush()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// sceneByName resolves a binding's scene argument.
func (a *App) sceneByName(name string) (*scene.Store, error) {
	switch name {
	case a.notes.Config().Name:
		return a.notes, nil
	case a.board.Config().Name:
		return a.board, nil
	}
	return nil, fmt.Errorf("unknown scene %q", name)
}

func (a *App) gestureByName(name string) (*gesture.Machine, error) {
	switch name {
	case a.notes.Config().Name:
		return a.notesGesture, nil
	case a.board.Config().Name:
		return a.boardGesture, nil
	}
	return nil, fmt.Errorf("unknown scene %q", name)
}

// blockFilePath is where a code block's linked file lives.
func (a *App) blockFilePath(blockID, ext string) string {
	return filepath.Join(a.db.DataDir(), blockID+ext)
}
