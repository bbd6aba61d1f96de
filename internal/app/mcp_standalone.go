package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"studyhub/internal/config"
	mcpserver "studyhub/internal/mcp"
	"studyhub/internal/persist"
	"studyhub/internal/scene"
	"studyhub/internal/storage"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no
// Wails frontend to push events to).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the app as a standalone MCP server on stdin/stdout
// with no GUI. Scene changes made by tools persist through the same
// adapters the GUI uses.
func ServeMCP(cfg *config.Config, log *zap.Logger) error {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	db, err := storage.New(cfg.Storage.DBPath, cfg.Storage.DataDir, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	kv := storage.NewKVStore(db)
	notes := scene.New(scene.NotesConfig())
	board := scene.New(scene.BoardConfig())

	adapters := []*persist.Adapter{
		persist.New(kv, notes, cfg.Persist.Debounce, log),
		persist.New(kv, board, cfg.Persist.Debounce, log),
	}
	for _, a := range adapters {
		a.MigrateLegacy(cfg.Storage.LegacyDir)
		a.Load()
		a.Attach()
	}
	defer func() {
		for _, a := range adapters {
			a.Flush()
		}
	}()

	srv := mcpserver.New(mcpserver.Deps{
		Emitter: noopEmitter{},
		Notes:   notes,
		Board:   board,
	})

	log.Info("mcp: starting standalone stdio server")
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
