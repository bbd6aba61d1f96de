package persist

import (
	"encoding/json"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"studyhub/internal/scene"
	"studyhub/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Scheduled scene backups
// ─────────────────────────────────────────────────────────────

// DefaultBackupSpec captures a snapshot at the top of every hour.
const DefaultBackupSpec = "0 * * * *"

// DefaultBackupKeep is how many snapshots survive pruning, per scene.
const DefaultBackupKeep = 24

// Backups periodically snapshots every registered scene into the
// snapshot store and prunes old entries.
type Backups struct {
	snaps  *storage.SnapshotStore
	scenes []*scene.Store
	log    *zap.Logger
	sched  *cron.Cron
	keep   int
}

// NewBackups creates the backup scheduler for the given scenes.
func NewBackups(snaps *storage.SnapshotStore, scenes []*scene.Store, keep int, log *zap.Logger) *Backups {
	if keep <= 0 {
		keep = DefaultBackupKeep
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Backups{snaps: snaps, scenes: scenes, keep: keep, log: log}
}

// Start schedules snapshots with a cron expression. An invalid
// expression is logged and backups stay disabled.
func (b *Backups) Start(spec string) {
	if spec == "" {
		spec = DefaultBackupSpec
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, b.Run); err != nil {
		b.log.Warn("backups: invalid cron expression, backups disabled",
			zap.String("spec", spec), zap.Error(err))
		return
	}
	c.Start()
	b.sched = c
	b.log.Info("backups: scheduled", zap.String("spec", spec), zap.Int("keep", b.keep))
}

// Stop halts the scheduler.
func (b *Backups) Stop() {
	if b.sched != nil {
		b.sched.Stop()
		b.sched = nil
	}
}

// Run captures one snapshot per scene right now.
func (b *Backups) Run() {
	for _, s := range b.scenes {
		name := s.Config().Name
		data, err := json.Marshal(s.State())
		if err != nil {
			b.log.Error("backups: marshal failed", zap.String("scene", name), zap.Error(err))
			continue
		}
		if _, err := b.snaps.Save(name, data); err != nil {
			b.log.Error("backups: save failed", zap.String("scene", name), zap.Error(err))
			continue
		}
		if err := b.snaps.Prune(name, b.keep); err != nil {
			b.log.Warn("backups: prune failed", zap.String("scene", name), zap.Error(err))
		}
	}
}
