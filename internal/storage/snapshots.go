package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one saved full-scene backup.
type Snapshot struct {
	ID        string    `json:"id"`
	Scene     string    `json:"scene"`
	DataJSON  string    `json:"dataJson"`
	CreatedAt time.Time `json:"createdAt"`
}

// SnapshotStore persists periodic scene backups.
type SnapshotStore struct {
	db *DB
}

func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save records a backup of one scene's serialized state.
func (s *SnapshotStore) Save(scene string, dataJSON []byte) (string, error) {
	id := uuid.New().String()
	_, err := s.db.conn.Exec(
		`INSERT INTO scene_snapshots (id, scene, data_json, created_at) VALUES (?, ?, ?, ?)`,
		id, scene, string(dataJSON), time.Now(),
	)
	if err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return id, nil
}

// List returns a scene's snapshots, newest first.
func (s *SnapshotStore) List(scene string) ([]Snapshot, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, scene, data_json, created_at FROM scene_snapshots
		 WHERE scene = ? ORDER BY created_at DESC`, scene,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var sn Snapshot
		if err := rows.Scan(&sn.ID, &sn.Scene, &sn.DataJSON, &sn.CreatedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, sn)
	}
	return snaps, rows.Err()
}

// Get returns one snapshot by id.
func (s *SnapshotStore) Get(id string) (*Snapshot, error) {
	sn := &Snapshot{}
	err := s.db.conn.QueryRow(
		`SELECT id, scene, data_json, created_at FROM scene_snapshots WHERE id = ?`, id,
	).Scan(&sn.ID, &sn.Scene, &sn.DataJSON, &sn.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return sn, nil
}

// Prune deletes all but the newest keep snapshots for a scene.
func (s *SnapshotStore) Prune(scene string, keep int) error {
	_, err := s.db.conn.Exec(
		`DELETE FROM scene_snapshots WHERE scene = ? AND id NOT IN (
			SELECT id FROM scene_snapshots WHERE scene = ? ORDER BY created_at DESC LIMIT ?
		)`, scene, scene, keep,
	)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
