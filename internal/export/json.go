package export

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"

	"studyhub/internal/domain"
	"studyhub/internal/scene"
)

// ─────────────────────────────────────────────────────────────
// JSON export / import
// ─────────────────────────────────────────────────────────────

// BlocksJSON serializes the scene's block array, indented for humans.
func BlocksJSON(st *scene.Store) ([]byte, error) {
	data, err := json.MarshalIndent(st.State().Blocks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export blocks: %w", err)
	}
	return data, nil
}

// CopyBlocksJSON puts the block export on the system clipboard.
func CopyBlocksJSON(st *scene.Store) error {
	data, err := BlocksJSON(st)
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// probe checks the fields every imported entry must carry. Pointer
// fields distinguish "absent" from zero; a string where x should be
// numeric fails the unmarshal.
type probe struct {
	ID   *string  `json:"id"`
	Type *string  `json:"type"`
	X    *float64 `json:"x"`
}

// ImportBlocksJSON validates a block array and atomically replaces
// the scene's blocks with it. Any invalid entry rejects the whole
// payload and the scene is left untouched. Returns the number of
// imported blocks.
func ImportBlocksJSON(st *scene.Store, data []byte) (int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("import: payload is not a block array: %w", err)
	}

	for i, entry := range raw {
		var p probe
		if err := json.Unmarshal(entry, &p); err != nil {
			return 0, fmt.Errorf("import: entry %d is malformed: %w", i, err)
		}
		if p.ID == nil || *p.ID == "" {
			return 0, fmt.Errorf("import: entry %d is missing an id", i)
		}
		if p.Type == nil || !domain.BlockType(*p.Type).Valid() {
			return 0, fmt.Errorf("import: entry %d has an unknown type", i)
		}
		if p.X == nil {
			return 0, fmt.Errorf("import: entry %d is missing a numeric x position", i)
		}
	}

	var blocks []domain.Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return 0, fmt.Errorf("import: decode blocks: %w", err)
	}

	seen := map[string]bool{}
	for i, b := range blocks {
		if seen[b.ID] {
			return 0, fmt.Errorf("import: entry %d duplicates id %s", i, b.ID)
		}
		seen[b.ID] = true
	}

	next := st.State()
	next.Blocks = blocks

	// Connections only survive when both endpoints made it in.
	kept := next.Connections[:0]
	for _, c := range next.Connections {
		if seen[c.FromBlockID] && seen[c.ToBlockID] {
			kept = append(kept, c)
		}
	}
	next.Connections = kept

	st.Replace(next)
	return len(blocks), nil
}
