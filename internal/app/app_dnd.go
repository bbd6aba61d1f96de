package app

import (
	"fmt"

	"github.com/google/uuid"

	"studyhub/internal/domain"
	"studyhub/internal/geometry"
)

// ============================================================
// Drag-and-drop ingestion
// ============================================================
//
// The frontend hands over whatever was dropped as a payload string:
// either a plain block type ("container", "text", ...) or a template
// id ("kanban", "weekly-review"). Drop coordinates arrive in screen
// space and are converted through the camera before placement.

// templateBlock is one prefab block within a drop template, placed
// relative to the drop point.
type templateBlock struct {
	t         domain.BlockType
	dx, dy    float64
	w, h      float64
	content   string
	subBlocks []domain.SubBlock
}

func sub(kind domain.SubBlockKind, text string) domain.SubBlock {
	return domain.SubBlock{ID: uuid.New().String(), Kind: kind, Text: text}
}

func templateFor(id string) []templateBlock {
	switch id {
	case "kanban":
		col := func(title string, dx float64) templateBlock {
			return templateBlock{
				t: domain.BlockTypeContainer, dx: dx, w: 280, h: 360, content: title,
				subBlocks: []domain.SubBlock{
					sub(domain.SubBlockTodo, ""),
					sub(domain.SubBlockTodo, ""),
				},
			}
		}
		return []templateBlock{col("To Do", 0), col("Doing", 310), col("Done", 620)}

	case "weekly-review":
		return []templateBlock{{
			t: domain.BlockTypeContainer, w: 380, h: 420, content: "Weekly review",
			subBlocks: []domain.SubBlock{
				sub(domain.SubBlockHeading, "Wins"),
				sub(domain.SubBlockBullet, ""),
				sub(domain.SubBlockHeading, "Stuck on"),
				sub(domain.SubBlockBullet, ""),
				sub(domain.SubBlockHeading, "Next week"),
				sub(domain.SubBlockTodo, ""),
			},
		}}
	}
	return nil
}

// HandleDrop places whatever was dropped at the drop point. Returns
// the created blocks.
func (a *App) HandleDrop(sceneName, payload string, pointerX, pointerY, originX, originY float64) ([]domain.Block, error) {
	st, err := a.sceneByName(sceneName)
	if err != nil {
		return nil, err
	}

	world := geometry.ScreenToWorld(pointerX, pointerY, originX, originY, st.Camera())

	if t := domain.BlockType(payload); t.Valid() {
		b, err := a.CreateBlock(sceneName, payload, world.X, world.Y)
		if err != nil {
			return nil, err
		}
		return []domain.Block{b}, nil
	}

	tmpl := templateFor(payload)
	if tmpl == nil {
		return nil, fmt.Errorf("unknown drop payload %q", payload)
	}

	created := make([]domain.Block, 0, len(tmpl))
	for _, tb := range tmpl {
		patch := &domain.BlockPatch{Content: &tb.content}
		if tb.w > 0 {
			patch.Width = &tb.w
			patch.Height = &tb.h
		}
		if len(tb.subBlocks) > 0 {
			subs := tb.subBlocks
			patch.SubBlocks = &subs
		}
		created = append(created, st.AddBlock(tb.t, world.X+tb.dx, world.Y+tb.dy, patch))
	}
	return created, nil
}

// ListDropTemplates names the available drop templates.
func (a *App) ListDropTemplates() []string {
	return []string{"kanban", "weekly-review"}
}
