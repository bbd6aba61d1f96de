package domain

import "time"

type BlockType string

const (
	// Notes canvas block types.
	BlockTypeContainer BlockType = "container"
	BlockTypeCode      BlockType = "code"
	BlockTypeFolder    BlockType = "folder"
	// Vision board block types.
	BlockTypeText  BlockType = "text"
	BlockTypeVideo BlockType = "video"
	// Shared.
	BlockTypeImage BlockType = "image"
)

// AllBlockTypes enumerates every valid block type. Used by import
// validation and the MCP tool descriptions.
var AllBlockTypes = []BlockType{
	BlockTypeContainer, BlockTypeCode, BlockTypeFolder,
	BlockTypeText, BlockTypeVideo, BlockTypeImage,
}

func (t BlockType) Valid() bool {
	switch t {
	case BlockTypeContainer, BlockTypeCode, BlockTypeFolder,
		BlockTypeText, BlockTypeVideo, BlockTypeImage:
		return true
	}
	return false
}

type SubBlockKind string

const (
	SubBlockHeading SubBlockKind = "heading"
	SubBlockBullet  SubBlockKind = "bullet"
	SubBlockTodo    SubBlockKind = "todo"
	SubBlockTable   SubBlockKind = "table"
	SubBlockCallout SubBlockKind = "callout"
	SubBlockDivider SubBlockKind = "divider"
	SubBlockQuote   SubBlockKind = "quote"
	SubBlockToggle  SubBlockKind = "toggle"
)

// SubBlock is one typed mini-block inside a container block.
// Toggle sub-blocks nest children; tables keep rows as a cell grid.
type SubBlock struct {
	ID       string       `json:"id"`
	Kind     SubBlockKind `json:"kind"`
	Text     string       `json:"text"`
	Checked  bool         `json:"checked,omitempty"`
	Rows     [][]string   `json:"rows,omitempty"`
	Children []SubBlock   `json:"children,omitempty"`
}

// TextStyle holds the visual style of a text block.
type TextStyle struct {
	Font       string  `json:"font"`
	Size       float64 `json:"size"`
	Color      string  `json:"color"`
	Weight     string  `json:"weight"`
	Decoration string  `json:"decoration"`
	Border     string  `json:"border"`
}

// Block is one positioned item on a canvas. Geometry is in absolute
// world-space units for both canvases.
type Block struct {
	ID       string    `json:"id"`
	Type     BlockType `json:"type"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Z        int       `json:"z"`
	Rotation float64   `json:"rotation,omitempty"` // degrees, vision board only

	Content   string     `json:"content"`             // free text, media URL, or data URL
	SubBlocks []SubBlock `json:"subBlocks,omitempty"` // container blocks
	Style     *TextStyle `json:"style,omitempty"`     // text blocks
	FilePath  string     `json:"filePath,omitempty"`  // code blocks linked to a file on disk

	// Organizational metadata (notes canvas only).
	Folder   string   `json:"folder,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Favorite bool     `json:"favorite"`
	Trashed  bool     `json:"trashed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlockPatch is a typed partial update. Nil fields are left untouched.
type BlockPatch struct {
	X         *float64    `json:"x,omitempty"`
	Y         *float64    `json:"y,omitempty"`
	Width     *float64    `json:"width,omitempty"`
	Height    *float64    `json:"height,omitempty"`
	Rotation  *float64    `json:"rotation,omitempty"`
	Content   *string     `json:"content,omitempty"`
	SubBlocks *[]SubBlock `json:"subBlocks,omitempty"`
	Style     *TextStyle  `json:"style,omitempty"`
	FilePath  *string     `json:"filePath,omitempty"`
	Folder    *string     `json:"folder,omitempty"`
	Tags      *[]string   `json:"tags,omitempty"`
}

// Apply merges the patch into b. It does not touch UpdatedAt; the
// scene store refreshes that on every successful mutation.
func (p BlockPatch) Apply(b *Block) {
	if p.X != nil {
		b.X = *p.X
	}
	if p.Y != nil {
		b.Y = *p.Y
	}
	if p.Width != nil {
		b.Width = *p.Width
	}
	if p.Height != nil {
		b.Height = *p.Height
	}
	if p.Rotation != nil {
		b.Rotation = *p.Rotation
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.SubBlocks != nil {
		b.SubBlocks = *p.SubBlocks
	}
	if p.Style != nil {
		st := *p.Style
		b.Style = &st
	}
	if p.FilePath != nil {
		b.FilePath = *p.FilePath
	}
	if p.Folder != nil {
		b.Folder = *p.Folder
	}
	if p.Tags != nil {
		b.Tags = *p.Tags
	}
}

// DefaultSize returns the initial width and height for a block type.
func DefaultSize(t BlockType) (w, h float64) {
	switch t {
	case BlockTypeContainer:
		return 320, 240
	case BlockTypeCode:
		return 420, 280
	case BlockTypeFolder:
		return 200, 150
	case BlockTypeText:
		return 220, 80
	case BlockTypeImage:
		return 280, 210
	case BlockTypeVideo:
		return 360, 220
	}
	return 300, 200
}

// DefaultContent returns the initial content for a block type.
func DefaultContent(t BlockType) string {
	if t == BlockTypeText {
		return "New note"
	}
	return ""
}

// DefaultStyle returns the initial style for text blocks, nil otherwise.
func DefaultStyle(t BlockType) *TextStyle {
	if t != BlockTypeText {
		return nil
	}
	return &TextStyle{
		Font:   "Inter",
		Size:   16,
		Color:  "#e8e8ec",
		Weight: "normal",
	}
}
