package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"studyhub/internal/domain"
)

func (s *Server) registerBlockTools() {
	// ── create_block ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_block",
		mcp.WithDescription("Create a new block on a canvas. Position is auto-calculated if not provided."),
		mcp.WithString("type",
			mcp.Description("Block type: container, code, folder, text, video, image"),
			mcp.Required(),
		),
		mcp.WithString("scene", mcp.Description("Scene name (optional, defaults to active scene)")),
		mcp.WithNumber("x", mcp.Description("X position (optional, auto-layout if omitted)")),
		mcp.WithNumber("y", mcp.Description("Y position (optional, auto-layout if omitted)")),
		mcp.WithNumber("width", mcp.Description("Width (optional, uses the type default)")),
		mcp.WithNumber("height", mcp.Description("Height (optional, uses the type default)")),
		mcp.WithString("content", mcp.Description("Initial content for the block (optional)")),
	), s.handleCreateBlock)

	// ── update_block_content ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_block_content",
		mcp.WithDescription("Update the content of an existing block"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithString("content", mcp.Description("New content"), mcp.Required()),
		mcp.WithString("scene", mcp.Description("Scene name (optional, defaults to active scene)")),
	), s.handleUpdateBlockContent)

	// ── list_blocks ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_blocks",
		mcp.WithDescription("List the live blocks on a canvas, optionally filtered by type"),
		mcp.WithString("scene", mcp.Description("Scene name (optional, defaults to active scene)")),
		mcp.WithString("type", mcp.Description("Filter by block type (optional)")),
	), s.handleListBlocks)

	// ── move_block ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_block",
		mcp.WithDescription("Move a block to a new position on the canvas"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("New X position"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("New Y position"), mcp.Required()),
		mcp.WithString("scene", mcp.Description("Scene name (optional, defaults to active scene)")),
	), s.handleMoveBlock)

	// ── resize_block ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("resize_block",
		mcp.WithDescription("Resize a block. Sizes are clamped to the canvas minimums."),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("New width"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("New height"), mcp.Required()),
		mcp.WithString("scene", mcp.Description("Scene name (optional, defaults to active scene)")),
	), s.handleResizeBlock)

	// ── delete_block (destructive) ─────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_block",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete a block. On the notes canvas it goes to the trash; on the vision board it is gone for good."),
		mcp.WithString("blockId", mcp.Description("Block ID to delete"), mcp.Required()),
		mcp.WithString("scene", mcp.Description("Scene name (optional, defaults to active scene)")),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteBlock)

	// ── duplicate_block ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("duplicate_block",
		mcp.WithDescription("Duplicate a block with a small offset"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithString("scene", mcp.Description("Scene name (optional, defaults to active scene)")),
	), s.handleDuplicateBlock)

	// ── connect_blocks ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("connect_blocks",
		mcp.WithDescription("Draw a connection between two blocks"),
		mcp.WithString("fromBlockId", mcp.Description("Source block ID"), mcp.Required()),
		mcp.WithString("toBlockId", mcp.Description("Target block ID"), mcp.Required()),
		mcp.WithString("scene", mcp.Description("Scene name (optional, defaults to active scene)")),
	), s.handleConnectBlocks)

	// ── disconnect_blocks ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("disconnect_blocks",
		mcp.WithDescription("Remove a connection by id"),
		mcp.WithString("connectionId", mcp.Description("Connection ID"), mcp.Required()),
		mcp.WithString("scene", mcp.Description("Scene name (optional, defaults to active scene)")),
	), s.handleDisconnectBlocks)

	// ── batch_move_blocks ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("batch_move_blocks",
		mcp.WithDescription("Move multiple blocks by a relative offset (dx, dy)"),
		mcp.WithString("blockIds", mcp.Description("Comma-separated block IDs"), mcp.Required()),
		mcp.WithNumber("dx", mcp.Description("Horizontal offset"), mcp.Required()),
		mcp.WithNumber("dy", mcp.Description("Vertical offset"), mcp.Required()),
		mcp.WithString("scene", mcp.Description("Scene name (optional, defaults to active scene)")),
	), s.handleBatchMoveBlocks)

	// ── arrange_blocks ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("arrange_blocks",
		mcp.WithDescription("Auto-arrange the live blocks on a canvas in a grid layout"),
		mcp.WithString("scene", mcp.Description("Scene name (optional, defaults to active scene)")),
		mcp.WithNumber("startX", mcp.Description("Starting X position (default 0)")),
		mcp.WithNumber("startY", mcp.Description("Starting Y position (default 0)")),
	), s.handleArrangeBlocks)
}

func boolPtr(v bool) *bool { return &v }

// blockSummary is the compact listing shape returned by list_blocks.
type blockSummary struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Z        int     `json:"z"`
	Content  string  `json:"content,omitempty"`
	Folder   string  `json:"folder,omitempty"`
	Favorite bool    `json:"favorite,omitempty"`
}

func summarizeBlock(b domain.Block) blockSummary {
	content := b.Content
	if len(content) > 120 {
		content = content[:120] + "…"
	}
	return blockSummary{
		ID: b.ID, Type: string(b.Type),
		X: b.X, Y: b.Y, Width: b.Width, Height: b.Height, Z: b.Z,
		Content: content, Folder: b.Folder, Favorite: b.Favorite,
	}
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleCreateBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, st, err := s.resolveScene(args)
	if err != nil {
		return nil, err
	}

	blockType, _ := args["type"].(string)
	t := domain.BlockType(blockType)
	if !t.Valid() {
		return nil, fmt.Errorf("unknown block type %q", blockType)
	}

	defW, defH := domain.DefaultSize(t)
	w := getFloat(args, "width", defW)
	h := getFloat(args, "height", defH)

	// Auto-layout if position not provided
	x, hasX := args["x"].(float64)
	y, hasY := args["y"].(float64)
	if !hasX || !hasY {
		x, y = s.layout.NextPosition(st.Live(), w, h)
	}

	patch := &domain.BlockPatch{Width: &w, Height: &h}
	if content, ok := args["content"].(string); ok && content != "" {
		patch.Content = &content
	}

	block := st.AddBlock(t, x, y, patch)
	s.emitSceneChanged(ctx, name)
	return jsonResult(block)
}

func (s *Server) handleUpdateBlockContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, st, err := s.resolveScene(args)
	if err != nil {
		return nil, err
	}

	blockID, _ := args["blockId"].(string)
	if _, ok := st.Get(blockID); !ok {
		return nil, fmt.Errorf("block %s not found", blockID)
	}

	content, _ := args["content"].(string)
	st.UpdateBlock(blockID, domain.BlockPatch{Content: &content})

	s.emitSceneChanged(ctx, name)
	return textResult(fmt.Sprintf("Block %s content updated", blockID)), nil
}

func (s *Server) handleListBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	_, st, err := s.resolveScene(args)
	if err != nil {
		return nil, err
	}

	filterType, _ := args["type"].(string)

	var summaries []blockSummary
	for _, b := range st.Live() {
		if filterType != "" && string(b.Type) != filterType {
			continue
		}
		summaries = append(summaries, summarizeBlock(b))
	}
	return jsonResult(summaries)
}

func (s *Server) handleMoveBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, st, err := s.resolveScene(args)
	if err != nil {
		return nil, err
	}

	blockID, _ := args["blockId"].(string)
	if _, ok := st.Get(blockID); !ok {
		return nil, fmt.Errorf("block %s not found", blockID)
	}

	st.MoveBlock(blockID, getFloat(args, "x", 0), getFloat(args, "y", 0))
	s.emitSceneChanged(ctx, name)
	return textResult(fmt.Sprintf("Block %s moved", blockID)), nil
}

func (s *Server) handleResizeBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, st, err := s.resolveScene(args)
	if err != nil {
		return nil, err
	}

	blockID, _ := args["blockId"].(string)
	if _, ok := st.Get(blockID); !ok {
		return nil, fmt.Errorf("block %s not found", blockID)
	}

	st.ResizeBlock(blockID, getFloat(args, "width", 0), getFloat(args, "height", 0))
	s.emitSceneChanged(ctx, name)

	b, _ := st.Get(blockID)
	return textResult(fmt.Sprintf("Block %s resized to %.0fx%.0f", blockID, b.Width, b.Height)), nil
}

func (s *Server) handleDeleteBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, st, err := s.resolveScene(args)
	if err != nil {
		return nil, err
	}

	blockID, _ := args["blockId"].(string)
	if _, ok := st.Get(blockID); !ok {
		return nil, fmt.Errorf("block %s not found", blockID)
	}

	st.Trash(blockID)
	s.emitSceneChanged(ctx, name)

	if st.Config().SoftDelete {
		return textResult(fmt.Sprintf("Block %s moved to trash", blockID)), nil
	}
	return textResult(fmt.Sprintf("Block %s deleted", blockID)), nil
}

func (s *Server) handleDuplicateBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, st, err := s.resolveScene(args)
	if err != nil {
		return nil, err
	}

	blockID, _ := args["blockId"].(string)
	dup, ok := st.DuplicateBlock(blockID)
	if !ok {
		return nil, fmt.Errorf("block %s not found", blockID)
	}

	s.emitSceneChanged(ctx, name)
	return jsonResult(dup)
}

func (s *Server) handleConnectBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, st, err := s.resolveScene(args)
	if err != nil {
		return nil, err
	}

	fromID, _ := args["fromBlockId"].(string)
	toID, _ := args["toBlockId"].(string)

	conn, err := st.Connect(fromID, toID)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	s.emitSceneChanged(ctx, name)
	return jsonResult(conn)
}

func (s *Server) handleDisconnectBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, st, err := s.resolveScene(args)
	if err != nil {
		return nil, err
	}

	connID, _ := args["connectionId"].(string)
	st.Disconnect(connID)

	s.emitSceneChanged(ctx, name)
	return textResult(fmt.Sprintf("Connection %s removed", connID)), nil
}

func (s *Server) handleBatchMoveBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, st, err := s.resolveScene(args)
	if err != nil {
		return nil, err
	}

	idsArg, _ := args["blockIds"].(string)
	dx := getFloat(args, "dx", 0)
	dy := getFloat(args, "dy", 0)

	moved := 0
	for _, id := range strings.Split(idsArg, ",") {
		id = strings.TrimSpace(id)
		b, ok := st.Get(id)
		if !ok {
			continue
		}
		st.MoveBlock(id, b.X+dx, b.Y+dy)
		moved++
	}

	s.emitSceneChanged(ctx, name)
	return textResult(fmt.Sprintf("Moved %d blocks by (%.0f, %.0f)", moved, dx, dy)), nil
}

func (s *Server) handleArrangeBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, st, err := s.resolveScene(args)
	if err != nil {
		return nil, err
	}

	blocks := st.Live()
	plan := s.layout.ArrangePlan(blocks, getFloat(args, "startX", 0), getFloat(args, "startY", 0))
	for i, b := range blocks {
		st.MoveBlock(b.ID, plan[i][0], plan[i][1])
	}

	s.emitSceneChanged(ctx, name)
	return textResult(fmt.Sprintf("Arranged %d blocks", len(blocks))), nil
}
