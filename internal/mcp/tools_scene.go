package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerSceneTools() {
	// ── list_scenes ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_scenes",
		mcp.WithDescription("List the available canvases and which one is active"),
	), s.handleListScenes)

	// ── set_active_scene ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_active_scene",
		mcp.WithDescription("Set the canvas that scene tools operate on by default"),
		mcp.WithString("scene", mcp.Description("Scene name: notes or vision-board"), mcp.Required()),
	), s.handleSetActiveScene)

	// ── get_scene ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_scene",
		mcp.WithDescription("Get a canvas's full state: blocks, connections, folders, camera"),
		mcp.WithString("scene", mcp.Description("Scene name (optional, defaults to active scene)")),
	), s.handleGetScene)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleListScenes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type sceneInfo struct {
		Name   string `json:"name"`
		Active bool   `json:"active"`
		Blocks int    `json:"blocks"`
	}
	var infos []sceneInfo
	for name, st := range s.scenes {
		infos = append(infos, sceneInfo{
			Name:   name,
			Active: name == s.activeScene,
			Blocks: len(st.Live()),
		})
	}
	return jsonResult(infos)
}

func (s *Server) handleSetActiveScene(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, _ := args["scene"].(string)
	if _, ok := s.scenes[name]; !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	s.activeScene = name
	return textResult(fmt.Sprintf("Active scene set to %s", name)), nil
}

func (s *Server) handleGetScene(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, st, err := s.resolveScene(req.GetArguments())
	if err != nil {
		return nil, err
	}
	return jsonResult(st.State())
}
