package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"studyhub/internal/scene"
	"studyhub/internal/service"
)

// Server is the MCP server for the canvas engine. It exposes scene
// tools so AI agents can read and manipulate both canvases.
type Server struct {
	mcp     *server.MCPServer
	emitter service.EventEmitter
	layout  *LayoutEngine
	scenes  map[string]*scene.Store

	// Active scene context (set by set_active_scene tool)
	activeScene string
}

// Deps holds the dependencies passed from the app layer.
type Deps struct {
	Emitter service.EventEmitter
	Notes   *scene.Store
	Board   *scene.Store
}

// New creates and configures the MCP server with all scene tools.
func New(deps Deps) *Server {
	s := &Server{
		emitter: deps.Emitter,
		layout:  NewLayoutEngine(),
		scenes: map[string]*scene.Store{
			deps.Notes.Config().Name: deps.Notes,
			deps.Board.Config().Name: deps.Board,
		},
		activeScene: deps.Notes.Config().Name,
	}

	s.mcp = server.NewMCPServer(
		"studyhub-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerSceneTools()
	s.registerBlockTools()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// emitSceneChanged notifies the frontend that a scene was mutated
// from the MCP side.
func (s *Server) emitSceneChanged(ctx context.Context, sceneName string) {
	if s.emitter != nil {
		s.emitter.Emit(ctx, "mcp:scene-changed", map[string]string{"scene": sceneName})
	}
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// resolveScene returns the scene from tool args or the active scene.
func (s *Server) resolveScene(args map[string]any) (string, *scene.Store, error) {
	name := s.activeScene
	if n, ok := args["scene"].(string); ok && n != "" {
		name = n
	}
	st, ok := s.scenes[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown scene %q", name)
	}
	return name, st, nil
}

// getFloat reads a numeric arg with a fallback.
func getFloat(args map[string]any, key string, fallback float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return fallback
}
