// Package mcpserver exposes conversation history and settings as MCP tools,
// letting the assistant process manage its own history over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/daikw/ovasettings/internal/history"
	"github.com/daikw/ovasettings/internal/preset"
	"github.com/daikw/ovasettings/internal/settings"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

// Server wires the history manager and settings into an MCP server. The
// stdio transport dispatches tool calls on several workers; mu serializes
// every handler since the manager and config are single-writer.
type Server struct {
	mu      sync.Mutex
	history *history.Manager
	config  *settings.Config
	presets *preset.Manager
	mcp     *server.MCPServer
}

// New creates the server and registers its tools
func New(name, version string, h *history.Manager, config *settings.Config, presets *preset.Manager) *Server {
	s := &Server{
		history: h,
		config:  config,
		presets: presets,
		mcp:     server.NewMCPServer(name, version, server.WithToolCapabilities(false)),
	}

	filename := mcp.WithString("filename",
		mcp.Required(),
		mcp.Description("Conversation file name, e.g. 3.json"),
	)

	s.mcp.AddTool(mcp.NewTool("list_conversations",
		mcp.WithDescription("List saved conversations with a preview of their last message"),
	), s.serialize(s.handleList))
	s.mcp.AddTool(mcp.NewTool("get_conversation",
		mcp.WithDescription("Return the messages of one conversation"),
		filename,
	), s.serialize(s.handleGet))
	s.mcp.AddTool(mcp.NewTool("select_conversation",
		mcp.WithDescription("Make a conversation the current one"),
		filename,
	), s.serialize(s.handleSelect))
	s.mcp.AddTool(mcp.NewTool("new_conversation",
		mcp.WithDescription("Start a new empty conversation and select it"),
	), s.serialize(s.handleNew))
	s.mcp.AddTool(mcp.NewTool("delete_conversation",
		mcp.WithDescription("Delete a conversation; the first remaining one becomes current"),
		filename,
	), s.serialize(s.handleDelete))
	s.mcp.AddTool(mcp.NewTool("clear_conversations",
		mcp.WithDescription("Delete every conversation and start a fresh one"),
		mcp.WithBoolean("confirm",
			mcp.Required(),
			mcp.Description("Must be true; nothing is deleted otherwise"),
		),
	), s.serialize(s.handleClear))
	s.mcp.AddTool(mcp.NewTool("get_settings",
		mcp.WithDescription("Return the effective settings, defaults filled in"),
	), s.serialize(s.handleSettings))
	s.mcp.AddTool(mcp.NewTool("list_presets",
		mcp.WithDescription("List the available personality presets"),
	), s.serialize(s.handlePresets))

	return s
}

func (s *Server) serialize(h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return h(ctx, req)
	}
}

// MCP returns the underlying server
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves until stdin closes
func (s *Server) ServeStdio() error {
	log.Info().Msg("Serving MCP over stdio")
	return server.ServeStdio(s.mcp)
}

func (s *Server) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := s.history.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(summaries)
}

func (s *Server) handleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	messages, err := s.history.Messages(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(messages)
}

func (s *Server) handleSelect(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.history.Select(name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Selected %s", name)), nil
}

func (s *Server) handleNew(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := s.history.Create()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created %s", name)), nil
}

func (s *Server) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.history.Delete(name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	current, _ := s.history.Current()
	return mcp.NewToolResultText(fmt.Sprintf("Deleted %s; current conversation is %s", name, current)), nil
}

func (s *Server) handleClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	confirm := req.GetBool("confirm", false)
	done, err := s.history.ClearAll(func(string) bool { return confirm })
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !done {
		return mcp.NewToolResultError("not confirmed; nothing deleted"), nil
	}
	current, _ := s.history.Current()
	return mcp.NewToolResultText(fmt.Sprintf("Cleared all conversations; current conversation is %s", current)), nil
}

func (s *Server) handleSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.config.Effective())
}

func (s *Server) handlePresets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	presets, err := s.presets.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(presets)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
