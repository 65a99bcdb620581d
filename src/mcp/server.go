// Package mcp exposes the inventory tools over the Model Context
// Protocol, so external assistants can query the same engine the chat
// agent uses. Tool names, schemas and payloads are identical across
// both transports because everything dispatches through the shared
// tool registry.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"truckfinder-agent/src/tools"
)

// Server is the MCP server for truckfinder.
type Server struct {
	mcpServer *server.MCPServer
	registry  *tools.Registry
}

// NewServer creates an MCP server over the given tool registry.
func NewServer(registry *tools.Registry) *Server {
	s := server.NewMCPServer(
		"truckfinder",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		registry:  registry,
	}
	srv.registerTools()

	return srv
}

// registerTools advertises every registry tool with its JSON Schema.
func (s *Server) registerTools() {
	for _, def := range s.registry.Definitions() {
		tool := mcp.NewToolWithRawSchema(def.Name, def.Description, def.Schema)
		s.mcpServer.AddTool(tool, s.handler(def.Name))
	}
}

// Run starts the MCP server on stdio.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// handler adapts one registry tool to the MCP calling convention.
// Recoverable problems (bad filters, unknown ids) come back inside
// the tool payload, matching what the chat agent's model sees; only
// dispatch failures become MCP tool errors.
func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		arguments, err := json.Marshal(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read arguments: %v", err)), nil
		}

		result, err := s.registry.Dispatch(ctx, name, string(arguments))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("tool failed: %v", err)), nil
		}

		return mcp.NewToolResultText(result), nil
	}
}
