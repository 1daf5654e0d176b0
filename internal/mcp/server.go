package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "cardpool"
	serverVersion = "1.0.0"
)

// Server exposes the card pool tools over MCP.
type Server struct {
	mcpServer *server.MCPServer
}

// New creates an MCP server with every tool registered.
func New(tools *Tools) (*Server, error) {
	if tools == nil || tools.Sets == nil || tools.Lookup == nil {
		return nil, fmt.Errorf("MCP tools need a set registry and a card lookup")
	}

	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)
	tools.Register(mcpServer)

	return &Server{mcpServer: mcpServer}, nil
}

// Serve starts the MCP server on stdio.
func (s *Server) Serve() error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
