// Package mcp exposes the generation pipeline as MCP tools over stdio, so
// agent clients can generate components and pull previews without the HTTP
// surface.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abhinavsaxena2308/codegen/internal/gen"
	"github.com/abhinavsaxena2308/codegen/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"codegen_generate": {
		def:     generateToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGenerate },
	},
	"codegen_preview": {
		def:     previewToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePreview },
	},
	"codegen_history": {
		def:     historyToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHistory },
	},
	"codegen_languages": {
		def:     languagesToolDef(),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLanguages },
	},
}

func generateToolDef() mcp.Tool {
	return mcp.NewTool("codegen_generate",
		mcp.WithDescription("Generate UI component code from a natural-language prompt and return the record with its sandbox-ready preview document"),
		mcp.WithString("prompt", mcp.Required(),
			mcp.Description("Natural-language description of the component to generate")),
		mcp.WithString("language",
			mcp.Description("Target language/framework tag, e.g. react, vue, html, css (default: plain)")),
	)
}

func previewToolDef() mcp.Tool {
	return mcp.NewTool("codegen_preview",
		mcp.WithDescription("Fetch the self-contained preview HTML document for a generation id"),
		mcp.WithString("id", mcp.Required(),
			mcp.Description("Generation id returned by codegen_generate")),
	)
}

func historyToolDef() mcp.Tool {
	return mcp.NewTool("codegen_history",
		mcp.WithDescription("List the bounded generation history (newest first; code and preview excluded)"),
	)
}

func languagesToolDef() mcp.Tool {
	return mcp.NewTool("codegen_languages",
		mcp.WithDescription("List the recognized language/framework tags"),
	)
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// NewServer creates a new MCP server with CodeGen tools registered.
func NewServer(svc *gen.Service, st *store.Store, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"codegen",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(svc, st)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(svc *gen.Service, st *store.Store, version string) error {
	s := NewServer(svc, st, version)
	return server.ServeStdio(s)
}
