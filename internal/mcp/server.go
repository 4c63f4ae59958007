package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/voicedocs-mcp/internal/engine"
)

// Server wraps the MCP server with its retrieval engine.
type Server struct {
	server *mcp.Server
	engine *engine.Engine
}

// Config holds server dependencies.
type Config struct {
	Engine *engine.Engine
}

// NewServer creates a configured MCP server with tools registered.
func NewServer(cfg *Config) *Server {
	impl := &mcp.Implementation{
		Name:    "voicedocs-server",
		Version: "v0.1.0",
	}

	server := mcp.NewServer(impl, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_docs",
		Description: "Search the ingested documents by keyword relevance. Returns a status of success, no_results or error plus ranked passages with sources.",
	}, makeSearchHandler(cfg.Engine))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ingest_documents",
		Description: "Ingest a batch of documents (base64-encoded .txt, .docx, .doc or .pdf files) into the in-memory index. Failing files are skipped, not fatal.",
	}, makeIngestHandler(cfg.Engine))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stats",
		Description: "Report current index statistics: total documents, total chunks and per-document chunk counts.",
	}, makeStatsHandler(cfg.Engine))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_index",
		Description: "Clear all indexed documents and chunks. The next search re-runs document discovery.",
	}, makeResetHandler(cfg.Engine))

	return &Server{
		server: server,
		engine: cfg.Engine,
	}
}

// Run starts the server with stdio transport (blocks until client disconnects).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server instance.
// Used by transport handlers that need to wrap the server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
