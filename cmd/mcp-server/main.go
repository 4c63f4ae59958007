// Package main provides the MCP server entry point for VoiceDocs.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bull/voicedocs-mcp/internal/config"
	"github.com/bull/voicedocs-mcp/internal/embedding"
	"github.com/bull/voicedocs-mcp/internal/engine"
	"github.com/bull/voicedocs-mcp/internal/manifest"
	mcpserver "github.com/bull/voicedocs-mcp/internal/mcp"
)

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Create context that cancels on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Environment overrides the config file
	port := getEnv("PORT", cfg.Server.Port)
	baseURL := getEnv("DOCS_BASE_URL", cfg.Discovery.BaseURL)
	embedderType := getEnv("EMBEDDER_TYPE", cfg.Embedder.Type)

	// Initialize the embedding backend
	var embedder embedding.Embedder
	if embedderType == "openai" {
		embedder, err = embedding.NewOpenAI(getEnvInt("EMBEDDER_BATCH_SIZE", cfg.Embedder.BatchSize))
		if err != nil {
			log.Fatalf("failed to create embedding client: %v", err)
		}
	} else {
		embedder = embedding.NewPlaceholder()
	}

	// Initialize manifest discovery (disabled without a base URL)
	var discovery engine.Discovery
	if baseURL != "" {
		discovery = manifest.NewFetcher(baseURL, logger)
	}

	eng := engine.New(engine.Config{
		ChunkSize:   cfg.Chunker.ChunkSize,
		Overlap:     cfg.Chunker.Overlap,
		DefaultTopK: cfg.Search.DefaultTopK,
		Embedder:    embedder,
		Discovery:   discovery,
		Logger:      logger,
	})

	// Warm the index before accepting traffic; failure here is only ever a
	// cancelled startup. Discovery problems degrade to an empty index.
	if err := eng.Initialize(ctx); err != nil {
		log.Fatalf("initialization aborted: %v", err)
	}

	// Create MCP server
	server := mcpserver.NewServer(&mcpserver.Config{
		Engine: eng,
	})

	// Create HTTP server with multiple endpoints
	mux := http.NewServeMux()

	// Health endpoint (for platform health checks)
	mux.HandleFunc("/health", mcpserver.NewHealthHandler(eng))

	// MCP HTTP endpoint (for remote client connections)
	mux.Handle("/mcp", mcpserver.NewHTTPHandler(server, nil))

	// Landing page
	mux.HandleFunc("/", mcpserver.NewLandingHandler())

	// Check if running in server mode (HTTP) or stdio mode (local development)
	serverMode := getEnv("SERVER_MODE", "false") == "true"

	if serverMode {
		// HTTP mode: serve MCP over HTTP for remote clients
		addr := "0.0.0.0:" + port
		log.Printf("Starting HTTP server on %s (MCP at /mcp, health at /health)", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	} else {
		// Stdio mode: run MCP server over stdin/stdout for local clients
		// Also start HTTP health endpoint in background for local testing
		go func() {
			addr := "0.0.0.0:" + port
			log.Printf("Starting health server on %s", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Printf("Health server error: %v", err)
			}
		}()

		log.Println("Starting VoiceDocs MCP Server (stdio mode)...")
		if err := server.Run(ctx); err != nil {
			log.Printf("server error: %v", err)
			os.Exit(1)
		}
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}
