// Package main provides the ingest CLI for VoiceDocs document indexing.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bull/voicedocs-mcp/internal/chunker"
	"github.com/bull/voicedocs-mcp/internal/config"
	"github.com/bull/voicedocs-mcp/internal/embedding"
	"github.com/bull/voicedocs-mcp/internal/index"
	"github.com/bull/voicedocs-mcp/internal/ingest"
	"github.com/bull/voicedocs-mcp/internal/manifest"
)

var rootCmd = &cobra.Command{
	Use:   "voicedocs-ingest",
	Short: "VoiceDocs document ingestion tool",
	Long:  "CLI tool for dry-running the VoiceDocs ingestion pipeline against local files or a hosted manifest",
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch and index all documents from the hosted manifest",
	Long: `Fetches the document manifest from the configured base URL and runs
every listed document through the full ingestion pipeline. The index is
built in process memory, so this is a validation pass: it reports exactly
what the server would index at startup.

Environment variables:
  DOCS_BASE_URL  Base URL hosting documents/manifest.json
  EMBEDDER_TYPE  "placeholder" (default) or "openai"
  OPENAI_API_KEY OpenAI API key (required for the openai embedder)`,
	RunE: runSync,
}

var filesCmd = &cobra.Command{
	Use:   "files <path>...",
	Short: "Index local files",
	Long:  "Runs local files through the ingestion pipeline and prints the resulting index statistics.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFiles,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(filesCmd)
}

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseURL := getEnv("DOCS_BASE_URL", cfg.Discovery.BaseURL)
	if baseURL == "" {
		return fmt.Errorf("no base URL configured: set DOCS_BASE_URL or discovery.base_url")
	}

	fmt.Printf("Fetching manifest from %s...\n", baseURL)
	fetcher := manifest.NewFetcher(baseURL, slog.Default())
	files := fetcher.FetchAll(ctx)
	if len(files) == 0 {
		fmt.Println("Manifest yielded no documents")
		return nil
	}
	fmt.Printf("Fetched %d documents\n", len(files))

	docs := make([]ingest.RawDocument, 0, len(files))
	for _, f := range files {
		docs = append(docs, ingest.RawDocument{FileName: f.Name, Data: f.Data})
	}
	return runBatch(ctx, cfg, docs)
}

func runFiles(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	docs := make([]ingest.RawDocument, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, ingest.RawDocument{FileName: filepath.Base(path), Data: data})
	}
	return runBatch(ctx, cfg, docs)
}

// runBatch pushes a batch through a freshly built pipeline and prints the
// outcome.
func runBatch(ctx context.Context, cfg *config.Config, docs []ingest.RawDocument) error {
	start := time.Now()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	store := index.NewStore()
	pipeline := ingest.NewPipeline(chunker.New(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap), embedder, store, slog.Default())

	fmt.Println()
	fmt.Printf("Indexing %d documents...\n", len(docs))
	result, err := pipeline.Ingest(ctx, docs)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Println()
	fmt.Println("Ingestion complete!")
	fmt.Printf("  Batch:     %s\n", result.BatchID)
	fmt.Printf("  Documents: %d/%d\n", result.SuccessfulDocs, len(docs))
	fmt.Printf("  Chunks:    %d\n", result.Stats.TotalChunks)
	fmt.Printf("  Duration:  %s\n", result.Duration.Round(time.Millisecond))

	if len(result.FailedDocs) > 0 {
		fmt.Println()
		fmt.Println("Failed documents:")
		for _, failed := range result.FailedDocs {
			fmt.Printf("  - %s: %s\n", failed.FileName, failed.Reason)
		}
	}

	fmt.Println()
	fmt.Printf("Total time: %s\n", time.Since(start).Round(time.Millisecond))

	return nil
}

func newEmbedder(cfg *config.Config) (embedding.Embedder, error) {
	if getEnv("EMBEDDER_TYPE", cfg.Embedder.Type) == "openai" {
		embedder, err := embedding.NewOpenAI(cfg.Embedder.BatchSize)
		if err != nil {
			return nil, fmt.Errorf("create embedding client: %w", err)
		}
		return embedder, nil
	}
	return embedding.NewPlaceholder(), nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
