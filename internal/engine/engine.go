// Package engine ties the retrieval components into one explicitly
// constructed instance: the store, pipeline and searcher are owned here and
// passed by reference to whatever boundary needs them. There are no package
// globals.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bull/voicedocs-mcp/internal/chunker"
	"github.com/bull/voicedocs-mcp/internal/embedding"
	"github.com/bull/voicedocs-mcp/internal/index"
	"github.com/bull/voicedocs-mcp/internal/ingest"
	"github.com/bull/voicedocs-mcp/internal/manifest"
	"github.com/bull/voicedocs-mcp/internal/search"
)

// Discovery lists and downloads remotely hosted documents. The manifest
// fetcher implements it; tests substitute fakes.
type Discovery interface {
	FetchAll(ctx context.Context) []manifest.FetchedFile
}

// Config holds engine construction parameters.
type Config struct {
	ChunkSize   int
	Overlap     int
	DefaultTopK int                // applied when a search passes topK < 1
	Embedder    embedding.Embedder // defaults to the placeholder
	Discovery   Discovery          // nil disables remote discovery
	Logger      *slog.Logger
}

// Engine is the retrieval core behind the tool-invocation boundary.
type Engine struct {
	store       *index.Store
	pipeline    *ingest.Pipeline
	searcher    *search.Searcher
	discovery   Discovery
	defaultTopK int
	logger      *slog.Logger

	// initMu serialises initialization: at most one full initialization is
	// ever in flight, and concurrent callers block on it and then observe
	// the completed state instead of re-triggering discovery.
	initMu      sync.Mutex
	initialized bool
}

// New constructs an Engine. Lifecycle: built once at process start, torn down
// at process exit.
func New(cfg Config) *Engine {
	if cfg.Embedder == nil {
		cfg.Embedder = embedding.NewPlaceholder()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DefaultTopK < 1 {
		cfg.DefaultTopK = search.DefaultTopK
	}

	store := index.NewStore()
	return &Engine{
		store:       store,
		pipeline:    ingest.NewPipeline(chunker.New(cfg.ChunkSize, cfg.Overlap), cfg.Embedder, store, cfg.Logger),
		searcher:    search.New(store),
		discovery:   cfg.Discovery,
		defaultTopK: cfg.DefaultTopK,
		logger:      cfg.Logger,
	}
}

// Initialize runs discovery and ingests whatever it finds. Discovery failure
// degrades to an initialized engine with zero documents. Concurrent callers
// converge: one performs the work, the rest wait for it and return once it
// has completed. Returns an error only on context cancellation.
func (e *Engine) Initialize(ctx context.Context) error {
	e.initMu.Lock()
	defer e.initMu.Unlock()

	if e.initialized {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if e.discovery == nil {
		e.logger.Info("no discovery configured, starting with empty index")
		e.initialized = true
		return nil
	}

	files := e.discovery.FetchAll(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	docs := make([]ingest.RawDocument, 0, len(files))
	for _, f := range files {
		docs = append(docs, ingest.RawDocument{FileName: f.Name, Data: f.Data})
	}

	if _, err := e.pipeline.Ingest(ctx, docs); err != nil {
		return err
	}

	e.initialized = true
	return nil
}

// Search ranks indexed chunks against the query. Searching before any
// initialization triggers a lazy Initialize rather than an error; a search
// overlapping an in-flight ingestion may observe a partial index.
func (e *Engine) Search(ctx context.Context, query string, topK int) ([]search.Result, error) {
	if !e.Ready() {
		if err := e.Initialize(ctx); err != nil {
			return nil, err
		}
	}
	if topK < 1 {
		topK = e.defaultTopK
	}
	return e.searcher.Search(query, topK), nil
}

// Ingest runs the direct upload path, bypassing discovery. An uploaded batch
// marks the engine initialized, so a later search does not re-trigger
// discovery over the top of it.
func (e *Engine) Ingest(ctx context.Context, docs []ingest.RawDocument) (*ingest.Result, error) {
	result, err := e.pipeline.Ingest(ctx, docs)
	if err != nil {
		return nil, err
	}

	e.initMu.Lock()
	e.initialized = true
	e.initMu.Unlock()

	return result, nil
}

// Stats reads the current aggregate index statistics.
func (e *Engine) Stats() index.Stats {
	return e.store.Stats()
}

// Ready reports whether an initialization has completed.
func (e *Engine) Ready() bool {
	e.initMu.Lock()
	defer e.initMu.Unlock()
	return e.initialized
}

// Reset clears the index and document records and forgets initialization, so
// the next search or Initialize rebuilds from scratch.
func (e *Engine) Reset() {
	e.initMu.Lock()
	defer e.initMu.Unlock()

	e.store.Clear()
	e.initialized = false
	e.logger.Info("index reset")
}
