// Package ingest orchestrates the path from raw document bytes to indexed
// chunks: extract, chunk, keyword-index, record stats.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bull/voicedocs-mcp/internal/chunker"
	"github.com/bull/voicedocs-mcp/internal/embedding"
	"github.com/bull/voicedocs-mcp/internal/extract"
	"github.com/bull/voicedocs-mcp/internal/index"
)

// RawDocument is one input to an ingestion batch, either uploaded directly or
// fetched from the discovery manifest.
type RawDocument struct {
	FileName string
	Data     []byte
}

// FailedDoc describes a document skipped during a batch.
type FailedDoc struct {
	FileName string
	Reason   string
}

// Result contains statistics about one ingestion batch.
type Result struct {
	BatchID        string
	Stats          index.Stats
	SuccessfulDocs int
	FailedDocs     []FailedDoc
	Duration       time.Duration
}

// Pipeline runs ingestion batches against a single Store.
type Pipeline struct {
	chunker  *chunker.Chunker
	embedder embedding.Embedder
	store    *index.Store
	logger   *slog.Logger
}

// NewPipeline creates an ingestion pipeline with the given components.
func NewPipeline(c *chunker.Chunker, embedder embedding.Embedder, store *index.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		chunker:  c,
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Ingest processes a batch of raw documents. A document that fails extraction
// or yields no text is skipped and logged; it never aborts its siblings. The
// returned Result carries aggregate stats for the whole index after the batch
// completes. The error return is reserved for context cancellation.
func (p *Pipeline) Ingest(ctx context.Context, docs []RawDocument) (*Result, error) {
	start := time.Now()
	result := &Result{BatchID: uuid.New().String()}

	p.logger.Info("starting ingestion batch", "batch", result.BatchID, "documents", len(docs))

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chunks, err := p.processDocument(ctx, doc)
		if err != nil {
			p.logger.Warn("skipping document", "batch", result.BatchID, "file", doc.FileName, "error", err)
			result.FailedDocs = append(result.FailedDocs, FailedDoc{
				FileName: doc.FileName,
				Reason:   err.Error(),
			})
			continue
		}
		result.SuccessfulDocs++
		p.logger.Info("indexed document", "batch", result.BatchID, "file", doc.FileName, "chunks", chunks)
	}

	result.Stats = p.store.Stats()
	result.Duration = time.Since(start)
	p.logger.Info("ingestion batch complete",
		"batch", result.BatchID,
		"successful", result.SuccessfulDocs,
		"failed", len(result.FailedDocs),
		"total_chunks", result.Stats.TotalChunks,
		"duration", result.Duration,
	)

	return result, nil
}

// processDocument handles one document end to end and returns its chunk count.
func (p *Pipeline) processDocument(ctx context.Context, doc RawDocument) (int, error) {
	fileType := extract.DetectType(doc.FileName)
	text, err := extract.Text(doc.FileName, doc.Data)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("extracted text is empty")
	}

	chunks := p.chunker.Chunk(doc.FileName, text)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no chunks produced")
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	vectors, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed: %w", err)
	}

	entries := make([]index.Entry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = index.Entry{
			Chunk:     chunk,
			Keywords:  index.ExtractKeywords(chunk.Content),
			Embedding: vectors[i],
		}
	}

	// Re-ingesting a file name replaces its previous record and chunks, so
	// stats never double-count a document.
	p.store.ReplaceDocument(index.DocumentRecord{
		FileName:    doc.FileName,
		FileType:    string(fileType),
		ChunkCount:  len(chunks),
		Preview:     preview(text),
		ProcessedAt: time.Now(),
	}, entries)

	return len(chunks), nil
}

// preview keeps the first PreviewLength characters of raw content for display.
func preview(text string) string {
	if len(text) <= index.PreviewLength {
		return text
	}
	return text[:index.PreviewLength] + "..."
}
