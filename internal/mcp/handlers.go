package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/voicedocs-mcp/internal/engine"
	"github.com/bull/voicedocs-mcp/internal/ingest"
)

// makeSearchHandler creates the search_docs tool handler.
// The handler always answers with the three-way status contract; failures are
// encoded as Status "error" and never propagate across the tool boundary.
func makeSearchHandler(eng *engine.Engine) func(
	context.Context, *mcp.CallToolRequest, SearchDocsInput,
) (*mcp.CallToolResult, SearchDocsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchDocsInput) (
		res *mcp.CallToolResult, out SearchDocsOutput, _ error,
	) {
		defer func() {
			if r := recover(); r != nil {
				out = SearchDocsOutput{
					Status:  StatusError,
					Message: fmt.Sprintf("search failed: %v", r),
				}
			}
		}()

		results, err := eng.Search(ctx, input.Query, input.TopK)
		if err != nil {
			return nil, SearchDocsOutput{
				Status:  StatusError,
				Message: fmt.Sprintf("search failed: %v", err),
			}, nil
		}

		if len(results) == 0 {
			return nil, SearchDocsOutput{Status: StatusNoResults}, nil
		}

		sources := make(map[string]struct{})
		outResults := make([]SearchResult, len(results))
		for i, r := range results {
			outResults[i] = SearchResult{
				Content:   r.Content,
				Source:    r.Source,
				Relevance: r.Relevance,
			}
			sources[r.Source] = struct{}{}
		}

		return nil, SearchDocsOutput{
			Status:  StatusSuccess,
			Results: outResults,
			Summary: fmt.Sprintf("Found %d relevant passages across %d sources for %q.",
				len(outResults), len(sources), input.Query),
		}, nil
	}
}

// makeIngestHandler creates the ingest_documents tool handler, the direct
// upload path that bypasses manifest discovery. Undecodable files join the
// failed list; they never abort the batch.
func makeIngestHandler(eng *engine.Engine) func(
	context.Context, *mcp.CallToolRequest, IngestDocumentsInput,
) (*mcp.CallToolResult, IngestDocumentsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input IngestDocumentsInput) (
		*mcp.CallToolResult, IngestDocumentsOutput, error,
	) {
		var out IngestDocumentsOutput

		docs := make([]ingest.RawDocument, 0, len(input.Files))
		for _, f := range input.Files {
			data, err := base64.StdEncoding.DecodeString(f.ContentBase64)
			if err != nil {
				out.FailedDocs = append(out.FailedDocs, FailedFile{
					FileName: f.FileName,
					Reason:   fmt.Sprintf("decode content: %v", err),
				})
				continue
			}
			docs = append(docs, ingest.RawDocument{FileName: f.FileName, Data: data})
		}

		result, err := eng.Ingest(ctx, docs)
		if err != nil {
			return nil, IngestDocumentsOutput{}, fmt.Errorf("ingestion failed: %w", err)
		}

		out.SuccessfulDocs = result.SuccessfulDocs
		for _, f := range result.FailedDocs {
			out.FailedDocs = append(out.FailedDocs, FailedFile{FileName: f.FileName, Reason: f.Reason})
		}
		out.TotalDocuments = result.Stats.TotalDocuments
		out.TotalChunks = result.Stats.TotalChunks

		return nil, out, nil
	}
}

// makeStatsHandler creates the get_stats tool handler, a pure read of the
// current in-memory state.
func makeStatsHandler(eng *engine.Engine) func(
	context.Context, *mcp.CallToolRequest, GetStatsInput,
) (*mcp.CallToolResult, GetStatsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetStatsInput) (
		*mcp.CallToolResult, GetStatsOutput, error,
	) {
		stats := eng.Stats()

		docs := make([]DocumentStat, 0, len(stats.Documents))
		for _, d := range stats.Documents {
			docs = append(docs, DocumentStat{FileName: d.FileName, ChunkCount: d.ChunkCount})
		}

		return nil, GetStatsOutput{
			TotalDocuments: stats.TotalDocuments,
			TotalChunks:    stats.TotalChunks,
			Documents:      docs,
			Initialized:    eng.Ready(),
		}, nil
	}
}

// makeResetHandler creates the reset_index tool handler.
func makeResetHandler(eng *engine.Engine) func(
	context.Context, *mcp.CallToolRequest, ResetIndexInput,
) (*mcp.CallToolResult, ResetIndexOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ResetIndexInput) (
		*mcp.CallToolResult, ResetIndexOutput, error,
	) {
		eng.Reset()
		return nil, ResetIndexOutput{Cleared: true}, nil
	}
}
