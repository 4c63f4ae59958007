// Package mcp exposes the retrieval engine to conversation clients over the
// Model Context Protocol.
package mcp

// Status values for the search tool. Callers must branch on this tag rather
// than inferring state from result emptiness: an empty index and a failed
// search are different things.
const (
	StatusSuccess   = "success"
	StatusNoResults = "no_results"
	StatusError     = "error"
)

// SearchDocsInput defines the input parameters for the search_docs tool.
type SearchDocsInput struct {
	// Query is the keyword search query.
	Query string `json:"query" jsonschema:"required,description=The search query for finding relevant document passages"`
	// TopK is the maximum number of passages to return.
	TopK int `json:"top_k,omitempty" jsonschema:"minimum=1,maximum=20,default=5,description=Maximum number of passages to return"`
}

// SearchDocsOutput is the three-way result of a search. Exactly one variant
// applies, tagged by Status: success carries Results and Summary, no_results
// carries nothing extra, error carries Message.
type SearchDocsOutput struct {
	Status  string         `json:"status"`
	Results []SearchResult `json:"results,omitempty"`
	Summary string         `json:"summary,omitempty"`
	Message string         `json:"message,omitempty"`
}

// SearchResult is a single ranked passage.
type SearchResult struct {
	// Content is the chunk text.
	Content string `json:"content"`
	// Source is a human-readable origin: "<fileName> (Page <n>)".
	Source string `json:"source"`
	// Relevance is the normalized keyword-overlap score in [0,1].
	Relevance float64 `json:"relevance"`
}

// UploadFile is one document in a direct upload batch.
type UploadFile struct {
	// FileName must carry a recognized extension (.pdf, .docx, .doc, .txt).
	FileName string `json:"file_name" jsonschema:"required,description=File name including extension"`
	// ContentBase64 is the file's raw bytes, base64 encoded.
	ContentBase64 string `json:"content_base64" jsonschema:"required,description=Base64-encoded file content"`
}

// IngestDocumentsInput defines the input for the ingest_documents tool.
type IngestDocumentsInput struct {
	Files []UploadFile `json:"files" jsonschema:"required,description=Documents to ingest"`
}

// IngestDocumentsOutput reports what a batch accomplished.
type IngestDocumentsOutput struct {
	SuccessfulDocs int          `json:"successful_docs"`
	FailedDocs     []FailedFile `json:"failed_docs,omitempty"`
	TotalDocuments int          `json:"total_documents"`
	TotalChunks    int          `json:"total_chunks"`
}

// FailedFile names a skipped document and why it was skipped.
type FailedFile struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// GetStatsInput defines the (empty) input for the get_stats tool.
type GetStatsInput struct{}

// GetStatsOutput reports current index statistics.
type GetStatsOutput struct {
	TotalDocuments int            `json:"total_documents"`
	TotalChunks    int            `json:"total_chunks"`
	Documents      []DocumentStat `json:"documents"`
	Initialized    bool           `json:"initialized"`
}

// DocumentStat is one document's contribution to the index.
type DocumentStat struct {
	FileName   string `json:"file_name"`
	ChunkCount int    `json:"chunk_count"`
}

// ResetIndexInput defines the (empty) input for the reset_index tool.
type ResetIndexInput struct{}

// ResetIndexOutput confirms the reset.
type ResetIndexOutput struct {
	Cleared bool `json:"cleared"`
}
