package mcp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bull/voicedocs-mcp/internal/index"
)

// HealthResponse is the JSON body of the health check endpoint.
type HealthResponse struct {
	Status         string `json:"status"`
	Initialized    bool   `json:"initialized"`
	TotalDocuments int    `json:"total_documents"`
	TotalChunks    int    `json:"total_chunks"`
	Timestamp      string `json:"timestamp"`
}

// StatusReporter is the slice of the engine the health endpoint needs.
type StatusReporter interface {
	Ready() bool
	Stats() index.Stats
}

// NewHealthHandler creates an HTTP handler for the /health endpoint. The
// index lives in process memory, so a responding process is a healthy one;
// the body reports how much is indexed.
func NewHealthHandler(reporter StatusReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := reporter.Stats()

		response := HealthResponse{
			Status:         "healthy",
			Initialized:    reporter.Ready(),
			TotalDocuments: stats.TotalDocuments,
			TotalChunks:    stats.TotalChunks,
			Timestamp:      time.Now().UTC().Format(time.RFC3339),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
	}
}
