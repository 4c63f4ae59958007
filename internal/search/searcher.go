// Package search ranks indexed chunks against a query by normalized keyword
// overlap.
package search

import (
	"fmt"
	"sort"

	"github.com/bull/voicedocs-mcp/internal/index"
)

// DefaultTopK is the number of results returned when the caller does not ask
// for a specific count.
const DefaultTopK = 5

// Result is a single ranked match.
type Result struct {
	Content   string  `json:"content"`
	Source    string  `json:"source"`    // "<fileName> (Page <n>)"
	Relevance float64 `json:"relevance"` // normalized overlap coefficient in [0,1]
}

// Searcher computes relevance scores over a Store's entries. Each call scores
// the current index contents from scratch; results are never cached.
type Searcher struct {
	store *index.Store
}

// New creates a Searcher reading from the given store.
func New(store *index.Store) *Searcher {
	return &Searcher{store: store}
}

// Search tokenizes the query with the same keyword rule used at indexing
// time, scores every chunk by |query ∩ chunk| / max(|query|, 1), drops
// zero-score chunks and returns the topK best. Ties keep index insertion
// order (sort is stable), which makes ranking deterministic. A query matching
// nothing yields an empty slice.
func (s *Searcher) Search(query string, topK int) []Result {
	if topK < 1 {
		topK = DefaultTopK
	}

	queryKeywords := index.ExtractKeywords(query)
	if len(queryKeywords) == 0 {
		return nil
	}

	entries := s.store.Snapshot()
	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		score := overlapScore(queryKeywords, entry.Keywords)
		if score <= 0 {
			continue
		}
		results = append(results, Result{
			Content:   entry.Chunk.Content,
			Source:    fmt.Sprintf("%s (Page %d)", entry.Chunk.FileName, entry.Chunk.PageNum),
			Relevance: score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// overlapScore is the normalized overlap coefficient between the query and
// chunk keyword sets.
func overlapScore(query, chunk map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	matches := 0
	for kw := range query {
		if _, ok := chunk[kw]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(query))
}
