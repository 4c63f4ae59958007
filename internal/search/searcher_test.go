package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/voicedocs-mcp/internal/chunker"
	"github.com/bull/voicedocs-mcp/internal/index"
)

func indexChunks(t *testing.T, store *index.Store, fileName string, contents ...string) {
	t.Helper()
	c := chunker.New(500, 100)
	for _, content := range contents {
		for _, chunk := range c.Chunk(fileName, content) {
			store.Upsert(index.Entry{
				Chunk:    chunk,
				Keywords: index.ExtractKeywords(chunk.Content),
			})
		}
	}
}

// TestSearch_SingleDocumentScenario mirrors the canonical flow: one small
// document, a one-keyword query, a perfect score.
func TestSearch_SingleDocumentScenario(t *testing.T) {
	store := index.NewStore()
	indexChunks(t, store, "policy.txt", "Reset your password. Use the portal.")

	results := New(store).Search("password", 5)
	require.Len(t, results, 1)
	assert.Equal(t, "policy.txt (Page 1)", results[0].Source)
	assert.Equal(t, 1.0, results[0].Relevance)
	assert.Contains(t, results[0].Content, "password")
}

// TestSearch_NoMatches verifies disjoint keyword sets never produce results,
// regardless of topK.
func TestSearch_NoMatches(t *testing.T) {
	store := index.NewStore()
	indexChunks(t, store, "cooking.txt", "Preheat the oven. Season the vegetables.")
	indexChunks(t, store, "gardening.txt", "Water the tomatoes every morning.")

	for _, topK := range []int{1, 5, 100} {
		assert.Empty(t, New(store).Search("quarterly revenue spreadsheet", topK))
	}
}

// TestSearch_EmptyIndex verifies searching a never-populated index is safe.
func TestSearch_EmptyIndex(t *testing.T) {
	store := index.NewStore()
	assert.Empty(t, New(store).Search("anything", 5))
}

// TestSearch_RankingMonotonic verifies descending score order and partial
// overlap scoring.
func TestSearch_RankingMonotonic(t *testing.T) {
	store := index.NewStore()
	indexChunks(t, store, "full.txt", "Database migration checklist steps explained thoroughly.")
	indexChunks(t, store, "half.txt", "Database backup procedures described.")
	indexChunks(t, store, "none.txt", "Completely unrelated gardening advice.")

	results := New(store).Search("database migration", 5)
	require.Len(t, results, 2)

	assert.Equal(t, 1.0, results[0].Relevance)
	assert.Equal(t, "full.txt (Page 1)", results[0].Source)
	assert.Equal(t, 0.5, results[1].Relevance)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Relevance, results[i].Relevance)
	}
}

// TestSearch_TopKTruncation verifies result length is min(topK, positives).
func TestSearch_TopKTruncation(t *testing.T) {
	store := index.NewStore()
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		indexChunks(t, store, name, "Shared keyword invoicing appears here.")
	}

	s := New(store)
	assert.Len(t, s.Search("invoicing", 2), 2)
	assert.Len(t, s.Search("invoicing", 1), 1)
	assert.Len(t, s.Search("invoicing", 10), 4)
}

// TestSearch_TieBreakStable verifies equal scores keep insertion order across
// repeated calls.
func TestSearch_TieBreakStable(t *testing.T) {
	store := index.NewStore()
	for _, name := range []string{"first.txt", "second.txt", "third.txt"} {
		indexChunks(t, store, name, "Identical invoicing text for ties.")
	}

	s := New(store)
	want := []string{"first.txt (Page 1)", "second.txt (Page 1)", "third.txt (Page 1)"}
	for run := 0; run < 5; run++ {
		results := s.Search("invoicing", 5)
		require.Len(t, results, 3)
		for i, r := range results {
			assert.Equal(t, want[i], r.Source, "run %d position %d", run, i)
		}
	}
}

// TestSearch_DefaultTopK verifies non-positive topK falls back to the default.
func TestSearch_DefaultTopK(t *testing.T) {
	store := index.NewStore()
	for i := 0; i < 8; i++ {
		indexChunks(t, store, string(rune('a'+i))+".txt", "Recurring onboarding checklist.")
	}

	results := New(store).Search("onboarding", 0)
	assert.Len(t, results, DefaultTopK)
}

// TestSearch_StopwordOnlyQuery verifies a query with no usable keywords
// matches nothing.
func TestSearch_StopwordOnlyQuery(t *testing.T) {
	store := index.NewStore()
	indexChunks(t, store, "doc.txt", "Some indexed sentence about routers.")

	assert.Empty(t, New(store).Search("the and with", 5))
}
