// Package index holds the in-memory keyword index. The chunk-id keyed entry
// map is the sole searchable structure; all mutation goes through ingestion.
package index

import (
	"sync"
	"time"

	"github.com/bull/voicedocs-mcp/internal/chunker"
)

// Entry is the indexed form of a chunk: its keyword set plus a placeholder
// embedding kept for compatibility with a future vector backend. The
// embedding is never consulted for ranking.
type Entry struct {
	Chunk     chunker.Chunk
	Keywords  map[string]struct{}
	Embedding []float32
}

// DocumentRecord tracks per-document metadata for display and statistics.
type DocumentRecord struct {
	FileName    string
	FileType    string
	ChunkCount  int
	Preview     string // first 200 chars of raw content, display only
	ProcessedAt time.Time
}

// DocumentStat is the per-document slice of Stats.
type DocumentStat struct {
	FileName   string `json:"file_name"`
	ChunkCount int    `json:"chunk_count"`
}

// Stats is a derived snapshot of the index contents.
type Stats struct {
	TotalDocuments int            `json:"total_documents"`
	TotalChunks    int            `json:"total_chunks"`
	Documents      []DocumentStat `json:"documents"`
}

// PreviewLength is how much raw content a DocumentRecord preview retains.
const PreviewLength = 200

// Store is the in-memory index. A single Store instance owns its entries and
// document records exclusively; concurrent reads are safe and writes are
// serialised. Searches running concurrently with an in-flight ingestion may
// observe a partial index, which is accepted behaviour.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	order   []string // chunk IDs in insertion order, for deterministic ranking ties
	docs    []DocumentRecord
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]Entry),
	}
}

// Upsert stores an entry, overwriting any existing entry with the same chunk
// ID. Re-indexing the same ID keeps its original position in the insertion
// order, so repeated ingestion is idempotent.
func (s *Store) Upsert(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(entry)
}

func (s *Store) upsertLocked(entry Entry) {
	if _, exists := s.entries[entry.Chunk.ID]; !exists {
		s.order = append(s.order, entry.Chunk.ID)
	}
	s.entries[entry.Chunk.ID] = entry
}

// RecordDocument appends a document record without touching existing ones.
// Callers that want replace semantics use ReplaceDocument instead.
func (s *Store) RecordDocument(rec DocumentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, rec)
}

// ReplaceDocument atomically removes any prior record and entries for
// rec.FileName, then installs the new record and entries. Re-ingesting a
// document therefore replaces it rather than double-counting in stats.
func (s *Store) ReplaceDocument(rec DocumentRecord, entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeDocumentLocked(rec.FileName)
	s.docs = append(s.docs, rec)
	for _, entry := range entries {
		s.upsertLocked(entry)
	}
}

func (s *Store) removeDocumentLocked(fileName string) {
	kept := s.docs[:0]
	for _, d := range s.docs {
		if d.FileName != fileName {
			kept = append(kept, d)
		}
	}
	s.docs = kept

	keptOrder := s.order[:0]
	for _, id := range s.order {
		if entry, ok := s.entries[id]; ok && entry.Chunk.FileName == fileName {
			delete(s.entries, id)
			continue
		}
		keptOrder = append(keptOrder, id)
	}
	s.order = keptOrder
}

// Snapshot returns the current entries in insertion order. The returned slice
// is a copy; mutating it does not affect the Store.
func (s *Store) Snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		if entry, ok := s.entries[id]; ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Len reports the number of indexed chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats derives the current aggregate statistics. An empty store yields zero
// counts and an empty (non-nil) document list.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		TotalDocuments: len(s.docs),
		TotalChunks:    len(s.entries),
		Documents:      make([]DocumentStat, 0, len(s.docs)),
	}
	for _, d := range s.docs {
		stats.Documents = append(stats.Documents, DocumentStat{
			FileName:   d.FileName,
			ChunkCount: d.ChunkCount,
		})
	}
	return stats
}

// Clear removes every entry and document record.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]Entry)
	s.order = nil
	s.docs = nil
}
