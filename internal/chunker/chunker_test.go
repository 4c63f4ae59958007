package chunker

import (
	"fmt"
	"strings"
	"testing"
)

// TestChunk_EmptyInput verifies empty and whitespace-only input yields nothing.
func TestChunk_EmptyInput(t *testing.T) {
	c := New(0, -1)

	for _, input := range []string{"", "   ", "\n\t\n"} {
		if chunks := c.Chunk("empty.txt", input); len(chunks) != 0 {
			t.Errorf("Chunk(%q): expected no chunks, got %d", input, len(chunks))
		}
	}
}

// TestChunk_SingleSentence verifies a short document becomes one chunk.
func TestChunk_SingleSentence(t *testing.T) {
	c := New(500, 100)

	chunks := c.Chunk("policy.txt", "Reset your password. Use the portal.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}

	chunk := chunks[0]
	if chunk.ID != "policy.txt_chunk_1" {
		t.Errorf("ID: expected %q, got %q", "policy.txt_chunk_1", chunk.ID)
	}
	if chunk.ChunkIndex != 1 {
		t.Errorf("ChunkIndex: expected 1, got %d", chunk.ChunkIndex)
	}
	if chunk.PageNum != 1 {
		t.Errorf("PageNum: expected 1, got %d", chunk.PageNum)
	}
	if !strings.Contains(chunk.Content, "password") {
		t.Errorf("Content missing expected text: %q", chunk.Content)
	}
}

// TestChunk_NoPunctuation verifies a document without sentence terminators
// yields exactly one chunk with the whole trimmed text.
func TestChunk_NoPunctuation(t *testing.T) {
	c := New(50, 100)

	input := "  a long run of words without any terminator at all  "
	chunks := c.Chunk("notes.txt", input)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Content != strings.TrimSpace(input) {
		t.Errorf("expected whole trimmed text, got %q", chunks[0].Content)
	}
}

// TestChunk_SplitsAtSize verifies chunks close when the next sentence would
// exceed the size limit and that the final buffer is still emitted.
func TestChunk_SplitsAtSize(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&sb, "Sentence number %d carries a handful of words. ", i)
	}

	c := New(120, 0)
	chunks := c.Chunk("long.txt", sb.String())

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk.Content) == "" {
			t.Errorf("chunk %d is empty after trimming", i)
		}
		if chunk.ChunkIndex != i+1 {
			t.Errorf("chunk %d: expected index %d, got %d", i, i+1, chunk.ChunkIndex)
		}
		wantID := fmt.Sprintf("long.txt_chunk_%d", i+1)
		if chunk.ID != wantID {
			t.Errorf("chunk %d: expected ID %q, got %q", i, wantID, chunk.ID)
		}
	}

	// All but the last chunk respect the size bound; sentences are never cut.
	for i, chunk := range chunks[:len(chunks)-1] {
		if len(chunk.Content) > 120+60 {
			t.Errorf("chunk %d far exceeds size bound: %d chars", i, len(chunk.Content))
		}
	}
}

// TestChunk_OverlapSeedsNextChunk verifies the tail words of an emitted chunk
// reappear at the start of the next one.
func TestChunk_OverlapSeedsNextChunk(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&sb, "Alpha beta gamma delta epsilon sentence %d ends here. ", i)
	}

	c := New(150, 100) // 100/5 = 20 carried words
	chunks := c.Chunk("overlap.txt", sb.String())
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	prevWords := strings.Fields(chunks[0].Content)
	carry := 20
	if len(prevWords) < carry {
		carry = len(prevWords)
	}
	tail := strings.Join(prevWords[len(prevWords)-carry:], " ")
	if !strings.HasPrefix(chunks[1].Content, tail) {
		t.Errorf("chunk 2 does not start with the tail of chunk 1\ntail: %q\nchunk: %q", tail, chunks[1].Content)
	}
}

// TestChunk_NoOverlapWhenDisabled verifies overlap 0..4 carries no words.
func TestChunk_NoOverlapWhenDisabled(t *testing.T) {
	input := "First sentence with several words inside it. Second sentence with more words again."
	c := New(50, 0)

	chunks := c.Chunk("plain.txt", input)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if strings.Contains(chunks[1].Content, "First") {
		t.Errorf("chunk 2 unexpectedly carries overlap: %q", chunks[1].Content)
	}
}

// TestChunk_PageNumbers verifies the page heuristic is monotonically
// non-decreasing and advances on long documents.
func TestChunk_PageNumbers(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, "Filler sentence number %d with a steady supply of words. ", i)
	}

	c := New(300, 50)
	chunks := c.Chunk("book.txt", sb.String())
	if len(chunks) < 3 {
		t.Fatalf("expected many chunks, got %d", len(chunks))
	}

	prev := 0
	for i, chunk := range chunks {
		if chunk.PageNum < 1 {
			t.Errorf("chunk %d: page below 1: %d", i, chunk.PageNum)
		}
		if chunk.PageNum < prev {
			t.Errorf("chunk %d: page decreased from %d to %d", i, prev, chunk.PageNum)
		}
		prev = chunk.PageNum
	}
	if chunks[len(chunks)-1].PageNum <= chunks[0].PageNum {
		t.Error("expected page counter to advance over ~1800 words")
	}
}

// TestChunk_ReadingOrder verifies sentences appear in chunks in document order.
func TestChunk_ReadingOrder(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, "Marker%04d is the payload of this sentence. ", i)
	}

	c := New(100, 0)
	chunks := c.Chunk("order.txt", sb.String())

	last := -1
	for _, chunk := range chunks {
		for i := 0; i < 30; i++ {
			marker := fmt.Sprintf("Marker%04d", i)
			if strings.Contains(chunk.Content, marker) && i < last {
				t.Fatalf("marker %d appears after marker %d", i, last)
			} else if strings.Contains(chunk.Content, marker) {
				last = i
			}
		}
	}
	if last != 29 {
		t.Errorf("expected all markers to survive chunking, last seen: %d", last)
	}
}
