// Package chunker splits raw document text into overlapping, bounded-size
// passages suitable for keyword indexing and retrieval.
package chunker

import (
	"fmt"
	"strings"
)

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 500

	// DefaultOverlap controls how much of a chunk's tail is carried into the
	// next one. The carried word count is Overlap/5 (100 => 20 words).
	DefaultOverlap = 100

	// wordsPerPage drives the page number heuristic: the page counter
	// advances every time this many words have accumulated. Page numbers are
	// approximate and intentionally never reset within a document.
	wordsPerPage = 300
)

// Chunk is a contiguous passage of a document with position metadata.
type Chunk struct {
	ID         string // "<fileName>_chunk_<n>"
	FileName   string
	Content    string
	PageNum    int // heuristic page position, monotonically non-decreasing
	ChunkIndex int // 1-based ordinal within the document
}

// Chunker accumulates whole sentences into chunks of roughly chunkSize
// characters, seeding each new chunk with a word-based overlap from the
// previous one.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a Chunker. A non-positive chunkSize falls back to the default;
// a zero overlap disables the carry, a negative one falls back to the default.
func New(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	return &Chunker{
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// Chunk splits content into chunks in reading order. Empty input yields nil.
// A document without any sentence-terminating punctuation yields at most one
// chunk holding the whole trimmed text.
func (c *Chunker) Chunk(fileName, content string) []Chunk {
	sentences := splitSentences(content)
	if len(sentences) == 0 {
		return nil
	}

	var (
		chunks    []Chunk
		buffer    string
		page      = 1
		pageWords int
	)

	emit := func() {
		trimmed := strings.TrimSpace(buffer)
		if trimmed == "" {
			return
		}
		n := len(chunks) + 1
		chunks = append(chunks, Chunk{
			ID:         fmt.Sprintf("%s_chunk_%d", fileName, n),
			FileName:   fileName,
			Content:    trimmed,
			PageNum:    page,
			ChunkIndex: n,
		})
	}

	for _, sentence := range sentences {
		if buffer != "" && len(buffer)+1+len(sentence) > c.chunkSize {
			emit()
			buffer = c.overlapTail(buffer)
		}
		if buffer == "" {
			buffer = sentence
		} else {
			buffer += " " + sentence
		}

		// Advance the page counter as words accumulate. The counter is
		// shared across the whole document, not reset per chunk.
		pageWords += len(strings.Fields(sentence))
		if pageWords > wordsPerPage {
			page++
			pageWords = 0
		}
	}

	// The final buffer is always emitted, regardless of size.
	emit()

	return chunks
}

// overlapTail returns the last overlap/5 words of an emitted chunk, used to
// seed the next buffer so neighbouring chunks share context.
func (c *Chunker) overlapTail(emitted string) string {
	carry := c.overlap / 5
	if carry == 0 {
		return ""
	}
	words := strings.Fields(emitted)
	if len(words) > carry {
		words = words[len(words)-carry:]
	}
	return strings.Join(words, " ")
}

// splitSentences splits text on sentence-terminating punctuation, keeping the
// terminator with its sentence and discarding empty fragments. Trailing text
// without a terminator is kept as a final sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if s := strings.TrimSpace(text[start : i+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
