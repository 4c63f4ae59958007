// Package embedding is the vector extension point of the retrieval engine.
// Keyword overlap does the actual ranking today; embeddings are computed and
// stored alongside each index entry so a vector backend can be swapped in
// without touching the data model.
package embedding

import (
	"context"
	"strings"
)

// Dimension is the fixed embedding vector length, matching
// text-embedding-3-small so the OpenAI backend is a drop-in replacement.
const Dimension = 1536

// Embedder converts texts into fixed-length numeric vectors.
type Embedder interface {
	// Embed returns one vector per input text, each of length Dimension.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension reports the vector length this embedder produces.
	Dimension() int
}

// Placeholder is the default Embedder: a deterministic vector derived from
// token lengths. It carries no semantic signal and is never consulted for
// ranking; it exists so index entries have the shape a real backend would
// produce.
type Placeholder struct{}

// NewPlaceholder creates the deterministic placeholder embedder.
func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

// Embed derives one vector per text. Never fails.
func (p *Placeholder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = placeholderVector(text)
	}
	return vectors, nil
}

// Dimension reports the fixed vector length.
func (p *Placeholder) Dimension() int { return Dimension }

// placeholderVector folds token lengths into a fixed-length vector. The same
// text always maps to the same vector.
func placeholderVector(text string) []float32 {
	vec := make([]float32, Dimension)
	for i, token := range strings.Fields(text) {
		vec[i%Dimension] += float32(len(token)%10) / 10
	}
	return vec
}
