package engine

import (
	"fmt"
	"maps"

	"github.com/tmc/langchaingo/textsplitter"
)

// Chunker splits documents into overlapping segments with a recursive
// character splitter (paragraph, line, word, then character boundaries).
// Sizes are measured in runes.
type Chunker struct {
	size     int
	overlap  int
	splitter textsplitter.RecursiveCharacter
}

// NewChunker returns a Chunker. overlap must be smaller than size.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunker: size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunker: overlap %d must be in [0, %d)", overlap, size)
	}
	return &Chunker{
		size:    size,
		overlap: overlap,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(size),
			textsplitter.WithChunkOverlap(overlap),
		),
	}, nil
}

// Split chunks every document and numbers the chunks across all of them.
// Each chunk carries a copy of its parent's metadata.
func (c *Chunker) Split(docs []Document) ([]Chunk, error) {
	var chunks []Chunk
	for _, d := range docs {
		parts, err := c.splitter.SplitText(d.Content)
		if err != nil {
			return nil, fmt.Errorf("split document: %w", err)
		}
		for _, p := range parts {
			chunks = append(chunks, Chunk{
				Index:    len(chunks),
				Content:  p,
				Metadata: maps.Clone(d.Metadata),
			})
		}
	}
	return chunks, nil
}
