package engine

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func numberedWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%04d", i)
	}
	return strings.Join(words, " ")
}

func TestNewChunkerValidation(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{name: "defaults", size: 3000, overlap: 200},
		{name: "no overlap", size: 100, overlap: 0},
		{name: "zero size", size: 0, overlap: 0, wantErr: true},
		{name: "overlap equals size", size: 100, overlap: 100, wantErr: true},
		{name: "negative overlap", size: 100, overlap: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChunker(tt.size, tt.overlap)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewChunker(%d, %d) error = %v, wantErr %v", tt.size, tt.overlap, err, tt.wantErr)
			}
		})
	}
}

func TestChunkerSplitLongText(t *testing.T) {
	c, err := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	if err != nil {
		t.Fatal(err)
	}
	// 2000 words of 6 runes each (with separator) is ~12000 runes.
	text := numberedWords(2000)

	chunks, err := c.Split([]Document{{Content: text, Metadata: map[string]string{MetaSource: "src"}}})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}
	for i, ch := range chunks {
		if n := utf8.RuneCountInString(ch.Content); n > DefaultChunkSize {
			t.Errorf("chunk %d has %d runes, want <= %d", i, n, DefaultChunkSize)
		}
		if ch.Index != i {
			t.Errorf("chunk %d Index = %d", i, ch.Index)
		}
		if ch.Metadata[MetaSource] != "src" {
			t.Errorf("chunk %d lost metadata: %v", i, ch.Metadata)
		}
	}
	for i := 0; i+1 < len(chunks); i++ {
		next := strings.Fields(chunks[i+1].Content)[0]
		if !strings.Contains(chunks[i].Content, next) {
			t.Errorf("chunk %d does not overlap chunk %d: %q missing", i, i+1, next)
		}
	}
	if !strings.HasPrefix(chunks[0].Content, "w0000") {
		t.Errorf("first chunk should start at the beginning of the text")
	}
	if !strings.HasSuffix(chunks[len(chunks)-1].Content, "w1999") {
		t.Errorf("last chunk should end at the end of the text")
	}
}

func TestChunkerShortText(t *testing.T) {
	c, err := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	if err != nil {
		t.Fatal(err)
	}
	chunks, err := c.Split([]Document{{Content: "A short transcript."}})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 || chunks[0].Content != "A short transcript." {
		t.Errorf("chunks = %+v, want one unchanged chunk", chunks)
	}
}

func TestChunkerNumbersAcrossDocuments(t *testing.T) {
	c, err := NewChunker(50, 10)
	if err != nil {
		t.Fatal(err)
	}
	docs := []Document{
		{Content: numberedWords(20), Metadata: map[string]string{MetaSource: "a"}},
		{Content: numberedWords(20), Metadata: map[string]string{MetaSource: "b"}},
	}
	chunks, err := c.Split(docs)
	if err != nil {
		t.Fatal(err)
	}
	for i, ch := range chunks {
		if ch.Index != i {
			t.Errorf("chunk %d Index = %d", i, ch.Index)
		}
	}
	last := chunks[len(chunks)-1]
	if last.Metadata[MetaSource] != "b" {
		t.Errorf("last chunk source = %q, want b", last.Metadata[MetaSource])
	}

	// Chunks own their metadata.
	chunks[0].Metadata[MetaSource] = "changed"
	if docs[0].Metadata[MetaSource] != "a" {
		t.Error("chunk metadata aliases document metadata")
	}
}
