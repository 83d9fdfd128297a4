package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSummarizerPrompt(t *testing.T) {
	var gotSystem, gotPrompt string
	s := NewSummarizer(LLMFunc(func(_ context.Context, system, prompt string) (string, error) {
		gotSystem, gotPrompt = system, prompt
		return "  A concise summary.  \n", nil
	}))

	summary, err := s.Summarize(context.Background(), []Chunk{
		{Index: 0, Content: "first chunk"},
		{Index: 1, Content: "second chunk"},
	})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary != "A concise summary." {
		t.Errorf("summary = %q, want trimmed model output", summary)
	}
	if gotSystem != "" {
		t.Errorf("system prompt = %q, want empty", gotSystem)
	}
	want := "\nProvide a summary of the following content in 300 words:\nContent: first chunk\n\nsecond chunk\n"
	if gotPrompt != want {
		t.Errorf("prompt = %q, want %q", gotPrompt, want)
	}
}

func TestSummarizerSingleCall(t *testing.T) {
	calls := 0
	s := NewSummarizer(LLMFunc(func(context.Context, string, string) (string, error) {
		calls++
		return "ok", nil
	}))
	chunks := make([]Chunk, 5)
	for i := range chunks {
		chunks[i] = Chunk{Index: i, Content: strings.Repeat("x", 100)}
	}
	if _, err := s.Summarize(context.Background(), chunks); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("model called %d times, want 1", calls)
	}
}

func TestSummarizerErrors(t *testing.T) {
	boom := errors.New("429 rate limited")
	tests := []struct {
		name    string
		chunks  []Chunk
		reply   string
		err     error
		wantErr error
	}{
		{name: "no chunks", chunks: nil, wantErr: ErrNoContent},
		{name: "blank reply", chunks: []Chunk{{Content: "c"}}, reply: " \n ", wantErr: ErrEmptySummary},
		{name: "model failure", chunks: []Chunk{{Content: "c"}}, err: boom, wantErr: boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSummarizer(LLMFunc(func(context.Context, string, string) (string, error) {
				return tt.reply, tt.err
			}))
			_, err := s.Summarize(context.Background(), tt.chunks)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Summarize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewLLMFactory(t *testing.T) {
	f := NewLLMFactory(Config{DefaultAPIKey: "default"})
	if f("default") == nil || f("request-key") == nil {
		t.Fatal("factory returned nil LLM")
	}
}
