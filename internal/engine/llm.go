package engine

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// LLM is the chat-completion capability the summarizer needs.
type LLM interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// LLMFunc adapts a plain function to LLM.
type LLMFunc func(ctx context.Context, system, prompt string) (string, error)

func (f LLMFunc) Complete(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}

// LLMFactory builds an LLM bound to one credential.
type LLMFactory func(apiKey string) LLM

// NewLLMFactory returns a factory for the configured OpenAI-compatible endpoint.
// Each call builds a fresh client, so credentials never outlive a request.
func NewLLMFactory(cfg Config) LLMFactory {
	cfg = cfg.withDefaults()
	defaultKey := strings.TrimSpace(cfg.DefaultAPIKey)
	return func(apiKey string) LLM {
		var fallbacks []string
		if apiKey == defaultKey {
			fallbacks = cfg.FallbackAPIKeys
		}
		c := llm.NewClient(cfg.LLMAPIBase, apiKey, cfg.LLMModel,
			llm.WithFallbackKeys(fallbacks),
			llm.WithMaxTokens(cfg.LLMMaxTokens),
			llm.WithTemperature(cfg.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: cfg.LLMTimeout}),
		)
		return LLMFunc(func(ctx context.Context, system, prompt string) (string, error) {
			return c.Complete(ctx, system, prompt)
		})
	}
}

// Summarizer stuffs all chunks into one prompt and makes a single model call.
type Summarizer struct {
	llm LLM
}

// NewSummarizer wraps an LLM.
func NewSummarizer(l LLM) *Summarizer {
	return &Summarizer{llm: l}
}

// Summarize returns the model's summary of chunks. There is no retry,
// streaming or map-reduce pass.
func (s *Summarizer) Summarize(ctx context.Context, chunks []Chunk) (string, error) {
	if len(chunks) == 0 {
		return "", ErrNoContent
	}

	prompt := fmt.Sprintf(summaryPrompt, stuffChunks(chunks))

	metrics.LLMCalls.Add(1)
	raw, err := s.llm.Complete(ctx, "", prompt)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", fmt.Errorf("llm: %w", err)
	}
	summary := strings.TrimSpace(raw)
	if summary == "" {
		metrics.LLMErrors.Add(1)
		return "", ErrEmptySummary
	}
	return summary, nil
}

// stuffChunks concatenates chunk contents in order.
func stuffChunks(chunks []Chunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Content
	}
	return strings.Join(parts, chunkSeparator)
}
