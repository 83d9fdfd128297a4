package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/semaphore"
)

// Pipeline runs fetch → chunk → summarize for one URL at a time.
type Pipeline struct {
	defaultKey  string
	web         Extractor
	transcripts *Chain
	chunker     *Chunker
	newLLM      LLMFactory
	gate        *semaphore.Weighted
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithTranscriptChain sets the fallback chain used for video URLs.
func WithTranscriptChain(c *Chain) Option {
	return func(p *Pipeline) { p.transcripts = c }
}

// WithWebExtractor replaces the generic page loader.
func WithWebExtractor(e Extractor) Option {
	return func(p *Pipeline) { p.web = e }
}

// WithLLMFactory replaces the hosted-model client factory.
func WithLLMFactory(f LLMFactory) Option {
	return func(p *Pipeline) { p.newLLM = f }
}

// New builds a Pipeline from cfg. Without WithTranscriptChain every
// video URL resolves to ErrNoContent.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	cfg = cfg.withDefaults()
	chunker, err := NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		defaultKey:  strings.TrimSpace(cfg.DefaultAPIKey),
		web:         NewFetcher(cfg),
		transcripts: NewChain(),
		chunker:     chunker,
		newLLM:      NewLLMFactory(cfg),
		gate:        semaphore.NewWeighted(1),
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Summarize validates the request, loads the URL's text and returns the
// model's summary. The request credential wins over the configured default.
// Validation errors are returned before any network call.
func (p *Pipeline) Summarize(ctx context.Context, in SummarizeInput) (res *Result, err error) {
	metrics.SummarizeRequests.Add(1)
	defer func() {
		if err != nil {
			metrics.SummarizeErrors.Add(1)
		}
	}()

	apiKey := strings.TrimSpace(in.APIKey)
	if apiKey == "" {
		apiKey = p.defaultKey
	}
	if apiKey == "" || strings.TrimSpace(in.URL) == "" {
		return nil, ErrMissingInput
	}
	src, err := ParseSourceURL(in.URL)
	if err != nil {
		return nil, err
	}

	if err := p.gate.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer p.gate.Release(1)

	err = TrackOperation(ctx, "summarize:"+src.Raw, func(ctx context.Context) error {
		res, err = p.summarize(ctx, src, apiKey)
		return err
	})
	return res, err
}

func (p *Pipeline) summarize(ctx context.Context, src SourceURL, apiKey string) (*Result, error) {
	ext, err := p.load(ctx, src)
	if err != nil {
		return nil, err
	}

	chunks, err := p.chunker.Split(ext.Documents)
	if err != nil {
		return nil, err
	}
	slog.Debug("summarize: chunked",
		slog.String("url", src.Raw),
		slog.Int("documents", len(ext.Documents)),
		slog.Int("chunks", len(chunks)))

	summary, err := NewSummarizer(p.newLLM(apiKey)).Summarize(ctx, chunks)
	if err != nil {
		return nil, err
	}

	return &Result{
		URL:      ext.URL,
		Kind:     ext.Kind,
		Title:    ext.Documents[0].Title(),
		Strategy: ext.Strategy,
		Chunks:   len(chunks),
		Summary:  summary,
	}, nil
}

// Extract validates rawURL and returns its loaded Documents without
// summarizing them. No credential is needed.
func (p *Pipeline) Extract(ctx context.Context, rawURL string) (*Extraction, error) {
	metrics.ExtractRequests.Add(1)
	src, err := ParseSourceURL(rawURL)
	if err != nil {
		return nil, err
	}

	if err := p.gate.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer p.gate.Release(1)

	return p.load(ctx, src)
}

// load branches on the URL kind. Video URLs are normalized and go through
// the transcript chain; everything else goes to the web loader.
func (p *Pipeline) load(ctx context.Context, src SourceURL) (*Extraction, error) {
	ext := &Extraction{URL: src.Raw, Kind: src.Kind}

	switch src.Kind {
	case KindVideo:
		ext.URL = NormalizeVideoURL(src.Raw)
		res := p.transcripts.Resolve(ctx, ext.URL)
		if len(res.Documents) == 0 {
			metrics.TranscriptMisses.Add(1)
			if cerr := ctx.Err(); cerr != nil {
				return nil, cerr
			}
			slog.Warn("extract: all transcript strategies failed",
				slog.String("url", ext.URL),
				slog.Any("error", res.Err()))
			return nil, fmt.Errorf("%w: %s", ErrNoContent, ext.URL)
		}
		ext.Strategy = res.Strategy
		ext.Documents = res.Documents
	default:
		docs, err := p.web.Extract(ctx, src.Raw)
		if err != nil {
			return nil, err
		}
		docs = nonEmpty(docs)
		if len(docs) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoContent, src.Raw)
		}
		ext.Strategy = p.web.Name()
		ext.Documents = docs
	}
	return ext, nil
}
