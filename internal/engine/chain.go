package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Extractor is one way of turning a URL into Documents.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, rawURL string) ([]Document, error)
}

// StrategyError records why one extractor in a Chain failed.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string { return e.Strategy + ": " + e.Err.Error() }
func (e *StrategyError) Unwrap() error { return e.Err }

// Resolution is the outcome of Chain.Resolve.
// Documents is empty when every strategy failed.
type Resolution struct {
	Documents []Document
	Strategy  string
	Failures  []*StrategyError
}

// Err joins all recorded strategy failures, or returns nil.
func (r Resolution) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Chain tries extractors in a fixed order and keeps the first
// non-empty result.
type Chain struct {
	strategies []Extractor
}

// NewChain builds a chain that runs strategies in the given order.
func NewChain(strategies ...Extractor) *Chain {
	return &Chain{strategies: strategies}
}

// Names lists the strategies in priority order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}

// Resolve runs the strategies until one yields text. A failing strategy is
// logged and recorded, never returned: callers decide what an empty
// Resolution means.
func (c *Chain) Resolve(ctx context.Context, rawURL string) Resolution {
	var res Resolution
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			res.Failures = append(res.Failures, &StrategyError{Strategy: s.Name(), Err: err})
			break
		}

		docs, err := s.Extract(ctx, rawURL)
		if err == nil {
			docs = nonEmpty(docs)
			if len(docs) == 0 {
				err = ErrEmptyResult
			}
		}
		if err != nil {
			slog.Warn("extract: strategy failed",
				slog.String("strategy", s.Name()),
				slog.String("url", rawURL),
				slog.Any("error", err))
			res.Failures = append(res.Failures, &StrategyError{Strategy: s.Name(), Err: err})
			continue
		}

		incrStrategyHit(s.Name())
		res.Documents = docs
		res.Strategy = s.Name()
		return res
	}
	return res
}

// nonEmpty drops documents whose content is blank.
func nonEmpty(docs []Document) []Document {
	out := docs[:0:0]
	for _, d := range docs {
		if strings.TrimSpace(d.Content) != "" {
			out = append(out, d)
		}
	}
	return out
}
