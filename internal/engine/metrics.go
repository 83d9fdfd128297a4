package engine

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SummarizeRequests atomic.Int64
	SummarizeErrors   atomic.Int64
	ExtractRequests   atomic.Int64
	FetchRequests     atomic.Int64
	FetchErrors       atomic.Int64
	TranscriptMisses  atomic.Int64
	LLMCalls          atomic.Int64
	LLMErrors         atomic.Int64
}

// strategyHits counts successful extractions per strategy name.
var strategyHits sync.Map // string → *atomic.Int64

func incrStrategyHit(name string) {
	v, _ := strategyHits.LoadOrStore(name, new(atomic.Int64))
	v.(*atomic.Int64).Add(1)
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	m := map[string]int64{
		"summarize_requests": metrics.SummarizeRequests.Load(),
		"summarize_errors":   metrics.SummarizeErrors.Load(),
		"extract_requests":   metrics.ExtractRequests.Load(),
		"fetch_requests":     metrics.FetchRequests.Load(),
		"fetch_errors":       metrics.FetchErrors.Load(),
		"transcript_misses":  metrics.TranscriptMisses.Load(),
		"llm_calls":          metrics.LLMCalls.Load(),
		"llm_errors":         metrics.LLMErrors.Load(),
	}
	strategyHits.Range(func(k, v any) bool {
		m["strategy_hits_"+k.(string)] = v.(*atomic.Int64).Load()
		return true
	})
	return m
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range slices.Sorted(maps.Keys(m)) {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 20*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
