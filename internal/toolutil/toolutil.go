// Package toolutil provides shared helpers for the go_summarize surfaces
// (MCP tools and CLI commands).
package toolutil

import (
	"errors"
	"log/slog"

	"github.com/anatolykoptev/go_summarize/internal/engine"
)

// PublicError logs err with full detail and returns an error whose text is
// safe to show a user. Request errors (bad input, nothing found) are logged
// at info level; downstream failures at error level.
func PublicError(op, rawURL string, err error) error {
	if err == nil {
		return nil
	}
	attrs := []any{
		slog.String("op", op),
		slog.String("url", rawURL),
		slog.Any("error", err),
	}
	if engine.IsUserError(err) {
		slog.Info("request rejected", attrs...)
	} else {
		slog.Error("request failed", attrs...)
	}
	return errors.New(engine.PublicMessage(err))
}
