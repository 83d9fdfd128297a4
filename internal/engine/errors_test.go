package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "missing input", err: ErrMissingInput, want: msgMissingInput},
		{name: "invalid url wrapped", err: fmt.Errorf("%w: %q", ErrInvalidURL, "x"), want: msgInvalidURL},
		{name: "no content wrapped", err: fmt.Errorf("%w: https://x", ErrNoContent), want: msgNoContent},
		{name: "deadline", err: fmt.Errorf("llm: %w", context.DeadlineExceeded), want: msgCanceled},
		{name: "internal", err: errors.New("dial tcp 10.0.0.1:443: connection refused"), want: msgInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PublicMessage(tt.err); got != tt.want {
				t.Errorf("PublicMessage(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestPublicMessageHidesDetail(t *testing.T) {
	err := errors.New("401 Unauthorized: invalid api key gsk_secret")
	if msg := PublicMessage(err); strings.Contains(msg, "gsk_secret") {
		t.Errorf("PublicMessage leaked error detail: %q", msg)
	}
}

func TestIsUserError(t *testing.T) {
	if !IsUserError(ErrMissingInput) || !IsUserError(ErrInvalidURL) || !IsUserError(ErrNoContent) {
		t.Error("request errors should be user errors")
	}
	if IsUserError(ErrEmptySummary) || IsUserError(errors.New("boom")) {
		t.Error("downstream errors should not be user errors")
	}
}
