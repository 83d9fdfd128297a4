package toolutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/anatolykoptev/go_summarize/internal/engine"
)

func TestPublicError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "invalid url", err: fmt.Errorf("%w: %q", engine.ErrInvalidURL, "x"), want: "Please enter a valid URL. It can be a YouTube link or website URL."},
		{name: "no content", err: engine.ErrNoContent, want: "No transcript or readable content found for this URL."},
		{name: "provider failure", err: errors.New("llm: 401 invalid key gsk_123"), want: "Summarization failed. Details were written to the server log."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PublicError("summarize", "https://example.com", tt.err)
			if got == nil || got.Error() != tt.want {
				t.Errorf("PublicError() = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestPublicErrorNil(t *testing.T) {
	if err := PublicError("summarize", "", nil); err != nil {
		t.Errorf("PublicError(nil) = %v, want nil", err)
	}
}
