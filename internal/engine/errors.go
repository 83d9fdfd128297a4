package engine

import (
	"context"
	"errors"
)

var (
	// ErrMissingInput is returned when the credential or URL is blank.
	ErrMissingInput = errors.New("missing credential or URL")
	// ErrInvalidURL is returned for input that is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrNoContent means every loader came back empty.
	ErrNoContent = errors.New("no transcript or readable content found")
	// ErrEmptyResult marks a loader that succeeded without producing text.
	ErrEmptyResult = errors.New("empty result")
	// ErrEmptySummary is returned when the model answers with blank text.
	ErrEmptySummary = errors.New("model returned an empty summary")
)

// Messages shown to end users. Internal error text never reaches them.
const (
	msgMissingInput = "Please provide the information to get started"
	msgInvalidURL   = "Please enter a valid URL. It can be a YouTube link or website URL."
	msgNoContent    = "No transcript or readable content found for this URL."
	msgCanceled     = "The request was cancelled or timed out."
	msgInternal     = "Summarization failed. Details were written to the server log."
)

// IsUserError reports whether err stems from the request itself
// rather than from a downstream failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrMissingInput) ||
		errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrNoContent)
}

// PublicMessage maps err to a sanitized message safe to show a user.
func PublicMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return msgMissingInput
	case errors.Is(err, ErrInvalidURL):
		return msgInvalidURL
	case errors.Is(err, ErrNoContent):
		return msgNoContent
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return msgCanceled
	default:
		return msgInternal
	}
}
