package engine

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NormalizeVideoURL drops everything from the first '&' on, which strips
// playlist, index and timestamp parameters from a watch URL.
// It does not validate the URL.
func NormalizeVideoURL(rawURL string) string {
	if i := strings.IndexByte(rawURL, '&'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

// IsVideoURL reports whether rawURL points at a YouTube video.
func IsVideoURL(rawURL string) bool {
	return strings.Contains(rawURL, "youtube.com") || strings.Contains(rawURL, "youtu.be")
}

// ParseSourceURL validates rawURL and classifies it.
// Only absolute http(s) URLs with a host are accepted.
func ParseSourceURL(rawURL string) (SourceURL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return SourceURL{}, ErrMissingInput
	}
	if err := validate.Var(rawURL, "url"); err != nil {
		return SourceURL{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return SourceURL{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	kind := KindWeb
	if IsVideoURL(rawURL) {
		kind = KindVideo
	}
	return SourceURL{Raw: rawURL, Kind: kind}, nil
}
