package sources

// YouTube implementation is split across files by responsibility:
//   youtube.go            client type and the transcript fallback chain
//   youtube_url.go        video ID extraction
//   youtube_innertube.go  Innertube API types, constants, and low-level HTTP primitives
//   youtube_transcript.go transcript fetching (watch page, ANDROID player, engagement panel)
//   youtube_strategies.go the three engine.Extractor strategies

import (
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go_summarize/internal/engine"
)

// DefaultLangs is the caption language preference: English, then Hindi.
var DefaultLangs = []string{"en", "hi"}

const ytBaseURL = "https://www.youtube.com"

// YouTube fetches transcripts from youtube.com.
type YouTube struct {
	client  *http.Client
	langs   []string
	baseURL string
}

// NewYouTube returns a YouTube client. A nil client gets a 15s timeout;
// empty langs fall back to DefaultLangs.
func NewYouTube(client *http.Client, langs []string) *YouTube {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if len(langs) == 0 {
		langs = DefaultLangs
	}
	return &YouTube{client: client, langs: langs, baseURL: ytBaseURL}
}

// WithBaseURL points the client at another host (used by tests).
func (yt *YouTube) WithBaseURL(base string) *YouTube {
	cp := *yt
	cp.baseURL = strings.TrimRight(base, "/")
	return &cp
}

// NewYouTubeChain returns the transcript fallback chain in priority order:
// watch page captions with video metadata, the ANDROID player backend,
// then the transcript API addressed by raw video ID.
func NewYouTubeChain(yt *YouTube) *engine.Chain {
	return engine.NewChain(
		WatchPageStrategy{yt: yt},
		PlayerStrategy{yt: yt},
		TranscriptAPIStrategy{yt: yt},
	)
}
