package sources

import (
	"context"
	"errors"

	"github.com/anatolykoptev/go_summarize/internal/engine"
)

var errNoVideoID = errors.New("no video ID in URL")

// WatchPageStrategy reads captions from the watch page and attaches the
// video's title, author, length and view count.
type WatchPageStrategy struct{ yt *YouTube }

func (WatchPageStrategy) Name() string { return "watch_page" }

func (s WatchPageStrategy) Extract(ctx context.Context, rawURL string) ([]engine.Document, error) {
	id := lookupVideoID(rawURL)
	if id == "" {
		return nil, errNoVideoID
	}
	wt, err := s.yt.fetchViaWatchPage(ctx, id)
	if err != nil {
		return nil, err
	}

	meta := map[string]string{
		engine.MetaSource:   id,
		engine.MetaLanguage: wt.Language,
	}
	if d := wt.Details; d != nil {
		setIfNotEmpty(meta, engine.MetaTitle, d.Title)
		setIfNotEmpty(meta, engine.MetaAuthor, d.Author)
		setIfNotEmpty(meta, engine.MetaLengthSeconds, d.LengthSeconds)
		setIfNotEmpty(meta, engine.MetaViewCount, d.ViewCount)
	}
	return []engine.Document{{Content: wt.Text, Metadata: meta}}, nil
}

// PlayerStrategy reads captions through the ANDROID player backend.
// It adds no video metadata.
type PlayerStrategy struct{ yt *YouTube }

func (PlayerStrategy) Name() string { return "innertube_player" }

func (s PlayerStrategy) Extract(ctx context.Context, rawURL string) ([]engine.Document, error) {
	id := lookupVideoID(rawURL)
	if id == "" {
		return nil, errNoVideoID
	}
	text, err := s.yt.fetchViaPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return []engine.Document{{Content: text, Metadata: map[string]string{engine.MetaSource: id}}}, nil
}

// TranscriptAPIStrategy takes the raw "v=" value from the URL and asks the
// transcript API directly. The result is one Document without metadata.
type TranscriptAPIStrategy struct{ yt *YouTube }

func (TranscriptAPIStrategy) Name() string { return "transcript_api" }

func (s TranscriptAPIStrategy) Extract(ctx context.Context, rawURL string) ([]engine.Document, error) {
	id := videoIDFromQuery(rawURL)
	if id == "" {
		return nil, errNoVideoID
	}
	text, err := s.yt.fetchViaEngagementPanel(ctx, id)
	if err != nil {
		return nil, err
	}
	return []engine.Document{{Content: text}}, nil
}

// lookupVideoID prefers the strict URL pattern and falls back to the raw
// "v=" parameter.
func lookupVideoID(rawURL string) string {
	if id := extractVideoID(rawURL); id != "" {
		return id
	}
	return videoIDFromQuery(rawURL)
}

func setIfNotEmpty(m map[string]string, key, value string) {
	if value != "" {
		m[key] = value
	}
}
