package sources

import (
	"regexp"
	"strings"
)

var videoIDRE = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|embed/|live/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// extractVideoID pulls the 11-char video ID from any YouTube URL format.
func extractVideoID(rawURL string) string {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if len(m) >= 2 {
		return m[1]
	}
	return ""
}

// videoIDFromQuery takes the text after the last "v=" up to the next '&'.
// It is deliberately loose: no length or alphabet check, so IDs that the
// strict pattern rejects still reach the transcript API.
func videoIDFromQuery(rawURL string) string {
	i := strings.LastIndex(rawURL, "v=")
	if i < 0 {
		return ""
	}
	id := rawURL[i+len("v="):]
	if j := strings.IndexByte(id, '&'); j >= 0 {
		id = id[:j]
	}
	return id
}
