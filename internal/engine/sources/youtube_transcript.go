package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_summarize/internal/engine"
	"golang.org/x/net/html"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// YouTube transcript fetching.
// Watch page: scrape ytInitialPlayerResponse → caption XML, plus video details.
// Player:     ANDROID Innertube /player → captionTracks.
// Transcript: /next → engagement panel → /get_transcript segments, reloaded
//             in a preferred language through the panel's language menu.

var (
	errNoCaptions    = errors.New("no caption tracks")
	errNoLangTrack   = errors.New("no caption track in preferred languages")
	errPoTokenTracks = errors.New("all caption tracks require PoToken")
)

// getTranscriptRE extracts the continuation token from a raw /next JSON response.
var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

func extractTranscriptToken(data []byte) (string, error) {
	if m := getTranscriptRE.FindSubmatch(data); len(m) >= 2 {
		// The params value in the /next JSON response is URL-encoded.
		// /get_transcript expects the decoded (raw base64) form.
		decoded, err := url.QueryUnescape(string(m[1]))
		if err != nil {
			return string(m[1]), nil
		}
		return decoded, nil
	}
	return "", errors.New("getTranscriptEndpoint not found in engagement panels")
}

// parseTranscriptSegments joins the text of every transcript segment with single spaces.
// Segment runs are plain text, so only whitespace is folded.
func parseTranscriptSegments(resp ytGetTranscriptResp) string {
	var parts []string
	for _, p := range resp.panels() {
		for _, seg := range p.Body.TranscriptSegmentListRenderer.InitialSegments {
			if seg.TranscriptSegmentRenderer == nil {
				continue
			}
			for _, run := range seg.TranscriptSegmentRenderer.Snippet.Runs {
				if text := engine.CollapseSpaces(run.Text); text != "" {
					parts = append(parts, text)
				}
			}
		}
	}
	return strings.Join(parts, " ")
}

// languageName returns the English display name of a language code's base
// language ("en-GB" → "English"), or "" for an unparsable code.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return display.Languages(language.English).Name(language.Make(base.String()))
}

// matchesLanguage reports whether a menu title such as
// "English (auto-generated)" or "English (United Kingdom)" names lang.
func matchesLanguage(title, name string) bool {
	return title == name || strings.HasPrefix(title, name+" (")
}

// pickTranscriptLang selects the menu entry for the first preferred language
// that has a transcript. Manual transcripts beat auto-generated ones within a
// language; language order wins over kind.
func pickTranscriptLang(items []ytTranscriptLang, langs []string) (ytTranscriptLang, error) {
	for _, lang := range langs {
		name := languageName(lang)
		if name == "" {
			continue
		}
		for _, it := range items {
			if matchesLanguage(it.Title, name) && !strings.Contains(it.Title, "auto-generated") {
				return it, nil
			}
		}
		for _, it := range items {
			if matchesLanguage(it.Title, name) {
				return it, nil
			}
		}
	}
	return ytTranscriptLang{}, errNoLangTrack
}

// getTranscript POSTs /get_transcript with params and decodes the response.
func (yt *YouTube) getTranscript(ctx context.Context, params, visitorData string) (ytGetTranscriptResp, error) {
	var resp ytGetTranscriptResp
	data, err := yt.postInnerTubeWEB(ctx, ytGetTranscriptPath, map[string]any{
		"params": params,
		"context": map[string]any{
			"client": ytWebClientCtx{
				ClientName:    "WEB",
				ClientVersion: ytWebVersion,
				VisitorData:   visitorData,
				Hl:            transcriptUILang,
				Gl:            "US",
			},
		},
	}, visitorData)
	if err != nil {
		return resp, fmt.Errorf("/get_transcript: %w", err)
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return resp, fmt.Errorf("decode transcript: %w", err)
	}
	return resp, nil
}

// transcriptUILang keeps language menu titles in English so they can be
// matched against display names.
const transcriptUILang = "en"

// fetchViaEngagementPanel fetches a transcript via:
//  1. POST /next → get engagementPanels containing transcript continuation token
//  2. POST /get_transcript with the token → JSON segments and the language menu
//  3. if the default transcript is not in a preferred language, reload the
//     panel with the preferred entry's continuation
//
// This approach works from datacenter IPs where /player returns LOGIN_REQUIRED.
func (yt *YouTube) fetchViaEngagementPanel(ctx context.Context, videoID string) (string, error) {
	visitorData := generateVisitorData()

	nextData, err := yt.postInnerTubeWEB(ctx, ytNextPath, map[string]any{
		"videoId": videoID,
		"context": ytWebContext(visitorData, transcriptUILang),
	}, visitorData)
	if err != nil {
		return "", fmt.Errorf("/next: %w", err)
	}

	token, err := extractTranscriptToken(nextData)
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}

	resp, err := yt.getTranscript(ctx, token, visitorData)
	if err != nil {
		return "", err
	}

	choice, err := pickTranscriptLang(resp.languages(), yt.langs)
	if err != nil {
		return "", err
	}
	if !choice.Selected {
		cont := choice.Continuation.ReloadContinuationData.Continuation
		if cont == "" {
			return "", fmt.Errorf("%w: no continuation for %q", errNoLangTrack, choice.Title)
		}
		if resp, err = yt.getTranscript(ctx, cont, visitorData); err != nil {
			return "", err
		}
	}

	text := parseTranscriptSegments(resp)
	if text == "" {
		return "", errors.New("empty transcript segments")
	}
	return text, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language preferences.
// Language order wins over track kind: a manual track beats an auto-generated
// one only within the same language. Tracks outside langs are never picked.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, error) {
	if len(tracks) == 0 {
		return captionTrack{}, errNoCaptions
	}
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, errPoTokenTracks
	}
	for _, lang := range langs {
		// 1. Manual track in this language
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, nil
			}
		}
		// 2. Auto-generated track in this language
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, nil
			}
		}
		// 3. Regional variant (en-GB for en)
		for _, t := range usable {
			if strings.HasPrefix(t.LanguageCode, lang+"-") {
				return t, nil
			}
		}
	}
	return captionTrack{}, errNoLangTrack
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func (yt *YouTube) fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", engine.UserAgentChrome)

	resp, err := yt.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timedtext HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return "", err
	}

	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	parts := make([]string, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		if text := cleanCaption(line.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

// cleanCaption drops formatting tags (<font>, <i>) from a timedtext line,
// decodes the entities YouTube double-escapes (&amp;#39;) and folds whitespace.
// Text that only looks like markup, such as "a < b" or "<3", is kept.
func cleanCaption(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return engine.CollapseSpaces(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				sb.WriteByte(' ')
			}
		}
	}
}

// fetchViaPlayer uses the ANDROID Innertube /player endpoint.
// Works from non-blocked (residential/cloud) IP addresses.
func (yt *YouTube) fetchViaPlayer(ctx context.Context, videoID string) (string, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, yt.baseURL+ytPlayerPath+"?prettyPrint=false", bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ytAndroidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)

	resp, err := yt.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("android innertube HTTP %d", resp.StatusCode)
	}

	var playerResp innertubePlayerResp
	if err := json.NewDecoder(resp.Body).Decode(&playerResp); err != nil {
		return "", fmt.Errorf("decode player: %w", err)
	}
	tracks := playerResp.captionTracks()
	if len(tracks) == 0 {
		if reason := playerResp.unplayableReason(); reason != "" {
			return "", fmt.Errorf("captions unavailable: %s", reason)
		}
		return "", errNoCaptions
	}
	track, err := pickBestTrack(tracks, yt.langs)
	if err != nil {
		return "", err
	}
	return yt.fetchTimedText(ctx, track.BaseURL)
}

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// watchPageTranscript is what the watch page scrape yields.
type watchPageTranscript struct {
	Text     string
	Language string
	Details  *videoDetails
}

// fetchViaWatchPage scrapes the YouTube watch page HTML and extracts the
// caption track XML URL and video details from ytInitialPlayerResponse.
func (yt *YouTube) fetchViaWatchPage(ctx context.Context, videoID string) (*watchPageTranscript, error) {
	watchURL := yt.baseURL + "/watch?v=" + url.QueryEscape(videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", engine.UserAgentDesktop)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := yt.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	tracks := playerResp.captionTracks()
	if len(tracks) == 0 {
		if reason := playerResp.unplayableReason(); reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", reason)
		}
		return nil, errNoCaptions
	}
	track, err := pickBestTrack(tracks, yt.langs)
	if err != nil {
		return nil, err
	}
	text, err := yt.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	return &watchPageTranscript{
		Text:     text,
		Language: track.LanguageCode,
		Details:  playerResp.VideoDetails,
	}, nil
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
