package engine

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxPageBytes caps how much of a page body is read.
const maxPageBytes = 8 * 1024 * 1024

// newFetchClient creates an HTTP client with proper settings for web scraping.
func newFetchClient(timeout time.Duration, insecure bool) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
			TLSHandshakeTimeout: 15 * time.Second,
			TLSClientConfig:     &tls.Config{InsecureSkipVerify: insecure}, //nolint:gosec // opt-in via FETCH_INSECURE_TLS
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return errors.New("stopped after 10 redirects")
			}
			return nil
		},
	}
}

// getPage performs a single GET for an HTML page. There is no retry:
// a failed fetch fails the request.
func (f *Fetcher) getPage(ctx context.Context, pageURL string) ([]byte, error) {
	if f.browser != nil {
		return f.getPageBrowser(pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return readResponseBody(resp)
}

// getPageBrowser fetches through the Chrome TLS fingerprint client.
func (f *Fetcher) getPageBrowser(pageURL string) ([]byte, error) {
	headers := ChromeHeaders()
	headers["user-agent"] = f.userAgent
	data, _, status, err := f.browser.Do(http.MethodGet, pageURL, headers, nil)
	if err != nil {
		return nil, fmt.Errorf("browser fetch: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("status %d", status)
	}
	return data, nil
}

// readResponseBody reads the response body, handling gzip decompression if needed.
func readResponseBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(io.LimitReader(r, maxPageBytes))
}
