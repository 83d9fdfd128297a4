package engine

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Fetcher loads generic web pages and extracts their readable text.
type Fetcher struct {
	client    *http.Client
	browser   *BrowserClient
	userAgent string
	maxChars  int
}

// NewFetcher builds a Fetcher from cfg. cfg.HTTPClient wins over the
// timeout and TLS settings when set.
func NewFetcher(cfg Config) *Fetcher {
	cfg = cfg.withDefaults()
	client := cfg.HTTPClient
	if client == nil {
		client = newFetchClient(cfg.FetchTimeout, cfg.InsecureTLS)
	}
	return &Fetcher{
		client:    client,
		browser:   cfg.BrowserClient,
		userAgent: cfg.UserAgent,
		maxChars:  cfg.MaxContentChars,
	}
}

// Name identifies the fetcher in results and logs.
func (f *Fetcher) Name() string { return StrategyWeb }

// Extract implements Extractor.
func (f *Fetcher) Extract(ctx context.Context, rawURL string) ([]Document, error) {
	return f.Fetch(ctx, rawURL)
}

// Fetch downloads rawURL and returns its main text as one Document.
// It extracts with go-readability and falls back to goquery.
// A page with no extractable text yields an empty slice.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (docs []Document, err error) {
	metrics.FetchRequests.Add(1)
	defer func() {
		if err != nil {
			metrics.FetchErrors.Add(1)
		}
	}()

	body, err := f.getPage(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	title, text := extractReadable(body, rawURL)
	if text == "" {
		return nil, nil
	}
	if f.maxChars > 0 {
		text = TruncateRunes(text, f.maxChars, "...")
	}

	meta := map[string]string{MetaSource: rawURL}
	if title != "" {
		meta[MetaTitle] = title
	}
	return []Document{{Content: text, Metadata: meta}}, nil
}

// extractReadable pulls the article body out of an HTML page.
func extractReadable(body []byte, rawURL string) (title, content string) {
	pageURL, _ := url.Parse(rawURL)
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return extractWithGoquery(body)
	}

	md, err := htmltomarkdown.ConvertString(article.Content)
	if err != nil {
		md = article.TextContent
	}
	text := strings.TrimSpace(md)
	if text == "" {
		return extractWithGoquery(body)
	}
	return strings.TrimSpace(article.Title), text
}

// extractWithGoquery uses goquery for structured HTML parsing when readability fails.
func extractWithGoquery(body []byte) (title, content string) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", ""
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		if og, ok := doc.Find("meta[property='og:title']").First().Attr("content"); ok {
			title = strings.TrimSpace(og)
		}
	}

	removeSelectors := []string{
		"script", "style", "noscript", "iframe", "svg",
		"header", "footer", "nav", "aside",
		".advertisement", ".ad", ".sidebar", ".comments",
		"[role=navigation]", "[role=banner]", "[role=contentinfo]",
	}
	doc.Find(strings.Join(removeSelectors, ", ")).Remove()

	contentSel := doc.Find("article, main, .content, .post-content, .article-content, #content").First()
	if contentSel.Length() == 0 {
		contentSel = doc.Find("body")
	}
	return title, CollapseSpaces(contentSel.Text())
}
