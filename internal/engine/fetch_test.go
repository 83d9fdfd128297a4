package engine

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Gardening Basics</title></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Gardening Basics</h1>
<p>Tomatoes need at least six hours of direct sunlight every day to produce a good crop through the summer months.</p>
<p>Water the soil deeply twice a week rather than a little every day so that the roots grow down into the ground.</p>
<p>Mulch keeps moisture in the soil and stops weeds from competing with young plants for nutrients and light.</p>
</article>
<script>var tracking = "should not appear";</script>
</body></html>`

func TestExtractWithGoquery(t *testing.T) {
	title, text := extractWithGoquery([]byte(articleHTML))
	if title != "Gardening Basics" {
		t.Errorf("title = %q, want Gardening Basics", title)
	}
	if !strings.Contains(text, "six hours of direct sunlight") {
		t.Errorf("article text missing: %q", text)
	}
	if strings.Contains(text, "should not appear") {
		t.Error("script content leaked into text")
	}
	if strings.Contains(text, "About") {
		t.Error("nav content leaked into text")
	}
}

func TestExtractWithGoqueryOGTitle(t *testing.T) {
	page := `<html><head><meta property="og:title" content="From OG"></head><body><p>Body text here.</p></body></html>`
	title, text := extractWithGoquery([]byte(page))
	if title != "From OG" {
		t.Errorf("title = %q, want From OG", title)
	}
	if text != "Body text here." {
		t.Errorf("text = %q", text)
	}
}

func newTestFetcher(srv *httptest.Server, maxChars int) *Fetcher {
	return NewFetcher(Config{HTTPClient: srv.Client(), MaxContentChars: maxChars})
}

func TestFetcherFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	docs, err := newTestFetcher(srv, 0).Fetch(context.Background(), srv.URL+"/garden")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	d := docs[0]
	if !strings.Contains(d.Content, "six hours of direct sunlight") {
		t.Errorf("content missing article text: %q", d.Content)
	}
	if d.Metadata[MetaSource] != srv.URL+"/garden" {
		t.Errorf("source = %q", d.Metadata[MetaSource])
	}
	if !strings.Contains(d.Title(), "Gardening Basics") {
		t.Errorf("title = %q", d.Title())
	}
	if gotUA != UserAgentDesktop {
		t.Errorf("User-Agent = %q, want desktop browser UA", gotUA)
	}
}

func TestFetcherGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(articleHTML))
		gz.Close()
	}))
	defer srv.Close()

	docs, err := newTestFetcher(srv, 0).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(docs) != 1 || !strings.Contains(docs[0].Content, "Mulch keeps moisture") {
		t.Errorf("gzip body not decoded: %+v", docs)
	}
}

func TestFetcherNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv, 0).Fetch(context.Background(), srv.URL)
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Errorf("Fetch() error = %v, want status 404", err)
	}
}

func TestFetcherEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head></head><body><script>x()</script></body></html>`))
	}))
	defer srv.Close()

	docs, err := newTestFetcher(srv, 0).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d documents for empty page, want 0", len(docs))
	}
}

func TestFetcherMaxChars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	docs, err := newTestFetcher(srv, 40).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if n := utf8.RuneCountInString(docs[0].Content); n > 43 {
		t.Errorf("content has %d runes, want <= 43", n)
	}
}

func TestCollapseSpaces(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  a \n\t b  ", "a b"},
		{"one", "one"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CollapseSpaces(tt.in); got != tt.want {
			t.Errorf("CollapseSpaces(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
