package engine

// --- Core pipeline types ---

// Kind tells which loader handles a URL.
type Kind string

const (
	KindVideo Kind = "video"
	KindWeb   Kind = "generic-web"
)

// SourceURL is a validated request URL. It lives for one request only.
type SourceURL struct {
	Raw  string
	Kind Kind
}

// Document is a unit of extracted text plus optional metadata.
type Document struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Title returns the title metadata value, if any.
func (d Document) Title() string {
	return d.Metadata[MetaTitle]
}

// Chunk is a bounded slice of a Document's content.
type Chunk struct {
	Index    int               `json:"index"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Metadata keys attached by loaders.
const (
	MetaSource        = "source"
	MetaTitle         = "title"
	MetaAuthor        = "author"
	MetaLengthSeconds = "length_seconds"
	MetaViewCount     = "view_count"
	MetaLanguage      = "language"
)

// --- Tool input/output types ---

type SummarizeInput struct {
	URL    string `json:"url" jsonschema:"YouTube video URL or website URL to summarize"`
	APIKey string `json:"api_key,omitempty" jsonschema:"Groq API key (default: server-configured key)"`
}

type ExtractInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL or website URL to extract text from"`
}

// Result is the outcome of one summarize request.
type Result struct {
	URL      string `json:"url"`
	Kind     Kind   `json:"kind"`
	Title    string `json:"title,omitempty"`
	Strategy string `json:"strategy"` // loader that produced the text
	Chunks   int    `json:"chunks"`
	Summary  string `json:"summary"`
}

// Extraction is the loaded text for a URL before summarization.
type Extraction struct {
	URL       string     `json:"url"`
	Kind      Kind       `json:"kind"`
	Strategy  string     `json:"strategy"`
	Documents []Document `json:"documents"`
}

// StrategyWeb names the generic page loader in Result.Strategy.
const StrategyWeb = "web_page"
