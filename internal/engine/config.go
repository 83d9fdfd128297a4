package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
// It is read once at startup and passed to New; nothing in the engine
// reads the environment on its own.
type Config struct {
	DefaultAPIKey   string   // used when a request carries no credential
	FallbackAPIKeys []string // tried after DefaultAPIKey, never after a request key
	LLMAPIBase      string
	LLMModel        string
	LLMTemperature  float64
	LLMMaxTokens    int
	LLMTimeout      time.Duration
	ChunkSize       int
	ChunkOverlap    int
	MaxContentChars int // 0 = no limit
	FetchTimeout    time.Duration
	UserAgent       string
	InsecureTLS     bool           // disables certificate checks for generic page fetches
	HTTPClient      *http.Client   // nil = built from FetchTimeout/InsecureTLS
	BrowserClient   *BrowserClient // nil = direct net/http fetches
}

// Defaults mirror the hosted-model setup the summarizer was tuned for.
const (
	DefaultLLMAPIBase   = "https://api.groq.com/openai/v1"
	DefaultLLMModel     = "llama-3.1-8b-instant"
	DefaultChunkSize    = 3000
	DefaultChunkOverlap = 200
)

// withDefaults fills zero values so tests and callers can pass a sparse Config.
func (c Config) withDefaults() Config {
	if c.LLMAPIBase == "" {
		c.LLMAPIBase = DefaultLLMAPIBase
	}
	if c.LLMModel == "" {
		c.LLMModel = DefaultLLMModel
	}
	if c.LLMMaxTokens <= 0 {
		c.LLMMaxTokens = 1024
	}
	if c.LLMTimeout <= 0 {
		c.LLMTimeout = 60 * time.Second
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
		if c.ChunkOverlap == 0 {
			c.ChunkOverlap = DefaultChunkOverlap
		}
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 30 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = UserAgentDesktop
	}
	return c
}
