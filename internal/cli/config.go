package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go_summarize/internal/engine"
	"github.com/anatolykoptev/go_summarize/internal/engine/sources"
	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env files in priority order:
// 1. ENV_FILE environment variable (if set, loads only this file)
// 2. .env.local, then .env
// Variables already set in the process environment are never overridden.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env.local: %w", err)
	}
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// settings is everything read from the environment at startup.
type settings struct {
	Engine         engine.Config
	TranscriptLang []string
	YouTubeTimeout time.Duration
	BrowserFetch   bool
	WebshareKey    string
	MCPPort        string
}

func loadSettings() settings {
	return settings{
		Engine: engine.Config{
			DefaultAPIKey:   env.Str("GROQ_API_KEY", ""),
			FallbackAPIKeys: env.List("GROQ_API_KEY_FALLBACKS", ""),
			LLMAPIBase:      env.Str("LLM_API_BASE", engine.DefaultLLMAPIBase),
			LLMModel:        env.Str("LLM_MODEL", engine.DefaultLLMModel),
			LLMTemperature:  env.Float("LLM_TEMPERATURE", 0.3),
			LLMMaxTokens:    env.Int("LLM_MAX_TOKENS", 1024),
			LLMTimeout:      env.Duration("LLM_TIMEOUT", 60*time.Second),
			ChunkSize:       env.Int("CHUNK_SIZE", engine.DefaultChunkSize),
			ChunkOverlap:    env.Int("CHUNK_OVERLAP", engine.DefaultChunkOverlap),
			MaxContentChars: env.Int("MAX_CONTENT_CHARS", 0),
			FetchTimeout:    env.Duration("FETCH_TIMEOUT", 30*time.Second),
			UserAgent:       env.Str("FETCH_USER_AGENT", engine.UserAgentDesktop),
			InsecureTLS:     envBool("FETCH_INSECURE_TLS", false),
		},
		TranscriptLang: env.List("TRANSCRIPT_LANGS", "en,hi"),
		YouTubeTimeout: env.Duration("YOUTUBE_TIMEOUT", 15*time.Second),
		BrowserFetch:   envBool("FETCH_BROWSER", false),
		WebshareKey:    env.Str("WEBSHARE_API_KEY", ""),
		MCPPort:        env.Str("MCP_PORT", "8892"),
	}
}

// envBool parses a boolean variable, returning def when unset or malformed.
func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(env.Str(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}

// buildPipeline wires the fetcher, the YouTube fallback chain and the LLM
// factory into one engine.Pipeline.
func buildPipeline(s settings) (*engine.Pipeline, error) {
	c := s.Engine
	if c.InsecureTLS {
		slog.Warn("TLS certificate verification disabled for page fetches")
	}
	if s.BrowserFetch {
		bc, err := engine.NewBrowserClient(int(c.FetchTimeout/time.Second), s.WebshareKey)
		if err != nil {
			slog.Warn("stealth browser client init failed, using net/http", slog.Any("error", err))
		} else {
			c.BrowserClient = bc
			slog.Info("stealth browser client initialized")
		}
	}

	yt := sources.NewYouTube(&http.Client{
		Timeout: s.YouTubeTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     60 * time.Second,
		},
	}, s.TranscriptLang)
	chain := sources.NewYouTubeChain(yt)

	p, err := engine.New(c, engine.WithTranscriptChain(chain))
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	slog.Info("pipeline ready",
		slog.String("model", c.LLMModel),
		slog.Int("chunk_size", c.ChunkSize),
		slog.Int("chunk_overlap", c.ChunkOverlap),
		slog.Any("transcript_strategies", chain.Names()),
		slog.Bool("default_key", c.DefaultAPIKey != ""))
	return p, nil
}
