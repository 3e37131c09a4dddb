// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/wordsphere/wordsphere/pkg/wordcloud"
	"github.com/wordsphere/wordsphere/pkg/wordcloud/analysis"
	"github.com/wordsphere/wordsphere/pkg/wordcloud/layout"
	"github.com/wordsphere/wordsphere/scraper"
)

// Environment selects log formatting and verbosity defaults.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig
	Scrape   ScrapeConfig
	Analysis AnalysisConfig
	Layout   LayoutConfig
	Cache    CacheConfig
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Env          Environment
	Addr         string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

// ScrapeConfig bounds outbound article fetches. The fetch timeout
// lives on the shared HTTP client and is read from SCRAPE_TIMEOUT by
// the services package.
type ScrapeConfig struct {
	MaxBodyBytes     int64
	MinContentLength int
	UserAgent        string
}

// AnalysisConfig holds keyword extraction settings.
type AnalysisConfig struct {
	MaxKeywords    int
	MinWordLength  int
	MaxWordLength  int
	Bigrams        bool
	SentenceCorpus bool
}

// LayoutConfig holds sphere placement constants.
type LayoutConfig struct {
	BaseRadius   float64
	RadiusSpread float64
	BaseSize     float64
	SizeSpread   float64
}

// CacheConfig controls the analysis response cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Size    int
}

// Load reads configuration from the environment, applies defaults for
// anything unset, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Env:          Environment(getEnv("ENV", string(Development))),
			Addr:         ":" + getEnv("PORT", "8000"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			ReadTimeout:  getEnvDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("WRITE_TIMEOUT", 30*time.Second),
			CORSOrigins:  getEnvSlice("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		},
		Scrape: ScrapeConfig{
			MaxBodyBytes:     getEnvInt64("SCRAPE_MAX_BODY_BYTES", scraper.DefaultMaxBodyBytes),
			MinContentLength: getEnvInt("SCRAPE_MIN_CONTENT_LENGTH", scraper.DefaultMinContentLength),
			UserAgent:        getEnv("SCRAPE_USER_AGENT", scraper.DefaultUserAgent),
		},
		Analysis: AnalysisConfig{
			MaxKeywords:    getEnvInt("MAX_KEYWORDS", analysis.DefaultMaxKeywords),
			MinWordLength:  getEnvInt("MIN_WORD_LENGTH", analysis.DefaultMinWordLength),
			MaxWordLength:  getEnvInt("MAX_WORD_LENGTH", analysis.DefaultMaxWordLength),
			Bigrams:        getEnvBool("ANALYSIS_BIGRAMS", false),
			SentenceCorpus: getEnvBool("ANALYSIS_SENTENCE_CORPUS", false),
		},
		Layout: LayoutConfig{
			BaseRadius:   getEnvFloat("LAYOUT_BASE_RADIUS", layout.DefaultBaseRadius),
			RadiusSpread: getEnvFloat("LAYOUT_RADIUS_SPREAD", layout.DefaultRadiusSpread),
			BaseSize:     getEnvFloat("LAYOUT_BASE_SIZE", layout.DefaultBaseSize),
			SizeSpread:   getEnvFloat("LAYOUT_SIZE_SPREAD", layout.DefaultSizeSpread),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", true),
			TTL:     getEnvDuration("CACHE_TTL", 15*time.Minute),
			Size:    getEnvInt("CACHE_SIZE", 256),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline would fail on anyway,
// so bad deployments die at startup instead of per-request.
func (c *Config) Validate() error {
	if c.Analysis.MaxKeywords <= 0 {
		return errors.Wrapf(wordcloud.ErrInvalidConfig, "MAX_KEYWORDS must be positive, got %d", c.Analysis.MaxKeywords)
	}
	if c.Analysis.MinWordLength < 1 {
		return errors.Wrapf(wordcloud.ErrInvalidConfig, "MIN_WORD_LENGTH must be positive, got %d", c.Analysis.MinWordLength)
	}
	if c.Analysis.MaxWordLength > 0 && c.Analysis.MaxWordLength < c.Analysis.MinWordLength {
		return errors.Wrapf(wordcloud.ErrInvalidConfig, "MAX_WORD_LENGTH %d below MIN_WORD_LENGTH %d", c.Analysis.MaxWordLength, c.Analysis.MinWordLength)
	}
	if c.Layout.BaseRadius < 0 || c.Layout.RadiusSpread < 0 {
		return errors.Wrapf(wordcloud.ErrInvalidConfig, "layout radius constants must be non-negative, got base %g spread %g", c.Layout.BaseRadius, c.Layout.RadiusSpread)
	}
	if c.Layout.BaseSize < 0 || c.Layout.SizeSpread < 0 {
		return errors.Wrapf(wordcloud.ErrInvalidConfig, "layout size constants must be non-negative, got base %g spread %g", c.Layout.BaseSize, c.Layout.SizeSpread)
	}
	if c.Scrape.MaxBodyBytes <= 0 {
		return errors.Wrapf(wordcloud.ErrInvalidConfig, "SCRAPE_MAX_BODY_BYTES must be positive, got %d", c.Scrape.MaxBodyBytes)
	}
	if c.Scrape.MinContentLength <= 0 {
		return errors.Wrapf(wordcloud.ErrInvalidConfig, "SCRAPE_MIN_CONTENT_LENGTH must be positive, got %d", c.Scrape.MinContentLength)
	}
	if c.Cache.Enabled {
		if c.Cache.Size <= 0 {
			return errors.Wrapf(wordcloud.ErrInvalidConfig, "CACHE_SIZE must be positive, got %d", c.Cache.Size)
		}
		if c.Cache.TTL <= 0 {
			return errors.Wrapf(wordcloud.ErrInvalidConfig, "CACHE_TTL must be positive, got %s", c.Cache.TTL)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
