package config

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordsphere/wordsphere/pkg/wordcloud"
	"github.com/wordsphere/wordsphere/pkg/wordcloud/analysis"
	"github.com/wordsphere/wordsphere/pkg/wordcloud/layout"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Server.Env)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Contains(t, cfg.Server.CORSOrigins, "http://localhost:5173")

	assert.Equal(t, analysis.DefaultMaxKeywords, cfg.Analysis.MaxKeywords)
	assert.Equal(t, analysis.DefaultMinWordLength, cfg.Analysis.MinWordLength)
	assert.False(t, cfg.Analysis.Bigrams)

	assert.Equal(t, layout.DefaultBaseRadius, cfg.Layout.BaseRadius)
	assert.Equal(t, layout.DefaultRadiusSpread, cfg.Layout.RadiusSpread)
	assert.Equal(t, layout.DefaultBaseSize, cfg.Layout.BaseSize)
	assert.Equal(t, layout.DefaultSizeSpread, cfg.Layout.SizeSpread)

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_KEYWORDS", "25")
	t.Setenv("ANALYSIS_BIGRAMS", "true")
	t.Setenv("LAYOUT_BASE_RADIUS", "7.5")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Production, cfg.Server.Env)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 25, cfg.Analysis.MaxKeywords)
	assert.True(t, cfg.Analysis.Bigrams)
	assert.Equal(t, 7.5, cfg.Layout.BaseRadius)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MAX_KEYWORDS", "lots")
	t.Setenv("LAYOUT_BASE_SIZE", "big")
	t.Setenv("CACHE_ENABLED", "yep")
	t.Setenv("READ_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, analysis.DefaultMaxKeywords, cfg.Analysis.MaxKeywords)
	assert.Equal(t, layout.DefaultBaseSize, cfg.Layout.BaseSize)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-positive max keywords", func(c *Config) { c.Analysis.MaxKeywords = 0 }},
		{"zero min word length", func(c *Config) { c.Analysis.MinWordLength = 0 }},
		{"max below min word length", func(c *Config) {
			c.Analysis.MinWordLength = 5
			c.Analysis.MaxWordLength = 3
		}},
		{"negative base radius", func(c *Config) { c.Layout.BaseRadius = -1 }},
		{"negative size spread", func(c *Config) { c.Layout.SizeSpread = -0.1 }},
		{"non-positive body cap", func(c *Config) { c.Scrape.MaxBodyBytes = 0 }},
		{"non-positive min content", func(c *Config) { c.Scrape.MinContentLength = 0 }},
		{"enabled cache without size", func(c *Config) { c.Cache.Size = 0 }},
		{"enabled cache without ttl", func(c *Config) { c.Cache.TTL = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, wordcloud.ErrInvalidConfig))
		})
	}
}

func TestValidateAllowsDisabledCache(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Cache.Enabled = false
	cfg.Cache.Size = 0
	cfg.Cache.TTL = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoadFailsFastOnInvalidEnv(t *testing.T) {
	t.Setenv("MAX_KEYWORDS", "-3")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, wordcloud.ErrInvalidConfig))
}
