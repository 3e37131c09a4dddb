// Package api implements the HTTP surface: article analysis, layout
// of caller-supplied words, health and docs endpoints, and the
// Prometheus scrape target.
package api

import (
	"context"
	"net/http"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/wordsphere/wordsphere/config"
	"github.com/wordsphere/wordsphere/scraper"
)

// Version is reported by the root endpoint and the build_info metric.
const Version = "1.0.0"

// Fetcher retrieves articles for analysis.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*scraper.Article, error)
}

// Server wires the handlers, middleware, and response cache together.
type Server struct {
	cfg     *config.Config
	logger  *logrus.Logger
	fetcher Fetcher
	cache   *expirable.LRU[string, AnalyzeResponse]
}

// NewServer builds a server from its dependencies. The response cache
// is only allocated when enabled in cfg.
func NewServer(cfg *config.Config, logger *logrus.Logger, fetcher Fetcher) *Server {
	s := &Server{cfg: cfg, logger: logger, fetcher: fetcher}
	if cfg.Cache.Enabled {
		s.cache = expirable.NewLRU[string, AnalyzeResponse](cfg.Cache.Size, nil, cfg.Cache.TTL)
	}
	return s
}

// Handler returns the routed, middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /layout", s.handleLayout)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /docs", s.handleDocs)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	mux.Handle("GET /metrics", promhttp.Handler())
	return s.withMiddleware(mux)
}
