package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wordsphere/wordsphere/metrics"
	"github.com/wordsphere/wordsphere/pkg/wordcloud"
	"github.com/wordsphere/wordsphere/pkg/wordcloud/analysis"
	"github.com/wordsphere/wordsphere/pkg/wordcloud/layout"
	"github.com/wordsphere/wordsphere/scraper"
)

const maxRequestBody = 1 << 20

var analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "analysis_duration_seconds",
	Help: "Time spent extracting keywords and laying out one article",
})

// handleAnalyze fetches the requested article, extracts its keywords,
// and places them on the sphere.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if !validURL(req.URL) {
		writeError(w, http.StatusBadRequest, "url must be a valid http or https URL")
		return
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(req.URL); ok {
			metrics.CacheHits.WithLabelValues("analyze").Inc()
			writeJSON(w, http.StatusOK, cached)
			return
		}
		metrics.CacheMisses.WithLabelValues("analyze").Inc()
	}

	art, err := s.fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, wordcloud.ErrEmptyInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "could not fetch article: "+err.Error())
		return
	}

	resp, err := s.analyzeArticle(art)
	if err != nil {
		if errors.Is(err, wordcloud.ErrEmptyInput) {
			writeError(w, http.StatusUnprocessableEntity, "article contains no extractable keywords")
			return
		}
		s.logger.WithError(err).Error("Analysis failed")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	if s.cache != nil {
		s.cache.Add(req.URL, *resp)
	}
	writeJSON(w, http.StatusOK, *resp)
}

// analyzeArticle runs keyword extraction and layout for a fetched
// article. Articles whose text yields no keywords produce an error
// wrapping wordcloud.ErrEmptyInput.
func (s *Server) analyzeArticle(art *scraper.Article) (*AnalyzeResponse, error) {
	timer := prometheus.NewTimer(analysisDuration)
	defer timer.ObserveDuration()

	doc, err := analysis.AnalyzeDocument(art.Text, s.analysisOptions()...)
	if err != nil {
		return nil, err
	}
	if len(doc.Keywords) == 0 {
		return nil, errors.Wrap(wordcloud.ErrEmptyInput, "no keywords survived filtering")
	}

	points, err := layout.Layout(doc.Keywords, s.layoutOptions()...)
	if err != nil {
		return nil, err
	}

	words := make([]WordPoint, 0, len(points))
	for _, p := range points {
		words = append(words, NewWordPoint(p))
	}
	return &AnalyzeResponse{
		Words:        words,
		ArticleTitle: art.Title,
		WordCount:    doc.WordCount,
		URL:          art.URL,
	}, nil
}

func (s *Server) analysisOptions() []analysis.Option {
	opts := []analysis.Option{
		analysis.WithMaxKeywords(s.cfg.Analysis.MaxKeywords),
		analysis.WithMinWordLength(s.cfg.Analysis.MinWordLength),
		analysis.WithMaxWordLength(s.cfg.Analysis.MaxWordLength),
	}
	if s.cfg.Analysis.Bigrams {
		opts = append(opts, analysis.WithBigrams())
	}
	if s.cfg.Analysis.SentenceCorpus {
		opts = append(opts, analysis.WithSentenceCorpus())
	}
	return opts
}

func (s *Server) layoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithBaseRadius(s.cfg.Layout.BaseRadius),
		layout.WithRadiusSpread(s.cfg.Layout.RadiusSpread),
		layout.WithBaseSize(s.cfg.Layout.BaseSize),
		layout.WithSizeSpread(s.cfg.Layout.SizeSpread),
	}
}

// handleLayout places caller-supplied weighted words on the sphere
// without fetching anything.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if len(req.Words) == 0 {
		writeError(w, http.StatusBadRequest, "words must not be empty")
		return
	}

	keywords := make(wordcloud.RankedKeywordSet, 0, len(req.Words))
	for i, in := range req.Words {
		if strings.TrimSpace(in.Word) == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("words[%d]: word must not be empty", i))
			return
		}
		if in.Weight < 0 || in.Weight > 1 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("words[%d]: weight %g outside [0, 1]", i, in.Weight))
			return
		}
		keywords = append(keywords, wordcloud.ScoredTerm{
			Term:      in.Word,
			Weight:    in.Weight,
			Frequency: in.Frequency,
		})
	}

	opts := s.layoutOptions()
	if o := req.Options; o != nil {
		if o.BaseRadius != nil {
			opts = append(opts, layout.WithBaseRadius(*o.BaseRadius))
		}
		if o.RadiusSpread != nil {
			opts = append(opts, layout.WithRadiusSpread(*o.RadiusSpread))
		}
		if o.BaseSize != nil {
			opts = append(opts, layout.WithBaseSize(*o.BaseSize))
		}
		if o.SizeSpread != nil {
			opts = append(opts, layout.WithSizeSpread(*o.SizeSpread))
		}
	}

	points, err := layout.Layout(keywords, opts...)
	if err != nil {
		if errors.Is(err, wordcloud.ErrInvalidConfig) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.WithError(err).Error("Layout failed")
		writeError(w, http.StatusInternalServerError, "layout failed")
		return
	}

	words := make([]WordPoint, 0, len(points))
	for _, p := range points {
		words = append(words, NewWordPoint(p))
	}
	writeJSON(w, http.StatusOK, LayoutResponse{Words: words})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "wordsphere",
		"version": Version,
		"endpoints": map[string]string{
			"analyze": "POST /analyze",
			"layout":  "POST /layout",
			"health":  "GET /health",
			"docs":    "GET /docs",
			"openapi": "GET /openapi.json",
			"metrics": "GET /metrics",
		},
	})
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
