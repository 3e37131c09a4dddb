// Package scraper fetches web pages and reduces them to readable
// article text. HTML pages get structure-aware extraction with a
// markdown fallback, PDFs get plain-text extraction, and everything
// else is passed through as-is.
package scraper

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/wordsphere/wordsphere/pkg/wordcloud"
)

var (
	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "scrape_fetch_duration_seconds",
		Help: "Time spent fetching and extracting one article",
	})

	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_fetch_total",
			Help: "Total number of fetch attempts",
		},
		[]string{"outcome"},
	)
)

// Default fetch limits.
const (
	DefaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultMinContentLength = 100
	DefaultMaxBodyBytes     = 10 << 20
)

// Article is a fetched page reduced to its readable parts.
type Article struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	ContentType string    `json:"content_type"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Config bounds a scraper's requests. Zero-value fields fall back to
// the package defaults.
type Config struct {
	UserAgent        string
	MinContentLength int
	MaxBodyBytes     int64
}

// Scraper fetches articles over HTTP.
type Scraper struct {
	client     *http.Client
	logger     *logrus.Logger
	userAgent  string
	minContent int
	maxBody    int64
}

// New builds a scraper around client.
func New(client *http.Client, logger *logrus.Logger, cfg Config) *Scraper {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MinContentLength <= 0 {
		cfg.MinContentLength = DefaultMinContentLength
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Scraper{
		client:     client,
		logger:     logger,
		userAgent:  cfg.UserAgent,
		minContent: cfg.MinContentLength,
		maxBody:    cfg.MaxBodyBytes,
	}
}

// Fetch downloads rawURL and extracts its title and readable text.
// The body is capped at the configured byte limit. Pages whose
// extracted text falls under the minimum content length yield an
// error wrapping wordcloud.ErrEmptyInput.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	timer := prometheus.NewTimer(fetchDuration)
	defer timer.ObserveDuration()

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "http" && u.Scheme != "https" {
		fetchTotal.WithLabelValues("bad_url").Inc()
		return nil, errors.Errorf("invalid URL %q: scheme must be http or https", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		fetchTotal.WithLabelValues("bad_url").Inc()
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		fetchTotal.WithLabelValues("fetch_error").Inc()
		return nil, errors.Wrapf(err, "fetch %s", u)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fetchTotal.WithLabelValues("http_error").Inc()
		return nil, errors.Errorf("fetch %s: unexpected status %d", u, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody))
	if err != nil {
		fetchTotal.WithLabelValues("read_error").Inc()
		return nil, errors.Wrapf(err, "read body of %s", u)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	art := &Article{
		URL:         u.String(),
		ContentType: mediaType,
		FetchedAt:   time.Now().UTC(),
	}

	switch {
	case mediaType == "application/pdf" || strings.HasSuffix(strings.ToLower(u.Path), ".pdf"):
		art.Title, art.Text, err = extractPDF(body)
	case mediaType == "" || mediaType == "text/html" || mediaType == "application/xhtml+xml":
		art.Title, art.Text, err = s.extractHTML(body)
	default:
		art.Text = strings.TrimSpace(string(body))
	}
	if err != nil {
		fetchTotal.WithLabelValues("extract_error").Inc()
		return nil, errors.Wrapf(err, "extract content of %s", u)
	}

	if art.Title == "" {
		art.Title = u.Host
	}
	if len(art.Text) < s.minContent {
		fetchTotal.WithLabelValues("thin_content").Inc()
		return nil, errors.Wrapf(wordcloud.ErrEmptyInput, "page %s has %d characters of readable text, need %d", u, len(art.Text), s.minContent)
	}

	fetchTotal.WithLabelValues("ok").Inc()
	s.logger.WithFields(logrus.Fields{
		"url":          art.URL,
		"title":        art.Title,
		"content_type": art.ContentType,
		"text_length":  len(art.Text),
	}).Info("Fetched article")

	return art, nil
}
