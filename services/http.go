// Package services holds lazily constructed shared clients.
package services

import (
	"net/http"
	"os"
	"sync"
	"time"
)

// DefaultHTTPClient returns the shared outbound HTTP client. The
// request timeout comes from SCRAPE_TIMEOUT when set to a valid
// duration, defaulting to 10s.
var DefaultHTTPClient = sync.OnceValue(func() *http.Client {
	timeout := 10 * time.Second
	if raw := os.Getenv("SCRAPE_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        32,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     90 * time.Second,
		},
	}
})
