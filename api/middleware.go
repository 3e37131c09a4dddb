package api

import (
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var (
	requestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Number of requests currently being served",
	})

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Request latency",
		},
		[]string{"method", "path"},
	)

	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total requests served",
		},
		[]string{"method", "path", "status"},
	)
)

// statusRecorder captures the response status and whether the header
// has gone out, so the recovery path knows if it can still write one.
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.wrote {
		return
	}
	r.status = status
	r.wrote = true
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wrote {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(b)
}

// withMiddleware wraps next with request ID assignment, CORS
// handling, panic recovery, request metrics, and access logging.
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		if s.applyCORS(w, r) {
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		defer func() {
			if err := recover(); err != nil {
				s.logger.WithFields(logrus.Fields{
					"request_id": requestID,
					"panic":      err,
				}).Error("Recovered from panic")
				if !rec.wrote {
					writeError(rec, http.StatusInternalServerError, "internal server error")
				}
			}

			duration := time.Since(start)
			requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration.Seconds())
			requestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()

			s.logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rec.status,
				"duration":   duration.String(),
			}).Info("Handled request")
		}()

		next.ServeHTTP(rec, r)
	})
}

// applyCORS sets the response headers for allowed origins and reports
// whether the request was a preflight that is now fully handled.
func (s *Server) applyCORS(w http.ResponseWriter, r *http.Request) bool {
	if origin := r.Header.Get("Origin"); origin != "" && s.originAllowed(origin) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Vary", "Origin")
	}
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "300")
		w.WriteHeader(http.StatusNoContent)
		return true
	}
	return false
}

func (s *Server) originAllowed(origin string) bool {
	origins := s.cfg.Server.CORSOrigins
	return slices.Contains(origins, "*") || slices.Contains(origins, origin)
}
