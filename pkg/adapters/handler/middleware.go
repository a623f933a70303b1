package handler

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wadjakorntonsri/go-click-counter/pkg/config"
)

type Middleware struct {
	statsToken []byte
	metrics    statsd.ClientInterface
}

func NewMiddleware(cfg *config.Config, metrics statsd.ClientInterface) *Middleware {
	if metrics == nil {
		metrics = &statsd.NoOpClient{}
	}
	return &Middleware{
		statsToken: []byte(cfg.StatsToken),
		metrics:    metrics,
	}
}

// BearerAuth compares the Authorization header with the configured stats token.
// An unset token rejects every request.
func (m *Middleware) BearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.authorized(r) {
			writeText(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) authorized(r *http.Request) bool {
	if len(m.statsToken) == 0 {
		return false
	}
	want := append([]byte("Bearer "), m.statsToken...)
	got := []byte(r.Header.Get("Authorization"))
	return subtle.ConstantTimeCompare(got, want) == 1
}

// RequestLogger attaches a request-scoped logger, then logs and counts every response.
func (m *Middleware) RequestLogger(route func(*http.Request) string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		logger := log.With().Str("request_id", requestID).Logger()
		r = r.WithContext(logger.WithContext(r.Context()))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		tags := []string{"route:" + route(r), "status:" + strconv.Itoa(rec.status)}
		_ = m.metrics.Incr("http.requests", tags, 1)
		_ = m.metrics.Timing("http.latency", elapsed, tags, 1)

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", elapsed).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
