package webcore

import (
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"
)

// Middleware provides the common middleware functions for webcore servers.
type Middleware struct {
	cfg    *Config
	logger *slog.Logger
}

// NewMiddleware creates a new Middleware instance.
func NewMiddleware(cfg *Config, logger *slog.Logger) *Middleware {
	return &Middleware{cfg: cfg, logger: logger}
}

// CORS adds permissive CORS headers (appropriate for a local demo).
func (m *Middleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

// RequestLog logs each request at debug level when verbose is enabled.
func (m *Middleware) RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: 200}

		next.ServeHTTP(rec, r)

		if m.cfg.Verbose {
			m.logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.statusCode,
				"duration", time.Since(start),
			)
		}
	})
}

// LatencyInjection adds configurable latency to every request.
func (m *Middleware) LatencyInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.cfg.Latency > 0 {
			// Add some jitter: 80-120% of configured latency
			jitter := 0.8 + rand.Float64()*0.4
			time.Sleep(time.Duration(float64(m.cfg.Latency) * jitter))
		}
		next.ServeHTTP(w, r)
	})
}

// RandomFailure randomly returns 500 errors based on the configured fail rate.
// Pointing the console at a simulator with a nonzero fail rate is the easiest
// way to watch the fetch fallbacks kick in.
func (m *Middleware) RandomFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.cfg.FailRate > 0 && rand.Float64() < m.cfg.FailRate {
			Error(w, http.StatusInternalServerError, "simulated random failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}
