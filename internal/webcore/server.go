// Package webcore provides the base HTTP server, CLI flags, middleware chain,
// and response helpers shared by the flipper-console and flipper-sim binaries.
package webcore

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Config holds the common configuration for a webcore server, parsed from CLI flags.
type Config struct {
	Port     int
	Latency  time.Duration
	FailRate float64
	SeedFile string
	Verbose  bool
	Name     string // server name for logging
}

// ParseFlags parses common CLI flags and returns a Config.
// The name is used for logging and identification.
func ParseFlags(name string) *Config {
	cfg := &Config{Name: name}
	flag.IntVar(&cfg.Port, "port", 0, "HTTP listen port (default: auto-assigned)")
	flag.DurationVar(&cfg.Latency, "latency", 0, "Base simulated latency")
	flag.Float64Var(&cfg.FailRate, "fail-rate", 0.0, "Random failure rate 0.0-1.0")
	flag.StringVar(&cfg.SeedFile, "seed-file", "", "Path to JSON fixture for initial state")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable request/response logging")
	flag.Parse()

	if cfg.Port == 0 {
		if p := os.Getenv("PORT"); p != "" {
			fmt.Sscanf(p, "%d", &cfg.Port)
		}
	}

	return cfg
}

// NewLogger creates a JSON slog logger at Info level, or Debug when verbose.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// Server wraps a chi router with common middleware and lifecycle management.
type Server struct {
	Config *Config
	Router *chi.Mux
	Logger *slog.Logger
}

// New creates a new Server with the given config.
func New(cfg *Config) *Server {
	logger := NewLogger(cfg.Verbose)

	r := chi.NewRouter()
	mw := NewMiddleware(cfg, logger)

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.CORS)
	r.Use(mw.RequestLog)
	r.Use(mw.LatencyInjection)
	r.Use(mw.RandomFailure)

	return &Server{
		Config: cfg,
		Router: r,
		Logger: logger,
	}
}

// Serve starts the HTTP server and blocks until shutdown signal.
func (s *Server) Serve() error {
	addr := fmt.Sprintf(":%d", s.Config.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.Logger.Info("starting server", "name", s.Config.Name, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-done
	s.Logger.Info("shutting down", "name", s.Config.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// ServeHTTP implements http.Handler so Server can be used directly in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    http.StatusText(status),
			"code":    status,
		},
	})
}
