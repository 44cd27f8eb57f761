// flipper-sim is a local simulator of the remote flag-evaluation service the
// console talks to. It implements the service's read and write contract with
// an in-memory catalogue, simple hash-based percentage bucketing, and actor
// matching, plus /admin endpoints for seeding state in tests and demos.
//
// Integration method: point the console's service_url at this process.
package main

import (
	"log"
	"os"

	"github.com/flipperlabs/flipper-console/internal/flagsim/api"
	"github.com/flipperlabs/flipper-console/internal/flagsim/store"
	"github.com/flipperlabs/flipper-console/internal/webcore"
)

func main() {
	cfg := webcore.ParseFlags("flipper-sim")
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	srv := webcore.New(cfg)
	memStore := store.New()

	handler := api.NewHandler(memStore, srv.Logger)
	handler.Routes(srv.Router)

	// Load seed data if provided
	if cfg.SeedFile != "" {
		data, err := os.ReadFile(cfg.SeedFile)
		if err != nil {
			log.Fatalf("failed to read seed file: %v", err)
		}
		if err := memStore.LoadState(data); err != nil {
			log.Fatalf("failed to load seed data: %v", err)
		}
		srv.Logger.Info("loaded seed data", "file", cfg.SeedFile)
	}

	srv.Logger.Info("flipper-sim ready", "port", cfg.Port)

	if err := srv.Serve(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
