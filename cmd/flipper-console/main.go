// flipper-console serves the feature-flag demo console: a JSON API over the
// orchestration core that keeps one user's resolved flags, their experiment
// assignment, and the global flag catalogue in sync with the remote service.
package main

import (
	"flag"
	"log"

	"github.com/flipperlabs/flipper-console/internal/api"
	"github.com/flipperlabs/flipper-console/internal/config"
	"github.com/flipperlabs/flipper-console/internal/console"
	"github.com/flipperlabs/flipper-console/internal/flipper"
	"github.com/flipperlabs/flipper-console/internal/webcore"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to YAML config file")
	verbose := flag.Bool("verbose", false, "Enable request/response logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *verbose {
		cfg.Verbose = true
	}

	srv := webcore.New(&webcore.Config{
		Name:    "flipper-console",
		Port:    cfg.Port,
		Verbose: cfg.Verbose,
	})

	cons := console.New(flipper.New(cfg.ServiceURL), srv.Logger)
	cons.Bootstrap(cfg.DefaultUser)

	handler := api.NewHandler(cons, srv.Logger)
	handler.Routes(srv.Router)

	srv.Logger.Info("flipper-console ready",
		"port", cfg.Port,
		"service_url", cfg.ServiceURL,
		"default_user", cfg.DefaultUser,
	)

	if err := srv.Serve(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
