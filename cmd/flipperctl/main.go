// flipperctl is a terminal client for the flag service, driving the same
// orchestration core as the console server.
//
// Usage:
//
//	flipperctl user <id>                  Show resolved flags and experiment for a user
//	flipperctl features                   List the flag catalogue
//	flipperctl enable <flag>              Enable a flag for everyone
//	flipperctl disable <flag>             Disable a flag (creates unknown names)
//	flipperctl rollout <flag> <percent>   Set a percentage rollout
//	flipperctl actor <flag> <id>          Enroll one actor on a flag
//	flipperctl grant <flag> <id>...       Enable a flag for exactly the listed actors
//
// The service address comes from flipper-console.yaml, the FLIPPER_SERVICE_URL
// environment variable, or the -service flag.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/flipperlabs/flipper-console/internal/config"
	"github.com/flipperlabs/flipper-console/internal/console"
	"github.com/flipperlabs/flipper-console/internal/flipper"
	"github.com/flipperlabs/flipper-console/internal/webcore"
)

func main() {
	service := flag.String("service", "", "Flag service base URL (overrides config)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 || args[0] == "help" {
		printUsage()
		if len(args) == 0 {
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if *service != "" {
		cfg.ServiceURL = *service
	}

	logger := webcore.NewLogger(*verbose)
	cons := console.New(flipper.New(cfg.ServiceURL), logger)

	if err := run(cons, cfg, args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cons *console.Console, cfg *config.Config, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "user":
		if len(rest) != 1 {
			return fmt.Errorf("usage: flipperctl user <id>")
		}
		if err := cons.RequestUserChange(rest[0]); err != nil {
			return err
		}
		printUser(cons.Snapshot())
		return nil

	case "features":
		cons.RefreshCatalogue()
		printCatalogue(cons.Snapshot())
		return nil

	case "enable", "disable":
		if len(rest) != 1 {
			return fmt.Errorf("usage: flipperctl %s <flag>", cmd)
		}
		cons.Bootstrap(cfg.DefaultUser)
		cons.ToggleFlag(rest[0], cmd == "enable")
		printCatalogue(cons.Snapshot())
		return nil

	case "rollout":
		if len(rest) != 2 {
			return fmt.Errorf("usage: flipperctl rollout <flag> <percent>")
		}
		cons.Bootstrap(cfg.DefaultUser)
		cons.SetPercentage(rest[0], rest[1])
		printCatalogue(cons.Snapshot())
		return nil

	case "actor":
		if len(rest) != 2 {
			return fmt.Errorf("usage: flipperctl actor <flag> <id>")
		}
		cons.Bootstrap(cfg.DefaultUser)
		cons.AddActor(rest[0], rest[1])
		printCatalogue(cons.Snapshot())
		return nil

	case "grant":
		if len(rest) < 2 {
			return fmt.Errorf("usage: flipperctl grant <flag> <id>...")
		}
		cons.Bootstrap(cfg.DefaultUser)
		cons.EnableForUsers(rest[0], rest[1:])
		printCatalogue(cons.Snapshot())
		return nil

	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func printUser(snap console.Snapshot) {
	fmt.Printf("User: %s (hash %d)\n", snap.User.ActiveID, snap.UserHash)
	if snap.DashboardVersion != "" {
		fmt.Printf("Dashboard: %s, layout %s\n", snap.DashboardVersion, snap.Layout)
	}

	names := make([]string, 0, len(snap.Features))
	for name := range snap.Features {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		state := "OFF"
		if snap.Features[name] {
			state = "ON"
		}
		fmt.Printf("  %-20s %s\n", name, state)
	}

	fmt.Printf("Experiment: %s (%q, button %s)\n",
		snap.Experiment.Variant, snap.Experiment.WelcomeMessage, snap.Experiment.ButtonColor)
}

func printCatalogue(snap console.Snapshot) {
	fmt.Printf("%-20s %-9s %5s  %s\n", "FLAG", "STATE", "PCT", "ACTORS")
	for _, f := range snap.Catalogue {
		state := "disabled"
		if f.Enabled {
			state = "enabled"
		}
		actors := f.Actors
		if actors == "" {
			actors = "-"
		}
		fmt.Printf("%-20s %-9s %4d%%  %s\n", f.Name, state, f.Percentage, actors)
	}
}

func printUsage() {
	fmt.Println(`flipperctl - terminal client for the flag service

Commands:
  user <id>                  Show resolved flags and experiment for a user
  features                   List the flag catalogue
  enable <flag>              Enable a flag for everyone
  disable <flag>             Disable a flag (creates unknown names)
  rollout <flag> <percent>   Set a percentage rollout
  actor <flag> <id>          Enroll one actor on a flag
  grant <flag> <id>...       Enable a flag for exactly the listed actors

Flags:
  -service <url>             Flag service base URL (overrides config)
  -verbose                   Enable debug logging`)
}
