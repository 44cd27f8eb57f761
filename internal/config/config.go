// Package config loads the flipper-console configuration from an optional
// YAML file, with environment overrides (a local .env file is honored).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file the console looks for when none is given.
const DefaultPath = "flipper-console.yaml"

// Config holds the console's settings.
type Config struct {
	// ServiceURL is the base address of the remote flag service,
	// including any path prefix (e.g. http://localhost:8080/api).
	ServiceURL string `yaml:"service_url"`
	// Port the console's own HTTP surface listens on.
	Port int `yaml:"port"`
	// DefaultUser is the identity inspected on startup.
	DefaultUser string `yaml:"default_user"`
	Verbose     bool   `yaml:"verbose"`
}

func defaults() *Config {
	return &Config{
		ServiceURL:  "http://localhost:8080/api",
		Port:        8085,
		DefaultUser: "user12",
	}
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist. Environment variables override file values; a .env file in
// the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults apply
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.ServiceURL == "" {
		return nil, fmt.Errorf("service_url must not be empty")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FLIPPER_SERVICE_URL"); v != "" {
		cfg.ServiceURL = v
	}
	if v := os.Getenv("FLIPPER_DEFAULT_USER"); v != "" {
		cfg.DefaultUser = v
	}
	if v := os.Getenv("FLIPPER_CONSOLE_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("FLIPPER_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
		}
	}
}
