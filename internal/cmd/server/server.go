// Package server parses Collabro service flags and launches the service.
package server

import (
	"context"
	"flag"

	"github.com/ojasvatstyagi/Collabro/internal/app/server"
	entrypoint "github.com/ojasvatstyagi/Collabro/internal/platform/cmd"
)

// Config holds Collabro command configuration.
type Config struct {
	Port int `env:"COLLABRO_PORT" envDefault:"8080"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The Collabro HTTP server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the Collabro HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCollabro, func(context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
