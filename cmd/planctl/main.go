// Package main is the entry point for the planctl command line client.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/finance-tracker/planner/config"
	"github.com/finance-tracker/planner/internal/cli"
	"github.com/finance-tracker/planner/internal/infra/dependency"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	// Keep connection chatter off stdout
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg := config.Load()

	backends, err := dependency.OpenBackends(cfg)
	if err != nil {
		return fmt.Errorf("opening backends: %w", err)
	}
	defer backends.Close()

	injector, err := dependency.NewInjector(cfg, backends)
	if err != nil {
		return err
	}

	root := cli.NewRootCmd(&cli.App{
		UseCases: injector.UseCases,
		Tokens:   injector.TokenService,
	})
	return root.ExecuteContext(context.Background())
}
