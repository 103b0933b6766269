package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/no-draw-tracker/internal/app"
	"github.com/riskibarqy/no-draw-tracker/internal/config"
	"github.com/riskibarqy/no-draw-tracker/internal/interfaces/cli"
	"github.com/riskibarqy/no-draw-tracker/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		return cli.ExitFailure
	}

	logger := logging.NewConsole(cfg.LogLevel, os.Stderr)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx, cli.Deps{
		Finder: app.NewNextMatchService(cfg, logger),
		Dumper: app.NewScraper(cfg, logger),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, os.Args[1:])
}
