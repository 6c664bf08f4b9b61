package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/thesavant42/platewatch/internal/cli"
	"github.com/thesavant42/platewatch/internal/config"
	"github.com/thesavant42/platewatch/internal/ui"
)

func main() {
	// Load .env and environment on top of the defaults
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cfg)
	if err := root.ExecuteContext(ctx); err != nil {
		ui.PrintError(os.Stderr, err.Error())
		stop()
		os.Exit(1)
	}
}
