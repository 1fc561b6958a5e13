// Package main is the entry point for waiverwire.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"waiverwire/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		slog.Error("Error running waiverwire", "error", err)
		os.Exit(1)
	}
}
