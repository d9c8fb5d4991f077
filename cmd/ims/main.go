package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/ims-cli/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetBootstrap(bootstrap)
	err := cli.Execute(ctx)
	if shutdownErr := cli.Shutdown(); shutdownErr != nil {
		logger.Warn("Shutdown failed: %v", shutdownErr)
	}
	stop()

	if err != nil {
		os.Exit(1)
	}
}
