// Command fruitctl runs operational tasks against a fruitfarm deployment.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	registry := NewRegistry(
		&MigrateCommand{},
		&WaitForDBCommand{},
		&HealthCheckCommand{},
		&SeedCommand{},
	)

	if len(os.Args) < 2 {
		registry.PrintHelp()
		os.Exit(1)
	}
	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("unknown command %q", os.Args[1])
		registry.PrintHelp()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args[2:]); err != nil {
		PrintError("%s failed: %v", cmd.Name(), err)
		os.Exit(1)
	}
}
