package main

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	defaultWaitAttempts = 30
	waitRetryInterval   = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for the database to accept connections [attempts]"
}

func (c *WaitForDBCommand) Run(ctx context.Context, args []string) error {
	attempts := defaultWaitAttempts
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid attempt count %q", args[0])
		}
		attempts = n
	}

	PrintHeader("Waiting for database...")
	var lastErr error
	for i := 0; i < attempts; i++ {
		pool, _, err := openPool()
		if err == nil {
			pool.Close()
			PrintSuccess("Database is ready")
			return nil
		}
		lastErr = err
		PrintWarning("Database not ready (%d/%d): %v", i+1, attempts, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitRetryInterval):
		}
	}
	return fmt.Errorf("database not ready after %d attempts: %w", attempts, lastErr)
}
