package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "http://localhost:8080"
	healthTimeout      = 5 * time.Second
	slowResponseCutoff = time.Second
)

type HealthCheckCommand struct {
	client *http.Client
}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Probe /healthz and /readyz of a running server [base-url]"
}

func (c *HealthCheckCommand) Run(ctx context.Context, args []string) error {
	base := defaultBaseURL
	if len(args) > 0 {
		base = strings.TrimRight(args[0], "/")
	}
	PrintHeader(fmt.Sprintf("Health Check (%s)", base))

	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		status, err := c.fetchStatus(ctx, base+path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		elapsed := time.Since(start)
		if elapsed > slowResponseCutoff {
			PrintWarning("%s %s (slow: %v)", path, status, elapsed)
		} else {
			PrintSuccess("%s %s (%v)", path, status, elapsed)
		}
	}
	return nil
}

func (c *HealthCheckCommand) fetchStatus(ctx context.Context, url string) (string, error) {
	client := c.client
	if client == nil {
		client = &http.Client{Timeout: healthTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("unreadable response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d (%s)", resp.StatusCode, body.Status)
	}
	if body.Version != "" {
		return body.Status + " " + body.Version, nil
	}
	return body.Status, nil
}
