package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

type HealthCheckCommand struct {
	Client *http.Client
}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check /healthz and /readyz of a running server"
}

func (c *HealthCheckCommand) Run(args []string) error {
	base := "http://localhost:" + envOr("PORT", "8080")
	if len(args) > 0 {
		base = strings.TrimRight(args[0], "/")
	}
	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", base))
	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		resp, err := client.Get(base + path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s returned %d", path, resp.StatusCode)
		}

		if d := time.Since(start); d > time.Second {
			PrintWarning("%s slow response (%v)", path, d)
		} else {
			PrintSuccess("%s ok (%v)", path, d)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
