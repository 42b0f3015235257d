// Package analytics forwards product events to PostHog when an API key is configured.
package analytics

import (
	"log/slog"
	"strconv"

	"github.com/posthog/posthog-go"
)

// Client wraps posthog.Client so callers never need to check whether analytics is enabled.
type Client struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// NewClient returns a disabled client when apiKey is empty.
func NewClient(apiKey, endpoint string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if apiKey == "" {
		logger.Info("PostHog API key is empty, product analytics disabled")
		return &Client{logger: logger}
	}
	if endpoint == "" {
		endpoint = "https://eu.i.posthog.com"
	}
	c, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize PostHog client", slog.String("error", err.Error()))
		return &Client{logger: logger}
	}
	return &Client{posthogClient: c, logger: logger}
}

func (c *Client) Enabled() bool {
	return c != nil && c.posthogClient != nil
}

// Capture enqueues an event for userID. Failures are logged, never returned.
func (c *Client) Capture(userID int64, event string, properties map[string]any) {
	if !c.Enabled() {
		return
	}
	err := c.posthogClient.Enqueue(posthog.Capture{
		DistinctId: strconv.FormatInt(userID, 10),
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		c.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes queued events.
func (c *Client) Close() {
	if !c.Enabled() {
		return
	}
	if err := c.posthogClient.Close(); err != nil {
		c.logger.Warn("Failed to close PostHog client", slog.String("error", err.Error()))
	}
}
