// Package analytics wraps the PostHog client so callers never have to care
// whether it is configured; an unconfigured client is a silent no-op.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// Client wraps posthog.Client and tolerates being uninitialized.
type Client struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// NewClient initializes a PostHog client, or a no-op wrapper when apiKey is empty.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics disabled.")
		return &Client{}
	}
	wrapper := &Client{logger: logger}
	wrapper.posthogClient, _ = posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	return wrapper
}

// Enqueue sends one event attributed to distinctID. No-op when unconfigured.
func (c *Client) Enqueue(distinctID string, event string, properties map[string]any) {
	if c.posthogClient == nil {
		return
	}
	if c.logger != nil {
		c.logger.Debug("Enqueueing analytics event", slog.String("distinct_id", distinctID), slog.String("event", event))
	}
	c.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
}

// Close flushes and shuts down the underlying client.
func (c *Client) Close() {
	if c.posthogClient == nil {
		return
	}
	c.posthogClient.Close()
}
