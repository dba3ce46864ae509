package ics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/runsync/internal/models"
)

// Client fetches an ICS calendar from an HTTP location.
type Client struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a calendar client for the given URL.
func NewClient(url string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// Fetch retrieves the calendar and decodes its events.
func (c *Client) Fetch(ctx context.Context) ([]models.Event, error) {
	c.log.Info("fetching calendar", "url", c.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building calendar request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("calendar request failed (status %d): %s", resp.StatusCode, body)
	}

	events, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding calendar: %w", err)
	}

	c.log.Debug("calendar fetched", "events", len(events))
	return events, nil
}
