// Package upload sends converted workouts to the intervals.icu API and
// tracks what has already been sent.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/claude/runsync/internal/models"
)

// DefaultBaseURL is the intervals.icu API root.
const DefaultBaseURL = "https://intervals.icu/api/v1"

// basicAuthUser is the fixed username the intervals.icu API expects when
// authenticating with an API key.
const basicAuthUser = "API_KEY"

// RemoteWorkout is the server's record of a planned workout, as returned
// by create/list calls.
type RemoteWorkout struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	WorkoutDate string `json:"workout_date,omitempty"`
}

// Client talks to the intervals.icu workouts API for one athlete.
type Client struct {
	baseURL    string
	athleteID  string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates an API client. An empty baseURL selects
// DefaultBaseURL; athleteID is the intervals.icu athlete (e.g. "i12345").
func NewClient(baseURL, athleteID, apiKey string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:   baseURL,
		athleteID: athleteID,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		log: log,
	}
}

func (c *Client) workoutsURL() string {
	return fmt.Sprintf("%s/athlete/%s/workouts", c.baseURL, c.athleteID)
}

// CreateWorkout uploads a workout. Retries up to 3 times with exponential
// backoff on transport errors or non-2xx responses.
func (c *Client) CreateWorkout(ctx context.Context, w models.Workout) (*RemoteWorkout, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshaling workout: %w", err)
	}

	c.log.Info("creating workout", "name", w.Name, "date", w.WorkoutDate)

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		body, status, err := c.do(ctx, http.MethodPost, c.workoutsURL(), data)
		if err != nil {
			lastErr = err
			continue
		}
		if status == http.StatusOK || status == http.StatusCreated {
			var created RemoteWorkout
			if err := json.Unmarshal(body, &created); err != nil {
				return nil, fmt.Errorf("decoding create response: %w", err)
			}
			c.log.Info("workout created", "workout_id", created.ID, "name", w.Name)
			return &created, nil
		}
		lastErr = fmt.Errorf("create failed (status %d): %s", status, body)
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}

// UpdateWorkout replaces an existing workout by ID.
func (c *Client) UpdateWorkout(ctx context.Context, id int, w models.Workout) (*RemoteWorkout, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshaling workout: %w", err)
	}

	body, status, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", c.workoutsURL(), id), data)
	if err != nil {
		return nil, fmt.Errorf("updating workout %d: %w", id, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("update workout %d failed (status %d): %s", id, status, body)
	}

	var updated RemoteWorkout
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decoding update response: %w", err)
	}
	c.log.Info("workout updated", "workout_id", id)
	return &updated, nil
}

// ListWorkouts returns the athlete's planned workouts, optionally bounded
// by oldest/newest dates (YYYY-MM-DD).
func (c *Client) ListWorkouts(ctx context.Context, oldest, newest string) ([]RemoteWorkout, error) {
	u, err := url.Parse(c.workoutsURL())
	if err != nil {
		return nil, fmt.Errorf("building list URL: %w", err)
	}
	q := u.Query()
	if oldest != "" {
		q.Set("oldest", oldest)
	}
	if newest != "" {
		q.Set("newest", newest)
	}
	u.RawQuery = q.Encode()

	body, status, err := c.do(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list workouts failed (status %d): %s", status, body)
	}

	var workouts []RemoteWorkout
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("decoding workout list: %w", err)
	}
	return workouts, nil
}

// DeleteWorkout removes a planned workout by ID.
func (c *Client) DeleteWorkout(ctx context.Context, id int) error {
	body, status, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", c.workoutsURL(), id), nil)
	if err != nil {
		return fmt.Errorf("deleting workout %d: %w", id, err)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("delete workout %d failed (status %d): %s", id, status, body)
	}
	c.log.Info("workout deleted", "workout_id", id)
	return nil
}

// do performs one authenticated request and returns the response body and
// status.
func (c *Client) do(ctx context.Context, method, url string, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, err
	}
	req.SetBasicAuth(basicAuthUser, c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
