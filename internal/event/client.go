package event

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/countdown/internal/constants"
	"github.com/mrz1836/countdown/internal/errors"
)

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 512

// StatusError is returned for a non-2xx API response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status code %d", e.Code)
	}
	return fmt.Sprintf("API returned status code %d: %s", e.Code, e.Body)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.With().Str("component", "event_client").Logger()
	}
}

// WithRequestIDFunc overrides how X-Request-ID values are generated.
func WithRequestIDFunc(fn func() string) ClientOption {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// Client is an HTTP client for the event API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	requestID  func() string
}

// NewClient returns a Client rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.DefaultAPITimeout,
		},
		logger:    zerolog.Nop(),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetEvent fetches the current event.
//
// The API may answer with a single object or with an array, in which case
// the first element is used. An empty array returns errors.ErrEventNotFound.
func (c *Client) GetEvent(ctx context.Context) (*Event, error) {
	body, err := c.do(ctx, http.MethodGet, constants.EventPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrEventFetch, err)
	}

	ev, err := decodeEvent(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("event_id", ev.ID).
		Str("end_date", ev.EndDate).
		Int("rewards", len(ev.Rewards)).
		Msg("event fetched")
	return ev, nil
}

// SubmitEntry posts entry and returns the stored entry as echoed by the API.
func (c *Client) SubmitEntry(ctx context.Context, entry Entry) (*Entry, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, errors.Wrap(err, "marshal entry")
	}

	body, err := c.do(ctx, http.MethodPost, constants.EntriesPath, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrEntrySubmit, err)
	}

	var stored Entry
	if len(bytes.TrimSpace(body)) == 0 {
		stored = entry
	} else if err := json.Unmarshal(body, &stored); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", errors.ErrEntrySubmit, err)
	}

	c.logger.Info().Msg("entry submitted")
	return &stored, nil
}

func decodeEvent(body []byte) (*Event, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.ErrEventNotFound
	}

	if trimmed[0] == '[' {
		var events []Event
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, fmt.Errorf("%w: decode event list: %w", errors.ErrEventFetch, err)
		}
		if len(events) == 0 {
			return nil, errors.ErrEventNotFound
		}
		return &events[0], nil
	}

	var ev Event
	if err := json.Unmarshal(trimmed, &ev); err != nil {
		return nil, fmt.Errorf("%w: decode event: %w", errors.ErrEventFetch, err)
	}
	return &ev, nil
}

// do sends one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	reqID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(constants.RequestIDHeader, reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("event api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
