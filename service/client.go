package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "http://localhost:5000"
	requestTimeout = 8 * time.Second
)

// Client wraps HTTP access to the cinema API. Every fetch is a single
// attempt bounded by the request timeout; the page-level helpers turn
// failures into empty defaults so callers always get something to render.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// APIError is returned when the cinema API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "cinema api error"
	}
	return fmt.Sprintf("cinema api error: %s: %s", e.Status, e.Body)
}

// IsNotFound reports whether the error represents a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// ResolveBaseURL picks the API origin: the provided override when set,
// the local development server otherwise.
func ResolveBaseURL(override string) string {
	override = strings.TrimRight(strings.TrimSpace(override), "/")
	if override != "" {
		return override
	}
	return defaultBaseURL
}

// NewClient creates a new API client. If httpClient is nil, a default
// client with the standard timeout is used.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    ResolveBaseURL(baseURL),
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))
		_ = res.Body.Close()
		return &APIError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Endpoint:   endpoint,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	dec := json.NewDecoder(res.Body)
	err = dec.Decode(out)
	_ = res.Body.Close()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}
