// api/http_client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultRateLimit  = 10
	DefaultMaxRetries = 2
	DefaultBackoff    = 200 * time.Millisecond
)

// APIError is returned when the upstream answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream API error: status %d, endpoint %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
}

// ClientOption configures the HTTPClient.
type ClientOption func(*HTTPClient)

// WithTimeout sets the per-attempt timeout of the underlying http.Client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.HTTPClient.Timeout = timeout
	}
}

// WithRateLimit caps outgoing requests per second, shared by every caller of this client.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *HTTPClient) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithMaxRetries sets how many times a retryable failure is retried.
func WithMaxRetries(maxRetries int) ClientOption {
	return func(c *HTTPClient) {
		if maxRetries < 0 {
			maxRetries = 0
		}
		c.maxRetries = maxRetries
	}
}

// WithBackoff sets the initial retry delay. It doubles after every attempt.
func WithBackoff(backoff time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.backoff = backoff
	}
}

// NewHTTPClient creates a new instance of HTTPClient with default settings
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		maxRetries: DefaultMaxRetries,
		backoff:    DefaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request makes an HTTP request to the API and decodes the response.
// Network errors, 429 and 5xx answers are retried with exponential backoff.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, headers map[string]string, body interface{}, response interface{}) error {
	var requestBody []byte
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		requestBody = jsonBody
	}

	delay := c.backoff
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		retryable, err := c.do(ctx, method, endpoint, headers, requestBody, response)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
	}
	return lastErr
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, headers map[string]string, requestBody []byte, response interface{}) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limiter: %w", err)
	}

	target := c.BaseURL + endpoint
	var reader io.Reader = http.NoBody
	if requestBody != nil {
		reader = bytes.NewReader(requestBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", redactURLError(err))
	}

	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("failed to execute request: %w", redactURLError(err))
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return true, fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		retryable := res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500
		return retryable, &APIError{
			StatusCode: res.StatusCode,
			Message:    string(resBody),
			Endpoint:   stripQuery(endpoint),
		}
	}

	if response != nil {
		if err := json.Unmarshal(resBody, response); err != nil {
			return false, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return false, nil
}

// stripQuery drops the query string, which may carry credentials.
func stripQuery(rawURL string) string {
	path, _, _ := strings.Cut(rawURL, "?")
	return path
}

func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = stripQuery(urlErr.URL)
	}
	return err
}
