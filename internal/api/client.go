package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

// Media types used for content negotiation. Encrypted bodies are
// signaled purely by these markers, never by inspecting the payload.
const (
	ContentTypeJSON          = "application/json"
	ContentTypeEncrypted     = "application/x-encrypted"
	ContentTypeEncryptedJSON = "application/x-encrypted+json"
)

// IsEncryptedContentType reports whether a Content-Type header value
// carries the encrypted-envelope marker.
func IsEncryptedContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.ToLower(contentType))
	}
	return strings.HasPrefix(mediaType, ContentTypeEncrypted)
}

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      *RetryConfig
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetries sets the maximum number of retry attempts.
func WithRetries(retries int) Option {
	return func(c *Client) {
		c.retry.MaxRetries = retries
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
func WithRetryOn(statusCodes []int) Option {
	return func(c *Client) {
		codes := make(map[int]bool, len(statusCodes))
		for _, code := range statusCodes {
			codes[code] = true
		}
		c.retry.RetryableOn = func(statusCode int) bool {
			return codes[statusCode]
		}
	}
}

// New creates a new API client. The API key may be empty for
// deployments that run without authentication.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry: DefaultRetryConfig(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetHTTPClient sets a custom HTTP client. Retry options applied before
// this call do not carry the previous client's timeout.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Do sends a JSON request and decodes a JSON response into result.
// result may be nil when no body is expected.
func (c *Client) Do(ctx context.Context, method, path string, body, result interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	resp, err := c.doWithRetry(ctx, method, path, ContentTypeJSON, ContentTypeJSON, payload)
	if err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// DoRaw sends a request with an explicit content type and returns the
// undecoded response body with its media type. The transport layer uses
// this for /check so it can branch on the encryption marker.
func (c *Client) DoRaw(ctx context.Context, method, path, contentType, accept string, body []byte) (*RawResponse, error) {
	return c.doWithRetry(ctx, method, path, contentType, accept, body)
}

// doWithRetry runs the request loop, retrying transport errors and
// retryable status codes per the retry policy.
func (c *Client) doWithRetry(ctx context.Context, method, path, contentType, accept string, payload []byte) (*RawResponse, error) {
	url := c.baseURL + path

	for attempt := 0; ; attempt++ {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", contentType)
		}
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		if c.apiKey != "" {
			req.Header.Set("X-API-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil || attempt >= c.retry.MaxRetries {
				return nil, &NetworkError{Err: err, URL: url, Attempt: attempt}
			}
			if werr := c.retry.Wait(ctx, attempt); werr != nil {
				return nil, &NetworkError{Err: err, URL: url, Attempt: attempt}
			}
			continue
		}

		if c.retry.ShouldRetry(attempt, resp.StatusCode) {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if werr := c.retry.Wait(ctx, attempt); werr != nil {
				return nil, werr
			}
			continue
		}

		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &NetworkError{Err: err, URL: url, Attempt: attempt}
		}

		if resp.StatusCode >= 400 {
			return nil, parseErrorResponse(resp.StatusCode, respBody)
		}

		return &RawResponse{
			ContentType: resp.Header.Get("Content-Type"),
			Body:        respBody,
		}, nil
	}
}

// parseErrorResponse maps an error status and body to an APIError,
// reading the server's {"detail": ...} shape when present.
func parseErrorResponse(statusCode int, body []byte) error {
	var parsed errorBody
	detail := ""
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Detail) > 0 {
		// detail is usually a string, but validation errors nest objects
		if err := json.Unmarshal(parsed.Detail, &detail); err != nil {
			detail = string(parsed.Detail)
		}
	}
	if detail == "" {
		detail = strings.TrimSpace(string(body))
	}

	return &APIError{
		StatusCode: statusCode,
		Detail:     detail,
	}
}
