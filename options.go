package ileterate

import (
	"net/http"
	"time"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 30 * time.Second
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	retries    int
	retryOn    []int

	// Encryption configuration
	encryption        bool
	clientPrivateKey  string
	requireEncryption bool
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
// Default: http://localhost:8000
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithAPIKey sets the API key sent in the X-API-Key header. Deployments
// that run without authentication can omit it.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of retries for API calls.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithEncryption enables end-to-end encryption of request bodies. The
// client fetches the server's public key on first use; if the handshake
// fails, requests fall back to plaintext unless WithRequireEncryption
// is also set.
func WithEncryption() Option {
	return func(c *clientConfig) {
		c.encryption = true
	}
}

// WithClientPrivateKey provides a PEM-encoded RSA private key used to
// decrypt encrypted responses. Implies WithEncryption. Without it the
// client still encrypts requests but asks for plaintext responses.
func WithClientPrivateKey(pemText string) Option {
	return func(c *clientConfig) {
		c.encryption = true
		c.clientPrivateKey = pemText
	}
}

// WithRequireEncryption makes encryption mandatory: if the handshake
// fails or the session cannot be established, requests error instead
// of falling back to plaintext. Implies WithEncryption.
func WithRequireEncryption() Option {
	return func(c *clientConfig) {
		c.encryption = true
		c.requireEncryption = true
	}
}
