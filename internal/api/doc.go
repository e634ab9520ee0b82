// Package api provides HTTP client functionality for communicating with
// the ileterate Grammar API. It handles authentication, request/response
// serialization, content-type negotiation for encrypted bodies, and
// automatic retry with exponential backoff for transient failures.
//
// # Authentication
//
// When an API key is configured it is sent via the X-API-Key header on
// every request. Deployments without a configured key accept
// unauthenticated requests, so the key is optional here.
//
// # Content negotiation
//
// Plain requests and responses use application/json. Encrypted bodies
// are JSON envelopes tagged with the application/x-encrypted media type
// (responses use application/x-encrypted+json). The package only moves
// tagged bytes; envelope construction lives in internal/crypto.
//
// # Retry behavior
//
// Failed requests are retried with exponential backoff and jitter. By
// default, up to 3 retries for status codes 408, 429, 500, 502, 503 and
// 504, and for transport-level errors. Only the /check submission is a
// POST, and it is idempotent on the server side, so it participates in
// the same policy.
//
// # Error handling
//
// Sentinel errors cover common API failures and work with errors.Is:
//
//   - [ErrUnauthorized]: missing or rejected API key (401/403).
//   - [ErrLanguageNotFound]: unsupported language code (404).
//   - [ErrRateLimited]: rate limit exceeded (429).
//
// # Thread safety
//
// The [Client] type is safe for concurrent use.
package api
