package ileterate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ileterate/client-go/internal/api"
	"github.com/ileterate/client-go/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingBaseURL is returned when no base URL is configured.
	ErrMissingBaseURL = errors.New("base URL is required")

	// ErrUnauthorized is returned when the API key is invalid or missing.
	ErrUnauthorized = errors.New("invalid or missing API key")

	// ErrLanguageNotFound is returned when a language lookup fails.
	ErrLanguageNotFound = errors.New("language not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrEmptyText is returned when Check is called with empty text.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrEncryptionUnavailable is returned when encryption is required
	// but the session could not be established.
	ErrEncryptionUnavailable = errors.New("encryption unavailable")

	// ErrEncryptionRejected is returned when the server could not
	// decrypt the request envelope.
	ErrEncryptionRejected = errors.New("server rejected encrypted request")

	// ErrDecryptionFailed is returned when an encrypted response cannot
	// be decrypted.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrClientKeyNotConfigured is returned when the server sends an
	// encrypted response but no client private key was configured.
	ErrClientKeyNotConfigured = errors.New("client private key not configured")
)

// IleterateError is implemented by all SDK errors.
type IleterateError interface {
	error
	IleterateError() // marker method
}

// APIError represents an HTTP error from the grammar API.
type APIError struct {
	StatusCode int
	Detail     string

	resource api.ResourceType
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// IleterateError implements the IleterateError interface.
func (e *APIError) IleterateError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 400:
		// The server answers an undecryptable envelope with a plain
		// 400 whose detail names the decryption failure.
		if target == ErrEncryptionRejected {
			return strings.Contains(strings.ToLower(e.Detail), "decrypt")
		}
		return false
	case 401, 403:
		return target == ErrUnauthorized
	case 404:
		return target == ErrLanguageNotFound && e.resource == api.ResourceLanguage
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IleterateError implements the IleterateError interface.
func (e *NetworkError) IleterateError() {}

// KeyParseError represents a failure to parse RSA key material.
type KeyParseError struct {
	// Key identifies which key failed: "server" or "client".
	Key string
	Err error
}

func (e *KeyParseError) Error() string {
	return fmt.Sprintf("parse %s key: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *KeyParseError) Unwrap() error {
	return e.Err
}

// IleterateError implements the IleterateError interface.
func (e *KeyParseError) IleterateError() {}

// EncryptionError represents a failure while encrypting a request body.
type EncryptionError struct {
	Err error
}

func (e *EncryptionError) Error() string {
	return fmt.Sprintf("encrypt request: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *EncryptionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *EncryptionError) Is(target error) bool {
	return target == ErrEncryptionUnavailable
}

// IleterateError implements the IleterateError interface.
func (e *EncryptionError) IleterateError() {}

// DecryptionError represents a failure while decrypting a response body.
type DecryptionError struct {
	Err error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decrypt response: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecryptionError) Is(target error) bool {
	switch target {
	case ErrDecryptionFailed:
		return true
	case ErrClientKeyNotConfigured:
		return errors.Is(e.Err, crypto.ErrClientKeyNotConfigured)
	}
	return false
}

// IleterateError implements the IleterateError interface.
func (e *DecryptionError) IleterateError() {}

// wrapError converts internal API errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Detail:     apiErr.Detail,
			resource:   apiErr.ResourceType,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	return err
}
