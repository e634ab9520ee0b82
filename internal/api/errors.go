package api

import (
	"errors"
	"fmt"
	"strings"
)

// Common API errors that can be checked with errors.Is.
var (
	// ErrUnauthorized indicates a missing or rejected API key.
	ErrUnauthorized = errors.New("invalid or missing API key")
	// ErrLanguageNotFound indicates the requested language is not supported.
	ErrLanguageNotFound = errors.New("language not found")
	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrEncryptionRejected indicates the server could not decrypt the
	// request envelope.
	ErrEncryptionRejected = errors.New("server rejected encrypted request")
)

// ResourceType indicates which type of resource an error relates to.
type ResourceType string

const (
	// ResourceUnknown indicates the resource type is not specified.
	ResourceUnknown ResourceType = ""
	// ResourceLanguage indicates the error relates to a language lookup.
	ResourceLanguage ResourceType = "language"
)

// APIError represents an HTTP error from the Grammar API.
type APIError struct {
	StatusCode   int
	Detail       string
	ResourceType ResourceType
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

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
		if e.ResourceType == ResourceLanguage {
			return target == ErrLanguageNotFound
		}
		return false
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// WithResourceType returns a copy of the error with the resource type
// set. Errors other than *APIError are returned unchanged.
func WithResourceType(err error, rt ResourceType) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode:   apiErr.StatusCode,
			Detail:       apiErr.Detail,
			ResourceType: rt,
		}
	}
	return err
}

// NetworkError represents a transport-level failure.
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
