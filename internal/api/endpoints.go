package api

import (
	"context"
	"fmt"
	"net/url"
)

// GetPublicKey fetches the server's RSA public key for the encryption
// handshake. Only the public_key field is consumed by the client.
func (c *Client) GetPublicKey(ctx context.Context) (*PublicKeyInfo, error) {
	var result PublicKeyInfo
	if err := c.Do(ctx, "GET", "/encryption/public-key", nil, &result); err != nil {
		return nil, err
	}
	if result.PublicKey == "" {
		return nil, fmt.Errorf("key endpoint returned no public_key")
	}
	return &result, nil
}

// SubmitCheck posts a serialized /check body with the given content
// type. acceptEncrypted advertises that the caller can decrypt an
// envelope response; the server only encrypts when asked to.
func (c *Client) SubmitCheck(ctx context.Context, contentType string, acceptEncrypted bool, body []byte) (*RawResponse, error) {
	accept := ContentTypeJSON
	if acceptEncrypted {
		accept = ContentTypeEncrypted
	}
	return c.DoRaw(ctx, "POST", "/check", contentType, accept, body)
}

// GetLanguages lists the supported languages.
func (c *Client) GetLanguages(ctx context.Context) ([]LanguageInfo, error) {
	var result []LanguageInfo
	if err := c.Do(ctx, "GET", "/languages", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetLanguage retrieves a single language by ISO code.
func (c *Client) GetLanguage(ctx context.Context, code string) (*LanguageInfo, error) {
	path := fmt.Sprintf("/languages/%s", url.PathEscape(code))
	var result LanguageInfo
	if err := c.Do(ctx, "GET", path, nil, &result); err != nil {
		return nil, WithResourceType(err, ResourceLanguage)
	}
	return &result, nil
}

// GetHealth reports service health, including backend availability.
func (c *Client) GetHealth(ctx context.Context) (*HealthStatus, error) {
	var result HealthStatus
	if err := c.Do(ctx, "GET", "/health", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCacheStats retrieves server-side cache statistics.
func (c *Client) GetCacheStats(ctx context.Context) (*CacheStats, error) {
	var result CacheStats
	if err := c.Do(ctx, "GET", "/cache/stats", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ClearCache clears the server-side grammar check cache.
func (c *Client) ClearCache(ctx context.Context) error {
	var result struct {
		Status string `json:"status"`
	}
	return c.Do(ctx, "POST", "/cache/clear", nil, &result)
}
