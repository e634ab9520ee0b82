package ileterate

import (
	"context"
	"strings"
	"sync"

	"github.com/ileterate/client-go/internal/api"
	"github.com/ileterate/client-go/internal/crypto"
)

// Client is the main grammar API client.
type Client struct {
	apiClient *api.Client

	encryption        bool
	requireEncryption bool
	clientPrivateKey  string

	session *crypto.Session

	// handshakeMu single-flights the public key fetch. handshakeDone is
	// set after the first attempt, successful or not; a failed fetch is
	// not retried automatically.
	handshakeMu   sync.Mutex
	handshakeDone bool
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if cfg.retries > 0 {
		apiOpts = append(apiOpts, api.WithRetries(cfg.retries))
	}
	if len(cfg.retryOn) > 0 {
		apiOpts = append(apiOpts, api.WithRetryOn(cfg.retryOn))
	}

	apiClient, err := api.New(cfg.baseURL, cfg.apiKey, apiOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.httpClient != nil {
		apiClient.SetHTTPClient(cfg.httpClient)
	}

	return apiClient, nil
}

// New creates a new grammar API client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	apiClient, err := buildAPIClient(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient:         apiClient,
		encryption:        cfg.encryption,
		requireEncryption: cfg.requireEncryption,
		clientPrivateKey:  cfg.clientPrivateKey,
		session:           crypto.NewSession(),
	}, nil
}

// Check runs a grammar check on the given text. Options select the
// language, mode and tone; by default the text is checked as Dutch in
// strict mode with explanations enabled.
//
// When encryption is enabled, the request body is encrypted with the
// server's public key, fetched lazily on first use.
func (c *Client) Check(ctx context.Context, text string, opts ...CheckOption) (*CheckResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	cfg := &checkConfig{
		language:     defaultLanguage,
		mode:         ModeStrict,
		tone:         ToneNeutral,
		explanations: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := &api.CheckRequest{
		Text:                text,
		Language:            strings.ToLower(cfg.language),
		Mode:                string(cfg.mode),
		Tone:                string(cfg.tone),
		IncludeExplanations: cfg.explanations,
	}

	resp, err := c.doCheck(ctx, req)
	if err != nil {
		return nil, err
	}

	return checkResultFromAPI(resp), nil
}

// Languages lists the supported languages.
func (c *Client) Languages(ctx context.Context) ([]LanguageInfo, error) {
	apiLanguages, err := c.apiClient.GetLanguages(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	languages := make([]LanguageInfo, 0, len(apiLanguages))
	for i := range apiLanguages {
		languages = append(languages, languageFromAPI(&apiLanguages[i]))
	}
	return languages, nil
}

// Language retrieves a single language by ISO code. The code is
// matched case-insensitively.
func (c *Client) Language(ctx context.Context, code string) (*LanguageInfo, error) {
	apiLanguage, err := c.apiClient.GetLanguage(ctx, strings.ToLower(code))
	if err != nil {
		return nil, wrapError(err)
	}

	language := languageFromAPI(apiLanguage)
	return &language, nil
}

// Health reports service health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	status, err := c.apiClient.GetHealth(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	return &Health{
		Status:                status.Status,
		LanguageToolAvailable: status.LanguageToolAvailable,
		LLMAvailable:          status.LLMAvailable,
		Version:               status.Version,
	}, nil
}

// CacheStats retrieves server-side cache statistics.
func (c *Client) CacheStats(ctx context.Context) (*CacheStats, error) {
	stats, err := c.apiClient.GetCacheStats(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	return &CacheStats{
		Entries:    stats.Entries,
		MaxEntries: stats.MaxEntries,
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Evictions:  stats.Evictions,
		HitRate:    stats.HitRate,
	}, nil
}

// ClearCache clears the server-side grammar check cache.
func (c *Client) ClearCache(ctx context.Context) error {
	return wrapError(c.apiClient.ClearCache(ctx))
}

// EncryptionReady reports whether the encryption session is established
// and requests will be encrypted. It is false before the first Check
// triggers the handshake; use RefreshEncryptionKey to handshake eagerly.
func (c *Client) EncryptionReady() bool {
	return c.encryption && c.session.IsReady()
}

// RefreshEncryptionKey fetches the server's public key and
// (re-)establishes the encryption session. It can be used to handshake
// eagerly at startup, or to recover after a failed handshake, which is
// not retried automatically.
func (c *Client) RefreshEncryptionKey(ctx context.Context) error {
	if !c.encryption {
		return ErrEncryptionUnavailable
	}

	c.handshakeMu.Lock()
	defer c.handshakeMu.Unlock()

	c.handshakeDone = false
	return c.handshakeLocked(ctx)
}
