package api

import "encoding/json"

// PublicKeyInfo is the /encryption/public-key handshake response. Only
// PublicKey is consumed by the client; the other fields describe the
// scheme for diagnostics.
type PublicKeyInfo struct {
	PublicKey     string `json:"public_key"`
	Algorithm     string `json:"algorithm"`
	KeyEncryption string `json:"key_encryption"`
}

// CheckRequest is the wire form of a POST /check body.
type CheckRequest struct {
	Text                string `json:"text"`
	Language            string `json:"language"`
	Mode                string `json:"mode"`
	Tone                string `json:"tone"`
	IncludeExplanations bool   `json:"include_explanations"`
}

// CheckResponse is the wire form of a /check result.
type CheckResponse struct {
	OriginalText     string               `json:"original_text"`
	CorrectedText    string               `json:"corrected_text"`
	Issues           []GrammarIssue       `json:"issues"`
	Rewrites         []RewriteSuggestion  `json:"rewrites"`
	Explanations     []Explanation        `json:"explanations"`
	ValidationPassed bool                 `json:"validation_passed"`
	FallbackUsed     bool                 `json:"fallback_used"`
	Language         string               `json:"language"`
	IssueCount       int                  `json:"issue_count"`
}

// GrammarIssue is a single detected issue.
type GrammarIssue struct {
	Offset       int      `json:"offset"`
	Length       int      `json:"length"`
	Message      string   `json:"message"`
	RuleID       string   `json:"rule_id"`
	Category     string   `json:"category"`
	Severity     string   `json:"severity"`
	OriginalText string   `json:"original_text"`
	Suggestions  []string `json:"suggestions"`
	Context      string   `json:"context,omitempty"`
}

// RewriteSuggestion is a whole-text rewrite alternative.
type RewriteSuggestion struct {
	Text           string  `json:"text"`
	Tone           string  `json:"tone"`
	Score          float64 `json:"score"`
	ChangesSummary string  `json:"changes_summary,omitempty"`
}

// Explanation describes why a span was corrected.
type Explanation struct {
	Span      string `json:"span"`
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Reason    string `json:"reason"`
}

// LanguageInfo describes a supported language.
type LanguageInfo struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	NativeName string   `json:"native_name"`
	Examples   []string `json:"examples"`
}

// HealthStatus is the /health response.
type HealthStatus struct {
	Status                string `json:"status"`
	LanguageToolAvailable bool   `json:"languagetool_available"`
	LLMAvailable          bool   `json:"llm_available"`
	Version               string `json:"version"`
}

// CacheStats is the /cache/stats response.
type CacheStats struct {
	Entries    int     `json:"entries"`
	MaxEntries int     `json:"max_entries"`
	Hits       int     `json:"hits"`
	Misses     int     `json:"misses"`
	Evictions  int     `json:"evictions"`
	HitRate    float64 `json:"hit_rate"`
}

// RawResponse is an un-deserialized response body with its media type,
// used by the transport layer to branch on the encryption marker before
// decoding.
type RawResponse struct {
	ContentType string
	Body        []byte
}

// errorBody is the server's error shape (FastAPI-style detail field).
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}
