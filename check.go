package ileterate

import "github.com/ileterate/client-go/internal/api"

// CheckMode selects how aggressively the checker rewrites text.
type CheckMode string

const (
	// ModeStrict corrects grammar and spelling only.
	ModeStrict CheckMode = "strict"
	// ModeStyle also rewrites for style and clarity.
	ModeStyle CheckMode = "style"
)

// Tone selects the register for style rewrites.
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	ToneFormal   Tone = "formal"
	ToneCasual   Tone = "casual"
	ToneAcademic Tone = "academic"
)

// Issue severities as reported by the server.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityStyle   = "style"
	SeverityHint    = "hint"
)

// Issue categories as reported by the server.
const (
	CategoryGrammar     = "grammar"
	CategorySpelling    = "spelling"
	CategoryPunctuation = "punctuation"
	CategoryStyle       = "style"
	CategoryTypography  = "typography"
	CategoryWordOrder   = "word_order"
	CategoryAgreement   = "agreement"
	CategoryOther       = "other"
)

// defaultLanguage is used when no language option is given.
const defaultLanguage = "nl"

// checkConfig holds configuration for a single check.
type checkConfig struct {
	language     string
	mode         CheckMode
	tone         Tone
	explanations bool
}

// CheckOption configures a single Check call.
type CheckOption func(*checkConfig)

// WithLanguage sets the language of the text by ISO code.
// Default: "nl"
func WithLanguage(code string) CheckOption {
	return func(c *checkConfig) {
		c.language = code
	}
}

// WithMode sets the check mode.
// Default: ModeStrict
func WithMode(mode CheckMode) CheckOption {
	return func(c *checkConfig) {
		c.mode = mode
	}
}

// WithTone sets the rewrite tone. Only meaningful with ModeStyle.
// Default: ToneNeutral
func WithTone(tone Tone) CheckOption {
	return func(c *checkConfig) {
		c.tone = tone
	}
}

// WithoutExplanations disables per-correction explanations, which makes
// checks cheaper on the server side.
func WithoutExplanations() CheckOption {
	return func(c *checkConfig) {
		c.explanations = false
	}
}

// Issue is a single detected grammar or spelling issue.
type Issue struct {
	// Offset and Length locate the issue in the original text, in
	// bytes of the UTF-8 encoding.
	Offset       int
	Length       int
	Message      string
	RuleID       string
	Category     string
	Severity     string
	OriginalText string
	Suggestions  []string
	Context      string
}

// Rewrite is a whole-text rewrite alternative.
type Rewrite struct {
	Text           string
	Tone           Tone
	Score          float64
	ChangesSummary string
}

// Explanation describes why a span was corrected.
type Explanation struct {
	Span      string
	Original  string
	Corrected string
	Reason    string
}

// CheckResult is the outcome of a grammar check.
type CheckResult struct {
	OriginalText  string
	CorrectedText string
	Issues        []Issue
	Rewrites      []Rewrite
	Explanations  []Explanation
	// ValidationPassed reports whether the corrected text passed the
	// server's re-check validation pass.
	ValidationPassed bool
	// FallbackUsed reports whether the server fell back to rule-based
	// checking because the LLM was unavailable.
	FallbackUsed bool
	Language     string
	IssueCount   int
}

// LanguageInfo describes a supported language.
type LanguageInfo struct {
	Code       string
	Name       string
	NativeName string
	Examples   []string
}

// Health reports service and backend availability.
type Health struct {
	Status                string
	LanguageToolAvailable bool
	LLMAvailable          bool
	Version               string
}

// CacheStats reports server-side cache statistics.
type CacheStats struct {
	Entries    int
	MaxEntries int
	Hits       int
	Misses     int
	Evictions  int
	HitRate    float64
}

func checkResultFromAPI(r *api.CheckResponse) *CheckResult {
	result := &CheckResult{
		OriginalText:     r.OriginalText,
		CorrectedText:    r.CorrectedText,
		ValidationPassed: r.ValidationPassed,
		FallbackUsed:     r.FallbackUsed,
		Language:         r.Language,
		IssueCount:       r.IssueCount,
	}

	for _, issue := range r.Issues {
		result.Issues = append(result.Issues, Issue{
			Offset:       issue.Offset,
			Length:       issue.Length,
			Message:      issue.Message,
			RuleID:       issue.RuleID,
			Category:     issue.Category,
			Severity:     issue.Severity,
			OriginalText: issue.OriginalText,
			Suggestions:  issue.Suggestions,
			Context:      issue.Context,
		})
	}
	for _, rw := range r.Rewrites {
		result.Rewrites = append(result.Rewrites, Rewrite{
			Text:           rw.Text,
			Tone:           Tone(rw.Tone),
			Score:          rw.Score,
			ChangesSummary: rw.ChangesSummary,
		})
	}
	for _, ex := range r.Explanations {
		result.Explanations = append(result.Explanations, Explanation{
			Span:      ex.Span,
			Original:  ex.Original,
			Corrected: ex.Corrected,
			Reason:    ex.Reason,
		})
	}

	return result
}

func languageFromAPI(l *api.LanguageInfo) LanguageInfo {
	return LanguageInfo{
		Code:       l.Code,
		Name:       l.Name,
		NativeName: l.NativeName,
		Examples:   l.Examples,
	}
}
