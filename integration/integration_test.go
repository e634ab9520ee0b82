//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	ileterate "github.com/ileterate/client-go"
	"github.com/joho/godotenv"
)

var (
	apiKey  string
	baseURL string
)

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		os.Stderr.WriteString("Note: .env file not found at project root\n")
	}

	apiKey = os.Getenv("ILETERATE_API_KEY")
	baseURL = os.Getenv("ILETERATE_URL")

	if baseURL == "" {
		os.Stderr.WriteString("Skipping integration tests: ILETERATE_URL not set\n")
		os.Exit(0)
	}

	os.Stderr.WriteString("Running integration tests...\n")
	os.Stderr.WriteString("API URL: " + baseURL + "\n")

	os.Exit(m.Run())
}

func newClient(t *testing.T, extra ...ileterate.Option) *ileterate.Client {
	t.Helper()

	opts := []ileterate.Option{
		ileterate.WithBaseURL(baseURL),
		ileterate.WithAPIKey(apiKey),
		ileterate.WithTimeout(30 * time.Second),
	}
	opts = append(opts, extra...)

	client, err := ileterate.New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return client
}

func TestIntegration_Health(t *testing.T) {
	client := newClient(t)

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}

	t.Logf("Health: status=%s languagetool=%v llm=%v version=%s",
		health.Status, health.LanguageToolAvailable, health.LLMAvailable, health.Version)

	if health.Status == "" {
		t.Error("Status is empty")
	}
}

func TestIntegration_Check(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	result, err := client.Check(ctx, "Ik heb de boek gelezen.")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	t.Logf("Corrected: %s (%d issues)", result.CorrectedText, result.IssueCount)

	if result.OriginalText != "Ik heb de boek gelezen." {
		t.Errorf("OriginalText = %q", result.OriginalText)
	}
	if result.Language != "nl" {
		t.Errorf("Language = %q, want nl", result.Language)
	}
}

func TestIntegration_CheckEncrypted(t *testing.T) {
	client := newClient(t, ileterate.WithEncryption())
	ctx := context.Background()

	if err := client.RefreshEncryptionKey(ctx); err != nil {
		t.Skipf("server does not offer encryption: %v", err)
	}

	result, err := client.Check(ctx, "Deze zin word versleuteld verstuurd.")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if !client.EncryptionReady() {
		t.Error("EncryptionReady() = false after successful handshake")
	}

	t.Logf("Encrypted check corrected: %s", result.CorrectedText)
}

func TestIntegration_Languages(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	languages, err := client.Languages(ctx)
	if err != nil {
		t.Fatalf("Languages() error = %v", err)
	}
	if len(languages) == 0 {
		t.Fatal("no languages returned")
	}

	lang, err := client.Language(ctx, languages[0].Code)
	if err != nil {
		t.Fatalf("Language(%q) error = %v", languages[0].Code, err)
	}
	t.Logf("Language: %s (%s)", lang.Name, lang.NativeName)

	if _, err := client.Language(ctx, "zz-unknown"); !errors.Is(err, ileterate.ErrLanguageNotFound) {
		t.Errorf("Language(zz-unknown) error = %v, want ErrLanguageNotFound", err)
	}
}

func TestIntegration_CacheStats(t *testing.T) {
	client := newClient(t)

	stats, err := client.CacheStats(context.Background())
	if err != nil {
		t.Skipf("cache stats not available: %v", err)
	}
	t.Logf("Cache: %d entries, hit rate %.2f", stats.Entries, stats.HitRate)
}
