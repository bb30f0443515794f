package llm

import (
	stderrors "errors"
	"testing"

	"github.com/easyops/datachat-go/pkg/core/config"
	"github.com/easyops/datachat-go/pkg/core/errors"
)

func TestFromConfigMissingAPIKey(t *testing.T) {
	_, err := FromConfig(config.LLMConfig{Provider: config.ProviderGemini})
	if !stderrors.Is(err, errors.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestFromConfigGeminiDefaults(t *testing.T) {
	provider, err := FromConfig(config.LLMConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	defer provider.Close()

	if provider.Name() != "gemini" {
		t.Errorf("expected default provider gemini, got %s", provider.Name())
	}
	if provider.Model() != "gemini-2.0-flash" {
		t.Errorf("expected default model gemini-2.0-flash, got %s", provider.Model())
	}
}

func TestFromConfigOpenAI(t *testing.T) {
	provider, err := FromConfig(config.LLMConfig{
		Provider: config.ProviderOpenAI,
		APIKey:   "test-key",
		Model:    "gpt-4o",
	})
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	defer provider.Close()

	if provider.Name() != "openai" {
		t.Errorf("expected openai, got %s", provider.Name())
	}
	if provider.Model() != "gpt-4o" {
		t.Errorf("expected gpt-4o, got %s", provider.Model())
	}
}

func TestAutoDetectPrefersGemini(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("OPENAI_API_KEY", "oai-key")

	provider, err := AutoDetect()
	if err != nil {
		t.Fatalf("autodetect: %v", err)
	}
	defer provider.Close()

	if provider.Name() != "gemini" {
		t.Errorf("expected gemini preferred, got %s", provider.Name())
	}
}

func TestAutoDetectNoCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := AutoDetect()
	if !stderrors.Is(err, errors.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
