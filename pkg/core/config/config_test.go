package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.LLM.Timeout != 60*time.Second {
		t.Errorf("expected default LLM timeout 60s, got %v", cfg.LLM.Timeout)
	}
	if cfg.Dataset.Preset != PresetEnergy {
		t.Errorf("expected default preset energy, got %s", cfg.Dataset.Preset)
	}
	if cfg.Context.MaxRows != 50 {
		t.Errorf("expected default row cap 50, got %d", cfg.Context.MaxRows)
	}
	if cfg.Context.MaxTokens != 0 {
		t.Errorf("token budget must be disabled by default, got %d", cfg.Context.MaxTokens)
	}
	if cfg.Session.MaxHistoryMessages != 10 {
		t.Errorf("expected default history 10, got %d", cfg.Session.MaxHistoryMessages)
	}
}

func TestLoadEnvMapping(t *testing.T) {
	t.Setenv("DATACHAT_LLM_MODEL", "gemini-2.0-flash")
	t.Setenv("DATACHAT_DATASET_PRESET", "movies")
	t.Setenv("DATACHAT_CONTEXT_MAX_ROWS", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.LLM.Model != "gemini-2.0-flash" {
		t.Errorf("expected model from env, got %s", cfg.LLM.Model)
	}
	if cfg.Dataset.Preset != PresetMovies {
		t.Errorf("expected preset movies, got %s", cfg.Dataset.Preset)
	}
	if cfg.Context.MaxRows != 25 {
		t.Errorf("expected row cap 25 from env, got %d", cfg.Context.MaxRows)
	}
}

func TestLLMConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LLMConfig
		wantErr error
	}{
		{"valid", LLMConfig{Model: "m", Temperature: 0.7}, nil},
		{"missing model", LLMConfig{}, ErrModelRequired},
		{"negative timeout", LLMConfig{Model: "m", Timeout: -time.Second}, ErrInvalidTimeout},
		{"temperature too high", LLMConfig{Model: "m", Temperature: 2.5}, ErrInvalidTemperature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLLMConfigTimeoutClamped(t *testing.T) {
	cfg := LLMConfig{Model: "m", Timeout: 10 * time.Minute}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Timeout != 5*time.Minute {
		t.Errorf("expected timeout clamped to 5m, got %v", cfg.Timeout)
	}
}

func TestLLMConfigWithDefaults(t *testing.T) {
	cfg := LLMConfig{}.WithDefaults()

	if cfg.Provider != ProviderGemini {
		t.Errorf("expected default provider gemini, got %s", cfg.Provider)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Errorf("expected default model gemini-2.0-flash, got %s", cfg.Model)
	}
	if cfg.APIKey != "" {
		t.Error("defaults must never introduce a credential")
	}
}
