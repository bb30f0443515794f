package llm

import (
	"fmt"
	"os"

	"github.com/easyops/datachat-go/pkg/core/config"
	"github.com/easyops/datachat-go/pkg/core/errors"
)

// FromConfig 从配置创建补全提供商
func FromConfig(cfg config.LLMConfig) (Provider, error) {
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// 凭证缺失在此处检出，任何网络调用之前
	if cfg.APIKey == "" {
		return nil, errors.ErrMissingAPIKey
	}

	opts := []Option{
		WithAPIKey(cfg.APIKey),
		WithModel(cfg.Model),
		WithTimeout(cfg.Timeout),
		WithTemperature(cfg.Temperature),
		WithMaxTokens(cfg.MaxTokens),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGemini(opts...)
	case config.ProviderOpenAI:
		return NewOpenAI(opts...)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// AutoDetect 从环境变量自动检测并创建提供商
//
// 按以下顺序尝试：Gemini -> OpenAI。
func AutoDetect() (Provider, error) {
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		return NewGemini(
			WithAPIKey(apiKey),
			WithModel(getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash")),
		)
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		return NewOpenAI(
			WithAPIKey(apiKey),
			WithModel(getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini")),
		)
	}

	return nil, errors.ErrMissingAPIKey
}

// getEnvOrDefault 获取环境变量或默认值
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
