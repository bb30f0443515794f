package config

import "time"

// Provider 补全服务提供商类型
type Provider string

const (
	// ProviderGemini Gemini 提供商（OpenAI 兼容端点）
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI OpenAI 提供商
	ProviderOpenAI Provider = "openai"
)

// IsValid 检查提供商是否有效
func (p Provider) IsValid() bool {
	switch p {
	case ProviderGemini, ProviderOpenAI:
		return true
	default:
		return false
	}
}

// LLMConfig 补全服务配置
type LLMConfig struct {
	// Provider 提供商
	Provider Provider `koanf:"provider"`
	// Model 模型名称
	Model string `koanf:"model"`
	// APIKey API 密钥（运行时由用户提供，不落盘、不写日志）
	APIKey string `koanf:"api_key"`
	// BaseURL 自定义 API 端点
	BaseURL string `koanf:"base_url"`
	// Timeout 请求超时时间
	// 默认: 60s, 最大: 5m
	Timeout time.Duration `koanf:"timeout"`
	// Temperature 默认温度
	Temperature float64 `koanf:"temperature"`
	// MaxTokens 默认最大输出 token
	MaxTokens int `koanf:"max_tokens"`
}

// Validate 验证补全服务配置
func (c *LLMConfig) Validate() error {
	if c.Model == "" {
		return ErrModelRequired
	}
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if c.Timeout > 5*time.Minute {
		c.Timeout = 5 * time.Minute
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return ErrInvalidTemperature
	}
	return nil
}

// WithDefaults 返回带默认值的配置
func (c LLMConfig) WithDefaults() LLMConfig {
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	if c.Model == "" {
		c.Model = "gemini-2.0-flash"
	}
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 4096
	}
	return c
}
