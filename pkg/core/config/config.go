// Package config 提供配置加载和管理功能
package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config 全局配置结构
type Config struct {
	// LLM 补全服务配置
	LLM LLMConfig `koanf:"llm"`
	// Dataset 数据集配置
	Dataset DatasetConfig `koanf:"dataset"`
	// Context 上下文选择配置
	Context ContextConfig `koanf:"context"`
	// Session 会话配置
	Session SessionConfig `koanf:"session"`
	// Observability 可观测性配置
	Observability ObservabilityConfig `koanf:"observability"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	// MaxHistoryMessages 请求中携带的最大历史消息数
	MaxHistoryMessages int `koanf:"max_history_messages"`
	// TurnTimeout 单轮对话超时
	TurnTimeout time.Duration `koanf:"turn_timeout"`
}

// ObservabilityConfig 可观测性配置
type ObservabilityConfig struct {
	// Enabled 是否启用
	Enabled bool `koanf:"enabled"`
	// ServiceName 服务名称
	ServiceName string `koanf:"service_name"`
	// TracerEndpoint 追踪端点
	TracerEndpoint string `koanf:"tracer_endpoint"`
	// MetricsEndpoint 指标端点
	MetricsEndpoint string `koanf:"metrics_endpoint"`
	// SampleRate 采样率 [0, 1]
	SampleRate float64 `koanf:"sample_rate"`
}

// Loader 配置加载器
type Loader struct {
	k *koanf.Koanf
}

// NewLoader 创建配置加载器
func NewLoader() *Loader {
	return &Loader{
		k: koanf.New("."),
	}
}

// LoadEnv 从环境变量加载配置
func (l *Loader) LoadEnv(prefix string) error {
	return l.k.Load(env.Provider(prefix, ".", func(s string) string {
		// 转换环境变量名: DATACHAT_LLM_API_KEY -> llm.api_key
		// 首个下划线分隔配置小节，其余保留为键名的一部分
		s = strings.TrimPrefix(s, prefix)
		s = strings.ToLower(s)
		s = strings.Replace(s, "_", ".", 1)
		return s
	}), nil)
}

// Unmarshal 解析配置到结构体
func (l *Loader) Unmarshal(cfg *Config) error {
	return l.k.Unmarshal("", cfg)
}

// Get 获取配置值
func (l *Loader) Get(key string) interface{} {
	return l.k.Get(key)
}

// GetString 获取字符串配置值
func (l *Loader) GetString(key string) string {
	return l.k.String(key)
}

// GetInt 获取整数配置值
func (l *Loader) GetInt(key string) int {
	return l.k.Int(key)
}

// GetBool 获取布尔配置值
func (l *Loader) GetBool(key string) bool {
	return l.k.Bool(key)
}

// GetDuration 获取时间间隔配置值
func (l *Loader) GetDuration(key string) time.Duration {
	return l.k.Duration(key)
}

// Load 从环境变量加载完整配置
func Load() (*Config, error) {
	loader := NewLoader()

	if err := loader.LoadEnv("DATACHAT_"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := loader.Unmarshal(cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults 应用默认配置值
func applyDefaults(cfg *Config) {
	// LLM 默认值
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}

	// Dataset 默认值
	if cfg.Dataset.FetchTimeout == 0 {
		cfg.Dataset.FetchTimeout = 60 * time.Second
	}
	if cfg.Dataset.Preset == "" {
		cfg.Dataset.Preset = PresetEnergy
	}

	// Context 默认值
	// MaxTokens 不设默认值：Token 预算默认关闭，只按行数上限裁剪
	if cfg.Context.MaxRows == 0 {
		cfg.Context.MaxRows = 50
	}

	// Session 默认值
	if cfg.Session.MaxHistoryMessages == 0 {
		cfg.Session.MaxHistoryMessages = 10
	}
	if cfg.Session.TurnTimeout == 0 {
		cfg.Session.TurnTimeout = 2 * time.Minute
	}

	// Observability 默认值
	if cfg.Observability.SampleRate == 0 {
		cfg.Observability.SampleRate = 1.0
	}
}
