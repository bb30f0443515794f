package context

// Config 保存上下文选择的配置。
type Config struct {
	// MaxRows 子集行数上限 C。
	// 默认值为 50。
	MaxRows int

	// MaxTokens 序列化数据块的 Token 预算。
	// 0 表示禁用 Token 截断，仅按行数截断。
	MaxTokens int

	// TokenCounter 是要使用的 Token 计数器。
	TokenCounter TokenCounter
}

// ConfigOption 配置 Config。
type ConfigOption func(*Config)

// WithMaxRows 设置子集行数上限。
func WithMaxRows(n int) ConfigOption {
	return func(c *Config) {
		c.MaxRows = n
	}
}

// WithMaxTokens 设置数据块 Token 预算。
func WithMaxTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// WithTokenCounter 设置 Token 计数器。
func WithTokenCounter(counter TokenCounter) ConfigOption {
	return func(c *Config) {
		c.TokenCounter = counter
	}
}

// DefaultConfig 返回具有合理默认值的 Config。
func DefaultConfig() *Config {
	return &Config{
		MaxRows:   50,
		MaxTokens: 0,
		// 需要时使用 DefaultTokenCounter()
		TokenCounter: nil,
	}
}

// NewConfig 使用给定的选项创建新的 Config。
func NewConfig(opts ...ConfigOption) *Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetTokenCounter 返回配置的 Token 计数器或默认计数器。
func (c *Config) GetTokenCounter() TokenCounter {
	if c.TokenCounter != nil {
		return c.TokenCounter
	}
	return DefaultTokenCounter()
}

// HalfK 返回聚合模式下每个排序键的采样量 K = C/2。
func (c *Config) HalfK() int {
	k := c.MaxRows / 2
	if k < 1 {
		k = 1
	}
	return k
}
