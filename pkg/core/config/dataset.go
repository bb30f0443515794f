package config

import "time"

// 内置数据集预设
const (
	// PresetEnergy OWID 能源消费数据集
	PresetEnergy = "energy"
	// PresetMovies 电影评分数据集
	PresetMovies = "movies"
)

// DatasetConfig 数据集配置
type DatasetConfig struct {
	// Preset 数据集预设名称（energy 或 movies）
	Preset string `koanf:"preset"`
	// SourceURL 数据源地址（覆盖预设默认值）
	SourceURL string `koanf:"source_url"`
	// FallbackPath 本地降级文件路径
	FallbackPath string `koanf:"fallback_path"`
	// CachePath SQLite 快照缓存路径（为空则禁用缓存）
	CachePath string `koanf:"cache_path"`
	// FetchTimeout 数据源抓取超时
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
}

// Validate 验证数据集配置
func (c *DatasetConfig) Validate() error {
	switch c.Preset {
	case "", PresetEnergy, PresetMovies:
	default:
		return ErrUnknownPreset
	}
	if c.FetchTimeout < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// ContextConfig 上下文选择配置
type ContextConfig struct {
	// MaxRows 上下文子集的行数上限
	// 默认: 50
	MaxRows int `koanf:"max_rows"`
	// MaxTokens 序列化数据块的 Token 预算（0 表示仅按行数截断）
	MaxTokens int `koanf:"max_tokens"`
}

// Validate 验证上下文配置
func (c *ContextConfig) Validate() error {
	if c.MaxRows < 0 {
		return ErrInvalidMaxRows
	}
	if c.MaxTokens < 0 {
		return ErrInvalidMaxTokens
	}
	return nil
}
