package config

import "errors"

// 配置验证相关错误
var (
	// ErrModelRequired 模型名称必填
	ErrModelRequired = errors.New("model name is required")
	// ErrInvalidTimeout 超时时间无效
	ErrInvalidTimeout = errors.New("invalid timeout value")
	// ErrInvalidTemperature 温度值无效
	ErrInvalidTemperature = errors.New("temperature must be between 0 and 2")
	// ErrUnknownPreset 未知的数据集预设
	ErrUnknownPreset = errors.New("unknown dataset preset")
	// ErrInvalidMaxRows 行数上限无效
	ErrInvalidMaxRows = errors.New("max rows must be non-negative")
	// ErrInvalidMaxTokens Token 数无效
	ErrInvalidMaxTokens = errors.New("max tokens must be non-negative")
)
