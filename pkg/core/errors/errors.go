// Package errors 定义框架的通用错误类型
package errors

import (
	"errors"
	"fmt"
)

// 通用错误
var (
	// ErrContextCanceled 上下文被取消
	ErrContextCanceled = errors.New("context canceled")
)

// 数据集相关错误
var (
	// ErrDataLoad 数据源加载失败（网络或解析）
	ErrDataLoad = errors.New("dataset load failed")
	// ErrMissingColumn 数据集缺少必需列
	ErrMissingColumn = errors.New("dataset missing required column")
	// ErrEmptyDataset 数据集清洗后为空
	ErrEmptyDataset = errors.New("dataset is empty after cleaning")
	// ErrDatasetNotLoaded 数据集尚未加载
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	// ErrInvalidCriteria 过滤条件引用了未观测到的取值
	ErrInvalidCriteria = errors.New("invalid filter criteria")
)

// 补全服务相关错误
var (
	// ErrMissingAPIKey 缺少凭证（在任何网络调用之前检出）
	ErrMissingAPIKey = errors.New("missing API key")
	// ErrInvalidAPIKey 凭证无效
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrRateLimited 请求被限速
	ErrRateLimited = errors.New("rate limited")
	// ErrProviderUnavailable 补全服务不可用
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrStreamInterrupted 流式响应中途失败
	ErrStreamInterrupted = errors.New("completion stream interrupted")
)

// 会话相关错误
var (
	// ErrSessionBusy 会话已有一轮对话在进行中
	ErrSessionBusy = errors.New("session busy: a completion is already in flight")
	// ErrSessionClosed 会话已结束
	ErrSessionClosed = errors.New("session closed")
)

// WrapError 包装错误并添加上下文信息
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// IsAuthError 判断错误是否为凭证错误
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrMissingAPIKey) ||
		errors.Is(err, ErrInvalidAPIKey)
}

// IsServiceError 判断错误是否为补全服务错误
func IsServiceError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrProviderUnavailable) ||
		errors.Is(err, ErrStreamInterrupted)
}

// IsDataLoadError 判断错误是否为数据加载错误
func IsDataLoadError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrDataLoad) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrEmptyDataset)
}
