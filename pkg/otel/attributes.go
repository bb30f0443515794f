package otel

import "go.opentelemetry.io/otel/attribute"

// 预定义的语义属性键
// 遵循 OpenTelemetry 语义约定
const (
	// 数据集相关属性
	AttrDatasetPreset = "dataset.preset"
	AttrDatasetRows   = "dataset.rows"
	AttrDatasetSource = "dataset.source"

	// 过滤相关属性
	AttrFilterEntity = "filter.entity"
	AttrFilterYear   = "filter.year"
	AttrFilterTags   = "filter.tags"

	// 上下文相关属性
	AttrContextMode      = "context.mode"
	AttrContextRows      = "context.rows"
	AttrContextTruncated = "context.truncated"

	// LLM 相关属性
	AttrLLMProvider         = "llm.provider"
	AttrLLMModel            = "llm.model"
	AttrLLMPromptTokens     = "llm.prompt_tokens"
	AttrLLMCompletionTokens = "llm.completion_tokens"
	AttrLLMTotalTokens      = "llm.total_tokens"

	// 会话相关属性
	AttrSessionID = "session.id"

	// Error 相关属性
	AttrErrorType    = "error.type"
	AttrErrorMessage = "error.message"
)

// DatasetPreset 创建数据集预设属性
func DatasetPreset(name string) attribute.KeyValue {
	return attribute.String(AttrDatasetPreset, name)
}

// DatasetRows 创建数据集行数属性
func DatasetRows(n int) attribute.KeyValue {
	return attribute.Int(AttrDatasetRows, n)
}

// FilterEntity 创建过滤实体属性
func FilterEntity(entity string) attribute.KeyValue {
	return attribute.String(AttrFilterEntity, entity)
}

// ContextMode 创建选择模式属性
func ContextMode(mode string) attribute.KeyValue {
	return attribute.String(AttrContextMode, mode)
}

// ContextRows 创建上下文行数属性
func ContextRows(n int) attribute.KeyValue {
	return attribute.Int(AttrContextRows, n)
}

// LLMProvider 创建 LLM 提供商属性
func LLMProvider(provider string) attribute.KeyValue {
	return attribute.String(AttrLLMProvider, provider)
}

// LLMModel 创建 LLM 模型属性
func LLMModel(model string) attribute.KeyValue {
	return attribute.String(AttrLLMModel, model)
}

// LLMTokens 创建 LLM Token 使用属性
func LLMTokens(prompt, completion, total int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrLLMPromptTokens, prompt),
		attribute.Int(AttrLLMCompletionTokens, completion),
		attribute.Int(AttrLLMTotalTokens, total),
	}
}

// SessionID 创建会话标识属性
func SessionID(id string) attribute.KeyValue {
	return attribute.String(AttrSessionID, id)
}

// ErrorAttrs 创建错误属性
func ErrorAttrs(errType, message string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrErrorType, errType),
		attribute.String(AttrErrorMessage, message),
	}
}
