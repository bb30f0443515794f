package message

// TokenUsage 补全服务报告的 Token 用量
//
// 字段随流式响应的末块或非流式响应一并返回，未报告时为零值。
type TokenUsage struct {
	// PromptTokens 指令串与历史消息消耗的 Token 数
	PromptTokens int `json:"prompt_tokens"`
	// CompletionTokens 生成回答消耗的 Token 数
	CompletionTokens int `json:"completion_tokens"`
	// TotalTokens 总 Token 数
	TotalTokens int `json:"total_tokens"`
}

// Add 累加另一次调用的用量，跨回合统计会话总量
//
// 服务端未给出总数时按两部分之和补齐。
func (t *TokenUsage) Add(other TokenUsage) {
	t.PromptTokens += other.PromptTokens
	t.CompletionTokens += other.CompletionTokens
	if other.TotalTokens > 0 {
		t.TotalTokens += other.TotalTokens
	} else {
		t.TotalTokens += other.PromptTokens + other.CompletionTokens
	}
}

// Reported 返回服务端是否报告了用量
func (t *TokenUsage) Reported() bool {
	return t.TotalTokens > 0 || t.PromptTokens > 0 || t.CompletionTokens > 0
}
