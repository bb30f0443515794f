package otel

// 预定义的指标名称
// 遵循 OpenTelemetry 语义约定
const (
	// 数据集指标
	MetricDatasetLoads        = "dataset.loads"         // 计数器: 数据集加载次数
	MetricDatasetLoadDuration = "dataset.load.duration" // 直方图: 数据集加载时间(ms)
	MetricDatasetRows         = "dataset.rows"          // 直方图: 清洗后数据集行数
	MetricDatasetCacheHits    = "dataset.cache.hits"    // 计数器: 快照缓存命中次数
	MetricDatasetLoadErrors   = "dataset.load.errors"   // 计数器: 数据集加载失败次数

	// 上下文选择指标
	MetricContextSelections  = "context.selections"    // 计数器: 上下文选择次数
	MetricContextRows        = "context.rows.selected" // 直方图: 选入上下文的行数
	MetricContextTruncations = "context.truncations"   // 计数器: 超出上限被裁剪的次数

	// LLM 指标
	MetricLLMRequests         = "llm.requests"          // 计数器: LLM 请求次数
	MetricLLMRequestDuration  = "llm.request.duration"  // 直方图: LLM 请求时间(ms)
	MetricLLMTokensPrompt     = "llm.tokens.prompt"     // 计数器: Prompt Token 总数
	MetricLLMTokensCompletion = "llm.tokens.completion" // 计数器: Completion Token 总数
	MetricLLMErrors           = "llm.errors"            // 计数器: LLM 错误次数

	// 会话指标
	MetricChatTurns        = "chat.turns"         // 计数器: 完成的对话回合数
	MetricChatTurnDuration = "chat.turn.duration" // 直方图: 单轮对话时间(ms)
	MetricChatRejectedBusy = "chat.rejected.busy" // 计数器: 因在途补全被拒绝的提交数
	MetricChatErrors       = "chat.errors"        // 计数器: 对话回合失败次数
)

// MetricUnit 指标单位
type MetricUnit string

const (
	UnitNone         MetricUnit = ""
	UnitMilliseconds MetricUnit = "ms"
	UnitCount        MetricUnit = "1"
)

// MetricDescription 指标描述
type MetricDescription struct {
	Name        string
	Description string
	Unit        MetricUnit
	Type        string // counter, histogram
}

// PredefinedMetrics 预定义指标列表
var PredefinedMetrics = []MetricDescription{
	{MetricDatasetLoads, "Number of dataset loads", UnitCount, "counter"},
	{MetricDatasetLoadDuration, "Duration of dataset loads", UnitMilliseconds, "histogram"},
	{MetricDatasetRows, "Number of rows after cleaning", UnitCount, "histogram"},
	{MetricDatasetCacheHits, "Number of snapshot cache hits", UnitCount, "counter"},
	{MetricDatasetLoadErrors, "Number of failed dataset loads", UnitCount, "counter"},

	{MetricContextSelections, "Number of context selections", UnitCount, "counter"},
	{MetricContextRows, "Number of rows selected into context", UnitCount, "histogram"},
	{MetricContextTruncations, "Number of selections that exceeded the row cap", UnitCount, "counter"},

	{MetricLLMRequests, "Number of LLM requests", UnitCount, "counter"},
	{MetricLLMRequestDuration, "Duration of LLM requests", UnitMilliseconds, "histogram"},
	{MetricLLMTokensPrompt, "Number of prompt tokens", UnitCount, "counter"},
	{MetricLLMTokensCompletion, "Number of completion tokens", UnitCount, "counter"},
	{MetricLLMErrors, "Number of LLM errors", UnitCount, "counter"},

	{MetricChatTurns, "Number of completed chat turns", UnitCount, "counter"},
	{MetricChatTurnDuration, "Duration of chat turns", UnitMilliseconds, "histogram"},
	{MetricChatRejectedBusy, "Number of submissions rejected while busy", UnitCount, "counter"},
	{MetricChatErrors, "Number of failed chat turns", UnitCount, "counter"},
}
