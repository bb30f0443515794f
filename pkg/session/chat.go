package session

import (
	stdctx "context"
	"time"

	datacontext "github.com/easyops/datachat-go/pkg/context"
	"github.com/easyops/datachat-go/pkg/core/config"
	"github.com/easyops/datachat-go/pkg/core/errors"
	"github.com/easyops/datachat-go/pkg/core/llm"
	"github.com/easyops/datachat-go/pkg/core/message"
	"github.com/easyops/datachat-go/pkg/dataset"
	"github.com/easyops/datachat-go/pkg/otel"
)

// ChatService 编排一轮问答：加载数据、过滤、选上下文、组装提示词、流式补全
type ChatService struct {
	cfg      *config.Config
	provider llm.Provider
	store    *dataset.Store
	selector *datacontext.Selector
	builder  *datacontext.PromptBuilder

	logger otel.Logger
	turns  *otel.TurnTracer
}

// ChatOption 配置 ChatService
type ChatOption func(*ChatService)

// WithLogger 设置日志器
func WithLogger(logger otel.Logger) ChatOption {
	return func(c *ChatService) {
		c.logger = logger
	}
}

// WithTurnTracer 设置对话回合追踪器
func WithTurnTracer(turns *otel.TurnTracer) ChatOption {
	return func(c *ChatService) {
		c.turns = turns
	}
}

// WithSelector 覆盖上下文选择器
func WithSelector(selector *datacontext.Selector) ChatOption {
	return func(c *ChatService) {
		c.selector = selector
	}
}

// WithPromptBuilder 覆盖提示词构建器
func WithPromptBuilder(builder *datacontext.PromptBuilder) ChatOption {
	return func(c *ChatService) {
		c.builder = builder
	}
}

// NewChatService 创建问答编排服务
func NewChatService(cfg *config.Config, provider llm.Provider, store *dataset.Store, opts ...ChatOption) *ChatService {
	c := &ChatService{
		cfg:      cfg,
		provider: provider,
		store:    store,
		logger:   otel.NewNoopLogger(),
		turns:    otel.NewTurnTracer(nil, nil),
	}

	selectorOpts := make([]datacontext.ConfigOption, 0, 2)
	if cfg != nil && cfg.Context.MaxRows > 0 {
		selectorOpts = append(selectorOpts, datacontext.WithMaxRows(cfg.Context.MaxRows))
	}
	if cfg != nil && cfg.Context.MaxTokens > 0 {
		selectorOpts = append(selectorOpts, datacontext.WithMaxTokens(cfg.Context.MaxTokens))
	}
	c.selector = datacontext.NewSelector(datacontext.NewConfig(selectorOpts...))

	domain := datacontext.DomainEnergy
	if cfg != nil && cfg.Dataset.Preset == config.PresetMovies {
		domain = datacontext.DomainFilm
	}
	c.builder = datacontext.NewPromptBuilder(datacontext.WithDomain(domain))

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Ask 执行一轮问答
//
// 凭据缺失在触达补全服务之前就失败；会话忙时直接拒绝。
// 流式失败时不产生对话回合，用户消息与助手消息要么同时入日志要么都不入。
func (c *ChatService) Ask(ctx stdctx.Context, sess *Session, criteria dataset.Criteria, question string, sink Sink) (message.Message, error) {
	var zero message.Message

	if question == "" {
		return zero, message.ErrEmptyContent
	}
	// 凭据前置检查：不发起任何网络调用
	if c.cfg == nil || c.cfg.LLM.APIKey == "" {
		return zero, errors.ErrMissingAPIKey
	}
	if c.provider == nil {
		return zero, errors.ErrMissingAPIKey
	}

	if sess.Closed() {
		return zero, errors.ErrSessionClosed
	}
	if !sess.tryAcquire() {
		otel.GetMetrics().Counter(otel.MetricChatRejectedBusy).Add(ctx, 1)
		return zero, errors.ErrSessionBusy
	}
	defer sess.release()

	if c.cfg.Session.TurnTimeout > 0 {
		var cancel stdctx.CancelFunc
		ctx, cancel = stdctx.WithTimeout(ctx, c.cfg.Session.TurnTimeout)
		defer cancel()
	}

	ctx, span := c.turns.StartTurn(ctx, sess.ID())
	startTime := time.Now()

	answer, err := c.runTurn(ctx, sess, criteria, question, sink)
	c.turns.FinishTurn(ctx, span, err, time.Since(startTime).Milliseconds())
	if err != nil {
		c.logger.WithContext(ctx).Error("chat turn failed",
			"session_id", sess.ID(),
			"error", err,
		)
		return zero, err
	}

	return answer, nil
}

// runTurn 执行回合主体，返回成功时的助手消息
func (c *ChatService) runTurn(ctx stdctx.Context, sess *Session, criteria dataset.Criteria, question string, sink Sink) (message.Message, error) {
	var zero message.Message

	table, err := c.store.Get(ctx)
	if err != nil {
		return zero, err
	}

	if err := criteria.Validate(table); err != nil {
		return zero, err
	}

	rows := dataset.Apply(table, criteria)
	mode := datacontext.ModeFor(criteria)
	subset := c.selector.Select(rows, table.Schema, mode)
	c.turns.RecordSelection(ctx, string(mode), subset.Len(), subset.Note != "")

	desc := datacontext.DescribeCriteria(criteria, table.Schema)
	instruction := c.builder.Build(desc, subset)

	msgs := make([]message.Message, 0, c.cfg.Session.MaxHistoryMessages+2)
	msgs = append(msgs, message.NewSystemMessage(instruction))
	msgs = append(msgs, sess.Log().History(c.cfg.Session.MaxHistoryMessages)...)
	userMsg := message.NewUserMessage(question)
	msgs = append(msgs, userMsg)

	c.logger.WithContext(ctx).Debug("submitting completion request",
		"session_id", sess.ID(),
		"context_rows", subset.Len(),
		"history_messages", len(msgs)-2,
	)

	chunks, errs := c.provider.GenerateStream(ctx, llm.Request{Messages: msgs})
	answer, err := Consume(ctx, chunks, errs, sink)
	if err != nil {
		// 部分响应已在 Consume 内丢弃，本轮不产生任何对话回合
		return zero, err
	}

	assistantMsg := message.NewAssistantMessage(answer)
	if err := sess.Log().Append(userMsg); err != nil {
		return zero, err
	}
	if err := sess.Log().Append(assistantMsg); err != nil {
		return zero, err
	}

	return assistantMsg, nil
}
