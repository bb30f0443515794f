package otel

import (
	"context"
	"time"

	"github.com/easyops/datachat-go/pkg/core/llm"
	"github.com/easyops/datachat-go/pkg/core/message"
	"go.opentelemetry.io/otel/attribute"
)

// TracedProvider 为补全服务客户端包装追踪与指标
type TracedProvider struct {
	provider llm.Provider
	tracer   Tracer
	metrics  Metrics
}

// TracedProviderOption 配置 TracedProvider
type TracedProviderOption func(*TracedProvider)

// WithTracedProviderTracer 设置追踪器
func WithTracedProviderTracer(tracer Tracer) TracedProviderOption {
	return func(p *TracedProvider) {
		p.tracer = tracer
	}
}

// WithTracedProviderMetrics 设置指标收集器
func WithTracedProviderMetrics(metrics Metrics) TracedProviderOption {
	return func(p *TracedProvider) {
		p.metrics = metrics
	}
}

// NewTracedProvider 创建带追踪的补全服务包装
func NewTracedProvider(provider llm.Provider, opts ...TracedProviderOption) *TracedProvider {
	tp := &TracedProvider{
		provider: provider,
		tracer:   NewNoopTracer(),
		metrics:  NewNoopMetrics(),
	}

	for _, opt := range opts {
		opt(tp)
	}

	return tp
}

// Generate 带追踪的同步补全
func (p *TracedProvider) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	ctx, span := p.tracer.Start(ctx, "llm.generate",
		WithSpanKind(SpanKindClient),
		WithAttributes(
			LLMProvider(p.provider.Name()),
			LLMModel(p.provider.Model()),
		),
	)
	defer span.End()

	startTime := time.Now()
	resp, err := p.provider.Generate(ctx, req)
	duration := time.Since(startTime)

	p.recordMetrics(ctx, resp, err, duration)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(StatusError, err.Error())
		return resp, err
	}

	span.SetAttributes(LLMTokens(
		resp.TokenUsage.PromptTokens,
		resp.TokenUsage.CompletionTokens,
		resp.TokenUsage.TotalTokens,
	)...)
	span.AddEvent("llm.response",
		attribute.String("finish_reason", resp.FinishReason),
	)
	span.SetStatus(StatusOK, "")

	return resp, nil
}

// GenerateStream 带追踪的流式补全
//
// 包装通道以观察流的终止方式：正常结束记成功，错误终止记失败。
func (p *TracedProvider) GenerateStream(ctx context.Context, req llm.Request) (<-chan llm.StreamChunk, <-chan error) {
	ctx, span := p.tracer.Start(ctx, "llm.generate_stream",
		WithSpanKind(SpanKindClient),
		WithAttributes(
			LLMProvider(p.provider.Name()),
			LLMModel(p.provider.Model()),
		),
	)

	chunkCh, errCh := p.provider.GenerateStream(ctx, req)

	tracedChunkCh := make(chan llm.StreamChunk)
	tracedErrCh := make(chan error, 1)

	go func() {
		defer close(tracedChunkCh)
		defer close(tracedErrCh)
		defer span.End()

		startTime := time.Now()
		var lastChunk llm.StreamChunk

		finishError := func(err error) {
			span.RecordError(err)
			span.SetStatus(StatusError, err.Error())
			p.metrics.Counter(MetricLLMRequests).Add(ctx, 1,
				NewAttr("provider", p.provider.Name()),
				NewAttr("model", p.provider.Model()),
				NewAttr("status", "error"),
			)
			p.metrics.Counter(MetricLLMErrors).Add(ctx, 1,
				NewAttr("provider", p.provider.Name()),
				NewAttr("model", p.provider.Model()),
			)
			tracedErrCh <- err
		}

		finishSuccess := func() {
			duration := time.Since(startTime)
			if lastChunk.TokenUsage != nil {
				span.SetAttributes(LLMTokens(
					lastChunk.TokenUsage.PromptTokens,
					lastChunk.TokenUsage.CompletionTokens,
					lastChunk.TokenUsage.TotalTokens,
				)...)
				p.metrics.Counter(MetricLLMTokensPrompt).Add(ctx, int64(lastChunk.TokenUsage.PromptTokens),
					NewAttr("provider", p.provider.Name()),
					NewAttr("model", p.provider.Model()),
				)
				p.metrics.Counter(MetricLLMTokensCompletion).Add(ctx, int64(lastChunk.TokenUsage.CompletionTokens),
					NewAttr("provider", p.provider.Name()),
					NewAttr("model", p.provider.Model()),
				)
			}
			p.metrics.Counter(MetricLLMRequests).Add(ctx, 1,
				NewAttr("provider", p.provider.Name()),
				NewAttr("model", p.provider.Model()),
				NewAttr("status", "success"),
			)
			p.metrics.Histogram(MetricLLMRequestDuration).Record(ctx, duration.Seconds()*1000,
				NewAttr("provider", p.provider.Name()),
				NewAttr("model", p.provider.Model()),
			)
			span.SetStatus(StatusOK, "")
		}

		for {
			select {
			case chunk, ok := <-chunkCh:
				if !ok {
					// 片段通道关闭后仍可能有挂起的错误，以它裁定终止方式
					if errCh != nil {
						if err, ok := <-errCh; ok && err != nil {
							finishError(err)
							return
						}
					}
					finishSuccess()
					return
				}
				lastChunk = chunk
				// 消费方弃读时随上下文退出，不阻塞在转发上
				select {
				case tracedChunkCh <- chunk:
				case <-ctx.Done():
					span.RecordError(ctx.Err())
					span.SetStatus(StatusError, ctx.Err().Error())
					return
				}

			case err, ok := <-errCh:
				if ok && err != nil {
					finishError(err)
					return
				}
				// 错误通道已关闭且无错误：继续转发剩余片段
				errCh = nil
			}
		}
	}()

	return tracedChunkCh, tracedErrCh
}

// Name 返回提供商名称
func (p *TracedProvider) Name() string {
	return p.provider.Name()
}

// Model 返回模型名称
func (p *TracedProvider) Model() string {
	return p.provider.Model()
}

// Close 关闭底层客户端
func (p *TracedProvider) Close() error {
	return p.provider.Close()
}

// recordMetrics 记录同步补全指标
func (p *TracedProvider) recordMetrics(ctx context.Context, resp llm.Response, err error, duration time.Duration) {
	if err != nil {
		p.metrics.Counter(MetricLLMRequests).Add(ctx, 1,
			NewAttr("provider", p.provider.Name()),
			NewAttr("model", p.provider.Model()),
			NewAttr("status", "error"),
		)
		p.metrics.Counter(MetricLLMErrors).Add(ctx, 1,
			NewAttr("provider", p.provider.Name()),
			NewAttr("model", p.provider.Model()),
		)
	} else {
		p.metrics.Counter(MetricLLMRequests).Add(ctx, 1,
			NewAttr("provider", p.provider.Name()),
			NewAttr("model", p.provider.Model()),
			NewAttr("status", "success"),
		)
		p.metrics.Counter(MetricLLMTokensPrompt).Add(ctx, int64(resp.TokenUsage.PromptTokens),
			NewAttr("provider", p.provider.Name()),
			NewAttr("model", p.provider.Model()),
		)
		p.metrics.Counter(MetricLLMTokensCompletion).Add(ctx, int64(resp.TokenUsage.CompletionTokens),
			NewAttr("provider", p.provider.Name()),
			NewAttr("model", p.provider.Model()),
		)
	}

	p.metrics.Histogram(MetricLLMRequestDuration).Record(ctx, duration.Seconds()*1000,
		NewAttr("provider", p.provider.Name()),
		NewAttr("model", p.provider.Model()),
	)
}

// TurnTracer 为一轮问答提供追踪辅助
type TurnTracer struct {
	tracer  Tracer
	metrics Metrics
}

// NewTurnTracer 创建对话回合追踪器
func NewTurnTracer(tracer Tracer, metrics Metrics) *TurnTracer {
	if tracer == nil {
		tracer = NewNoopTracer()
	}
	if metrics == nil {
		metrics = NewNoopMetrics()
	}
	return &TurnTracer{
		tracer:  tracer,
		metrics: metrics,
	}
}

// StartTurn 开始一轮问答的 Span
func (tt *TurnTracer) StartTurn(ctx context.Context, sessionID string) (context.Context, Span) {
	return tt.tracer.Start(ctx, "chat.turn",
		WithSpanKind(SpanKindInternal),
		WithAttributes(
			SessionID(sessionID),
		),
	)
}

// RecordSelection 记录上下文选择事件
func (tt *TurnTracer) RecordSelection(ctx context.Context, mode string, rows int, truncated bool) {
	span := tt.tracer.SpanFromContext(ctx)
	span.AddEvent("context.selected",
		ContextMode(mode),
		ContextRows(rows),
		attribute.Bool(AttrContextTruncated, truncated),
	)

	tt.metrics.Counter(MetricContextSelections).Add(ctx, 1,
		NewAttr("mode", mode),
	)
	tt.metrics.Histogram(MetricContextRows).Record(ctx, float64(rows),
		NewAttr("mode", mode),
	)
	if truncated {
		tt.metrics.Counter(MetricContextTruncations).Add(ctx, 1,
			NewAttr("mode", mode),
		)
	}
}

// RecordTokenUsage 记录 Token 用量指标
func (tt *TurnTracer) RecordTokenUsage(ctx context.Context, usage message.TokenUsage, provider, model string) {
	tt.metrics.Counter(MetricLLMTokensPrompt).Add(ctx, int64(usage.PromptTokens),
		NewAttr("provider", provider),
		NewAttr("model", model),
	)
	tt.metrics.Counter(MetricLLMTokensCompletion).Add(ctx, int64(usage.CompletionTokens),
		NewAttr("provider", provider),
		NewAttr("model", model),
	)
}

// FinishTurn 结束一轮问答的 Span 并记录回合指标
func (tt *TurnTracer) FinishTurn(ctx context.Context, span Span, err error, durationMs int64) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(StatusError, err.Error())
		tt.metrics.Counter(MetricChatErrors).Add(ctx, 1)
	} else {
		span.SetStatus(StatusOK, "")
		tt.metrics.Counter(MetricChatTurns).Add(ctx, 1)
	}
	tt.metrics.Histogram(MetricChatTurnDuration).Record(ctx, float64(durationMs))
	span.SetAttributes(attribute.Int64("duration_ms", durationMs))
	span.End()
}

// compile-time interface check
var _ llm.Provider = (*TracedProvider)(nil)
