package llm

import (
	"context"

	"github.com/easyops/datachat-go/pkg/core/errors"
	openai "github.com/sashabaranov/go-openai"
)

// GeminiClient Gemini 补全客户端
//
// Gemini 提供 OpenAI 兼容的 API，基于 OpenAI SDK 实现。
// 默认使用 flash 档位的模型。
type GeminiClient struct {
	client  *openai.Client
	options *Options
}

// NewGemini 创建 Gemini 客户端
func NewGemini(opts ...Option) (*GeminiClient, error) {
	options := DefaultOptions()
	options.BaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	options.Model = "gemini-2.0-flash"

	for _, opt := range opts {
		opt(options)
	}

	if options.APIKey == "" {
		return nil, errors.ErrMissingAPIKey
	}

	config := openai.DefaultConfig(options.APIKey)
	config.BaseURL = options.BaseURL

	return &GeminiClient{
		client:  openai.NewClientWithConfig(config),
		options: options,
	}, nil
}

// Name 返回提供商名称
func (c *GeminiClient) Name() string {
	return "gemini"
}

// Model 返回当前模型名称
func (c *GeminiClient) Model() string {
	return c.options.Model
}

// Close 关闭客户端连接
func (c *GeminiClient) Close() error {
	return nil
}

// Generate 生成响应（非流式）
func (c *GeminiClient) Generate(ctx context.Context, req Request) (Response, error) {
	chatReq := buildChatRequest(req, c.options)

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return Response{}, mapOpenAIError(err)
	}

	return parseResponse(resp), nil
}

// GenerateStream 生成响应（流式）
func (c *GeminiClient) GenerateStream(ctx context.Context, req Request) (<-chan StreamChunk, <-chan error) {
	return streamChatCompletion(ctx, c.client, req, c.options)
}

// 编译时接口检查
var (
	_ Provider = (*GeminiClient)(nil)
	_ Provider = (*OpenAIClient)(nil)
)
