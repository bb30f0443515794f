package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// GenerateStream 生成响应（流式）
func (c *OpenAIClient) GenerateStream(ctx context.Context, req Request) (<-chan StreamChunk, <-chan error) {
	return streamChatCompletion(ctx, c.client, req, c.options)
}

// streamChatCompletion 流式处理兼容 OpenAI 的聊天补全
//
// 生产端 goroutine 向 chunk channel 递增写入文本片段；
// 正常结束发送 Done=true 的终止块，错误终止写入 error channel。
// 两种终止方式互斥，消费者据此区分正常完成与错误中断。
func streamChatCompletion(ctx context.Context, client *openai.Client, req Request, options *Options) (<-chan StreamChunk, <-chan error) {
	chunkChan := make(chan StreamChunk, 10)
	errChan := make(chan error, 1)

	go func() {
		defer close(chunkChan)
		defer close(errChan)

		chatReq := buildChatRequest(req, options)
		chatReq.Stream = true

		stream, err := client.CreateChatCompletionStream(ctx, chatReq)
		if err != nil {
			errChan <- mapOpenAIError(err)
			return
		}
		defer stream.Close()

		for {
			response, err := stream.Recv()
			if err != nil {
				if err.Error() == "EOF" {
					// 流正常结束
					chunkChan <- StreamChunk{Done: true, FinishReason: "stop"}
					return
				}
				errChan <- mapOpenAIError(err)
				return
			}

			if len(response.Choices) == 0 {
				continue
			}

			choice := response.Choices[0]

			if choice.Delta.Content != "" {
				select {
				case chunkChan <- StreamChunk{Content: choice.Delta.Content}:
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				}
			}

			if choice.FinishReason != "" {
				chunkChan <- StreamChunk{
					Done:         true,
					FinishReason: string(choice.FinishReason),
				}
				return
			}
		}
	}()

	return chunkChan, errChan
}
