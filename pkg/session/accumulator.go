package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/easyops/datachat-go/pkg/core/errors"
	"github.com/easyops/datachat-go/pkg/core/llm"
)

// Sink 接收流式响应的单个文本片段，用于增量展示
type Sink func(fragment string)

// Consume 消费补全服务的流式响应
//
// 每个片段先转发给 sink 再拼接；流正常结束返回完整文本。
// 中途失败时丢弃已拼接的部分文本，只返回错误——调用方不得
// 把部分结果当作对话回合记录。
func Consume(ctx context.Context, chunks <-chan llm.StreamChunk, errs <-chan error, sink Sink) (string, error) {
	var full strings.Builder

	for {
		select {
		case <-ctx.Done():
			return "", errors.ErrContextCanceled

		case err, ok := <-errs:
			if ok && err != nil {
				return "", interrupted(err, full.Len())
			}
			// 错误通道已关闭且无错误：继续消费剩余片段
			errs = nil

		case chunk, ok := <-chunks:
			if !ok {
				// 片段通道关闭但未收到 Done：检查是否有挂起的错误
				if errs != nil {
					if err, ok := <-errs; ok && err != nil {
						return "", interrupted(err, full.Len())
					}
				}
				return full.String(), nil
			}

			if chunk.Content != "" {
				if sink != nil {
					sink(chunk.Content)
				}
				full.WriteString(chunk.Content)
			}

			if chunk.Done {
				return full.String(), nil
			}
		}
	}
}

// interrupted 标记已有片段到达后才失败的流
//
// 两个哨兵都可经 errors.Is 命中：中断分类与底层失败原因。
func interrupted(err error, received int) error {
	if received == 0 {
		return err
	}
	return fmt.Errorf("%w: %w", errors.ErrStreamInterrupted, err)
}
