// Package session 提供会话状态与一轮问答的编排
package session

import (
	"sync"

	"github.com/easyops/datachat-go/pkg/core/message"
)

// Log 会话专属的对话日志
//
// 追加式有序消息序列，由会话独占持有，仅随会话结束清空。
// 不做跨进程持久化。
type Log struct {
	turns []message.Message
	mu    sync.RWMutex
}

// NewLog 创建对话日志
func NewLog() *Log {
	return &Log{
		turns: make([]message.Message, 0),
	}
}

// Append 追加一个对话回合
func (l *Log) Append(msg message.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, msg)
	return nil
}

// History 返回最近 limit 个回合（limit<=0 返回全部）
func (l *Log) History(limit int) []message.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 || limit >= len(l.turns) {
		result := make([]message.Message, len(l.turns))
		copy(result, l.turns)
		return result
	}

	start := len(l.turns) - limit
	result := make([]message.Message, limit)
	copy(result, l.turns[start:])
	return result
}

// Len 返回当前回合数
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}

// Clear 清空日志（会话结束时调用）
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = make([]message.Message, 0)
}
