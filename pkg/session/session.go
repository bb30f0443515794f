package session

import (
	"sync"

	"github.com/google/uuid"
)

// Session 表示一个用户会话
//
// 对话日志归会话所有，不使用环境全局状态。
// 同一会话同一时刻至多一轮补全在途：忙时新提交被拒绝而非排队。
// End 之后会话不再接受提交。
type Session struct {
	id  string
	log *Log

	mu     sync.Mutex
	busy   bool
	closed bool
}

// NewSession 创建新会话
func NewSession() *Session {
	return &Session{
		id:  uuid.NewString(),
		log: NewLog(),
	}
}

// ID 返回会话标识
func (s *Session) ID() string {
	return s.id
}

// Log 返回会话的对话日志
func (s *Session) Log() *Log {
	return s.log
}

// tryAcquire 尝试占用会话的在途槽位
func (s *Session) tryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy || s.closed {
		return false
	}
	s.busy = true
	return true
}

// release 释放在途槽位
func (s *Session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
}

// Busy 返回会话是否有一轮补全在途
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Closed 返回会话是否已结束
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// End 结束会话并清空对话日志，之后的提交被拒绝
func (s *Session) End() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.log.Clear()
}
