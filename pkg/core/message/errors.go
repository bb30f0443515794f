package message

import "errors"

// 消息验证错误，写入对话日志前检出
var (
	// ErrInvalidRole 角色不在 system/user/assistant 之内
	ErrInvalidRole = errors.New("invalid message role")
	// ErrEmptyContent 消息内容为空
	ErrEmptyContent = errors.New("message content cannot be empty")
)
