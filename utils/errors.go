package utils

import "errors"

var (
	// ErrTooManySessions 会话数量过多错误
	ErrTooManySessions = errors.New("too many concurrent selection sessions")
	// ErrSessionNotFound 会话未找到错误
	ErrSessionNotFound = errors.New("selection session not found")
)
