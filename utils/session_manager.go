package utils

import (
	"sync"
	"time"

	"vehicle-catalog-api/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SelectionSession 一个表单的级联选择会话
type SelectionSession struct {
	ID        string               `json:"id"`
	Selection types.SelectionState `json:"selection"`
	Cleared   []string             `json:"cleared"` // 最近一次更新中被自动清除的字段
	Version   int                  `json:"version"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type sessionEntry struct {
	mutex   sync.Mutex
	session SelectionSession
}

// SessionManager 会话管理器
type SessionManager struct {
	sessions map[string]*sessionEntry
	mutex    sync.RWMutex
	// 限制同时存在的会话数量
	maxSessions int32
	now         func() time.Time
}

// NewSessionManager 创建新的会话管理器
func NewSessionManager(maxSessions int32) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*sessionEntry),
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// CreateSession 创建新会话
func (sm *SessionManager) CreateSession(selection types.SelectionState, cleared []string) (SelectionSession, error) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	// 检查是否超过最大会话数
	if int32(len(sm.sessions)) >= sm.maxSessions {
		return SelectionSession{}, ErrTooManySessions
	}

	now := sm.now()
	entry := &sessionEntry{session: SelectionSession{
		ID:        uuid.New().String(),
		Selection: selection,
		Cleared:   cleared,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}}
	sm.sessions[entry.session.ID] = entry

	Logger().Debug("selection session created", zap.String("session", entry.session.ID))
	return entry.session, nil
}

// GetSession 获取会话副本
func (sm *SessionManager) GetSession(id string) (SelectionSession, bool) {
	entry, ok := sm.entry(id)
	if !ok {
		return SelectionSession{}, false
	}
	entry.mutex.Lock()
	defer entry.mutex.Unlock()
	return entry.session, true
}

// UpdateSession 在会话锁内执行修改；fn 返回错误时会话保持不变
func (sm *SessionManager) UpdateSession(id string, fn func(s *SelectionSession) error) (SelectionSession, error) {
	entry, ok := sm.entry(id)
	if !ok {
		return SelectionSession{}, ErrSessionNotFound
	}

	entry.mutex.Lock()
	defer entry.mutex.Unlock()

	draft := entry.session
	if err := fn(&draft); err != nil {
		return entry.session, err
	}
	draft.ID = entry.session.ID
	draft.CreatedAt = entry.session.CreatedAt
	draft.Version = entry.session.Version + 1
	draft.UpdatedAt = sm.now()
	entry.session = draft

	Logger().Debug("selection session updated",
		zap.String("session", id),
		zap.Int("version", draft.Version),
		zap.Strings("cleared", draft.Cleared))
	return draft, nil
}

// RemoveSession 删除会话
func (sm *SessionManager) RemoveSession(id string) bool {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	if _, ok := sm.sessions[id]; !ok {
		return false
	}
	delete(sm.sessions, id)
	return true
}

// CleanupExpired 清理超过 maxAge 未更新的会话，返回被清理的会话ID
func (sm *SessionManager) CleanupExpired(maxAge time.Duration) []string {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	now := sm.now()
	removed := make([]string, 0)
	for id, entry := range sm.sessions {
		entry.mutex.Lock()
		expired := now.Sub(entry.session.UpdatedAt) > maxAge
		entry.mutex.Unlock()
		if expired {
			delete(sm.sessions, id)
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		Logger().Info("expired selection sessions removed", zap.Int("count", len(removed)))
	}
	return removed
}

// GetSessionCount 获取当前会话数量
func (sm *SessionManager) GetSessionCount() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return len(sm.sessions)
}

// GetMaxSessions 获取最大会话数
func (sm *SessionManager) GetMaxSessions() int32 {
	return sm.maxSessions
}

func (sm *SessionManager) entry(id string) (*sessionEntry, bool) {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	entry, ok := sm.sessions[id]
	return entry, ok
}
