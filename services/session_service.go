package services

import (
	"context"
	"errors"
	"time"

	"vehicle-catalog-api/types"
	"vehicle-catalog-api/utils"

	"go.uber.org/zap"
)

// MessageSelectionState 推送的会话状态消息类型
const MessageSelectionState = "selection_state"

// errUnchanged 校验后选择未变化，不更新会话
var errUnchanged = errors.New("selection unchanged")

// SessionView 会话状态及当前可选项
type SessionView struct {
	utils.SelectionSession
	Options types.OptionSet `json:"options"`
}

// SessionService 选择会话：每次修改后校验选择并推送到WebSocket
type SessionService struct {
	selector  *SelectorService
	sessions  *utils.SessionManager
	wsManager *utils.WebSocketManager
}

// NewSessionService 创建会话服务
func NewSessionService(selector *SelectorService, sessions *utils.SessionManager, wsManager *utils.WebSocketManager) *SessionService {
	return &SessionService{
		selector:  selector,
		sessions:  sessions,
		wsManager: wsManager,
	}
}

// Create 以初始选择创建会话
func (s *SessionService) Create(ctx context.Context, initial types.SelectionState) (*SessionView, error) {
	result, err := s.selector.Reconcile(ctx, initial)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.CreateSession(result.Selection, result.Cleared)
	if err != nil {
		return nil, err
	}
	return &SessionView{SelectionSession: session, Options: result.Options}, nil
}

// Get 获取会话；目录数据变化使选择失效时清除并保存，随后推送新状态
func (s *SessionService) Get(ctx context.Context, id string) (*SessionView, error) {
	var options types.OptionSet
	changed := true
	session, err := s.sessions.UpdateSession(id, func(session *utils.SelectionSession) error {
		result, err := s.selector.Reconcile(ctx, session.Selection)
		if err != nil {
			return err
		}
		options = result.Options
		if len(result.Cleared) == 0 {
			return errUnchanged
		}
		session.Selection = result.Selection
		session.Cleared = result.Cleared
		return nil
	})
	if errors.Is(err, errUnchanged) {
		changed = false
	} else if err != nil {
		return nil, err
	}

	view := &SessionView{SelectionSession: session, Options: options}
	if changed {
		s.push(view)
	}
	return view, nil
}

// Update 应用用户修改并校验，结果推送给会话的WebSocket连接
func (s *SessionService) Update(ctx context.Context, id string, patch map[string]*int) (*SessionView, error) {
	var options types.OptionSet
	session, err := s.sessions.UpdateSession(id, func(session *utils.SelectionSession) error {
		next, err := session.Selection.Apply(patch)
		if err != nil {
			return err
		}
		result, err := s.selector.Reconcile(ctx, next)
		if err != nil {
			return err
		}
		session.Selection = result.Selection
		session.Cleared = result.Cleared
		options = result.Options
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := &SessionView{SelectionSession: session, Options: options}
	s.push(view)
	return view, nil
}

// push 按版本推送，晚到的旧版本由连接丢弃
func (s *SessionService) push(view *SessionView) {
	s.wsManager.SendMessage(view.ID, utils.WSMessage{
		Type:    MessageSelectionState,
		Version: view.Version,
		Data:    view,
	})
}

// Delete 删除会话
func (s *SessionService) Delete(id string) error {
	if !s.sessions.RemoveSession(id) {
		return utils.ErrSessionNotFound
	}
	s.wsManager.DropSession(id)
	return nil
}

// Exists 会话是否存在
func (s *SessionService) Exists(id string) bool {
	_, ok := s.sessions.GetSession(id)
	return ok
}

// RunCleanup 定期清理过期会话，直到 ctx 结束
func (s *SessionService) RunCleanup(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup(maxAge)
		}
	}
}

// Cleanup 清理过期会话，返回清理数量
func (s *SessionService) Cleanup(maxAge time.Duration) int {
	removed := s.sessions.CleanupExpired(maxAge)
	for _, id := range removed {
		s.wsManager.DropSession(id)
	}
	if len(removed) > 0 {
		utils.Logger().Debug("selection sessions cleaned up", zap.Strings("sessions", removed))
	}
	return len(removed)
}
