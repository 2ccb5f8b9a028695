package utils

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeTimeout = 10 * time.Second

// WSMessage 推送给客户端的消息，Version 为会话版本
type WSMessage struct {
	Type    string      `json:"type"`
	Version int         `json:"version"`
	Data    interface{} `json:"data"`
}

type wsConnection struct {
	conn       *websocket.Conn
	writeMutex sync.Mutex // 同一连接不能并发写
	sent       int        // 已发送的最高版本，受 writeMutex 保护
}

// WebSocketManager WebSocket连接管理器，每个会话一个连接
//
// 没有连接时消息直接丢弃：客户端连接后会先收到完整的当前状态。
// 每个连接只发送比已发送版本更新的消息，旧版本晚到时被丢弃。
type WebSocketManager struct {
	connections map[string]*wsConnection
	mutex       sync.RWMutex
}

// NewWebSocketManager 创建新的WebSocket管理器
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		connections: make(map[string]*wsConnection),
	}
}

// AddConnection 添加连接；同一会话的旧连接会被关闭
func (wm *WebSocketManager) AddConnection(sessionID string, conn *websocket.Conn) {
	wc := &wsConnection{conn: conn}

	wm.mutex.Lock()
	old := wm.connections[sessionID]
	wm.connections[sessionID] = wc
	wm.mutex.Unlock()

	if old != nil {
		old.conn.Close()
	}
	Logger().Debug("websocket connection added", zap.String("session", sessionID))
}

// RemoveConnection 移除连接
func (wm *WebSocketManager) RemoveConnection(sessionID string) {
	wm.mutex.Lock()
	wc, exists := wm.connections[sessionID]
	delete(wm.connections, sessionID)
	wm.mutex.Unlock()

	if exists {
		wc.conn.Close()
		Logger().Debug("websocket connection removed", zap.String("session", sessionID))
	}
}

// ReleaseConnection 连接断开时调用，只在它仍是会话当前连接时移除
func (wm *WebSocketManager) ReleaseConnection(sessionID string, conn *websocket.Conn) {
	wm.mutex.Lock()
	wc, exists := wm.connections[sessionID]
	current := exists && wc.conn == conn
	if current {
		delete(wm.connections, sessionID)
	}
	wm.mutex.Unlock()

	conn.Close()
	if current {
		Logger().Debug("websocket connection released", zap.String("session", sessionID))
	}
}

// DropSession 会话删除或过期时关闭其连接
func (wm *WebSocketManager) DropSession(sessionID string) {
	wm.RemoveConnection(sessionID)
}

// SendMessage 发送消息到指定会话；没有连接或版本不比已发送的新时返回 false
func (wm *WebSocketManager) SendMessage(sessionID string, msg WSMessage) bool {
	wm.mutex.RLock()
	wc, exists := wm.connections[sessionID]
	wm.mutex.RUnlock()
	if !exists {
		return false
	}
	return wm.write(sessionID, wc, msg)
}

// GetConnectionCount 获取连接数量
func (wm *WebSocketManager) GetConnectionCount() int {
	wm.mutex.RLock()
	defer wm.mutex.RUnlock()
	return len(wm.connections)
}

func (wm *WebSocketManager) write(sessionID string, wc *wsConnection, msg WSMessage) bool {
	wc.writeMutex.Lock()
	defer wc.writeMutex.Unlock()

	if msg.Version <= wc.sent {
		Logger().Debug("stale websocket message dropped",
			zap.String("session", sessionID),
			zap.Int("version", msg.Version),
			zap.Int("sent", wc.sent))
		return false
	}

	wc.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := wc.conn.WriteJSON(msg); err != nil {
		Logger().Warn("websocket write failed", zap.String("session", sessionID), zap.Error(err))
		wm.mutex.Lock()
		if wm.connections[sessionID] == wc {
			delete(wm.connections, sessionID)
		}
		wm.mutex.Unlock()
		wc.conn.Close()
		return false
	}
	wc.sent = msg.Version
	return true
}
