package handlers

import (
	"net/http"

	"vehicle-catalog-api/services"
	"vehicle-catalog-api/types"
	"vehicle-catalog-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 跨域由CORS中间件和网关控制
	},
}

// SessionHandler 选择会话控制器
type SessionHandler struct {
	sessionService *services.SessionService
	wsManager      *utils.WebSocketManager
}

// NewSessionHandler 创建选择会话控制器
func NewSessionHandler(sessionService *services.SessionService, wsManager *utils.WebSocketManager) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		wsManager:      wsManager,
	}
}

// CreateSession 创建会话，请求体为可选的初始选择
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var initial types.SelectionState
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&initial); err != nil {
			utils.BadRequest(c, "请求参数错误: "+err.Error())
			return
		}
	}

	view, err := h.sessionService.Create(c.Request.Context(), initial)
	if err != nil {
		respondError(c, err, "创建选择会话失败")
		return
	}
	utils.Created(c, view, "选择会话创建成功")
}

// GetSession 获取会话状态
func (h *SessionHandler) GetSession(c *gin.Context) {
	view, err := h.sessionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "获取选择会话失败")
		return
	}
	utils.Success(c, view, "获取选择会话成功")
}

// UpdateSession 修改选择，例如 {"brand_id": 3} 或 {"model_id": null}
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	var patch map[string]*int
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	view, err := h.sessionService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "更新选择会话失败")
		return
	}
	utils.Success(c, view, "选择会话更新成功")
}

// DeleteSession 删除会话
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.sessionService.Delete(c.Param("id")); err != nil {
		respondError(c, err, "删除选择会话失败")
		return
	}
	utils.Success(c, nil, "选择会话已删除")
}

// HandleWebSocket 订阅会话状态推送
// GET /ws/selection?sessionId=
func (h *SessionHandler) HandleWebSocket(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		utils.BadRequest(c, "sessionId is required")
		return
	}

	if !h.sessionService.Exists(sessionID) {
		utils.NotFound(c, utils.ErrSessionNotFound.Error())
		return
	}

	// 升级HTTP连接为WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.Logger().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.wsManager.AddConnection(sessionID, conn)
	defer h.wsManager.ReleaseConnection(sessionID, conn)

	// 连接登记后再读取状态，之后的修改都会以更高版本推送
	view, err := h.sessionService.Get(c.Request.Context(), sessionID)
	if err != nil {
		utils.Logger().Warn("websocket initial state failed", zap.String("session", sessionID), zap.Error(err))
		return
	}
	h.wsManager.SendMessage(sessionID, utils.WSMessage{
		Type:    services.MessageSelectionState,
		Version: view.Version,
		Data:    view,
	})

	// 读取消息只用于检测连接断开
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			utils.Logger().Debug("websocket closed", zap.String("session", sessionID), zap.Error(err))
			return
		}
	}
}
