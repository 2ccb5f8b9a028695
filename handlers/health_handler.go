package handlers

import (
	"vehicle-catalog-api/database"
	"vehicle-catalog-api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler 健康检查
type HealthHandler struct {
	db       *gorm.DB
	sessions *utils.SessionManager
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(db *gorm.DB, sessions *utils.SessionManager) *HealthHandler {
	return &HealthHandler{
		db:       db,
		sessions: sessions,
	}
}

// Health 检查数据库连接
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.Ping(h.db.WithContext(c.Request.Context())); err != nil {
		utils.Logger().Error("database ping failed", zap.Error(err))
		utils.ServiceUnavailable(c, "数据库不可用")
		return
	}

	utils.Success(c, gin.H{
		"database":     "ok",
		"sessions":     h.sessions.GetSessionCount(),
		"max_sessions": h.sessions.GetMaxSessions(),
	}, "服务正常")
}
