package middleware

import (
	"net/http"
	"time"

	"vehicle-catalog-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader 请求ID头
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// Logger 日志中间件
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if msg := c.Errors.ByType(gin.ErrorTypePrivate).String(); msg != "" {
			fields = append(fields, zap.String("error", msg))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			utils.Logger().Error("request", fields...)
		case status >= http.StatusBadRequest:
			utils.Logger().Warn("request", fields...)
		default:
			utils.Logger().Info("request", fields...)
		}
	}
}

// ErrorHandler 错误处理中间件：处理器通过 c.Error 记录但尚未响应的错误
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last()
		utils.Logger().Error("unhandled request error",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err.Err))

		// 根据错误类型返回不同的状态码
		switch err.Type {
		case gin.ErrorTypeBind:
			utils.BadRequest(c, "请求参数错误: "+err.Error())
		default:
			utils.InternalServerError(c, err.Error())
		}
	}
}

// Recovery 恢复中间件
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.Logger().Error("panic recovered",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Any("panic", recovered))
		utils.InternalServerError(c, "服务器内部错误")
	})
}

// RequestID 请求ID中间件
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)
		c.Set(requestIDKey, requestID)
		c.Next()
	}
}
