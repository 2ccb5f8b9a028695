package utils

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     = zap.NewNop()
	loggerLock sync.RWMutex
)

// InitLogger 按运行模式初始化全局日志：debug 模式输出可读格式，其余使用JSON
func InitLogger(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	if mode == "debug" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetLogger(l)
	return l, nil
}

// SetLogger 替换全局日志（测试中使用 zap.NewNop）
func SetLogger(l *zap.Logger) {
	loggerLock.Lock()
	defer loggerLock.Unlock()
	logger = l
}

// Logger 获取全局日志
func Logger() *zap.Logger {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	return logger
}
