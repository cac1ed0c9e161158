// Package log 定义宿主各模块共用的日志接口
//
// 实现位于 internal/core/infrastructure/log（zap + lumberjack），
// 模块日志通过 With("module", name) 派生，按模块路由到系统日志或合约日志
package log

import "go.uber.org/zap"

// Logger 定义日志记录器接口
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})

	Info(msg string)
	Infof(format string, args ...interface{})

	Warn(msg string)
	Warnf(format string, args ...interface{})

	Error(msg string)
	Errorf(format string, args ...interface{})

	// Fatal 记录后退出进程
	Fatal(msg string)
	Fatalf(format string, args ...interface{})

	// With 附加键值对字段，module 字段决定日志路由
	With(args ...interface{}) Logger

	// Sync 同步日志缓冲区到输出
	Sync() error

	// GetZapLogger 原始 zap 日志记录器（gin 中间件与 fx 事件日志使用）
	GetZapLogger() *zap.Logger
}
