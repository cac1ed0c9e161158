// Package log 提供日志级别接口定义
//
// 📊 **日志级别管理 (Log Level Management)**
//
// - Level：日志级别枚举类型，实际定义迁至 pkg/types，配置层与接口层共用
// - 级别常量：Debug、Info、Warn、Error、Fatal
package log

import "github.com/xrpl-wasm/contracts/pkg/types"

// 兼容别名（迁至 pkg/types）
type LogLevel = types.LogLevel

// 常量别名
const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)
