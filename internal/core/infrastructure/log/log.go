// Package log 提供了一个通用的日志接口和基于zap的实现
// 它支持不同级别的日志记录、结构化日志、日志旋转等功能
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logconfig "github.com/xrpl-wasm/contracts/internal/config/log"
	logInterface "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 日志级别定义
const (
	DebugLevel = string(logInterface.DebugLevel)
	InfoLevel  = string(logInterface.InfoLevel)
	WarnLevel  = string(logInterface.WarnLevel)
	ErrorLevel = string(logInterface.ErrorLevel)
	FatalLevel = string(logInterface.FatalLevel)
)

var (
	// 全局日志实例，使用接口类型
	globalLogger logInterface.Logger
	// 用于保护全局日志实例的互斥锁
	mu sync.RWMutex
)

// Logger 是日志记录器的结构体，实现了log.Logger接口
type Logger struct {
	zapLogger *zap.Logger
	sugar     *zap.SugaredLogger
}

var _ logInterface.Logger = (*Logger)(nil)

// 初始化全局日志记录器
func init() {
	ResetDefault()
}

// ResetDefault 重置全局日志记录器为默认配置
func ResetDefault() {
	logger, err := New(logconfig.New(nil))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize default logger: %v\n", err)
		return
	}
	SetLogger(logger)
}

// Nop 返回丢弃所有输出的日志记录器，供未注入日志的组件与测试使用
func Nop() logInterface.Logger {
	zapLogger := zap.NewNop()
	return &Logger{zapLogger: zapLogger, sugar: zapLogger.Sugar()}
}

// OrNop 在 logger 为 nil 时返回 Nop()
func OrNop(logger logInterface.Logger) logInterface.Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

// ==================== 多文件路由 ====================

// moduleRoutingCore 基于 module 字段的路由 Core
// 根据日志中的 module 字段决定写入宿主日志还是合约调用日志
type moduleRoutingCore struct {
	systemCore   zapcore.Core
	businessCore zapcore.Core
	// module 由 With 固定下来的模块名；Write 阶段字段中的 module 优先
	module string
}

// Enabled 实现 zapcore.Core 接口
func (c *moduleRoutingCore) Enabled(level zapcore.Level) bool {
	return c.systemCore.Enabled(level) || c.businessCore.Enabled(level)
}

// With 实现 zapcore.Core 接口
// NewModuleLogger 通过 With 附加 module，这里记住它，后续 Write 才能路由
func (c *moduleRoutingCore) With(fields []zapcore.Field) zapcore.Core {
	module := c.module
	if m := moduleOf(fields); m != "" {
		module = m
	}
	return &moduleRoutingCore{
		systemCore:   c.systemCore.With(fields),
		businessCore: c.businessCore.With(fields),
		module:       module,
	}
}

// Check 实现 zapcore.Core 接口
func (c *moduleRoutingCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

// Write 实现 zapcore.Core 接口
func (c *moduleRoutingCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	module := c.module
	if m := moduleOf(fields); m != "" {
		module = m
	}

	switch {
	case isSystemModule(module):
		return c.systemCore.Write(entry, fields)
	case isBusinessModule(module):
		return c.businessCore.Write(entry, fields)
	default:
		// 没有 module 字段或未知 module，写入两个文件
		var errs []error
		if err := c.systemCore.Write(entry, fields); err != nil {
			errs = append(errs, err)
		}
		if err := c.businessCore.Write(entry, fields); err != nil {
			errs = append(errs, err)
		}
		if len(errs) > 0 {
			return fmt.Errorf("写入日志失败: %v", errs)
		}
		return nil
	}
}

// Sync 实现 zapcore.Core 接口
func (c *moduleRoutingCore) Sync() error {
	var errs []error
	if err := c.systemCore.Sync(); err != nil {
		errs = append(errs, err)
	}
	if err := c.businessCore.Sync(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("同步日志文件失败: %v", errs)
	}
	return nil
}

// moduleOf 取字段中的 module 值
func moduleOf(fields []zapcore.Field) string {
	for _, field := range fields {
		if field.Key != "module" {
			continue
		}
		// zap.String("module", "x") 写入 field.String，zap.Any 可能放在 Interface 中
		switch field.Type {
		case zapcore.StringType:
			return field.String
		case zapcore.StringerType:
			if s, ok := field.Interface.(fmt.Stringer); ok && s != nil {
				return s.String()
			}
		default:
			if str, ok := field.Interface.(string); ok {
				return str
			}
		}
	}
	return ""
}

// isSystemModule 判断是否为宿主基础设施模块
func isSystemModule(module string) bool {
	systemModules := map[string]bool{
		"runtime": true, // wazero 运行时与编译缓存
		"ledger":  true, // 开发账本
		"storage": true, // badger / bigcache
		"crypto":  true, // 地址编解码与密钥
		"event":   true, // 事件总线
		"config":  true,
		"system":  true, // 系统模块（通用）
	}
	return systemModules[module]
}

// isBusinessModule 判断是否为合约调用相关模块
func isBusinessModule(module string) bool {
	businessModules := map[string]bool{
		"executor": true, // 合约调用执行器
		"hostabi":  true, // host_lib 宿主函数
		"contract": true, // 合约跟踪输出
		"api":      true, // HTTP / WebSocket
		"cli":      true,
		"app":      true, // 应用层模块（通用）
	}
	return businessModules[module]
}

// createFileWriter 创建日志文件写入器
func createFileWriter(logPath string, config *logconfig.Config) zapcore.WriteSyncer {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		// 如果创建目录失败，输出到 stderr
		fmt.Fprintf(os.Stderr, "创建日志目录失败 %s: %v\n", logDir, err)
		return zapcore.AddSync(os.Stderr)
	}

	// 配置日志轮转
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    config.GetMaxSize(),           // megabytes
		MaxBackups: config.GetMaxBackups(),        // 最多保留文件数
		MaxAge:     config.GetMaxAge(),            // days
		Compress:   config.IsCompressionEnabled(), // 是否压缩
	})
}

// New 根据配置创建新的日志记录器
func New(config *logconfig.Config) (logInterface.Logger, error) {
	level := zap.NewAtomicLevelAt(config.GetZapLevel())
	consoleEncoder := config.CreateConsoleEncoder()
	fileEncoder := config.CreateFileEncoder()

	var cores []zapcore.Core

	// 1. 控制台输出
	outputPath := config.GetFilePath()
	toStd := outputPath == "" || outputPath == "stdout" || outputPath == "stderr"
	if toStd || config.IsConsoleEnabled() {
		output := zapcore.AddSync(os.Stdout)
		if outputPath == "stderr" {
			output = zapcore.AddSync(os.Stderr)
		}
		cores = append(cores, zapcore.NewCore(consoleEncoder, output, level))
	}

	// 2. 文件输出
	if !toStd {
		absPath, err := filepath.Abs(outputPath)
		if err != nil {
			return nil, fmt.Errorf("获取日志文件绝对路径失败: %w", err)
		}

		if config.IsMultiFileEnabled() {
			// 多文件模式：宿主日志 + 合约调用日志
			logDir := config.GetLogDir()
			if logDir == "" {
				logDir = filepath.Dir(absPath)
			}
			systemWriter := createFileWriter(filepath.Join(logDir, config.GetSystemLogFile()), config)
			businessWriter := createFileWriter(filepath.Join(logDir, config.GetBusinessLogFile()), config)

			cores = append(cores, &moduleRoutingCore{
				systemCore:   zapcore.NewCore(fileEncoder, systemWriter, level),
				businessCore: zapcore.NewCore(fileEncoder, businessWriter, level),
			})
		} else {
			cores = append(cores, zapcore.NewCore(fileEncoder, createFileWriter(absPath, config), level))
		}
	}

	core := zapcore.NewTee(cores...)

	var zapOptions []zap.Option
	if config.IsCallerEnabled() {
		// 跳过一层日志封装，使调用位置指向真实业务代码位置
		zapOptions = append(zapOptions, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if config.IsStacktraceEnabled() {
		zapOptions = append(zapOptions, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	zapLogger := zap.New(core, zapOptions...)
	return &Logger{
		zapLogger: zapLogger,
		sugar:     zapLogger.Sugar(),
	}, nil
}

// NewFromOptions 从完整的日志选项创建日志记录器
func NewFromOptions(options *logconfig.LogOptions) (logInterface.Logger, error) {
	return New(logconfig.NewFromOptions(options))
}

// GetZapLogger 获取底层的zap日志记录器
func (l *Logger) GetZapLogger() *zap.Logger {
	return l.zapLogger
}

// SetLogger 设置全局日志记录器
func SetLogger(logger logInterface.Logger) {
	if logger == nil {
		return
	}
	mu.Lock()
	globalLogger = logger
	mu.Unlock()
}

// GetLogger 获取全局日志记录器
func GetLogger() logInterface.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// 以下是全局日志函数

// Debug 记录调试级别的日志
func Debug(msg string) {
	if l := GetLogger(); l != nil {
		l.Debug(msg)
	}
}

// Debugf 使用格式化字符串记录调试级别的日志
func Debugf(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Debugf(format, args...)
	}
}

// Info 记录信息级别的日志
func Info(msg string) {
	if l := GetLogger(); l != nil {
		l.Info(msg)
	}
}

// Infof 使用格式化字符串记录信息级别的日志
func Infof(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Infof(format, args...)
	}
}

// Warn 记录警告级别的日志
func Warn(msg string) {
	if l := GetLogger(); l != nil {
		l.Warn(msg)
	}
}

// Warnf 使用格式化字符串记录警告级别的日志
func Warnf(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Warnf(format, args...)
	}
}

// Error 记录错误级别的日志
func Error(msg string) {
	if l := GetLogger(); l != nil {
		l.Error(msg)
	}
}

// Errorf 使用格式化字符串记录错误级别的日志
func Errorf(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Errorf(format, args...)
	}
}

// With 创建带有额外字段的日志记录器
func With(args ...interface{}) logInterface.Logger {
	if l := GetLogger(); l != nil {
		return l.With(args...)
	}
	return Nop().With(args...)
}

// 将可变参数转换为zap字段
// 参数必须是偶数个，按键值对形式提供：key1, value1, key2, value2, ...
func toZapFields(args ...interface{}) []zap.Field {
	if len(args)%2 != 0 {
		// 忽略最后一个不成对的参数
		args = args[:len(args)-1]
	}

	fields := make([]zap.Field, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}
	return fields
}

// Debug 记录调试级别的日志
func (l *Logger) Debug(msg string) {
	l.sugar.Debug(msg)
}

// Debugf 使用格式化字符串记录调试级别的日志
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info 记录信息级别的日志
func (l *Logger) Info(msg string) {
	l.sugar.Info(msg)
}

// Infof 使用格式化字符串记录信息级别的日志
func (l *Logger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn 记录警告级别的日志
func (l *Logger) Warn(msg string) {
	l.sugar.Warn(msg)
}

// Warnf 使用格式化字符串记录警告级别的日志
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error 记录错误级别的日志
func (l *Logger) Error(msg string) {
	l.sugar.Error(msg)
}

// Errorf 使用格式化字符串记录错误级别的日志
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Fatal 记录致命级别的日志，然后退出程序
func (l *Logger) Fatal(msg string) {
	l.sugar.Fatal(msg)
}

// Fatalf 使用格式化字符串记录致命级别的日志，然后退出程序
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.sugar.Fatalf(format, args...)
}

// With 返回一个带有额外字段的Logger
func (l *Logger) With(args ...interface{}) logInterface.Logger {
	zapLogger := l.zapLogger.With(toZapFields(args...)...)
	return &Logger{
		zapLogger: zapLogger,
		sugar:     zapLogger.Sugar(),
	}
}

// Sync 同步日志缓冲区到输出
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}
