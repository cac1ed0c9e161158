// Package log 提供日志管理功能
package log

import (
	"fmt"

	logconfig "github.com/xrpl-wasm/contracts/internal/config/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/config"
	logInterface "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ModuleParams 定义日志模块的依赖参数
type ModuleParams struct {
	fx.In

	Provider config.Provider // 配置提供者
}

// ModuleOutput 定义日志模块的输出结构
type ModuleOutput struct {
	fx.Out

	Logger    logInterface.Logger // 日志记录器接口
	ZapLogger *zap.Logger         // zap.Logger 具体类型（供 fx 事件日志使用）
}

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 根据配置初始化日志记录器，并替换 init() 时创建的全局日志器
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger, err := New(logconfig.NewFromProvider(params.Provider))
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("根据用户配置创建日志记录器失败: %w", err)
	}

	SetLogger(logger)

	return ModuleOutput{
		Logger:    logger,
		ZapLogger: logger.GetZapLogger(),
	}, nil
}

// NewModuleLogger 创建带 module 字段的 logger
// module 决定多文件模式下写入宿主日志还是合约调用日志
func NewModuleLogger(baseLogger logInterface.Logger, module string) logInterface.Logger {
	return OrNop(baseLogger).With("module", module)
}

// NewModuleZapLogger 创建带 module 字段的 zap logger
func NewModuleZapLogger(baseLogger *zap.Logger, module string) *zap.Logger {
	if baseLogger == nil {
		return zap.NewNop().With(zap.String("module", module))
	}
	return baseLogger.With(zap.String("module", module))
}
