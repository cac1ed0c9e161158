// Package event 提供事件管理功能
package event

import (
	"context"

	"go.uber.org/fx"

	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	eventInterface "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/event"
	logInterface "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
)

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Logger    logInterface.Logger `optional:"true"` // 日志记录器（可选）
	Lifecycle fx.Lifecycle        // 生命周期管理
}

// ModuleOutput 事件模块输出服务
type ModuleOutput struct {
	fx.Out

	EventBus eventInterface.EventBus // 基础事件总线
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建事件总线，启动与停止时发布系统事件
func ProvideServices(input ModuleInput) ModuleOutput {
	bus := New(log.NewModuleLogger(input.Logger, "event"))

	input.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			bus.Publish(SystemStarted)
			return nil
		},
		OnStop: func(context.Context) error {
			bus.Publish(SystemStopped)
			bus.WaitAsync()
			return nil
		},
	})

	return ModuleOutput{EventBus: bus}
}
