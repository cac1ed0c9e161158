// Package wasm 提供合约 WASM 引擎的 fx 装配
package wasm

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/xrpl-wasm/contracts/internal/core/engines/wasm/runtime"
	"github.com/xrpl-wasm/contracts/internal/core/hostabi"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/config"
	logInterface "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/storage"
)

// ModuleInput WASM模块的输入依赖
type ModuleInput struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Provider    config.Provider
	Logger      logInterface.Logger
	MemoryStore storage.MemoryStore `optional:"true"` // 编译标记缓存
}

// ModuleOutput WASM模块的输出服务
type ModuleOutput struct {
	fx.Out

	Runtime *runtime.WazeroRuntime
}

// Module WASM 引擎 fx 模块
func Module() fx.Option {
	return fx.Module("engine-wasm",
		fx.Provide(ProvideRuntime),
	)
}

// ProvideRuntime 创建运行时并注册 host_lib 宿主模块
func ProvideRuntime(input ModuleInput) (ModuleOutput, error) {
	rt, err := NewRuntime(input.Provider, input.Logger, input.MemoryStore)
	if err != nil {
		return ModuleOutput{}, err
	}

	input.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return rt.Close()
		},
	})
	return ModuleOutput{Runtime: rt}, nil
}

// NewRuntime 不经 fx 创建已注册宿主函数的运行时（CLI 单次执行使用）
func NewRuntime(provider config.Provider, logger logInterface.Logger, cache storage.MemoryStore) (*runtime.WazeroRuntime, error) {
	opts := provider.GetHost()

	rt, err := runtime.NewWazeroRuntime(log.NewModuleLogger(logger, "runtime"), opts, cache)
	if err != nil {
		return nil, fmt.Errorf("创建WASM运行时失败: %w", err)
	}

	functions := hostabi.New(
		log.NewModuleLogger(logger, "hostabi"),
		log.NewModuleLogger(logger, "contract"),
	).Build()
	if err := rt.RegisterHostFunctions(opts.HostModuleName, functions); err != nil {
		_ = rt.Close()
		return nil, err
	}
	return rt, nil
}
