// Package storage 提供存储管理功能
package storage

import (
	"context"
	"fmt"

	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/storage/badger"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/storage/memory"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/config"
	logInterface "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/storage"
	"go.uber.org/fx"
)

// ModuleParams 定义存储模块的依赖参数
type ModuleParams struct {
	fx.In

	Provider config.Provider     // 配置提供者
	Logger   logInterface.Logger // 日志记录器
}

// ModuleOutput 定义存储模块的输出结构
type ModuleOutput struct {
	fx.Out

	KVStore     storageInterface.KVStore     // 账本状态（badger，磁盘或内存模式）
	MemoryStore storageInterface.MemoryStore // 编译标记缓存（bigcache）
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideServices),

		// 应用停止时关闭存储
		fx.Invoke(func(lc fx.Lifecycle, kv storageInterface.KVStore, mem storageInterface.MemoryStore, logger logInterface.Logger) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					logger.Info("正在关闭存储服务...")
					if err := mem.Close(); err != nil {
						logger.Warnf("关闭内存存储失败: %v", err)
					}
					return kv.Close()
				},
			})
		}),
	)
}

// ProvideServices 根据配置初始化存储引擎
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger := log.NewModuleLogger(params.Logger, "storage")

	kv, err := badger.New(params.Provider.GetLedger(), logger)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("创建账本存储失败: %w", err)
	}

	mem, err := memory.New(params.Provider.GetHost(), logger)
	if err != nil {
		_ = kv.Close()
		return ModuleOutput{}, fmt.Errorf("创建内存存储失败: %w", err)
	}

	return ModuleOutput{
		KVStore:     kv,
		MemoryStore: mem,
	}, nil
}
