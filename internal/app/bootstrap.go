package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/xrpl-wasm/contracts/internal/api"
	"github.com/xrpl-wasm/contracts/internal/config"
	"github.com/xrpl-wasm/contracts/internal/core/engines/wasm"
	"github.com/xrpl-wasm/contracts/internal/core/executor"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/event"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/metrics"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/storage"
	"github.com/xrpl-wasm/contracts/internal/core/ledger"
	configInterface "github.com/xrpl-wasm/contracts/pkg/interfaces/config"
)

// 启动与停止超时
const (
	startTimeout = 30 * time.Second
	stopTimeout  = 30 * time.Second
)

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts  *options
	fxApp *fx.App
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		fx.Provide(func() configInterface.AppOptions { return b.opts }),
		config.Module(),  // 1. 配置(不依赖其他)
		log.Module(),     // 2. 日志(依赖配置)
		metrics.Module(), // 3. 指标注册表
		event.Module(),   // 4. 事件总线(依赖日志)
		storage.Module(), // 5. 存储(依赖配置和日志)
	}
}

// SetupBusinessLayer 设置业务逻辑层模块
//
// 账本 -> WASM 引擎 -> 执行器
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		ledger.Module(),
		wasm.Module(),
		executor.Module(),
	}
}

// SetupApplicationLayer 设置应用层模块
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	var modules []fx.Option
	if b.opts.enableAPI {
		modules = append(modules, api.Module())
	}
	return append(modules, b.opts.extra...)
}

// CreateFxApp 创建并配置fx应用
func (b *Bootstrap) CreateFxApp() error {
	var modules []fx.Option
	modules = append(modules, b.SetupInfrastructureLayer()...)
	modules = append(modules, b.SetupBusinessLayer()...)
	modules = append(modules, b.SetupApplicationLayer()...)

	b.fxApp = fx.New(
		fx.Options(modules...),
		// fx 事件只记录警告以上
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.NewModuleZapLogger(l, "app").WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
	)
	return b.fxApp.Err()
}

// StartApp 启动应用程序
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	return nil
}

// StopApp 停止应用程序
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}

// BootstrapApp 执行完整的引导过程并返回已启动的应用实例
func BootstrapApp(options ...Option) (App, error) {
	bootstrap := NewBootstrap(newOptions(options...))

	if err := bootstrap.CreateFxApp(); err != nil {
		return nil, fmt.Errorf("创建应用失败: %w", err)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := bootstrap.StartApp(startCtx); err != nil {
		return nil, err
	}

	return &internalApp{bootstrap: bootstrap}, nil
}
