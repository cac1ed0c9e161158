package http

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/xrpl-wasm/contracts/internal/core/engines/wasm/runtime"
	"github.com/xrpl-wasm/contracts/internal/core/executor"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/internal/core/ledger"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/config"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/event"
	logInterface "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
)

// ServerInput HTTP服务器依赖
type ServerInput struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider
	Logger    logInterface.Logger
	Executor  *executor.Executor
	Ledger    *ledger.Ledger
	Runtime   *runtime.WazeroRuntime
	EventBus  event.EventBus       `optional:"true"`
	Registry  *prometheus.Registry `optional:"true"`
}

// Module HTTP API 模块
func Module() fx.Option {
	return fx.Module("api-http",
		fx.Provide(ProvideServer),
	)
}

// ProvideServer 创建HTTP服务器，启用时随应用启动
func ProvideServer(input ServerInput) *Server {
	opts := input.Provider.GetAPI().HTTP
	deps := Dependencies{
		Options:  opts,
		Logger:   log.NewModuleLogger(input.Logger, "api"),
		Invoker:  input.Executor,
		Ledger:   input.Ledger,
		Runtime:  input.Runtime,
		EventBus: input.EventBus,
		Registry: input.Registry,
	}
	server := NewServer(deps)

	if !opts.Enabled {
		deps.Logger.Info("HTTP API 已在配置中禁用")
		return server
	}
	input.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server
}
