package executor

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/engines/wasm/runtime"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/internal/core/ledger"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/event"
	logInterface "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
)

// ModuleInput 执行器依赖
type ModuleInput struct {
	fx.In

	Runtime         *runtime.WazeroRuntime
	Ledger          *ledger.Ledger
	ContractAccount framework.AccountID  `name:"contract_account"`
	EventBus        event.EventBus       `optional:"true"`
	Registry        *prometheus.Registry `optional:"true"`
	Logger          logInterface.Logger  `optional:"true"`
}

// Module 返回执行器模块
func Module() fx.Option {
	return fx.Module("executor",
		fx.Provide(ProvideExecutor),
	)
}

// ProvideExecutor 创建执行器
func ProvideExecutor(input ModuleInput) *Executor {
	cfg := Config{
		Runtime:         input.Runtime,
		Ledger:          input.Ledger,
		ContractAccount: input.ContractAccount,
		EventBus:        input.EventBus,
		Logger:          log.NewModuleLogger(input.Logger, "executor"),
	}
	if input.Registry != nil {
		cfg.Registerer = input.Registry
	}
	return New(cfg)
}
