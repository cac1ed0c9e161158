package ledger

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/config"
	logInterface "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/storage"
)

// ModuleParams 账本模块依赖
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider
	Logger    logInterface.Logger
	KVStore   storage.KVStore
}

// ModuleOutput 账本模块输出
type ModuleOutput struct {
	fx.Out

	Ledger          *Ledger
	ContractAccount framework.AccountID `name:"contract_account"` // 合约实例的账户
}

// Module 返回账本模块
func Module() fx.Option {
	return fx.Module("ledger",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建账本，启动时为合约账户执行创世注资
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	opts := params.Provider.GetLedger()
	logger := log.NewModuleLogger(params.Logger, "ledger")

	contract, err := address.ParseAccount(opts.ContractAccount)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("合约账户配置无效 %q: %w", opts.ContractAccount, err)
	}

	l := New(params.KVStore, logger)
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := l.EnsureGenesis(ctx, contract, opts.GenesisDrops); err != nil {
				return fmt.Errorf("创世注资失败: %w", err)
			}
			return nil
		},
	})

	return ModuleOutput{Ledger: l, ContractAccount: contract}, nil
}
