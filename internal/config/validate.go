package config

import (
	"errors"
	"fmt"

	"github.com/xrpl-wasm/contracts/internal/config/ledger"
	logconfig "github.com/xrpl-wasm/contracts/internal/config/log"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/config"
)

// Validate 检查合并默认值后的配置，返回全部问题
func Validate(p config.Provider) error {
	var errs []error

	logCfg := logconfig.NewFromOptions(p.GetLog())
	if _, ok := logCfg.GetOptions().LevelMap[logCfg.GetLevel()]; !ok {
		errs = append(errs, fmt.Errorf("log.level 无效: %q", logCfg.GetLevel()))
	}

	host := p.GetHost()
	if host.MaxMemoryPages == 0 || host.MaxMemoryPages > 65536 {
		errs = append(errs, fmt.Errorf("host.max_memory_pages 超出范围: %d", host.MaxMemoryPages))
	}
	if host.ExecutionTimeout < 0 {
		errs = append(errs, fmt.Errorf("host.execution_timeout_seconds 不能为负数"))
	}
	if host.MaxTraceRecords < 0 {
		errs = append(errs, fmt.Errorf("host.max_trace_records 不能为负数"))
	}

	l := p.GetLedger()
	switch l.Backend {
	case ledger.BackendMemory, ledger.BackendBadger:
	default:
		errs = append(errs, fmt.Errorf("ledger.backend 无效: %q", l.Backend))
	}
	if _, err := address.ParseAccount(l.ContractAccount); err != nil {
		errs = append(errs, fmt.Errorf("ledger.contract_account 无效: %w", err))
	}
	if l.GenesisDrops < 0 {
		errs = append(errs, fmt.Errorf("ledger.genesis_drops 不能为负数"))
	}

	if h := p.GetAPI().HTTP; h.Enabled && (h.Port <= 0 || h.Port > 65535) {
		errs = append(errs, fmt.Errorf("api.http_port 超出范围: %d", h.Port))
	}

	return errors.Join(errs...)
}
