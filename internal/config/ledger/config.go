// Package ledger 提供开发账本配置
package ledger

import (
	"path/filepath"

	"github.com/xrpl-wasm/contracts/pkg/types"
)

// 存储后端
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// LedgerOptions 开发账本配置选项
type LedgerOptions struct {
	Backend    string `json:"backend"`     // memory | badger
	Path       string `json:"path"`        // badger 数据目录
	SyncWrites bool   `json:"sync_writes"` // badger 同步写

	// ContractAccount 合约账户（经典地址或40位十六进制）
	ContractAccount string `json:"contract_account"`

	// GenesisDrops 账本为空时注入合约账户的 XRP
	GenesisDrops int64 `json:"genesis_drops"`
}

// InMemory 是否使用内存后端
func (o *LedgerOptions) InMemory() bool {
	return o.Backend != BackendBadger
}

// Config 账本配置实现
type Config struct {
	options *LedgerOptions
}

// New 创建账本配置实现，dataDir 为应用数据目录
func New(userConfig *types.UserLedgerConfig, dataDir string) *Config {
	options := createDefaultLedgerOptions(dataDir)
	if userConfig != nil {
		applyUserLedgerConfig(options, userConfig)
	}
	return &Config{options: options}
}

func createDefaultLedgerOptions(dataDir string) *LedgerOptions {
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	return &LedgerOptions{
		Backend:         defaultBackend,
		Path:            filepath.Join(dataDir, "ledger"),
		SyncWrites:      defaultSyncWrites,
		ContractAccount: defaultContractAccount,
		GenesisDrops:    defaultGenesisDrops,
	}
}

func applyUserLedgerConfig(options *LedgerOptions, userConfig *types.UserLedgerConfig) {
	if userConfig.Backend != nil {
		options.Backend = *userConfig.Backend
	}
	if userConfig.DataDir != nil && *userConfig.DataDir != "" {
		options.Path = *userConfig.DataDir
	}
	if userConfig.SyncWrites != nil {
		options.SyncWrites = *userConfig.SyncWrites
	}
	if userConfig.ContractAccount != nil && *userConfig.ContractAccount != "" {
		options.ContractAccount = *userConfig.ContractAccount
	}
	if userConfig.GenesisDrops != nil && *userConfig.GenesisDrops >= 0 {
		options.GenesisDrops = *userConfig.GenesisDrops
	}
}

// GetOptions 获取完整的账本配置选项
func (c *Config) GetOptions() *LedgerOptions {
	return c.options
}
