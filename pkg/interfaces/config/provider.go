// Package config provides configuration provider interfaces.
package config

import (
	apiconfig "github.com/xrpl-wasm/contracts/internal/config/api"
	hostconfig "github.com/xrpl-wasm/contracts/internal/config/host"
	ledgerconfig "github.com/xrpl-wasm/contracts/internal/config/ledger"
	logconfig "github.com/xrpl-wasm/contracts/internal/config/log"
)

// Provider 配置提供者接口
type Provider interface {
	AppOptions

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetHost 获取合约宿主配置（wazero 运行时、执行超时、跟踪上限）
	GetHost() *hostconfig.HostOptions

	// GetLedger 获取账本配置
	GetLedger() *ledgerconfig.LedgerOptions

	// GetAPI 获取API服务配置
	GetAPI() *apiconfig.APIOptions

	// GetEnvironment 获取运行环境
	// 返回运行环境字符串：dev | test | prod
	// 未配置时默认为 "dev"
	GetEnvironment() string

	// GetDataDir 获取数据根目录
	GetDataDir() string
}
