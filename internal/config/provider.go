package config

import (
	"github.com/xrpl-wasm/contracts/internal/config/api"
	"github.com/xrpl-wasm/contracts/internal/config/host"
	"github.com/xrpl-wasm/contracts/internal/config/ledger"
	"github.com/xrpl-wasm/contracts/internal/config/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/config"
	"github.com/xrpl-wasm/contracts/pkg/types"
)

const defaultDataDir = "./data"

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{
		appConfig: appConfig,
	}
}

// GetAppConfig 获取原始应用配置
func (p *Provider) GetAppConfig() *types.AppConfig {
	return p.appConfig
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	// log.New 会处理默认值应用和用户配置覆盖
	return log.New(p.appConfig.Log).GetOptions()
}

// GetHost 获取合约宿主配置
func (p *Provider) GetHost() *host.HostOptions {
	return host.New(p.appConfig.Host).GetOptions()
}

// GetLedger 获取账本配置，badger 目录默认落在数据目录下
func (p *Provider) GetLedger() *ledger.LedgerOptions {
	return ledger.New(p.appConfig.Ledger, p.GetDataDir()).GetOptions()
}

// GetAPI 获取API服务配置
func (p *Provider) GetAPI() *api.APIOptions {
	return api.New(p.appConfig.API).GetOptions()
}

// GetEnvironment 获取运行环境
func (p *Provider) GetEnvironment() string {
	switch env := p.appConfig.GetEnvironment(); env {
	case "dev", "test", "prod":
		return env
	default:
		return "dev"
	}
}

// GetDataDir 获取数据根目录
func (p *Provider) GetDataDir() string {
	if p.appConfig.DataDir != nil && *p.appConfig.DataDir != "" {
		return *p.appConfig.DataDir
	}
	return defaultDataDir
}
