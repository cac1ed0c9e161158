// Package host 提供合约宿主（WASM运行时与宿主函数）配置
package host

import (
	"time"

	"github.com/xrpl-wasm/contracts/pkg/types"
)

// HostOptions 合约宿主配置选项
type HostOptions struct {
	// === 运行时配置 ===
	UseCompiler      bool          `json:"use_compiler"`      // 编译器模式（false 为解释器模式）
	EnableWASI       bool          `json:"enable_wasi"`       // 是否实例化 wasi_snapshot_preview1
	ExecutionTimeout time.Duration `json:"execution_timeout"` // 单次调用超时，0 表示不限制
	MaxMemoryPages   uint32        `json:"max_memory_pages"`  // 线性内存上限（每页64KB）

	// === 编译缓存配置 ===
	CompileCacheSizeMB int           `json:"compile_cache_size_mb"` // 编译标记缓存上限
	CompileCacheTTL    time.Duration `json:"compile_cache_ttl"`     // 编译标记生存时间

	// === 宿主函数配置 ===
	HostModuleName  string `json:"host_module_name"`  // 宿主模块名（合约 import 的模块）
	MaxTraceRecords int    `json:"max_trace_records"` // 单次调用最多保留的跟踪条数
}

// Config 合约宿主配置实现
type Config struct {
	options *HostOptions
}

// New 创建合约宿主配置实现
func New(userConfig *types.UserHostConfig) *Config {
	options := createDefaultHostOptions()
	if userConfig != nil {
		applyUserHostConfig(options, userConfig)
	}
	return &Config{options: options}
}

func createDefaultHostOptions() *HostOptions {
	return &HostOptions{
		UseCompiler:        defaultUseCompiler,
		EnableWASI:         defaultEnableWASI,
		ExecutionTimeout:   defaultExecutionTimeout,
		MaxMemoryPages:     defaultMaxMemoryPages,
		CompileCacheSizeMB: defaultCompileCacheSizeMB,
		CompileCacheTTL:    defaultCompileCacheTTL,
		HostModuleName:     defaultHostModuleName,
		MaxTraceRecords:    defaultMaxTraceRecords,
	}
}

// applyUserHostConfig 只覆盖用户显式设置的字段
func applyUserHostConfig(options *HostOptions, userConfig *types.UserHostConfig) {
	if userConfig.UseCompiler != nil {
		options.UseCompiler = *userConfig.UseCompiler
	}
	if userConfig.EnableWASI != nil {
		options.EnableWASI = *userConfig.EnableWASI
	}
	if userConfig.ExecutionTimeoutSeconds != nil && *userConfig.ExecutionTimeoutSeconds >= 0 {
		options.ExecutionTimeout = time.Duration(*userConfig.ExecutionTimeoutSeconds) * time.Second
	}
	if userConfig.MaxMemoryPages != nil && *userConfig.MaxMemoryPages > 0 {
		options.MaxMemoryPages = uint32(*userConfig.MaxMemoryPages)
	}
	if userConfig.CompileCacheSizeMB != nil && *userConfig.CompileCacheSizeMB > 0 {
		options.CompileCacheSizeMB = *userConfig.CompileCacheSizeMB
	}
	if userConfig.MaxTraceRecords != nil && *userConfig.MaxTraceRecords > 0 {
		options.MaxTraceRecords = *userConfig.MaxTraceRecords
	}
}

// GetOptions 获取完整的宿主配置选项
func (c *Config) GetOptions() *HostOptions {
	return c.options
}
