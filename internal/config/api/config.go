package api

import (
	"fmt"
	"time"

	"github.com/xrpl-wasm/contracts/pkg/types"
)

// APIOptions API服务配置选项
type APIOptions struct {
	// HTTP API配置
	HTTP HTTPConfig `json:"http"`
}

// HTTPConfig HTTP API配置
type HTTPConfig struct {
	// 基础配置
	Enabled bool   `json:"enabled"` // 是否启用HTTP服务（总开关）
	Host    string `json:"host"`    // 监听地址
	Port    int    `json:"port"`    // 监听端口

	// 功能开关
	EnableMetrics     bool `json:"enable_metrics"`      // 是否暴露 /metrics
	EnableTraceStream bool `json:"enable_trace_stream"` // 是否启用 /v1/stream（WebSocket）

	// 超时配置
	ReadTimeout  time.Duration `json:"read_timeout"`  // 读取超时时间
	WriteTimeout time.Duration `json:"write_timeout"` // 写入超时时间

	// CORS配置
	CORSOrigins []string `json:"cors_origins"` // 允许的CORS源

	// MaxRequestSize 最大请求大小(字节)，包含内联的 WASM 字节码
	MaxRequestSize int64 `json:"max_request_size"`
}

// Address 监听地址 host:port
func (h HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// Config API配置实现
type Config struct {
	options *APIOptions
}

// New 创建API配置实现
func New(userConfig *types.UserAPIConfig) *Config {
	// 1. 先创建完整的默认配置
	defaultOptions := createDefaultAPIOptions()

	// 2. 如果有用户配置，则转换并覆盖默认配置
	if userConfig != nil {
		convertAndMergeUserConfig(defaultOptions, userConfig)
	}

	return &Config{
		options: defaultOptions,
	}
}

// createDefaultAPIOptions 创建默认API配置
func createDefaultAPIOptions() *APIOptions {
	return &APIOptions{
		HTTP: HTTPConfig{
			Enabled:           defaultHTTPEnabled,
			Host:              defaultHTTPHost,
			Port:              defaultHTTPPort,
			EnableMetrics:     defaultEnableMetrics,
			EnableTraceStream: defaultEnableTraceStream,
			ReadTimeout:       defaultHTTPReadTimeout,
			WriteTimeout:      defaultHTTPWriteTimeout,
			CORSOrigins:       append([]string{}, defaultCORSOrigins...), // 复制切片
			MaxRequestSize:    defaultMaxRequestSize,
		},
	}
}

// convertAndMergeUserConfig 将用户配置转换并合并到默认配置中
// 使用指针类型来准确区分"未设置"和"设置为零值"
func convertAndMergeUserConfig(defaultOpts *APIOptions, userConfig *types.UserAPIConfig) {
	if userConfig.HTTPEnabled != nil {
		defaultOpts.HTTP.Enabled = *userConfig.HTTPEnabled
	}
	if userConfig.HTTPHost != nil {
		defaultOpts.HTTP.Host = *userConfig.HTTPHost
	}
	if userConfig.HTTPPort != nil {
		defaultOpts.HTTP.Port = *userConfig.HTTPPort
	}
	if userConfig.EnableMetrics != nil {
		defaultOpts.HTTP.EnableMetrics = *userConfig.EnableMetrics
	}
	if userConfig.EnableTraceStream != nil {
		defaultOpts.HTTP.EnableTraceStream = *userConfig.EnableTraceStream
	}
	if len(userConfig.HTTPCorsOrigins) > 0 {
		defaultOpts.HTTP.CORSOrigins = userConfig.HTTPCorsOrigins
	}
}

// GetOptions 获取完整的API配置选项
func (c *Config) GetOptions() *APIOptions {
	return c.options
}
