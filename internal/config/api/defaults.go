package api

import "time"

// API服务默认配置值
const (
	// defaultHTTPEnabled 默认启用HTTP API
	defaultHTTPEnabled = true

	// defaultHTTPHost 开发宿主只监听本机
	defaultHTTPHost = "127.0.0.1"

	// defaultHTTPPort HTTP端口
	defaultHTTPPort = 8088

	defaultEnableMetrics     = true
	defaultEnableTraceStream = true

	defaultHTTPReadTimeout  = 15 * time.Second
	defaultHTTPWriteTimeout = 15 * time.Second

	// defaultMaxRequestSize 最大请求大小设为8MB（请求可内联 WASM 字节码）
	defaultMaxRequestSize = 8 * 1024 * 1024
)

// defaultCORSOrigins 默认允许的CORS源
var defaultCORSOrigins = []string{"*"}
