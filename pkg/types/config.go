// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty"` // 应用名称
	DataDir *string `json:"data_dir,omitempty"` // 数据目录路径

	// Environment 运行环境：dev | test | prod
	Environment *string `json:"environment,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`

	// 合约宿主配置（WASM运行时与宿主函数）
	Host *UserHostConfig `json:"host,omitempty"`

	// 开发账本配置
	Ledger *UserLedgerConfig `json:"ledger,omitempty"`

	// API服务配置
	API *UserAPIConfig `json:"api,omitempty"`
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level     *string `json:"level,omitempty"`      // 日志级别：debug, info, warn, error, fatal
	FilePath  *string `json:"file_path,omitempty"`  // 日志文件路径
	ToConsole *bool   `json:"to_console,omitempty"` // 是否同时输出到控制台
}

// UserHostConfig 用户合约宿主配置
type UserHostConfig struct {
	UseCompiler             *bool `json:"use_compiler,omitempty"`              // 编译器模式（默认true）
	EnableWASI              *bool `json:"enable_wasi,omitempty"`               // 是否实例化WASI（默认true）
	ExecutionTimeoutSeconds *int  `json:"execution_timeout_seconds,omitempty"` // 单次调用超时
	MaxMemoryPages          *int  `json:"max_memory_pages,omitempty"`          // 线性内存上限（页）
	CompileCacheSizeMB      *int  `json:"compile_cache_size_mb,omitempty"`     // 编译标记缓存大小
	MaxTraceRecords         *int  `json:"max_trace_records,omitempty"`         // 单次调用最多保留的跟踪条数
}

// UserLedgerConfig 用户账本配置
type UserLedgerConfig struct {
	// Backend 存储后端：memory | badger
	Backend *string `json:"backend,omitempty"`

	// DataDir badger 数据目录（为空时使用 data_dir/ledger）
	DataDir *string `json:"data_dir,omitempty"`

	// ContractAccount 合约账户（经典地址或40位十六进制）
	ContractAccount *string `json:"contract_account,omitempty"`

	// GenesisDrops 首次启动时为合约账户注入的 XRP（drops）
	GenesisDrops *int64 `json:"genesis_drops,omitempty"`

	SyncWrites *bool `json:"sync_writes,omitempty"` // badger 同步写
}

// UserAPIConfig 用户API配置
// 只包含JSON配置文件中实际出现的字段
type UserAPIConfig struct {
	HTTPEnabled *bool   `json:"http_enabled,omitempty"` // 是否启用HTTP服务（默认true）
	HTTPHost    *string `json:"http_host,omitempty"`    // 监听地址
	HTTPPort    *int    `json:"http_port,omitempty"`    // HTTP监听端口

	EnableMetrics     *bool `json:"enable_metrics,omitempty"`      // 是否暴露 /metrics
	EnableTraceStream *bool `json:"enable_trace_stream,omitempty"` // 是否启用 WebSocket 调用结果推送

	HTTPCorsOrigins []string `json:"http_cors_origins,omitempty"` // 允许的CORS源
}

// GetEnvironment 获取运行环境，未设置时为 dev
func (c *AppConfig) GetEnvironment() string {
	if c == nil || c.Environment == nil || *c.Environment == "" {
		return "dev"
	}
	return *c.Environment
}

// 配置辅助函数
// 这些函数帮助创建指针类型的配置值，区分"未设置"和"设置为零值"

// BoolPtr 创建bool指针，用于明确表示用户设置了该值
func BoolPtr(v bool) *bool {
	return &v
}

// IntPtr 创建int指针，用于明确表示用户设置了该值
func IntPtr(v int) *int {
	return &v
}

// Int64Ptr 创建int64指针
func Int64Ptr(v int64) *int64 {
	return &v
}

// StringPtr 创建string指针，用于明确表示用户设置了该值
func StringPtr(v string) *string {
	return &v
}
