package host

import "time"

const (
	defaultUseCompiler      = true
	defaultEnableWASI       = true
	defaultExecutionTimeout = 10 * time.Second

	// defaultMaxMemoryPages 16MB
	defaultMaxMemoryPages = 256

	defaultCompileCacheSizeMB = 16
	defaultCompileCacheTTL    = time.Hour

	// defaultHostModuleName 合约通过 //go:wasmimport host_lib 导入宿主函数
	defaultHostModuleName = "host_lib"

	defaultMaxTraceRecords = 256
)
