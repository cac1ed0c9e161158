// Package types provides WASM type definitions.
package types

// WASM引擎相关类型定义
//
// 为运行时提供合约编译、实例化和执行的数据结构。

// CompiledContract 已编译的WASM合约
//
// Module 保存 wazero.CompiledModule，导出函数在实例化后通过
// api.Module.ExportedFunction(name) 按需查询。
type CompiledContract struct {
	// Hash 合约内容哈希（SHA-256）
	Hash []byte `json:"hash"`

	// Module wazero编译后的模块（运行时特定，interface{}类型）
	Module interface{} `json:"-"`

	// ImportedFunctions 导入函数清单（"module.name"）
	ImportedFunctions []string `json:"imported_functions"`

	// CompiledAt 编译时间戳
	CompiledAt int64 `json:"compiled_at"`

	// FromCache 是否命中进程内编译缓存
	FromCache bool `json:"from_cache"`
}

// WASMInstance WASM合约实例
//
// 每次调用创建一个实例，调用结束即销毁
type WASMInstance struct {
	// ID 实例唯一标识符
	ID string `json:"id"`

	// Hash 合约内容哈希
	Hash []byte `json:"hash"`

	// Instance wazero运行时实例（运行时特定，interface{}类型）
	Instance interface{} `json:"-"`

	// Memory WASM线性内存引用（运行时特定，interface{}类型）
	Memory interface{} `json:"-"`

	// CreatedAt 实例创建时间
	CreatedAt int64 `json:"created_at"`

	// Status 实例状态
	Status WASMInstanceStatus `json:"status"`
}

// WASMInstanceStatus WASM实例状态
type WASMInstanceStatus string

const (
	WASMInstanceStatusCreated   WASMInstanceStatus = "created"   // 已创建
	WASMInstanceStatusRunning   WASMInstanceStatus = "running"   // 运行中
	WASMInstanceStatusFinished  WASMInstanceStatus = "finished"  // 已完成
	WASMInstanceStatusFailed    WASMInstanceStatus = "failed"    // 执行失败
	WASMInstanceStatusDestroyed WASMInstanceStatus = "destroyed" // 已销毁
)
