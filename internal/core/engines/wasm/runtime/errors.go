// Package runtime provides error definitions for the WASM runtime engine.
package runtime

import (
	"errors"
	"fmt"
)

// WASM运行时错误定义
//
// 🎯 **职责范围**：仅包含WASM编译、实例化、执行相关的错误

var (
	errCompileFailed     = errors.New("WASM合约编译失败")
	errInstantiateFailed = errors.New("WASM合约实例化失败")
	errExecuteFailed     = errors.New("WASM合约执行失败")
	errFunctionNotFound  = errors.New("WASM导出函数未找到")
	errInvalidSignature  = errors.New("WASM函数签名不匹配")
	errExecutionTimeout  = errors.New("WASM合约执行超时")
	errInvalidInstance   = errors.New("WASM实例无效")
)

// ErrCommandModule 合约按命令模式构建（只导出 _start），Go 运行时不会被初始化
//
// GOOS=wasip1 与 TinyGo（-target=wasip1）都需加 -buildmode=c-shared
var ErrCommandModule = errors.New("合约为命令模式模块（导出 _start 而非 _initialize），请以 -buildmode=c-shared 构建")

var (
	// ErrCompileFailed 编译失败错误
	ErrCompileFailed = fmt.Errorf("运行时编译错误: %w", errCompileFailed)

	// ErrInstantiateFailed 实例化失败错误（含宿主函数缺失）
	ErrInstantiateFailed = fmt.Errorf("运行时实例化错误: %w", errInstantiateFailed)

	// ErrExecuteFailed 执行失败错误（陷阱、越界等）
	ErrExecuteFailed = fmt.Errorf("运行时执行错误: %w", errExecuteFailed)

	// ErrFunctionNotFound 函数未找到错误
	ErrFunctionNotFound = fmt.Errorf("运行时函数查找错误: %w", errFunctionNotFound)

	// ErrInvalidSignature 函数签名不匹配错误
	ErrInvalidSignature = fmt.Errorf("运行时签名错误: %w", errInvalidSignature)

	// ErrExecutionTimeout 执行超时错误
	ErrExecutionTimeout = fmt.Errorf("运行时超时错误: %w", errExecutionTimeout)

	// ErrInvalidInstance 实例类型无效或已销毁
	ErrInvalidInstance = fmt.Errorf("运行时实例错误: %w", errInvalidInstance)
)
