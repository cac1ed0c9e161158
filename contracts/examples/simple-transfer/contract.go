// Package main 提供 simple_transfer 合约
//
// 带类型声明的导出形式：
//   - 函数参数：account AccountID（索引0）、amount Amount（索引1），均为必需
//   - 实例参数：initialBalance Amount（索引0），尽力读取，不参与转账
//
// 所有返回路径都经过 exit：先输出消息，再输出错误码。
//
// 构建（reactor 模块，宿主只运行 _initialize）：
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o simple_transfer.wasm ./contracts/examples/simple-transfer
//	tinygo build -target=wasip1 -buildmode=c-shared -o simple_transfer.wasm ./contracts/examples/simple-transfer
package main

import (
	framework "github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
)

func exit(host framework.Host, message string, code int32) int32 {
	_ = framework.Trace(host, message)
	_ = framework.TraceNum(host, "Error Code:", int64(code))
	return code
}

func simpleTransfer(host framework.Host) int32 {
	account, err := framework.GetFunctionParam[framework.AccountID](host, 0)
	if err != nil {
		_ = framework.TraceNum(host, "`account` Parameter Error Code:", int64(framework.ErrorCode(err)))
		return exit(host, "`account` parameter decode failed", framework.BAD_PARAM)
	}

	amount, err := framework.GetFunctionParam[framework.Amount](host, 1)
	if err != nil {
		_ = framework.TraceNum(host, "`amount` Parameter Error Code:", int64(framework.ErrorCode(err)))
		return exit(host, "`amount` parameter decode failed", framework.BAD_PARAM)
	}

	initialBalance := framework.SafeGetInstanceParam[framework.Amount](host, 0)
	if initialBalance.IsValid() {
		_ = framework.TraceAmount(host, "Instance initialBalance:", initialBalance)
	}

	txID := amount.Transfer(host, account)
	if txID < 0 {
		_ = framework.TraceNum(host, "AMOUNT Transfer Error Code:", int64(txID))
		return exit(host, "Transfer failed", txID)
	}

	return exit(host, "Redirect successful", framework.SUCCESS)
}

func main() {}
