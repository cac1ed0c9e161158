// Package main 提供 easymode 合约
//
// 与 redirect 相同的转账流程，参数顺序相反且只接受非原生金额：
//   - 参数0：AccountID（尽力读取）
//   - 参数1：TokenAmount（必需，IOU 或 MPT）
//
// 构建（reactor 模块，宿主只运行 _initialize）：
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o easymode.wasm ./contracts/examples/easymode
//	tinygo build -target=wasip1 -buildmode=c-shared -o easymode.wasm ./contracts/examples/easymode
package main

import (
	framework "github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
)

func easymode(host framework.Host) int32 {
	account := framework.SafeGetFunctionParam[framework.AccountID](host, 0)

	amount, err := framework.GetFunctionParam[framework.TokenAmount](host, 1)
	if err != nil {
		_ = framework.TraceNum(host, "`TokenAmount` Parameter Error Code:", int64(framework.ErrorCode(err)))
		return framework.BAD_PARAM
	}

	txID := amount.Transfer(host, account)
	if txID < 0 {
		_ = framework.TraceNum(host, "Transfer Error Code:", int64(txID))
		return txID
	}

	return framework.SUCCESS
}

func main() {}
