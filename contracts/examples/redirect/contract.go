// Package main 提供 redirect 合约
//
// 📋 合约说明
//
// 把调用方给出的金额从合约账户转给目标账户：
//   - 参数0：Amount（必需，解码失败返回 BAD_PARAM，不发起转账）
//   - 参数1：AccountID（尽力读取，缺失时为零账户，由账本拒绝）
//
// 转账失败时原样返回账本给出的负数错误码。
//
// 构建（reactor 模块，宿主只运行 _initialize）：
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o redirect.wasm ./contracts/examples/redirect
//	tinygo build -target=wasip1 -buildmode=c-shared -o redirect.wasm ./contracts/examples/redirect
package main

import (
	framework "github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
)

func redirect(host framework.Host) int32 {
	// 读取：金额
	amount, err := framework.GetFunctionParam[framework.Amount](host, 0)
	if err != nil {
		_ = framework.TraceNum(host, "`amount` Parameter Error Code:", int64(framework.ErrorCode(err)))
		return framework.BAD_PARAM
	}

	// 读取：目标账户
	account := framework.SafeGetFunctionParam[framework.AccountID](host, 1)

	// 转账：合约账户 -> 目标账户
	txID := amount.Transfer(host, account)
	if txID < 0 {
		_ = framework.TraceNum(host, "AMOUNT Transfer Error Code:", int64(txID))
		return txID
	}

	return framework.SUCCESS
}

func main() {}
