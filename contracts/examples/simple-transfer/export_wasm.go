//go:build tinygo || wasip1

package main

import (
	framework "github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
)

//go:wasmexport simple_transfer
func simpleTransferExport() int32 {
	return simpleTransfer(framework.DefaultHost())
}
