//go:build tinygo || wasip1

package main

import (
	framework "github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
)

//go:wasmexport easymode
func easymodeExport() int32 {
	return easymode(framework.DefaultHost())
}
