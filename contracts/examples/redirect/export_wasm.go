//go:build tinygo || wasip1

package main

import (
	framework "github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
)

//go:wasmexport redirect
func redirectExport() int32 {
	return redirect(framework.DefaultHost())
}
