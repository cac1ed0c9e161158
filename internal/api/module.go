// Package api 组装对外服务接口
package api

import (
	"go.uber.org/fx"

	"github.com/xrpl-wasm/contracts/internal/api/http"
)

// Module 返回API模块选项
//
// fx.Invoke 确保HTTP服务器被构造，其生命周期钩子随应用启动。
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),
		fx.Invoke(func(*http.Server) {}),
	)
}
