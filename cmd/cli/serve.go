package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xrpl-wasm/contracts/internal/app"
	"github.com/xrpl-wasm/contracts/internal/config"
)

// serveCmd 启动宿主服务
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP/WebSocket 合约宿主服务",
	Long: `启动开发宿主并提供 API:

  POST /v1/invoke                       调用合约
  GET  /v1/accounts/:address            查询账户
  POST /v1/accounts/:address/fund       注资
  POST /v1/accounts/:address/trustlines 设置信任线
  GET  /v1/stream                       WebSocket 调用结果推送
  GET  /health  /metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadAppConfig()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		httpOpts := config.NewProvider(cfg).GetAPI().HTTP
		if !httpOpts.Enabled {
			return fmt.Errorf("配置中 HTTP 服务未启用 (api.http_enabled=false)")
		}

		host, err := app.Start(app.WithAppConfig(cfg))
		if err != nil {
			return err
		}

		pterm.Success.Printfln("宿主已启动: http://%s", httpOpts.Address())
		pterm.Info.Println("按 Ctrl+C 停止")
		return host.Wait(cmd.Context())
	},
}
