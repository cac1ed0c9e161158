package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xrpl-wasm/contracts/internal/app"
	"github.com/xrpl-wasm/contracts/internal/app/version"
	"github.com/xrpl-wasm/contracts/internal/config"
	"github.com/xrpl-wasm/contracts/pkg/types"
)

// configPathEnv 未指定 --config 时读取的环境变量
const configPathEnv = "XRPLWASM_CONFIG_PATH"

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile   string // 配置文件
	Environment  string // 嵌入配置环境：development | testing
	OutputFormat string // 输出格式
	Verbose      bool   // 详细模式
}

var (
	globalFlags GlobalFlags
	out         *printer
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "xrplwasm",
	Short: "XRPL WASM 合约开发宿主",
	Long: `xrplwasm - XRPL 智能合约（WASM）的本地开发宿主

在内置开发账本上编译、实例化并调用合约入口函数，
宿主函数实现 host_lib 导入（参数读取、转账、跟踪输出）。

常用命令:
  xrplwasm run contract.wasm --param xrp:1000000 --param account:r...
  xrplwasm serve                       # 启动 HTTP/WebSocket 服务
  xrplwasm ledger fund r... xrp:5000000
  xrplwasm keys new --mnemonic`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(globalFlags.OutputFormat)
		if err != nil {
			return err
		}
		out = newPrinter(format, os.Stdout)
		if globalFlags.Verbose {
			pterm.EnableDebugMessages()
		}
		return nil
	},
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(version.GetFullVersion() + "\n")

	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "c", "", "配置文件路径 (默认读取 $"+configPathEnv+"，否则使用嵌入配置)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.Environment, "env", "development", "嵌入配置环境: development|testing")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.OutputFormat, "output", "o", "pretty", "输出格式: pretty|json")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "详细输出")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(keysCmd)
}

// loadAppConfig 按 --config、环境变量、嵌入配置的顺序加载
func loadAppConfig() (*types.AppConfig, error) {
	path := globalFlags.ConfigFile
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	cfg, err := config.Load(path, globalFlags.Environment)
	if err != nil {
		return nil, err
	}
	provider := config.NewProvider(cfg)
	if err := config.Validate(provider); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}
	if err := config.CreateDataDirectories(provider); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startEmbedded 启动不带 API 的宿主，用于单次命令
func startEmbedded(targets ...interface{}) (app.App, error) {
	cfg, err := loadAppConfig()
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	return app.Start(
		app.WithAppConfig(cfg),
		app.WithoutAPI(),
		app.WithPopulate(targets...),
	)
}
