package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/executor"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
	"github.com/xrpl-wasm/contracts/internal/core/params"
)

var (
	runFunction        string
	runParams          []string
	runInstanceParams  []string
	runContractAccount string
	runFailOnError     bool
)

// runCmd 调用合约
var runCmd = &cobra.Command{
	Use:   "run <contract.wasm>",
	Short: "在开发账本上调用合约入口函数",
	Long: `编译并调用合约导出的入口函数，打印状态码、跟踪输出和转账。

参数字面量:
  account:r...            账户
  xrp:1000000             XRP（drops）
  iou:1.5/USD/r...        IOU 代币
  mpt:100/<48位十六进制>   MPT 代币
  raw:<account|amount|token>/<十六进制>

合约须构建为 reactor 模块:
  GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o simple_transfer.wasm ./contracts/examples/simple-transfer

示例:
  xrplwasm run simple_transfer.wasm -f simple_transfer \
    --param account:rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh --param xrp:1000000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("读取合约失败: %w", err)
		}

		fnParams, err := params.ParseAll(runParams)
		if err != nil {
			return fmt.Errorf("函数参数: %w", err)
		}
		instParams, err := params.ParseAll(runInstanceParams)
		if err != nil {
			return fmt.Errorf("实例参数: %w", err)
		}

		var contract framework.AccountID
		if runContractAccount != "" {
			if contract, err = address.ParseAccount(runContractAccount); err != nil {
				return fmt.Errorf("合约账户: %w", err)
			}
		}

		var exec *executor.Executor
		host, err := startEmbedded(&exec)
		if err != nil {
			return err
		}
		defer func() { _ = host.Stop() }()

		res, err := exec.Invoke(cmd.Context(), executor.Request{
			Code:            code,
			Function:        runFunction,
			FunctionParams:  fnParams,
			InstanceParams:  instParams,
			ContractAccount: contract,
		})
		if err != nil {
			return err
		}
		if err := out.result(res); err != nil {
			return err
		}
		if runFailOnError && res.Outcome != executor.OutcomeSuccess {
			return fmt.Errorf("合约返回 %s", res.StatusName)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runFunction, "function", "f", "", "入口函数名（如 redirect、easymode、simple_transfer）")
	runCmd.Flags().StringArrayVarP(&runParams, "param", "p", nil, "函数参数字面量（按顺序，可重复）")
	runCmd.Flags().StringArrayVar(&runInstanceParams, "instance-param", nil, "实例参数字面量（按顺序，可重复）")
	runCmd.Flags().StringVar(&runContractAccount, "contract-account", "", "覆盖配置中的合约账户")
	runCmd.Flags().BoolVar(&runFailOnError, "fail", false, "合约返回非零状态码时以失败退出")
	_ = runCmd.MarkFlagRequired("function")
}
