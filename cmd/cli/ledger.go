package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
	"github.com/xrpl-wasm/contracts/internal/core/ledger"
	"github.com/xrpl-wasm/contracts/internal/core/params"
)

// ledgerCmd 开发账本命令
//
// 需要 badger 后端才能在多次命令之间保留状态；
// serve 运行期间数据目录被锁定，请改用 HTTP 接口
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "开发账本操作",
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show <address>",
	Short: "查询账户余额、信任线与 MPT 持仓",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := address.ParseAccount(args[0])
		if err != nil {
			return err
		}
		return withLedger(func(l *ledger.Ledger) error {
			info, err := l.Account(cmd.Context(), id)
			if err != nil {
				return err
			}
			return out.account(info)
		})
	},
}

var ledgerFundCmd = &cobra.Command{
	Use:   "fund <address> <amount>",
	Short: "为账户注资（xrp:/iou:/mpt: 金额字面量）",
	Example: `  xrplwasm ledger fund rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh xrp:5000000
  xrplwasm ledger fund rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh iou:100/USD/rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := address.ParseAccount(args[0])
		if err != nil {
			return err
		}
		amount, err := params.ParseAmount(args[1])
		if err != nil {
			return err
		}
		return withLedger(func(l *ledger.Ledger) error {
			seq, err := l.Fund(cmd.Context(), id, amount)
			if err != nil {
				return err
			}
			out.success(fmt.Sprintf("已注资 %s -> %s (序号 %d)", params.DescribeAmount(amount), address.EncodeAccountID(id), seq))
			return showAccount(cmd, l, id)
		})
	},
}

var ledgerTrustCmd = &cobra.Command{
	Use:   "trust <holder> <currency> <issuer> <limit>",
	Short: "设置信任线额度",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		holder, err := address.ParseAccount(args[0])
		if err != nil {
			return err
		}
		currency, err := params.ParseCurrency(args[1])
		if err != nil {
			return err
		}
		issuer, err := address.ParseAccount(args[2])
		if err != nil {
			return err
		}
		limit, err := decimal.NewFromString(args[3])
		if err != nil {
			return fmt.Errorf("额度无效: %w", err)
		}
		return withLedger(func(l *ledger.Ledger) error {
			if _, err := l.SetTrustLine(cmd.Context(), holder, currency, issuer, limit); err != nil {
				return err
			}
			out.success("信任线已更新")
			return showAccount(cmd, l, holder)
		})
	},
}

var ledgerAuthorizeCmd = &cobra.Command{
	Use:   "authorize-mpt <holder> <mpt id>",
	Short: "授权账户持有 MPT",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		holder, err := address.ParseAccount(args[0])
		if err != nil {
			return err
		}
		id, err := params.ParseMPTID(args[1])
		if err != nil {
			return err
		}
		return withLedger(func(l *ledger.Ledger) error {
			if _, err := l.AuthorizeMPT(cmd.Context(), holder, id); err != nil {
				return err
			}
			out.success("MPT 持仓已授权")
			return showAccount(cmd, l, holder)
		})
	},
}

func init() {
	ledgerCmd.AddCommand(ledgerShowCmd, ledgerFundCmd, ledgerTrustCmd, ledgerAuthorizeCmd)
}

// withLedger 启动嵌入宿主并在账本上执行 fn
func withLedger(fn func(l *ledger.Ledger) error) error {
	var l *ledger.Ledger
	host, err := startEmbedded(&l)
	if err != nil {
		return err
	}
	defer func() { _ = host.Stop() }()
	return fn(l)
}

func showAccount(cmd *cobra.Command, l *ledger.Ledger, id framework.AccountID) error {
	info, err := l.Account(cmd.Context(), id)
	if err != nil {
		return err
	}
	return out.account(info)
}
