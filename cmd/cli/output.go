package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/xrpl-wasm/contracts/internal/core/executor"
	"github.com/xrpl-wasm/contracts/internal/core/ledger"
)

// outputFormat 输出格式
type outputFormat string

const (
	formatPretty outputFormat = "pretty"
	formatJSON   outputFormat = "json"
)

func parseFormat(s string) (outputFormat, error) {
	switch outputFormat(s) {
	case formatPretty, formatJSON:
		return outputFormat(s), nil
	default:
		return "", fmt.Errorf("不支持的输出格式: %s", s)
	}
}

// printer 命令输出
//
// pretty 模式使用 pterm 渲染表格，json 模式只输出结果对象
type printer struct {
	format outputFormat
	w      io.Writer
}

func newPrinter(format outputFormat, w io.Writer) *printer {
	return &printer{format: format, w: w}
}

func (p *printer) json(v interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) success(msg string) {
	if p.format == formatPretty {
		pterm.Success.WithWriter(p.w).Println(msg)
	}
}

func (p *printer) warning(msg string) {
	if p.format == formatPretty {
		pterm.Warning.WithWriter(p.w).Println(msg)
	}
}

func (p *printer) table(data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithWriter(p.w).WithData(data).Render()
}

// result 输出一次合约调用的结果
func (p *printer) result(res *executor.Result) error {
	if p.format == formatJSON {
		return p.json(res)
	}

	status := fmt.Sprintf("%d (%s)", res.Status, res.StatusName)
	summary := pterm.TableData{
		{"字段", "值"},
		{"调用", res.ID},
		{"函数", res.Function},
		{"合约账户", res.ContractAccount},
		{"代码哈希", res.CodeHash},
		{"状态", status},
		{"结果", string(res.Outcome)},
		{"耗时", res.Duration.Round(time.Microsecond).String()},
		{"编译缓存", strconv.FormatBool(res.FromCache)},
	}
	if res.Error != "" {
		summary = append(summary, []string{"错误", res.Error})
	}
	if err := p.table(summary); err != nil {
		return err
	}

	if len(res.Traces) > 0 {
		pterm.DefaultSection.WithWriter(p.w).Println("跟踪输出")
		for _, tr := range res.Traces {
			pterm.Fprintln(p.w, "  "+tr.String())
		}
		if res.DroppedTraces > 0 {
			p.warning(fmt.Sprintf("已丢弃 %d 条跟踪", res.DroppedTraces))
		}
	}

	if len(res.Transfers) > 0 {
		pterm.DefaultSection.WithWriter(p.w).Println("转账")
		data := pterm.TableData{{"金额", "目标", "结果"}}
		for _, t := range res.Transfers {
			data = append(data, []string{t.Amount, t.Destination, strconv.FormatInt(t.Result, 10)})
		}
		if err := p.table(data); err != nil {
			return err
		}
	}

	switch res.Outcome {
	case executor.OutcomeSuccess:
		p.success("合约执行成功")
	default:
		p.warning("合约返回 " + res.StatusName)
	}
	return nil
}

// account 输出账户视图
func (p *printer) account(info *ledger.AccountInfo) error {
	if p.format == formatJSON {
		return p.json(info)
	}

	if err := p.table(pterm.TableData{
		{"字段", "值"},
		{"地址", info.Address},
		{"账户标识", info.AccountID},
		{"XRP (drops)", strconv.FormatInt(info.Drops, 10)},
		{"序号", strconv.FormatUint(uint64(info.Sequence), 10)},
	}); err != nil {
		return err
	}

	if len(info.TrustLines) > 0 {
		pterm.DefaultSection.WithWriter(p.w).Println("信任线")
		data := pterm.TableData{{"币种", "发行方", "余额", "额度"}}
		for _, l := range info.TrustLines {
			data = append(data, []string{l.Currency, l.Issuer, l.Balance.String(), l.Limit.String()})
		}
		if err := p.table(data); err != nil {
			return err
		}
	}
	if len(info.MPTokens) > 0 {
		pterm.DefaultSection.WithWriter(p.w).Println("MPT 持仓")
		data := pterm.TableData{{"MPT", "发行方", "数量"}}
		for _, m := range info.MPTokens {
			data = append(data, []string{m.MPTID, m.Issuer, strconv.FormatInt(m.Amount, 10)})
		}
		return p.table(data)
	}
	return nil
}
