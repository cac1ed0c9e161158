// Package hostabi 实现合约可调用的 host_lib 宿主函数
//
// 🎯 **职责**：把参数提供、账本转账、跟踪输出三类宿主能力适配为 wazero 宿主函数。
//
// ⚠️ **关键设计**：host_lib 模块在运行时内只实例化一次，
// 每次调用的状态（InvocationContext）通过 context.Context 传入宿主函数，
// 不能被闭包捕获。
package hostabi

import (
	"context"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/params"
)

// TransferLedger 宿主转账依赖的账本能力
type TransferLedger interface {
	Transfer(ctx context.Context, from framework.AccountID, amount framework.Amount, to framework.AccountID) (int64, error)
}

// TraceRecord 合约输出的一条跟踪
type TraceRecord struct {
	Message string    `json:"message"`
	Data    string    `json:"data,omitempty"`
	Number  int64     `json:"number,omitempty"`
	IsNum   bool      `json:"is_num,omitempty"`
	At      time.Time `json:"at"`
}

// String 跟踪的单行文本
func (r TraceRecord) String() string {
	if r.IsNum {
		return r.Message + " " + formatInt(r.Number)
	}
	if r.Data == "" {
		return r.Message
	}
	return r.Message + " " + r.Data
}

// TransferRecord 合约发起的一次转账
type TransferRecord struct {
	Amount      string `json:"amount"`      // 金额字面量，解码失败时为十六进制
	Destination string `json:"destination"` // 目标经典地址
	Result      int64  `json:"result"`      // 交易标识或负数错误码
}

// InvocationContext 单次合约调用的宿主状态
type InvocationContext struct {
	ID              string
	ContractAccount framework.AccountID
	FunctionParams  []params.Param
	InstanceParams  []params.Param
	Ledger          TransferLedger

	// MaxTraces 最多保留的跟踪条数，0 表示不限制
	MaxTraces int

	mu            sync.Mutex
	traces        []TraceRecord
	droppedTraces int
	transfers     []TransferRecord
}

type invocationKey struct{}

// WithInvocation 把调用状态放入 context
func WithInvocation(ctx context.Context, ic *InvocationContext) context.Context {
	return context.WithValue(ctx, invocationKey{}, ic)
}

// FromContext 取出调用状态，不存在时返回 nil
func FromContext(ctx context.Context) *InvocationContext {
	ic, _ := ctx.Value(invocationKey{}).(*InvocationContext)
	return ic
}

// Traces 已记录的跟踪（副本）
func (ic *InvocationContext) Traces() []TraceRecord {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return append([]TraceRecord(nil), ic.traces...)
}

// DroppedTraces 超出上限被丢弃的跟踪条数
func (ic *InvocationContext) DroppedTraces() int {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.droppedTraces
}

// Transfers 已发起的转账（副本）
func (ic *InvocationContext) Transfers() []TransferRecord {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return append([]TransferRecord(nil), ic.transfers...)
}

func (ic *InvocationContext) addTrace(r TraceRecord) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if ic.MaxTraces > 0 && len(ic.traces) >= ic.MaxTraces {
		ic.droppedTraces++
		return
	}
	ic.traces = append(ic.traces, r)
}

func (ic *InvocationContext) addTransfer(r TransferRecord) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.transfers = append(ic.transfers, r)
}

// lookup 查找参数，返回数据或负数错误码
func lookup(list []params.Param, index uint32, requested framework.ParamType) ([]byte, int32) {
	if requested != framework.ParamAccountID && requested != framework.ParamAmount && requested != framework.ParamTokenAmount {
		return nil, framework.INVALID_PARAMS
	}
	if uint64(index) >= uint64(len(list)) {
		return nil, framework.FIELD_NOT_FOUND
	}
	p := list[index]
	if !framework.CompatibleParamTypes(requested, p.Type) {
		return nil, framework.INVALID_PARAMS
	}
	return p.Data, framework.SUCCESS
}

func renderData(data []byte, asHex bool) string {
	if len(data) == 0 {
		return ""
	}
	if asHex {
		return strings.ToUpper(hex.EncodeToString(data))
	}
	return string(data)
}
