package testing

import (
	"crypto/sha256"
	"fmt"

	framework "github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
)

// ==================== 合约测试框架 ====================
//
// 🌟 **设计理念**：在原生 Go 测试中模拟 host_lib 宿主
//
// 🎯 **核心特性**：
// - 按索引登记函数参数/实例参数（正常值、原始字节或错误码）
// - 可编排的转账结果与转账调用记录
// - 跟踪输出记录，可整体切换为失败
//

// ==================== 测试数据 ====================

// TransferCall 一次转账调用记录
type TransferCall struct {
	Amount      []byte
	Destination framework.AccountID
}

// TraceRecord 一条跟踪输出
type TraceRecord struct {
	Message string
	Data    []byte
	AsHex   bool
	Number  int64
	IsNum   bool
}

// String 便于断言失败时阅读
func (r TraceRecord) String() string {
	if r.IsNum {
		return fmt.Sprintf("%s %d", r.Message, r.Number)
	}
	if r.AsHex {
		return fmt.Sprintf("%s %X", r.Message, r.Data)
	}
	return r.Message + string(r.Data)
}

type storedParam struct {
	typ  framework.ParamType
	data []byte
	code int32
}

// ==================== MockHost ====================

// MockHost 内存宿主，实现 framework.Host
type MockHost struct {
	functionParams map[uint32]storedParam
	instanceParams map[uint32]storedParam

	// TransferResult 每次转账返回的结果码
	TransferResult int64

	// FailTraces 为 true 时所有跟踪调用返回 INTERNAL_ERROR
	FailTraces bool

	Transfers []TransferCall
	Traces    []TraceRecord
}

var _ framework.Host = (*MockHost)(nil)

// NewMockHost 创建空宿主，转账默认成功（交易标识1）
func NewMockHost() *MockHost {
	return &MockHost{
		functionParams: make(map[uint32]storedParam),
		instanceParams: make(map[uint32]storedParam),
		TransferResult: 1,
	}
}

// SetFunctionParam 登记函数参数
func (h *MockHost) SetFunctionParam(index uint32, v framework.Encodable) *MockHost {
	h.functionParams[index] = encodeParam(v)
	return h
}

// SetFunctionParamBytes 登记原始字节（用于构造畸形参数）
func (h *MockHost) SetFunctionParamBytes(index uint32, typ framework.ParamType, data []byte) *MockHost {
	h.functionParams[index] = storedParam{typ: typ, data: append([]byte(nil), data...)}
	return h
}

// SetFunctionParamError 让该索引的读取返回指定错误码
func (h *MockHost) SetFunctionParamError(index uint32, code int32) *MockHost {
	h.functionParams[index] = storedParam{code: code}
	return h
}

// SetInstanceParam 登记实例参数
func (h *MockHost) SetInstanceParam(index uint32, v framework.Encodable) *MockHost {
	h.instanceParams[index] = encodeParam(v)
	return h
}

func encodeParam(v framework.Encodable) storedParam {
	data, err := v.Encode()
	if err != nil {
		return storedParam{code: framework.ErrorCode(err)}
	}
	return storedParam{typ: v.ParamType(), data: data}
}

func readStored(params map[uint32]storedParam, index uint32, typ framework.ParamType, buf []byte) int32 {
	p, ok := params[index]
	if !ok {
		return framework.FIELD_NOT_FOUND
	}
	if p.code != 0 {
		return p.code
	}
	if !framework.CompatibleParamTypes(typ, p.typ) {
		return framework.INVALID_PARAMS
	}
	if len(buf) < len(p.data) {
		return framework.BUFFER_TOO_SMALL
	}
	return int32(copy(buf, p.data))
}

// FunctionParam 实现 framework.ParamProvider
func (h *MockHost) FunctionParam(index uint32, typ framework.ParamType, buf []byte) int32 {
	return readStored(h.functionParams, index, typ, buf)
}

// InstanceParam 实现 framework.ParamProvider
func (h *MockHost) InstanceParam(index uint32, typ framework.ParamType, buf []byte) int32 {
	return readStored(h.instanceParams, index, typ, buf)
}

// Transfer 实现 framework.TransferService
func (h *MockHost) Transfer(amount []byte, destination framework.AccountID) int64 {
	h.Transfers = append(h.Transfers, TransferCall{
		Amount:      append([]byte(nil), amount...),
		Destination: destination,
	})
	return h.TransferResult
}

// Trace 实现 framework.Tracer
func (h *MockHost) Trace(msg string, data []byte, asHex bool) int32 {
	if h.FailTraces {
		return framework.INTERNAL_ERROR
	}
	h.Traces = append(h.Traces, TraceRecord{Message: msg, Data: append([]byte(nil), data...), AsHex: asHex})
	return framework.SUCCESS
}

// TraceNum 实现 framework.Tracer
func (h *MockHost) TraceNum(msg string, n int64) int32 {
	if h.FailTraces {
		return framework.INTERNAL_ERROR
	}
	h.Traces = append(h.Traces, TraceRecord{Message: msg, Number: n, IsNum: true})
	return framework.SUCCESS
}

// ==================== 查询辅助 ====================

// TraceNumber 查找第一条同名数值跟踪
func (h *MockHost) TraceNumber(msg string) (int64, bool) {
	for _, r := range h.Traces {
		if r.IsNum && r.Message == msg {
			return r.Number, true
		}
	}
	return 0, false
}

// HasTrace 是否输出过该消息
func (h *MockHost) HasTrace(msg string) bool {
	for _, r := range h.Traces {
		if r.Message == msg {
			return true
		}
	}
	return false
}

// LastTransfer 最近一次转账（解码后的金额）
func (h *MockHost) LastTransfer() (framework.Amount, framework.AccountID, bool) {
	if len(h.Transfers) == 0 {
		return framework.Amount{}, framework.AccountID{}, false
	}
	call := h.Transfers[len(h.Transfers)-1]
	amount, err := framework.DecodeAmount(call.Amount)
	if err != nil {
		return framework.Amount{}, call.Destination, false
	}
	return amount, call.Destination, true
}

// ==================== 测试账户 ====================

// TestAccount 由名称派生确定性的账户标识
func TestAccount(name string) framework.AccountID {
	sum := sha256.Sum256([]byte("test-account:" + name))
	var id framework.AccountID
	copy(id[:], sum[:framework.AccountIDSize])
	return id
}

// USD 测试用美元发行货币金额（整数单位）
func USD(units int64, issuer framework.AccountID) framework.Amount {
	return framework.IOU(units, 0, framework.ISOCurrency("USD"), issuer)
}
