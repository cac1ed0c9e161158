package hostabi

import (
	"context"
	"time"

	"github.com/tetratelabs/wazero/api"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
	logimpl "github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/internal/core/ledger"
	"github.com/xrpl-wasm/contracts/internal/core/params"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
)

// 宿主函数名（host_lib 导入名）
const (
	FuncFunctionParam = "function_param"
	FuncInstanceParam = "instance_param"
	FuncTransfer      = "transfer"
	FuncTrace         = "trace"
	FuncTraceNum      = "trace_num"
)

// HostFunctions host_lib 宿主函数适配器
type HostFunctions struct {
	logger log.Logger // 宿主侧诊断
	traces log.Logger // 合约跟踪输出
}

// New 创建宿主函数适配器
//
// logger 记录宿主诊断，traces 接收合约的 trace 输出；均可为 nil。
func New(logger, traces log.Logger) *HostFunctions {
	return &HostFunctions{logger: logimpl.OrNop(logger), traces: logimpl.OrNop(traces)}
}

// Build 构建宿主函数映射
//
// 签名与合约侧 //go:wasmimport host_lib 声明一致：
//
//	function_param(index, type, out_ptr, out_len i32) -> i32
//	instance_param(index, type, out_ptr, out_len i32) -> i32
//	transfer(amount_ptr, amount_len, account_ptr, account_len i32) -> i64
//	trace(msg_ptr, msg_len, data_ptr, data_len, as_hex i32) -> i32
//	trace_num(msg_ptr, msg_len i32, n i64) -> i32
func (h *HostFunctions) Build() map[string]interface{} {
	return map[string]interface{}{
		FuncFunctionParam: func(ctx context.Context, m api.Module, index, typ, outPtr, outLen uint32) int32 {
			ic := FromContext(ctx)
			if ic == nil {
				h.logger.Error("function_param: 调用上下文未找到")
				return framework.INTERNAL_ERROR
			}
			return h.param(m, FuncFunctionParam, ic.FunctionParams, index, typ, outPtr, outLen)
		},

		FuncInstanceParam: func(ctx context.Context, m api.Module, index, typ, outPtr, outLen uint32) int32 {
			ic := FromContext(ctx)
			if ic == nil {
				h.logger.Error("instance_param: 调用上下文未找到")
				return framework.INTERNAL_ERROR
			}
			return h.param(m, FuncInstanceParam, ic.InstanceParams, index, typ, outPtr, outLen)
		},

		FuncTransfer: func(ctx context.Context, m api.Module, amountPtr, amountLen, accountPtr, accountLen uint32) int64 {
			return h.transfer(ctx, m, amountPtr, amountLen, accountPtr, accountLen)
		},

		FuncTrace: func(ctx context.Context, m api.Module, msgPtr, msgLen, dataPtr, dataLen, asHex uint32) int32 {
			ic := FromContext(ctx)
			if ic == nil {
				return framework.INTERNAL_ERROR
			}
			msg, code := readMemory(m, msgPtr, msgLen)
			if code < 0 {
				return code
			}
			data, code := readMemory(m, dataPtr, dataLen)
			if code < 0 {
				return code
			}
			rec := TraceRecord{Message: string(msg), Data: renderData(data, asHex != 0), At: time.Now()}
			ic.addTrace(rec)
			h.traces.Debugf("[%s] %s", ic.ID, rec)
			return framework.SUCCESS
		},

		FuncTraceNum: func(ctx context.Context, m api.Module, msgPtr, msgLen uint32, n int64) int32 {
			ic := FromContext(ctx)
			if ic == nil {
				return framework.INTERNAL_ERROR
			}
			msg, code := readMemory(m, msgPtr, msgLen)
			if code < 0 {
				return code
			}
			rec := TraceRecord{Message: string(msg), Number: n, IsNum: true, At: time.Now()}
			ic.addTrace(rec)
			h.traces.Debugf("[%s] %s", ic.ID, rec)
			return framework.SUCCESS
		},
	}
}

func (h *HostFunctions) param(m api.Module, name string, list []params.Param, index, typ, outPtr, outLen uint32) int32 {
	data, code := lookup(list, index, framework.ParamType(int32(typ)))
	if code < 0 {
		h.logger.Debugf("%s: index=%d type=%d 失败: %s", name, index, typ, framework.ErrorName(code))
		return code
	}
	n := writeMemory(m, outPtr, outLen, data)
	if n < 0 {
		h.logger.Debugf("%s: index=%d 写入失败: %s", name, index, framework.ErrorName(n))
	}
	return n
}

// transfer 从合约账户向目标账户转账
//
// 成功返回账本序号；宿主校验失败返回 framework 错误码，账本拒绝返回账本结果码。
func (h *HostFunctions) transfer(ctx context.Context, m api.Module, amountPtr, amountLen, accountPtr, accountLen uint32) int64 {
	ic := FromContext(ctx)
	if ic == nil {
		h.logger.Error("transfer: 调用上下文未找到")
		return int64(framework.INTERNAL_ERROR)
	}

	amountBytes, code := readMemory(m, amountPtr, amountLen)
	if code < 0 {
		return int64(code)
	}
	accountBytes, code := readMemory(m, accountPtr, accountLen)
	if code < 0 {
		return int64(code)
	}

	// 先还原金额，账户校验失败时记录仍可读
	amount, amountErr := framework.DecodeAmount(amountBytes)
	record := TransferRecord{Amount: params.Param{Data: amountBytes}.Hex()}
	if amountErr == nil {
		record.Amount = params.DescribeAmount(amount)
	}
	result := func(r int64) int64 {
		record.Result = r
		ic.addTransfer(record)
		return r
	}

	destination, err := framework.AccountIDFromBytes(accountBytes)
	if err != nil {
		return result(int64(framework.INVALID_ACCOUNT))
	}
	record.Destination = address.EncodeAccountID(destination)
	if destination.IsZero() {
		return result(int64(framework.INVALID_ACCOUNT))
	}

	if amountErr != nil {
		return result(int64(framework.DECODING_ERROR))
	}

	if ic.Ledger == nil {
		h.logger.Error("transfer: 账本未配置")
		return result(int64(framework.INTERNAL_ERROR))
	}

	seq, err := ic.Ledger.Transfer(ctx, ic.ContractAccount, amount, destination)
	if err != nil {
		code := ledger.ResultOf(err)
		h.logger.Debugf("transfer: %s -> %s 被拒绝: %v", record.Amount, record.Destination, err)
		return result(int64(code))
	}
	h.logger.Debugf("transfer: %s -> %s seq=%d", record.Amount, record.Destination, seq)
	return result(seq)
}
