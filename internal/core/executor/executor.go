// Package executor 执行单次合约调用
//
// 📋 **调用流程**：
//  1. 分配调用ID（uuid），构建 hostabi.InvocationContext
//  2. 编译（命中缓存时跳过）→ 实例化 → 调用入口函数 → 销毁实例
//  3. 读取 i32 状态码并归类结果，记录指标，发布 invocation.completed 事件
//
// 每个请求恰好执行一次入口函数，不重试。
package executor

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/engines/wasm/runtime"
	"github.com/xrpl-wasm/contracts/internal/core/hostabi"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
	logimpl "github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/internal/core/ledger"
	"github.com/xrpl-wasm/contracts/internal/core/params"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/event"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
)

// EventInvocationCompleted 调用完成事件，参数为 *Result
const EventInvocationCompleted event.EventType = "invocation.completed"

var (
	// ErrEmptyCode 未提供合约字节码
	ErrEmptyCode = errors.New("合约字节码为空")
	// ErrMissingFunction 未指定入口函数
	ErrMissingFunction = errors.New("未指定入口函数")
)

// Outcome 调用结果分类
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"        // 状态码 0
	OutcomeBadParam      Outcome = "bad_param"      // BAD_PARAM 且未发起转账
	OutcomeTransferError Outcome = "transfer_error" // 其他负数状态码
	OutcomeTrap          Outcome = "trap"           // 执行陷阱或超时
	OutcomeUnknown       Outcome = "unknown"        // 正数状态码
)

// Request 调用请求
type Request struct {
	Code           []byte         // 合约 WASM 字节码
	Function       string         // 入口函数名，签名 () -> i32
	FunctionParams []params.Param // 函数参数
	InstanceParams []params.Param // 实例参数

	// ContractAccount 转账来源账户，零值时使用配置的合约账户
	ContractAccount framework.AccountID
}

// Result 调用结果
type Result struct {
	ID              string                   `json:"id"`
	Function        string                   `json:"function"`
	CodeHash        string                   `json:"code_hash"`
	ContractAccount string                   `json:"contract_account"`
	Status          int32                    `json:"status"`
	StatusName      string                   `json:"status_name,omitempty"`
	Outcome         Outcome                  `json:"outcome"`
	Error           string                   `json:"error,omitempty"`
	Traces          []hostabi.TraceRecord    `json:"traces"`
	DroppedTraces   int                      `json:"dropped_traces,omitempty"`
	Transfers       []hostabi.TransferRecord `json:"transfers"`
	FromCache       bool                     `json:"from_cache"`
	Duration        time.Duration            `json:"duration"`
}

// Executor 合约调用执行器
type Executor struct {
	runtime  *runtime.WazeroRuntime
	ledger   hostabi.TransferLedger
	contract framework.AccountID
	bus      event.EventBus
	logger   log.Logger
	metrics  *executorMetrics
	maxTrace int
}

// Config 执行器依赖
type Config struct {
	Runtime         *runtime.WazeroRuntime
	Ledger          hostabi.TransferLedger
	ContractAccount framework.AccountID
	EventBus        event.EventBus        // 可为nil
	Registerer      prometheus.Registerer // 可为nil
	Logger          log.Logger            // 可为nil
}

// New 创建执行器
func New(cfg Config) *Executor {
	return &Executor{
		runtime:  cfg.Runtime,
		ledger:   cfg.Ledger,
		contract: cfg.ContractAccount,
		bus:      cfg.EventBus,
		logger:   logimpl.OrNop(cfg.Logger),
		metrics:  newExecutorMetrics(cfg.Registerer),
		maxTrace: cfg.Runtime.Options().MaxTraceRecords,
	}
}

// ContractAccount 默认合约账户
func (e *Executor) ContractAccount() framework.AccountID {
	return e.contract
}

// Invoke 执行一次合约调用
//
// 编译、实例化失败或入口函数不存在时返回 error；
// 合约执行陷阱不视为 error，以 OutcomeTrap 返回。
func (e *Executor) Invoke(ctx context.Context, req Request) (*Result, error) {
	if len(req.Code) == 0 {
		return nil, ErrEmptyCode
	}
	if req.Function == "" {
		return nil, ErrMissingFunction
	}

	contract := e.contract
	if !req.ContractAccount.IsZero() {
		contract = req.ContractAccount
	}

	ic := &hostabi.InvocationContext{
		ID:              uuid.NewString(),
		ContractAccount: contract,
		FunctionParams:  req.FunctionParams,
		InstanceParams:  req.InstanceParams,
		Ledger:          e.ledger,
		MaxTraces:       e.maxTrace,
	}
	logger := e.logger.With("invocation", ic.ID, "function", req.Function)
	start := time.Now()

	compiled, err := e.runtime.CompileContract(ctx, req.Code)
	if err != nil {
		return nil, err
	}

	invokeCtx := hostabi.WithInvocation(ctx, ic)
	instance, err := e.runtime.CreateInstance(invokeCtx, compiled)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := e.runtime.DestroyInstance(ctx, instance); err != nil {
			logger.Warnf("销毁实例失败: %v", err)
		}
	}()

	status, callErr := e.runtime.CallEntryPoint(invokeCtx, instance, req.Function)
	if callErr != nil && (errors.Is(callErr, runtime.ErrFunctionNotFound) || errors.Is(callErr, runtime.ErrInvalidSignature)) {
		return nil, callErr
	}

	res := &Result{
		ID:              ic.ID,
		Function:        req.Function,
		CodeHash:        hex.EncodeToString(compiled.Hash),
		ContractAccount: address.EncodeAccountID(contract),
		Status:          status,
		Traces:          ic.Traces(),
		DroppedTraces:   ic.DroppedTraces(),
		Transfers:       ic.Transfers(),
		FromCache:       compiled.FromCache,
		Duration:        time.Since(start),
	}
	if callErr != nil {
		res.Outcome = OutcomeTrap
		res.Error = callErr.Error()
	} else {
		res.Outcome = classify(status, len(res.Transfers))
		res.StatusName = StatusName(status)
	}

	e.metrics.observe(res)
	if res.Outcome == OutcomeTrap {
		logger.Warnf("合约执行中断: %s", res.Error)
	} else {
		logger.Infof("调用完成: status=%d outcome=%s transfers=%d traces=%d 耗时=%s",
			res.Status, res.Outcome, len(res.Transfers), len(res.Traces), res.Duration)
	}
	if e.bus != nil {
		e.bus.Publish(EventInvocationCompleted, res)
	}
	return res, nil
}

// classify 按状态码归类
//
// 宿主的 INTERNAL_ERROR 与 BAD_PARAM 同为 -1，已发起转账时按转账失败处理。
func classify(status int32, transfers int) Outcome {
	switch {
	case status == framework.SUCCESS:
		return OutcomeSuccess
	case status == framework.BAD_PARAM && transfers == 0:
		return OutcomeBadParam
	case status < 0:
		return OutcomeTransferError
	default:
		return OutcomeUnknown
	}
}

// StatusName 状态码的可读名称
//
// 负数状态码依次尝试账本结果码与宿主错误码。
func StatusName(status int32) string {
	switch status {
	case framework.SUCCESS:
		return "SUCCESS"
	case framework.BAD_PARAM:
		return "BAD_PARAM"
	}
	numeric := strconv.Itoa(int(status))
	if name := ledger.Result(status).String(); name != numeric {
		return name
	}
	if name := framework.ErrorName(status); name != numeric {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", status)
}
