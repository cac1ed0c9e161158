package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xrpl-wasm/contracts/internal/api/http/middleware"
	apitypes "github.com/xrpl-wasm/contracts/internal/api/types"
	"github.com/xrpl-wasm/contracts/internal/core/engines/wasm/runtime"
	"github.com/xrpl-wasm/contracts/internal/core/executor"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
	"github.com/xrpl-wasm/contracts/internal/core/params"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
)

// Invoker 合约调用能力
type Invoker interface {
	Invoke(ctx context.Context, req executor.Request) (*executor.Result, error)
}

// InvokeRequest 合约调用请求
//
// 参数使用字面量形式，如 "xrp:1000000"、"account:rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"。
type InvokeRequest struct {
	Wasm            []byte   `json:"wasm" binding:"required"`     // base64 编码的 WASM 字节码
	Function        string   `json:"function" binding:"required"` // 入口函数名
	Params          []string `json:"params,omitempty"`
	InstanceParams  []string `json:"instance_params,omitempty"`
	ContractAccount string   `json:"contract_account,omitempty"` // 覆盖默认合约账户
}

// InvokeHandler 合约调用处理器
type InvokeHandler struct {
	invoker Invoker
	logger  log.Logger
}

// NewInvokeHandler 创建合约调用处理器
func NewInvokeHandler(invoker Invoker, logger log.Logger) *InvokeHandler {
	return &InvokeHandler{invoker: invoker, logger: logger}
}

// RegisterRoutes 注册合约调用路由
func (h *InvokeHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/invoke", h.Invoke)
}

// Invoke POST /v1/invoke
func (h *InvokeHandler) Invoke(c *gin.Context) {
	var req InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误", err)
		return
	}

	fnParams, err := params.ParseAll(req.Params)
	if err != nil {
		badRequest(c, "函数参数无效", err)
		return
	}
	instParams, err := params.ParseAll(req.InstanceParams)
	if err != nil {
		badRequest(c, "实例参数无效", err)
		return
	}

	execReq := executor.Request{
		Code:           req.Wasm,
		Function:       req.Function,
		FunctionParams: fnParams,
		InstanceParams: instParams,
	}
	if req.ContractAccount != "" {
		id, err := address.ParseAccount(req.ContractAccount)
		if err != nil {
			badRequest(c, "合约账户无效", err)
			return
		}
		execReq.ContractAccount = id
	}

	res, err := h.invoker.Invoke(c.Request.Context(), execReq)
	if err != nil {
		h.invokeError(c, err)
		return
	}
	respond(c, http.StatusOK, res)
}

func (h *InvokeHandler) invokeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, executor.ErrEmptyCode), errors.Is(err, executor.ErrMissingFunction):
		badRequest(c, "请求缺少必要字段", err)
	case errors.Is(err, runtime.ErrCompileFailed):
		middleware.WriteError(c, apitypes.CodeContractCompileFailed, apitypes.LayerContractHost,
			"合约编译失败", err.Error(), http.StatusUnprocessableEntity, nil)
	case errors.Is(err, runtime.ErrFunctionNotFound), errors.Is(err, runtime.ErrInvalidSignature),
		errors.Is(err, runtime.ErrInstantiateFailed):
		middleware.WriteError(c, apitypes.CodeContractInvalidEntry, apitypes.LayerContractHost,
			"合约入口不可用", err.Error(), http.StatusUnprocessableEntity, nil)
	default:
		h.logger.Errorf("合约调用失败: %v", err)
		middleware.WriteError(c, apitypes.CodeContractInvocationError, apitypes.LayerContractHost,
			"合约调用失败", err.Error(), http.StatusInternalServerError, nil)
	}
}
