// Package handlers 提供HTTP API处理器
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xrpl-wasm/contracts/internal/api/http/middleware"
	httptypes "github.com/xrpl-wasm/contracts/internal/api/http/types"
	apitypes "github.com/xrpl-wasm/contracts/internal/api/types"
	"github.com/xrpl-wasm/contracts/internal/core/ledger"
)

// respond 写出统一成功响应
func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, httptypes.NewSuccessResponse(data).WithRequestID(middleware.GetRequestID(c)))
}

// badRequest 参数校验失败
func badRequest(c *gin.Context, userMessage string, err error) {
	middleware.WriteError(c, apitypes.CodeCommonValidationError, apitypes.LayerAPI,
		userMessage, err.Error(), http.StatusBadRequest, nil)
}

// ledgerError 把账本错误映射为 Problem Details
func ledgerError(c *gin.Context, err error) {
	if errors.Is(err, ledger.ErrAccountNotFound) {
		middleware.WriteError(c, apitypes.CodeLedgerAccountNotFound, apitypes.LayerLedger,
			"账户不存在", err.Error(), http.StatusNotFound, nil)
		return
	}
	var le *ledger.Error
	if errors.As(err, &le) && le.Result != ledger.TefINTERNAL {
		middleware.WriteError(c, apitypes.CodeLedgerRejected, apitypes.LayerLedger,
			"账本拒绝了该操作", err.Error(), http.StatusUnprocessableEntity,
			map[string]interface{}{"result": le.Result.String(), "code": int32(le.Result)})
		return
	}
	_ = c.Error(err)
}
