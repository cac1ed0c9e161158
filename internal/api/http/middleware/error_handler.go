package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apitypes "github.com/xrpl-wasm/contracts/internal/api/types"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
)

// ErrorHandler 错误处理中间件
//
// 处理器通过 c.Error 上报错误，非 Problem Details 错误统一转为 500。
func ErrorHandler(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		problem, ok := apitypes.IsProblemDetails(err)
		if !ok {
			logger.Errorf("处理器返回了非 Problem Details 错误: path=%s err=%v", c.Request.URL.Path, err)
			problem = apitypes.NewProblemDetails(
				apitypes.CodeCommonInternalError,
				apitypes.LayerAPI,
				"服务器内部错误",
				fmt.Sprintf("Internal error: %v", err),
				http.StatusInternalServerError,
				map[string]interface{}{"path": c.Request.URL.Path},
			)
		}
		problem.Instance = c.Request.URL.Path
		if rid := GetRequestID(c); rid != "" {
			problem.TraceID = rid
		}

		logger.Warnf("HTTP error: code=%s traceId=%s path=%s err=%v",
			problem.Code, problem.TraceID, c.Request.URL.Path, err)
		problem.WriteJSON(c.Writer)
		c.Abort()
	}
}

// WriteError 以 Problem Details 形式上报错误，由 ErrorHandler 写出
func WriteError(c *gin.Context, code, layer, userMessage, detail string, status int, details map[string]interface{}) {
	_ = c.Error(apitypes.NewProblemDetails(code, layer, userMessage, detail, status, details))
	c.Abort()
}
