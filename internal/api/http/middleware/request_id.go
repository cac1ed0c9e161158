package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader 请求ID的请求头与响应头
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"

	// maxRequestIDLen 客户端自带ID的最大长度，超过时重新生成
	maxRequestIDLen = 128
)

// RequestID 请求ID中间件
type RequestID struct{}

// NewRequestID 创建请求ID中间件
func NewRequestID() *RequestID {
	return &RequestID{}
}

// Middleware 沿用客户端的 X-Request-ID，缺失或过长时生成 uuid
func (m *RequestID) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}

		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID 当前请求的ID，中间件未运行时为空
func GetRequestID(c *gin.Context) string {
	if s := c.GetString(requestIDKey); s != "" {
		return s
	}
	return c.GetHeader(RequestIDHeader)
}
