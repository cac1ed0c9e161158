// Package types provides type definitions for JSON-RPC API responses.
package types

// Response JSON-RPC 2.0 响应
type Response struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      interface{}    `json:"id"`
	Result  interface{}    `json:"result,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse JSON-RPC 2.0 错误响应
type ErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// 标准错误码
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeServerError    = -32000
)

// Notification 服务端推送（无 id）
type Notification struct {
	JSONRPC string             `json:"jsonrpc"`
	Method  string             `json:"method"`
	Params  SubscriptionParams `json:"params"`
}

// SubscriptionParams 订阅推送参数
type SubscriptionParams struct {
	Subscription string      `json:"subscription"`
	Result       interface{} `json:"result"`
}
