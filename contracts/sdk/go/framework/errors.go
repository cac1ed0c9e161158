package framework

import (
	"errors"
	"strconv"
)

// ==================== 宿主错误码 ====================
//
// 宿主函数以负数返回错误；这些值由宿主定义，合约只做透传或比较。

const (
	INTERNAL_ERROR        int32 = -1
	FIELD_NOT_FOUND       int32 = -2
	BUFFER_TOO_SMALL      int32 = -3
	DECODING_ERROR        int32 = -11
	POINTER_OUT_OF_BOUNDS int32 = -13
	NO_MEM_EXPORTED       int32 = -14
	INVALID_PARAMS        int32 = -15
	INVALID_ACCOUNT       int32 = -16
	INDEX_OUT_OF_BOUNDS   int32 = -18
)

var errorNames = map[int32]string{
	INTERNAL_ERROR:        "INTERNAL_ERROR",
	FIELD_NOT_FOUND:       "FIELD_NOT_FOUND",
	BUFFER_TOO_SMALL:      "BUFFER_TOO_SMALL",
	DECODING_ERROR:        "DECODING_ERROR",
	POINTER_OUT_OF_BOUNDS: "POINTER_OUT_OF_BOUNDS",
	NO_MEM_EXPORTED:       "NO_MEM_EXPORTED",
	INVALID_PARAMS:        "INVALID_PARAMS",
	INVALID_ACCOUNT:       "INVALID_ACCOUNT",
	INDEX_OUT_OF_BOUNDS:   "INDEX_OUT_OF_BOUNDS",
}

// ErrorName 返回错误码名称，未知错误码返回数字
func ErrorName(code int32) string {
	if name, ok := errorNames[code]; ok {
		return name
	}
	return strconv.Itoa(int(code))
}

// HostError 宿主函数返回的错误
type HostError struct {
	Code int32
}

// Error 实现error接口
func (e *HostError) Error() string {
	return "host error " + ErrorName(e.Code) + " (" + strconv.Itoa(int(e.Code)) + ")"
}

// ErrorCode 提取错误中的宿主错误码
//
// 非 HostError 一律视为 INTERNAL_ERROR；nil 返回 SUCCESS。
func ErrorCode(err error) int32 {
	if err == nil {
		return SUCCESS
	}
	var hostErr *HostError
	if errors.As(err, &hostErr) {
		return hostErr.Code
	}
	return INTERNAL_ERROR
}
