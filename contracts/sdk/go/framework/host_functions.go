//go:build tinygo || wasip1

package framework

import "unsafe"

// ==================== host_lib 宿主函数绑定 ====================
//
// 🔧 注意：//go:wasmimport 函数只能是声明，不能有函数体
// TinyGo 0.31+ 与 Go 1.24+ (GOOS=wasip1) 均支持该写法

//go:wasmimport host_lib function_param
func functionParam(index int32, typeCode int32, outPtr *byte, outLen int32) int32

//go:wasmimport host_lib instance_param
func instanceParam(index int32, typeCode int32, outPtr *byte, outLen int32) int32

//go:wasmimport host_lib transfer
func transfer(amountPtr *byte, amountLen int32, accountPtr *byte, accountLen int32) int64

//go:wasmimport host_lib trace
func trace(msgPtr *byte, msgLen int32, dataPtr *byte, dataLen int32, asHex int32) int32

//go:wasmimport host_lib trace_num
func traceNum(msgPtr *byte, msgLen int32, number int64) int32

// wasmHost 通过 wasmimport 访问真实宿主
type wasmHost struct{}

// DefaultHost 返回当前运行环境的宿主
func DefaultHost() Host {
	return wasmHost{}
}

func (wasmHost) FunctionParam(index uint32, typ ParamType, buf []byte) int32 {
	return functionParam(int32(index), int32(typ), unsafe.SliceData(buf), int32(len(buf)))
}

func (wasmHost) InstanceParam(index uint32, typ ParamType, buf []byte) int32 {
	return instanceParam(int32(index), int32(typ), unsafe.SliceData(buf), int32(len(buf)))
}

func (wasmHost) Transfer(amount []byte, destination AccountID) int64 {
	return transfer(unsafe.SliceData(amount), int32(len(amount)), &destination[0], AccountIDSize)
}

func (wasmHost) Trace(msg string, data []byte, asHex bool) int32 {
	hexFlag := int32(0)
	if asHex {
		hexFlag = 1
	}
	return trace(unsafe.StringData(msg), int32(len(msg)), unsafe.SliceData(data), int32(len(data)), hexFlag)
}

func (wasmHost) TraceNum(msg string, n int64) int32 {
	return traceNum(unsafe.StringData(msg), int32(len(msg)), n)
}
