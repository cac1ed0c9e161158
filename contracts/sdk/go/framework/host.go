package framework

// ==================== 宿主能力接口 ====================
//
// 与 host_lib 宿主函数一一对应，只传原始字节与整数码。
// WASM 构建中由 wasmimport 实现，单元测试中由 MockHost 实现。

// ParamProvider 参数提供者
type ParamProvider interface {
	// FunctionParam 把第 index 个函数参数写入 buf，返回写入字节数或负数错误码
	FunctionParam(index uint32, typ ParamType, buf []byte) int32

	// InstanceParam 把第 index 个实例参数写入 buf，返回写入字节数或负数错误码
	InstanceParam(index uint32, typ ParamType, buf []byte) int32
}

// TransferService 账本转账服务
type TransferService interface {
	// Transfer 从合约账户向 destination 转出 amount（STAmount 编码）
	// 负数为失败码，非负为交易标识
	Transfer(amount []byte, destination AccountID) int64
}

// Tracer 宿主跟踪输出
type Tracer interface {
	Trace(msg string, data []byte, asHex bool) int32
	TraceNum(msg string, n int64) int32
}

// Host 合约可用的全部宿主能力
type Host interface {
	ParamProvider
	TransferService
	Tracer
}

// ==================== 跟踪辅助 ====================

// Trace 输出一条消息
func Trace(t Tracer, msg string) error {
	return TraceData(t, msg, nil, false)
}

// TraceData 输出消息及附带数据
func TraceData(t Tracer, msg string, data []byte, asHex bool) error {
	if r := t.Trace(msg, data, asHex); r < 0 {
		return &HostError{Code: r}
	}
	return nil
}

// TraceNum 输出消息及数值
func TraceNum(t Tracer, msg string, n int64) error {
	if r := t.TraceNum(msg, n); r < 0 {
		return &HostError{Code: r}
	}
	return nil
}

// TraceAccount 以十六进制输出账户
func TraceAccount(t Tracer, msg string, id AccountID) error {
	return TraceData(t, msg, id[:], true)
}

// TraceAmount 以十六进制输出金额编码
func TraceAmount(t Tracer, msg string, a Amount) error {
	data, err := a.Encode()
	if err != nil {
		return err
	}
	return TraceData(t, msg, data, true)
}
