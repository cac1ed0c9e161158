package framework

// ==================== 合约参数 ====================
//
// 参数按位置索引从宿主读取，分两类来源：
//   - 函数参数（function param）：每次调用由调用方提供
//   - 实例参数（instance param）：合约实例创建时配置
//
// 每类都提供两种访问方式：
//   - GetXxxParam：可失败，返回 (值, error)
//   - SafeGetXxxParam：不失败，失败时返回类型零值

// ParamType 参数类型码（宿主用于类型校验）
type ParamType int32

const (
	ParamAccountID   ParamType = 1
	ParamAmount      ParamType = 2
	ParamTokenAmount ParamType = 3
)

// String 类型名称
func (t ParamType) String() string {
	switch t {
	case ParamAccountID:
		return "AccountID"
	case ParamAmount:
		return "Amount"
	case ParamTokenAmount:
		return "TokenAmount"
	default:
		return "Unknown"
	}
}

// CompatibleParamTypes 请求类型能否读取以存储类型登记的参数
//
// Amount 与 TokenAmount 互通，是否为原生货币由合约侧解码时再校验。
func CompatibleParamTypes(requested, stored ParamType) bool {
	if requested == stored {
		return true
	}
	isAmount := func(t ParamType) bool { return t == ParamAmount || t == ParamTokenAmount }
	return isAmount(requested) && isAmount(stored)
}

// maxParamSize 参数缓冲区大小（覆盖最长的 IOU 金额）
const maxParamSize = MaxAmountSize

// Param 可从宿主字节解码的参数类型
type Param interface {
	ParamType() ParamType
	DecodeParam(data []byte) error
}

// Encodable 可编码为宿主参数字节的类型
type Encodable interface {
	ParamType() ParamType
	Encode() ([]byte, error)
}

// ParamType 实现 Param
func (id AccountID) ParamType() ParamType { return ParamAccountID }

// DecodeParam 实现 Param
func (id *AccountID) DecodeParam(data []byte) error {
	decoded, err := AccountIDFromBytes(data)
	if err != nil {
		return err
	}
	*id = decoded
	return nil
}

// Encode 实现 Encodable
func (id AccountID) Encode() ([]byte, error) {
	out := make([]byte, AccountIDSize)
	copy(out, id[:])
	return out, nil
}

// ParamType 实现 Param
func (a Amount) ParamType() ParamType { return ParamAmount }

// DecodeParam 实现 Param
func (a *Amount) DecodeParam(data []byte) error {
	decoded, err := DecodeAmount(data)
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}

// ParamType 实现 Param
func (t TokenAmount) ParamType() ParamType { return ParamTokenAmount }

// DecodeParam 实现 Param，拒绝原生货币
func (t *TokenAmount) DecodeParam(data []byte) error {
	decoded, err := DecodeAmount(data)
	if err != nil {
		return err
	}
	if decoded.Kind() == KindXRP {
		return &HostError{Code: DECODING_ERROR}
	}
	t.Amount = decoded
	return nil
}

// paramOf 约束：T 的指针实现 Param
type paramOf[T any] interface {
	*T
	Param
}

type paramReader func(index uint32, typ ParamType, buf []byte) int32

// GetFunctionParam 读取必需的函数参数
func GetFunctionParam[T any, PT paramOf[T]](p ParamProvider, index uint32) (T, error) {
	return readParam[T, PT](p.FunctionParam, index)
}

// SafeGetFunctionParam 尽力读取函数参数，失败时返回零值
func SafeGetFunctionParam[T any, PT paramOf[T]](p ParamProvider, index uint32) T {
	v, _ := readParam[T, PT](p.FunctionParam, index)
	return v
}

// GetFunctionParamOr 尽力读取函数参数，失败时返回 fallback
func GetFunctionParamOr[T any, PT paramOf[T]](p ParamProvider, index uint32, fallback T) T {
	v, err := readParam[T, PT](p.FunctionParam, index)
	if err != nil {
		return fallback
	}
	return v
}

// GetInstanceParam 读取必需的实例参数
func GetInstanceParam[T any, PT paramOf[T]](p ParamProvider, index uint32) (T, error) {
	return readParam[T, PT](p.InstanceParam, index)
}

// SafeGetInstanceParam 尽力读取实例参数，失败时返回零值
func SafeGetInstanceParam[T any, PT paramOf[T]](p ParamProvider, index uint32) T {
	v, _ := readParam[T, PT](p.InstanceParam, index)
	return v
}

func readParam[T any, PT paramOf[T]](read paramReader, index uint32) (T, error) {
	var v T
	var buf [maxParamSize]byte
	n := read(index, PT(&v).ParamType(), buf[:])
	if n < 0 {
		return v, &HostError{Code: n}
	}
	if int(n) > len(buf) {
		return v, &HostError{Code: BUFFER_TOO_SMALL}
	}
	if err := PT(&v).DecodeParam(buf[:n]); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
