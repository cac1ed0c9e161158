package framework

import (
	"encoding/binary"
	"math"
)

// AmountKind 金额种类
type AmountKind uint8

const (
	// KindXRP 原生货币（单位：drops）
	KindXRP AmountKind = iota + 1
	// KindIOU 发行货币（十进制浮点值 + 货币 + 发行方）
	KindIOU
	// KindMPT 多用途代币（整数值 + 发行标识）
	KindMPT
)

// String 种类名称
func (k AmountKind) String() string {
	switch k {
	case KindXRP:
		return "XRP"
	case KindIOU:
		return "IOU"
	case KindMPT:
		return "MPT"
	default:
		return "UNKNOWN"
	}
}

// 二进制格式常量（与 XRPL STAmount 一致）
const (
	xrpAmountSize = 8
	iouAmountSize = 48
	mptAmountSize = 33

	// MaxAmountSize 金额编码的最大长度
	MaxAmountSize = iouAmountSize

	flagNotXRP   = uint64(1) << 63
	flagPositive = uint64(1) << 62
	flagMPT      = uint64(1) << 61

	mptLeadNotXRP   = byte(0x80)
	mptLeadPositive = byte(0x40)
	mptLeadMPT      = byte(0x20)

	// MaxNativeDrops 原生货币上限（1000亿 XRP）
	MaxNativeDrops = int64(100_000_000_000_000_000)

	minMantissa = int64(1_000_000_000_000_000)
	maxMantissa = int64(9_999_999_999_999_999)
	minExponent = int32(-96)
	maxExponent = int32(80)

	mantissaMask = (uint64(1) << 54) - 1
)

// Amount 可转账的金额
//
// 值语义，零值无效（Kind 为 0）。
type Amount struct {
	kind     AmountKind
	value    int64 // XRP: drops；MPT: 整数单位
	mantissa int64 // IOU: 有符号尾数（已规范化）
	exponent int32 // IOU: 指数
	currency Currency
	issuer   AccountID
	mptID    MPTID
}

// XRP 构造原生货币金额
func XRP(drops int64) Amount {
	return Amount{kind: KindXRP, value: drops}
}

// IOU 构造发行货币金额，值为 mantissa × 10^exponent
//
// 尾数会被规范化到 [10^15, 10^16)；下溢归零。
func IOU(mantissa int64, exponent int32, currency Currency, issuer AccountID) Amount {
	m, e := normalizeIOU(mantissa, exponent)
	return Amount{kind: KindIOU, mantissa: m, exponent: e, currency: currency, issuer: issuer}
}

// MPT 构造多用途代币金额
func MPT(value int64, id MPTID) Amount {
	return Amount{kind: KindMPT, value: value, mptID: id}
}

// Kind 金额种类
func (a Amount) Kind() AmountKind { return a.kind }

// Drops 原生货币数量（仅 KindXRP 有意义）
func (a Amount) Drops() int64 { return a.value }

// MPTValue MPT 数量（仅 KindMPT 有意义）
func (a Amount) MPTValue() int64 { return a.value }

// IOUValue 发行货币的尾数与指数（仅 KindIOU 有意义）
func (a Amount) IOUValue() (mantissa int64, exponent int32) { return a.mantissa, a.exponent }

// Currency 发行货币代码
func (a Amount) Currency() Currency { return a.currency }

// Issuer 发行方
func (a Amount) Issuer() AccountID { return a.issuer }

// MPTID MPT 发行标识
func (a Amount) MPTID() MPTID { return a.mptID }

// IsValid 是否为已初始化的金额
func (a Amount) IsValid() bool {
	return a.kind == KindXRP || a.kind == KindIOU || a.kind == KindMPT
}

// IsZero 数值是否为零
func (a Amount) IsZero() bool {
	if a.kind == KindIOU {
		return a.mantissa == 0
	}
	return a.value == 0
}

// IsNegative 数值是否为负
func (a Amount) IsNegative() bool {
	if a.kind == KindIOU {
		return a.mantissa < 0
	}
	return a.value < 0
}

// normalizeIOU 规范化尾数与指数
func normalizeIOU(mantissa int64, exponent int32) (int64, int32) {
	if mantissa == 0 {
		return 0, 0
	}
	negative := mantissa < 0
	m := mantissa
	if negative {
		if m == math.MinInt64 {
			m = math.MaxInt64
		} else {
			m = -m
		}
	}
	e := exponent
	for m < minMantissa && e > minExponent {
		m *= 10
		e--
	}
	for m > maxMantissa {
		m /= 10
		e++
	}
	if m < minMantissa {
		return 0, 0
	}
	if negative {
		m = -m
	}
	return m, e
}

// ==================== 编解码 ====================

// Encode 编码为 STAmount 二进制格式
func (a Amount) Encode() ([]byte, error) {
	switch a.kind {
	case KindXRP:
		return encodeXRP(a.value)
	case KindIOU:
		return encodeIOU(a)
	case KindMPT:
		return encodeMPT(a)
	default:
		return nil, &HostError{Code: INVALID_PARAMS}
	}
}

func encodeXRP(drops int64) ([]byte, error) {
	var u uint64
	if drops >= 0 {
		if drops > MaxNativeDrops {
			return nil, &HostError{Code: INVALID_PARAMS}
		}
		u = uint64(drops) | flagPositive
	} else {
		if drops < -MaxNativeDrops {
			return nil, &HostError{Code: INVALID_PARAMS}
		}
		u = uint64(-drops)
	}
	out := make([]byte, xrpAmountSize)
	binary.BigEndian.PutUint64(out, u)
	return out, nil
}

func encodeIOU(a Amount) ([]byte, error) {
	if a.currency.IsXRP() {
		return nil, &HostError{Code: INVALID_PARAMS}
	}
	out := make([]byte, iouAmountSize)
	u := flagNotXRP
	if a.mantissa != 0 {
		if a.exponent > maxExponent || a.exponent < minExponent {
			return nil, &HostError{Code: INVALID_PARAMS}
		}
		m := a.mantissa
		if m > 0 {
			u |= flagPositive
		} else {
			m = -m
		}
		u |= uint64(a.exponent+97) << 54
		u |= uint64(m)
	}
	binary.BigEndian.PutUint64(out[0:8], u)
	copy(out[8:28], a.currency[:])
	copy(out[28:48], a.issuer[:])
	return out, nil
}

func encodeMPT(a Amount) ([]byte, error) {
	out := make([]byte, mptAmountSize)
	lead := mptLeadMPT
	v := a.value
	if v >= 0 {
		lead |= mptLeadPositive
	} else {
		if v == math.MinInt64 {
			return nil, &HostError{Code: INVALID_PARAMS}
		}
		v = -v
	}
	out[0] = lead
	binary.BigEndian.PutUint64(out[1:9], uint64(v))
	copy(out[9:], a.mptID[:])
	return out, nil
}

// DecodeAmount 解码 STAmount 二进制格式
func DecodeAmount(data []byte) (Amount, error) {
	switch len(data) {
	case xrpAmountSize:
		return decodeXRP(data)
	case iouAmountSize:
		return decodeIOU(data)
	case mptAmountSize:
		return decodeMPT(data)
	default:
		return Amount{}, &HostError{Code: DECODING_ERROR}
	}
}

func decodeXRP(data []byte) (Amount, error) {
	u := binary.BigEndian.Uint64(data)
	if u&flagNotXRP != 0 || u&flagMPT != 0 {
		return Amount{}, &HostError{Code: DECODING_ERROR}
	}
	drops := int64(u &^ (flagNotXRP | flagPositive | flagMPT))
	if drops > MaxNativeDrops {
		return Amount{}, &HostError{Code: DECODING_ERROR}
	}
	if u&flagPositive == 0 {
		drops = -drops
	}
	return XRP(drops), nil
}

func decodeIOU(data []byte) (Amount, error) {
	u := binary.BigEndian.Uint64(data[0:8])
	if u&flagNotXRP == 0 {
		return Amount{}, &HostError{Code: DECODING_ERROR}
	}
	var a Amount
	a.kind = KindIOU
	copy(a.currency[:], data[8:28])
	copy(a.issuer[:], data[28:48])
	if a.currency.IsXRP() {
		return Amount{}, &HostError{Code: DECODING_ERROR}
	}

	m := int64(u & mantissaMask)
	if m == 0 {
		return a, nil
	}
	if m < minMantissa || m > maxMantissa {
		return Amount{}, &HostError{Code: DECODING_ERROR}
	}
	e := int32((u>>54)&0xff) - 97
	if e < minExponent || e > maxExponent {
		return Amount{}, &HostError{Code: DECODING_ERROR}
	}
	if u&flagPositive == 0 {
		m = -m
	}
	a.mantissa = m
	a.exponent = e
	return a, nil
}

func decodeMPT(data []byte) (Amount, error) {
	lead := data[0]
	if lead&mptLeadNotXRP != 0 || lead&mptLeadMPT == 0 {
		return Amount{}, &HostError{Code: DECODING_ERROR}
	}
	u := binary.BigEndian.Uint64(data[1:9])
	if u > math.MaxInt64 {
		return Amount{}, &HostError{Code: DECODING_ERROR}
	}
	v := int64(u)
	if lead&mptLeadPositive == 0 {
		v = -v
	}
	var id MPTID
	copy(id[:], data[9:])
	return MPT(v, id), nil
}

// ==================== 转账 ====================

// Transfer 从合约账户向目标账户转出该金额
//
// 返回值：负数为失败码（宿主原样给出），非负为交易标识。
// 宿主返回 i64，这里收窄到 i32：负数下限钳制到 MinInt32，正数上限钳制到 MaxInt32。
func (a Amount) Transfer(t TransferService, destination AccountID) int32 {
	data, err := a.Encode()
	if err != nil {
		return ErrorCode(err)
	}
	return narrowResult(t.Transfer(data, destination))
}

func narrowResult(r int64) int32 {
	switch {
	case r < math.MinInt32:
		return math.MinInt32
	case r > math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(r)
	}
}

// TokenAmount 非原生金额（IOU 或 MPT）
type TokenAmount struct {
	Amount
}

// NewTokenAmount 把非原生金额包装为 TokenAmount
func NewTokenAmount(a Amount) (TokenAmount, error) {
	if a.kind != KindIOU && a.kind != KindMPT {
		return TokenAmount{}, &HostError{Code: INVALID_PARAMS}
	}
	return TokenAmount{Amount: a}, nil
}
