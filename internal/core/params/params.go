// Package params 把命令行与 API 中的参数字面量编码为宿主参数字节
//
// 字面量格式：
//
//	account:<r地址|40位十六进制>
//	xrp:<drops>
//	iou:<十进制值>/<货币>/<发行方>
//	mpt:<整数值>/<48位十六进制发行标识>
//	raw:<account|amount|token>/<十六进制>   原样传入（用于构造解码失败的参数）
package params

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
	"github.com/xrpl-wasm/contracts/pkg/utils"
)

// ErrInvalidLiteral 参数字面量无效
var ErrInvalidLiteral = errors.New("invalid parameter literal")

// maxMantissaDigits IOU 尾数的有效位数
const maxMantissaDigits = 16

// Param 已编码的宿主参数
type Param struct {
	Type framework.ParamType
	Data []byte
}

// Hex 参数字节的十六进制表示
func (p Param) Hex() string {
	return strings.ToUpper(hex.EncodeToString(p.Data))
}

// String 类型与字节
func (p Param) String() string {
	return p.Type.String() + ":" + p.Hex()
}

// Encode 由可编码值构造参数
func Encode(v framework.Encodable) (Param, error) {
	data, err := v.Encode()
	if err != nil {
		return Param{}, err
	}
	return Param{Type: v.ParamType(), Data: data}, nil
}

// MustEncode 同 Encode，失败时 panic（仅用于测试和常量构造）
func MustEncode(v framework.Encodable) Param {
	p, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse 解析单个参数字面量
func Parse(literal string) (Param, error) {
	kind, body, ok := strings.Cut(strings.TrimSpace(literal), ":")
	if !ok {
		return Param{}, fmt.Errorf("%w: %q 缺少类型前缀", ErrInvalidLiteral, literal)
	}

	switch strings.ToLower(kind) {
	case "account":
		id, err := address.ParseAccount(body)
		if err != nil {
			return Param{}, fmt.Errorf("%w: 账户 %q: %v", ErrInvalidLiteral, body, err)
		}
		return MustEncode(id), nil

	case "xrp":
		drops, err := utils.ParseDrops(body)
		if err != nil {
			return Param{}, fmt.Errorf("%w: %v", ErrInvalidLiteral, err)
		}
		return Encode(framework.XRP(drops))

	case "iou":
		amount, err := parseIOU(body)
		if err != nil {
			return Param{}, err
		}
		return encodeToken(amount)

	case "mpt":
		amount, err := parseMPT(body)
		if err != nil {
			return Param{}, err
		}
		return encodeToken(amount)

	case "raw":
		return parseRaw(body)

	default:
		return Param{}, fmt.Errorf("%w: 未知类型 %q", ErrInvalidLiteral, kind)
	}
}

// ParseAll 按顺序解析参数列表
func ParseAll(literals []string) ([]Param, error) {
	out := make([]Param, 0, len(literals))
	for i, literal := range literals {
		p, err := Parse(literal)
		if err != nil {
			return nil, fmt.Errorf("参数 %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// ParseAmount 解析金额字面量（xrp/iou/mpt）为金额
func ParseAmount(literal string) (framework.Amount, error) {
	p, err := Parse(literal)
	if err != nil {
		return framework.Amount{}, err
	}
	if p.Type == framework.ParamAccountID {
		return framework.Amount{}, fmt.Errorf("%w: %q 不是金额", ErrInvalidLiteral, literal)
	}
	amount, err := framework.DecodeAmount(p.Data)
	if err != nil {
		return framework.Amount{}, fmt.Errorf("%w: %v", ErrInvalidLiteral, err)
	}
	return amount, nil
}

func encodeToken(amount framework.Amount) (Param, error) {
	token, err := framework.NewTokenAmount(amount)
	if err != nil {
		return Param{}, err
	}
	data, err := token.Encode()
	if err != nil {
		return Param{}, fmt.Errorf("%w: %v", ErrInvalidLiteral, err)
	}
	return Param{Type: framework.ParamTokenAmount, Data: data}, nil
}

// parseIOU 解析 <值>/<货币>/<发行方>
func parseIOU(body string) (framework.Amount, error) {
	parts := strings.Split(body, "/")
	if len(parts) != 3 {
		return framework.Amount{}, fmt.Errorf("%w: iou 需要 <值>/<货币>/<发行方>", ErrInvalidLiteral)
	}

	mantissa, exponent, err := ParseIOUValue(parts[0])
	if err != nil {
		return framework.Amount{}, err
	}
	currency, err := ParseCurrency(parts[1])
	if err != nil {
		return framework.Amount{}, err
	}
	issuer, err := address.ParseAccount(parts[2])
	if err != nil {
		return framework.Amount{}, fmt.Errorf("%w: 发行方 %q: %v", ErrInvalidLiteral, parts[2], err)
	}
	return framework.IOU(mantissa, exponent, currency, issuer), nil
}

// ParseIOUValue 把十进制字符串转换为尾数与指数
//
// 超过 16 位有效数字时四舍五入。
func ParseIOUValue(s string) (int64, int32, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: 数值 %q", ErrInvalidLiteral, s)
	}
	if d.IsZero() {
		return 0, 0, nil
	}

	digits := len(d.Coefficient().String())
	if d.IsNegative() {
		digits-- // 负号
	}
	if extra := digits - maxMantissaDigits; extra > 0 {
		d = d.Round(-d.Exponent() - int32(extra))
	}

	coefficient := d.Coefficient()
	if !coefficient.IsInt64() {
		return 0, 0, fmt.Errorf("%w: 数值 %q 超出范围", ErrInvalidLiteral, s)
	}
	return coefficient.Int64(), d.Exponent(), nil
}

// ParseCurrency 解析三字母货币码或40位十六进制货币
func ParseCurrency(s string) (framework.Currency, error) {
	var c framework.Currency
	s = strings.TrimSpace(s)

	switch len(s) {
	case 3:
		if strings.EqualFold(s, "XRP") {
			return c, fmt.Errorf("%w: 发行货币不能使用 XRP", ErrInvalidLiteral)
		}
		return framework.ISOCurrency(s), nil
	case 2 * len(c):
		raw, err := hex.DecodeString(s)
		if err != nil {
			return c, fmt.Errorf("%w: 货币 %q", ErrInvalidLiteral, s)
		}
		copy(c[:], raw)
		if c.IsXRP() {
			return c, fmt.Errorf("%w: 货币不能全为零", ErrInvalidLiteral)
		}
		return c, nil
	default:
		return c, fmt.Errorf("%w: 货币 %q 需为三字母代码或40位十六进制", ErrInvalidLiteral, s)
	}
}

// ParseMPTID 解析48位十六进制发行标识
func ParseMPTID(s string) (framework.MPTID, error) {
	var id framework.MPTID
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil || len(raw) != len(id) {
		return id, fmt.Errorf("%w: MPT 发行标识 %q 需为48位十六进制", ErrInvalidLiteral, s)
	}
	copy(id[:], raw)
	return id, nil
}

// parseMPT 解析 <值>/<发行标识>
func parseMPT(body string) (framework.Amount, error) {
	value, idHex, ok := strings.Cut(body, "/")
	if !ok {
		return framework.Amount{}, fmt.Errorf("%w: mpt 需要 <值>/<发行标识>", ErrInvalidLiteral)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return framework.Amount{}, fmt.Errorf("%w: MPT 数值 %q", ErrInvalidLiteral, value)
	}
	id, err := ParseMPTID(idHex)
	if err != nil {
		return framework.Amount{}, err
	}
	return framework.MPT(n, id), nil
}

// parseRaw 解析 <类型>/<十六进制>，不做内容校验
func parseRaw(body string) (Param, error) {
	kind, data, ok := strings.Cut(body, "/")
	if !ok {
		return Param{}, fmt.Errorf("%w: raw 需要 <类型>/<十六进制>", ErrInvalidLiteral)
	}

	var typ framework.ParamType
	switch strings.ToLower(kind) {
	case "account":
		typ = framework.ParamAccountID
	case "amount":
		typ = framework.ParamAmount
	case "token":
		typ = framework.ParamTokenAmount
	default:
		return Param{}, fmt.Errorf("%w: raw 类型 %q", ErrInvalidLiteral, kind)
	}

	raw, err := hex.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return Param{}, fmt.Errorf("%w: raw 数据 %q", ErrInvalidLiteral, data)
	}
	return Param{Type: typ, Data: raw}, nil
}

// Describe 把参数字节还原为可读形式，无法解码时返回十六进制
func Describe(p Param) string {
	switch p.Type {
	case framework.ParamAccountID:
		id, err := framework.AccountIDFromBytes(p.Data)
		if err != nil {
			return "invalid:" + p.Hex()
		}
		return "account:" + address.EncodeAccountID(id)
	case framework.ParamAmount, framework.ParamTokenAmount:
		amount, err := framework.DecodeAmount(p.Data)
		if err != nil {
			return "invalid:" + p.Hex()
		}
		return DescribeAmount(amount)
	default:
		return p.String()
	}
}

// DescribeAmount 金额的字面量形式，可再次被 Parse 解析
func DescribeAmount(a framework.Amount) string {
	switch a.Kind() {
	case framework.KindXRP:
		return "xrp:" + strconv.FormatInt(a.Drops(), 10)
	case framework.KindIOU:
		mantissa, exponent := a.IOUValue()
		return fmt.Sprintf("iou:%s/%s/%s", decimal.New(mantissa, exponent).String(),
			a.Currency().String(), address.EncodeAccountID(a.Issuer()))
	case framework.KindMPT:
		return fmt.Sprintf("mpt:%d/%s", a.MPTValue(), a.MPTID().String())
	default:
		return "invalid"
	}
}
