package framework

import (
	"encoding/hex"
)

// ==================== XRPL WASM 合约开发框架 ====================
//
// 🌟 **设计理念**：为 XRPL 风格账本上的 WASM 合约提供统一的 Go 语言框架
//
// 🎯 **核心特性**：
// - 基于 TinyGo 或 GOOS=wasip1 编译到 WASM，必须使用 -buildmode=c-shared（reactor 模块）
// - host_lib 宿主函数的类型安全封装
// - 参数按位置索引读取，区分"必需"与"尽力"两种访问方式
// - 与 XRPL STAmount 兼容的金额二进制格式
//
// 📋 **主要组件**：
// - Host: 宿主能力（参数、转账、跟踪）
// - Params: 参数访问器
// - Amount/TokenAmount/AccountID: 标准数据类型
//

// ==================== 合约状态码 ====================

const (
	// SUCCESS 入口函数成功返回值
	SUCCESS int32 = 0

	// BAD_PARAM 必需参数缺失或无法解码时的固定哨兵值
	BAD_PARAM int32 = -1
)

// ==================== 基础数据类型 ====================

// AccountIDSize 账户标识长度
const AccountIDSize = 20

// AccountID 账本账户标识（20字节）
type AccountID [AccountIDSize]byte

// Currency 货币代码（160位）
type Currency [20]byte

// MPTID 多用途代币发行标识（24字节）
type MPTID [24]byte

// AccountIDFromBytes 从字节数组创建账户标识
func AccountIDFromBytes(data []byte) (AccountID, error) {
	var id AccountID
	if len(data) != AccountIDSize {
		return id, &HostError{Code: DECODING_ERROR}
	}
	copy(id[:], data)
	return id, nil
}

// IsZero 是否为零账户
func (id AccountID) IsZero() bool {
	return id == AccountID{}
}

// Bytes 返回账户字节
func (id AccountID) Bytes() []byte {
	return id[:]
}

// String 十六进制表示（大写，与 XRPL 工具一致）
func (id AccountID) String() string {
	return upperHex(id[:])
}

// ISOCurrency 由三字母代码构造标准货币
//
// 标准格式：12字节0 + 3字节ASCII + 5字节0
func ISOCurrency(code string) Currency {
	var c Currency
	if len(code) == 3 {
		copy(c[12:15], code)
	}
	return c
}

// IsXRP 货币是否为全零（保留给 XRP）
func (c Currency) IsXRP() bool {
	return c == Currency{}
}

// IsStandard 是否为标准三字母格式
func (c Currency) IsStandard() bool {
	for i, b := range c {
		if (i < 12 || i > 14) && b != 0 {
			return false
		}
	}
	return !c.IsXRP()
}

// String 标准货币返回三字母代码，否则返回十六进制
func (c Currency) String() string {
	if c.IsXRP() {
		return "XRP"
	}
	if c.IsStandard() {
		return string(c[12:15])
	}
	return upperHex(c[:])
}

// String MPT 发行标识的十六进制表示
func (id MPTID) String() string {
	return upperHex(id[:])
}

func upperHex(b []byte) string {
	const hexChars = "0123456789ABCDEF"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexChars[v>>4]
		out[i*2+1] = hexChars[v&0x0f]
	}
	return string(out)
}

// DecodeHex 解码十六进制字符串（兼容大小写）
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &HostError{Code: DECODING_ERROR}
	}
	return b, nil
}
