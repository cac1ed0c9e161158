// Package address 提供 XRPL 经典地址（r 地址）与账户标识的相互转换
package address

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // AccountID 定义即为 RIPEMD160(SHA256(pubkey))

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
)

// 地址系统常量
const (
	// AccountIDVersion 经典地址版本字节
	AccountIDVersion = 0x00
	// AccountIDLength 账户标识长度（20字节）
	AccountIDLength = framework.AccountIDSize
	// CompressedPublicKeyLength 压缩公钥长度（33字节）
	CompressedPublicKeyLength = 33
	// checksumLength Base58Check 校验和长度
	checksumLength = 4
)

// Alphabet XRPL 使用的 Base58 字母表（以 r 开头）
var Alphabet = base58.NewAlphabet("rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz")

var (
	// ErrInvalidAddress 无效的地址格式
	ErrInvalidAddress = errors.New("invalid address format")
	// ErrInvalidAddressLength 无效的地址长度
	ErrInvalidAddressLength = errors.New("invalid address length")
	// ErrInvalidVersion 无效的版本字节
	ErrInvalidVersion = errors.New("invalid address version")
	// ErrInvalidChecksum 校验和错误
	ErrInvalidChecksum = errors.New("invalid checksum")
	// ErrInvalidPublicKey 无效的公钥
	ErrInvalidPublicKey = errors.New("invalid public key format")
)

// EncodeAccountID 把账户标识编码为经典地址
func EncodeAccountID(id framework.AccountID) string {
	return base58CheckEncode(id[:], AccountIDVersion)
}

// DecodeAccountID 解析经典地址
func DecodeAccountID(address string) (framework.AccountID, error) {
	var id framework.AccountID
	if address == "" || address[0] != 'r' {
		return id, ErrInvalidAddress
	}
	// 经典地址长度范围 25..35
	if len(address) < 25 || len(address) > 35 {
		return id, ErrInvalidAddressLength
	}

	payload, version, err := base58CheckDecode(address)
	if err != nil {
		return id, err
	}
	if version != AccountIDVersion {
		return id, fmt.Errorf("%w: got 0x%02x", ErrInvalidVersion, version)
	}
	if len(payload) != AccountIDLength {
		return id, ErrInvalidAddressLength
	}
	copy(id[:], payload)
	return id, nil
}

// ParseAccount 接受经典地址或40位十六进制账户标识
func ParseAccount(s string) (framework.AccountID, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "r") {
		return DecodeAccountID(s)
	}

	var id framework.AccountID
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	if err != nil {
		return id, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) != AccountIDLength {
		return id, ErrInvalidAddressLength
	}
	copy(id[:], raw)
	return id, nil
}

// ValidateAddress 验证地址格式和校验和
func ValidateAddress(address string) (bool, error) {
	if _, err := DecodeAccountID(address); err != nil {
		return false, err
	}
	return true, nil
}

// AccountIDFromPublicKey 从33字节压缩公钥推导账户标识
// 公钥 → SHA256 → RIPEMD160
func AccountIDFromPublicKey(publicKey []byte) (framework.AccountID, error) {
	var id framework.AccountID
	if len(publicKey) != CompressedPublicKeyLength {
		return id, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrInvalidPublicKey, CompressedPublicKeyLength, len(publicKey))
	}
	copy(id[:], hash160(publicKey))
	return id, nil
}

// hash160 执行 RIPEMD160(SHA256(data))
func hash160(data []byte) []byte {
	sha256Hash := sha256.Sum256(data)

	ripemd160Hasher := ripemd160.New()
	ripemd160Hasher.Write(sha256Hash[:])
	return ripemd160Hasher.Sum(nil)
}

// base58CheckEncode 使用版本字节和校验和编码数据（Base58Check）
func base58CheckEncode(data []byte, version byte) string {
	payload := make([]byte, 1+len(data), 1+len(data)+checksumLength)
	payload[0] = version
	copy(payload[1:], data)

	// 校验和：双SHA256的前4字节
	payload = append(payload, doubleSHA256(payload)[:checksumLength]...)
	return base58.EncodeAlphabet(payload, Alphabet)
}

// base58CheckDecode 解码Base58Check编码的数据，返回数据（不含版本字节）与版本字节
func base58CheckDecode(encoded string) ([]byte, byte, error) {
	decoded, err := base58.DecodeAlphabet(encoded, Alphabet)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(decoded) < 1+checksumLength {
		return nil, 0, ErrInvalidAddressLength
	}

	payloadLen := len(decoded) - checksumLength
	payload, checksum := decoded[:payloadLen], decoded[payloadLen:]

	expected := doubleSHA256(payload)[:checksumLength]
	for i := 0; i < checksumLength; i++ {
		if checksum[i] != expected[i] {
			return nil, 0, ErrInvalidChecksum
		}
	}
	return payload[1:], payload[0], nil
}

// doubleSHA256 执行双SHA256哈希
func doubleSHA256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}
