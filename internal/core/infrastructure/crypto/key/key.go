// Package key 提供开发账户的 secp256k1 密钥生成
//
// 开发宿主不校验签名，密钥只用于推导账户标识（AccountID = RIPEMD160(SHA256(压缩公钥))），
// 让 CLI 能为测试生成互不冲突、可复现的账户。
package key

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/tyler-smith/go-bip39"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
)

// 助记词熵位数
const (
	Mnemonic12Words = 128
	Mnemonic24Words = 256
)

var (
	// ErrInvalidPrivateKey 私钥无效
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrInvalidMnemonic 助记词校验失败
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
)

// KeyPair 开发账户密钥对
type KeyPair struct {
	PrivateKey []byte              // 32字节私钥
	PublicKey  []byte              // 33字节压缩公钥
	AccountID  framework.AccountID // 账户标识
	Mnemonic   string              // 由助记词派生时非空
}

// Address 经典地址
func (k *KeyPair) Address() string {
	return address.EncodeAccountID(k.AccountID)
}

// PrivateKeyHex 私钥十六进制
func (k *KeyPair) PrivateKeyHex() string {
	return hex.EncodeToString(k.PrivateKey)
}

// PublicKeyHex 公钥十六进制
func (k *KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKey)
}

// Generate 生成随机密钥对
func Generate() (*KeyPair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("生成私钥失败: %w", err)
	}
	return fromPrivateKey(priv)
}

// FromPrivateKey 由32字节私钥恢复密钥对
func FromPrivateKey(privateKey []byte) (*KeyPair, error) {
	if len(privateKey) != 32 {
		return nil, ErrInvalidPrivateKey
	}
	priv, _ := btcec.PrivKeyFromBytes(privateKey)
	if priv.Key.IsZero() {
		return nil, ErrInvalidPrivateKey
	}
	return fromPrivateKey(priv)
}

// NewMnemonic 生成新的助记词
func NewMnemonic(bits int) (string, error) {
	entropy := make([]byte, bits/8)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("生成熵失败: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// FromMnemonic 由助记词派生密钥对：私钥取 SHA256(BIP39 种子)
func FromMnemonic(mnemonic, passphrase string) (*KeyPair, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	sum := sha256.Sum256(seed)

	kp, err := FromPrivateKey(sum[:])
	if err != nil {
		return nil, err
	}
	kp.Mnemonic = mnemonic
	return kp, nil
}

func fromPrivateKey(priv *btcec.PrivateKey) (*KeyPair, error) {
	pub := priv.PubKey().SerializeCompressed()
	id, err := address.AccountIDFromPublicKey(pub)
	if err != nil {
		return nil, err
	}
	return &KeyPair{
		PrivateKey: priv.Serialize(),
		PublicKey:  pub,
		AccountID:  id,
	}, nil
}
