package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
)

// Asset 余额查询的资产标识
type Asset struct {
	Kind     framework.AmountKind
	Currency framework.Currency
	Issuer   framework.AccountID
	MPTID    framework.MPTID
}

// XRPAsset 原生货币
func XRPAsset() Asset {
	return Asset{Kind: framework.KindXRP}
}

// IOUAsset 发行货币
func IOUAsset(currency framework.Currency, issuer framework.AccountID) Asset {
	return Asset{Kind: framework.KindIOU, Currency: currency, Issuer: issuer}
}

// MPTAsset 多用途代币
func MPTAsset(id framework.MPTID) Asset {
	return Asset{Kind: framework.KindMPT, MPTID: id}
}

// AssetOf 金额所属的资产
func AssetOf(a framework.Amount) Asset {
	switch a.Kind() {
	case framework.KindIOU:
		return IOUAsset(a.Currency(), a.Issuer())
	case framework.KindMPT:
		return MPTAsset(a.MPTID())
	default:
		return XRPAsset()
	}
}

// String 资产描述
func (a Asset) String() string {
	switch a.Kind {
	case framework.KindIOU:
		return a.Currency.String() + "/" + address.EncodeAccountID(a.Issuer)
	case framework.KindMPT:
		return "MPT/" + a.MPTID.String()
	default:
		return "XRP"
	}
}

// MPTIssuer MPT 发行方
//
// 发行标识为 4 字节发行序号 + 20 字节发行方账户。
func MPTIssuer(id framework.MPTID) framework.AccountID {
	var issuer framework.AccountID
	copy(issuer[:], id[4:])
	return issuer
}

// IOUDecimal 发行货币金额的十进制值
func IOUDecimal(a framework.Amount) decimal.Decimal {
	mantissa, exponent := a.IOUValue()
	return decimal.New(mantissa, exponent)
}

// checkAmount 金额的形式校验（不依赖账本状态）
func checkAmount(a framework.Amount) *Error {
	if !a.IsValid() {
		return newError(TemBAD_AMOUNT, "金额未初始化")
	}
	if a.IsZero() || a.IsNegative() {
		return newError(TemBAD_AMOUNT, "金额必须为正")
	}
	switch a.Kind() {
	case framework.KindXRP:
		if a.Drops() > framework.MaxNativeDrops {
			return newError(TemBAD_AMOUNT, "超出原生货币上限")
		}
	case framework.KindIOU:
		if a.Currency().IsXRP() {
			return newError(TemBAD_CURRENCY, "发行货币不能使用 XRP 货币码")
		}
		if a.Issuer().IsZero() {
			return newError(TemBAD_ISSUER, "发行方为空")
		}
	case framework.KindMPT:
		if MPTIssuer(a.MPTID()).IsZero() {
			return newError(TemBAD_ISSUER, "MPT 发行方为空")
		}
	}
	return nil
}
