// Package utils 提供金额解析与格式化工具
package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ========================================
// XRP 金额（drops）
// ========================================

const (
	// DropsPerXRP 1 XRP = 10^6 drops
	DropsPerXRP int64 = 1_000_000

	// MaxDrops 原生货币总量上限（1000亿 XRP）
	MaxDrops int64 = 100_000_000_000 * DropsPerXRP
)

// ParseDrops 解析整数 drops 字符串
//
// 使用 big.Int 做范围检查，拒绝负数与超过总量上限的值。
func ParseDrops(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("金额为空")
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return 0, fmt.Errorf("金额格式无效: %s", s)
	}
	if v.Sign() < 0 {
		return 0, fmt.Errorf("金额不能为负数: %s", s)
	}
	if !v.IsInt64() || v.Int64() > MaxDrops {
		return 0, fmt.Errorf("金额超出支持范围: %s (最大: %d drops)", s, MaxDrops)
	}
	return v.Int64(), nil
}

// ParseXRP 解析十进制 XRP 字符串（最多6位小数）为 drops
//
// 例如："1.5" → 1500000
func ParseXRP(s string) (int64, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("金额格式无效: %s", s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("金额不能为负数: %s", s)
	}

	drops := d.Mul(decimal.NewFromInt(DropsPerXRP))
	if !drops.Equal(drops.Truncate(0)) {
		return 0, fmt.Errorf("小数精度超出限制（最多6位）: %s", s)
	}
	if drops.GreaterThan(decimal.NewFromInt(MaxDrops)) {
		return 0, fmt.Errorf("金额超出支持范围: %s", s)
	}
	return drops.IntPart(), nil
}

// FormatDrops 把 drops 格式化为 XRP 小数字符串
//
// 例如：1500000 → "1.5"，1000000 → "1"
func FormatDrops(drops int64) string {
	return decimal.New(drops, -6).String()
}

// FormatDropsWithUnit 带单位的格式化，例如 "1.5 XRP"
func FormatDropsWithUnit(drops int64) string {
	return FormatDrops(drops) + " XRP"
}
