// Package input 解析外部提供的十进制文本输入
//
// 输入来自不可信的命令行、交互式提示或 HTTP 请求，
// 所有校验都在进入执行边界之前完成。
package input

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/weisyn/hfproof/pkg/types"
	"lukechampine.com/uint128"
)

// ErrInvalidInput 输入不是合法的 128 位无符号十进制整数
var ErrInvalidInput = errors.New("invalid input")

// 2^128-1 共 39 位十进制数字
const maxU128Digits = 39

// maxEchoedValue 错误信息中回显输入的最大长度
const maxEchoedValue = 64

// WrapInvalidInputError 包装输入错误，过长的输入只回显前缀
func WrapInvalidInputError(field, value, reason string) error {
	if len(value) > maxEchoedValue {
		value = value[:maxEchoedValue] + "..."
	}
	return fmt.Errorf("%w: field=%s, value=%q, reason=%s", ErrInvalidInput, field, value, reason)
}

// ParseU128 解析 128 位无符号十进制整数
//
// 只接受数字字符（允许首尾空白），不接受符号、进制前缀和分隔符。
func ParseU128(field, s string) (uint128.Uint128, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return uint128.Zero, WrapInvalidInputError(field, s, "empty")
	}
	for _, c := range text {
		if c < '0' || c > '9' {
			return uint128.Zero, WrapInvalidInputError(field, s, "not a non-negative decimal integer")
		}
	}
	// 先按位数拒绝，超长数字串不进入 big.Int
	if len(strings.TrimLeft(text, "0")) > maxU128Digits {
		return uint128.Zero, WrapInvalidInputError(field, s, "exceeds 2^128-1")
	}

	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return uint128.Zero, WrapInvalidInputError(field, s, "not a decimal integer")
	}
	if n.BitLen() > 128 {
		return uint128.Zero, WrapInvalidInputError(field, s, "exceeds 2^128-1")
	}
	return uint128.FromBig(n), nil
}

// Parse 解析两个文本字段为健康因子输入
func Parse(totalMinted, collateralValueUSD string) (types.HealthFactorInput, error) {
	minted, err := ParseU128("total_minted", totalMinted)
	if err != nil {
		return types.HealthFactorInput{}, err
	}
	collateral, err := ParseU128("collateral_value_usd", collateralValueUSD)
	if err != nil {
		return types.HealthFactorInput{}, err
	}
	return types.HealthFactorInput{TotalMinted: minted, CollateralValueUSD: collateral}, nil
}
