// Package healthfactor 实现健康因子程序：定点计算器、在边界内运行的程序、
// 日志提交顺序，以及 Groth16 后端使用的算术电路。
package healthfactor

import (
	"errors"
	"fmt"

	"lukechampine.com/uint128"
)

// 定点参数
const (
	// LiquidationThreshold 清算阈值（百分比分子）
	LiquidationThreshold = 50

	// LiquidationPrecision 清算阈值精度（百分比分母）
	LiquidationPrecision = 100

	// Precision 健康因子的定点缩放 10^18
	Precision = 1_000_000_000_000_000_000
)

var (
	liquidationThreshold = uint128.From64(LiquidationThreshold)
	liquidationPrecision = uint128.From64(LiquidationPrecision)
	precision            = uint128.From64(Precision)
)

// ErrArithmeticOverflow 乘法结果超出 128 位
var ErrArithmeticOverflow = errors.New("arithmetic overflow")

// Compute 计算健康因子
//
// total_minted 为 0 时返回 2^128-1。
// 否则 adjusted = floor(collateral * 50 / 100)，health = floor(adjusted * 10^18 / total_minted)；
// 两步都先乘后除，任一乘法溢出都返回 ErrArithmeticOverflow。
func Compute(totalMinted, collateralValueUSD uint128.Uint128) (uint128.Uint128, error) {
	if totalMinted.IsZero() {
		return uint128.Max, nil
	}

	scaled, err := checkedMul(collateralValueUSD, liquidationThreshold)
	if err != nil {
		return uint128.Zero, fmt.Errorf("collateral adjustment: %w", err)
	}
	adjusted := scaled.Div(liquidationPrecision)

	numerator, err := checkedMul(adjusted, precision)
	if err != nil {
		return uint128.Zero, fmt.Errorf("precision scaling: %w", err)
	}
	return numerator.Div(totalMinted), nil
}

// checkedMul 带溢出检查的 128 位乘法
func checkedMul(a, b uint128.Uint128) (uint128.Uint128, error) {
	if a.IsZero() || b.IsZero() {
		return uint128.Zero, nil
	}
	p := a.MulWrap(b)
	if !p.Div(a).Equals(b) {
		return uint128.Zero, fmt.Errorf("%w: %s * %s", ErrArithmeticOverflow, a, b)
	}
	return p, nil
}
