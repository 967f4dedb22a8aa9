package healthfactor

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// Circuit 健康因子算术电路
//
// 公开输入与日志一一对应（同样的顺序），私有输入是除法的商和余数。
// 电路对 128 位无符号整数的约束与 Compute 完全一致：
//
//	collateral*50 = adjusted*100 + r1,      r1 < 100
//	adjusted*10^18 = health*minted + r2,    r2 < minted     (minted != 0)
//	health = 2^128-1                                        (minted == 0)
//
// 两个乘积都要求落在 128 位以内，对应计算器的溢出检查。
type Circuit struct {
	HealthFactor       frontend.Variable `gnark:",public"`
	CollateralValueUSD frontend.Variable `gnark:",public"`
	TotalMinted        frontend.Variable `gnark:",public"`

	CollateralAdjusted frontend.Variable
	AdjustRemainder    frontend.Variable
	DivisionRemainder  frontend.Variable
}

var (
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	two64   = new(big.Int).Lsh(big.NewInt(1), 64)
)

// Define 定义电路约束
func (c *Circuit) Define(api frontend.API) error {
	// 所有数值都是 128 位无符号整数
	api.ToBinary(c.CollateralValueUSD, 128)
	api.ToBinary(c.TotalMinted, 128)
	api.ToBinary(c.CollateralAdjusted, 128)
	api.ToBinary(c.DivisionRemainder, 128)
	hfBits := api.ToBinary(c.HealthFactor, 128)
	api.AssertIsLessOrEqual(c.AdjustRemainder, LiquidationPrecision-1)

	isZero := api.IsZero(c.TotalMinted)
	notZero := api.Sub(1, isZero)

	// adjusted = floor(collateral * 50 / 100)
	scaled := api.Mul(c.CollateralValueUSD, LiquidationThreshold)
	api.AssertIsEqual(scaled, api.Add(api.Mul(c.CollateralAdjusted, LiquidationPrecision), c.AdjustRemainder))
	api.ToBinary(api.Select(isZero, 0, scaled), 128)

	// numerator = adjusted * 10^18 不得溢出
	numerator := api.Mul(c.CollateralAdjusted, Precision)
	api.ToBinary(api.Select(isZero, 0, numerator), 128)

	// health*minted 按 64 位分段计算，避免乘积超过域的大小
	hfLo := api.FromBinary(hfBits[:64]...)
	hfHi := api.FromBinary(hfBits[64:]...)
	hiProduct := api.Mul(hfHi, c.TotalMinted)
	api.ToBinary(api.Select(isZero, 0, hiProduct), 64)
	product := api.Add(api.Mul(hiProduct, two64), api.Mul(hfLo, c.TotalMinted))

	// numerator = health*minted + r2，r2 < minted
	diff := api.Sub(numerator, product, c.DivisionRemainder)
	api.AssertIsEqual(api.Mul(diff, notZero), 0)
	api.ToBinary(api.Select(isZero, 0, api.Sub(c.TotalMinted, c.DivisionRemainder, 1)), 128)

	// 零债务时健康因子固定为最大值
	api.AssertIsEqual(api.Select(isZero, maxU128, c.HealthFactor), c.HealthFactor)

	return nil
}

// Circuit 返回用于编译的空电路
func (Guest) Circuit() frontend.Circuit {
	return &Circuit{}
}

// Assignment 根据程序输入和日志构建完整见证
func (Guest) Assignment(input, journal []byte) (frontend.Circuit, error) {
	in, err := DecodeInput(input)
	if err != nil {
		return nil, err
	}
	j, err := DecodeJournal(journal)
	if err != nil {
		return nil, err
	}
	if !j.TotalMinted.Equals(in.TotalMinted) || !j.CollateralValueUSD.Equals(in.CollateralValueUSD) {
		return nil, fmt.Errorf("journal does not match input")
	}

	collateral := in.CollateralValueUSD.Big()
	minted := in.TotalMinted.Big()

	scaled := new(big.Int).Mul(collateral, big.NewInt(LiquidationThreshold))
	adjusted, adjustRemainder := new(big.Int).QuoRem(scaled, big.NewInt(LiquidationPrecision), new(big.Int))

	divisionRemainder := new(big.Int)
	if minted.Sign() != 0 {
		numerator := new(big.Int).Mul(adjusted, new(big.Int).SetUint64(Precision))
		divisionRemainder.Mod(numerator, minted)
	}

	return &Circuit{
		HealthFactor:       j.HealthFactor.Big(),
		CollateralValueUSD: collateral,
		TotalMinted:        minted,
		CollateralAdjusted: adjusted,
		AdjustRemainder:    adjustRemainder,
		DivisionRemainder:  divisionRemainder,
	}, nil
}

// PublicAssignment 根据日志构建公开见证（验证时使用）
func (Guest) PublicAssignment(journal []byte) (frontend.Circuit, error) {
	j, err := DecodeJournal(journal)
	if err != nil {
		return nil, err
	}
	return &Circuit{
		HealthFactor:       j.HealthFactor.Big(),
		CollateralValueUSD: j.CollateralValueUSD.Big(),
		TotalMinted:        j.TotalMinted.Big(),
		CollateralAdjusted: 0,
		AdjustRemainder:    0,
		DivisionRemainder:  0,
	}, nil
}
