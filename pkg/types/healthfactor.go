// Package types provides health factor proof type definitions.
package types

import (
	"lukechampine.com/uint128"
)

// HealthFactorInput 健康因子计算输入（私有见证）
//
// 该结构体由不可信的外部输入构造，构造后不可变。
// 它作为见证数据进入可验证执行边界，本身不会被直接提交到日志中；
// 日志中出现的 collateral_value_usd 与 total_minted 由程序在边界内显式提交。
//
// 📋 **字段说明**：
// - TotalMinted：已铸造的稳定币总量（债务）
// - CollateralValueUSD：抵押品的美元价值
type HealthFactorInput struct {
	TotalMinted        uint128.Uint128
	CollateralValueUSD uint128.Uint128
}

// ProofOutput 证明的外部表示
//
// 该结构体是可共享、可持久化的产物，交给外部验证者使用。
// 三个字段均为带 "0x" 前缀的小写十六进制字符串，JSON 字段名是线上格式的一部分，不可更改。
type ProofOutput struct {
	// 证明：CBOR 编码的 Receipt 的十六进制
	Proof string `json:"proof"`

	// 公开输入：日志字节（health_factor, collateral_value_usd, total_minted）
	PubInputs string `json:"pub_inputs"`

	// 程序标识：ProgramIdentity 按小端字序展开后的字节
	ImageID string `json:"image_id"`
}
