package healthfactor

import (
	"fmt"

	corezkvm "github.com/weisyn/hfproof/internal/core/zkvm"
	"github.com/weisyn/hfproof/pkg/interfaces/zkvm"
	"lukechampine.com/uint128"
)

// JournalFields 日志中的字段数
const JournalFields = 3

// JournalSize 日志的固定字节长度
const JournalSize = JournalFields * corezkvm.U128Size

// Journal 解码后的公开日志
//
// 字段顺序是线上格式：health_factor, collateral_value_usd, total_minted。
type Journal struct {
	HealthFactor       uint128.Uint128
	CollateralValueUSD uint128.Uint128
	TotalMinted        uint128.Uint128
}

// Commit 按固定顺序把三个值提交到日志
func Commit(env zkvm.GuestEnv, healthFactor, collateralValueUSD, totalMinted uint128.Uint128) {
	env.CommitU128(healthFactor)
	env.CommitU128(collateralValueUSD)
	env.CommitU128(totalMinted)
}

// Bytes 按线上格式编码
func (j Journal) Bytes() []byte {
	return corezkvm.EncodeU128s(j.HealthFactor, j.CollateralValueUSD, j.TotalMinted)
}

// DecodeJournal 按位置解码日志；长度必须恰好为 48 字节
func DecodeJournal(b []byte) (Journal, error) {
	vs, err := corezkvm.DecodeU128s(b, JournalFields)
	if err != nil {
		return Journal{}, fmt.Errorf("decode journal: %w", err)
	}
	return Journal{
		HealthFactor:       vs[0],
		CollateralValueUSD: vs[1],
		TotalMinted:        vs[2],
	}, nil
}
