package healthfactor

import (
	"fmt"

	corezkvm "github.com/weisyn/hfproof/internal/core/zkvm"
	"github.com/weisyn/hfproof/pkg/interfaces/zkvm"
	"github.com/weisyn/hfproof/pkg/types"
)

// 程序元数据
const (
	// GuestName 程序名称
	GuestName = "health_factor"

	// GuestVersion 程序版本
	GuestVersion uint32 = 1
)

// Guest 健康因子程序
//
// 从输入读取 total_minted、collateral_value_usd，计算健康因子，
// 按 health_factor, collateral_value_usd, total_minted 的顺序提交。
type Guest struct{}

var _ zkvm.Guest = Guest{}

// NewGuest 创建健康因子程序
func NewGuest() Guest {
	return Guest{}
}

// Name 程序名称
func (Guest) Name() string { return GuestName }

// Version 程序版本
func (Guest) Version() uint32 { return GuestVersion }

// Main 程序入口
func (Guest) Main(env zkvm.GuestEnv) error {
	totalMinted, err := env.ReadU128()
	if err != nil {
		return fmt.Errorf("read total_minted: %w", err)
	}
	collateralValueUSD, err := env.ReadU128()
	if err != nil {
		return fmt.Errorf("read collateral_value_usd: %w", err)
	}

	healthFactor, err := Compute(totalMinted, collateralValueUSD)
	if err != nil {
		return err
	}

	Commit(env, healthFactor, collateralValueUSD, totalMinted)
	return nil
}

// EncodeInput 把输入序列化为程序期望的格式：total_minted 在前，各 16 字节小端序
func EncodeInput(input types.HealthFactorInput) []byte {
	return corezkvm.EncodeU128s(input.TotalMinted, input.CollateralValueUSD)
}

// DecodeInput 解析程序输入
func DecodeInput(b []byte) (types.HealthFactorInput, error) {
	vs, err := corezkvm.DecodeU128s(b, 2)
	if err != nil {
		return types.HealthFactorInput{}, fmt.Errorf("decode input: %w", err)
	}
	return types.HealthFactorInput{TotalMinted: vs[0], CollateralValueUSD: vs[1]}, nil
}
