// Package zkvm 定义可验证执行边界的接口
//
// 📋 **可验证执行边界 (Verifiable Execution Boundary)**
//
// 边界接收序列化输入，在隔离环境中运行一个固定程序（Guest），
// 产出证明产物（Receipt）以及程序显式提交的公开日志（Journal）。
// 宿主只能看到写入的输入与提交的日志，看不到程序的中间状态。
//
// 🎯 **实现**
// - internal/core/zkproof：基于 gnark Groth16 的真实证明后端
// - internal/core/zkvm/devmode：确定性的开发模式后端（测试用）
package zkvm

import (
	"context"

	"github.com/weisyn/hfproof/pkg/types"
	"lukechampine.com/uint128"
)

// GuestEnv 程序在边界内可见的环境
//
// 程序只能通过它读取宿主写入的输入、向日志提交值。
type GuestEnv interface {
	// ReadU128 按顺序读取下一个 128 位无符号整数输入
	ReadU128() (uint128.Uint128, error)

	// CommitU128 把一个 128 位无符号整数追加到公开日志（16 字节小端序）
	CommitU128(v uint128.Uint128)
}

// Guest 在边界内运行的固定程序
type Guest interface {
	// Name 程序名称
	Name() string

	// Version 程序版本；语义变化时必须递增，程序标识随之变化
	Version() uint32

	// Main 程序入口
	//
	// 返回错误表示程序中止（例如算术溢出），不会产出任何证明。
	Main(env GuestEnv) error
}

// Boundary 可验证执行边界
//
// 实现必须支持对相互独立的输入并发调用 Execute。
type Boundary interface {
	// ImageID 返回程序的内容派生标识
	ImageID(guest Guest) (types.ProgramIdentity, error)

	// Execute 以 input 为见证运行程序，返回证明产物
	//
	// 相同程序与输入多次运行，日志字节完全一致；密封可能不同，但总能通过验证。
	Execute(ctx context.Context, guest Guest, input []byte) (*types.Receipt, error)

	// Verify 校验证明产物是否由 id 对应的程序产生，成功时返回日志
	Verify(receipt *types.Receipt, id types.ProgramIdentity) ([]byte, error)
}
