package zkvm

import (
	"fmt"

	"github.com/weisyn/hfproof/pkg/interfaces/zkvm"
	"lukechampine.com/uint128"
)

// Env 程序在边界内的执行环境
//
// 输入是宿主写入的只读字节流，日志是程序提交的只追加字节流。
// 每次执行使用独立的 Env，不在请求之间共享。
type Env struct {
	input   []byte
	offset  int
	journal []byte
}

var _ zkvm.GuestEnv = (*Env)(nil)

// NewEnv 以宿主写入的输入创建执行环境
func NewEnv(input []byte) *Env {
	return &Env{input: input}
}

// ReadU128 读取下一个 16 字节小端序整数
func (e *Env) ReadU128() (uint128.Uint128, error) {
	if len(e.input)-e.offset < U128Size {
		return uint128.Zero, fmt.Errorf("%w: need=%d, remaining=%d", ErrInputExhausted, U128Size, len(e.input)-e.offset)
	}
	v := uint128.FromBytes(e.input[e.offset : e.offset+U128Size])
	e.offset += U128Size
	return v, nil
}

// CommitU128 追加一个值到日志
func (e *Env) CommitU128(v uint128.Uint128) {
	e.journal = AppendU128(e.journal, v)
}

// Remaining 未读取的输入字节数
func (e *Env) Remaining() int {
	return len(e.input) - e.offset
}

// Journal 返回已提交日志的副本
func (e *Env) Journal() []byte {
	return append([]byte(nil), e.journal...)
}

// Run 在新的执行环境中运行程序并返回日志
//
// 程序中止或没有完整读取输入都视为执行失败，两种情况都不会产出日志。
func Run(guest zkvm.Guest, input []byte) ([]byte, error) {
	env := NewEnv(input)
	if err := guest.Main(env); err != nil {
		return nil, WrapGuestAbortedError(guest.Name(), err)
	}
	if env.Remaining() != 0 {
		return nil, WrapGuestAbortedError(guest.Name(), fmt.Errorf("%w: %d bytes", ErrTrailingInput, env.Remaining()))
	}
	return env.Journal(), nil
}
