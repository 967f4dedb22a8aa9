package zkvm

import (
	"fmt"

	"lukechampine.com/uint128"
)

// U128Size 128 位整数的定长编码宽度（字节）
const U128Size = 16

// AppendU128 以 16 字节小端序追加一个 128 位无符号整数
func AppendU128(dst []byte, v uint128.Uint128) []byte {
	var buf [U128Size]byte
	v.PutBytes(buf[:])
	return append(dst, buf[:]...)
}

// EncodeU128s 把若干 128 位无符号整数按顺序编码为定长字节串
func EncodeU128s(vs ...uint128.Uint128) []byte {
	out := make([]byte, 0, len(vs)*U128Size)
	for _, v := range vs {
		out = AppendU128(out, v)
	}
	return out
}

// DecodeU128s 把定长字节串解码为恰好 n 个 128 位无符号整数
func DecodeU128s(b []byte, n int) ([]uint128.Uint128, error) {
	if len(b) != n*U128Size {
		return nil, fmt.Errorf("invalid u128 sequence length: expected=%d, actual=%d", n*U128Size, len(b))
	}
	out := make([]uint128.Uint128, n)
	for i := range out {
		out[i] = uint128.FromBytes(b[i*U128Size : (i+1)*U128Size])
	}
	return out, nil
}
