package types

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ProgramIdentityWords 程序标识的字数（8 × 32bit = 256bit 摘要）
const ProgramIdentityWords = 8

// ProgramIdentity 程序标识
//
// 🎯 **用途**：把证明绑定到"恰好运行了这个程序"。
// 标识由执行边界根据程序内容派生（不是用户提供的），
// 原生表示为 8 个 32 位字，对外字节表示为各字按小端序展开后拼接。
type ProgramIdentity [ProgramIdentityWords]uint32

// ProgramIdentityFromDigest 从 32 字节摘要构造程序标识（按小端序切分为字）
func ProgramIdentityFromDigest(digest [sha256.Size]byte) ProgramIdentity {
	var id ProgramIdentity
	for i := range id {
		id[i] = binary.LittleEndian.Uint32(digest[i*4 : i*4+4])
	}
	return id
}

// ProgramIdentityFromBytes 从展开后的字节还原程序标识
func ProgramIdentityFromBytes(b []byte) (ProgramIdentity, error) {
	var id ProgramIdentity
	if len(b) != ProgramIdentityWords*4 {
		return id, fmt.Errorf("invalid program identity length: expected=%d, actual=%d", ProgramIdentityWords*4, len(b))
	}
	for i := range id {
		id[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	return id, nil
}

// Bytes 按小端序展开各字
func (id ProgramIdentity) Bytes() []byte {
	out := make([]byte, 0, ProgramIdentityWords*4)
	for _, w := range id {
		out = binary.LittleEndian.AppendUint32(out, w)
	}
	return out
}

// Hex 返回不带前缀的小写十六进制
func (id ProgramIdentity) Hex() string {
	return hex.EncodeToString(id.Bytes())
}

// String 实现 fmt.Stringer
func (id ProgramIdentity) String() string {
	return id.Hex()
}

// IsZero 是否为零值标识
func (id ProgramIdentity) IsZero() bool {
	return id == ProgramIdentity{}
}

// CID 把标识摘要包装为 CIDv1(raw, sha2-256)，便于日志和存储键展示
func (id ProgramIdentity) CID() (cid.Cid, error) {
	mh, err := multihash.Encode(id.Bytes(), multihash.SHA2_256)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, multihash.Multihash(mh)), nil
}

// Receipt 证明产物（ProofArtifact）
//
// 不透明的证明数据：Seal 为证明本体，Journal 为提交的公开输出。
// 以确定性 CBOR 编码后作为 ProofOutput.Proof 对外暴露。
type Receipt struct {
	// 证明方案标识，例如 "groth16-bn254"、"dev"
	Scheme string `cbor:"1,keyasint" json:"scheme"`

	// 证明本体
	Seal []byte `cbor:"2,keyasint" json:"seal"`

	// 公开日志
	Journal []byte `cbor:"3,keyasint" json:"journal"`
}
