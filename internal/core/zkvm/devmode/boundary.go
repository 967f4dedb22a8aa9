// Package devmode 提供确定性的开发模式执行边界
//
// 开发模式不生成真实证明：密封是程序标识与日志的摘要，
// 任何持有代码的人都能伪造。只用于测试和本地开发（prover.backend=dev）。
package devmode

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	corezkvm "github.com/weisyn/hfproof/internal/core/zkvm"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hfproof/pkg/interfaces/zkvm"
	"github.com/weisyn/hfproof/pkg/types"
)

// Scheme 开发模式的证明方案标识
const Scheme = "dev"

const (
	imageDomain = "hfproof-dev"
	sealDomain  = "hfproof-dev-seal"
)

// Boundary 开发模式执行边界
type Boundary struct {
	logger log.Logger
}

var _ zkvm.Boundary = (*Boundary)(nil)

// New 创建开发模式执行边界
func New(logger log.Logger) *Boundary {
	return &Boundary{logger: logger}
}

// ImageID 由程序名称和版本派生标识
func (b *Boundary) ImageID(guest zkvm.Guest) (types.ProgramIdentity, error) {
	h := sha256.New()
	h.Write([]byte(imageDomain))
	h.Write([]byte(guest.Name()))
	var version [4]byte
	binary.LittleEndian.PutUint32(version[:], guest.Version())
	h.Write(version[:])

	var digest [sha256.Size]byte
	copy(digest[:], h.Sum(nil))
	return types.ProgramIdentityFromDigest(digest), nil
}

// Execute 运行程序并生成确定性密封
func (b *Boundary) Execute(ctx context.Context, guest zkvm.Guest, input []byte) (*types.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := b.ImageID(guest)
	if err != nil {
		return nil, err
	}

	journal, err := corezkvm.Run(guest, input)
	if err != nil {
		return nil, err
	}

	if b.logger != nil {
		b.logger.Warnf("开发模式执行边界生成的证明不具备密码学安全性: guest=%s, image_id=%s", guest.Name(), id)
	}
	return &types.Receipt{
		Scheme:  Scheme,
		Seal:    seal(id, journal),
		Journal: journal,
	}, nil
}

// Verify 重新计算密封并比较
func (b *Boundary) Verify(receipt *types.Receipt, id types.ProgramIdentity) ([]byte, error) {
	if receipt == nil {
		return nil, corezkvm.WrapInvalidReceiptError("nil receipt")
	}
	if receipt.Scheme != Scheme {
		return nil, corezkvm.WrapSchemeMismatchError(Scheme, receipt.Scheme)
	}
	if subtle.ConstantTimeCompare(receipt.Seal, seal(id, receipt.Journal)) != 1 {
		return nil, corezkvm.WrapVerificationFailedError(fmt.Sprintf("seal does not match image_id=%s", id))
	}
	return append([]byte(nil), receipt.Journal...), nil
}

func seal(id types.ProgramIdentity, journal []byte) []byte {
	h := sha256.New()
	h.Write([]byte(sealDomain))
	h.Write(id.Bytes())
	h.Write(journal)
	return h.Sum(nil)
}
