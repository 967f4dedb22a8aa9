package zkproof

import (
	"context"
	"fmt"
	"time"

	corezkvm "github.com/weisyn/hfproof/internal/core/zkvm"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/hfproof/pkg/interfaces/zkvm"
	"github.com/weisyn/hfproof/pkg/types"
)

// Scheme Groth16 后端的证明方案标识
const Scheme = "groth16-bn254"

// Boundary 基于 gnark Groth16 的可验证执行边界
//
// Execute 先在边界内运行程序得到日志，再对"电路在该日志下可满足"生成证明；
// Verify 只需要日志、证明和程序标识对应的 VerifyingKey。
type Boundary struct {
	logger         log.Logger
	circuitManager *CircuitManager
	prover         *Prover
	validator      *Validator

	// 验证方按标识查找程序时使用的已注册程序
	guests []ProvableGuest
}

var _ zkvm.Boundary = (*Boundary)(nil)

// NewBoundary 创建 Groth16 执行边界
//
// store 为空时可信设置只保存在内存中；guests 是 Verify 能识别的程序。
func NewBoundary(logger log.Logger, curve string, store storage.BadgerStore, guests ...ProvableGuest) (*Boundary, error) {
	curveID, err := resolveCurveID(curve)
	if err != nil {
		return nil, err
	}
	silenceGnarkLogger()

	cm := NewCircuitManager(logger, curveID, NewKeyStore(store, curveID, logger))
	return &Boundary{
		logger:         logger,
		circuitManager: cm,
		prover:         NewProver(logger, cm),
		validator:      NewValidator(logger, cm),
		guests:         guests,
	}, nil
}

func (b *Boundary) provable(guest zkvm.Guest) (ProvableGuest, error) {
	pg, ok := guest.(ProvableGuest)
	if !ok {
		return nil, WrapUnsupportedGuestError(guest.Name())
	}
	return pg, nil
}

// ImageID 编译程序电路并返回其标识
func (b *Boundary) ImageID(guest zkvm.Guest) (types.ProgramIdentity, error) {
	pg, err := b.provable(guest)
	if err != nil {
		return types.ProgramIdentity{}, err
	}
	c, err := b.circuitManager.Compile(pg)
	if err != nil {
		return types.ProgramIdentity{}, err
	}
	return c.ID, nil
}

// Execute 运行程序并生成 Groth16 证明
func (b *Boundary) Execute(ctx context.Context, guest zkvm.Guest, input []byte) (*types.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pg, err := b.provable(guest)
	if err != nil {
		return nil, err
	}
	c, err := b.circuitManager.Compile(pg)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	journal, err := corezkvm.Run(pg, input)
	if err != nil {
		return nil, err
	}

	seal, err := b.prover.GenerateProof(ctx, c, input, journal)
	if err != nil {
		return nil, err
	}

	b.logger.Infof("执行边界完成证明: guest=%s, image_id=%s, 耗时=%v", pg.Name(), c.ID, time.Since(startTime))
	return &types.Receipt{
		Scheme:  Scheme,
		Seal:    seal,
		Journal: journal,
	}, nil
}

// Verify 校验证明产物并返回日志
func (b *Boundary) Verify(receipt *types.Receipt, id types.ProgramIdentity) ([]byte, error) {
	if receipt == nil {
		return nil, corezkvm.WrapInvalidReceiptError("nil receipt")
	}
	if receipt.Scheme != Scheme {
		return nil, corezkvm.WrapSchemeMismatchError(Scheme, receipt.Scheme)
	}

	c, err := b.lookup(id)
	if err != nil {
		return nil, err
	}
	setup, err := b.circuitManager.GetTrustedSetup(context.Background(), c)
	if err != nil {
		return nil, corezkvm.WrapVerificationFailedError(err.Error())
	}

	if err := b.validator.ValidateProof(c, setup, receipt.Seal, receipt.Journal); err != nil {
		return nil, err
	}
	return append([]byte(nil), receipt.Journal...), nil
}

// lookup 按标识查找程序；未命中时编译已注册的程序再查一次
func (b *Boundary) lookup(id types.ProgramIdentity) (*CompiledGuest, error) {
	if c, ok := b.circuitManager.Lookup(id); ok {
		return c, nil
	}
	for _, g := range b.guests {
		if _, err := b.circuitManager.Compile(g); err != nil {
			return nil, corezkvm.WrapVerificationFailedError(fmt.Sprintf("compile %s: %v", g.Name(), err))
		}
	}
	if c, ok := b.circuitManager.Lookup(id); ok {
		return c, nil
	}
	return nil, corezkvm.WrapUnknownImageError(id.Hex())
}

// KeyStore 返回可信设置密钥库
func (b *Boundary) KeyStore() *KeyStore {
	return b.circuitManager.keyStore
}
