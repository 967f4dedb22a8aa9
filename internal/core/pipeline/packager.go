// Package pipeline 编排健康因子证明的生成流程
//
// 📋 **流程**
//
//	输入 → 序列化 → Boundary.Execute → Boundary.Verify(自身标识) → 外部表示
//
// 每个请求严格串行；独立请求可以并发调用同一个 Packager。
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/weisyn/hfproof/internal/core/emitter"
	"github.com/weisyn/hfproof/internal/core/healthfactor"
	"github.com/weisyn/hfproof/internal/core/infrastructure/metrics"
	"github.com/weisyn/hfproof/internal/core/input"
	corezkvm "github.com/weisyn/hfproof/internal/core/zkvm"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hfproof/pkg/interfaces/zkvm"
	"github.com/weisyn/hfproof/pkg/types"
)

// Packager 证明打包器
type Packager struct {
	boundary zkvm.Boundary
	guest    zkvm.Guest
	logger   log.Logger
}

// NewPackager 创建证明打包器
func NewPackager(boundary zkvm.Boundary, guest zkvm.Guest, logger log.Logger) *Packager {
	return &Packager{
		boundary: boundary,
		guest:    guest,
		logger:   logger,
	}
}

// ImageID 返回打包器所用程序的标识
func (p *Packager) ImageID() (types.ProgramIdentity, error) {
	id, err := p.boundary.ImageID(p.guest)
	if err != nil {
		return types.ProgramIdentity{}, wrap("image_id", err)
	}
	return id, nil
}

// ProduceProofFromText 解析文本输入后生成证明
//
// 解析失败时不会调用执行边界。
func (p *Packager) ProduceProofFromText(ctx context.Context, totalMinted, collateralValueUSD string) (*types.ProofOutput, error) {
	in, err := input.Parse(totalMinted, collateralValueUSD)
	if err != nil {
		metrics.ProofStarted()(KindInput.String())
		return nil, wrapAs(KindInput, "parse_input", err)
	}
	return p.ProduceProof(ctx, in)
}

// ProduceProof 生成、本地验证并打包证明
func (p *Packager) ProduceProof(ctx context.Context, in types.HealthFactorInput) (out *types.ProofOutput, err error) {
	requestID := uuid.New().String()
	logger := p.logger.With("request_id", requestID, "guest", p.guest.Name())
	startTime := time.Now()

	done := metrics.ProofStarted()
	defer func() {
		if err != nil {
			done(KindOf(err).String())
			logger.Errorf("证明生成失败: %v", err)
			return
		}
		done(metrics.ResultSuccess)
		logger.Infof("证明生成完成: image_id=%s, 耗时=%v", out.ImageID, time.Since(startTime))
	}()

	id, err := p.boundary.ImageID(p.guest)
	if err != nil {
		return nil, wrap("image_id", err)
	}

	logger.Debug("开始执行程序")
	receipt, err := p.boundary.Execute(ctx, p.guest, healthfactor.EncodeInput(in))
	if err != nil {
		return nil, wrap("execute", err)
	}

	// 输出前必须用自身标识验证，失败不重试
	journal, err := p.boundary.Verify(receipt, id)
	if err != nil {
		return nil, wrapAs(KindVerification, "verify", err)
	}
	if !bytes.Equal(journal, receipt.Journal) {
		return nil, wrapAs(KindVerification, "verify", corezkvm.WrapVerificationFailedError("verified journal differs from receipt journal"))
	}

	out, err = emitter.Build(receipt, id)
	if err != nil {
		return nil, wrapAs(KindSerialization, "encode", err)
	}
	return out, nil
}

// VerifyOutput 离线验证外部表示
//
// 文档中的 image_id 必须与本程序的标识一致，证明产物必须通过验证，
// 且产物中的日志与 pub_inputs 逐字节相同。成功时返回解码后的日志。
func (p *Packager) VerifyOutput(out *types.ProofOutput) (*healthfactor.Journal, error) {
	parsed, err := emitter.Parse(out)
	if err != nil {
		return nil, wrapAs(KindSerialization, "decode", err)
	}

	id, err := p.boundary.ImageID(p.guest)
	if err != nil {
		return nil, wrap("image_id", err)
	}
	if parsed.ImageID != id {
		return nil, wrapAs(KindVerification, "verify", corezkvm.WrapVerificationFailedError(
			fmt.Sprintf("image_id mismatch: expected=%s, actual=%s", id, parsed.ImageID)))
	}

	journal, err := p.boundary.Verify(parsed.Receipt, id)
	if err != nil {
		return nil, wrapAs(KindVerification, "verify", err)
	}
	if !bytes.Equal(journal, parsed.PubInputs) {
		return nil, wrapAs(KindVerification, "verify", corezkvm.WrapVerificationFailedError("pub_inputs do not match receipt journal"))
	}

	j, err := healthfactor.DecodeJournal(journal)
	if err != nil {
		return nil, wrapAs(KindSerialization, "decode_journal", err)
	}
	return &j, nil
}
