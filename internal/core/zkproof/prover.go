package zkproof

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	// 基础设施
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"

	// gnark ZK库
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	gnarklogger "github.com/consensys/gnark/logger"

	// zerolog for gnark logger
	"github.com/rs/zerolog"
)

var silenceOnce sync.Once

// silenceGnarkLogger 禁用 gnark 库的日志输出
//
// gnark 使用 zerolog 输出编译和证明过程的调试信息，会污染我们的日志。
// 全局设置只做一次，避免并发证明之间互相覆盖。
func silenceGnarkLogger() {
	silenceOnce.Do(func() {
		gnarklogger.Set(zerolog.New(io.Discard).Level(zerolog.Disabled))
	})
}

// Prover ZK证明生成器
//
// 🎯 **专门职责**：根据输入和日志构建见证，生成 Groth16 证明
type Prover struct {
	logger         log.Logger
	circuitManager *CircuitManager
}

// NewProver 创建证明生成器
func NewProver(logger log.Logger, circuitManager *CircuitManager) *Prover {
	return &Prover{
		logger:         logger,
		circuitManager: circuitManager,
	}
}

// GenerateProof 生成证明并返回序列化后的证明字节
func (p *Prover) GenerateProof(ctx context.Context, c *CompiledGuest, input, journal []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	startTime := time.Now()
	name := c.Guest.Name()

	setup, err := p.circuitManager.GetTrustedSetup(ctx, c)
	if err != nil {
		return nil, err
	}

	assignment, err := c.Guest.Assignment(input, journal)
	if err != nil {
		return nil, WrapInvalidWitnessError(name, err)
	}
	fullWitness, err := frontend.NewWitness(assignment, p.circuitManager.curve.ScalarField())
	if err != nil {
		return nil, WrapInvalidWitnessError(name, err)
	}

	proof, err := groth16.Prove(c.CCS, setup.ProvingKey, fullWitness)
	if err != nil {
		return nil, WrapProofGenerationFailedError(name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, WrapProofGenerationFailedError(name, err)
	}

	p.logger.Debugf("ZK证明生成完成: guest=%s, image_id=%s, proof=%dB, 耗时=%v",
		name, c.ID, buf.Len(), time.Since(startTime))
	return buf.Bytes(), nil
}
