package zkproof

import (
	"bytes"
	"fmt"
	"time"

	// 基础设施
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"

	// gnark ZK库
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
)

// Validator ZK证明验证器
//
// 用程序的 VerifyingKey 和日志构造的公开见证校验证明。
type Validator struct {
	logger         log.Logger
	circuitManager *CircuitManager
}

// NewValidator 创建证明验证器
func NewValidator(logger log.Logger, circuitManager *CircuitManager) *Validator {
	return &Validator{
		logger:         logger,
		circuitManager: circuitManager,
	}
}

// ValidateProof 验证证明是否对应该程序和日志
func (v *Validator) ValidateProof(c *CompiledGuest, setup *TrustedSetup, seal, journal []byte) error {
	startTime := time.Now()
	id := c.ID.Hex()

	if len(seal) == 0 {
		return WrapInvalidProofError(id, "empty seal")
	}
	proof := groth16.NewProof(v.circuitManager.curve)
	n, err := proof.ReadFrom(bytes.NewReader(seal))
	if err != nil {
		return WrapInvalidProofError(id, fmt.Sprintf("decode seal: %v", err))
	}
	if int(n) != len(seal) {
		return WrapInvalidProofError(id, fmt.Sprintf("trailing seal bytes: read=%d, len=%d", n, len(seal)))
	}

	assignment, err := c.Guest.PublicAssignment(journal)
	if err != nil {
		return WrapInvalidProofError(id, fmt.Sprintf("decode journal: %v", err))
	}
	publicWitness, err := frontend.NewWitness(assignment, v.circuitManager.curve.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return WrapInvalidProofError(id, fmt.Sprintf("public witness: %v", err))
	}

	if err := groth16.Verify(proof, setup.VerifyingKey, publicWitness); err != nil {
		return WrapProofVerificationFailedError(id, err)
	}

	v.logger.Debugf("ZK证明验证通过: image_id=%s, 耗时=%v", c.ID, time.Since(startTime))
	return nil
}
