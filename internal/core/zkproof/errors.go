// Package zkproof 实现基于 gnark Groth16 的可验证执行边界
package zkproof

import (
	"errors"
	"fmt"

	corezkvm "github.com/weisyn/hfproof/internal/core/zkvm"
)

// ============================================================================
//                            零知识证明错误定义
// ============================================================================

var (
	// ErrUnsupportedGuest 程序没有提供电路，无法在 Groth16 边界中证明
	ErrUnsupportedGuest = errors.New("guest does not provide a circuit")

	// ErrCircuitCompilationFailed 电路编译失败错误
	ErrCircuitCompilationFailed = errors.New("circuit compilation failed")

	// ErrTrustedSetupFailed 可信设置生成或加载失败
	ErrTrustedSetupFailed = errors.New("trusted setup failed")

	// ErrProofGenerationFailed 证明生成失败错误
	ErrProofGenerationFailed = errors.New("proof generation failed")

	// ErrProofVerificationFailed 证明验证失败错误
	ErrProofVerificationFailed = errors.New("proof verification failed")

	// ErrInvalidWitness 无效见证错误
	ErrInvalidWitness = errors.New("invalid witness")

	// ErrInvalidProof 无效证明错误
	ErrInvalidProof = errors.New("invalid proof")

	// ErrUnsupportedCurve 不支持的椭圆曲线
	ErrUnsupportedCurve = errors.New("unsupported curve")
)

// ============================================================================
//                               错误包装函数
// ============================================================================

// WrapUnsupportedGuestError 包装不支持的程序错误
func WrapUnsupportedGuestError(guest string) error {
	return fmt.Errorf("%w: guest=%s", ErrUnsupportedGuest, guest)
}

// WrapCircuitCompilationFailedError 包装电路编译失败错误
func WrapCircuitCompilationFailedError(guest string, err error) error {
	return fmt.Errorf("%w: guest=%s, cause=%w", ErrCircuitCompilationFailed, guest, err)
}

// WrapTrustedSetupFailedError 包装可信设置错误
func WrapTrustedSetupFailedError(imageID string, err error) error {
	return fmt.Errorf("%w: image_id=%s, cause=%w", ErrTrustedSetupFailed, imageID, err)
}

// WrapProofGenerationFailedError 包装证明生成失败错误
func WrapProofGenerationFailedError(guest string, err error) error {
	return fmt.Errorf("%w: guest=%s, cause=%w", ErrProofGenerationFailed, guest, err)
}

// WrapProofVerificationFailedError 包装证明验证失败错误
//
// 同时匹配 zkvm.ErrVerificationFailed，调用方无需关心具体后端。
func WrapProofVerificationFailedError(imageID string, err error) error {
	return fmt.Errorf("%w: %w: image_id=%s, cause=%v", corezkvm.ErrVerificationFailed, ErrProofVerificationFailed, imageID, err)
}

// WrapInvalidWitnessError 包装无效见证错误
func WrapInvalidWitnessError(guest string, err error) error {
	return fmt.Errorf("%w: guest=%s, cause=%w", ErrInvalidWitness, guest, err)
}

// WrapInvalidProofError 包装无效证明错误
func WrapInvalidProofError(imageID, reason string) error {
	return fmt.Errorf("%w: %w: image_id=%s, reason=%s", corezkvm.ErrVerificationFailed, ErrInvalidProof, imageID, reason)
}

// WrapUnsupportedCurveError 包装不支持的曲线错误
func WrapUnsupportedCurveError(curve string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedCurve, curve)
}
