package zkproof

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	corezkvm "github.com/weisyn/hfproof/internal/core/zkvm"
)

// TestErrors_Chains 测试包装后的错误链
func TestErrors_Chains(t *testing.T) {
	cause := errors.New("boom")

	err := WrapProofVerificationFailedError("abcd", cause)
	require.ErrorIs(t, err, ErrProofVerificationFailed)
	require.ErrorIs(t, err, corezkvm.ErrVerificationFailed)
	require.Contains(t, err.Error(), "image_id=abcd")

	err = WrapInvalidProofError("abcd", "short seal")
	require.ErrorIs(t, err, ErrInvalidProof)
	require.ErrorIs(t, err, corezkvm.ErrVerificationFailed)

	err = WrapProofGenerationFailedError("health_factor", cause)
	require.ErrorIs(t, err, ErrProofGenerationFailed)
	require.ErrorIs(t, err, cause)

	err = WrapCircuitCompilationFailedError("health_factor", cause)
	require.ErrorIs(t, err, ErrCircuitCompilationFailed)
	require.NotErrorIs(t, err, corezkvm.ErrVerificationFailed)

	require.ErrorIs(t, WrapUnsupportedCurveError("bls12-381"), ErrUnsupportedCurve)
	require.ErrorIs(t, WrapUnsupportedGuestError("x"), ErrUnsupportedGuest)
	require.ErrorIs(t, WrapTrustedSetupFailedError("abcd", cause), ErrTrustedSetupFailed)
	require.ErrorIs(t, WrapInvalidWitnessError("x", cause), ErrInvalidWitness)
}
