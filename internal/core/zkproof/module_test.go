package zkproof

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weisyn/hfproof/internal/config/prover"
	"github.com/weisyn/hfproof/internal/core/healthfactor"
	"github.com/weisyn/hfproof/internal/core/testutil"
	"github.com/weisyn/hfproof/internal/core/zkvm/devmode"
)

// TestProvideBoundary 测试按配置选择执行边界
func TestProvideBoundary(t *testing.T) {
	params := ModuleParams{
		Options: &prover.ProverOptions{Backend: prover.BackendDev, Curve: prover.CurveBN254},
		Logger:  testutil.NewTestLogger(),
	}
	out, err := ProvideBoundary(params)
	require.NoError(t, err)
	require.IsType(t, &devmode.Boundary{}, out.Boundary)

	params.Options = &prover.ProverOptions{Backend: prover.BackendGroth16, Curve: prover.CurveBN254}
	params.Guests = []ProvableGuest{healthfactor.NewGuest()}
	out, err = ProvideBoundary(params)
	require.NoError(t, err)
	require.IsType(t, &Boundary{}, out.Boundary)

	params.Options = &prover.ProverOptions{Backend: "risc0", Curve: prover.CurveBN254}
	_, err = ProvideBoundary(params)
	require.Error(t, err)
}
