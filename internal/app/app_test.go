package app

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weisyn/hfproof/internal/config/prover"
	"github.com/weisyn/hfproof/pkg/types"
)

func devConfig() *types.AppConfig {
	return &types.AppConfig{
		Prover: &types.UserProverConfig{Backend: types.StringPtr(prover.BackendDev)},
		Log:    &types.UserLogConfig{Level: types.StringPtr("error")},
	}
}

// ============================================================================
//                              装配与启动
// ============================================================================

func TestStart_DevBackendProducesVerifiableProof(t *testing.T) {
	a, err := Start(WithAppConfig(devConfig()))
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Stop()) }()

	require.Nil(t, a.Server(), "未启用API时不应创建HTTP服务")
	require.Equal(t, prover.BackendDev, a.ProverOptions().Backend)

	out, err := a.Packager().ProduceProofFromText(context.Background(), "1000", "4000")
	require.NoError(t, err)

	j, err := a.Packager().VerifyOutput(out)
	require.NoError(t, err)
	require.Equal(t, "2000000000000000000", j.HealthFactor.String())
}

func TestStart_OverridesApplyAfterConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"prover":{"backend":"groth16","output_dir":"/tmp/a"},"log":{"level":"error"}}`), 0o600))

	a, err := Start(WithConfigFile(path), WithProverBackend(prover.BackendDev), WithOutputDir(dir))
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Stop()) }()

	require.Equal(t, prover.BackendDev, a.ProverOptions().Backend)
	require.Equal(t, dir, a.ProverOptions().OutputDir)
}

func TestStart_RejectsInvalidConfig(t *testing.T) {
	_, err := Start(WithAppConfig(devConfig()), WithProverBackend("plonk"))
	require.Error(t, err)

	_, err = Start(WithConfigFile(filepath.Join(t.TempDir(), "missing.json")))
	require.Error(t, err)
}

func TestStart_WithAPIServesIdentity(t *testing.T) {
	a, err := Start(WithAppConfig(devConfig()), WithAPI(), WithListenAddr("127.0.0.1:0"))
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Stop()) }()

	require.NotNil(t, a.Server())
	addr := a.Server().Addr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/v1/identity")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			ImageID string `json:"image_id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	id, err := a.Packager().ImageID()
	require.NoError(t, err)
	require.Equal(t, "0x"+id.Hex(), body.Data.ImageID)
}
