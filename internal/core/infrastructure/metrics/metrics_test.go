package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	coretestutil "github.com/weisyn/hfproof/internal/core/testutil"
)

// TestProofStarted 测试计数器与在途数
func TestProofStarted(t *testing.T) {
	before := testutil.ToFloat64(ProofsTotal().WithLabelValues("input"))

	done := ProofStarted()
	require.Equal(t, float64(1), testutil.ToFloat64(proofsInFlight))
	done("input")

	require.Equal(t, float64(0), testutil.ToFloat64(proofsInFlight))
	require.Equal(t, before+1, testutil.ToFloat64(ProofsTotal().WithLabelValues("input")))
}

// TestRuntimeSampler 测试采样器启动与停止
func TestRuntimeSampler(t *testing.T) {
	s := NewRuntimeSampler(time.Millisecond, coretestutil.NewTestLogger())
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop()

	require.Greater(t, testutil.ToFloat64(runtimeHeapBytes), float64(0))
	require.Greater(t, testutil.ToFloat64(runtimeGoroutines), float64(0))
}
