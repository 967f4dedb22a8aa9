package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apitypes "github.com/weisyn/hfproof/internal/api/http/types"
	apiconfig "github.com/weisyn/hfproof/internal/config/api"
	"github.com/weisyn/hfproof/internal/core/healthfactor"
	"github.com/weisyn/hfproof/internal/core/pipeline"
	"github.com/weisyn/hfproof/internal/core/testutil"
	"github.com/weisyn/hfproof/internal/core/zkvm/devmode"
	"github.com/weisyn/hfproof/pkg/interfaces/zkvm"
	"github.com/weisyn/hfproof/pkg/types"
)

func testOptions() *apiconfig.APIOptions {
	return &apiconfig.APIOptions{
		ListenAddr:          "127.0.0.1:0",
		MaxConcurrentProofs: 2,
		ReadTimeout:         5 * time.Second,
		WriteTimeout:        5 * time.Second,
		MaxRequestSize:      1 << 16,
	}
}

func newTestServer(t *testing.T, boundary zkvm.Boundary, options *apiconfig.APIOptions) *Server {
	t.Helper()
	if boundary == nil {
		boundary = devmode.New(nil)
	}
	logger := testutil.NewTestLogger()
	return New(options, logger, pipeline.NewPackager(boundary, healthfactor.NewGuest(), logger))
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

// TestProveAndVerify 测试生成证明后再验证
func TestProveAndVerify(t *testing.T) {
	s := newTestServer(t, nil, testOptions())

	w := do(t, s, http.MethodPost, "/v1/proofs", apitypes.ProveRequest{TotalMinted: "1000", CollateralValueUSD: "4000"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var out types.ProofOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Regexp(t, "^0x[0-9a-f]+$", out.Proof)
	require.Regexp(t, fmt.Sprintf("^0x[0-9a-f]{%d}$", healthfactor.JournalSize*2), out.PubInputs)
	require.Regexp(t, "^0x[0-9a-f]{64}$", out.ImageID)

	w = do(t, s, http.MethodPost, "/v1/proofs/verify", out)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data apitypes.VerifyResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Data.Valid)
	require.Equal(t, "2000000000000000000", resp.Data.Journal.HealthFactor)
	require.Equal(t, "4000", resp.Data.Journal.CollateralValueUSD)
	require.Equal(t, "1000", resp.Data.Journal.TotalMinted)
}

// TestProve_Errors 测试错误分类到状态码的映射
func TestProve_Errors(t *testing.T) {
	rb := &testutil.RecordingBoundary{Inner: devmode.New(nil)}
	s := newTestServer(t, rb, testOptions())

	w := do(t, s, http.MethodPost, "/v1/proofs", apitypes.ProveRequest{TotalMinted: "-1", CollateralValueUSD: "4000"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), apitypes.ErrInvalidArgument)
	require.Equal(t, 0, rb.ExecuteCalls())

	w = do(t, s, http.MethodPost, "/v1/proofs", map[string]string{"total_minted": "1"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/v1/proofs", apitypes.ProveRequest{
		TotalMinted:        "1",
		CollateralValueUSD: "340282366920938463463374607431768211455",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), apitypes.ErrArithmeticOverflow)
}

// TestVerify_Tampered 测试篡改的文档验证失败
func TestVerify_Tampered(t *testing.T) {
	s := newTestServer(t, nil, testOptions())

	w := do(t, s, http.MethodPost, "/v1/proofs", apitypes.ProveRequest{TotalMinted: "3", CollateralValueUSD: "3"})
	require.Equal(t, http.StatusOK, w.Code)
	var out types.ProofOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	out.ImageID = "0x" + string(bytes.Repeat([]byte("ab"), 32))
	w = do(t, s, http.MethodPost, "/v1/proofs/verify", out)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), apitypes.ErrVerificationFailed)

	w = do(t, s, http.MethodPost, "/v1/proofs/verify", types.ProofOutput{Proof: "0xzz", PubInputs: "0x", ImageID: "0x"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// TestIdentityAndHealth 测试程序标识与存活检查
func TestIdentityAndHealth(t *testing.T) {
	s := newTestServer(t, nil, testOptions())

	w := do(t, s, http.MethodGet, "/v1/identity", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data apitypes.IdentityResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Regexp(t, "^0x[0-9a-f]{64}$", resp.Data.ImageID)
	require.NotEmpty(t, resp.Data.CID)

	w = do(t, s, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "hfproof_api_requests_total")
}

// blockingBoundary 在 Execute 中阻塞直到 release 关闭
type blockingBoundary struct {
	zkvm.Boundary
	entered chan struct{}
	release chan struct{}
}

func (b *blockingBoundary) Execute(ctx context.Context, guest zkvm.Guest, input []byte) (*types.Receipt, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.Boundary.Execute(ctx, guest, input)
}

// TestProve_ConcurrencyLimit 测试超过并发上限时返回 429
func TestProve_ConcurrencyLimit(t *testing.T) {
	bb := &blockingBoundary{
		Boundary: devmode.New(nil),
		entered:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
	options := testOptions()
	options.MaxConcurrentProofs = 1
	s := newTestServer(t, bb, options)

	var wg sync.WaitGroup
	wg.Add(1)
	var first *httptest.ResponseRecorder
	go func() {
		defer wg.Done()
		first = do(t, s, http.MethodPost, "/v1/proofs", apitypes.ProveRequest{TotalMinted: "1", CollateralValueUSD: "1"})
	}()
	<-bb.entered

	w := do(t, s, http.MethodPost, "/v1/proofs", apitypes.ProveRequest{TotalMinted: "1", CollateralValueUSD: "1"})
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	close(bb.release)
	wg.Wait()
	require.Equal(t, http.StatusOK, first.Code)
}

// TestServer_StartStop 测试真实监听与优雅停止
func TestServer_StartStop(t *testing.T) {
	s := newTestServer(t, nil, testOptions())
	require.NoError(t, s.Start())

	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	_, open := <-s.Done()
	require.False(t, open)
}
