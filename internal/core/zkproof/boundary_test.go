package zkproof

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	badgerconfig "github.com/weisyn/hfproof/internal/config/storage/badger"
	"github.com/weisyn/hfproof/internal/core/healthfactor"
	"github.com/weisyn/hfproof/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/hfproof/internal/core/testutil"
	corezkvm "github.com/weisyn/hfproof/internal/core/zkvm"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/hfproof/pkg/interfaces/zkvm"
	"github.com/weisyn/hfproof/pkg/types"
	"lukechampine.com/uint128"
)

// ============================================================================
//                              测试辅助
// ============================================================================

func newTestStore(t *testing.T) *badger.Store {
	t.Helper()
	store, err := badger.New(&badgerconfig.BadgerOptions{MemTableSize: 64 << 20}, testutil.NewTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestBoundary(t *testing.T, store storage.BadgerStore) *Boundary {
	t.Helper()
	b, err := NewBoundary(testutil.NewTestLogger(), "bn254", store, healthfactor.NewGuest())
	require.NoError(t, err)
	return b
}

func encode(minted, collateral uint64) []byte {
	return healthfactor.EncodeInput(types.HealthFactorInput{
		TotalMinted:        uint128.From64(minted),
		CollateralValueUSD: uint128.From64(collateral),
	})
}

// ============================================================================
//                              端到端证明
// ============================================================================

// TestBoundary_ProveAndVerify 测试真实 Groth16 证明的生成与验证
func TestBoundary_ProveAndVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("跳过 Groth16 端到端测试")
	}
	b := newTestBoundary(t, nil)
	guest := healthfactor.NewGuest()

	id, err := b.ImageID(guest)
	require.NoError(t, err)
	require.False(t, id.IsZero())

	// 标识只取决于电路
	id2, err := b.ImageID(guest)
	require.NoError(t, err)
	require.Equal(t, id, id2)

	receipt, err := b.Execute(context.Background(), guest, encode(1000, 4000))
	require.NoError(t, err)
	require.Equal(t, Scheme, receipt.Scheme)
	require.NotEmpty(t, receipt.Seal)

	journal, err := b.Verify(receipt, id)
	require.NoError(t, err)
	j, err := healthfactor.DecodeJournal(journal)
	require.NoError(t, err)
	require.Equal(t, uint128.From64(2_000_000_000_000_000_000), j.HealthFactor)
	require.Equal(t, uint128.From64(4000), j.CollateralValueUSD)
	require.Equal(t, uint128.From64(1000), j.TotalMinted)

	t.Run("零债务", func(t *testing.T) {
		r, err := b.Execute(context.Background(), guest, encode(0, 12345))
		require.NoError(t, err)
		journal, err := b.Verify(r, id)
		require.NoError(t, err)
		j, err := healthfactor.DecodeJournal(journal)
		require.NoError(t, err)
		require.Equal(t, uint128.Max, j.HealthFactor)
	})

	t.Run("无关标识", func(t *testing.T) {
		other := id
		other[7] ^= 0xff
		_, err := b.Verify(receipt, other)
		require.ErrorIs(t, err, corezkvm.ErrVerificationFailed)
		require.ErrorIs(t, err, corezkvm.ErrUnknownImage)
	})

	t.Run("篡改日志", func(t *testing.T) {
		tampered := *receipt
		tampered.Journal = append([]byte(nil), receipt.Journal...)
		tampered.Journal[16] ^= 1
		_, err := b.Verify(&tampered, id)
		require.ErrorIs(t, err, ErrProofVerificationFailed)
		require.ErrorIs(t, err, corezkvm.ErrVerificationFailed)
	})

	t.Run("篡改密封", func(t *testing.T) {
		tampered := *receipt
		tampered.Seal = receipt.Seal[:len(receipt.Seal)/2]
		_, err := b.Verify(&tampered, id)
		require.ErrorIs(t, err, corezkvm.ErrVerificationFailed)
	})

	t.Run("方案不符", func(t *testing.T) {
		tampered := *receipt
		tampered.Scheme = "dev"
		_, err := b.Verify(&tampered, id)
		require.ErrorIs(t, err, corezkvm.ErrSchemeMismatch)
	})
}

// TestBoundary_ConcurrentExecute 测试对独立输入并发证明
func TestBoundary_ConcurrentExecute(t *testing.T) {
	if testing.Short() {
		t.Skip("跳过 Groth16 并发测试")
	}
	b := newTestBoundary(t, nil)
	guest := healthfactor.NewGuest()
	id, err := b.ImageID(guest)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := b.Execute(context.Background(), guest, encode(uint64(i+1), 1_000_000))
			if err == nil {
				_, err = b.Verify(r, id)
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
}

// TestBoundary_SetupPersistence 测试可信设置持久化后跨实例验证
func TestBoundary_SetupPersistence(t *testing.T) {
	if testing.Short() {
		t.Skip("跳过 Groth16 持久化测试")
	}
	store := newTestStore(t)
	guest := healthfactor.NewGuest()

	prover := newTestBoundary(t, store)
	id, err := prover.ImageID(guest)
	require.NoError(t, err)
	receipt, err := prover.Execute(context.Background(), guest, encode(3, 3))
	require.NoError(t, err)

	ids, err := prover.KeyStore().List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{id.Hex()}, ids)

	// 新实例共享同一密钥库：Verify 在未调用 ImageID 时也能识别已注册的程序
	verifier := newTestBoundary(t, store)
	_, err = verifier.Verify(receipt, id)
	require.NoError(t, err)

	// 独立生成的可信设置无法验证该证明
	stranger := newTestBoundary(t, nil)
	_, err = stranger.Verify(receipt, id)
	require.ErrorIs(t, err, ErrProofVerificationFailed)
}

// TestBoundary_ExecuteErrors 测试程序中止、取消与不支持的程序
func TestBoundary_ExecuteErrors(t *testing.T) {
	b := newTestBoundary(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Execute(ctx, healthfactor.NewGuest(), encode(1, 1))
	require.ErrorIs(t, err, context.Canceled)

	_, err = b.Execute(context.Background(), plainGuest{}, nil)
	require.ErrorIs(t, err, ErrUnsupportedGuest)
	_, err = b.ImageID(plainGuest{})
	require.ErrorIs(t, err, ErrUnsupportedGuest)

	if testing.Short() {
		return
	}
	overflow := healthfactor.EncodeInput(types.HealthFactorInput{TotalMinted: uint128.From64(1), CollateralValueUSD: uint128.Max})
	_, err = b.Execute(context.Background(), healthfactor.NewGuest(), overflow)
	require.ErrorIs(t, err, healthfactor.ErrArithmeticOverflow)
	require.ErrorIs(t, err, corezkvm.ErrGuestAborted)
}

// TestNewBoundary_UnsupportedCurve 测试曲线配置
func TestNewBoundary_UnsupportedCurve(t *testing.T) {
	_, err := NewBoundary(testutil.NewTestLogger(), "bls12-381", nil)
	require.ErrorIs(t, err, ErrUnsupportedCurve)
}

// plainGuest 没有电路的程序
type plainGuest struct{}

func (plainGuest) Name() string                 { return "plain" }
func (plainGuest) Version() uint32              { return 1 }
func (plainGuest) Main(env zkvm.GuestEnv) error { return nil }
