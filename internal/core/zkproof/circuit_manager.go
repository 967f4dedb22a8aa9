package zkproof

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	// 基础设施
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hfproof/pkg/interfaces/zkvm"
	"github.com/weisyn/hfproof/pkg/types"

	// gnark ZK库
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// ProvableGuest 能在 Groth16 边界中证明的程序
//
// 除了在边界内运行的 Main 之外，程序还要提供与 Main 语义一致的电路，
// 以及根据输入和日志构造见证的方法。
type ProvableGuest interface {
	zkvm.Guest

	// Circuit 返回用于编译的空电路
	Circuit() frontend.Circuit

	// Assignment 根据输入和 Main 产出的日志构建完整见证
	Assignment(input, journal []byte) (frontend.Circuit, error)

	// PublicAssignment 根据日志构建公开见证
	PublicAssignment(journal []byte) (frontend.Circuit, error)
}

// CompiledGuest 已编译的程序
type CompiledGuest struct {
	Guest ProvableGuest
	CCS   constraint.ConstraintSystem
	ID    types.ProgramIdentity
}

// TrustedSetup 程序对应的可信设置
type TrustedSetup struct {
	ProvingKey   groth16.ProvingKey
	VerifyingKey groth16.VerifyingKey
}

// CircuitManager 电路管理器
//
// 🎯 **专门职责**：编译程序电路、派生程序标识、提供可信设置
// 🏗️ **缓存**：编译结果按程序名称+版本缓存，可信设置按程序标识缓存，
// 进程内只生成一次；配置了密钥库时先从密钥库加载，生成后写回。
type CircuitManager struct {
	logger   log.Logger
	curve    ecc.ID
	keyStore *KeyStore

	compiled      map[string]*CompiledGuest
	byID          map[types.ProgramIdentity]*CompiledGuest
	circuitsMutex sync.RWMutex

	setupCache map[types.ProgramIdentity]*TrustedSetup
	setupMutex sync.RWMutex

	// 串行化编译与可信设置生成，避免同一标识生成两组密钥
	buildMutex sync.Mutex
}

// NewCircuitManager 创建电路管理器
func NewCircuitManager(logger log.Logger, curve ecc.ID, keyStore *KeyStore) *CircuitManager {
	return &CircuitManager{
		logger:     logger,
		curve:      curve,
		keyStore:   keyStore,
		compiled:   make(map[string]*CompiledGuest),
		byID:       make(map[types.ProgramIdentity]*CompiledGuest),
		setupCache: make(map[types.ProgramIdentity]*TrustedSetup),
	}
}

func guestKey(guest zkvm.Guest) string {
	return fmt.Sprintf("%s.v%d", guest.Name(), guest.Version())
}

// Compile 编译程序电路并派生程序标识
//
// 程序标识是序列化约束系统的 SHA-256 摘要，电路任何变化都会改变标识。
func (cm *CircuitManager) Compile(guest ProvableGuest) (*CompiledGuest, error) {
	key := guestKey(guest)

	cm.circuitsMutex.RLock()
	if c, exists := cm.compiled[key]; exists {
		cm.circuitsMutex.RUnlock()
		return c, nil
	}
	cm.circuitsMutex.RUnlock()

	cm.buildMutex.Lock()
	defer cm.buildMutex.Unlock()

	cm.circuitsMutex.RLock()
	if c, exists := cm.compiled[key]; exists {
		cm.circuitsMutex.RUnlock()
		return c, nil
	}
	cm.circuitsMutex.RUnlock()

	silenceGnarkLogger()

	startTime := time.Now()
	ccs, err := frontend.Compile(cm.curve.ScalarField(), r1cs.NewBuilder, guest.Circuit())
	if err != nil {
		return nil, WrapCircuitCompilationFailedError(guest.Name(), err)
	}

	h := sha256.New()
	if _, err := ccs.WriteTo(h); err != nil {
		return nil, WrapCircuitCompilationFailedError(guest.Name(), fmt.Errorf("序列化约束系统失败: %w", err))
	}
	var digest [sha256.Size]byte
	copy(digest[:], h.Sum(nil))

	c := &CompiledGuest{
		Guest: guest,
		CCS:   ccs,
		ID:    types.ProgramIdentityFromDigest(digest),
	}

	cm.circuitsMutex.Lock()
	cm.compiled[key] = c
	cm.byID[c.ID] = c
	cm.circuitsMutex.Unlock()

	cm.logger.Infof("电路编译完成: guest=%s, image_id=%s, constraints=%d, public=%d, 耗时=%v",
		key, c.ID, ccs.GetNbConstraints(), ccs.GetNbPublicVariables(), time.Since(startTime))
	return c, nil
}

// Lookup 按程序标识查找已编译的程序
func (cm *CircuitManager) Lookup(id types.ProgramIdentity) (*CompiledGuest, bool) {
	cm.circuitsMutex.RLock()
	defer cm.circuitsMutex.RUnlock()
	c, ok := cm.byID[id]
	return c, ok
}

// GetTrustedSetup 返回已编译程序的可信设置
//
// 依次查找内存缓存、密钥库；都没有时运行 groth16.Setup 并写回密钥库。
func (cm *CircuitManager) GetTrustedSetup(ctx context.Context, c *CompiledGuest) (*TrustedSetup, error) {
	cm.setupMutex.RLock()
	if entry, exists := cm.setupCache[c.ID]; exists {
		cm.setupMutex.RUnlock()
		return entry, nil
	}
	cm.setupMutex.RUnlock()

	cm.buildMutex.Lock()
	defer cm.buildMutex.Unlock()

	cm.setupMutex.RLock()
	if entry, exists := cm.setupCache[c.ID]; exists {
		cm.setupMutex.RUnlock()
		return entry, nil
	}
	cm.setupMutex.RUnlock()

	pk, vk, found, err := cm.keyStore.Load(ctx, c.ID)
	if err != nil {
		return nil, WrapTrustedSetupFailedError(c.ID.Hex(), err)
	}

	if found {
		cm.logger.Infof("从密钥库加载可信设置: image_id=%s", c.ID)
	} else {
		silenceGnarkLogger()

		startTime := time.Now()
		pk, vk, err = groth16.Setup(c.CCS)
		if err != nil {
			return nil, WrapTrustedSetupFailedError(c.ID.Hex(), err)
		}
		cm.logger.Infof("生成可信设置: image_id=%s, 耗时=%v", c.ID, time.Since(startTime))

		if err := cm.keyStore.Save(ctx, c.ID, pk, vk); err != nil {
			return nil, WrapTrustedSetupFailedError(c.ID.Hex(), err)
		}
	}

	entry := &TrustedSetup{ProvingKey: pk, VerifyingKey: vk}
	cm.setupMutex.Lock()
	cm.setupCache[c.ID] = entry
	cm.setupMutex.Unlock()
	return entry, nil
}

// resolveCurveID 把配置中的曲线名称映射为 gnark 曲线
func resolveCurveID(curve string) (ecc.ID, error) {
	switch curve {
	case "", "bn254":
		return ecc.BN254, nil
	default:
		return 0, WrapUnsupportedCurveError(curve)
	}
}
