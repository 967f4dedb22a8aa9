package zkproof

import (
	"fmt"

	"github.com/weisyn/hfproof/internal/config/prover"
	"github.com/weisyn/hfproof/internal/core/zkvm/devmode"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/hfproof/pkg/interfaces/zkvm"
	"go.uber.org/fx"
)

// ModuleParams 执行边界模块的依赖参数
type ModuleParams struct {
	fx.In

	Options *prover.ProverOptions
	Logger  log.Logger
	Store   storage.BadgerStore `optional:"true"`

	// 通过 group:"guests" 注册的程序
	Guests []ProvableGuest `group:"guests"`
}

// ModuleOutput 执行边界模块的输出
type ModuleOutput struct {
	fx.Out

	Boundary zkvm.Boundary
}

// Module 返回执行边界模块
func Module() fx.Option {
	return fx.Module("zkproof",
		fx.Provide(ProvideBoundary),
	)
}

// ProvideBoundary 按 prover.backend 选择执行边界
func ProvideBoundary(params ModuleParams) (ModuleOutput, error) {
	logger := params.Logger.With("module", "zkproof")

	switch params.Options.Backend {
	case prover.BackendDev:
		logger.Warn("使用开发模式执行边界，生成的证明不具备密码学安全性")
		return ModuleOutput{Boundary: devmode.New(logger)}, nil
	case prover.BackendGroth16:
		b, err := NewBoundary(logger, params.Options.Curve, params.Store, params.Guests...)
		if err != nil {
			return ModuleOutput{}, err
		}
		return ModuleOutput{Boundary: b}, nil
	default:
		return ModuleOutput{}, fmt.Errorf("unsupported prover backend %q", params.Options.Backend)
	}
}
