package pipeline

import (
	"github.com/weisyn/hfproof/internal/core/healthfactor"
	"github.com/weisyn/hfproof/internal/core/zkproof"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hfproof/pkg/interfaces/zkvm"
	"go.uber.org/fx"
)

// ModuleParams 流水线模块的依赖参数
type ModuleParams struct {
	fx.In

	Boundary zkvm.Boundary
	Logger   log.Logger
}

// Module 返回流水线模块
//
// 同时把健康因子程序注册到 group:"guests"，供 Groth16 边界按标识查找。
func Module() fx.Option {
	return fx.Module("pipeline",
		fx.Provide(
			fx.Annotate(
				func() zkproof.ProvableGuest { return healthfactor.NewGuest() },
				fx.ResultTags(`group:"guests"`),
			),
			func(params ModuleParams) *Packager {
				return NewPackager(params.Boundary, healthfactor.NewGuest(), params.Logger.With("module", "pipeline"))
			},
		),
	)
}
