package app

import (
	"context"
	"fmt"

	"github.com/weisyn/hfproof/internal/api"
	apihttp "github.com/weisyn/hfproof/internal/api/http"
	config "github.com/weisyn/hfproof/internal/config"
	"github.com/weisyn/hfproof/internal/config/prover"
	log "github.com/weisyn/hfproof/internal/core/infrastructure/log"
	"github.com/weisyn/hfproof/internal/core/infrastructure/metrics"
	"github.com/weisyn/hfproof/internal/core/infrastructure/storage"
	"github.com/weisyn/hfproof/internal/core/pipeline"
	"github.com/weisyn/hfproof/internal/core/zkproof"
	configInterface "github.com/weisyn/hfproof/pkg/interfaces/config"
	logInterface "github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// Framework layers
const (
	// 基础设施层
	LayerInfrastructure = "infrastructure"
	// 证明业务层
	LayerBusiness = "business"
	// 应用层
	LayerApplication = "application"
)

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts  *options
	fxApp *fx.App

	// 由 fx.Populate 填充
	packager      *pipeline.Packager
	proverOptions *prover.ProverOptions
	logger        logInterface.Logger
	server        *apihttp.Server
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{
		opts: opts,
	}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	modules := []fx.Option{
		config.Module(),  // 1. 配置(不依赖其他)
		log.Module(),     // 2. 日志(依赖配置)
		storage.Module(), // 3. 可信设置密钥库(依赖配置和日志)
	}

	// 周期性运行时采样只对常驻服务有意义
	if b.opts.enableAPI {
		modules = append(modules, metrics.Module())
	}

	return modules
}

// SetupBusinessLayer 设置证明业务层模块
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		zkproof.Module(),  // 1. 验证执行边界(依赖配置、日志和密钥库)
		pipeline.Module(), // 2. 证明打包流水线(依赖边界)
	}
}

// SetupApplicationLayer 设置应用层模块
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	modules := []fx.Option{
		fx.Provide(func() configInterface.AppOptions { return b.opts }),
		fx.Populate(&b.packager, &b.proverOptions, &b.logger),
	}

	if b.opts.enableAPI {
		modules = append(modules,
			api.Module(),
			fx.Populate(&b.server),
		)
	}

	return modules
}

// SetupModules 按层次组装所有模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var allModules []fx.Option
	allModules = append(allModules, b.SetupInfrastructureLayer()...)
	allModules = append(allModules, b.SetupBusinessLayer()...)
	allModules = append(allModules, b.SetupApplicationLayer()...)
	return allModules
}

// CreateFxApp 创建fx应用
func (b *Bootstrap) CreateFxApp() error {
	b.fxApp = fx.New(
		fx.Options(b.SetupModules()...),
		fx.NopLogger,
	)
	if err := b.fxApp.Err(); err != nil {
		return fmt.Errorf("依赖注入失败: %w", err)
	}
	return nil
}

// StartApp 启动应用程序
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	return nil
}

// StopApp 停止应用程序
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}
