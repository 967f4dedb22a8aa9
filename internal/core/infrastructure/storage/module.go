// Package storage 提供存储管理功能
package storage

import (
	"context"

	"github.com/weisyn/hfproof/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/hfproof/pkg/interfaces/config"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/weisyn/hfproof/pkg/interfaces/infrastructure/storage"
	"go.uber.org/fx"
)

// ModuleParams 定义存储模块的依赖参数
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider // 配置提供者
	Logger    log.Logger      // 日志记录器
}

// ModuleOutput 定义存储模块的输出结构
type ModuleOutput struct {
	fx.Out

	BadgerStore storageInterface.BadgerStore // 可信设置密钥库
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 打开密钥库并注册关闭钩子
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger := params.Logger.With("module", "storage")

	store, err := badger.New(params.Provider.GetBadger(), logger)
	if err != nil {
		return ModuleOutput{}, err
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Debug("正在关闭存储服务...")
			return store.Close()
		},
	})

	return ModuleOutput{BadgerStore: store}, nil
}
