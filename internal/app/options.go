package app

import (
	"fmt"

	configprovider "github.com/weisyn/hfproof/internal/config"
	"github.com/weisyn/hfproof/pkg/interfaces/config"
	"github.com/weisyn/hfproof/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径
	configFilePath string

	// 用户配置（优先级高于configFilePath）
	appConfig *types.AppConfig

	// 命令行覆盖项，在配置文件加载之后生效
	overrides []func(*types.AppConfig)

	// API支持开关（仅 serve 命令启用）
	enableAPI bool
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithAppConfig 直接使用给定的用户配置，不再读取配置文件
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithProverBackend 覆盖证明后端（groth16 | dev）
func WithProverBackend(backend string) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, func(c *types.AppConfig) {
			if c.Prover == nil {
				c.Prover = &types.UserProverConfig{}
			}
			c.Prover.Backend = types.StringPtr(backend)
		})
	}
}

// WithOutputDir 覆盖产物输出目录
func WithOutputDir(dir string) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, func(c *types.AppConfig) {
			if c.Prover == nil {
				c.Prover = &types.UserProverConfig{}
			}
			c.Prover.OutputDir = types.StringPtr(dir)
		})
	}
}

// WithStoragePath 覆盖密钥库目录
func WithStoragePath(path string) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, func(c *types.AppConfig) {
			if c.Storage == nil {
				c.Storage = &types.UserStorageConfig{}
			}
			c.Storage.Path = types.StringPtr(path)
		})
	}
}

// WithListenAddr 覆盖HTTP监听地址
func WithListenAddr(addr string) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, func(c *types.AppConfig) {
			if c.API == nil {
				c.API = &types.UserAPIConfig{}
			}
			c.API.ListenAddr = types.StringPtr(addr)
		})
	}
}

// WithAPI 启用API模块
func WithAPI() Option {
	return func(o *options) {
		o.enableAPI = true
	}
}

// newOptions 创建选项并解析最终用户配置
func newOptions(opts ...Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.appConfig == nil {
		appConfig, err := configprovider.LoadAppConfig(o.configFilePath)
		if err != nil {
			return nil, err
		}
		o.appConfig = appConfig
	}

	for _, override := range o.overrides {
		override(o.appConfig)
	}

	if err := configprovider.ValidateAppConfig(o.appConfig); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}

	return o, nil
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
