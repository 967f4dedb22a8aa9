package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/weisyn/hfproof/internal/config/api"
	"github.com/weisyn/hfproof/internal/config/log"
	"github.com/weisyn/hfproof/internal/config/prover"
	"github.com/weisyn/hfproof/internal/config/storage/badger"
	"github.com/weisyn/hfproof/pkg/interfaces/config"
	"github.com/weisyn/hfproof/pkg/types"
)

// defaultAppName 默认应用名称
const defaultAppName = "hfproof"

// ConfigPathEnv 配置文件路径环境变量
const ConfigPathEnv = "HFPROOF_CONFIG_PATH"

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// 编译时校验Provider是否实现了config.Provider接口
var _ config.Provider = (*Provider)(nil)

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{
		appConfig: appConfig,
	}
}

// LoadAppConfig 从JSON配置文件加载用户配置
//
// path 为空时依次尝试环境变量 HFPROOF_CONFIG_PATH；两者都为空则返回空配置（全部使用默认值）。
// 显式指定的文件不存在或无法解析时返回错误，不静默回退。
func LoadAppConfig(path string) (*types.AppConfig, error) {
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path == "" {
		return &types.AppConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败 %s: %w", path, err)
	}

	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件失败 %s: %w", path, err)
	}

	if err := ValidateAppConfig(&appConfig); err != nil {
		return nil, err
	}

	return &appConfig, nil
}

// GetAppName 获取应用名称
func (p *Provider) GetAppName() string {
	if p.appConfig.AppName != nil && *p.appConfig.AppName != "" {
		return *p.appConfig.AppName
	}
	return defaultAppName
}

// GetProver 获取证明配置
func (p *Provider) GetProver() *prover.ProverOptions {
	// prover.New会处理默认值应用和用户配置覆盖
	return prover.New(p.appConfig.Prover).GetOptions()
}

// GetBadger 获取密钥库存储配置
func (p *Provider) GetBadger() *badger.BadgerOptions {
	return badger.New(p.appConfig.Storage).GetOptions()
}

// GetAPI 获取API服务配置
func (p *Provider) GetAPI() *api.APIOptions {
	return api.New(p.appConfig.API).GetOptions()
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	// 直接传递用户日志配置给log.New，让它处理默认值和转换
	return log.New(p.appConfig.Log).GetOptions()
}
