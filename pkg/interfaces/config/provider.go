package config

import (
	apiconfig "github.com/weisyn/hfproof/internal/config/api"
	logconfig "github.com/weisyn/hfproof/internal/config/log"
	proverconfig "github.com/weisyn/hfproof/internal/config/prover"
	badgerconfig "github.com/weisyn/hfproof/internal/config/storage/badger"
)

// Provider 配置提供者接口
//
// 每个 Get 方法都返回应用了默认值和用户覆盖之后的完整配置。
type Provider interface {
	// GetAppName 获取应用名称
	GetAppName() string

	// GetProver 获取证明配置
	GetProver() *proverconfig.ProverOptions

	// GetBadger 获取密钥库存储配置
	GetBadger() *badgerconfig.BadgerOptions

	// GetAPI 获取API服务配置
	GetAPI() *apiconfig.APIOptions

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions
}
