package api

import (
	"time"

	configtypes "github.com/weisyn/hfproof/pkg/types"
)

// APIOptions API服务配置选项
type APIOptions struct {
	ListenAddr          string        `json:"listen_addr"`           // 监听地址
	MaxConcurrentProofs int           `json:"max_concurrent_proofs"` // 最大并发证明数
	ReadTimeout         time.Duration `json:"read_timeout"`          // 读取超时时间
	WriteTimeout        time.Duration `json:"write_timeout"`         // 写入超时时间
	MaxRequestSize      int64         `json:"max_request_size"`      // 最大请求大小(字节)
}

// Config API配置实现
type Config struct {
	options *APIOptions
}

// New 创建API配置实现
func New(userConfig *configtypes.UserAPIConfig) *Config {
	options := &APIOptions{
		ListenAddr:          defaultListenAddr,
		MaxConcurrentProofs: defaultMaxConcurrentProofs,
		ReadTimeout:         defaultReadTimeout,
		WriteTimeout:        defaultWriteTimeout,
		MaxRequestSize:      defaultMaxRequestSize,
	}

	if userConfig != nil {
		if userConfig.ListenAddr != nil && *userConfig.ListenAddr != "" {
			options.ListenAddr = *userConfig.ListenAddr
		}
		// 非正数视为未设置
		if userConfig.MaxConcurrentProofs != nil && *userConfig.MaxConcurrentProofs > 0 {
			options.MaxConcurrentProofs = *userConfig.MaxConcurrentProofs
		}
	}

	return &Config{options: options}
}

// GetOptions 获取完整的API配置选项
func (c *Config) GetOptions() *APIOptions {
	return c.options
}
