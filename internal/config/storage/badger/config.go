package badger

import (
	"path/filepath"

	configtypes "github.com/weisyn/hfproof/pkg/types"
)

// BadgerOptions BadgerDB存储配置选项
type BadgerOptions struct {
	// === 基础配置 ===
	Path       string `json:"path"`        // 数据库存储路径（为空时使用内存模式）
	SyncWrites bool   `json:"sync_writes"` // 是否同步写入（数据安全性）

	// === 基础性能配置 ===
	MemTableSize     int64 `json:"mem_table_size"`      // 内存表大小
	ValueLogFileSize int64 `json:"value_log_file_size"` // 值日志文件大小
}

// InMemory 是否使用内存模式
func (o *BadgerOptions) InMemory() bool {
	return o.Path == ""
}

// Config BadgerDB配置实现
type Config struct {
	options *BadgerOptions
}

// New 创建BadgerDB配置实现
func New(userConfig *configtypes.UserStorageConfig) *Config {
	defaultOptions := createDefaultBadgerOptions()

	// 如果有用户配置，应用用户配置覆盖默认值
	if userConfig != nil {
		applyUserConfig(defaultOptions, userConfig)
	}

	return &Config{
		options: defaultOptions,
	}
}

// createDefaultBadgerOptions 创建默认BadgerDB配置
func createDefaultBadgerOptions() *BadgerOptions {
	return &BadgerOptions{
		Path:             defaultPath,
		SyncWrites:       defaultSyncWrites,
		MemTableSize:     defaultMemTableSize,
		ValueLogFileSize: defaultValueLogFileSize,
	}
}

// applyUserConfig 应用用户配置覆盖默认值
func applyUserConfig(options *BadgerOptions, storageConfig *configtypes.UserStorageConfig) {
	if storageConfig.Path != nil {
		options.Path = *storageConfig.Path
		if options.Path != "" {
			if abs, err := filepath.Abs(options.Path); err == nil {
				options.Path = abs
			}
		}
	}
	if storageConfig.SyncWrites != nil {
		options.SyncWrites = *storageConfig.SyncWrites
	}
}

// GetOptions 获取完整的BadgerDB配置选项
func (c *Config) GetOptions() *BadgerOptions {
	return c.options
}
