// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty"` // 应用名称

	// 证明生成配置
	Prover *UserProverConfig `json:"prover,omitempty"`

	// 存储配置（可信设置密钥库）
	Storage *UserStorageConfig `json:"storage,omitempty"`

	// API服务配置
	API *UserAPIConfig `json:"api,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`
}

// UserProverConfig 用户证明配置
// 只包含JSON配置文件中实际出现的字段
type UserProverConfig struct {
	Backend   *string `json:"backend,omitempty"`    // 证明后端：groth16 | dev
	Curve     *string `json:"curve,omitempty"`      // 椭圆曲线：bn254
	OutputDir *string `json:"output_dir,omitempty"` // 产物输出目录
}

// UserStorageConfig 用户存储配置
type UserStorageConfig struct {
	Path       *string `json:"path,omitempty"`        // 密钥库目录（为空时使用内存库）
	SyncWrites *bool   `json:"sync_writes,omitempty"` // 是否同步写盘
}

// UserAPIConfig 用户API配置
type UserAPIConfig struct {
	ListenAddr          *string `json:"listen_addr,omitempty"`           // HTTP监听地址
	MaxConcurrentProofs *int    `json:"max_concurrent_proofs,omitempty"` // 最大并发证明数
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径
}

// BoolPtr 返回布尔值指针（构造用户配置时使用）
func BoolPtr(v bool) *bool {
	return &v
}

// IntPtr 返回整数指针
func IntPtr(v int) *int {
	return &v
}

// StringPtr 返回字符串指针
func StringPtr(v string) *string {
	return &v
}
