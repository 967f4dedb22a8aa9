package api

import "time"

// API服务默认配置值
const (
	// defaultListenAddr HTTP监听地址
	// 默认只监听本机：证明服务会暴露输入数值，对外开放需要显式配置
	defaultListenAddr = "127.0.0.1:8080"

	// defaultMaxConcurrentProofs 最大并发证明数
	// Groth16 证明是 CPU 密集型计算，gnark 内部已经使用多核
	defaultMaxConcurrentProofs = 2

	// defaultReadTimeout HTTP读取超时
	defaultReadTimeout = 15 * time.Second

	// defaultWriteTimeout HTTP写入超时
	// 需要覆盖一次完整的证明生成
	defaultWriteTimeout = 5 * time.Minute

	// defaultMaxRequestSize 最大请求大小(字节)
	// 验证请求携带完整的证明文档，1MB 足够
	defaultMaxRequestSize = 1 << 20
)
