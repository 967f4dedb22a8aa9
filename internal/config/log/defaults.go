package log

// 日志配置默认值
const (
	// defaultLogLevel 默认日志级别
	defaultLogLevel = "info"

	// defaultToConsole 默认启用控制台输出（写到 stderr，stdout 留给命令结果）
	defaultToConsole = true

	// defaultFilePath 默认不写日志文件
	defaultFilePath = ""

	// 轮转：服务模式下每个证明请求只写几行日志，10MB × 5 足够覆盖数天
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 5
	defaultMaxAgeDays = 14
	defaultCompress   = true

	defaultCaller     = true
	defaultStacktrace = false
)
