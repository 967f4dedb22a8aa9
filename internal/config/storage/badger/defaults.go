package badger

// BadgerDB 密钥库默认配置值
const (
	// defaultPath 默认路径为空，表示使用内存模式
	// 可信设置只在本进程内有效；需要跨进程复用证明密钥时必须配置 storage.path
	defaultPath = ""

	// defaultSyncWrites 默认启用同步写入
	// 证明密钥写入频率极低（每个程序标识一次），同步写入不影响吞吐
	defaultSyncWrites = true

	// defaultMemTableSize 默认内存表大小为16MB
	// 密钥库只保存少量大值，不需要 badger 默认的 64MB
	defaultMemTableSize = 16 << 20 // 16MB

	// defaultValueLogFileSize 默认值日志文件大小为64MB
	defaultValueLogFileSize = 64 << 20 // 64MB
)
