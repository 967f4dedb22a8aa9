package log

import (
	configtypes "github.com/weisyn/hfproof/pkg/types"
	"go.uber.org/zap/zapcore"
)

// RotationOptions 日志文件轮转配置（交给 lumberjack）
type RotationOptions struct {
	MaxSizeMB  int  `json:"max_size_mb"`  // 单个文件最大大小(MB)
	MaxBackups int  `json:"max_backups"`  // 最多保留的历史文件数
	MaxAgeDays int  `json:"max_age_days"` // 历史文件最长保留天数
	Compress   bool `json:"compress"`     // 是否 gzip 历史文件
}

// LogOptions 日志配置选项
type LogOptions struct {
	Level     string `json:"level"`      // debug | info | warn | error | panic | fatal
	ToConsole bool   `json:"to_console"` // 控制台输出（固定写 stderr）
	FilePath  string `json:"file_path"`  // 为空表示不写文件

	Rotation RotationOptions `json:"rotation"`

	Caller     bool `json:"caller"`     // 记录调用位置
	Stacktrace bool `json:"stacktrace"` // Error 及以上附带堆栈
}

// ZapLevel 把文本级别转换为 zap 级别；无法识别时回退到 info
func (o *LogOptions) ZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(o.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Config 日志配置实现
type Config struct {
	options *LogOptions
}

// New 由配置文件中的用户配置创建日志配置
//
// 指定 file_path 时关闭控制台输出，证明命令的 stderr 保持干净。
func New(userConfig *configtypes.UserLogConfig) *Config {
	options := defaultOptions()

	if userConfig != nil {
		if userConfig.Level != nil {
			options.Level = *userConfig.Level
		}
		if userConfig.FilePath != nil && *userConfig.FilePath != "" {
			options.FilePath = *userConfig.FilePath
			options.ToConsole = false
		}
	}

	return &Config{options: options}
}

// FromOptions 直接使用完整的配置选项（测试与代码内构造）
func FromOptions(options *LogOptions) *Config {
	if options == nil {
		return &Config{options: defaultOptions()}
	}
	cp := *options
	return &Config{options: &cp}
}

func defaultOptions() *LogOptions {
	return &LogOptions{
		Level:     defaultLogLevel,
		ToConsole: defaultToConsole,
		FilePath:  defaultFilePath,
		Rotation: RotationOptions{
			MaxSizeMB:  defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAgeDays: defaultMaxAgeDays,
			Compress:   defaultCompress,
		},
		Caller:     defaultCaller,
		Stacktrace: defaultStacktrace,
	}
}

// GetOptions 获取完整的日志配置选项
func (c *Config) GetOptions() *LogOptions {
	return c.options
}

// encoderConfig 文件与控制台共用的字段布局
func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
	}
}

// FileEncoder 文件使用 JSON 行格式，便于按 request_id 检索
func (c *Config) FileEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(encoderConfig())
}

// ConsoleEncoder 控制台使用人类可读格式
func (c *Config) ConsoleEncoder() zapcore.Encoder {
	cfg := encoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
