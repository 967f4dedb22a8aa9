package log

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	logconfig "github.com/weisyn/hfproof/internal/config/log"
	"github.com/weisyn/hfproof/pkg/types"
	"go.uber.org/zap/zapcore"
)

// newFileLogger 创建只写文件的日志记录器
func newFileLogger(t *testing.T, level string) (string, *Logger) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "logs", "hfproof.log")
	opts := &logconfig.LogOptions{
		Level:     level,
		FilePath:  logPath,
		ToConsole: false,
		Rotation:  logconfig.RotationOptions{MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1},
	}
	l, err := New(opts)
	require.NoError(t, err)
	return logPath, l.(*Logger)
}

// readEntries 逐行解析 JSON 日志
func readEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

// TestLogger_FileOutput 测试文件输出为 JSON 且包含结构化字段
func TestLogger_FileOutput(t *testing.T) {
	path, logger := newFileLogger(t, DebugLevel)

	logger.With("request_id", "r-1", "attempt", 1).Info("证明已生成")
	require.NoError(t, logger.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	require.Equal(t, "info", entries[0]["level"])
	require.Equal(t, "证明已生成", entries[0]["msg"])
	require.Equal(t, "r-1", entries[0]["request_id"])
	require.EqualValues(t, 1, entries[0]["attempt"])
}

// TestLogger_LevelFiltering 测试级别过滤
func TestLogger_LevelFiltering(t *testing.T) {
	path, logger := newFileLogger(t, WarnLevel)

	logger.Debug("调试日志")
	logger.Info("信息日志")
	logger.Warn("警告日志")
	logger.Errorf("错误日志 %d", 7)
	require.NoError(t, logger.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 2)
	require.Equal(t, "警告日志", entries[0]["msg"])
	require.Equal(t, "错误日志 7", entries[1]["msg"])
}

// TestLogger_OddWithArgs 测试奇数个键值参数时丢弃最后一个
func TestLogger_OddWithArgs(t *testing.T) {
	path, logger := newFileLogger(t, InfoLevel)

	logger.With("k", "v", "dangling").Info("odd")
	require.NoError(t, logger.Sync())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	require.Equal(t, "v", entries[0]["k"])
	_, exists := entries[0]["dangling"]
	require.False(t, exists)
}

// TestSetLogger 测试设置和切换全局日志记录器
func TestSetLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	nop := NewNop()
	SetLogger(nop)
	require.Same(t, nop, GetLogger())

	// nil 不覆盖现有记录器
	SetLogger(nil)
	require.Same(t, nop, GetLogger())
}

// TestResetDefault 测试重置默认日志记录器
func TestResetDefault(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	custom := NewNop()
	SetLogger(custom)
	ResetDefault()

	require.NotSame(t, custom, GetLogger())
	require.NotNil(t, GetLogger())
}

// TestConfig_UserOverrides 测试用户配置覆盖默认值
func TestConfig_UserOverrides(t *testing.T) {
	level := "debug"
	file := "/tmp/hfproof.log"
	opts := logconfig.New(&types.UserLogConfig{Level: &level, FilePath: &file}).GetOptions()

	require.Equal(t, "debug", opts.Level)
	require.Equal(t, zapcore.DebugLevel, opts.ZapLevel())
	require.Equal(t, file, opts.FilePath)
	require.False(t, opts.ToConsole)

	defaults := logconfig.New(nil).GetOptions()
	require.Equal(t, "info", defaults.Level)
	require.True(t, defaults.ToConsole)
	require.Empty(t, defaults.FilePath)

	unknown := &logconfig.LogOptions{Level: "verbose"}
	require.Equal(t, zapcore.InfoLevel, unknown.ZapLevel())
}

// TestNew_NoOutputs 测试控制台与文件都关闭时丢弃输出
func TestNew_NoOutputs(t *testing.T) {
	l, err := New(&logconfig.LogOptions{Level: "debug"})
	require.NoError(t, err)
	l.Info("dropped")
	require.NoError(t, l.Sync())
}
