// Package testutil 提供核心模块测试的辅助工具
//
// ⚠️ **注意**：本包只依赖 pkg/interfaces 与 pkg/types，避免循环依赖。
package testutil

import (
	"context"
	"sync"

	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hfproof/pkg/interfaces/zkvm"
	"github.com/weisyn/hfproof/pkg/types"
	"go.uber.org/zap"
)

// NewTestLogger 创建测试用的Logger
func NewTestLogger() log.Logger {
	return &MockLogger{}
}

// MockLogger 统一的日志Mock实现
//
// 所有方法返回空值，不记录日志。
type MockLogger struct{}

func (m *MockLogger) Debug(msg string)                          {}
func (m *MockLogger) Debugf(format string, args ...interface{}) {}
func (m *MockLogger) Info(msg string)                           {}
func (m *MockLogger) Infof(format string, args ...interface{})  {}
func (m *MockLogger) Warn(msg string)                           {}
func (m *MockLogger) Warnf(format string, args ...interface{})  {}
func (m *MockLogger) Error(msg string)                          {}
func (m *MockLogger) Errorf(format string, args ...interface{}) {}
func (m *MockLogger) Fatal(msg string)                          {}
func (m *MockLogger) Fatalf(format string, args ...interface{}) {}
func (m *MockLogger) With(args ...interface{}) log.Logger       { return m }
func (m *MockLogger) Sync() error                               { return nil }
func (m *MockLogger) GetZapLogger() *zap.Logger                 { return zap.NewNop() }

// RecordingBoundary 记录调用次数的执行边界包装
//
// 用于断言"输入错误在进入边界之前被拒绝"之类的行为。
// Inner 为空时 Execute/Verify 返回 ExecuteErr/VerifyErr。
type RecordingBoundary struct {
	Inner zkvm.Boundary

	// 可选：覆盖返回值
	ExecuteErr error
	VerifyErr  error

	mutex        sync.Mutex
	executeCalls int
	verifyCalls  int
}

var _ zkvm.Boundary = (*RecordingBoundary)(nil)

// ImageID 透传到 Inner
func (b *RecordingBoundary) ImageID(guest zkvm.Guest) (types.ProgramIdentity, error) {
	if b.Inner == nil {
		return types.ProgramIdentity{1}, nil
	}
	return b.Inner.ImageID(guest)
}

// Execute 记录调用并透传
func (b *RecordingBoundary) Execute(ctx context.Context, guest zkvm.Guest, input []byte) (*types.Receipt, error) {
	b.mutex.Lock()
	b.executeCalls++
	b.mutex.Unlock()

	if b.ExecuteErr != nil {
		return nil, b.ExecuteErr
	}
	if b.Inner == nil {
		return &types.Receipt{Scheme: "recording"}, nil
	}
	return b.Inner.Execute(ctx, guest, input)
}

// Verify 记录调用并透传
func (b *RecordingBoundary) Verify(receipt *types.Receipt, id types.ProgramIdentity) ([]byte, error) {
	b.mutex.Lock()
	b.verifyCalls++
	b.mutex.Unlock()

	if b.VerifyErr != nil {
		return nil, b.VerifyErr
	}
	if b.Inner == nil {
		return receipt.Journal, nil
	}
	return b.Inner.Verify(receipt, id)
}

// ExecuteCalls 返回 Execute 被调用的次数
func (b *RecordingBoundary) ExecuteCalls() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.executeCalls
}

// VerifyCalls 返回 Verify 被调用的次数
func (b *RecordingBoundary) VerifyCalls() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.verifyCalls
}
