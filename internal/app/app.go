// Package app 组装 hfproof 的 fx 应用：配置、日志、密钥库、验证执行边界、流水线以及可选的HTTP服务。
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	apihttp "github.com/weisyn/hfproof/internal/api/http"
	"github.com/weisyn/hfproof/internal/config/prover"
	"github.com/weisyn/hfproof/internal/core/pipeline"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
)

const (
	// startTimeout 启动超时（Groth16 编译在首次证明时才发生，这里只覆盖打开密钥库等）
	startTimeout = 30 * time.Second
	// stopTimeout 停止超时，保证 badger 有时间落盘
	stopTimeout = 60 * time.Second
)

// App 是 hfproof 应用的对外接口
type App interface {
	// Packager 返回证明打包器
	Packager() *pipeline.Packager

	// ProverOptions 返回生效的证明配置
	ProverOptions() *prover.ProverOptions

	// Logger 返回应用日志记录器
	Logger() log.Logger

	// Server 返回HTTP服务（未启用API时为nil）
	Server() *apihttp.Server

	// Stop 停止应用
	Stop() error

	// Wait 阻塞直到收到退出信号或HTTP服务异常退出，然后停止应用
	Wait() error
}

// internalApp hfproof 应用的内部实现
type internalApp struct {
	bootstrap *Bootstrap
}

func (a *internalApp) Packager() *pipeline.Packager         { return a.bootstrap.packager }
func (a *internalApp) ProverOptions() *prover.ProverOptions { return a.bootstrap.proverOptions }
func (a *internalApp) Logger() log.Logger                   { return a.bootstrap.logger }
func (a *internalApp) Server() *apihttp.Server              { return a.bootstrap.server }

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Wait 等待退出信号
func (a *internalApp) Wait() error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	var serverDone <-chan error
	if a.bootstrap.server != nil {
		serverDone = a.bootstrap.server.Done()
	}

	var serveErr error
	select {
	case sig := <-signals:
		a.Logger().Infof("收到信号 %v，正在退出", sig)
	case serveErr = <-serverDone:
		if serveErr != nil {
			a.Logger().Errorf("HTTP服务异常退出: %v", serveErr)
		}
	}

	if err := a.Stop(); err != nil {
		return err
	}
	return serveErr
}

// Start 解析配置、创建并启动应用
func Start(appOptions ...Option) (App, error) {
	opts, err := newOptions(appOptions...)
	if err != nil {
		return nil, err
	}

	bootstrap := NewBootstrap(opts)
	if err := bootstrap.CreateFxApp(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := bootstrap.StartApp(ctx); err != nil {
		return nil, err
	}

	return &internalApp{bootstrap: bootstrap}, nil
}
