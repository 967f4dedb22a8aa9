package metrics

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	"go.uber.org/fx"
)

// defaultSampleInterval 运行时指标采样间隔
const defaultSampleInterval = 10 * time.Second

// RuntimeSampler 周期采样堆内存与 goroutine 数
//
// Groth16 证明的内存占用较大，服务模式下用它观察并发证明的内存压力。
type RuntimeSampler struct {
	interval time.Duration
	logger   log.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRuntimeSampler 创建采样器
func NewRuntimeSampler(interval time.Duration, logger log.Logger) *RuntimeSampler {
	if interval <= 0 {
		interval = defaultSampleInterval
	}
	return &RuntimeSampler{interval: interval, logger: logger}
}

// SampleOnce 立即采样一次
func (s *RuntimeSampler) SampleOnce() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	runtimeHeapBytes.Set(float64(ms.HeapAlloc))
	runtimeGoroutines.Set(float64(runtime.NumGoroutine()))
}

// Start 启动采样循环，直到 Stop 被调用
func (s *RuntimeSampler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.SampleOnce()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SampleOnce()
			}
		}
	}()
}

// Stop 停止采样并等待循环退出
func (s *RuntimeSampler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Module 返回 metrics 模块
//
// 只在服务模式下装配；命令行单次证明不需要周期采样。
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(func(logger log.Logger) *RuntimeSampler {
			return NewRuntimeSampler(defaultSampleInterval, logger.With("module", "metrics"))
		}),
		fx.Invoke(startRuntimeSampler),
	)
}

func startRuntimeSampler(lifecycle fx.Lifecycle, sampler *RuntimeSampler) {
	lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sampler.Start()
			sampler.logger.Debug("运行时指标采样已启动")
			return nil
		},
		OnStop: func(_ context.Context) error {
			sampler.Stop()
			return nil
		},
	})
}
