// Package metrics 提供证明服务的 Prometheus 指标
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 证明结果标签取值
const (
	ResultSuccess = "success"
)

var (
	// 证明请求总数，按结果（success 或错误分类）统计
	proofsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hfproof",
		Name:      "proofs_total",
		Help:      "Total number of proof requests by result",
	}, []string{"result"})

	// 证明耗时
	proofDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hfproof",
		Name:      "proof_duration_seconds",
		Help:      "Duration of proof production in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
	})

	// 正在进行的证明数
	proofsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "hfproof",
		Name:      "proofs_in_flight",
		Help:      "Number of proofs currently being produced",
	})

	// 进程堆内存（周期采样）
	runtimeHeapBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "hfproof",
		Subsystem: "runtime",
		Name:      "heap_alloc_bytes",
		Help:      "Heap bytes allocated, sampled periodically",
	})

	// goroutine 数（周期采样）
	runtimeGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "hfproof",
		Subsystem: "runtime",
		Name:      "goroutines",
		Help:      "Number of goroutines, sampled periodically",
	})
)

// ProofStarted 记录一次证明开始，返回结束时调用的函数
func ProofStarted() func(result string) {
	start := time.Now()
	proofsInFlight.Inc()
	return func(result string) {
		proofsInFlight.Dec()
		proofsTotal.WithLabelValues(result).Inc()
		proofDurationSeconds.Observe(time.Since(start).Seconds())
	}
}

// ProofsTotal 返回计数器（测试与诊断使用）
func ProofsTotal() *prometheus.CounterVec {
	return proofsTotal
}
