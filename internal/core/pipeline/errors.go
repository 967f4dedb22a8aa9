package pipeline

import (
	"errors"
	"fmt"

	"github.com/weisyn/hfproof/internal/core/emitter"
	"github.com/weisyn/hfproof/internal/core/healthfactor"
	"github.com/weisyn/hfproof/internal/core/input"
	corezkvm "github.com/weisyn/hfproof/internal/core/zkvm"
)

// ErrorKind 流水线错误分类
type ErrorKind int

const (
	// KindInput 输入无法解析或超出范围，执行之前被拒绝
	KindInput ErrorKind = iota + 1

	// KindArithmeticOverflow 健康因子计算溢出，程序中止
	KindArithmeticOverflow

	// KindExecution 执行边界无法运行程序或生成证明
	KindExecution

	// KindVerification 本地验证失败，证明不会被输出
	KindVerification

	// KindSerialization 证明产物或外部表示无法编码、解码或写出
	KindSerialization
)

// String 返回分类名称（同时用作指标标签）
func (k ErrorKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindArithmeticOverflow:
		return "arithmetic_overflow"
	case KindExecution:
		return "execution"
	case KindVerification:
		return "verification"
	case KindSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// PipelineError 流水线错误
//
// 所有错误都立即向上传递，不重试，也不产出部分结果。
type PipelineError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// IsKind 判断错误是否属于指定分类
func IsKind(err error, kind ErrorKind) bool {
	var pe *PipelineError
	return errors.As(err, &pe) && pe.Kind == kind
}

// KindOf 返回错误的分类；不是流水线错误时返回 0
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

// classify 按哨兵错误归类；溢出优先于程序中止
func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, input.ErrInvalidInput):
		return KindInput
	case errors.Is(err, healthfactor.ErrArithmeticOverflow):
		return KindArithmeticOverflow
	case errors.Is(err, corezkvm.ErrVerificationFailed):
		return KindVerification
	case errors.Is(err, emitter.ErrMalformedArtifact):
		return KindSerialization
	default:
		return KindExecution
	}
}

// wrap 把错误包装为流水线错误；已是流水线错误时原样返回
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PipelineError
	if errors.As(err, &pe) {
		return err
	}
	return &PipelineError{Kind: classify(err), Op: op, Err: err}
}

// wrapAs 以指定分类包装错误
func wrapAs(kind ErrorKind, op string, err error) error {
	return &PipelineError{Kind: kind, Op: op, Err: err}
}
