// Package zkvm 提供可验证执行边界的公共支持：程序环境、定长整数编解码、错误定义
package zkvm

import (
	"errors"
	"fmt"
)

// ============================================================================
//                            执行边界错误定义
// ============================================================================

var (
	// ErrInputExhausted 程序读取的输入超过宿主写入的输入
	ErrInputExhausted = errors.New("guest input exhausted")

	// ErrTrailingInput 程序结束时仍有未读取的输入
	ErrTrailingInput = errors.New("guest left unread input")

	// ErrGuestAborted 程序在边界内中止
	ErrGuestAborted = errors.New("guest aborted")

	// ErrVerificationFailed 证明产物未通过验证
	ErrVerificationFailed = errors.New("receipt verification failed")

	// ErrSchemeMismatch 证明产物的方案与验证方不符
	ErrSchemeMismatch = errors.New("receipt scheme mismatch")

	// ErrUnknownImage 验证方不认识该程序标识
	ErrUnknownImage = errors.New("unknown program identity")

	// ErrInvalidReceipt 证明产物结构无效
	ErrInvalidReceipt = errors.New("invalid receipt")
)

// ============================================================================
//                               错误包装函数
// ============================================================================

// WrapGuestAbortedError 包装程序中止错误，同时保留程序返回的原始错误链
func WrapGuestAbortedError(guest string, err error) error {
	return fmt.Errorf("%w: guest=%s: %w", ErrGuestAborted, guest, err)
}

// WrapVerificationFailedError 包装验证失败错误
func WrapVerificationFailedError(reason string) error {
	return fmt.Errorf("%w: %s", ErrVerificationFailed, reason)
}

// WrapSchemeMismatchError 包装方案不符错误
func WrapSchemeMismatchError(expected, actual string) error {
	return fmt.Errorf("%w: %w: expected=%s, actual=%s", ErrVerificationFailed, ErrSchemeMismatch, expected, actual)
}

// WrapUnknownImageError 包装未知程序标识错误
func WrapUnknownImageError(id string) error {
	return fmt.Errorf("%w: %w: image_id=%s", ErrVerificationFailed, ErrUnknownImage, id)
}

// WrapInvalidReceiptError 包装无效证明产物错误
func WrapInvalidReceiptError(reason string) error {
	return fmt.Errorf("%w: %w: %s", ErrVerificationFailed, ErrInvalidReceipt, reason)
}
