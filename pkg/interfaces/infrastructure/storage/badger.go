// Package storage 提供键值存储接口定义
//
// 💾 **BadgerDB存储服务**
//
// 证明服务只用它保存可信设置（ProvingKey / VerifyingKey），按程序标识寻址。
// 值较大（数 MB）但写入极少，读取在进程启动后的首次证明或验证时发生。
package storage

import (
	"context"
)

// BadgerStore 定义了键值存储的应用接口
type BadgerStore interface {
	// Close 关闭数据库连接
	// 确保所有待处理的事务被提交，数据被正确写入磁盘
	Close() error

	// Get 获取指定键的值
	// 如果键不存在，返回nil值和nil错误
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set 设置键值对，键已存在时覆盖
	Set(ctx context.Context, key, value []byte) error

	// Delete 删除指定键的值
	// 如果键不存在，不会返回错误
	Delete(ctx context.Context, key []byte) error

	// Keys 按前缀列出键（不读取值），按字节序排列
	Keys(ctx context.Context, prefix []byte) ([]string, error)

	// RunInTransaction 在事务中执行操作
	// 如果fn返回错误，事务将被回滚；否则提交
	RunInTransaction(ctx context.Context, fn func(tx BadgerTransaction) error) error
}

// BadgerTransaction 定义了键值存储事务操作接口
type BadgerTransaction interface {
	// Get 获取指定键的值
	// 如果键不存在，返回nil值和nil错误
	Get(key []byte) ([]byte, error)

	// Set 设置键值对
	Set(key, value []byte) error

	// Delete 删除指定键的值
	Delete(key []byte) error
}
