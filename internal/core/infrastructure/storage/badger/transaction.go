package badger

import (
	"errors"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v3"
	"github.com/weisyn/hfproof/pkg/interfaces/infrastructure/storage"
)

var _ storage.BadgerTransaction = (*Transaction)(nil)

// errTxClosed 事务已提交或丢弃
var errTxClosed = errors.New("badger transaction closed")

// Transaction 单次 RunInTransaction 内的读写事务
//
// 只在 fn 回调期间有效，不能跨 goroutine 使用。
type Transaction struct {
	txn    *badgerdb.Txn
	closed bool
	dirty  bool
}

func newTransaction(db *badgerdb.DB) *Transaction {
	return &Transaction{txn: db.NewTransaction(true)}
}

// Get 读取键值；键不存在时返回 nil, nil
func (t *Transaction) Get(key []byte) ([]byte, error) {
	if t.closed {
		return nil, errTxClosed
	}
	item, err := t.txn.Get(key)
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

// Set 写入键值
//
// 单个证明密钥可能超过事务大小上限，此时返回 badger.ErrTxnTooBig。
func (t *Transaction) Set(key, value []byte) error {
	if t.closed {
		return errTxClosed
	}
	if err := t.txn.Set(key, value); err != nil {
		return fmt.Errorf("写入 %q 失败: %w", key, err)
	}
	t.dirty = true
	return nil
}

// Delete 删除键
func (t *Transaction) Delete(key []byte) error {
	if t.closed {
		return errTxClosed
	}
	if err := t.txn.Delete(key); err != nil {
		return fmt.Errorf("删除 %q 失败: %w", key, err)
	}
	t.dirty = true
	return nil
}

// commit 提交；没有写操作时直接丢弃
func (t *Transaction) commit() error {
	if t.closed {
		return errTxClosed
	}
	t.closed = true
	if !t.dirty {
		t.txn.Discard()
		return nil
	}
	if err := t.txn.Commit(); err != nil {
		return fmt.Errorf("事务提交失败: %w", err)
	}
	return nil
}

// discard 丢弃未提交的事务，可重复调用
func (t *Transaction) discard() {
	if !t.closed {
		t.closed = true
		t.txn.Discard()
	}
}
