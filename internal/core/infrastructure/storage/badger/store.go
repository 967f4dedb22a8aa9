// Package badger 提供基于BadgerDB的存储实现
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	badgerdb "github.com/dgraph-io/badger/v3"
	badgerconfig "github.com/weisyn/hfproof/internal/config/storage/badger"
	log "github.com/weisyn/hfproof/pkg/interfaces/infrastructure/log"
	interfaces "github.com/weisyn/hfproof/pkg/interfaces/infrastructure/storage"
)

// errStoreClosing 存储正在关闭
var errStoreClosing = errors.New("badger store is closing")

// Store 实现BadgerStore接口
type Store struct {
	db      *badgerdb.DB
	options *badgerconfig.BadgerOptions
	logger  log.Logger

	// 避免 Close 过程中仍被写入
	closing int32
	writeWg sync.WaitGroup
}

// 确保 Store 实现了 interfaces.BadgerStore 接口
var _ interfaces.BadgerStore = (*Store)(nil)

// New 创建新的BadgerStore实例
//
// Path 为空时打开内存数据库，数据随进程退出丢失。
func New(options *badgerconfig.BadgerOptions, logger log.Logger) (*Store, error) {
	if options == nil {
		return nil, fmt.Errorf("badger配置为空")
	}

	var opts badgerdb.Options
	if options.InMemory() {
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
		logger.Debug("初始化内存BadgerDB存储")
	} else {
		if err := os.MkdirAll(options.Path, 0700); err != nil {
			return nil, fmt.Errorf("无法创建BadgerDB数据目录 %s: %w", options.Path, err)
		}
		opts = badgerdb.DefaultOptions(options.Path)
		opts.SyncWrites = options.SyncWrites
		logger.Infof("初始化BadgerDB存储，数据目录: %s", options.Path)
	}

	if options.MemTableSize > 0 {
		opts.MemTableSize = options.MemTableSize
	}
	if options.ValueLogFileSize > 0 && !options.InMemory() {
		opts.ValueLogFileSize = options.ValueLogFileSize
	}

	// 密钥库访问量很小，统一使用较小的缓存
	opts.BlockCacheSize = 16 << 20
	opts.IndexCacheSize = 16 << 20
	opts.NumMemtables = 2
	opts.NumCompactors = 2
	opts.Logger = newBadgerLogger(logger)

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("无法打开BadgerDB: %w", err)
	}

	return &Store{
		db:      db,
		options: options,
		logger:  logger,
	}, nil
}

// Close 关闭存储并释放资源
func (s *Store) Close() error {
	// 进入关闭态：阻断后续写入，并等待 in-flight 写完成
	if !atomic.CompareAndSwapInt32(&s.closing, 0, 1) {
		return nil
	}

	waitCh := make(chan struct{})
	go func() {
		s.writeWg.Wait()
		close(waitCh)
	}()
	select {
	case <-waitCh:
	case <-time.After(30 * time.Second):
		s.logger.Warn("等待 in-flight 写事务超时（30s），仍继续关闭 BadgerDB")
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("关闭BadgerDB失败: %w", err)
	}

	s.logger.Debug("BadgerDB存储已关闭")
	return nil
}

func (s *Store) beginWrite() (func(), error) {
	if atomic.LoadInt32(&s.closing) == 1 {
		return nil, errStoreClosing
	}
	s.writeWg.Add(1)
	// double-check，避免在 Add 之后进入 closing
	if atomic.LoadInt32(&s.closing) == 1 {
		s.writeWg.Done()
		return nil, errStoreClosing
	}
	return s.writeWg.Done, nil
}

// Get 获取指定键的值
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var valCopy []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badgerdb.ErrKeyNotFound) {
				return nil // 键不存在时返回nil值和nil错误
			}
			return err
		}
		valCopy, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("badger读取失败: %w", err)
	}

	return valCopy, nil
}

// Set 设置键值对
func (s *Store) Set(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done, err := s.beginWrite()
	if err != nil {
		return err
	}
	defer done()

	if err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(key, value)
	}); err != nil {
		return fmt.Errorf("badger写入失败: %w", err)
	}
	return nil
}

// Delete 删除指定键的值
func (s *Store) Delete(ctx context.Context, key []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done, err := s.beginWrite()
	if err != nil {
		return err
	}
	defer done()

	if err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(key)
	}); err != nil {
		return fmt.Errorf("badger删除失败: %w", err)
	}
	return nil
}

// Keys 按前缀列出键，不加载值
//
// 证明密钥的值可达数 MB，列举标识时只需要键。
func (s *Store) Keys(ctx context.Context, prefix []byte) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger前缀扫描失败: %w", err)
	}
	return keys, nil
}

// RunInTransaction 在读写事务中执行 fn；fn 返回错误时回滚
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx interfaces.BadgerTransaction) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done, err := s.beginWrite()
	if err != nil {
		return err
	}
	defer done()

	tx := newTransaction(s.db)
	defer tx.discard()

	if err := fn(tx); err != nil {
		return fmt.Errorf("事务执行失败: %w", err)
	}
	return tx.commit()
}

// badgerLogger 实现BadgerDB的日志接口
type badgerLogger struct {
	logger log.Logger
}

// newBadgerLogger 创建BadgerDB日志适配器
func newBadgerLogger(logger log.Logger) *badgerLogger {
	return &badgerLogger{logger: logger}
}

// Errorf 输出错误日志
func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf("[BadgerDB] "+format, args...)
}

// Warningf 输出警告日志
func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf("[BadgerDB] "+format, args...)
}

// Infof BadgerDB 的信息日志过于频繁，降级为调试日志
func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debugf("[BadgerDB] "+format, args...)
}

// Debugf 输出调试日志
func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf("[BadgerDB] "+format, args...)
}
