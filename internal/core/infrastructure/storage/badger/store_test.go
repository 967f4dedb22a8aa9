package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	badgerconfig "github.com/weisyn/hfproof/internal/config/storage/badger"
	"github.com/weisyn/hfproof/internal/core/testutil"
	interfaces "github.com/weisyn/hfproof/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/hfproof/pkg/types"
)

// setupTestStore 初始化测试存储（path 为空时使用内存模式）
func setupTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := New(&badgerconfig.BadgerOptions{
		Path:         path,
		SyncWrites:   false,
		MemTableSize: 16 << 20, // 批大小上限约为其 15%，必须容纳 1MB 的 ValueThreshold
	}, testutil.NewTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestBasicKeyValueOperations 测试基本的键值操作
func TestBasicKeyValueOperations(t *testing.T) {
	store := setupTestStore(t, "")
	ctx := context.Background()

	key := []byte("test-key")
	value := []byte("test-value")

	// 1. 不存在的键返回 nil, nil
	val, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, val)

	// 2. 测试设置与获取
	require.NoError(t, store.Set(ctx, key, value))
	val, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, value, val)

	// 3. 测试删除键
	require.NoError(t, store.Delete(ctx, key))
	val, err = store.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, val)
}

// TestKeys 测试按前缀列出键
func TestKeys(t *testing.T) {
	store := setupTestStore(t, "")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, []byte("setup/a/pk"), []byte("1")))
	require.NoError(t, store.Set(ctx, []byte("setup/a/vk"), []byte("2")))
	require.NoError(t, store.Set(ctx, []byte("other/b"), []byte("3")))

	keys, err := store.Keys(ctx, []byte("setup/"))
	require.NoError(t, err)
	assert.Equal(t, []string{"setup/a/pk", "setup/a/vk"}, keys)

	none, err := store.Keys(ctx, []byte("missing/"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

// TestRunInTransaction 测试事务提交与回滚
func TestRunInTransaction(t *testing.T) {
	store := setupTestStore(t, "")
	ctx := context.Background()

	t.Run("提交", func(t *testing.T) {
		err := store.RunInTransaction(ctx, func(tx interfaces.BadgerTransaction) error {
			if err := tx.Set([]byte("k1"), []byte("v1")); err != nil {
				return err
			}
			return tx.Set([]byte("k2"), []byte("v2"))
		})
		require.NoError(t, err)

		v, err := store.Get(ctx, []byte("k2"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), v)
	})

	t.Run("回滚", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.RunInTransaction(ctx, func(tx interfaces.BadgerTransaction) error {
			if err := tx.Set([]byte("k3"), []byte("v3")); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		v, err := store.Get(ctx, []byte("k3"))
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("事务内读到自己的写入", func(t *testing.T) {
		err := store.RunInTransaction(ctx, func(tx interfaces.BadgerTransaction) error {
			if err := tx.Set([]byte("k4"), []byte("v4")); err != nil {
				return err
			}
			v, err := tx.Get([]byte("k4"))
			if err != nil {
				return err
			}
			assert.Equal(t, []byte("v4"), v)
			return tx.Delete([]byte("k1"))
		})
		require.NoError(t, err)

		v, err := store.Get(ctx, []byte("k1"))
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

// TestPersistence 测试磁盘模式重新打开后数据仍在
func TestPersistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := New(&badgerconfig.BadgerOptions{Path: dir, SyncWrites: true}, testutil.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, []byte("persist"), []byte("yes")))
	require.NoError(t, store.Close())

	reopened := setupTestStore(t, dir)
	v, err := reopened.Get(ctx, []byte("persist"))
	require.NoError(t, err)
	assert.Equal(t, []byte("yes"), v)
}

// TestNew_DefaultConfig 测试按配置文件默认值打开磁盘存储并写入大值
func TestNew_DefaultConfig(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	options := badgerconfig.New(&types.UserStorageConfig{Path: &dir}).GetOptions()
	require.False(t, options.InMemory())

	store, err := New(options, testutil.NewTestLogger())
	require.NoError(t, err)

	// 证明密钥量级的值
	big := make([]byte, 2<<20)
	for i := range big {
		big[i] = byte(i)
	}
	require.NoError(t, store.RunInTransaction(ctx, func(tx interfaces.BadgerTransaction) error {
		if err := tx.Set([]byte("setup/x/pk"), big); err != nil {
			return err
		}
		return tx.Set([]byte("setup/x/vk"), []byte("vk"))
	}))
	require.NoError(t, store.Close())

	reopened, err := New(options, testutil.NewTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	v, err := reopened.Get(ctx, []byte("setup/x/pk"))
	require.NoError(t, err)
	assert.Equal(t, big, v)
}

// TestClose_RejectsWrites 测试关闭后拒绝写入
func TestClose_RejectsWrites(t *testing.T) {
	store, err := New(&badgerconfig.BadgerOptions{}, testutil.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, store.Close())
	// 重复关闭是安全的
	require.NoError(t, store.Close())

	err = store.Set(context.Background(), []byte("k"), []byte("v"))
	require.ErrorIs(t, err, errStoreClosing)
}
