package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerconfig "github.com/xrpl-wasm/contracts/internal/config/ledger"
	interfaces "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/storage"
)

// setupTestStore 创建内存模式的测试存储
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(&ledgerconfig.LedgerOptions{Backend: ledgerconfig.BackendMemory}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// 测试基本的键值操作
func TestBasicKeyValueOperations(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	key := []byte("test-key")
	value := []byte("test-value")

	// 1. 不存在的键
	exists, err := store.Exists(ctx, key)
	assert.NoError(t, err)
	assert.False(t, exists)

	val, err := store.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, val)

	// 2. 设置并读取
	require.NoError(t, store.Set(ctx, key, value))
	exists, err = store.Exists(ctx, key)
	assert.NoError(t, err)
	assert.True(t, exists)

	val, err = store.Get(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, value, val)

	// 3. 覆盖
	require.NoError(t, store.Set(ctx, key, []byte("updated-value")))
	val, err = store.Get(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, []byte("updated-value"), val)

	// 4. 删除
	require.NoError(t, store.Delete(ctx, key))
	exists, err = store.Exists(ctx, key)
	assert.NoError(t, err)
	assert.False(t, exists)
}

// 测试前缀扫描
func TestPrefixScan(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for k, v := range map[string]string{
		"acct:1": "Alice",
		"acct:2": "Bob",
		"line:1": "USD",
	} {
		require.NoError(t, store.Set(ctx, []byte(k), []byte(v)))
	}

	accounts, err := store.PrefixScan(ctx, []byte("acct:"))
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Equal(t, []byte("Alice"), accounts["acct:1"])
	assert.Equal(t, []byte("Bob"), accounts["acct:2"])

	none, err := store.PrefixScan(ctx, []byte("mpt:"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

// 测试事务操作
func TestTransaction(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// 1. 提交
	err := store.RunInTransaction(ctx, func(tx interfaces.KVTransaction) error {
		if err := tx.Set([]byte("tx-key1"), []byte("tx-value1")); err != nil {
			return err
		}
		// 事务内可读到自己的写入
		val, err := tx.Get([]byte("tx-key1"))
		if err != nil {
			return err
		}
		assert.Equal(t, []byte("tx-value1"), val)
		return tx.Set([]byte("tx-key2"), []byte("tx-value2"))
	})
	require.NoError(t, err)

	val, err := store.Get(ctx, []byte("tx-key2"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("tx-value2"), val)

	// 2. 回滚
	rollback := fmt.Errorf("事务回滚测试")
	err = store.RunInTransaction(ctx, func(tx interfaces.KVTransaction) error {
		if err := tx.Set([]byte("tx-key3"), []byte("tx-value3")); err != nil {
			return err
		}
		return rollback
	})
	assert.ErrorIs(t, err, rollback)

	exists, err := store.Exists(ctx, []byte("tx-key3"))
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestTransactionClosedAfterCommit(t *testing.T) {
	store := setupTestStore(t)

	tx := &Transaction{txn: store.db.NewTransaction(true), state: int32(TxActive)}
	require.NoError(t, tx.Set([]byte("k"), []byte("v")))
	exists, err := tx.Exists([]byte("k"))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, tx.Commit())
	assert.False(t, tx.IsActive())
	assert.ErrorIs(t, tx.Set([]byte("k2"), nil), ErrTxClosed)
	assert.ErrorIs(t, tx.Commit(), ErrTxClosed)
	tx.Discard()
}

func TestDiskStoreReopen(t *testing.T) {
	ctx := context.Background()
	options := &ledgerconfig.LedgerOptions{
		Backend: ledgerconfig.BackendBadger,
		Path:    t.TempDir(),
	}

	store, err := New(options, nil)
	require.NoError(t, err)
	assert.False(t, store.InMemory())
	require.NoError(t, store.Set(ctx, []byte("seq"), []byte{7}))
	require.NoError(t, store.Close())

	// 关闭后拒绝写入，重复关闭无副作用
	assert.ErrorIs(t, store.Set(ctx, []byte("seq"), []byte{8}), ErrStoreClosing)
	assert.NoError(t, store.Close())

	reopened, err := New(options, nil)
	require.NoError(t, err)
	defer reopened.Close()

	val, err := reopened.Get(ctx, []byte("seq"))
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, val)
}

func TestDiskStoreRequiresPath(t *testing.T) {
	_, err := New(&ledgerconfig.LedgerOptions{Backend: ledgerconfig.BackendBadger}, nil)
	assert.Error(t, err)
}
