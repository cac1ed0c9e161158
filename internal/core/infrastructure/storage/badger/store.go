// Package badger 提供基于BadgerDB的存储实现
package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	badgerdb "github.com/dgraph-io/badger/v3"
	ledgerconfig "github.com/xrpl-wasm/contracts/internal/config/ledger"
	logimpl "github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	log "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
	interfaces "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/storage"
)

// ErrStoreClosing 存储正在关闭或已关闭
var ErrStoreClosing = errors.New("badger store is closing")

// Store 实现KVStore接口
type Store struct {
	db       *badgerdb.DB
	path     string
	inMemory bool
	logger   log.Logger

	// 关闭过程中拒绝写入，等待 in-flight 写完成后再关闭 DB
	closing int32
	writeWg sync.WaitGroup
}

var _ interfaces.KVStore = (*Store)(nil)

// New 创建新的BadgerStore实例
// 内存后端使用 badger 的纯内存模式，磁盘后端写入 options.Path
func New(options *ledgerconfig.LedgerOptions, logger log.Logger) (*Store, error) {
	logger = logimpl.OrNop(logger)

	var opts badgerdb.Options
	if options.InMemory() {
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
		logger.Info("🧠 初始化内存BadgerDB存储")
	} else {
		if options.Path == "" {
			return nil, fmt.Errorf("BadgerDB数据目录路径未配置")
		}
		if err := os.MkdirAll(options.Path, 0o700); err != nil {
			return nil, fmt.Errorf("无法创建BadgerDB数据目录: %w", err)
		}
		opts = badgerdb.DefaultOptions(options.Path)
		opts.SyncWrites = options.SyncWrites
		logger.Infof("初始化BadgerDB存储，数据目录: %s", options.Path)
	}

	// 开发账本的数据量很小，压低缓存与 value log 的占用
	opts.ValueLogFileSize = 64 << 20
	opts.BlockCacheSize = 16 << 20
	opts.IndexCacheSize = 16 << 20
	opts.NumMemtables = 2
	opts.NumCompactors = 2
	opts.Logger = newBadgerLogger(logger)

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("无法打开BadgerDB: %w", err)
	}

	logger.Info("BadgerDB存储初始化完成")
	return &Store{
		db:       db,
		path:     options.Path,
		inMemory: options.InMemory(),
		logger:   logger,
	}, nil
}

// InMemory 是否为纯内存模式
func (s *Store) InMemory() bool {
	return s.inMemory
}

// Close 关闭存储并释放资源
func (s *Store) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closing, 0, 1) {
		return nil
	}

	// 等待所有写事务退出
	waitCh := make(chan struct{})
	go func() {
		s.writeWg.Wait()
		close(waitCh)
	}()
	select {
	case <-waitCh:
	case <-time.After(10 * time.Second):
		s.logger.Warn("⚠️ 等待 in-flight 写事务超时（10s），继续关闭 BadgerDB")
	}

	if err := s.db.Close(); err != nil {
		// LOCK 文件已不存在只记录警告
		if strings.Contains(err.Error(), "LOCK: no such file or directory") {
			s.logger.Warn("BadgerDB LOCK文件已不存在")
			return nil
		}
		return fmt.Errorf("关闭BadgerDB失败: %w", err)
	}

	s.logger.Info("🔧 BadgerDB存储已关闭")
	return nil
}

func (s *Store) beginWrite() (func(), error) {
	if atomic.LoadInt32(&s.closing) == 1 {
		return nil, ErrStoreClosing
	}
	s.writeWg.Add(1)
	// double-check，避免在 Add 之后进入 closing
	if atomic.LoadInt32(&s.closing) == 1 {
		s.writeWg.Done()
		return nil, ErrStoreClosing
	}
	return s.writeWg.Done, nil
}

// Get 获取指定键的值
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
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
		return nil, fmt.Errorf("badger获取键失败: %w", err)
	}
	return valCopy, nil
}

// Set 设置键值对
func (s *Store) Set(ctx context.Context, key, value []byte) error {
	done, err := s.beginWrite()
	if err != nil {
		return err
	}
	defer done()
	return s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(key, value)
	})
}

// Delete 删除指定键的值
func (s *Store) Delete(ctx context.Context, key []byte) error {
	done, err := s.beginWrite()
	if err != nil {
		return err
	}
	defer done()
	return s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(key)
	})
}

// Exists 检查键是否存在
func (s *Store) Exists(ctx context.Context, key []byte) (bool, error) {
	var exists bool
	err := s.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(key)
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("badger检查键存在性失败: %w", err)
	}
	return exists, nil
}

// PrefixScan 按前缀扫描键值对
func (s *Store) PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error) {
	result := make(map[string][]byte)

	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			valCopy, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			result[string(item.KeyCopy(nil))] = valCopy
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger前缀扫描失败: %w", err)
	}
	return result, nil
}

// RunInTransaction 在事务中执行操作
// Badger 的乐观事务在提交时检测读写冲突，冲突返回 badger.ErrConflict
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx interfaces.KVTransaction) error) error {
	done, err := s.beginWrite()
	if err != nil {
		return err
	}
	defer done()

	tx := &Transaction{
		txn:   s.db.NewTransaction(true),
		state: int32(TxActive),
	}
	defer tx.Discard()

	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("事务提交失败: %w", err)
	}
	return nil
}

// badgerLogger 把 badger 内部日志转到宿主日志
type badgerLogger struct {
	logger log.Logger
}

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

// Infof badger 的常规信息降为调试级别
func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debugf("[BadgerDB] "+format, args...)
}

// Debugf 输出调试日志
func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf("[BadgerDB] "+format, args...)
}
