// Package memory 提供基于BigCache的内存缓存实现
package memory

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	hostconfig "github.com/xrpl-wasm/contracts/internal/config/host"
	logimpl "github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
	storage "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/storage"
)

// 条目头部：8 字节小端过期时间（UnixNano），0 表示永不过期
const expiryHeaderSize = 8

// ErrStoreClosed 缓存已关闭
var ErrStoreClosed = errors.New("memory store closed")

// Store 实现了MemoryStore接口，基于BigCache提供内存缓存功能
type Store struct {
	cache  *bigcache.BigCache
	logger log.Logger
	mutex  sync.RWMutex
	closed bool
	keySet map[string]struct{} // 维护键集合用于计数
	now    func() time.Time
}

var _ storage.MemoryStore = (*Store)(nil)

// New 创建一个新的BigCache内存存储实例
// 生命周期窗口取编译缓存TTL，容量上限取编译缓存大小
func New(options *hostconfig.HostOptions, logger log.Logger) (*Store, error) {
	logger = logimpl.OrNop(logger)

	lifeWindow := options.CompileCacheTTL
	if lifeWindow <= 0 {
		lifeWindow = time.Hour
	}

	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.Shards = 64
	cfg.MaxEntriesInWindow = 1024
	cfg.MaxEntrySize = 512
	cfg.HardMaxCacheSize = options.CompileCacheSizeMB
	cfg.CleanWindow = lifeWindow / 2
	cfg.Verbose = false

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("创建BigCache实例失败: %w", err)
	}

	return &Store{
		cache:  cache,
		logger: logger,
		keySet: make(map[string]struct{}),
		now:    time.Now,
	}, nil
}

// Close 关闭缓存并释放资源
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.logger.Debug("关闭内存存储")
	return s.cache.Close()
}

// Get 获取缓存值
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return nil, false, ErrStoreClosed
	}
	value, ok, err := s.load(key)
	if err != nil || !ok {
		return nil, false, err
	}
	return value, true, nil
}

// Set 设置缓存值，可指定过期时间
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	entry := make([]byte, expiryHeaderSize+len(value))
	if ttl > 0 {
		binary.LittleEndian.PutUint64(entry, uint64(s.now().Add(ttl).UnixNano()))
	}
	copy(entry[expiryHeaderSize:], value)

	if err := s.cache.Set(key, entry); err != nil {
		s.logger.Warnf("设置缓存键[%s]失败: %v", key, err)
		return err
	}
	s.keySet[key] = struct{}{}
	return nil
}

// Delete 删除指定键的缓存
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	delete(s.keySet, key)
	if err := s.cache.Delete(key); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		s.logger.Warnf("删除缓存键[%s]失败: %v", key, err)
		return err
	}
	return nil
}

// Exists 检查键是否存在
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

// Count 获取当前缓存中的有效键数量，顺带清理已过期或被淘汰的键
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return 0, ErrStoreClosed
	}
	var n int64
	for key := range s.keySet {
		if _, ok, _ := s.load(key); ok {
			n++
		}
	}
	return n, nil
}

// load 读取并校验过期时间，过期或被 BigCache 淘汰的键从键集合移除（调用方持锁）
func (s *Store) load(key string) ([]byte, bool, error) {
	entry, err := s.cache.Get(key)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			delete(s.keySet, key)
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(entry) < expiryHeaderSize {
		return nil, false, fmt.Errorf("缓存键[%s]条目损坏", key)
	}

	if expiresAt := int64(binary.LittleEndian.Uint64(entry)); expiresAt != 0 && s.now().UnixNano() > expiresAt {
		_ = s.cache.Delete(key)
		delete(s.keySet, key)
		return nil, false, nil
	}
	return entry[expiryHeaderSize:], true, nil
}
