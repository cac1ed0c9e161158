// Package storage 提供宿主持久化接口定义
//
// 💾 **键值存储服务 (Key-Value Storage Service)**
//
// - KVStore：账本状态的键值存储，BadgerDB 实现（磁盘或纯内存模式）
// - KVTransaction：单个原子事务内的读写，转账结算依赖它保证一致性
// - MemoryStore：带 TTL 的高速缓存，BigCache 实现，用于编译标记
package storage

import (
	"context"
	"time"
)

//=============================================================================
// KVStore 接口定义
//=============================================================================

// KVStore 定义了键值存储的应用接口
type KVStore interface {
	// Get 获取指定键的值
	// 如果键不存在，返回nil值和nil错误
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set 设置键值对，已存在则覆盖
	Set(ctx context.Context, key, value []byte) error

	// Delete 删除指定键的值
	// 如果键不存在，不会返回错误
	Delete(ctx context.Context, key []byte) error

	// Exists 检查键是否存在
	Exists(ctx context.Context, key []byte) (bool, error)

	// PrefixScan 按前缀扫描键值对
	// 返回map的键为键的字符串表示
	PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error)

	// RunInTransaction 在事务中执行操作
	// 如果fn返回错误，事务将被回滚；成功则提交
	RunInTransaction(ctx context.Context, fn func(tx KVTransaction) error) error

	// Close 关闭存储，之后的写入全部失败
	Close() error
}

// KVTransaction 定义了键值存储事务操作接口
type KVTransaction interface {
	// Get 获取指定键的值
	// 如果键不存在，返回nil值和nil错误
	Get(key []byte) ([]byte, error)

	// Set 设置键值对
	Set(key, value []byte) error

	// Delete 删除指定键的值
	Delete(key []byte) error

	// Exists 检查键是否存在
	Exists(key []byte) (bool, error)
}

//=============================================================================
// MemoryStore 接口定义
//=============================================================================

// MemoryStore 定义了通用的内存缓存接口
type MemoryStore interface {
	// Get 获取缓存值，返回值、是否存在及可能的错误
	Get(ctx context.Context, key string) (value []byte, exists bool, err error)

	// Set 设置缓存值，ttl为0表示永不过期
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete 删除指定键的缓存
	Delete(ctx context.Context, key string) error

	// Exists 检查键是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// Count 获取当前缓存中的有效键数量
	Count(ctx context.Context) (int64, error)

	// Close 关闭缓存并释放资源
	Close() error
}
