package runtime

import (
	"sync/atomic"
)

// Stats 运行时基础统计
//
// 仅做原子计数，供状态接口展示；调用级指标由执行器以 prometheus 暴露。
type Stats struct {
	compilations      int64 // 实际编译次数
	compileCacheHits  int64 // 进程内编译缓存命中
	compileMarkerHits int64 // 进程内未命中但编译标记有效
	compileRejects    int64 // 由失败标记直接拒绝的编译
	instances         int64 // 创建的实例数
	instanceFailures  int64 // 实例化失败次数
}

// StatsSnapshot 统计快照
type StatsSnapshot struct {
	Compilations      int64 `json:"compilations"`
	CompileCacheHits  int64 `json:"compile_cache_hits"`
	CompileMarkerHits int64 `json:"compile_marker_hits"`
	CompileRejects    int64 `json:"compile_rejects"`
	Instances         int64 `json:"instances"`
	InstanceFailures  int64 `json:"instance_failures"`
}

func (s *Stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		Compilations:      atomic.LoadInt64(&s.compilations),
		CompileCacheHits:  atomic.LoadInt64(&s.compileCacheHits),
		CompileMarkerHits: atomic.LoadInt64(&s.compileMarkerHits),
		CompileRejects:    atomic.LoadInt64(&s.compileRejects),
		Instances:         atomic.LoadInt64(&s.instances),
		InstanceFailures:  atomic.LoadInt64(&s.instanceFailures),
	}
}
