// Package metrics 提供进程级 Prometheus 指标注册表
//
// 📋 **指标基础设施模块 (Metrics Infrastructure Module)**
//
// 本模块提供：
// - Registry: 独立的 prometheus 注册表（不使用全局 DefaultRegisterer）
// - Go 运行时与进程指标（堆、GC、goroutine、文件句柄）
//
// 业务模块（执行器、HTTP API）向同一注册表注册各自的指标，
// HTTP API 通过 /metrics 暴露。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

// Namespace 全部指标的命名空间
const Namespace = "xrplwasm"

// Module 返回 metrics 模块的 fx.Option
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(NewRegistry),
	)
}

// NewRegistry 创建带运行时采集器的注册表
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Register 注册采集器；reg 为 nil 时不注册（单次执行场景）
//
// 重复注册同名指标时复用已有采集器。
func Register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
