// Package app 组装并启动合约开发宿主
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// App 是应用的对外接口
type App interface {
	// Stop 停止应用
	Stop() error

	// Wait 阻塞直到收到退出信号或 ctx 结束，随后停止应用
	Wait(ctx context.Context) error
}

// internalApp 应用的内部实现
type internalApp struct {
	bootstrap *Bootstrap
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Wait 等待退出信号
func (a *internalApp) Wait(ctx context.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case <-signals:
	case <-ctx.Done():
	}
	return a.Stop()
}

// Start 启动应用
func Start(opts ...Option) (App, error) {
	return BootstrapApp(opts...)
}
