// Package event 提供进程内事件总线接口定义
package event

// EventType 事件类型
type EventType string

// EventBus 进程内事件总线
//
// handler 为任意函数，参数与 Publish 的 args 一一对应。
type EventBus interface {
	// Subscribe 同步订阅，Publish 在调用方 goroutine 中执行 handler
	Subscribe(eventType EventType, handler interface{}) error

	// SubscribeAsync 异步订阅；transactional 为 true 时同一 handler 串行执行
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error

	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error

	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})

	// HasSubscribers 是否存在订阅者
	HasSubscribers(eventType EventType) bool

	// WaitAsync 等待异步 handler 执行完毕
	WaitAsync()
}
