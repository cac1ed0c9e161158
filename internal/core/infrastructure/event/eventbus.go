// 基于asaskevich/EventBus的事件总线实现

package event

import (
	"sync/atomic"

	evbus "github.com/asaskevich/EventBus"

	logimpl "github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/event"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
)

// EventBus 是基于asaskevich/EventBus的封装
//
// 增加发布计数，其余语义与底层总线一致。
type EventBus struct {
	bus    evbus.Bus
	logger log.Logger

	published atomic.Uint64
}

var _ event.EventBus = (*EventBus)(nil)

// New 创建事件总线
func New(logger log.Logger) *EventBus {
	return &EventBus{
		bus:    evbus.New(),
		logger: logimpl.OrNop(logger),
	}
}

// Subscribe 实现订阅
func (eb *EventBus) Subscribe(eventType event.EventType, handler interface{}) error {
	return eb.bus.Subscribe(string(eventType), handler)
}

// SubscribeAsync 实现异步订阅
func (eb *EventBus) SubscribeAsync(eventType event.EventType, handler interface{}, transactional bool) error {
	return eb.bus.SubscribeAsync(string(eventType), handler, transactional)
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(eventType event.EventType, handler interface{}) error {
	return eb.bus.Unsubscribe(string(eventType), handler)
}

// Publish 实现发布
func (eb *EventBus) Publish(eventType event.EventType, args ...interface{}) {
	eb.published.Add(1)
	if !eb.bus.HasCallback(string(eventType)) {
		return
	}
	eb.logger.Debugf("发布事件: %s", eventType)
	eb.bus.Publish(string(eventType), args...)
}

// HasSubscribers 是否存在订阅者
func (eb *EventBus) HasSubscribers(eventType event.EventType) bool {
	return eb.bus.HasCallback(string(eventType))
}

// WaitAsync 等待异步处理完成
func (eb *EventBus) WaitAsync() {
	eb.bus.WaitAsync()
}

// Published 已发布的事件总数
func (eb *EventBus) Published() uint64 {
	return eb.published.Load()
}
