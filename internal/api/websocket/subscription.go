package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/xrpl-wasm/contracts/internal/api/jsonrpc/types"
	"github.com/xrpl-wasm/contracts/internal/core/executor"
	"github.com/xrpl-wasm/contracts/internal/core/hostabi"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/event"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
)

// 订阅类型
const (
	SubscriptionInvocations = "invocations" // 每次调用推送完整结果
	SubscriptionTraces      = "traces"      // 每条跟踪单独推送
)

// 推送通知的方法名
const notificationMethod = "contract_subscription"

const writeTimeout = 10 * time.Second

// Filters 订阅过滤器，空字段表示不过滤
type Filters struct {
	Function string `json:"function,omitempty"`
	Outcome  string `json:"outcome,omitempty"`
}

func (f Filters) match(res *executor.Result) bool {
	if f.Function != "" && f.Function != res.Function {
		return false
	}
	if f.Outcome != "" && f.Outcome != string(res.Outcome) {
		return false
	}
	return true
}

// TraceNotification traces 订阅推送的单条跟踪
type TraceNotification struct {
	Invocation string `json:"invocation"`
	Function   string `json:"function"`
	hostabi.TraceRecord
}

// connection 带写锁的连接，gorilla 连接不支持并发写
type connection struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *connection) writeJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Subscription 订阅信息
type Subscription struct {
	ID      string
	Type    string
	Filters Filters
	Conn    *connection
}

// SubscriptionManager 订阅管理器
//
// 在事件总线上只注册一个异步处理器，再按订阅分发；
// 总线按函数指针识别处理器，同一闭包的多个实例无法分别取消。
type SubscriptionManager struct {
	logger        log.Logger
	subscriptions map[string]*Subscription
	mu            sync.RWMutex
	eventBus      event.EventBus
	attached      bool
}

// NewSubscriptionManager 创建订阅管理器
func NewSubscriptionManager(logger log.Logger, eventBus event.EventBus) *SubscriptionManager {
	return &SubscriptionManager{
		logger:        logger,
		subscriptions: make(map[string]*Subscription),
		eventBus:      eventBus,
	}
}

// Subscribe 创建新订阅
func (m *SubscriptionManager) Subscribe(conn *connection, subType string, filters Filters) (string, error) {
	if subType != SubscriptionInvocations && subType != SubscriptionTraces {
		return "", fmt.Errorf("不支持的订阅类型: %s", subType)
	}
	if m.eventBus == nil {
		return "", fmt.Errorf("事件总线不可用")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.attached {
		// 串行分发，保持调用顺序
		if err := m.eventBus.SubscribeAsync(executor.EventInvocationCompleted, m.dispatch, true); err != nil {
			return "", fmt.Errorf("订阅事件总线失败: %w", err)
		}
		m.attached = true
	}

	id := fmt.Sprintf("0x%s", uuid.New().String()[:8])
	m.subscriptions[id] = &Subscription{ID: id, Type: subType, Filters: filters, Conn: conn}

	m.logger.Infof("创建订阅: id=%s type=%s remote=%s", id, subType, conn.conn.RemoteAddr())
	return id, nil
}

// Unsubscribe 取消 conn 自己的订阅，返回是否删除
//
// 不存在或属于其他连接的订阅不受影响
func (m *SubscriptionManager) Unsubscribe(conn *connection, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subscriptions[id]
	if !ok || sub.Conn != conn {
		return false
	}
	delete(m.subscriptions, id)
	return true
}

// CleanupByConnection 清理指定连接的所有订阅
func (m *SubscriptionManager) CleanupByConnection(conn *connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sub := range m.subscriptions {
		if sub.Conn == conn {
			delete(m.subscriptions, id)
		}
	}
}

// Count 当前订阅数
func (m *SubscriptionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Close 从事件总线注销分发器
func (m *SubscriptionManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions = make(map[string]*Subscription)
	if !m.attached {
		return nil
	}
	m.attached = false
	return m.eventBus.Unsubscribe(executor.EventInvocationCompleted, m.dispatch)
}

func (m *SubscriptionManager) dispatch(res *executor.Result) {
	if res == nil {
		return
	}
	m.mu.RLock()
	subs := make([]*Subscription, 0, len(m.subscriptions))
	for _, sub := range m.subscriptions {
		subs = append(subs, sub)
	}
	m.mu.RUnlock()

	for _, sub := range subs {
		m.deliver(sub, res)
	}
}

func (m *SubscriptionManager) deliver(sub *Subscription, res *executor.Result) {
	if !sub.Filters.match(res) {
		return
	}

	var payloads []interface{}
	switch sub.Type {
	case SubscriptionTraces:
		for _, tr := range res.Traces {
			payloads = append(payloads, TraceNotification{Invocation: res.ID, Function: res.Function, TraceRecord: tr})
		}
	default:
		payloads = append(payloads, res)
	}

	for _, p := range payloads {
		n := types.Notification{
			JSONRPC: "2.0",
			Method:  notificationMethod,
			Params:  types.SubscriptionParams{Subscription: sub.ID, Result: p},
		}
		if err := sub.Conn.writeJSON(n); err != nil {
			m.logger.Warnf("推送失败: id=%s err=%v", sub.ID, err)
			return
		}
	}
}
