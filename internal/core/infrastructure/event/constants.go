// 事件类型常量定义

package event

import "github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/event"

// 全局事件类型定义
//
// 业务特定的事件类型由各自模块定义（如执行器的 invocation.completed）。
const (
	SystemStarted event.EventType = "system:started"
	SystemStopped event.EventType = "system:stopped"
)
