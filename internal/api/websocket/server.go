// Package websocket 提供合约调用事件的 WebSocket 推送
//
// 协议为 JSON-RPC 2.0：
//   - contract_subscribe ["invocations"|"traces", {"function": "...", "outcome": "..."}] → 订阅ID
//   - contract_unsubscribe [订阅ID] → true
//
// 推送消息的 method 为 contract_subscription。
package websocket

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/xrpl-wasm/contracts/internal/api/jsonrpc/types"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/event"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
)

// Server WebSocket服务器
type Server struct {
	logger              log.Logger
	subscriptionManager *SubscriptionManager
	upgrader            websocket.Upgrader
}

// NewServer 创建WebSocket服务器
//
// allowOrigin 为 nil 时接受任意来源。
func NewServer(logger log.Logger, eventBus event.EventBus, allowOrigin func(origin string) bool) *Server {
	return &Server{
		logger:              logger,
		subscriptionManager: NewSubscriptionManager(logger, eventBus),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowOrigin == nil || origin == "" || allowOrigin(origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Subscriptions 当前订阅数
func (s *Server) Subscriptions() int {
	return s.subscriptionManager.Count()
}

// HandleWebSocket 处理WebSocket连接（Gin Handler）
func (s *Server) HandleWebSocket(c *gin.Context) {
	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warnf("WebSocket 升级失败: %v", err)
		return
	}
	conn := &connection{conn: ws}
	defer func() {
		s.subscriptionManager.CleanupByConnection(conn)
		if err := ws.Close(); err != nil {
			s.logger.Debugf("关闭WebSocket连接失败: %v", err)
		}
	}()

	s.logger.Infof("WebSocket 连接建立: %s", ws.RemoteAddr())

	for {
		messageType, message, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warnf("WebSocket 连接异常关闭: %v", err)
			}
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}
		s.handleJSONRPCMessage(conn, message)
	}

	s.logger.Infof("WebSocket 连接关闭: %s", ws.RemoteAddr())
}

func (s *Server) handleJSONRPCMessage(conn *connection, message []byte) {
	var request types.Request
	if err := json.Unmarshal(message, &request); err != nil {
		s.sendError(conn, nil, types.CodeParseError, "Parse error", nil)
		return
	}

	switch request.Method {
	case "contract_subscribe":
		s.handleSubscribe(conn, &request)
	case "contract_unsubscribe":
		s.handleUnsubscribe(conn, &request)
	default:
		s.sendError(conn, request.ID, types.CodeMethodNotFound, "Method not found", nil)
	}
}

// handleSubscribe 参数：[subscriptionType, filters (optional)]
func (s *Server) handleSubscribe(conn *connection, request *types.Request) {
	var params []json.RawMessage
	if err := json.Unmarshal(request.Params, &params); err != nil || len(params) == 0 {
		s.sendError(conn, request.ID, types.CodeInvalidParams, "Missing subscription type", nil)
		return
	}

	var subType string
	if err := json.Unmarshal(params[0], &subType); err != nil {
		s.sendError(conn, request.ID, types.CodeInvalidParams, "Subscription type must be string", nil)
		return
	}
	var filters Filters
	if len(params) > 1 {
		if err := json.Unmarshal(params[1], &filters); err != nil {
			s.sendError(conn, request.ID, types.CodeInvalidParams, "Invalid filters", err.Error())
			return
		}
	}

	id, err := s.subscriptionManager.Subscribe(conn, subType, filters)
	if err != nil {
		s.sendError(conn, request.ID, types.CodeServerError, "Failed to subscribe", err.Error())
		return
	}
	s.sendResult(conn, request.ID, id)
}

// handleUnsubscribe 参数：[subscriptionID]
func (s *Server) handleUnsubscribe(conn *connection, request *types.Request) {
	var params []string
	if err := json.Unmarshal(request.Params, &params); err != nil || len(params) == 0 {
		s.sendError(conn, request.ID, types.CodeInvalidParams, "Missing subscription ID", nil)
		return
	}
	s.sendResult(conn, request.ID, s.subscriptionManager.Unsubscribe(conn, params[0]))
}

func (s *Server) sendResult(conn *connection, id interface{}, result interface{}) {
	if err := conn.writeJSON(types.Response{JSONRPC: "2.0", ID: id, Result: result}); err != nil {
		s.logger.Warnf("发送响应失败: %v", err)
	}
}

func (s *Server) sendError(conn *connection, id interface{}, code int, message string, data interface{}) {
	resp := types.Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &types.ErrorResponse{Code: code, Message: message, Data: data},
	}
	if err := conn.writeJSON(resp); err != nil {
		s.logger.Warnf("发送错误响应失败: %v", err)
	}
}

// RegisterRoutes 注册WebSocket路由
func (s *Server) RegisterRoutes(r gin.IRouter) {
	r.GET("/stream", s.HandleWebSocket)
}

// Close 注销事件分发
func (s *Server) Close() error {
	return s.subscriptionManager.Close()
}
