package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xrpl-wasm/contracts/internal/core/engines/wasm/runtime"
)

// HealthSource 健康检查读取的运行状态
type HealthSource interface {
	Sequence(ctx context.Context) (int64, error)
}

// RuntimeStats 运行时统计来源
type RuntimeStats interface {
	Stats() runtime.StatsSnapshot
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status         string                `json:"status"`
	Uptime         string                `json:"uptime"`
	LedgerSequence int64                 `json:"ledger_sequence"`
	Runtime        runtime.StatsSnapshot `json:"runtime"`
}

// HealthHandler 健康检查端点处理器
//
// - /health: 完整健康报告（账本序号与运行时统计）
// - /health/live: 存活检查
type HealthHandler struct {
	startTime time.Time
	ledger    HealthSource
	runtime   RuntimeStats
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(ledger HealthSource, rt RuntimeStats) *HealthHandler {
	return &HealthHandler{startTime: time.Now(), ledger: ledger, runtime: rt}
}

// RegisterRoutes 注册健康检查路由
func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	health := r.Group("/health")
	{
		health.GET("", h.GetHealth)
		health.GET("/live", h.GetLiveness)
	}
}

// GetHealth GET /health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	resp := HealthResponse{
		Status:  "ok",
		Uptime:  time.Since(h.startTime).Truncate(time.Second).String(),
		Runtime: h.runtime.Stats(),
	}
	seq, err := h.ledger.Sequence(c.Request.Context())
	if err != nil {
		resp.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	resp.LedgerSequence = seq
	c.JSON(http.StatusOK, resp)
}

// GetLiveness GET /health/live
func (h *HealthHandler) GetLiveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
