package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
	"github.com/xrpl-wasm/contracts/internal/core/ledger"
	"github.com/xrpl-wasm/contracts/internal/core/params"
)

// LedgerService 账户接口依赖的账本能力
type LedgerService interface {
	Account(ctx context.Context, id framework.AccountID) (*ledger.AccountInfo, error)
	Fund(ctx context.Context, to framework.AccountID, amount framework.Amount) (int64, error)
	SetTrustLine(ctx context.Context, holder framework.AccountID, currency framework.Currency, issuer framework.AccountID, limit decimal.Decimal) (int64, error)
}

// FundRequest 注资请求
type FundRequest struct {
	Amount string `json:"amount" binding:"required"` // 金额字面量：xrp:/iou:/mpt:
}

// TrustLineRequest 设置信任线请求
type TrustLineRequest struct {
	Currency string `json:"currency" binding:"required"`
	Issuer   string `json:"issuer" binding:"required"`
	Limit    string `json:"limit" binding:"required"`
}

// LedgerWriteResponse 账本写操作结果
type LedgerWriteResponse struct {
	Sequence int64               `json:"sequence"`
	Account  *ledger.AccountInfo `json:"account"`
}

// AccountHandlers 账户API处理器
type AccountHandlers struct {
	ledger LedgerService
}

// NewAccountHandlers 创建账户API处理器
func NewAccountHandlers(l LedgerService) *AccountHandlers {
	return &AccountHandlers{ledger: l}
}

// RegisterRoutes 注册账户路由
func (h *AccountHandlers) RegisterRoutes(r *gin.RouterGroup) {
	accounts := r.Group("/accounts")
	{
		accounts.GET("/:address", h.GetAccount)
		accounts.POST("/:address/fund", h.Fund)
		accounts.POST("/:address/trustlines", h.SetTrustLine)
	}
}

func (h *AccountHandlers) parseAddress(c *gin.Context) (framework.AccountID, bool) {
	id, err := address.ParseAccount(c.Param("address"))
	if err != nil {
		badRequest(c, "地址格式无效", err)
		return framework.AccountID{}, false
	}
	return id, true
}

// GetAccount GET /v1/accounts/:address
func (h *AccountHandlers) GetAccount(c *gin.Context) {
	id, ok := h.parseAddress(c)
	if !ok {
		return
	}
	info, err := h.ledger.Account(c.Request.Context(), id)
	if err != nil {
		ledgerError(c, err)
		return
	}
	respond(c, http.StatusOK, info)
}

// Fund POST /v1/accounts/:address/fund
func (h *AccountHandlers) Fund(c *gin.Context) {
	id, ok := h.parseAddress(c)
	if !ok {
		return
	}
	var req FundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误", err)
		return
	}
	amount, err := params.ParseAmount(req.Amount)
	if err != nil {
		badRequest(c, "金额无效", err)
		return
	}

	seq, err := h.ledger.Fund(c.Request.Context(), id, amount)
	if err != nil {
		ledgerError(c, err)
		return
	}
	h.writeResult(c, id, seq)
}

// SetTrustLine POST /v1/accounts/:address/trustlines
func (h *AccountHandlers) SetTrustLine(c *gin.Context) {
	id, ok := h.parseAddress(c)
	if !ok {
		return
	}
	var req TrustLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误", err)
		return
	}
	currency, err := params.ParseCurrency(req.Currency)
	if err != nil {
		badRequest(c, "货币代码无效", err)
		return
	}
	issuer, err := address.ParseAccount(req.Issuer)
	if err != nil {
		badRequest(c, "发行方地址无效", err)
		return
	}
	limit, err := decimal.NewFromString(req.Limit)
	if err != nil {
		badRequest(c, "信任额度无效", err)
		return
	}

	seq, err := h.ledger.SetTrustLine(c.Request.Context(), id, currency, issuer, limit)
	if err != nil {
		ledgerError(c, err)
		return
	}
	h.writeResult(c, id, seq)
}

func (h *AccountHandlers) writeResult(c *gin.Context, id framework.AccountID, seq int64) {
	info, err := h.ledger.Account(c.Request.Context(), id)
	if err != nil {
		ledgerError(c, err)
		return
	}
	respond(c, http.StatusOK, LedgerWriteResponse{Sequence: seq, Account: info})
}
