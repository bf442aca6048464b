package handlers

import (
	"context"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lusdt-bridge.backend/internal/domain/entities"
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
	"lusdt-bridge.backend/internal/infrastructure/jobs"
	"lusdt-bridge.backend/internal/interfaces/http/response"
	"lusdt-bridge.backend/internal/usecases"
	"lusdt-bridge.backend/pkg/utils"
)

type BridgeService interface {
	InitiateDeposit(ctx context.Context, params entities.DepositParams) (*entities.BridgeTransaction, error)
	InitiateRedemption(ctx context.Context, params entities.RedemptionParams) (*entities.BridgeTransaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*entities.BridgeTransaction, error)
	ListTransactions(ctx context.Context, address string, limit, offset int) ([]*entities.BridgeTransaction, int, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type StatsService interface {
	GetTransactionStats(ctx context.Context, userAddress string) (*entities.TransactionStats, error)
}

// TrackerService starts the poll loop for a freshly created transaction.
type TrackerService interface {
	StartTracking(ctx context.Context, id uuid.UUID, cb jobs.StatusCallback)
	StopTracking(id uuid.UUID)
}

// BridgeHandler handles bridge transaction endpoints
type BridgeHandler struct {
	bridge  BridgeService
	stats   StatsService
	tracker TrackerService
}

// NewBridgeHandler creates a new bridge handler
func NewBridgeHandler(bridge BridgeService, stats StatsService, tracker TrackerService) *BridgeHandler {
	return &BridgeHandler{bridge: bridge, stats: stats, tracker: tracker}
}

// transactionView is the wire form of a transaction: amounts leave the API
// in human units.
type transactionView struct {
	*entities.BridgeTransaction
	Amount string `json:"amount"`
	Fee    string `json:"fee"`
}

func toView(tx *entities.BridgeTransaction) transactionView {
	v := transactionView{BridgeTransaction: tx, Amount: tx.Amount, Fee: tx.Fee}
	if amount, ok := new(big.Int).SetString(tx.Amount, 10); ok {
		v.Amount = usecases.FormatAmount(amount)
	}
	if fee, ok := new(big.Int).SetString(tx.Fee, 10); ok {
		v.Fee = usecases.FormatAmount(fee)
	}
	return v
}

// CreateDeposit initiates a deposit
// POST /api/v1/bridge/deposits
func (h *BridgeHandler) CreateDeposit(c *gin.Context) {
	var params entities.DepositParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error(), err))
		return
	}

	tx, err := h.bridge.InitiateDeposit(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.track(tx.ID)
	response.Success(c, http.StatusCreated, toView(tx))
}

// track starts observation for a new transaction. The loop outlives the
// request, so it runs on a background context.
func (h *BridgeHandler) track(id uuid.UUID) {
	if h.tracker != nil {
		h.tracker.StartTracking(context.Background(), id, nil)
	}
}

// CreateRedemption initiates a redemption
// POST /api/v1/bridge/redemptions
func (h *BridgeHandler) CreateRedemption(c *gin.Context) {
	var params entities.RedemptionParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error(), err))
		return
	}

	tx, err := h.bridge.InitiateRedemption(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.track(tx.ID)
	response.Success(c, http.StatusCreated, toView(tx))
}

// GetTransaction gets a transaction by ID
// GET /api/v1/bridge/transactions/:id
func (h *BridgeHandler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid transaction id", err))
		return
	}

	tx, err := h.bridge.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, toView(tx))
}

// ListTransactions lists transactions, newest first
// GET /api/v1/bridge/transactions?address=&page=&limit=
func (h *BridgeHandler) ListTransactions(c *gin.Context) {
	var q struct {
		Address string `form:"address"`
		Page    int    `form:"page"`
		Limit   int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error(), err))
		return
	}
	p := utils.GetPaginationParams(q.Page, q.Limit)

	txs, total, err := h.bridge.ListTransactions(c.Request.Context(), q.Address, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	views := make([]transactionView, len(txs))
	for i, tx := range txs {
		views[i] = toView(tx)
	}
	response.Success(c, http.StatusOK, gin.H{
		"transactions": views,
		"pagination":   utils.CalculateMeta(int64(total), p.Page, p.Limit),
	})
}

// CancelTransaction aborts a pending transaction
// POST /api/v1/bridge/transactions/:id/cancel
func (h *BridgeHandler) CancelTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid transaction id", err))
		return
	}

	if err := h.bridge.Cancel(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	if h.tracker != nil {
		h.tracker.StopTracking(id)
	}

	tx, err := h.bridge.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, toView(tx))
}

// GetStats aggregates transaction history
// GET /api/v1/bridge/stats?address=
func (h *BridgeHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.GetTransactionStats(c.Request.Context(), c.Query("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
