package handlers

import (
	"context"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"
	"lusdt-bridge.backend/internal/domain/entities"
	"lusdt-bridge.backend/internal/interfaces/http/response"
	"lusdt-bridge.backend/internal/usecases"
)

type FeeService interface {
	Quote(ctx context.Context, amount *big.Int) (*entities.FeeQuote, error)
	CurrentFeeBps(ctx context.Context) (int, error)
	MonthlyVolumeUSD(ctx context.Context) (int64, error)
	GetFeeConfig(ctx context.Context) (*entities.FeeConfig, error)
}

// FeeHandler handles fee quotation endpoints
type FeeHandler struct {
	fees FeeService
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(fees FeeService) *FeeHandler {
	return &FeeHandler{fees: fees}
}

// QuoteFee prices an amount at the current tier
// GET /api/v1/bridge/fees/quote?amount=
func (h *FeeHandler) QuoteFee(c *gin.Context) {
	amount, err := usecases.ParseAmount(c.Query("amount"))
	if err != nil {
		response.Error(c, err)
		return
	}

	quote, err := h.fees.Quote(c.Request.Context(), amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	breakdown := make(map[string]string, len(quote.FeeBreakdown))
	for role, part := range quote.FeeBreakdown {
		breakdown[role] = usecases.FormatAmount(part)
	}
	response.Success(c, http.StatusOK, gin.H{
		"amount":       usecases.FormatAmount(amount),
		"feeAmount":    usecases.FormatAmount(quote.FeeAmount),
		"netAmount":    usecases.FormatAmount(quote.NetAmount),
		"feeBps":       quote.FeeBps,
		"feeBreakdown": breakdown,
	})
}

// GetCurrentFee reports the active fee rate and the monthly volume behind it
// GET /api/v1/bridge/fees/current
func (h *FeeHandler) GetCurrentFee(c *gin.Context) {
	bps, err := h.fees.CurrentFeeBps(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	volumeUSD, err := h.fees.MonthlyVolumeUSD(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"feeBps":           bps,
		"monthlyVolumeUSD": usecases.FormatAmount(big.NewInt(volumeUSD)),
	})
}

// GetFeeConfig returns the tier table
// GET /api/v1/bridge/fees/config
func (h *FeeHandler) GetFeeConfig(c *gin.Context) {
	cfg, err := h.fees.GetFeeConfig(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, cfg)
}
