package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"lusdt-bridge.backend/internal/domain/entities"
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
	"lusdt-bridge.backend/internal/interfaces/http/middleware"
	"lusdt-bridge.backend/internal/interfaces/http/response"
	"lusdt-bridge.backend/internal/usecases"
)

type FeeAdminService interface {
	UpdateFeeConfig(ctx context.Context, caller entities.RoleSet, cfg *entities.FeeConfig) error
	UpdateDistributionWallets(ctx context.Context, caller entities.RoleSet, w *entities.DistributionWallets) error
}

type PauseService interface {
	Pause(caller entities.RoleSet, callerAddress, reason string) error
	Unpause(caller entities.RoleSet) error
	Status() usecases.PauseStatus
}

// AdminHandler handles privileged bridge administration endpoints
type AdminHandler struct {
	fees  FeeAdminService
	pause PauseService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(fees FeeAdminService, pause PauseService) *AdminHandler {
	return &AdminHandler{fees: fees, pause: pause}
}

type feeConfigRequest struct {
	BaseFeeBps         int   `json:"baseFeeBps" binding:"required"`
	LowVolumeFeeBps    int   `json:"lowVolumeFeeBps" binding:"required"`
	MediumVolumeFeeBps int   `json:"mediumVolumeFeeBps" binding:"required"`
	HighVolumeFeeBps   int   `json:"highVolumeFeeBps" binding:"required"`
	VolumeThreshold1   int64 `json:"volumeThreshold1" binding:"required"`
	VolumeThreshold2   int64 `json:"volumeThreshold2" binding:"required"`
}

// UpdateFeeConfig replaces the tiered fee configuration
// PUT /api/v1/admin/fee-config
func (h *AdminHandler) UpdateFeeConfig(c *gin.Context) {
	var req feeConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error(), err))
		return
	}

	cfg := &entities.FeeConfig{
		BaseFeeBps:         req.BaseFeeBps,
		LowVolumeFeeBps:    req.LowVolumeFeeBps,
		MediumVolumeFeeBps: req.MediumVolumeFeeBps,
		HighVolumeFeeBps:   req.HighVolumeFeeBps,
		VolumeThreshold1:   req.VolumeThreshold1,
		VolumeThreshold2:   req.VolumeThreshold2,
	}
	if err := h.fees.UpdateFeeConfig(c.Request.Context(), middleware.CallerRoles(c), cfg); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, cfg)
}

type distributionWalletsRequest struct {
	Dev            string `json:"dev" binding:"required"`
	InsuranceFund  string `json:"insuranceFund" binding:"required"`
	StakingRewards string `json:"stakingRewards" binding:"required"`
}

// UpdateDistributionWallets replaces the fee payout addresses
// PUT /api/v1/admin/distribution-wallets
func (h *AdminHandler) UpdateDistributionWallets(c *gin.Context) {
	var req distributionWalletsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error(), err))
		return
	}

	w := &entities.DistributionWallets{
		Dev:            req.Dev,
		InsuranceFund:  req.InsuranceFund,
		StakingRewards: req.StakingRewards,
	}
	if err := h.fees.UpdateDistributionWallets(c.Request.Context(), middleware.CallerRoles(c), w); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, w)
}

type pauseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Pause halts all initiating operations
// POST /api/v1/admin/pause
func (h *AdminHandler) Pause(c *gin.Context) {
	var req pauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error(), err))
		return
	}

	if err := h.pause.Pause(middleware.CallerRoles(c), middleware.CallerAddress(c), req.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.pause.Status())
}

// Unpause resumes operations
// POST /api/v1/admin/unpause
func (h *AdminHandler) Unpause(c *gin.Context) {
	if err := h.pause.Unpause(middleware.CallerRoles(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.pause.Status())
}

// GetPauseStatus reports the pause switch state
// GET /api/v1/admin/pause-status
func (h *AdminHandler) GetPauseStatus(c *gin.Context) {
	response.Success(c, http.StatusOK, h.pause.Status())
}
