package usecases

import (
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"
	"lusdt-bridge.backend/internal/domain/entities"
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
	"lusdt-bridge.backend/pkg/logger"
	"lusdt-bridge.backend/pkg/metrics"
)

// PauseStatus is the operator-visible state of the pause switch.
type PauseStatus struct {
	Paused   bool       `json:"paused"`
	Reason   string     `json:"reason,omitempty"`
	PausedAt *time.Time `json:"pausedAt,omitempty"`
	PausedBy string     `json:"pausedBy,omitempty"`
}

// Guard enforces the invariants that protect the peg: the 100%-backing rule,
// role-based authorization, and the emergency pause switch.
type Guard struct {
	mu     sync.RWMutex
	status PauseStatus
}

// NewGuard creates a guard in the active (unpaused) state
func NewGuard() *Guard {
	return &Guard{}
}

// AssertBackingInvariant rejects a mint that would leave circulating LUSDT
// exceeding the USDT held in the vault. Amounts are minor units.
func (g *Guard) AssertBackingInvariant(proposedMint, vaultBalance, mintedSupply *big.Int) error {
	total := new(big.Int).Add(mintedSupply, proposedMint)
	if total.Cmp(vaultBalance) > 0 {
		metrics.BackingViolations.Inc()
		logger.GetLogger().Error("backing invariant violation",
			zap.String("proposedMint", proposedMint.String()),
			zap.String("vaultBalance", vaultBalance.String()),
			zap.String("mintedSupply", mintedSupply.String()))
		return domainerrors.Wrap(domainerrors.ErrBackingViolation,
			"mint of %s would take supply to %s against vault %s", proposedMint, total, vaultBalance)
	}
	return nil
}

// AssertAuthorized checks that the caller holds the required role.
func (g *Guard) AssertAuthorized(caller entities.RoleSet, required entities.Role) error {
	if !caller.Has(required) {
		return domainerrors.Wrap(domainerrors.ErrUnauthorized, "operation requires role %s", required)
	}
	return nil
}

// AssertActive fails fast with ContractPaused while the bridge is paused.
// Every initiating operation calls this before any other validation.
func (g *Guard) AssertActive() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.status.Paused {
		return domainerrors.Wrap(domainerrors.ErrContractPaused, "bridge paused: %s", g.status.Reason)
	}
	return nil
}

// Pause halts all initiating operations. Only the emergency admin may pause.
// Pausing an already paused bridge updates nothing.
func (g *Guard) Pause(caller entities.RoleSet, callerAddress, reason string) error {
	if err := g.AssertAuthorized(caller, entities.RoleEmergencyAdmin); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status.Paused {
		return nil
	}
	now := time.Now()
	g.status = PauseStatus{Paused: true, Reason: reason, PausedAt: &now, PausedBy: callerAddress}
	logger.GetLogger().Warn("bridge paused",
		zap.String("reason", reason),
		zap.String("pausedBy", callerAddress))
	return nil
}

// Unpause resumes operations. Only the owner may unpause.
func (g *Guard) Unpause(caller entities.RoleSet) error {
	if err := g.AssertAuthorized(caller, entities.RoleOwner); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.status.Paused {
		return nil
	}
	g.status = PauseStatus{}
	logger.GetLogger().Info("bridge unpaused")
	return nil
}

// Status returns a copy of the current pause state.
func (g *Guard) Status() PauseStatus {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}
