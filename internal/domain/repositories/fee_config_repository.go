package repositories

import (
	"context"

	"lusdt-bridge.backend/internal/domain/entities"
)

// FeeConfigRepository stores the tiered fee configuration and the fee
// distribution wallets. Both are single-row configs seeded at deployment and
// mutated only through authorized admin operations.
type FeeConfigRepository interface {
	GetFeeConfig(ctx context.Context) (*entities.FeeConfig, error)
	SaveFeeConfig(ctx context.Context, cfg *entities.FeeConfig) error
	GetDistributionWallets(ctx context.Context) (*entities.DistributionWallets, error)
	SaveDistributionWallets(ctx context.Context, w *entities.DistributionWallets) error
}
