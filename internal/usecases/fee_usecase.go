package usecases

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"lusdt-bridge.backend/internal/domain/entities"
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
	"lusdt-bridge.backend/internal/domain/repositories"
	"lusdt-bridge.backend/pkg/logger"
)

var bpsDenominator = big.NewInt(10000)

// ParseAmount converts a human-unit decimal string into integer minor units.
// Rejects non-positive amounts and precision beyond the asset's decimals.
func ParseAmount(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidAmount, "amount %q is not a decimal number", s)
	}
	scaled := d.Shift(entities.AssetDecimals)
	if !scaled.IsInteger() {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidAmount, "amount %q exceeds %d decimal places", s, entities.AssetDecimals)
	}
	if scaled.Sign() <= 0 {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidAmount, "amount %q must be positive", s)
	}
	return scaled.BigInt(), nil
}

// FormatAmount converts integer minor units back to a human-unit decimal string.
func FormatAmount(v *big.Int) string {
	return decimal.NewFromBigInt(v, -entities.AssetDecimals).String()
}

// ComputeQuote runs one deterministic fee computation in integer minor units.
// The breakdown gives every role but the last its floored share; the last
// role absorbs the rounding remainder so the parts always sum to the fee.
func ComputeQuote(amount *big.Int, monthlyVolumeUSD int64, cfg entities.FeeConfig, split []entities.DistributionShare) (*entities.FeeQuote, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, domainerrors.Wrap(domainerrors.ErrInvalidAmount, "quote amount must be positive")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bps := cfg.TierBps(monthlyVolumeUSD)

	fee := new(big.Int).Mul(amount, big.NewInt(int64(bps)))
	fee.Quo(fee, bpsDenominator)
	net := new(big.Int).Sub(amount, fee)

	breakdown := make(map[string]*big.Int, len(split))
	allocated := new(big.Int)
	for i, share := range split {
		if i == len(split)-1 {
			breakdown[share.Role] = new(big.Int).Sub(fee, allocated)
			break
		}
		part := new(big.Int).Mul(fee, big.NewInt(share.Percent))
		part.Quo(part, big.NewInt(100))
		breakdown[share.Role] = part
		allocated.Add(allocated, part)
	}

	return &entities.FeeQuote{
		FeeAmount:    fee,
		NetAmount:    net,
		FeeBps:       bps,
		FeeBreakdown: breakdown,
	}, nil
}

// FeeUsecase binds the fee computation to the stored configuration and the
// trailing monthly volume.
type FeeUsecase struct {
	feeConfigRepo repositories.FeeConfigRepository
	volume        repositories.VolumeAccumulator
	guard         *Guard
}

// NewFeeUsecase creates a new fee usecase
func NewFeeUsecase(feeConfigRepo repositories.FeeConfigRepository, volume repositories.VolumeAccumulator, guard *Guard) *FeeUsecase {
	return &FeeUsecase{
		feeConfigRepo: feeConfigRepo,
		volume:        volume,
		guard:         guard,
	}
}

// Quote prices an amount (minor units) at the current configuration and
// monthly volume.
func (u *FeeUsecase) Quote(ctx context.Context, amount *big.Int) (*entities.FeeQuote, error) {
	cfg, err := u.feeConfigRepo.GetFeeConfig(ctx)
	if err != nil {
		return nil, err
	}
	volumeUSD, err := u.volume.Current(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeQuote(amount, volumeUSD, *cfg, entities.DefaultDistribution())
}

// CurrentFeeBps returns the fee rate the next transaction would pay.
func (u *FeeUsecase) CurrentFeeBps(ctx context.Context) (int, error) {
	cfg, err := u.feeConfigRepo.GetFeeConfig(ctx)
	if err != nil {
		return 0, err
	}
	volumeUSD, err := u.volume.Current(ctx)
	if err != nil {
		return 0, err
	}
	return cfg.TierBps(volumeUSD), nil
}

// MonthlyVolumeUSD returns the volume accumulated this calendar month.
func (u *FeeUsecase) MonthlyVolumeUSD(ctx context.Context) (int64, error) {
	return u.volume.Current(ctx)
}

// UpdateFeeConfig replaces the tiered fee configuration. Restricted to the
// tax manager owner.
func (u *FeeUsecase) UpdateFeeConfig(ctx context.Context, caller entities.RoleSet, cfg *entities.FeeConfig) error {
	if err := u.guard.AssertAuthorized(caller, entities.RoleTaxManagerOwner); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := u.feeConfigRepo.SaveFeeConfig(ctx, cfg); err != nil {
		return err
	}
	logger.Info(ctx, "fee config updated",
		zap.Int("lowBps", cfg.LowVolumeFeeBps),
		zap.Int("mediumBps", cfg.MediumVolumeFeeBps),
		zap.Int("highBps", cfg.HighVolumeFeeBps))
	return nil
}

// UpdateDistributionWallets replaces the fee payout addresses. Addresses must
// be pairwise distinct. Restricted to the tax manager owner.
func (u *FeeUsecase) UpdateDistributionWallets(ctx context.Context, caller entities.RoleSet, w *entities.DistributionWallets) error {
	if err := u.guard.AssertAuthorized(caller, entities.RoleTaxManagerOwner); err != nil {
		return err
	}
	if !w.Distinct() {
		return domainerrors.Wrap(domainerrors.ErrInvalidFeeConfig, "distribution wallets must be pairwise distinct")
	}
	if err := u.feeConfigRepo.SaveDistributionWallets(ctx, w); err != nil {
		return err
	}
	logger.Info(ctx, "distribution wallets updated")
	return nil
}

// GetFeeConfig returns the stored tiered fee configuration.
func (u *FeeUsecase) GetFeeConfig(ctx context.Context) (*entities.FeeConfig, error) {
	return u.feeConfigRepo.GetFeeConfig(ctx)
}
