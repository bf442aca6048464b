package entities

import (
	"math/big"
	"time"

	domainerrors "lusdt-bridge.backend/internal/domain/errors"
)

// AssetDecimals is the minor-unit precision shared by USDT and LUSDT.
// All fee math runs in integer minor units; human-unit decimal strings are
// converted at the API boundary.
const AssetDecimals = 6

// FeeType selects the asset redemption fees are paid in.
type FeeType string

const (
	FeeTypeLunes FeeType = "LUNES"
	FeeTypeLusdt FeeType = "LUSDT"
	FeeTypeUsdt  FeeType = "USDT"
)

// Valid reports whether ft is one of the supported fee payment assets.
func (ft FeeType) Valid() bool {
	switch ft {
	case FeeTypeLunes, FeeTypeLusdt, FeeTypeUsdt:
		return true
	}
	return false
}

// FeeConfig holds the volume-tiered fee rates. Rates are basis points
// (10000 bps = 100%), thresholds are USD in minor units.
type FeeConfig struct {
	BaseFeeBps         int       `json:"baseFeeBps"`
	LowVolumeFeeBps    int       `json:"lowVolumeFeeBps"`
	MediumVolumeFeeBps int       `json:"mediumVolumeFeeBps"`
	HighVolumeFeeBps   int       `json:"highVolumeFeeBps"`
	VolumeThreshold1   int64     `json:"volumeThreshold1"`
	VolumeThreshold2   int64     `json:"volumeThreshold2"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DefaultFeeConfig returns the deployment defaults: 60/50/30 bps with tier
// boundaries at $10,000 and $100,000 of trailing monthly volume.
func DefaultFeeConfig() FeeConfig {
	return FeeConfig{
		BaseFeeBps:         50,
		LowVolumeFeeBps:    60,
		MediumVolumeFeeBps: 50,
		HighVolumeFeeBps:   30,
		VolumeThreshold1:   10_000_000_000,
		VolumeThreshold2:   100_000_000_000,
	}
}

// Validate checks rate ranges and threshold ordering.
func (c FeeConfig) Validate() error {
	for _, bps := range []int{c.BaseFeeBps, c.LowVolumeFeeBps, c.MediumVolumeFeeBps, c.HighVolumeFeeBps} {
		if bps < 0 || bps > 10000 {
			return domainerrors.Wrap(domainerrors.ErrInvalidFeeConfig, "fee rate %d bps out of range", bps)
		}
	}
	if c.VolumeThreshold1 >= c.VolumeThreshold2 {
		return domainerrors.Wrap(domainerrors.ErrInvalidFeeConfig, "threshold1 %d must be below threshold2 %d", c.VolumeThreshold1, c.VolumeThreshold2)
	}
	return nil
}

// TierBps selects the active fee rate for a trailing monthly volume.
// Boundaries are inclusive on the lower tier: a volume exactly at a
// threshold still pays the cheaper rate.
func (c FeeConfig) TierBps(monthlyVolumeUSD int64) int {
	switch {
	case monthlyVolumeUSD <= c.VolumeThreshold1:
		return c.LowVolumeFeeBps
	case monthlyVolumeUSD <= c.VolumeThreshold2:
		return c.MediumVolumeFeeBps
	default:
		return c.HighVolumeFeeBps
	}
}

// Distribution roles, in payout order. The last listed role absorbs the
// rounding remainder so the breakdown reconciles exactly.
const (
	RoleDev            = "dev"
	RoleInsuranceFund  = "insuranceFund"
	RoleStakingRewards = "stakingRewards"
)

// DistributionShare assigns a percentage of collected fees to a role.
type DistributionShare struct {
	Role    string `json:"role"`
	Percent int64  `json:"percent"`
}

// DefaultDistribution is the v3 split: 80% dev, 15% insurance fund,
// 5% staking rewards pool.
func DefaultDistribution() []DistributionShare {
	return []DistributionShare{
		{Role: RoleDev, Percent: 80},
		{Role: RoleInsuranceFund, Percent: 15},
		{Role: RoleStakingRewards, Percent: 5},
	}
}

// DistributionWallets maps distribution roles to payout addresses.
// Addresses must be pairwise distinct; enforced at configuration time.
type DistributionWallets struct {
	Dev            string    `json:"dev"`
	InsuranceFund  string    `json:"insuranceFund"`
	StakingRewards string    `json:"stakingRewards"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Distinct reports whether no two roles share one address.
func (w DistributionWallets) Distinct() bool {
	return w.Dev != w.InsuranceFund && w.Dev != w.StakingRewards && w.InsuranceFund != w.StakingRewards
}

// FeeQuote is the result of one fee computation. Never mutated after
// creation; the chosen bps is denormalized into the transaction record.
type FeeQuote struct {
	FeeAmount    *big.Int            `json:"-"`
	NetAmount    *big.Int            `json:"-"`
	FeeBps       int                 `json:"feeBps"`
	FeeBreakdown map[string]*big.Int `json:"-"`
}
