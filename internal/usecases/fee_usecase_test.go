package usecases_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"lusdt-bridge.backend/internal/domain/entities"
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
	"lusdt-bridge.backend/internal/usecases"
)

func TestComputeQuote_AmountConservation(t *testing.T) {
	cfg := entities.DefaultFeeConfig()
	split := entities.DefaultDistribution()

	for _, amount := range []int64{1, 999, 1000, 123_456_789, 50_000_000_000} {
		quote, err := usecases.ComputeQuote(big.NewInt(amount), 0, cfg, split)
		require.NoError(t, err)

		total := new(big.Int).Add(quote.FeeAmount, quote.NetAmount)
		assert.Equal(t, big.NewInt(amount), total, "fee + net must equal amount for %d", amount)

		breakdownSum := new(big.Int)
		for _, part := range quote.FeeBreakdown {
			breakdownSum.Add(breakdownSum, part)
		}
		assert.Equal(t, quote.FeeAmount, breakdownSum, "breakdown must sum to fee for %d", amount)
	}
}

func TestComputeQuote_TierSelection(t *testing.T) {
	cfg := entities.DefaultFeeConfig()
	split := entities.DefaultDistribution()
	amount := big.NewInt(1_000_000)

	cases := []struct {
		name      string
		volumeUSD int64
		wantBps   int
	}{
		{"zero volume", 0, 60},
		{"below threshold1", 9_999_999_999, 60},
		{"exactly threshold1", 10_000_000_000, 60},
		{"just above threshold1", 10_000_000_001, 50},
		{"exactly threshold2", 100_000_000_000, 50},
		{"above threshold2", 100_000_000_001, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := usecases.ComputeQuote(amount, tc.volumeUSD, cfg, split)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBps, quote.FeeBps)
		})
	}
}

func TestComputeQuote_BpsNonIncreasingInVolume(t *testing.T) {
	cfg := entities.DefaultFeeConfig()
	split := entities.DefaultDistribution()
	amount := big.NewInt(1_000_000)

	volumes := []int64{0, 5_000_000_000, 10_000_000_000, 50_000_000_000, 100_000_000_000, 200_000_000_000}
	prevBps := 10001
	for _, v := range volumes {
		quote, err := usecases.ComputeQuote(amount, v, cfg, split)
		require.NoError(t, err)
		assert.LessOrEqual(t, quote.FeeBps, prevBps, "bps must not increase as volume grows (volume %d)", v)
		prevBps = quote.FeeBps
	}
}

func TestComputeQuote_KnownValues(t *testing.T) {
	cfg := entities.DefaultFeeConfig()
	split := entities.DefaultDistribution()

	// 1000 at the 60 bps tier.
	quote, err := usecases.ComputeQuote(big.NewInt(1000), 0, cfg, split)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(6), quote.FeeAmount)
	assert.Equal(t, big.NewInt(994), quote.NetAmount)

	// 50000 at the 50 bps tier.
	quote, err = usecases.ComputeQuote(big.NewInt(50000), 50_000_000_000, cfg, split)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(250), quote.FeeAmount)
	assert.Equal(t, big.NewInt(49750), quote.NetAmount)
}

func TestComputeQuote_LastRoleAbsorbsRemainder(t *testing.T) {
	cfg := entities.DefaultFeeConfig()
	split := entities.DefaultDistribution()

	// Fee of 7 does not divide evenly by 80/15/5.
	quote, err := usecases.ComputeQuote(big.NewInt(1167), 0, cfg, split)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(7), quote.FeeAmount)

	assert.Equal(t, big.NewInt(5), quote.FeeBreakdown[entities.RoleDev])           // floor(7*0.80)
	assert.Equal(t, big.NewInt(1), quote.FeeBreakdown[entities.RoleInsuranceFund]) // floor(7*0.15)
	assert.Equal(t, big.NewInt(1), quote.FeeBreakdown[entities.RoleStakingRewards])
}

func TestComputeQuote_InvalidInputs(t *testing.T) {
	cfg := entities.DefaultFeeConfig()
	split := entities.DefaultDistribution()

	_, err := usecases.ComputeQuote(big.NewInt(0), 0, cfg, split)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	_, err = usecases.ComputeQuote(big.NewInt(-5), 0, cfg, split)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	bad := cfg
	bad.LowVolumeFeeBps = 10001
	_, err = usecases.ComputeQuote(big.NewInt(1000), 0, bad, split)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidFeeConfig)

	bad = cfg
	bad.VolumeThreshold1 = bad.VolumeThreshold2
	_, err = usecases.ComputeQuote(big.NewInt(1000), 0, bad, split)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidFeeConfig)
}

func TestParseAmount(t *testing.T) {
	v, err := usecases.ParseAmount("100.50")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100_500_000), v)

	v, err = usecases.ParseAmount("0.000001")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), v)

	_, err = usecases.ParseAmount("0")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	_, err = usecases.ParseAmount("-1")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	_, err = usecases.ParseAmount("0.0000001")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	_, err = usecases.ParseAmount("abc")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "100.5", usecases.FormatAmount(big.NewInt(100_500_000)))
	assert.Equal(t, "0.000001", usecases.FormatAmount(big.NewInt(1)))
}

func TestFeeUsecase_UpdateFeeConfig_Authorization(t *testing.T) {
	repo := new(MockFeeConfigRepository)
	vol := new(MockVolumeAccumulator)
	guard := usecases.NewGuard()
	uc := usecases.NewFeeUsecase(repo, vol, guard)
	cfg := entities.DefaultFeeConfig()

	err := uc.UpdateFeeConfig(context.Background(), entities.NewRoleSet(entities.RoleBridge), &cfg)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	repo.On("SaveFeeConfig", mock.Anything, &cfg).Return(nil)
	err = uc.UpdateFeeConfig(context.Background(), entities.NewRoleSet(entities.RoleTaxManagerOwner), &cfg)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestFeeUsecase_UpdateDistributionWallets_Distinctness(t *testing.T) {
	repo := new(MockFeeConfigRepository)
	vol := new(MockVolumeAccumulator)
	guard := usecases.NewGuard()
	uc := usecases.NewFeeUsecase(repo, vol, guard)
	caller := entities.NewRoleSet(entities.RoleTaxManagerOwner)

	same := &entities.DistributionWallets{Dev: "addr1", InsuranceFund: "addr1", StakingRewards: "addr2"}
	err := uc.UpdateDistributionWallets(context.Background(), caller, same)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidFeeConfig)

	distinct := &entities.DistributionWallets{Dev: "addr1", InsuranceFund: "addr2", StakingRewards: "addr3"}
	repo.On("SaveDistributionWallets", mock.Anything, distinct).Return(nil)
	err = uc.UpdateDistributionWallets(context.Background(), caller, distinct)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
