package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"lusdt-bridge.backend/internal/domain/entities"
	"lusdt-bridge.backend/internal/infrastructure/models"
)

// FeeConfigRepository implements fee configuration storage. Both the tiered
// rate table and the distribution wallets are single-row configs; a missing
// row falls back to the deployment defaults rather than erroring.
type FeeConfigRepository struct {
	db *gorm.DB
}

// NewFeeConfigRepository creates a new fee config repository
func NewFeeConfigRepository(db *gorm.DB) *FeeConfigRepository {
	return &FeeConfigRepository{db: db}
}

// GetFeeConfig returns the active tiered fee configuration
func (r *FeeConfigRepository) GetFeeConfig(ctx context.Context) (*entities.FeeConfig, error) {
	var m models.FeeConfig
	if err := r.db.WithContext(ctx).Order("updated_at DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cfg := entities.DefaultFeeConfig()
			return &cfg, nil
		}
		return nil, err
	}
	return &entities.FeeConfig{
		BaseFeeBps:         m.BaseFeeBps,
		LowVolumeFeeBps:    m.LowVolumeFeeBps,
		MediumVolumeFeeBps: m.MediumVolumeFeeBps,
		HighVolumeFeeBps:   m.HighVolumeFeeBps,
		VolumeThreshold1:   m.VolumeThreshold1,
		VolumeThreshold2:   m.VolumeThreshold2,
		UpdatedAt:          m.UpdatedAt,
	}, nil
}

// SaveFeeConfig replaces the active tiered fee configuration
func (r *FeeConfigRepository) SaveFeeConfig(ctx context.Context, cfg *entities.FeeConfig) error {
	m := models.FeeConfig{
		BaseFeeBps:         cfg.BaseFeeBps,
		LowVolumeFeeBps:    cfg.LowVolumeFeeBps,
		MediumVolumeFeeBps: cfg.MediumVolumeFeeBps,
		HighVolumeFeeBps:   cfg.HighVolumeFeeBps,
		VolumeThreshold1:   cfg.VolumeThreshold1,
		VolumeThreshold2:   cfg.VolumeThreshold2,
	}

	var existing models.FeeConfig
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		m.ID = uuid.New()
		return r.db.WithContext(ctx).Create(&m).Error
	case err != nil:
		return err
	}
	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(&m).Error
}

// GetDistributionWallets returns the configured fee payout addresses
func (r *FeeConfigRepository) GetDistributionWallets(ctx context.Context) (*entities.DistributionWallets, error) {
	var m models.DistributionWallets
	if err := r.db.WithContext(ctx).Order("updated_at DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entities.DistributionWallets{}, nil
		}
		return nil, err
	}
	return &entities.DistributionWallets{
		Dev:            m.Dev,
		InsuranceFund:  m.InsuranceFund,
		StakingRewards: m.StakingRewards,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

// SaveDistributionWallets replaces the fee payout addresses
func (r *FeeConfigRepository) SaveDistributionWallets(ctx context.Context, w *entities.DistributionWallets) error {
	m := models.DistributionWallets{
		Dev:            w.Dev,
		InsuranceFund:  w.InsuranceFund,
		StakingRewards: w.StakingRewards,
	}

	var existing models.DistributionWallets
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		m.ID = uuid.New()
		return r.db.WithContext(ctx).Create(&m).Error
	case err != nil:
		return err
	}
	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(&m).Error
}
