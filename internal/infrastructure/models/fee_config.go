package models

import (
	"time"

	"github.com/google/uuid"
)

// FeeConfig is the single-row tiered fee configuration.
type FeeConfig struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	BaseFeeBps         int       `gorm:"not null"`
	LowVolumeFeeBps    int       `gorm:"not null"`
	MediumVolumeFeeBps int       `gorm:"not null"`
	HighVolumeFeeBps   int       `gorm:"not null"`
	VolumeThreshold1   int64     `gorm:"not null"`
	VolumeThreshold2   int64     `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the table name
func (FeeConfig) TableName() string {
	return "fee_configs"
}

// DistributionWallets is the single-row fee payout address configuration.
type DistributionWallets struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Dev            string    `gorm:"type:varchar(255);not null"`
	InsuranceFund  string    `gorm:"type:varchar(255);not null"`
	StakingRewards string    `gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides the table name
func (DistributionWallets) TableName() string {
	return "distribution_wallets"
}
