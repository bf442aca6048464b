package models

import (
	"time"

	"github.com/google/uuid"
)

// BridgeTransaction is the persisted form of a bridge settlement record.
// History is append-only; there is deliberately no DeletedAt column.
type BridgeTransaction struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type               string    `gorm:"type:varchar(20);not null;index"`
	Status             string    `gorm:"type:varchar(20);not null;index"`
	Amount             string    `gorm:"type:varchar(100);not null"` // minor units
	Fee                string    `gorm:"type:varchar(100);not null"`
	FeeBps             int       `gorm:"not null"`
	FeeType            string    `gorm:"type:varchar(20)"`
	SourceNetwork      string    `gorm:"type:varchar(50);not null"`
	DestinationNetwork string    `gorm:"type:varchar(50);not null"`
	SourceAddress      string    `gorm:"type:varchar(255);not null;index"`
	DestinationAddress string    `gorm:"type:varchar(255);not null"`
	SourceTxHash       *string   `gorm:"type:varchar(255);index"`
	DestTxHash         *string   `gorm:"type:varchar(255);index"`
	Memo               string    `gorm:"type:varchar(512)"`
	FailureReason      *string   `gorm:"type:varchar(512)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName overrides the table name
func (BridgeTransaction) TableName() string {
	return "bridge_transactions"
}
