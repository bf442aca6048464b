package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BridgeTransactionStatus represents the lifecycle status of a bridge transaction
type BridgeTransactionStatus string

const (
	BridgeStatusPending    BridgeTransactionStatus = "PENDING"
	BridgeStatusProcessing BridgeTransactionStatus = "PROCESSING"
	BridgeStatusCompleted  BridgeTransactionStatus = "COMPLETED"
	BridgeStatusFailed     BridgeTransactionStatus = "FAILED"
	BridgeStatusCancelled  BridgeTransactionStatus = "CANCELLED"
)

// Rank orders statuses along the lifecycle: PENDING < PROCESSING < terminal.
// Observations with a lower rank than the last delivered one are stale.
func (s BridgeTransactionStatus) Rank() int {
	switch s {
	case BridgeStatusPending:
		return 0
	case BridgeStatusProcessing:
		return 1
	case BridgeStatusCompleted, BridgeStatusFailed, BridgeStatusCancelled:
		return 2
	}
	return -1
}

// Terminal reports whether no further transition may leave this status.
func (s BridgeTransactionStatus) Terminal() bool {
	switch s {
	case BridgeStatusCompleted, BridgeStatusFailed, BridgeStatusCancelled:
		return true
	}
	return false
}

// BridgeTransactionType represents the direction of value transfer
type BridgeTransactionType string

const (
	BridgeTypeDeposit    BridgeTransactionType = "DEPOSIT"
	BridgeTypeRedemption BridgeTransactionType = "REDEMPTION"
)

// BridgeTransaction is the unit of work crossing chains. Created by the
// bridge usecase on successful validation; status and destination hash are
// the only mutable fields afterwards. Records are retained forever.
type BridgeTransaction struct {
	ID                 uuid.UUID               `json:"id"`
	Type               BridgeTransactionType   `json:"type"`
	Status             BridgeTransactionStatus `json:"status"`
	Amount             string                  `json:"amount"`
	Fee                string                  `json:"fee"`
	FeeBps             int                     `json:"feeBps"`
	FeeType            FeeType                 `json:"feeType,omitempty"`
	SourceNetwork      string                  `json:"sourceNetwork"`
	DestinationNetwork string                  `json:"destinationNetwork"`
	SourceAddress      string                  `json:"sourceAddress"`
	DestinationAddress string                  `json:"destinationAddress"`
	SourceTxHash       null.String             `json:"sourceTransaction,omitempty"`
	DestTxHash         null.String             `json:"destinationTransaction,omitempty"`
	Memo               string                  `json:"memo,omitempty"`
	FailureReason      null.String             `json:"failureReason,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

// DepositParams is the wire contract for initiating a deposit
// (USDT locked on the source chain, LUSDT minted on the destination chain).
// Amounts are decimal strings in human units.
type DepositParams struct {
	Amount             string `json:"amount" binding:"required"`
	SourceAddress      string `json:"sourceAddress" binding:"required"`
	DestinationAddress string `json:"destinationAddress" binding:"required"`
	Memo               string `json:"memo,omitempty"`
}

// RedemptionParams is the wire contract for initiating a redemption
// (LUSDT burned, USDT released on the source chain).
type RedemptionParams struct {
	Amount             string  `json:"amount" binding:"required"`
	SourceAddress      string  `json:"sourceAddress" binding:"required"`
	DestinationAddress string  `json:"destinationAddress" binding:"required"`
	FeeType            FeeType `json:"feeType" binding:"required"`
}

// MultisigStatus is the approval state of a redemption payout proposal.
type MultisigStatus struct {
	ProposalID string `json:"proposalId"`
	Approvals  int    `json:"approvals"`
	Required   int    `json:"required"`
	Approved   bool   `json:"approved"`
}

// TransactionStats aggregates the retained transaction history.
type TransactionStats struct {
	TotalTransactions     int                             `json:"totalTransactions"`
	TotalVolume           string                          `json:"totalVolume"`
	SuccessRate           float64                         `json:"successRate"`
	AverageProcessingTime time.Duration                   `json:"averageProcessingTime"`
	ByStatus              map[BridgeTransactionStatus]int `json:"byStatus"`
	ByType                map[BridgeTransactionType]int   `json:"byType"`
}
