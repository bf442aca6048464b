package blockchain

import (
	"context"
	"math/big"

	"github.com/google/uuid"
	"lusdt-bridge.backend/internal/domain/entities"
)

// ConfirmationStatus is the observed state of an on-chain operation.
type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "PENDING"
	ConfirmationConfirmed ConfirmationStatus = "CONFIRMED"
	ConfirmationRejected  ConfirmationStatus = "REJECTED"
)

// ChainClient is the capability the settlement core consumes per chain.
// Implementations wrap a chain SDK or RPC endpoint; the core never assumes a
// particular one. All calls may suspend on network I/O.
type ChainClient interface {
	// GetBalance returns the balance of asset held by address, in minor units.
	GetBalance(ctx context.Context, asset, address string) (*big.Int, error)
	// SubmitTransfer submits a signed transfer and returns its hash.
	SubmitTransfer(ctx context.Context, asset, from, to string, amount *big.Int, memo string) (string, error)
	// GetConfirmationStatus reports whether txHash has reached the chain's
	// confirmation threshold.
	GetConfirmationStatus(ctx context.Context, txHash string) (ConfirmationStatus, error)
}

// Signer produces a signed payload for an account, or fails with
// ErrSignerUnavailable / ErrUserRejected.
type Signer interface {
	Sign(ctx context.Context, payload []byte, account string) ([]byte, error)
}

// Notifier pushes newly created bridge transactions to the off-chain
// coordinator. Best-effort: callers must not fail on notification errors.
type Notifier interface {
	Notify(ctx context.Context, tx *entities.BridgeTransaction) error
}

// MultisigStatusSource reports approval progress for redemption payouts.
type MultisigStatusSource interface {
	GetMultisigStatus(ctx context.Context, transactionID uuid.UUID) (*entities.MultisigStatus, error)
}

// DestinationTxSource reports the destination-chain transaction the
// coordinator produced for a bridge transaction (the mint on a deposit, the
// vault release on a redemption). Returns "" while none exists yet.
type DestinationTxSource interface {
	GetDestinationTransaction(ctx context.Context, transactionID uuid.UUID) (string, error)
}
