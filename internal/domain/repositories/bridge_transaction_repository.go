package repositories

import (
	"context"

	"github.com/google/uuid"
	"lusdt-bridge.backend/internal/domain/entities"
)

// BridgeTransactionRepository defines bridge transaction data operations.
// Records are append-only history: there is no delete.
type BridgeTransactionRepository interface {
	Create(ctx context.Context, tx *entities.BridgeTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.BridgeTransaction, error)
	// List returns transactions newest first, optionally filtered by the
	// initiating source address. address == "" means no filter.
	List(ctx context.Context, address string, limit, offset int) ([]*entities.BridgeTransaction, int, error)
	// UpdateStatusFrom applies status (and optional failure reason) only when
	// the stored status still equals from, so concurrent observers cannot
	// apply the same transition twice. Returns ErrInvalidTransition when the
	// guard does not match.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to entities.BridgeTransactionStatus, reason string) error
	UpdateDestTxHash(ctx context.Context, id uuid.UUID, txHash string) error
}
