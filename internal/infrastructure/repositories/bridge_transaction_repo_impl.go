package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"lusdt-bridge.backend/internal/domain/entities"
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
	"lusdt-bridge.backend/internal/infrastructure/models"
)

// BridgeTransactionRepository implements bridge transaction data operations
type BridgeTransactionRepository struct {
	db *gorm.DB
}

// NewBridgeTransactionRepository creates a new bridge transaction repository
func NewBridgeTransactionRepository(db *gorm.DB) *BridgeTransactionRepository {
	return &BridgeTransactionRepository{db: db}
}

// Create persists a new bridge transaction
func (r *BridgeTransactionRepository) Create(ctx context.Context, tx *entities.BridgeTransaction) error {
	m := r.toModel(tx)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tx.ID = m.ID
	tx.CreatedAt = m.CreatedAt
	tx.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a bridge transaction by ID
func (r *BridgeTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.BridgeTransaction, error) {
	var m models.BridgeTransaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List returns transactions newest first, optionally filtered by source address
func (r *BridgeTransactionRepository) List(ctx context.Context, address string, limit, offset int) ([]*entities.BridgeTransaction, int, error) {
	query := r.db.WithContext(ctx).Model(&models.BridgeTransaction{})
	if address != "" {
		query = query.Where("source_address = ?", address)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.BridgeTransaction
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	txs := make([]*entities.BridgeTransaction, len(ms))
	for i := range ms {
		txs[i] = r.toEntity(&ms[i])
	}
	return txs, int(total), nil
}

// UpdateStatusFrom moves a transaction from one status to another. The WHERE
// clause carries the expected current status so two observers racing on the
// same transition cannot both win; the loser gets ErrInvalidTransition.
func (r *BridgeTransactionRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to entities.BridgeTransactionStatus, reason string) error {
	updates := map[string]interface{}{
		"status":     string(to),
		"updated_at": time.Now(),
	}
	if reason != "" {
		updates["failure_reason"] = reason
	}

	result := r.db.WithContext(ctx).Model(&models.BridgeTransaction{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the id does not exist or the status already moved on.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.BridgeTransaction{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.Wrap(domainerrors.ErrInvalidTransition, "transaction %s is no longer %s", id, from)
	}
	return nil
}

// UpdateDestTxHash records the destination chain transaction hash
func (r *BridgeTransactionRepository) UpdateDestTxHash(ctx context.Context, id uuid.UUID, txHash string) error {
	result := r.db.WithContext(ctx).Model(&models.BridgeTransaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"dest_tx_hash": txHash,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *BridgeTransactionRepository) toModel(tx *entities.BridgeTransaction) *models.BridgeTransaction {
	m := &models.BridgeTransaction{
		ID:                 tx.ID,
		Type:               string(tx.Type),
		Status:             string(tx.Status),
		Amount:             tx.Amount,
		Fee:                tx.Fee,
		FeeBps:             tx.FeeBps,
		FeeType:            string(tx.FeeType),
		SourceNetwork:      tx.SourceNetwork,
		DestinationNetwork: tx.DestinationNetwork,
		SourceAddress:      tx.SourceAddress,
		DestinationAddress: tx.DestinationAddress,
		Memo:               tx.Memo,
		CreatedAt:          tx.CreatedAt,
		UpdatedAt:          tx.UpdatedAt,
	}
	m.SourceTxHash = tx.SourceTxHash.Ptr()
	m.DestTxHash = tx.DestTxHash.Ptr()
	m.FailureReason = tx.FailureReason.Ptr()
	return m
}

func (r *BridgeTransactionRepository) toEntity(m *models.BridgeTransaction) *entities.BridgeTransaction {
	return &entities.BridgeTransaction{
		ID:                 m.ID,
		Type:               entities.BridgeTransactionType(m.Type),
		Status:             entities.BridgeTransactionStatus(m.Status),
		Amount:             m.Amount,
		Fee:                m.Fee,
		FeeBps:             m.FeeBps,
		FeeType:            entities.FeeType(m.FeeType),
		SourceNetwork:      m.SourceNetwork,
		DestinationNetwork: m.DestinationNetwork,
		SourceAddress:      m.SourceAddress,
		DestinationAddress: m.DestinationAddress,
		SourceTxHash:       null.StringFromPtr(m.SourceTxHash),
		DestTxHash:         null.StringFromPtr(m.DestTxHash),
		Memo:               m.Memo,
		FailureReason:      null.StringFromPtr(m.FailureReason),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
