package usecases_test

import (
	"context"
	"math/big"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"lusdt-bridge.backend/internal/domain/entities"
	"lusdt-bridge.backend/internal/infrastructure/blockchain"
)

type MockBridgeTransactionRepository struct {
	mock.Mock
}

func (m *MockBridgeTransactionRepository) Create(ctx context.Context, tx *entities.BridgeTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockBridgeTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.BridgeTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BridgeTransaction), args.Error(1)
}

func (m *MockBridgeTransactionRepository) List(ctx context.Context, address string, limit, offset int) ([]*entities.BridgeTransaction, int, error) {
	args := m.Called(ctx, address, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.BridgeTransaction), args.Int(1), args.Error(2)
}

func (m *MockBridgeTransactionRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to entities.BridgeTransactionStatus, reason string) error {
	args := m.Called(ctx, id, from, to, reason)
	return args.Error(0)
}

func (m *MockBridgeTransactionRepository) UpdateDestTxHash(ctx context.Context, id uuid.UUID, txHash string) error {
	args := m.Called(ctx, id, txHash)
	return args.Error(0)
}

type MockFeeConfigRepository struct {
	mock.Mock
}

func (m *MockFeeConfigRepository) GetFeeConfig(ctx context.Context) (*entities.FeeConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FeeConfig), args.Error(1)
}

func (m *MockFeeConfigRepository) SaveFeeConfig(ctx context.Context, cfg *entities.FeeConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockFeeConfigRepository) GetDistributionWallets(ctx context.Context) (*entities.DistributionWallets, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DistributionWallets), args.Error(1)
}

func (m *MockFeeConfigRepository) SaveDistributionWallets(ctx context.Context, w *entities.DistributionWallets) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

type MockVolumeAccumulator struct {
	mock.Mock
}

func (m *MockVolumeAccumulator) Add(ctx context.Context, amountUSD int64) error {
	args := m.Called(ctx, amountUSD)
	return args.Error(0)
}

func (m *MockVolumeAccumulator) Current(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) GetBalance(ctx context.Context, asset, address string) (*big.Int, error) {
	args := m.Called(ctx, asset, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockChainClient) SubmitTransfer(ctx context.Context, asset, from, to string, amount *big.Int, memo string) (string, error) {
	args := m.Called(ctx, asset, from, to, amount, memo)
	return args.String(0), args.Error(1)
}

func (m *MockChainClient) GetConfirmationStatus(ctx context.Context, txHash string) (blockchain.ConfirmationStatus, error) {
	args := m.Called(ctx, txHash)
	return args.Get(0).(blockchain.ConfirmationStatus), args.Error(1)
}

type MockSigner struct {
	mock.Mock
}

func (m *MockSigner) Sign(ctx context.Context, payload []byte, account string) ([]byte, error) {
	args := m.Called(ctx, payload, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, tx *entities.BridgeTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockDestinationTxSource struct {
	mock.Mock
}

func (m *MockDestinationTxSource) GetDestinationTransaction(ctx context.Context, transactionID uuid.UUID) (string, error) {
	args := m.Called(ctx, transactionID)
	return args.String(0), args.Error(1)
}

type MockMultisigStatusSource struct {
	mock.Mock
}

func (m *MockMultisigStatusSource) GetMultisigStatus(ctx context.Context, transactionID uuid.UUID) (*entities.MultisigStatus, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MultisigStatus), args.Error(1)
}
