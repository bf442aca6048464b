package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"lusdt-bridge.backend/internal/domain/entities"
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
	"lusdt-bridge.backend/internal/infrastructure/jobs"
	"lusdt-bridge.backend/internal/interfaces/http/handlers"
)

type MockBridgeService struct {
	mock.Mock
}

func (m *MockBridgeService) InitiateDeposit(ctx context.Context, params entities.DepositParams) (*entities.BridgeTransaction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BridgeTransaction), args.Error(1)
}

func (m *MockBridgeService) InitiateRedemption(ctx context.Context, params entities.RedemptionParams) (*entities.BridgeTransaction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BridgeTransaction), args.Error(1)
}

func (m *MockBridgeService) GetTransaction(ctx context.Context, id uuid.UUID) (*entities.BridgeTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BridgeTransaction), args.Error(1)
}

func (m *MockBridgeService) ListTransactions(ctx context.Context, address string, limit, offset int) ([]*entities.BridgeTransaction, int, error) {
	args := m.Called(ctx, address, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.BridgeTransaction), args.Int(1), args.Error(2)
}

func (m *MockBridgeService) Cancel(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetTransactionStats(ctx context.Context, userAddress string) (*entities.TransactionStats, error) {
	args := m.Called(ctx, userAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransactionStats), args.Error(1)
}

type MockTrackerService struct {
	mock.Mock
}

func (m *MockTrackerService) StartTracking(ctx context.Context, id uuid.UUID, cb jobs.StatusCallback) {
	m.Called(ctx, id, cb)
}

func (m *MockTrackerService) StopTracking(id uuid.UUID) {
	m.Called(id)
}

func newBridgeRouter(bridge *MockBridgeService, stats *MockStatsService, tracker *MockTrackerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewBridgeHandler(bridge, stats, tracker)
	r := gin.New()
	r.POST("/api/v1/bridge/deposits", h.CreateDeposit)
	r.POST("/api/v1/bridge/redemptions", h.CreateRedemption)
	r.GET("/api/v1/bridge/transactions/:id", h.GetTransaction)
	r.GET("/api/v1/bridge/transactions", h.ListTransactions)
	r.GET("/api/v1/bridge/stats", h.GetStats)
	return r
}

func TestCreateDeposit_Success(t *testing.T) {
	bridge := new(MockBridgeService)
	tracker := new(MockTrackerService)
	r := newBridgeRouter(bridge, new(MockStatsService), tracker)

	tx := &entities.BridgeTransaction{
		ID:     uuid.New(),
		Type:   entities.BridgeTypeDeposit,
		Status: entities.BridgeStatusPending,
		Amount: "100000000",
		Fee:    "600000",
		FeeBps: 60,
	}
	bridge.On("InitiateDeposit", mock.Anything, mock.AnythingOfType("entities.DepositParams")).Return(tx, nil)
	tracker.On("StartTracking", mock.Anything, tx.ID, mock.Anything).Return()

	body, _ := json.Marshal(gin.H{
		"amount":             "100",
		"sourceAddress":      "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
		"destinationAddress": "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bridge/deposits", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// Amounts leave the API in human units.
	assert.Equal(t, "100", resp["amount"])
	assert.Equal(t, "0.6", resp["fee"])
	assert.Equal(t, "PENDING", resp["status"])

	tracker.AssertCalled(t, "StartTracking", mock.Anything, tx.ID, mock.Anything)
}

func TestCreateDeposit_MissingFields(t *testing.T) {
	bridge := new(MockBridgeService)
	r := newBridgeRouter(bridge, new(MockStatsService), new(MockTrackerService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bridge/deposits", bytes.NewReader([]byte(`{"amount":"100"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	bridge.AssertNotCalled(t, "InitiateDeposit", mock.Anything, mock.Anything)
}

func TestCreateDeposit_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid amount", domainerrors.ErrInvalidAmount, http.StatusBadRequest},
		{"invalid address", domainerrors.ErrInvalidAddress, http.StatusBadRequest},
		{"insufficient balance", domainerrors.ErrInsufficientBalance, http.StatusBadRequest},
		{"paused", domainerrors.ErrContractPaused, http.StatusConflict},
		{"backing violation", domainerrors.ErrBackingViolation, http.StatusConflict},
		{"signer unavailable", domainerrors.ErrSignerUnavailable, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bridge := new(MockBridgeService)
			r := newBridgeRouter(bridge, new(MockStatsService), new(MockTrackerService))
			bridge.On("InitiateDeposit", mock.Anything, mock.Anything).Return(nil, tc.err)

			body, _ := json.Marshal(gin.H{
				"amount":             "100",
				"sourceAddress":      "src",
				"destinationAddress": "dst",
			})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bridge/deposits", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestGetTransaction_NotFound(t *testing.T) {
	bridge := new(MockBridgeService)
	r := newBridgeRouter(bridge, new(MockStatsService), new(MockTrackerService))

	id := uuid.New()
	bridge.On("GetTransaction", mock.Anything, id).Return(nil, domainerrors.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bridge/transactions/"+id.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTransaction_BadID(t *testing.T) {
	r := newBridgeRouter(new(MockBridgeService), new(MockStatsService), new(MockTrackerService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bridge/transactions/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTransactions_Pagination(t *testing.T) {
	bridge := new(MockBridgeService)
	r := newBridgeRouter(bridge, new(MockStatsService), new(MockTrackerService))

	bridge.On("ListTransactions", mock.Anything, "alice", 20, 20).
		Return([]*entities.BridgeTransaction{}, 45, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bridge/transactions?address=alice&page=2", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Pagination struct {
			Page       int `json:"page"`
			TotalCount int `json:"totalCount"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 45, resp.Pagination.TotalCount)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}

func TestGetStats(t *testing.T) {
	stats := new(MockStatsService)
	r := newBridgeRouter(new(MockBridgeService), stats, new(MockTrackerService))

	stats.On("GetTransactionStats", mock.Anything, "").Return(&entities.TransactionStats{
		TotalTransactions: 3,
		TotalVolume:       "125000000",
		SuccessRate:       0.5,
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bridge/stats", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(3), resp["totalTransactions"])
	assert.Equal(t, 0.5, resp["successRate"])
}
