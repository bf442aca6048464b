package blockchain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
)

func newCoordinatorServer(t *testing.T, handler http.HandlerFunc) *CoordinatorClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCoordinatorClient(srv.URL)
}

func TestGetDestinationTransaction(t *testing.T) {
	id := uuid.New()
	c := newCoordinatorServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/transactions/"+id.String()+"/destination", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"txHash": "minttx"})
	})

	hash, err := c.GetDestinationTransaction(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "minttx", hash)
}

func TestGetDestinationTransaction_NotMintedYet(t *testing.T) {
	c := newCoordinatorServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	hash, err := c.GetDestinationTransaction(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "", hash)
}

func TestGetDestinationTransaction_ServerError(t *testing.T) {
	c := newCoordinatorServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetDestinationTransaction(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrStatusCheck)
}

func TestSign_ForbiddenMeansRejected(t *testing.T) {
	c := newCoordinatorServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.Sign(context.Background(), []byte("payload"), "account")
	assert.ErrorIs(t, err, domainerrors.ErrUserRejected)
}
