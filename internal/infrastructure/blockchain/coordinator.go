package blockchain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"lusdt-bridge.backend/internal/domain/entities"
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
)

// CoordinatorClient talks to the off-chain bridge coordination service. It
// serves as the Notifier for new transactions, the MultisigStatusSource for
// redemption payouts, the DestinationTxSource for mint and release hashes,
// and the remote Signer fronting the HSM keys.
type CoordinatorClient struct {
	baseURL string
	http    *http.Client
}

// NewCoordinatorClient creates a coordinator client
func NewCoordinatorClient(baseURL string) *CoordinatorClient {
	return &CoordinatorClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify pushes a newly created bridge transaction to the coordinator.
func (c *CoordinatorClient) Notify(ctx context.Context, tx *entities.BridgeTransaction) error {
	body, err := json.Marshal(tx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/transactions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("coordinator notify returned status %d", resp.StatusCode)
	}
	return nil
}

// GetMultisigStatus fetches approval progress for a redemption payout.
func (c *CoordinatorClient) GetMultisigStatus(ctx context.Context, transactionID uuid.UUID) (*entities.MultisigStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/multisig/"+transactionID.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrStatusCheck, "multisig status for %s", transactionID)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, domainerrors.Wrap(domainerrors.ErrStatusCheck, "multisig status for %s returned %d", transactionID, resp.StatusCode)
	}

	var status entities.MultisigStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrStatusCheck, "decoding multisig status for %s", transactionID)
	}
	return &status, nil
}

type destinationTxResult struct {
	TxHash string `json:"txHash"`
}

// GetDestinationTransaction fetches the destination-chain hash the
// coordinator submitted for a transaction. 404 means it has not minted or
// released yet.
func (c *CoordinatorClient) GetDestinationTransaction(ctx context.Context, transactionID uuid.UUID) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/transactions/"+transactionID.String()+"/destination", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", domainerrors.Wrap(domainerrors.ErrStatusCheck, "destination tx for %s", transactionID)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode >= 300 {
		return "", domainerrors.Wrap(domainerrors.ErrStatusCheck, "destination tx for %s returned %d", transactionID, resp.StatusCode)
	}

	var res destinationTxResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", domainerrors.Wrap(domainerrors.ErrStatusCheck, "decoding destination tx for %s", transactionID)
	}
	return res.TxHash, nil
}

type signRequest struct {
	Account string `json:"account"`
	Payload []byte `json:"payload"`
}

type signResponse struct {
	Signed []byte `json:"signed"`
}

// Sign requests a signature over payload from the coordinator's signing
// service. 403 means the account holder declined; connectivity or 5xx
// failures surface as signer unavailability.
func (c *CoordinatorClient) Sign(ctx context.Context, payload []byte, account string) ([]byte, error) {
	body, err := json.Marshal(signRequest{Account: account, Payload: payload})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/sign", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrSignerUnavailable, "signing for account %s", account)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, domainerrors.Wrap(domainerrors.ErrUserRejected, "signing for account %s", account)
	case resp.StatusCode >= 300:
		return nil, domainerrors.Wrap(domainerrors.ErrSignerUnavailable, "signer returned %d for account %s", resp.StatusCode, account)
	}

	var sr signResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrSignerUnavailable, "decoding signature for account %s", account)
	}
	return sr.Signed, nil
}
