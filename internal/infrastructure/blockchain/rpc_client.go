package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/rpc"
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
)

// RPCChainClient implements ChainClient over the JSON-RPC facade the bridge
// node exposes for each settlement chain. The same wire protocol serves both
// networks; only the endpoint differs.
type RPCChainClient struct {
	network string
	client  *rpc.Client
}

// NewRPCChainClient dials the chain's bridge-node RPC endpoint.
func NewRPCChainClient(network, url string) (*RPCChainClient, error) {
	client, err := rpc.DialContext(context.Background(), url)
	if err != nil {
		return nil, err
	}
	return &RPCChainClient{network: network, client: client}, nil
}

// Network returns the network id this client settles against.
func (c *RPCChainClient) Network() string {
	return c.network
}

type balanceResult struct {
	Amount string `json:"amount"`
}

// GetBalance returns the asset balance held by address, in minor units.
func (c *RPCChainClient) GetBalance(ctx context.Context, asset, address string) (*big.Int, error) {
	var res balanceResult
	if err := c.client.CallContext(ctx, &res, "bridge_getBalance", asset, address); err != nil {
		return nil, domainerrors.Wrap(domainerrors.ErrStatusCheck, "balance query for %s on %s", address, c.network)
	}
	amount, ok := new(big.Int).SetString(res.Amount, 10)
	if !ok {
		return nil, domainerrors.Wrap(domainerrors.ErrStatusCheck, "malformed balance %q from %s node", res.Amount, c.network)
	}
	return amount, nil
}

type submitResult struct {
	TxHash string `json:"txHash"`
}

// SubmitTransfer submits a transfer carrying the bridge memo and returns its hash.
func (c *RPCChainClient) SubmitTransfer(ctx context.Context, asset, from, to string, amount *big.Int, memo string) (string, error) {
	var res submitResult
	err := c.client.CallContext(ctx, &res, "bridge_submitTransfer", asset, from, to, amount.String(), memo)
	if err != nil {
		return "", domainerrors.Wrap(domainerrors.ErrChainSubmission, "transfer of %s %s from %s on %s", amount.String(), asset, from, c.network)
	}
	return res.TxHash, nil
}

type confirmationResult struct {
	Status string `json:"status"`
}

// GetConfirmationStatus reports whether txHash reached the chain's
// confirmation threshold.
func (c *RPCChainClient) GetConfirmationStatus(ctx context.Context, txHash string) (ConfirmationStatus, error) {
	var res confirmationResult
	if err := c.client.CallContext(ctx, &res, "bridge_getConfirmationStatus", txHash); err != nil {
		return "", domainerrors.Wrap(domainerrors.ErrStatusCheck, "confirmation query for %s on %s", txHash, c.network)
	}
	switch res.Status {
	case "confirmed":
		return ConfirmationConfirmed, nil
	case "rejected":
		return ConfirmationRejected, nil
	default:
		return ConfirmationPending, nil
	}
}
