package entities

import (
	domainerrors "lusdt-bridge.backend/internal/domain/errors"
)

// Network identifies a chain the bridge settles against, with the address
// shape rules the core validates before any chain client call.
type Network struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	AddressMinLen  int    `json:"addressMinLen"`
	AddressMaxLen  int    `json:"addressMaxLen"`
	CurrencySymbol string `json:"currencySymbol"`
}

// Bridge network identifiers.
const (
	NetworkSolana = "solana"
	NetworkLunes  = "lunes"
)

// MemoDelimiter joins the destination address and the optional user memo in
// the source-chain transfer memo, so the operation is self-describing to
// off-chain observers.
const MemoDelimiter = "|"

// DefaultNetworks returns the two settlement networks with their address
// length rules (Solana base58 addresses are 32-44 characters, Lunes SS58
// addresses 47-49).
func DefaultNetworks() map[string]Network {
	return map[string]Network{
		NetworkSolana: {
			ID:             NetworkSolana,
			Name:           "Solana",
			AddressMinLen:  32,
			AddressMaxLen:  44,
			CurrencySymbol: "USDT",
		},
		NetworkLunes: {
			ID:             NetworkLunes,
			Name:           "Lunes",
			AddressMinLen:  47,
			AddressMaxLen:  49,
			CurrencySymbol: "LUSDT",
		},
	}
}

// ValidateAddress checks addr against the network's shape rules.
func (n Network) ValidateAddress(addr string) error {
	if len(addr) < n.AddressMinLen || len(addr) > n.AddressMaxLen {
		return domainerrors.Wrap(domainerrors.ErrInvalidAddress,
			"address %q has length %d, %s expects %d-%d", addr, len(addr), n.Name, n.AddressMinLen, n.AddressMaxLen)
	}
	return nil
}
