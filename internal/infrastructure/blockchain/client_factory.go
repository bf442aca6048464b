package blockchain

import (
	"fmt"
	"sync"
)

// ClientFactory holds one ChainClient per network. Clients are injected at
// startup (or by tests) rather than dialed lazily from globals, so multiple
// chain environments can coexist.
type ClientFactory struct {
	mu      sync.RWMutex
	clients map[string]ChainClient
}

// NewClientFactory creates an empty client factory
func NewClientFactory() *ClientFactory {
	return &ClientFactory{clients: make(map[string]ChainClient)}
}

// Register installs the client for a network, replacing any previous one.
func (f *ClientFactory) Register(network string, client ChainClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[network] = client
}

// Get returns the client for a network.
func (f *ClientFactory) Get(network string) (ChainClient, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	client, ok := f.clients[network]
	if !ok {
		return nil, fmt.Errorf("no chain client registered for network %q", network)
	}
	return client, nil
}
