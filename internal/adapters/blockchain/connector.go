package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

// DialFunc opens a backend for an RPC URL
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

// Connector implements usecase.ChainConnector using ethclient
type Connector struct {
	dial DialFunc
	log  *slog.Logger
}

// NewConnector creates a connector that dials with ethclient
func NewConnector(log *slog.Logger) *Connector {
	return NewConnectorWithDialer(func(ctx context.Context, rpcURL string) (Backend, error) {
		client, err := ethclient.DialContext(ctx, rpcURL)
		if err != nil {
			return nil, err
		}
		return client, nil
	}, log)
}

// NewConnectorWithDialer creates a connector with a custom dial function
func NewConnectorWithDialer(dial DialFunc, log *slog.Logger) *Connector {
	return &Connector{dial: dial, log: log}
}

// Connect dials the chain's preferred RPC URL and checks that the node
// serves the expected chain id.
func (c *Connector) Connect(ctx context.Context, chain *domain.Chain) (usecase.ChainClient, error) {
	rpcURL := chain.RPCURL()
	if rpcURL == "" {
		return nil, fmt.Errorf("%w: no RPC URL configured for %s", domain.ErrNetwork, chain)
	}

	backend, err := c.dial(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to RPC: %w", domain.ErrNetwork, err)
	}

	// Verify chain ID matches
	remoteID, err := backend.ChainID(ctx)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("%w: failed to get chain ID: %w", domain.ErrNetwork, err)
	}
	if remoteID.Uint64() != chain.ID {
		backend.Close()
		return nil, fmt.Errorf("%w: chain ID mismatch: expected %d, got %d", domain.ErrNetwork, chain.ID, remoteID.Uint64())
	}

	c.log.Debug("connected to chain", "chain", chain.Name, "chainId", chain.ID)
	return NewClient(backend, chain, c.log), nil
}

var _ usecase.ChainConnector = (*Connector)(nil)
