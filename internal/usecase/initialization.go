package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/bindings"
)

// InitializationEncoder builds the call that initializes the manager
// implementation right after the proxy is created.
type InitializationEncoder struct {
	configs ConfigLoader
	manager *bindings.ZoraMintsManagerImpl
	log     *slog.Logger
}

// NewInitializationEncoder creates a new InitializationEncoder
func NewInitializationEncoder(configs ConfigLoader, log *slog.Logger) *InitializationEncoder {
	return &InitializationEncoder{
		configs: configs,
		manager: bindings.NewZoraMintsManagerImpl(),
		log:     log,
	}
}

// Build loads the chain's overrides and encodes
// initialize(proxyAdmin, salt, creationCode, tokenId, tokenPrice, baseURI, contractURI)
// for the mints1155 contract.
func (e *InitializationEncoder) Build(ctx context.Context, chainID uint64, mints *domain.MintsDeterministicConfig) (*domain.InitializationConfig, error) {
	overrides, err := e.configs.LoadChainOverrides(ctx, chainID)
	if err != nil {
		return nil, err
	}

	call, err := e.Encode(overrides.ProxyAdmin, mints.Mints1155)
	if err != nil {
		return nil, err
	}

	e.log.Debug("built initialization config",
		"chainId", chainID,
		"proxyAdmin", overrides.ProxyAdmin.Hex(),
		"implementation", overrides.ManagerImplementation.Hex(),
	)

	return &domain.InitializationConfig{
		ProxyAdmin:                   overrides.ProxyAdmin,
		InitialImplementationAddress: overrides.ManagerImplementation,
		InitialImplementationCall:    call,
	}, nil
}

// Encode packs the initialize call. The token id, price and URIs are fixed.
func (e *InitializationEncoder) Encode(proxyAdmin common.Address, mints1155 domain.DeterministicContractConfig) ([]byte, error) {
	call, err := e.manager.TryPackInitialize(
		proxyAdmin,
		mints1155.Salt,
		mints1155.CreationCode,
		big.NewInt(domain.InitialEthTokenID),
		domain.InitialEthTokenPriceWei,
		domain.MetadataBaseURI,
		domain.ContractURI,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: packing initialize: %w", domain.ErrEncoding, err)
	}
	return call, nil
}
