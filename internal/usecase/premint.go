package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
)

// ManagePremints exposes the premint signature API to the CLI
type ManagePremints struct {
	apis PremintAPIFactory
	log  *slog.Logger
}

// NewManagePremints creates a new ManagePremints use case
func NewManagePremints(apis PremintAPIFactory, log *slog.Logger) *ManagePremints {
	return &ManagePremints{
		apis: apis,
		log:  log,
	}
}

// Get fetches a single premint by collection and uid
func (uc *ManagePremints) Get(ctx context.Context, chainID uint64, collection common.Address, uid uint64) (*domain.PremintRecord, error) {
	api, err := uc.apis.ForChain(chainID)
	if err != nil {
		return nil, err
	}
	uc.log.Debug("fetching premint", "chainId", chainID, "collection", collection.Hex(), "uid", uid)
	return api.Get(ctx, collection, uid)
}

// ListCollection fetches every premint of a collection
func (uc *ManagePremints) ListCollection(ctx context.Context, chainID uint64, collection common.Address) (*domain.PremintCollection, error) {
	api, err := uc.apis.ForChain(chainID)
	if err != nil {
		return nil, err
	}
	uc.log.Debug("fetching premints of collection", "chainId", chainID, "collection", collection.Hex())
	return api.GetOfCollection(ctx, collection)
}

// NextUID returns the next unused uid of a collection
func (uc *ManagePremints) NextUID(ctx context.Context, chainID uint64, collection common.Address) (uint64, error) {
	api, err := uc.apis.ForChain(chainID)
	if err != nil {
		return 0, err
	}
	return api.GetNextUID(ctx, collection)
}

// Post stores a signed premint
func (uc *ManagePremints) Post(ctx context.Context, chainID uint64, signed *domain.SignedPremint) (*domain.PremintSignatureAck, error) {
	if signed.Collection == nil && signed.CollectionAddress == nil {
		return nil, fmt.Errorf("%w: premint needs a collection or a collection address", domain.ErrMissingArgument)
	}
	if len(signed.Signature) == 0 {
		return nil, fmt.Errorf("%w: premint signature is empty", domain.ErrMissingArgument)
	}

	api, err := uc.apis.ForChain(chainID)
	if err != nil {
		return nil, err
	}
	uc.log.Debug("posting premint signature", "chainId", chainID, "uid", signed.Premint.UID)
	return api.PostSignature(ctx, signed)
}
