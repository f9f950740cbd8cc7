package usecase

import (
	"context"
	"sort"

	"github.com/trebuchet-org/mints-deployer/internal/domain"
)

// ListChainsParams contains parameters for listing chains
type ListChainsParams struct {
	TestnetsOnly bool
	MainnetsOnly bool
}

// ListChainsResult contains the result of listing chains
type ListChainsResult struct {
	Chains []*domain.Chain
}

// ListChains is a use case for listing the chains a deployment can target
type ListChains struct {
	resolver ChainResolver
}

// NewListChains creates a new ListChains use case
func NewListChains(resolver ChainResolver) *ListChains {
	return &ListChains{
		resolver: resolver,
	}
}

// Run executes the use case
func (uc *ListChains) Run(ctx context.Context, params ListChainsParams) (*ListChainsResult, error) {
	chains := make([]*domain.Chain, 0)
	for _, chain := range uc.resolver.ListChains() {
		if params.TestnetsOnly && !chain.Testnet {
			continue
		}
		if params.MainnetsOnly && chain.Testnet {
			continue
		}
		chains = append(chains, chain)
	}

	sort.Slice(chains, func(i, j int) bool {
		return chains[i].ID < chains[j].ID
	})

	return &ListChainsResult{Chains: chains}, nil
}
