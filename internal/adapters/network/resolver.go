package network

import (
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	internalconfig "github.com/trebuchet-org/mints-deployer/internal/config"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
)

const maxSuggestions = 3

// Resolver maps chain names and network slugs to chain descriptors
type Resolver struct {
	chains       []domain.Chain
	rpcEnv       map[string]string
	rpcEndpoints map[string]string
}

// NewResolver creates a new chain resolver over the built-in chain table.
// RPC overrides from the environment and foundry.toml are taken from cfg.
func NewResolver(cfg *config.RuntimeConfig) *Resolver {
	return &Resolver{
		chains:       knownChains,
		rpcEnv:       cfg.RPCEnv,
		rpcEndpoints: cfg.RPCEndpoints,
	}
}

// ResolveChain matches input case-insensitively, ignoring whitespace, against
// each chain's name and network slug. The returned chain is a copy.
func (r *Resolver) ResolveChain(nameOrSlug string) (*domain.Chain, error) {
	input := normalize(nameOrSlug)

	if lo.Contains(arbitrumSepoliaAliases, input) {
		return r.withRPCOverride(&arbitrumSepolia), nil
	}

	chain, ok := lo.Find(r.chains, func(c domain.Chain) bool {
		return normalize(c.Name) == input || strings.ToLower(c.Network) == input
	})
	if !ok {
		return nil, &domain.ChainNotFoundError{
			Input:       nameOrSlug,
			Suggestions: r.suggest(input),
		}
	}
	return r.withRPCOverride(&chain), nil
}

// ListChains returns copies of every known chain, including aliased ones
func (r *Resolver) ListChains() []*domain.Chain {
	out := lo.Map(r.chains, func(c domain.Chain, _ int) *domain.Chain {
		return r.withRPCOverride(&c)
	})
	return append(out, r.withRPCOverride(&arbitrumSepolia))
}

// withRPCOverride copies chain and puts the highest-precedence configured RPC
// URL first: <SLUG>_RPC_URL, then foundry.toml, then the table default.
func (r *Resolver) withRPCOverride(chain *domain.Chain) *domain.Chain {
	out := chain.Clone()

	var overrides []string
	if url := r.rpcEnv[internalconfig.GenerateEnvVarName(chain.Network)]; url != "" {
		overrides = append(overrides, url)
	}
	for _, key := range []string{chain.Network, strings.ReplaceAll(chain.Network, "-", "_")} {
		if url := r.rpcEndpoints[key]; url != "" {
			overrides = append(overrides, url)
			break
		}
	}

	if len(overrides) > 0 {
		out.RPCURLs = lo.Uniq(append(overrides, out.RPCURLs...))
	}
	return out
}

func (r *Resolver) suggest(input string) []string {
	if input == "" {
		return nil
	}
	candidates := lo.Map(r.chains, func(c domain.Chain, _ int) string {
		return c.Network
	})
	candidates = append(candidates, arbitrumSepolia.Network)

	matches := fuzzy.Find(input, candidates)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return lo.Map(matches, func(m fuzzy.Match, _ int) string {
		return m.Str
	})
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
