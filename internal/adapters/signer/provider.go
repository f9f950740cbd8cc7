package signer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

// Provider builds the signer selected by the runtime config
type Provider struct {
	cfg config.SignerConfig
	log *slog.Logger
}

// NewProvider creates a new signer provider
func NewProvider(cfg *config.RuntimeConfig, log *slog.Logger) *Provider {
	return &Provider{cfg: cfg.Signer, log: log}
}

// Signer creates the configured signer. Credentials are only validated here,
// so commands that never sign run without them.
func (p *Provider) Signer(_ context.Context) (usecase.Signer, error) {
	var (
		signer usecase.Signer
		err    error
	)
	switch p.cfg.Backend {
	case config.SignerTurnkey, "":
		signer, err = unwrap(NewTurnkeySigner(p.cfg.Turnkey, p.log))
	case config.SignerRPC:
		signer, err = unwrap(NewRPCSigner(p.cfg.RPC, p.log))
	case config.SignerLocal:
		signer, err = unwrap(NewLocalSigner(p.cfg.PrivateKey))
	default:
		err = fmt.Errorf("%w: unknown signer backend %q", domain.ErrSignerMisconfigured, p.cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	p.log.Debug("signer ready", "backend", p.cfg.Backend, "address", signer.Address().Hex())
	return signer, nil
}

// unwrap keeps a typed nil pointer out of the returned interface
func unwrap[S usecase.Signer](s S, err error) (usecase.Signer, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

var _ usecase.SignerProvider = (*Provider)(nil)
