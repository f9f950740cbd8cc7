package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/bindings"
)

// SafeValidator checks that an address is a Safe with at least one owner
type SafeValidator struct {
	safe *bindings.Safe
	log  *slog.Logger
}

// NewSafeValidator creates a new SafeValidator
func NewSafeValidator(log *slog.Logger) *SafeValidator {
	return &SafeValidator{
		safe: bindings.NewSafe(),
		log:  log,
	}
}

// ValidateSafe calls getOwners() on address. Anything other than a non-empty
// owner list is rejected with ErrInvalidSafeConfiguration.
func (v *SafeValidator) ValidateSafe(ctx context.Context, address common.Address, client ChainReader) error {
	v.log.Debug("validating safe", "address", address.Hex())

	out, err := client.ReadContract(ctx, address, v.safe.PackGetOwners())
	if err != nil {
		if errors.Is(err, domain.ErrSimulationFailure) {
			return fmt.Errorf("%w: getOwners reverted on %s: %w", domain.ErrInvalidSafeConfiguration, address.Hex(), err)
		}
		if errors.Is(err, domain.ErrNetwork) {
			return fmt.Errorf("failed to read owners of safe %s: %w", address.Hex(), err)
		}
		return fmt.Errorf("failed to read owners of safe %s: %w: %w", address.Hex(), domain.ErrNetwork, err)
	}

	owners, err := v.safe.UnpackGetOwners(out)
	if err != nil {
		return fmt.Errorf("%w: %s did not return an owner list: %v", domain.ErrInvalidSafeConfiguration, address.Hex(), err)
	}
	if len(owners) == 0 {
		return fmt.Errorf("%w: safe at %s has no owners", domain.ErrInvalidSafeConfiguration, address.Hex())
	}

	v.log.Debug("safe validated", "address", address.Hex(), "owners", len(owners))
	return nil
}
