package usecase

import (
	"fmt"

	"github.com/trebuchet-org/mints-deployer/internal/domain"
)

// FormatVerificationCommand renders the forge command that verifies cfg's
// source on the explorer of chainName.
func FormatVerificationCommand(cfg domain.DeterministicContractConfig, chainName string) string {
	return fmt.Sprintf(
		"forge verify-contract  %s %s $(chains %s --verify) --constructor-args %s",
		cfg.PersistedAddress(),
		cfg.ContractName,
		chainName,
		cfg.ConstructorArgs.String(),
	)
}

// VerificationCommands returns the commands for the manager and the mints1155
// contract, in that order.
func VerificationCommands(mints *domain.MintsDeterministicConfig, chainName string) []string {
	return []string{
		FormatVerificationCommand(mints.Manager, chainName),
		FormatVerificationCommand(mints.Mints1155, chainName),
	}
}
