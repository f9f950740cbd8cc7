package domain

import (
	"github.com/ethereum/go-ethereum/common"
)

// DeploymentState tracks a single deterministic deployment attempt.
type DeploymentState string

const (
	DeploymentNotStarted DeploymentState = "not_started"
	DeploymentSimulated  DeploymentState = "simulated"
	DeploymentSubmitted  DeploymentState = "submitted"
	DeploymentConfirmed  DeploymentState = "confirmed"
	DeploymentFailed     DeploymentState = "failed"
)

var deploymentTransitions = map[DeploymentState][]DeploymentState{
	DeploymentNotStarted: {DeploymentSimulated, DeploymentFailed},
	DeploymentSimulated:  {DeploymentSubmitted, DeploymentFailed},
	DeploymentSubmitted:  {DeploymentConfirmed, DeploymentFailed},
}

// CanTransitionTo reports whether next is reachable from s in one step.
// Confirmed and Failed are terminal.
func (s DeploymentState) CanTransitionTo(next DeploymentState) bool {
	for _, allowed := range deploymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s DeploymentState) IsTerminal() bool {
	return s == DeploymentConfirmed || s == DeploymentFailed
}

// DeploymentResult summarises a finished (or dry-run) deployment.
type DeploymentResult struct {
	Chain           *Chain                    `yaml:"chain"`
	ProxyName       string                    `yaml:"proxyName"`
	ProxyDeployer   common.Address            `yaml:"proxyDeployer"`
	Signer          common.Address            `yaml:"signer"`
	Config          *MintsDeterministicConfig `yaml:"-"`
	Initialization  *InitializationConfig     `yaml:"initialization"`
	State           DeploymentState           `yaml:"state"`
	DryRun          bool                      `yaml:"dryRun"`
	Reverted        bool                      `yaml:"reverted,omitempty"`
	TransactionHash common.Hash               `yaml:"transactionHash,omitempty"`
	BlockNumber     uint64                    `yaml:"blockNumber,omitempty"`
	GasUsed         uint64                    `yaml:"gasUsed,omitempty"`
	Request         *TransactionRequest       `yaml:"-"`

	// VerificationCommands holds one command per deployed contract, manager first.
	VerificationCommands []string `yaml:"verificationCommands"`
}
