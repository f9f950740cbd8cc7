package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/bindings"
)

// DeterministicDeployer creates the manager proxy through the proxy deployer
// contract, simulating before anything is broadcast.
type DeterministicDeployer struct {
	client        ChainClient
	signer        Signer
	progress      ProgressSink
	log           *slog.Logger
	proxyDeployer *bindings.DeterministicUUPSProxyDeployer
}

// NewDeterministicDeployer creates a deployer bound to one chain client and signer
func NewDeterministicDeployer(client ChainClient, signer Signer, progress ProgressSink, log *slog.Logger) *DeterministicDeployer {
	if progress == nil {
		progress = NopProgress{}
	}
	return &DeterministicDeployer{
		client:        client,
		signer:        signer,
		progress:      progress,
		log:           log,
		proxyDeployer: bindings.NewDeterministicUUPSProxyDeployer(),
	}
}

// DeploymentAttempt is a single simulate, submit, confirm run. The request
// broadcast by Submit is the one Simulate produced; callers can't supply
// their own.
type DeploymentAttempt struct {
	deployer      *DeterministicDeployer
	proxyDeployer common.Address
	mints         *domain.MintsDeterministicConfig
	init          *domain.InitializationConfig

	state   domain.DeploymentState
	request *domain.TransactionRequest
	tx      *types.Transaction
	receipt *types.Receipt
}

// NewAttempt starts a new attempt in the NotStarted state
func (d *DeterministicDeployer) NewAttempt(proxyDeployer common.Address, mints *domain.MintsDeterministicConfig, initCfg *domain.InitializationConfig) *DeploymentAttempt {
	return &DeploymentAttempt{
		deployer:      d,
		proxyDeployer: proxyDeployer,
		mints:         mints,
		init:          initCfg,
		state:         domain.DeploymentNotStarted,
	}
}

// Deploy runs simulate, submit and confirm in order and returns the receipt.
// The receipt is returned whatever its status.
func (d *DeterministicDeployer) Deploy(ctx context.Context, proxyDeployer common.Address, mints *domain.MintsDeterministicConfig, initCfg *domain.InitializationConfig) (*types.Receipt, error) {
	attempt := d.NewAttempt(proxyDeployer, mints, initCfg)
	if err := attempt.Simulate(ctx); err != nil {
		return nil, err
	}
	if _, err := attempt.Submit(ctx); err != nil {
		return nil, err
	}
	return attempt.Confirm(ctx)
}

// State returns the current state of the attempt
func (a *DeploymentAttempt) State() domain.DeploymentState {
	return a.state
}

// Request returns a copy of the simulated request, or nil before simulation
func (a *DeploymentAttempt) Request() *domain.TransactionRequest {
	if a.request == nil {
		return nil
	}
	req := *a.request
	req.Data = append([]byte(nil), a.request.Data...)
	return &req
}

// Transaction returns the broadcast transaction, or nil before submission
func (a *DeploymentAttempt) Transaction() *types.Transaction {
	return a.tx
}

// Receipt returns the receipt once confirmed
func (a *DeploymentAttempt) Receipt() *types.Receipt {
	return a.receipt
}

// Simulate executes safeCreate2AndUpgradeToAndCall for the manager config
// against current chain state with the signer as caller.
func (a *DeploymentAttempt) Simulate(ctx context.Context) error {
	if err := a.expect(domain.DeploymentNotStarted, domain.DeploymentSimulated); err != nil {
		return err
	}
	d := a.deployer
	manager := a.mints.Manager

	data, err := d.proxyDeployer.TryPackSafeCreate2AndUpgradeToAndCall(
		manager.Salt,
		manager.CreationCode,
		a.init.InitialImplementationAddress,
		a.init.InitialImplementationCall,
		manager.DeployedAddress,
	)
	if err != nil {
		a.state = domain.DeploymentFailed
		return fmt.Errorf("%w: %w: packing safeCreate2AndUpgradeToAndCall: %w", domain.ErrSimulationFailure, domain.ErrEncoding, err)
	}

	d.log.Info("simulating deployment",
		"proxyDeployer", a.proxyDeployer.Hex(),
		"expectedAddress", manager.DeployedAddress.Hex(),
		"salt", manager.Salt.Hex(),
		"implementation", a.init.InitialImplementationAddress.Hex(),
		"from", d.signer.Address().Hex(),
	)
	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageSimulating,
		Message: fmt.Sprintf("Simulating deployment of %s", manager.ContractName),
		Spinner: true,
	})

	req, err := d.client.SimulateCall(ctx, domain.ContractCall{
		From: d.signer.Address(),
		To:   a.proxyDeployer,
		Data: data,
	})
	if err != nil {
		a.state = domain.DeploymentFailed
		d.progress.Error("Simulation failed")
		return fmt.Errorf("%w: %w", domain.ErrSimulationFailure, err)
	}

	a.request = req
	a.state = domain.DeploymentSimulated
	d.log.Info("simulation succeeded", "gas", req.Gas, "nonce", req.Nonce)
	return nil
}

// Submit signs and broadcasts the simulated request
func (a *DeploymentAttempt) Submit(ctx context.Context) (*types.Transaction, error) {
	if err := a.expect(domain.DeploymentSimulated, domain.DeploymentSubmitted); err != nil {
		return nil, err
	}
	d := a.deployer

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageBroadcasting,
		Message: "Broadcasting transaction",
		Spinner: true,
	})

	tx, err := d.client.SubmitTransaction(ctx, a.request, d.signer)
	if err != nil {
		a.state = domain.DeploymentFailed
		d.progress.Error("Broadcast failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrSubmissionFailure, err)
	}

	a.tx = tx
	a.state = domain.DeploymentSubmitted
	d.log.Info("transaction submitted", "hash", tx.Hash().Hex())
	return tx, nil
}

// Confirm waits for the submitted transaction to be mined
func (a *DeploymentAttempt) Confirm(ctx context.Context) (*types.Receipt, error) {
	if err := a.expect(domain.DeploymentSubmitted, domain.DeploymentConfirmed); err != nil {
		return nil, err
	}
	d := a.deployer

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirming,
		Message: fmt.Sprintf("Waiting for %s", a.tx.Hash().Hex()),
		Spinner: true,
	})

	receipt, err := d.client.WaitForReceipt(ctx, a.tx)
	if err != nil {
		a.state = domain.DeploymentFailed
		d.progress.Error("Waiting for receipt failed")
		return nil, fmt.Errorf("%w: waiting for %s: %w", domain.ErrSubmissionFailure, a.tx.Hash().Hex(), err)
	}

	a.receipt = receipt
	a.state = domain.DeploymentConfirmed
	d.log.Info("transaction mined",
		"hash", receipt.TxHash.Hex(),
		"block", receipt.BlockNumber,
		"status", receipt.Status,
		"gasUsed", receipt.GasUsed,
	)
	return receipt, nil
}

func (a *DeploymentAttempt) expect(current, next domain.DeploymentState) error {
	if a.state != current || !a.state.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot move from %s to %s", domain.ErrInvalidStateTransition, a.state, next)
	}
	return nil
}
