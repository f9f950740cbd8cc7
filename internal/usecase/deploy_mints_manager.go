package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
)

// ErrDeploymentCancelled is returned when the operator declines the broadcast
var ErrDeploymentCancelled = errors.New("deployment cancelled")

// DeployMintsManagerParams contains parameters for a manager deployment
type DeployMintsManagerParams struct {
	ChainName   string
	ProxyName   string
	RPCURL      string // overrides every other RPC source when set
	DryRun      bool
	SkipConfirm bool

	// Timeout bounds preparation, simulation and broadcast. Waiting for the
	// receipt is only stopped by cancelling ctx.
	Timeout time.Duration
}

// DeploymentPlan is everything known about a deployment before broadcast
type DeploymentPlan struct {
	Chain          *domain.Chain
	ProxyName      string
	ProxyDeployer  common.Address
	Signer         common.Address
	Config         *domain.MintsDeterministicConfig
	Initialization *domain.InitializationConfig
	Request        *domain.TransactionRequest
}

// DeployMintsManager deploys the mints manager proxy and prints how to verify it
type DeployMintsManager struct {
	signers   SignerProvider
	configs   ConfigLoader
	chains    ChainResolver
	connector ChainConnector
	encoder   *InitializationEncoder
	safes     *SafeValidator
	confirmer BroadcastConfirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployMintsManager creates a new DeployMintsManager use case
func NewDeployMintsManager(
	signers SignerProvider,
	configs ConfigLoader,
	chains ChainResolver,
	connector ChainConnector,
	encoder *InitializationEncoder,
	safes *SafeValidator,
	confirmer BroadcastConfirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployMintsManager {
	return &DeployMintsManager{
		signers:   signers,
		configs:   configs,
		chains:    chains,
		connector: connector,
		encoder:   encoder,
		safes:     safes,
		confirmer: confirmer,
		progress:  progress,
		log:       log,
	}
}

// Run executes the deployment. Every failure aborts the run; nothing is retried.
// Once the transaction is broadcast the result is always returned, carrying the
// transaction hash even when confirmation fails.
func (uc *DeployMintsManager) Run(ctx context.Context, params DeployMintsManagerParams) (*domain.DeploymentResult, error) {
	if strings.TrimSpace(params.ChainName) == "" {
		return nil, fmt.Errorf("%w: chain name is required", domain.ErrMissingArgument)
	}
	prepCtx, cancel := withTimeout(ctx, params.Timeout)
	defer cancel()
	proxyName := params.ProxyName
	if proxyName == "" {
		proxyName = domain.DefaultProxyName
	}

	uc.progress.OnProgress(prepCtx, ProgressEvent{Stage: StageResolving, Message: "Loading signer"})
	signer, err := uc.signers.Signer(prepCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to load signer: %w", err)
	}
	uc.log.Info("signer loaded", "address", signer.Address().Hex())

	mints, err := uc.configs.LoadDeterministicConfig(prepCtx, proxyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load deterministic config %q: %w", proxyName, err)
	}
	uc.log.Info("deterministic config loaded",
		"name", proxyName,
		"manager", mints.Manager.DeployedAddress.Hex(),
		"mints1155", mints.Mints1155.DeployedAddress.Hex(),
	)

	chain, err := uc.chains.ResolveChain(params.ChainName)
	if err != nil {
		return nil, err
	}
	if params.RPCURL != "" {
		chain.RPCURLs = append([]string{params.RPCURL}, chain.RPCURLs...)
	}
	uc.log.Info("chain resolved", "chain", chain.Name, "chainId", chain.ID)

	client, err := uc.connector.Connect(prepCtx, chain)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", chain.Name, err)
	}
	defer client.Close()

	initCfg, err := uc.encoder.Build(prepCtx, chain.ID, mints)
	if err != nil {
		return nil, fmt.Errorf("failed to build initialization config: %w", err)
	}

	uc.progress.OnProgress(prepCtx, ProgressEvent{Stage: StageValidating, Message: "Validating proxy admin safe"})
	if err := uc.safes.ValidateSafe(prepCtx, initCfg.ProxyAdmin, client); err != nil {
		return nil, err
	}

	proxyDeployer, err := uc.configs.LoadProxyDeployerAddress(prepCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to load proxy deployer address: %w", err)
	}
	uc.log.Info("proxy deployer loaded", "address", proxyDeployer.Hex())

	deployer := NewDeterministicDeployer(client, signer, uc.progress, uc.log)
	attempt := deployer.NewAttempt(proxyDeployer, mints, initCfg)
	if err := attempt.Simulate(prepCtx); err != nil {
		return nil, err
	}

	plan := &DeploymentPlan{
		Chain:          chain,
		ProxyName:      proxyName,
		ProxyDeployer:  proxyDeployer,
		Signer:         signer.Address(),
		Config:         mints,
		Initialization: initCfg,
		Request:        attempt.Request(),
	}
	result := &domain.DeploymentResult{
		Chain:                chain,
		ProxyName:            proxyName,
		ProxyDeployer:        proxyDeployer,
		Signer:               signer.Address(),
		Config:               mints,
		Initialization:       initCfg,
		Request:              plan.Request,
		VerificationCommands: VerificationCommands(mints, params.ChainName),
	}

	if params.DryRun {
		result.State = attempt.State()
		result.DryRun = true
		return result, nil
	}

	if !params.SkipConfirm {
		ok, err := uc.confirmer.ConfirmBroadcast(ctx, plan)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDeploymentCancelled
		}
	}

	submitCtx, cancelSubmit := withTimeout(ctx, params.Timeout)
	defer cancelSubmit()
	tx, err := attempt.Submit(submitCtx)
	if err != nil {
		return nil, err
	}
	result.TransactionHash = tx.Hash()

	receipt, err := attempt.Confirm(ctx)
	if err != nil {
		result.State = attempt.State()
		result.VerificationCommands = nil
		return result, fmt.Errorf("transaction %s was broadcast but not confirmed: %w", tx.Hash().Hex(), err)
	}
	result.State = attempt.State()
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	result.GasUsed = receipt.GasUsed

	if receipt.Status != types.ReceiptStatusSuccessful {
		result.Reverted = true
		result.VerificationCommands = nil
		uc.progress.Error("Transaction reverted")
		return result, fmt.Errorf("%w: %w: %s", domain.ErrSubmissionFailure, domain.ErrTransactionReverted, receipt.TxHash.Hex())
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageCompleted,
		Message: fmt.Sprintf("%s deployed to %s", mints.Manager.ContractName, mints.Manager.DeployedAddress.Hex()),
	})
	uc.log.Info("deployment complete",
		"contract", mints.Manager.ContractName,
		"address", mints.Manager.DeployedAddress.Hex(),
		"tx", receipt.TxHash.Hex(),
	)
	return result, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
