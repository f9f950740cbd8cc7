package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

type deployFixture struct {
	configs   *MockConfigLoader
	chains    *MockChainResolver
	connector *MockChainConnector
	client    *MockChainClient
	confirmer *MockConfirmer
	progress  *recordingProgress
	signers   *staticSignerProvider
	chain     *domain.Chain
	overrides *domain.ChainOverrides
	mints     *domain.MintsDeterministicConfig
}

func newDeployFixture(t *testing.T) *deployFixture {
	t.Helper()
	f := &deployFixture{
		configs:   new(MockConfigLoader),
		chains:    new(MockChainResolver),
		connector: new(MockChainConnector),
		client:    new(MockChainClient),
		confirmer: new(MockConfirmer),
		progress:  &recordingProgress{},
		signers:   &staticSignerProvider{signer: &fakeSigner{address: testSignerAddress}},
		chain: &domain.Chain{
			ID:      7777777,
			Name:    "Zora",
			Network: "zora",
			RPCURLs: []string{"https://rpc.zora.energy"},
		},
		overrides: &domain.ChainOverrides{
			ProxyAdmin:            common.HexToAddress("0xaaaa000000000000000000000000000000000000"),
			ManagerImplementation: common.HexToAddress("0xbbbb000000000000000000000000000000000000"),
		},
		mints: testMintsConfig(),
	}

	f.configs.On("LoadDeterministicConfig", mock.Anything, domain.DefaultProxyName).Return(f.mints, nil).Maybe()
	f.configs.On("LoadChainOverrides", mock.Anything, f.chain.ID).Return(f.overrides, nil).Maybe()
	f.configs.On("LoadProxyDeployerAddress", mock.Anything).Return(testProxyDeployer, nil).Maybe()
	f.chains.On("ResolveChain", "zora").Return(f.chain, nil).Maybe()
	f.connector.On("Connect", mock.Anything, f.chain).Return(f.client, nil).Maybe()
	f.client.On("Close").Return().Maybe()
	return f
}

func (f *deployFixture) useCase() *usecase.DeployMintsManager {
	log := discardLogger()
	return usecase.NewDeployMintsManager(
		f.signers,
		f.configs,
		f.chains,
		f.connector,
		usecase.NewInitializationEncoder(f.configs, log),
		usecase.NewSafeValidator(log),
		f.confirmer,
		f.progress,
		log,
	)
}

func (f *deployFixture) expectValidSafe(t *testing.T) {
	f.client.On("ReadContract", mock.Anything, f.overrides.ProxyAdmin, mock.Anything).
		Return(encodeOwners(t, common.HexToAddress("0x01")), nil)
}

func TestDeployMintsManager(t *testing.T) {
	ctx := context.Background()

	t.Run("deploys and returns verification commands", func(t *testing.T) {
		f := newDeployFixture(t)
		f.expectValidSafe(t)

		req := testRequest(testSignerAddress, testProxyDeployer, []byte{0x01})
		tx := testTx(req)
		f.client.On("SimulateCall", mock.Anything, mock.Anything).Return(req, nil)
		f.confirmer.On("ConfirmBroadcast", mock.Anything, mock.Anything).Return(true, nil)
		f.client.On("SubmitTransaction", mock.Anything, req, mock.Anything).Return(tx, nil)
		f.client.On("WaitForReceipt", mock.Anything, tx).Return(testReceipt(tx, types.ReceiptStatusSuccessful), nil)

		result, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{ChainName: "zora"})
		require.NoError(t, err)

		assert.Equal(t, domain.DeploymentConfirmed, result.State)
		assert.Equal(t, tx.Hash(), result.TransactionHash)
		assert.Equal(t, uint64(1234), result.BlockNumber)
		assert.Equal(t, testProxyDeployer, result.ProxyDeployer)
		require.Len(t, result.VerificationCommands, 2)
		assert.Contains(t, result.VerificationCommands[0], "Manager $(chains zora --verify)")
		assert.Contains(t, result.VerificationCommands[1], "ZoraMints1155 $(chains zora --verify)")

		assert.Equal(t, []usecase.ExecutionStage{
			usecase.StageResolving,
			usecase.StageValidating,
			usecase.StageSimulating,
			usecase.StageBroadcasting,
			usecase.StageConfirming,
			usecase.StageCompleted,
		}, f.progress.stages())
		f.client.AssertCalled(t, "Close")
	})

	t.Run("dry run stops after simulation", func(t *testing.T) {
		f := newDeployFixture(t)
		f.expectValidSafe(t)
		req := testRequest(testSignerAddress, testProxyDeployer, []byte{0x01})
		f.client.On("SimulateCall", mock.Anything, mock.Anything).Return(req, nil)

		result, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{ChainName: "zora", DryRun: true})
		require.NoError(t, err)

		assert.True(t, result.DryRun)
		assert.Equal(t, domain.DeploymentSimulated, result.State)
		assert.Equal(t, req.Gas, result.Request.Gas)
		f.confirmer.AssertNotCalled(t, "ConfirmBroadcast", mock.Anything, mock.Anything)
		f.client.AssertNotCalled(t, "SubmitTransaction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("declined confirmation broadcasts nothing", func(t *testing.T) {
		f := newDeployFixture(t)
		f.expectValidSafe(t)
		f.client.On("SimulateCall", mock.Anything, mock.Anything).
			Return(testRequest(testSignerAddress, testProxyDeployer, nil), nil)
		f.confirmer.On("ConfirmBroadcast", mock.Anything, mock.MatchedBy(func(plan *usecase.DeploymentPlan) bool {
			return plan.Request != nil && plan.ProxyDeployer == testProxyDeployer
		})).Return(false, nil)

		_, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{ChainName: "zora"})
		assert.ErrorIs(t, err, usecase.ErrDeploymentCancelled)
		f.client.AssertNotCalled(t, "SubmitTransaction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("skip confirm bypasses the prompt", func(t *testing.T) {
		f := newDeployFixture(t)
		f.expectValidSafe(t)
		req := testRequest(testSignerAddress, testProxyDeployer, nil)
		tx := testTx(req)
		f.client.On("SimulateCall", mock.Anything, mock.Anything).Return(req, nil)
		f.client.On("SubmitTransaction", mock.Anything, req, mock.Anything).Return(tx, nil)
		f.client.On("WaitForReceipt", mock.Anything, tx).Return(testReceipt(tx, types.ReceiptStatusSuccessful), nil)

		_, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{ChainName: "zora", SkipConfirm: true})
		require.NoError(t, err)
		f.confirmer.AssertNotCalled(t, "ConfirmBroadcast", mock.Anything, mock.Anything)
	})

	t.Run("reverted receipt fails the run", func(t *testing.T) {
		f := newDeployFixture(t)
		f.expectValidSafe(t)
		req := testRequest(testSignerAddress, testProxyDeployer, nil)
		tx := testTx(req)
		f.client.On("SimulateCall", mock.Anything, mock.Anything).Return(req, nil)
		f.client.On("SubmitTransaction", mock.Anything, req, mock.Anything).Return(tx, nil)
		f.client.On("WaitForReceipt", mock.Anything, tx).Return(testReceipt(tx, types.ReceiptStatusFailed), nil)

		result, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{ChainName: "zora", SkipConfirm: true})
		assert.ErrorIs(t, err, domain.ErrTransactionReverted)
		assert.ErrorIs(t, err, domain.ErrSubmissionFailure)
		require.NotNil(t, result)
		assert.Equal(t, tx.Hash(), result.TransactionHash)
		assert.True(t, result.Reverted)
		assert.Empty(t, result.VerificationCommands)
		assert.NotContains(t, f.progress.stages(), usecase.StageCompleted)
	})

	t.Run("unconfirmed broadcast keeps the transaction hash", func(t *testing.T) {
		f := newDeployFixture(t)
		f.expectValidSafe(t)
		req := testRequest(testSignerAddress, testProxyDeployer, nil)
		tx := testTx(req)
		f.client.On("SimulateCall", mock.Anything, mock.Anything).Return(req, nil)
		f.client.On("SubmitTransaction", mock.Anything, req, mock.Anything).Return(tx, nil)
		f.client.On("WaitForReceipt", mock.Anything, tx).Return(nil, errors.New("receipt polling stopped"))

		result, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{ChainName: "zora", SkipConfirm: true})
		assert.ErrorIs(t, err, domain.ErrSubmissionFailure)
		assert.Contains(t, err.Error(), tx.Hash().Hex())
		require.NotNil(t, result)
		assert.Equal(t, tx.Hash(), result.TransactionHash)
		assert.Equal(t, domain.DeploymentFailed, result.State)
		assert.Empty(t, result.VerificationCommands)
	})

	t.Run("timeout bounds broadcast but not the receipt wait", func(t *testing.T) {
		f := newDeployFixture(t)
		f.expectValidSafe(t)
		req := testRequest(testSignerAddress, testProxyDeployer, nil)
		tx := testTx(req)
		f.client.On("SimulateCall", mock.Anything, mock.Anything).Return(req, nil).Run(func(args mock.Arguments) {
			_, ok := args.Get(0).(context.Context).Deadline()
			assert.True(t, ok, "simulation should run under the timeout")
		})
		f.client.On("SubmitTransaction", mock.Anything, req, mock.Anything).Return(tx, nil).Run(func(args mock.Arguments) {
			_, ok := args.Get(0).(context.Context).Deadline()
			assert.True(t, ok, "broadcast should run under the timeout")
		})
		f.client.On("WaitForReceipt", mock.Anything, tx).Return(testReceipt(tx, types.ReceiptStatusSuccessful), nil).Run(func(args mock.Arguments) {
			waitCtx := args.Get(0).(context.Context)
			time.Sleep(100 * time.Millisecond)
			assert.NoError(t, waitCtx.Err())
			_, ok := waitCtx.Deadline()
			assert.False(t, ok)
		})

		result, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{ChainName: "zora", SkipConfirm: true, Timeout: 50 * time.Millisecond})
		require.NoError(t, err)
		assert.Equal(t, domain.DeploymentConfirmed, result.State)
	})

	t.Run("invalid safe stops before simulation", func(t *testing.T) {
		f := newDeployFixture(t)
		f.client.On("ReadContract", mock.Anything, f.overrides.ProxyAdmin, mock.Anything).Return(encodeOwners(t), nil)

		_, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{ChainName: "zora"})
		assert.ErrorIs(t, err, domain.ErrInvalidSafeConfiguration)
		f.client.AssertNotCalled(t, "SimulateCall", mock.Anything, mock.Anything)
		f.configs.AssertNotCalled(t, "LoadProxyDeployerAddress", mock.Anything)
	})

	t.Run("explicit rpc url is tried first", func(t *testing.T) {
		f := newDeployFixture(t)
		f.expectValidSafe(t)
		f.client.On("SimulateCall", mock.Anything, mock.Anything).
			Return(testRequest(testSignerAddress, testProxyDeployer, nil), nil)

		_, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{
			ChainName: "zora",
			RPCURL:    "http://localhost:8545",
			DryRun:    true,
		})
		require.NoError(t, err)

		connected := f.connector.Calls[0].Arguments.Get(1).(*domain.Chain)
		assert.Equal(t, []string{"http://localhost:8545", "https://rpc.zora.energy"}, connected.RPCURLs)
	})

	t.Run("missing chain name", func(t *testing.T) {
		f := newDeployFixture(t)
		_, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{ChainName: "  "})
		assert.ErrorIs(t, err, domain.ErrMissingArgument)
	})

	t.Run("unknown chain", func(t *testing.T) {
		f := newDeployFixture(t)
		f.chains.On("ResolveChain", "nowhere").Return(nil, &domain.ChainNotFoundError{Input: "nowhere"})

		_, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{ChainName: "nowhere"})
		assert.ErrorIs(t, err, domain.ErrChainNotFound)
		f.connector.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything)
	})

	t.Run("signer errors surface first", func(t *testing.T) {
		f := newDeployFixture(t)
		f.signers.signer = nil
		f.signers.err = domain.ErrSignerMisconfigured

		_, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{ChainName: "zora"})
		assert.ErrorIs(t, err, domain.ErrSignerMisconfigured)
		f.configs.AssertNotCalled(t, "LoadDeterministicConfig", mock.Anything, mock.Anything)
	})

	t.Run("missing config", func(t *testing.T) {
		f := newDeployFixture(t)
		f.configs.On("LoadDeterministicConfig", mock.Anything, "otherProxy").Return(nil, domain.ErrConfigNotFound)

		_, err := f.useCase().Run(ctx, usecase.DeployMintsManagerParams{ChainName: "zora", ProxyName: "otherProxy"})
		assert.ErrorIs(t, err, domain.ErrConfigNotFound)
		assert.False(t, errors.Is(err, domain.ErrConfigMalformed))
	})
}
