package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockChainClient is a mock implementation of ChainClient
type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) ReadContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	args := m.Called(ctx, to, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockChainClient) SimulateCall(ctx context.Context, call domain.ContractCall) (*domain.TransactionRequest, error) {
	args := m.Called(ctx, call)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRequest), args.Error(1)
}

func (m *MockChainClient) SubmitTransaction(ctx context.Context, req *domain.TransactionRequest, signer usecase.Signer) (*types.Transaction, error) {
	args := m.Called(ctx, req, signer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Transaction), args.Error(1)
}

func (m *MockChainClient) WaitForReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Receipt), args.Error(1)
}

func (m *MockChainClient) Close() {
	m.Called()
}

// MockChainConnector is a mock implementation of ChainConnector
type MockChainConnector struct {
	mock.Mock
}

func (m *MockChainConnector) Connect(ctx context.Context, chain *domain.Chain) (usecase.ChainClient, error) {
	args := m.Called(ctx, chain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.ChainClient), args.Error(1)
}

// MockConfigLoader is a mock implementation of ConfigLoader
type MockConfigLoader struct {
	mock.Mock
}

func (m *MockConfigLoader) LoadProxyDeployerAddress(ctx context.Context) (common.Address, error) {
	args := m.Called(ctx)
	return args.Get(0).(common.Address), args.Error(1)
}

func (m *MockConfigLoader) LoadDeterministicConfig(ctx context.Context, logicalName string) (*domain.MintsDeterministicConfig, error) {
	args := m.Called(ctx, logicalName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MintsDeterministicConfig), args.Error(1)
}

func (m *MockConfigLoader) LoadChainOverrides(ctx context.Context, chainID uint64) (*domain.ChainOverrides, error) {
	args := m.Called(ctx, chainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChainOverrides), args.Error(1)
}

// MockChainResolver is a mock implementation of ChainResolver
type MockChainResolver struct {
	mock.Mock
}

func (m *MockChainResolver) ResolveChain(nameOrSlug string) (*domain.Chain, error) {
	args := m.Called(nameOrSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chain), args.Error(1)
}

func (m *MockChainResolver) ListChains() []*domain.Chain {
	args := m.Called()
	return args.Get(0).([]*domain.Chain)
}

// MockConfirmer is a mock implementation of BroadcastConfirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) ConfirmBroadcast(ctx context.Context, plan *usecase.DeploymentPlan) (bool, error) {
	args := m.Called(ctx, plan)
	return args.Bool(0), args.Error(1)
}

// fakeSigner signs nothing; the chain client mock never asks it to.
type fakeSigner struct {
	address common.Address
}

func (s *fakeSigner) Address() common.Address { return s.address }

func (s *fakeSigner) SignTransaction(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return tx, nil
}

type staticSignerProvider struct {
	signer usecase.Signer
	err    error
}

func (p *staticSignerProvider) Signer(ctx context.Context) (usecase.Signer, error) {
	return p.signer, p.err
}

// recordingProgress collects progress events
type recordingProgress struct {
	events []usecase.ProgressEvent
	errors []string
}

func (r *recordingProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.events = append(r.events, event)
}

func (r *recordingProgress) Info(string) {}

func (r *recordingProgress) Error(message string) {
	r.errors = append(r.errors, message)
}

func (r *recordingProgress) stages() []usecase.ExecutionStage {
	out := make([]usecase.ExecutionStage, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Stage)
	}
	return out
}

func encodeOwners(t *testing.T, owners ...common.Address) []byte {
	t.Helper()
	addressSlice, err := abi.NewType("address[]", "", nil)
	require.NoError(t, err)
	if owners == nil {
		owners = []common.Address{}
	}
	out, err := abi.Arguments{{Type: addressSlice}}.Pack(owners)
	require.NoError(t, err)
	return out
}

func repeatHash(b byte) common.Hash {
	var h common.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func testMintsConfig() *domain.MintsDeterministicConfig {
	return &domain.MintsDeterministicConfig{
		Manager: domain.DeterministicContractConfig{
			Salt:            repeatHash(0x01),
			CreationCode:    common.FromHex("0xab"),
			DeployedAddress: common.HexToAddress("0xC0FFEE0000000000000000000000000000000000"),
			ConstructorArgs: common.FromHex("0x"),
			ContractName:    "Manager",

			DeployedAddressText: "0xC0FFEE0000000000000000000000000000000000",
		},
		Mints1155: domain.DeterministicContractConfig{
			Salt:            repeatHash(0x02),
			CreationCode:    common.FromHex("0xcdef"),
			DeployedAddress: common.HexToAddress("0x7777777000000000000000000000000000000000"),
			ConstructorArgs: common.FromHex("0x1234"),
			ContractName:    "ZoraMints1155",
		},
	}
}

func testRequest(from, to common.Address, data []byte) *domain.TransactionRequest {
	return &domain.TransactionRequest{
		ChainID:   big.NewInt(7777777),
		From:      from,
		To:        to,
		Data:      data,
		Nonce:     3,
		Gas:       1_200_000,
		GasTipCap: big.NewInt(1_000_000),
		GasFeeCap: big.NewInt(3_000_000),
	}
}

func testTx(req *domain.TransactionRequest) *types.Transaction {
	return req.Transaction()
}

func testReceipt(tx *types.Transaction, status uint64) *types.Receipt {
	return &types.Receipt{
		Status:      status,
		TxHash:      tx.Hash(),
		BlockNumber: big.NewInt(1234),
		GasUsed:     900_000,
	}
}
