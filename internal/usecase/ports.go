package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
)

// ConfigLoader reads the deterministic deployment records of a project
type ConfigLoader interface {
	LoadProxyDeployerAddress(ctx context.Context) (common.Address, error)
	LoadDeterministicConfig(ctx context.Context, logicalName string) (*domain.MintsDeterministicConfig, error)
	LoadChainOverrides(ctx context.Context, chainID uint64) (*domain.ChainOverrides, error)
}

// ChainResolver maps user input to a known chain
type ChainResolver interface {
	ResolveChain(nameOrSlug string) (*domain.Chain, error)
	ListChains() []*domain.Chain
}

// ChainReader performs read-only contract calls
type ChainReader interface {
	ReadContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)
}

// ChainClient is a connection to a single chain
type ChainClient interface {
	ChainReader

	// SimulateCall executes call against the latest state and, on success,
	// returns the fully populated request that should be broadcast.
	SimulateCall(ctx context.Context, call domain.ContractCall) (*domain.TransactionRequest, error)
	// SubmitTransaction signs req with signer and broadcasts it unchanged.
	SubmitTransaction(ctx context.Context, req *domain.TransactionRequest, signer Signer) (*types.Transaction, error)
	WaitForReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	Close()
}

// ChainConnector opens chain clients
type ChainConnector interface {
	Connect(ctx context.Context, chain *domain.Chain) (ChainClient, error)
}

// Signer authorizes transactions on behalf of a single account
type Signer interface {
	Address() common.Address
	SignTransaction(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// SignerProvider builds the configured signer. Resolution is deferred so
// commands that never sign don't require credentials.
type SignerProvider interface {
	Signer(ctx context.Context) (Signer, error)
}

// BroadcastConfirmer asks the operator before anything is broadcast
type BroadcastConfirmer interface {
	ConfirmBroadcast(ctx context.Context, plan *DeploymentPlan) (bool, error)
}

// PremintAPI is the premint signature service for a single chain
type PremintAPI interface {
	Get(ctx context.Context, collection common.Address, uid uint64) (*domain.PremintRecord, error)
	GetOfCollection(ctx context.Context, collection common.Address) (*domain.PremintCollection, error)
	GetNextUID(ctx context.Context, collection common.Address) (uint64, error)
	PostSignature(ctx context.Context, signed *domain.SignedPremint) (*domain.PremintSignatureAck, error)
}

// PremintAPIFactory binds a premint client to a chain
type PremintAPIFactory interface {
	ForChain(chainID uint64) (PremintAPI, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   ExecutionStage
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// ExecutionStage represents a stage in the deployment process
type ExecutionStage string

const (
	StageResolving    ExecutionStage = "Resolving"
	StageValidating   ExecutionStage = "Validating"
	StageSimulating   ExecutionStage = "Simulating"
	StageBroadcasting ExecutionStage = "Broadcasting"
	StageConfirming   ExecutionStage = "Confirming"
	StageCompleted    ExecutionStage = "Completed"
)
