package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/mints-deployer/internal/adapters/blockchain"
	"github.com/trebuchet-org/mints-deployer/internal/adapters/fs"
	"github.com/trebuchet-org/mints-deployer/internal/adapters/interactive"
	"github.com/trebuchet-org/mints-deployer/internal/adapters/network"
	"github.com/trebuchet-org/mints-deployer/internal/adapters/premint"
	"github.com/trebuchet-org/mints-deployer/internal/adapters/progress"
	"github.com/trebuchet-org/mints-deployer/internal/adapters/signer"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewDeterministicConfigStore,
	wire.Bind(new(usecase.ConfigLoader), new(*fs.DeterministicConfigStore)),
)

// NetworkSet provides the chain table
var NetworkSet = wire.NewSet(
	network.NewResolver,
	wire.Bind(new(usecase.ChainResolver), new(*network.Resolver)),
)

// BlockchainSet provides RPC-backed chain clients
var BlockchainSet = wire.NewSet(
	blockchain.NewConnector,
	wire.Bind(new(usecase.ChainConnector), new(*blockchain.Connector)),
)

// SignerSet provides the configured signing account
var SignerSet = wire.NewSet(
	signer.NewProvider,
	wire.Bind(new(usecase.SignerProvider), new(*signer.Provider)),
)

// PremintSet provides premint API clients
var PremintSet = wire.NewSet(
	premint.NewFactory,
	wire.Bind(new(usecase.PremintAPIFactory), new(*premint.Factory)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmer,
	wire.Bind(new(usecase.BroadcastConfirmer), new(*interactive.Confirmer)),
	progress.NewSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	NetworkSet,
	BlockchainSet,
	SignerSet,
	PremintSet,
	InteractiveSet,
)
