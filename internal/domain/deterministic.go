package domain

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Initialization constants baked into every manager deployment. Changing any of
// these requires a code change so that deployments on different chains can't drift.
const (
	InitialEthTokenID = 1
	MetadataBaseURI   = "https://zora.co/assets/mints/metadata/"
	ContractURI       = "https://zora.co/assets/mints/metadata/"
)

// InitialEthTokenPriceWei is 0.000777 ether.
var InitialEthTokenPriceWei = big.NewInt(777_000_000_000_000)

// DefaultProxyName is the logical name of the deterministic config deployed by default.
const DefaultProxyName = "mintsProxy"

// DeterministicContractConfig holds the persisted parameters of one CREATE2 deployment.
type DeterministicContractConfig struct {
	Salt            common.Hash    `json:"salt"`
	CreationCode    hexutil.Bytes  `json:"creationCode"`
	DeployedAddress common.Address `json:"deployedAddress"`
	ConstructorArgs hexutil.Bytes  `json:"constructorArgs"`
	ContractName    string         `json:"contractName"`

	// DeployedAddressText is deployedAddress exactly as written in the record.
	DeployedAddressText string `json:"-"`
}

// UnmarshalJSON keeps the persisted spelling of deployedAddress next to the
// parsed address.
func (c *DeterministicContractConfig) UnmarshalJSON(data []byte) error {
	type plain DeterministicContractConfig
	var aux struct {
		plain
		DeployedAddress string `json:"deployedAddress"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = DeterministicContractConfig(aux.plain)
	c.DeployedAddress = common.Address{}
	c.DeployedAddressText = aux.DeployedAddress
	if aux.DeployedAddress == "" {
		return nil
	}
	if !common.IsHexAddress(aux.DeployedAddress) {
		return fmt.Errorf("invalid deployedAddress %q", aux.DeployedAddress)
	}
	c.DeployedAddress = common.HexToAddress(aux.DeployedAddress)
	return nil
}

// PersistedAddress returns the deployed address as persisted, falling back to
// the checksummed form when the config wasn't loaded from a record.
func (c DeterministicContractConfig) PersistedAddress() string {
	if c.DeployedAddressText != "" {
		return c.DeployedAddressText
	}
	return c.DeployedAddress.Hex()
}

// ExpectedCreate2Address computes the CREATE2 address for this config when
// deployed from deployer. DeployedAddress is trusted as persisted; this is only
// used for display.
func (c DeterministicContractConfig) ExpectedCreate2Address(deployer common.Address) common.Address {
	return crypto.CreateAddress2(deployer, c.Salt, crypto.Keccak256(c.CreationCode))
}

// MintsDeterministicConfig is the pair of configs loaded for a logical proxy name.
type MintsDeterministicConfig struct {
	Manager   DeterministicContractConfig `json:"manager"`
	Mints1155 DeterministicContractConfig `json:"mints1155"`
}

// ChainOverrides are the per-chain values read from chainConfigs/ and addresses/.
type ChainOverrides struct {
	ProxyAdmin            common.Address
	ManagerImplementation common.Address
}

// InitializationConfig describes the upgrade-and-call performed right after the
// proxy is created.
type InitializationConfig struct {
	ProxyAdmin                   common.Address `json:"proxyAdmin" yaml:"proxyAdmin"`
	InitialImplementationAddress common.Address `json:"initialImplementationAddress" yaml:"initialImplementationAddress"`
	InitialImplementationCall    hexutil.Bytes  `json:"initialImplementationCall" yaml:"initialImplementationCall"`
}
