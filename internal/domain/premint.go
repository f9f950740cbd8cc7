package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// PremintConfigVersion identifies the premint signing scheme.
type PremintConfigVersion string

const (
	PremintConfigV1 PremintConfigVersion = "1"
	PremintConfigV2 PremintConfigVersion = "2"
)

// ContractCreationConfig describes the collection a premint is created under
// when the collection hasn't been deployed yet.
type ContractCreationConfig struct {
	ContractAdmin    common.Address   `json:"contractAdmin" yaml:"contractAdmin"`
	ContractName     string           `json:"contractName" yaml:"contractName"`
	ContractURI      string           `json:"contractURI" yaml:"contractURI"`
	AdditionalAdmins []common.Address `json:"additionalAdmins" yaml:"additionalAdmins"`
}

// TokenCreationConfig holds the token parameters of a v2 premint.
type TokenCreationConfig struct {
	TokenURI            string         `yaml:"tokenURI"`
	MaxSupply           *big.Int       `yaml:"maxSupply"`
	MaxTokensPerAddress uint64         `yaml:"maxTokensPerAddress"`
	PricePerToken       *big.Int       `yaml:"pricePerToken"`
	MintStart           uint64         `yaml:"mintStart"`
	MintDuration        uint64         `yaml:"mintDuration"`
	RoyaltyBPS          uint32         `yaml:"royaltyBPS"`
	PayoutRecipient     common.Address `yaml:"payoutRecipient"`
	FixedPriceMinter    common.Address `yaml:"fixedPriceMinter"`
	CreateReferral      common.Address `yaml:"createReferral"`
}

// PremintConfig is a signed-over premint definition.
type PremintConfig struct {
	UID         uint32              `yaml:"uid"`
	Version     uint32              `yaml:"version"`
	Deleted     bool                `yaml:"deleted"`
	TokenConfig TokenCreationConfig `yaml:"tokenConfig"`
}

// PremintRecord is a single stored premint signature.
type PremintRecord struct {
	Collection        *ContractCreationConfig `yaml:"collection,omitempty"`
	CollectionAddress common.Address          `yaml:"collectionAddress"`
	ConfigVersion     PremintConfigVersion    `yaml:"configVersion"`
	Premint           PremintConfig           `yaml:"premint"`
	Signature         hexutil.Bytes           `yaml:"signature"`
	Signer            common.Address          `yaml:"signer"`
}

// PremintCollection is a collection together with all of its stored premints.
type PremintCollection struct {
	Collection        *ContractCreationConfig `yaml:"collection,omitempty"`
	CollectionAddress common.Address          `yaml:"collectionAddress"`
	Premints          []PremintRecord         `yaml:"premints"`
}

// SignedPremint is the payload submitted to store a new premint signature.
// Exactly one of Collection or CollectionAddress should be set.
type SignedPremint struct {
	Collection        *ContractCreationConfig
	CollectionAddress *common.Address
	ConfigVersion     PremintConfigVersion
	Premint           PremintConfig
	Signature         hexutil.Bytes
}

// PremintSignatureAck is returned by the API once a signature is stored.
type PremintSignatureAck struct {
	CollectionAddress common.Address `yaml:"collectionAddress"`
	UID               uint32         `yaml:"uid"`
	Signature         hexutil.Bytes  `yaml:"signature"`
}
