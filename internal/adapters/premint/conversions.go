package premint

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
)

// Wire types. Large integers travel as decimal strings.

type collectionDTO struct {
	ContractAdmin    string   `json:"contractAdmin"`
	ContractName     string   `json:"contractName"`
	ContractURI      string   `json:"contractURI"`
	AdditionalAdmins []string `json:"additionalAdmins"`
}

type tokenConfigDTO struct {
	TokenURI            string `json:"tokenURI"`
	MaxSupply           string `json:"maxSupply"`
	MaxTokensPerAddress string `json:"maxTokensPerAddress"`
	PricePerToken       string `json:"pricePerToken"`
	MintStart           string `json:"mintStart"`
	MintDuration        string `json:"mintDuration"`
	RoyaltyBPS          uint32 `json:"royaltyBPS"`
	PayoutRecipient     string `json:"payoutRecipient"`
	FixedPriceMinter    string `json:"fixedPriceMinter"`
	CreateReferral      string `json:"createReferral"`
}

type premintConfigDTO struct {
	UID         uint32         `json:"uid"`
	Version     uint32         `json:"version"`
	Deleted     bool           `json:"deleted"`
	TokenConfig tokenConfigDTO `json:"tokenConfig"`
}

type versionedPremintDTO struct {
	ConfigVersion string           `json:"config_version"`
	Premint       premintConfigDTO `json:"premint"`
}

type premintResponse struct {
	Collection        *collectionDTO      `json:"collection,omitempty"`
	CollectionAddress string              `json:"collection_address"`
	Premint           versionedPremintDTO `json:"premint"`
	Signature         string              `json:"signature"`
	Signer            string              `json:"signer"`
}

type collectionResponse struct {
	Collection        *collectionDTO    `json:"collection,omitempty"`
	CollectionAddress string            `json:"collection_address"`
	Premints          []premintResponse `json:"premints"`
}

type nextUIDResponse struct {
	NextUID uint64 `json:"next_uid"`
}

type postSignatureRequest struct {
	ChainName         string              `json:"chain_name"`
	Collection        *collectionDTO      `json:"collection,omitempty"`
	CollectionAddress string              `json:"collection_address,omitempty"`
	Premint           versionedPremintDTO `json:"premint"`
	Signature         string              `json:"signature"`
}

type signatureAckResponse struct {
	CollectionAddress string `json:"collection_address"`
	UID               uint32 `json:"uid"`
	Signature         string `json:"signature"`
}

func encodePostSignature(chainName string, signed *domain.SignedPremint) postSignatureRequest {
	req := postSignatureRequest{
		ChainName: chainName,
		Premint: versionedPremintDTO{
			ConfigVersion: string(signed.ConfigVersion),
			Premint:       premintToDTO(signed.Premint),
		},
		Signature: hexutil.Encode(signed.Signature),
	}
	if signed.Collection != nil {
		req.Collection = collectionToDTO(signed.Collection)
	}
	if signed.CollectionAddress != nil {
		req.CollectionAddress = lowerHex(*signed.CollectionAddress)
	}
	return req
}

func collectionToDTO(c *domain.ContractCreationConfig) *collectionDTO {
	return &collectionDTO{
		ContractAdmin:    lowerHex(c.ContractAdmin),
		ContractName:     c.ContractName,
		ContractURI:      c.ContractURI,
		AdditionalAdmins: lo.Map(c.AdditionalAdmins, func(a common.Address, _ int) string { return lowerHex(a) }),
	}
}

func premintToDTO(p domain.PremintConfig) premintConfigDTO {
	tc := p.TokenConfig
	return premintConfigDTO{
		UID:     p.UID,
		Version: p.Version,
		Deleted: p.Deleted,
		TokenConfig: tokenConfigDTO{
			TokenURI:            tc.TokenURI,
			MaxSupply:           bigString(tc.MaxSupply),
			MaxTokensPerAddress: strconv.FormatUint(tc.MaxTokensPerAddress, 10),
			PricePerToken:       bigString(tc.PricePerToken),
			MintStart:           strconv.FormatUint(tc.MintStart, 10),
			MintDuration:        strconv.FormatUint(tc.MintDuration, 10),
			RoyaltyBPS:          tc.RoyaltyBPS,
			PayoutRecipient:     lowerHex(tc.PayoutRecipient),
			FixedPriceMinter:    lowerHex(tc.FixedPriceMinter),
			CreateReferral:      lowerHex(tc.CreateReferral),
		},
	}
}

func (r *premintResponse) toDomain() (*domain.PremintRecord, error) {
	collectionAddress, err := parseAddress("collection_address", r.CollectionAddress)
	if err != nil {
		return nil, err
	}
	collection, err := r.Collection.toDomain()
	if err != nil {
		return nil, err
	}
	premint, err := r.Premint.Premint.toDomain()
	if err != nil {
		return nil, err
	}
	signature, err := hexutil.Decode(r.Signature)
	if err != nil {
		return nil, malformed("signature", r.Signature)
	}

	record := &domain.PremintRecord{
		Collection:        collection,
		CollectionAddress: collectionAddress,
		ConfigVersion:     domain.PremintConfigVersion(r.Premint.ConfigVersion),
		Premint:           *premint,
		Signature:         signature,
	}
	if r.Signer != "" {
		if record.Signer, err = parseAddress("signer", r.Signer); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func (r *collectionResponse) toDomain() (*domain.PremintCollection, error) {
	collectionAddress, err := parseAddress("collection_address", r.CollectionAddress)
	if err != nil {
		return nil, err
	}
	collection, err := r.Collection.toDomain()
	if err != nil {
		return nil, err
	}

	premints := make([]domain.PremintRecord, 0, len(r.Premints))
	for i := range r.Premints {
		p := r.Premints[i]
		if p.CollectionAddress == "" {
			p.CollectionAddress = r.CollectionAddress
		}
		record, err := p.toDomain()
		if err != nil {
			return nil, fmt.Errorf("premint %d: %w", i, err)
		}
		premints = append(premints, *record)
	}

	return &domain.PremintCollection{
		Collection:        collection,
		CollectionAddress: collectionAddress,
		Premints:          premints,
	}, nil
}

func (r *signatureAckResponse) toDomain() *domain.PremintSignatureAck {
	ack := &domain.PremintSignatureAck{UID: r.UID}
	if common.IsHexAddress(r.CollectionAddress) {
		ack.CollectionAddress = common.HexToAddress(r.CollectionAddress)
	}
	if sig, err := hexutil.Decode(r.Signature); err == nil {
		ack.Signature = sig
	}
	return ack
}

func (c *collectionDTO) toDomain() (*domain.ContractCreationConfig, error) {
	if c == nil {
		return nil, nil
	}
	admin, err := parseAddress("contractAdmin", c.ContractAdmin)
	if err != nil {
		return nil, err
	}
	admins := make([]common.Address, 0, len(c.AdditionalAdmins))
	for _, a := range c.AdditionalAdmins {
		addr, err := parseAddress("additionalAdmins", a)
		if err != nil {
			return nil, err
		}
		admins = append(admins, addr)
	}
	return &domain.ContractCreationConfig{
		ContractAdmin:    admin,
		ContractName:     c.ContractName,
		ContractURI:      c.ContractURI,
		AdditionalAdmins: admins,
	}, nil
}

func (p *premintConfigDTO) toDomain() (*domain.PremintConfig, error) {
	tc := p.TokenConfig
	maxSupply, err := parseBig("maxSupply", tc.MaxSupply)
	if err != nil {
		return nil, err
	}
	price, err := parseBig("pricePerToken", tc.PricePerToken)
	if err != nil {
		return nil, err
	}
	maxPerAddress, err := parseUint("maxTokensPerAddress", tc.MaxTokensPerAddress)
	if err != nil {
		return nil, err
	}
	mintStart, err := parseUint("mintStart", tc.MintStart)
	if err != nil {
		return nil, err
	}
	mintDuration, err := parseUint("mintDuration", tc.MintDuration)
	if err != nil {
		return nil, err
	}

	return &domain.PremintConfig{
		UID:     p.UID,
		Version: p.Version,
		Deleted: p.Deleted,
		TokenConfig: domain.TokenCreationConfig{
			TokenURI:            tc.TokenURI,
			MaxSupply:           maxSupply,
			MaxTokensPerAddress: maxPerAddress,
			PricePerToken:       price,
			MintStart:           mintStart,
			MintDuration:        mintDuration,
			RoyaltyBPS:          tc.RoyaltyBPS,
			PayoutRecipient:     common.HexToAddress(tc.PayoutRecipient),
			FixedPriceMinter:    common.HexToAddress(tc.FixedPriceMinter),
			CreateReferral:      common.HexToAddress(tc.CreateReferral),
		},
	}, nil
}

func lowerHex(a common.Address) string {
	return hexutil.Encode(a.Bytes())
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func parseAddress(field, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, malformed(field, s)
	}
	return common.HexToAddress(s), nil
}

func parseBig(field, s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, malformed(field, s)
	}
	return v, nil
}

func parseUint(field, s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, malformed(field, s)
	}
	return v, nil
}

func malformed(field, value string) error {
	return fmt.Errorf("%w: %w: invalid %s %q", domain.ErrNetwork, domain.ErrMalformedResponse, field, value)
}
