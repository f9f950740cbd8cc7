package signer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

const apiKeyHeader = "X-API-Key"

// RPCSigner signs through a JSON-RPC service exposing eth_signTransaction
type RPCSigner struct {
	url        string
	apiKey     string
	address    common.Address
	httpClient *http.Client
	log        *slog.Logger
}

// NewRPCSigner validates cfg and creates a remote JSON-RPC signer
func NewRPCSigner(cfg config.RemoteSignerConfig, log *slog.Logger) (*RPCSigner, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: MINTS_SIGNER_RPC_URL is not set", domain.ErrSignerMisconfigured)
	}
	if !common.IsHexAddress(cfg.Address) {
		return nil, fmt.Errorf("%w: MINTS_SIGNER_ADDRESS %q is not an address", domain.ErrSignerMisconfigured, cfg.Address)
	}

	return &RPCSigner{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		address:    common.HexToAddress(cfg.Address),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        log,
	}, nil
}

// Address returns the signing account
func (s *RPCSigner) Address() common.Address {
	return s.address
}

// SignTransaction asks the remote service to sign tx and checks that the
// returned transaction is tx, signed by Address.
func (s *RPCSigner) SignTransaction(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  "eth_signTransaction",
		Params:  []any{buildTransactionArgs(s.address, tx, chainID)},
		ID:      1,
	}

	var resp rpcResponse
	err := postJSON(ctx, s.httpClient, s.url, req, &resp, func([]byte) (map[string]string, error) {
		if s.apiKey == "" {
			return nil, nil
		}
		return map[string]string{apiKeyHeader: s.apiKey}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("eth_signTransaction: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("eth_signTransaction: JSON-RPC error %d: %s", resp.Error.Code, resp.Error.Message)
	}

	raw, err := decodeSignedTx(resp.Result)
	if err != nil {
		return nil, err
	}
	var signed types.Transaction
	if err := signed.UnmarshalBinary(raw); err != nil {
		return nil, fmt.Errorf("failed to decode signed transaction: %w", err)
	}

	txSigner := types.LatestSignerForChainID(chainID)
	if txSigner.Hash(&signed) != txSigner.Hash(tx) {
		return nil, fmt.Errorf("remote signer returned a different transaction than requested")
	}
	from, err := types.Sender(txSigner, &signed)
	if err != nil {
		return nil, fmt.Errorf("failed to recover signer: %w", err)
	}
	if from != s.address {
		return nil, fmt.Errorf("%w: remote signer signed as %s, expected %s", domain.ErrSignerMisconfigured, from.Hex(), s.address.Hex())
	}

	s.log.Debug("transaction signed remotely", "hash", signed.Hash().Hex())
	return &signed, nil
}

// decodeSignedTx accepts either a raw hex string or geth's {raw, tx} object
func decodeSignedTx(result json.RawMessage) ([]byte, error) {
	var asString string
	if err := json.Unmarshal(result, &asString); err == nil {
		raw, err := hexutil.Decode(asString)
		if err != nil {
			return nil, fmt.Errorf("failed to decode signed transaction hex: %w", err)
		}
		return raw, nil
	}

	var asObject struct {
		Raw hexutil.Bytes `json:"raw"`
	}
	if err := json.Unmarshal(result, &asObject); err != nil || len(asObject.Raw) == 0 {
		return nil, fmt.Errorf("unexpected eth_signTransaction result: %s", string(result))
	}
	return asObject.Raw, nil
}

// buildTransactionArgs converts a go-ethereum transaction to JSON-RPC args
func buildTransactionArgs(from common.Address, tx *types.Transaction, chainID *big.Int) txArgs {
	args := txArgs{
		From:    from.Hex(),
		Gas:     hexutil.EncodeUint64(tx.Gas()),
		Value:   hexutil.EncodeBig(tx.Value()),
		Nonce:   hexutil.EncodeUint64(tx.Nonce()),
		ChainID: hexutil.EncodeBig(chainID),
	}
	if tx.To() != nil {
		to := tx.To().Hex()
		args.To = &to
	}
	if len(tx.Data()) > 0 {
		args.Data = hexutil.Encode(tx.Data())
	}

	switch tx.Type() {
	case types.DynamicFeeTxType:
		maxFee := hexutil.EncodeBig(tx.GasFeeCap())
		maxTip := hexutil.EncodeBig(tx.GasTipCap())
		args.MaxFeePerGas = &maxFee
		args.MaxPriorityFeePerGas = &maxTip
	default:
		gasPrice := hexutil.EncodeBig(tx.GasPrice())
		args.GasPrice = &gasPrice
	}
	return args
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      int             `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type txArgs struct {
	From                 string  `json:"from"`
	To                   *string `json:"to,omitempty"`
	Gas                  string  `json:"gas"`
	GasPrice             *string `json:"gasPrice,omitempty"`
	MaxFeePerGas         *string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *string `json:"maxPriorityFeePerGas,omitempty"`
	Value                string  `json:"value"`
	Nonce                string  `json:"nonce"`
	Data                 string  `json:"data,omitempty"`
	ChainID              string  `json:"chainId"`
}

var _ usecase.Signer = (*RPCSigner)(nil)
