package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/bindings"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

// gasLimitBufferPercent is added on top of the node's gas estimate
const gasLimitBufferPercent = 20

// Backend is the subset of *ethclient.Client used by Client
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	Close()
}

// Client implements usecase.ChainClient for one chain
type Client struct {
	backend Backend
	chain   *domain.Chain
	chainID *big.Int
	log     *slog.Logger
}

// NewClient wraps an already connected backend
func NewClient(backend Backend, chain *domain.Chain, log *slog.Logger) *Client {
	return &Client{
		backend: backend,
		chain:   chain,
		chainID: new(big.Int).SetUint64(chain.ID),
		log:     log,
	}
}

// ReadContract performs an eth_call against the latest block
func (c *Client) ReadContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, wrapCallError(err)
	}
	return out, nil
}

// SimulateCall executes call with eth_call, then estimates gas and fills in
// nonce and fees. The returned request is ready to sign.
func (c *Client) SimulateCall(ctx context.Context, call domain.ContractCall) (*domain.TransactionRequest, error) {
	value := call.Value
	if value == nil {
		value = new(big.Int)
	}
	to := call.To
	msg := ethereum.CallMsg{
		From:  call.From,
		To:    &to,
		Data:  call.Data,
		Value: value,
	}

	if _, err := c.backend.CallContract(ctx, msg, nil); err != nil {
		return nil, wrapCallError(err)
	}

	gas, err := c.backend.EstimateGas(ctx, msg)
	if err != nil {
		return nil, wrapCallError(err)
	}

	nonce, err := c.backend.PendingNonceAt(ctx, call.From)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get nonce for %s: %w", domain.ErrNetwork, call.From.Hex(), err)
	}

	req := &domain.TransactionRequest{
		ChainID: new(big.Int).Set(c.chainID),
		From:    call.From,
		To:      call.To,
		Data:    append([]byte(nil), call.Data...),
		Value:   value,
		Nonce:   nonce,
		Gas:     gas + gas*gasLimitBufferPercent/100,
	}
	if err := c.fillFees(ctx, req); err != nil {
		return nil, err
	}

	c.log.Debug("call simulated",
		"chain", c.chain.Name,
		"to", call.To.Hex(),
		"estimatedGas", gas,
		"gasLimit", req.Gas,
		"nonce", nonce,
		"dynamicFee", req.IsDynamicFee(),
	)
	return req, nil
}

// fillFees prices req with EIP-1559 fees when the chain reports a base fee,
// and a legacy gas price otherwise.
func (c *Client) fillFees(ctx context.Context, req *domain.TransactionRequest) error {
	head, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to get latest header: %w", domain.ErrNetwork, err)
	}

	if head.BaseFee == nil {
		price, err := c.backend.SuggestGasPrice(ctx)
		if err != nil {
			return fmt.Errorf("%w: failed to get gas price: %w", domain.ErrNetwork, err)
		}
		req.GasPrice = price
		return nil
	}

	tip, err := c.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to get gas tip cap: %w", domain.ErrNetwork, err)
	}
	req.GasTipCap = tip
	req.GasFeeCap = new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	return nil
}

// SubmitTransaction signs req and broadcasts it. The request is not modified.
func (c *Client) SubmitTransaction(ctx context.Context, req *domain.TransactionRequest, signer usecase.Signer) (*types.Transaction, error) {
	if req.From != signer.Address() {
		return nil, fmt.Errorf("%w: request sender %s does not match signer %s",
			domain.ErrSignerMisconfigured, req.From.Hex(), signer.Address().Hex())
	}

	signed, err := signer.SignTransaction(ctx, req.Transaction(), req.ChainID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("%w: failed to send transaction: %w", domain.ErrNetwork, err)
	}

	c.log.Debug("transaction sent", "chain", c.chain.Name, "hash", signed.Hash().Hex())
	return signed, nil
}

// WaitForReceipt blocks until tx is mined or ctx is done
func (c *Client) WaitForReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	return receipt, nil
}

// Close releases the underlying RPC connection
func (c *Client) Close() {
	c.backend.Close()
}

// wrapCallError turns a failed eth_call or estimate into a RevertError when the
// node reports a revert, and a network error otherwise.
func wrapCallError(err error) error {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data := revertData(dataErr.ErrorData()); data != nil {
			return &domain.RevertError{
				Reason: bindings.DecodeRevertReason(data),
				Data:   data,
			}
		}
	}

	msg := err.Error()
	if idx := strings.Index(msg, "execution reverted"); idx >= 0 {
		reason := strings.TrimPrefix(msg[idx:], "execution reverted")
		return &domain.RevertError{Reason: strings.TrimSpace(strings.TrimPrefix(reason, ":"))}
	}

	return fmt.Errorf("%w: %w", domain.ErrNetwork, err)
}

func revertData(v any) []byte {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	data, err := hexutil.Decode(s)
	if err != nil || len(data) == 0 {
		return nil
	}
	return data
}

var _ usecase.ChainClient = (*Client)(nil)
