package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ContractCall is a state-changing call to be simulated.
type ContractCall struct {
	From  common.Address
	To    common.Address
	Data  []byte
	Value *big.Int
}

// TransactionRequest is the fully lowered request returned by a successful
// simulation. It is submitted as-is; nothing is re-derived between the two.
type TransactionRequest struct {
	ChainID *big.Int
	From    common.Address
	To      common.Address
	Data    []byte
	Value   *big.Int
	Nonce   uint64
	Gas     uint64

	// EIP-1559 fees, set when the chain reports a base fee
	GasTipCap *big.Int
	GasFeeCap *big.Int

	// Legacy gas price, set only for chains without a base fee
	GasPrice *big.Int
}

// IsDynamicFee reports whether the request carries EIP-1559 fee fields.
func (r *TransactionRequest) IsDynamicFee() bool {
	return r.GasFeeCap != nil
}

// Transaction builds the unsigned transaction described by the request.
func (r *TransactionRequest) Transaction() *types.Transaction {
	to := r.To
	value := r.Value
	if value == nil {
		value = new(big.Int)
	}

	if r.IsDynamicFee() {
		return types.NewTx(&types.DynamicFeeTx{
			ChainID:   r.ChainID,
			Nonce:     r.Nonce,
			GasTipCap: r.GasTipCap,
			GasFeeCap: r.GasFeeCap,
			Gas:       r.Gas,
			To:        &to,
			Value:     value,
			Data:      r.Data,
		})
	}

	return types.NewTx(&types.LegacyTx{
		Nonce:    r.Nonce,
		GasPrice: r.GasPrice,
		Gas:      r.Gas,
		To:       &to,
		Value:    value,
		Data:     r.Data,
	})
}
