package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Sentinel errors for domain operations
var (
	// ErrMissingArgument is returned when a required positional argument is absent
	ErrMissingArgument = errors.New("missing argument")

	// ErrConfigNotFound is returned when a configuration record doesn't exist
	ErrConfigNotFound = errors.New("config not found")

	// ErrConfigMalformed is returned when a configuration record is missing fields or mistyped
	ErrConfigMalformed = errors.New("config malformed")

	// ErrChainNotFound is returned when a chain name or slug matches no known chain
	ErrChainNotFound = errors.New("chain not found")

	// ErrInvalidSafeConfiguration is returned when a Safe has no owners
	ErrInvalidSafeConfiguration = errors.New("invalid safe configuration")

	// ErrSimulationFailure is returned when the deployment call fails to simulate
	ErrSimulationFailure = errors.New("simulation failed")

	// ErrSubmissionFailure is returned when the simulated request can't be broadcast or mined
	ErrSubmissionFailure = errors.New("submission failed")

	// ErrNetwork is returned for transport failures talking to an RPC node or HTTP API
	ErrNetwork = errors.New("network error")

	// ErrMalformedResponse is returned when a remote service answers with a payload
	// that doesn't decode. It is always reported together with ErrNetwork.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrEncoding is returned when call data can't be ABI-encoded
	ErrEncoding = errors.New("encoding error")

	// ErrInvalidStateTransition is returned when a deployment step runs out of order
	ErrInvalidStateTransition = errors.New("invalid deployment state transition")

	// ErrTransactionReverted is returned when a mined transaction has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrUnsupportedChain is returned when a chain has no premint backend mapping
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrSignerMisconfigured is returned when signer credentials are absent or inconsistent
	ErrSignerMisconfigured = errors.New("signer misconfigured")
)

// ChainNotFoundError carries the rejected input and close matches from the chain table.
type ChainNotFoundError struct {
	Input       string
	Suggestions []string
}

func (e *ChainNotFoundError) Error() string {
	msg := fmt.Sprintf("chain %s not found", e.Input)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *ChainNotFoundError) Unwrap() error {
	return ErrChainNotFound
}

// RevertError describes a reverted eth_call. Reason is empty when the revert data
// doesn't decode to Error(string) or a known custom error.
type RevertError struct {
	Reason string
	Data   []byte
}

func (e *RevertError) Error() string {
	switch {
	case e.Reason != "":
		return "execution reverted: " + e.Reason
	case len(e.Data) > 0:
		return "execution reverted with data " + hexutil.Encode(e.Data)
	default:
		return "execution reverted"
	}
}

func (e *RevertError) Unwrap() error {
	return ErrSimulationFailure
}
