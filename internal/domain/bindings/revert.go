package bindings

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// DecodeRevertReason turns raw revert data into a readable reason. It understands
// Error(string), Panic(uint256) and the proxy deployer's custom errors, and
// returns "" for anything else.
func DecodeRevertReason(data []byte) string {
	if len(data) < 4 {
		return ""
	}
	if reason, err := abi.UnpackRevert(data); err == nil {
		return reason
	}

	decoded, err := NewDeterministicUUPSProxyDeployer().UnpackError(data)
	if err != nil {
		return ""
	}
	switch e := decoded.(type) {
	case *DeterministicUUPSProxyDeployerMismatchedAddress:
		return fmt.Sprintf("MismatchedAddress(expected=%s, actual=%s)", e.Expected.Hex(), e.Actual.Hex())
	case *DeterministicUUPSProxyDeployerFailedToInitGenericDeployedContract:
		return "FailedToInitGenericDeployedContract()"
	}
	return ""
}
