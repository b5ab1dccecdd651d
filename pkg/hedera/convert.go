package hedera

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	hederasdk "github.com/hashgraph/hedera-sdk-go/v2"
)

// ContractIDFromAddress converts an EVM address into a ContractID. Long-zero
// addresses carry shard, realm and number; anything else is an EVM alias on
// shard 0, realm 0.
func ContractIDFromAddress(address common.Address) (hederasdk.ContractID, error) {
	if address == (common.Address{}) {
		return hederasdk.ContractID{}, fmt.Errorf("contract address is required")
	}

	encoded := strings.TrimPrefix(strings.ToLower(address.Hex()), "0x")
	var contractID hederasdk.ContractID
	var err error
	if isLongZero(address) {
		contractID, err = hederasdk.ContractIDFromSolidityAddress(encoded)
	} else {
		contractID, err = hederasdk.ContractIDFromEvmAddress(0, 0, encoded)
	}
	if err != nil {
		return hederasdk.ContractID{}, fmt.Errorf("invalid contract address %s: %w", address.Hex(), err)
	}
	return contractID, nil
}

// IsContractRevert reports whether err is a CONTRACT_REVERT_EXECUTED receipt.
func IsContractRevert(err error) bool {
	var statusErr hederasdk.ErrHederaReceiptStatus
	if errors.As(err, &statusErr) {
		return statusErr.Status == hederasdk.StatusContractRevertExecuted
	}
	return false
}

func isLongZero(address common.Address) bool {
	for _, value := range address[:12] {
		if value != 0 {
			return false
		}
	}
	return true
}
