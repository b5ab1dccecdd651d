package simplepool

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

func requireText(field string, value string) error {
	if strings.TrimSpace(value) == "" {
		return newValidationError(field, "is required")
	}
	return nil
}

func requireAddress(field string, address common.Address) error {
	if address == (common.Address{}) {
		return newValidationError(field, "must be a non-zero address")
	}
	return nil
}

func requirePositive(field string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return newValidationError(field, "must be greater than zero")
	}
	return nil
}

func validateTokenOptions(prefix string, options DeployTokenOptions) error {
	if err := requireText(prefix+"name", options.Name); err != nil {
		return err
	}
	if err := requireText(prefix+"symbol", options.Symbol); err != nil {
		return err
	}
	return requirePositive(prefix+"initial supply", options.InitialSupply)
}

func validatePoolOptions(options DeployPoolOptions) error {
	if err := requireAddress("token A", options.TokenA); err != nil {
		return err
	}
	if err := requireAddress("token B", options.TokenB); err != nil {
		return err
	}
	if options.TokenA == options.TokenB {
		return newValidationError("token B", "must differ from token A")
	}
	if err := requireText("LP name", options.LPName); err != nil {
		return err
	}
	return requireText("LP symbol", options.LPSymbol)
}
