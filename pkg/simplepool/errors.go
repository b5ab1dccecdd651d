package simplepool

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

type PoolError struct {
	Message string
	Cause   error
}

func (errorValue PoolError) Error() string {
	if errorValue.Cause == nil {
		return errorValue.Message
	}
	return fmt.Sprintf("%s: %v", errorValue.Message, errorValue.Cause)
}

func (errorValue PoolError) Unwrap() error {
	return errorValue.Cause
}

type ValidationError struct {
	PoolError
	Field string
}

type DeploymentError struct {
	PoolError
	Contract string
}

type TransactionError struct {
	PoolError
	Contract string
	Method   string
	Target   common.Address
}

func newValidationError(field string, message string) error {
	return ValidationError{
		PoolError: PoolError{Message: fmt.Sprintf("%s %s", field, message)},
		Field:     field,
	}
}

func newDeploymentError(contract string, label string, cause error) error {
	return DeploymentError{
		PoolError: PoolError{Message: fmt.Sprintf("failed to deploy %s", label), Cause: cause},
		Contract:  contract,
	}
}

func newTransactionError(contract string, method string, target common.Address, cause error) error {
	return TransactionError{
		PoolError: PoolError{
			Message: fmt.Sprintf("%s.%s on %s failed", contract, method, target.Hex()),
			Cause:   cause,
		},
		Contract: contract,
		Method:   method,
		Target:   target,
	}
}
