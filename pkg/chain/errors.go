package chain

import (
	"errors"
	"fmt"
)

var (
	ErrReverted       = errors.New("transaction reverted")
	ErrReceiptTimeout = errors.New("timed out waiting for transaction receipt")
	ErrNotDeployable  = errors.New("artifact has no bytecode")
)

// RevertError reports a transaction that was mined but failed.
type RevertError struct {
	TxHash string
	Method string
	Reason string
}

func (errorValue RevertError) Error() string {
	message := fmt.Sprintf("%s reverted in transaction %s", errorValue.Method, errorValue.TxHash)
	if errorValue.Reason != "" {
		message = fmt.Sprintf("%s: %s", message, errorValue.Reason)
	}
	return message
}

func (errorValue RevertError) Unwrap() error {
	return ErrReverted
}

// MethodLabel names a call for errors and receipts; the constructor has no
// method name in the ABI.
func MethodLabel(method string) string {
	if method == "" {
		return "constructor"
	}
	return method
}
