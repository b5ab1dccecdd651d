package simplepool

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/chain"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/contracts"
)

type fakeBackend struct {
	deployer common.Address
	calls    []string
	next     int
	failOn   string
	balances map[common.Address]*big.Int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		deployer: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		balances: map[common.Address]*big.Int{},
	}
}

func (backend *fakeBackend) Deployer() common.Address { return backend.deployer }

func (backend *fakeBackend) ChainID() *big.Int { return big.NewInt(31337) }

func (backend *fakeBackend) Deploy(
	_ context.Context,
	artifact contracts.Artifact,
	args ...any,
) (chain.Deployment, error) {
	call := fmt.Sprintf("deploy %s(%s)", artifact.ContractName, formatArgs(args))
	backend.calls = append(backend.calls, call)
	if backend.failOn != "" && strings.HasPrefix(call, backend.failOn) {
		return chain.Deployment{}, chain.RevertError{TxHash: "0xdead", Method: "constructor"}
	}

	backend.next++
	return chain.Deployment{
		Contract:    artifact.ContractName,
		Address:     common.BigToAddress(big.NewInt(int64(0x1000 + backend.next))),
		TxHash:      fmt.Sprintf("0x%02x", backend.next),
		BlockNumber: uint64(backend.next),
	}, nil
}

func (backend *fakeBackend) Transact(
	_ context.Context,
	target common.Address,
	artifact contracts.Artifact,
	method string,
	args ...any,
) (chain.Receipt, error) {
	call := fmt.Sprintf("%s %s(%s)", shortAddress(target), method, formatArgs(args))
	backend.calls = append(backend.calls, call)
	if backend.failOn != "" && strings.HasPrefix(call, backend.failOn) {
		return chain.Receipt{}, chain.RevertError{TxHash: "0xdead", Method: method}
	}

	backend.next++
	return chain.Receipt{
		Contract:    artifact.ContractName,
		Method:      method,
		Target:      target,
		TxHash:      fmt.Sprintf("0x%02x", backend.next),
		BlockNumber: uint64(backend.next),
	}, nil
}

func (backend *fakeBackend) Call(
	_ context.Context,
	target common.Address,
	_ contracts.Artifact,
	method string,
	args ...any,
) ([]any, error) {
	backend.calls = append(backend.calls, fmt.Sprintf("call %s %s(%s)", shortAddress(target), method, formatArgs(args)))
	balance, ok := backend.balances[target]
	if !ok {
		return nil, fmt.Errorf("execution reverted")
	}
	return []any{balance}, nil
}

func (backend *fakeBackend) Close() {}

func formatArgs(args []any) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		switch value := arg.(type) {
		case common.Address:
			parts = append(parts, shortAddress(value))
		default:
			parts = append(parts, fmt.Sprint(value))
		}
	}
	return strings.Join(parts, ",")
}

// shortAddress renders the fake's sequential addresses as 0x1001, 0x1002 and
// the deployer as "deployer".
func shortAddress(address common.Address) string {
	if address == common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266") {
		return "deployer"
	}
	return "0x" + strings.TrimLeft(strings.TrimPrefix(strings.ToLower(address.Hex()), "0x"), "0")
}

func deployableSet() *contracts.Set {
	set := contracts.Embedded()
	set.Token.Bytecode = []byte{0x00}
	set.Pool.Bytecode = []byte{0x00}
	return &set
}
