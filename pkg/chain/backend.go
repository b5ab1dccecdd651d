package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/contracts"
)

// Backend executes contract operations for a single signer. Deploy and
// Transact return only after the transaction is confirmed.
type Backend interface {
	Deployer() common.Address
	ChainID() *big.Int
	Deploy(ctx context.Context, artifact contracts.Artifact, args ...any) (Deployment, error)
	Transact(ctx context.Context, target common.Address, artifact contracts.Artifact, method string, args ...any) (Receipt, error)
	Call(ctx context.Context, target common.Address, artifact contracts.Artifact, method string, args ...any) ([]any, error)
	Close()
}

type Deployment struct {
	Contract    string
	Address     common.Address
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
}

type Receipt struct {
	Contract    string
	Method      string
	Target      common.Address
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
}
