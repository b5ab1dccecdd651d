package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/chain"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/contracts"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/shared"
)

// DefaultReceiptTimeout bounds how long a transaction may stay unmined.
const DefaultReceiptTimeout = 2 * time.Minute

// Client is the subset of ethclient.Client the backend needs. The simulated
// backend client also satisfies it.
type Client interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type Config struct {
	// RPCURL is dialed when Client is nil.
	RPCURL     string
	Client     Client
	PrivateKey string
	// GasLimit of zero lets the node estimate gas per transaction.
	GasLimit       uint64
	ReceiptTimeout time.Duration
}

type Backend struct {
	client      Client
	closeClient func()
	transactor  *bind.TransactOpts
	deployer    common.Address
	chainID     *big.Int

	gasLimit       uint64
	receiptTimeout time.Duration
}

var _ chain.Backend = (*Backend)(nil)

// NewBackend connects to the node, reads its chain ID and prepares a signer.
func NewBackend(ctx context.Context, config Config) (*Backend, error) {
	key, err := shared.ParseECDSAPrivateKey(config.PrivateKey)
	if err != nil {
		return nil, err
	}

	client := config.Client
	closeClient := func() {}
	if client == nil {
		rpcURL := strings.TrimSpace(config.RPCURL)
		if rpcURL == "" {
			return nil, fmt.Errorf("rpc URL is required")
		}
		dialed, err := ethclient.DialContext(ctx, rpcURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
		}
		client = dialed
		closeClient = dialed.Close
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		closeClient()
		return nil, fmt.Errorf("failed to read chain ID: %w", err)
	}

	transactor, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		closeClient()
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	receiptTimeout := config.ReceiptTimeout
	if receiptTimeout <= 0 {
		receiptTimeout = DefaultReceiptTimeout
	}

	return &Backend{
		client:         client,
		closeClient:    closeClient,
		transactor:     transactor,
		deployer:       crypto.PubkeyToAddress(key.PublicKey),
		chainID:        chainID,
		gasLimit:       config.GasLimit,
		receiptTimeout: receiptTimeout,
	}, nil
}

// Deployer returns the signer address.
func (backend *Backend) Deployer() common.Address {
	return backend.deployer
}

// ChainID returns the chain ID reported by the node.
func (backend *Backend) ChainID() *big.Int {
	return new(big.Int).Set(backend.chainID)
}

// Deploy sends the creation transaction and waits for it to be mined.
func (backend *Backend) Deploy(
	ctx context.Context,
	artifact contracts.Artifact,
	args ...any,
) (chain.Deployment, error) {
	if !artifact.Deployable() {
		return chain.Deployment{}, fmt.Errorf("%s: %w", artifact.ContractName, chain.ErrNotDeployable)
	}

	address, transaction, _, err := bind.DeployContract(
		backend.transactOpts(ctx),
		artifact.ABI,
		artifact.Bytecode,
		backend.client,
		args...,
	)
	if err != nil {
		return chain.Deployment{}, fmt.Errorf("failed to send %s deployment: %w", artifact.ContractName, err)
	}

	receipt, err := backend.waitForReceipt(ctx, transaction, "")
	if err != nil {
		return chain.Deployment{}, err
	}
	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}

	return chain.Deployment{
		Contract:    artifact.ContractName,
		Address:     address,
		TxHash:      transaction.Hash().Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}, nil
}

// Transact sends a state-changing call and waits for it to be mined.
func (backend *Backend) Transact(
	ctx context.Context,
	target common.Address,
	artifact contracts.Artifact,
	method string,
	args ...any,
) (chain.Receipt, error) {
	contract := bind.NewBoundContract(target, artifact.ABI, backend.client, backend.client, backend.client)

	transaction, err := contract.Transact(backend.transactOpts(ctx), method, args...)
	if err != nil {
		return chain.Receipt{}, fmt.Errorf("failed to send %s: %w", method, err)
	}

	receipt, err := backend.waitForReceipt(ctx, transaction, method)
	if err != nil {
		return chain.Receipt{}, err
	}

	return chain.Receipt{
		Contract:    artifact.ContractName,
		Method:      method,
		Target:      target,
		TxHash:      transaction.Hash().Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}, nil
}

// Call performs a read-only call from the signer address.
func (backend *Backend) Call(
	ctx context.Context,
	target common.Address,
	artifact contracts.Artifact,
	method string,
	args ...any,
) ([]any, error) {
	contract := bind.NewBoundContract(target, artifact.ABI, backend.client, backend.client, backend.client)

	var results []any
	opts := &bind.CallOpts{Context: ctx, From: backend.deployer}
	if err := contract.Call(opts, &results, method, args...); err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	return results, nil
}

// Close releases the RPC connection when the backend dialed it.
func (backend *Backend) Close() {
	backend.closeClient()
}

func (backend *Backend) transactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *backend.transactor
	opts.Context = ctx
	opts.GasLimit = backend.gasLimit
	return &opts
}

// waitForReceipt retries through transient receipt errors such as a node
// that is still indexing transactions, until the receipt timeout elapses.
func (backend *Backend) waitForReceipt(
	ctx context.Context,
	transaction *types.Transaction,
	method string,
) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, backend.receiptTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, backend.client, transaction)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", chain.ErrReceiptTimeout, transaction.Hash().Hex())
		}
		return nil, fmt.Errorf("failed to wait for %s: %w", transaction.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, chain.RevertError{
			TxHash: transaction.Hash().Hex(),
			Method: chain.MethodLabel(method),
		}
	}
	return receipt, nil
}
