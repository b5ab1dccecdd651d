package hedera

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	hederasdk "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/chain"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/contracts"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/mirror"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/shared"
)

const DefaultGas int64 = 3_000_000

type Config struct {
	Network            string
	OperatorAccountID  string
	OperatorPrivateKey string
	MirrorBaseURL      string
	MirrorAPIKey       string
	// Gas applies to every create, execute and call.
	Gas int64
}

type Backend struct {
	hederaClient *hederasdk.Client
	mirrorClient *mirror.Client
	operatorID   hederasdk.AccountID
	network      string
	deployer     common.Address
	chainID      *big.Int
	gas          int64
}

var _ chain.Backend = (*Backend)(nil)

// NewBackend creates a Backend for the operator account.
func NewBackend(ctx context.Context, config Config) (*Backend, error) {
	network, err := shared.NormalizeHederaNetwork(config.Network)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(config.OperatorAccountID) == "" {
		return nil, fmt.Errorf("operator account ID is required")
	}
	if strings.TrimSpace(config.OperatorPrivateKey) == "" {
		return nil, fmt.Errorf("operator private key is required")
	}

	operatorID, err := hederasdk.AccountIDFromString(strings.TrimSpace(config.OperatorAccountID))
	if err != nil {
		return nil, fmt.Errorf("invalid operator account ID: %w", err)
	}
	operatorKey, err := shared.ParseHederaPrivateKey(config.OperatorPrivateKey)
	if err != nil {
		return nil, err
	}

	resolved, err := shared.ResolveNetwork("hedera-"+network, "")
	if err != nil {
		return nil, err
	}

	mirrorClient, err := mirror.NewClient(mirror.Config{
		Network: network,
		BaseURL: config.MirrorBaseURL,
		APIKey:  config.MirrorAPIKey,
	})
	if err != nil {
		return nil, err
	}

	hederaClient, err := shared.NewHederaClient(network)
	if err != nil {
		return nil, err
	}
	hederaClient.SetOperator(operatorID, operatorKey)

	gas := config.Gas
	if gas <= 0 {
		gas = DefaultGas
	}

	return &Backend{
		hederaClient: hederaClient,
		mirrorClient: mirrorClient,
		operatorID:   operatorID,
		network:      network,
		deployer:     resolveOperatorAddress(ctx, mirrorClient, operatorID),
		chainID:      resolved.ChainID,
		gas:          gas,
	}, nil
}

// MirrorClient returns the configured mirror node client.
func (backend *Backend) MirrorClient() *mirror.Client {
	return backend.mirrorClient
}

func (backend *Backend) Deployer() common.Address {
	return backend.deployer
}

func (backend *Backend) ChainID() *big.Int {
	return new(big.Int).Set(backend.chainID)
}

// Deploy uploads the bytecode and creates the contract in one flow.
func (backend *Backend) Deploy(
	ctx context.Context,
	artifact contracts.Artifact,
	args ...any,
) (chain.Deployment, error) {
	if !artifact.Deployable() {
		return chain.Deployment{}, fmt.Errorf("%s: %w", artifact.ContractName, chain.ErrNotDeployable)
	}
	if err := ctx.Err(); err != nil {
		return chain.Deployment{}, err
	}

	constructorParameters, err := artifact.ABI.Pack("", args...)
	if err != nil {
		return chain.Deployment{}, fmt.Errorf("failed to encode %s constructor: %w", artifact.ContractName, err)
	}

	response, err := hederasdk.NewContractCreateFlow().
		SetBytecode(artifact.Bytecode).
		SetGas(backend.gas).
		SetConstructorParametersRaw(constructorParameters).
		Execute(backend.hederaClient)
	if err != nil {
		return chain.Deployment{}, fmt.Errorf("failed to create %s: %w", artifact.ContractName, err)
	}

	receipt, err := response.GetReceipt(backend.hederaClient)
	if err != nil {
		return chain.Deployment{}, backend.receiptError(ctx, response.TransactionID.String(), "", err)
	}
	if receipt.ContractID == nil {
		return chain.Deployment{}, fmt.Errorf("create %s receipt did not include contract ID", artifact.ContractName)
	}

	return chain.Deployment{
		Contract: artifact.ContractName,
		Address:  common.HexToAddress(receipt.ContractID.ToSolidityAddress()),
		TxHash:   response.TransactionID.String(),
	}, nil
}

// Transact executes a contract function and waits for its receipt.
func (backend *Backend) Transact(
	ctx context.Context,
	target common.Address,
	artifact contracts.Artifact,
	method string,
	args ...any,
) (chain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return chain.Receipt{}, err
	}

	contractID, err := ContractIDFromAddress(target)
	if err != nil {
		return chain.Receipt{}, err
	}
	functionParameters, err := artifact.ABI.Pack(method, args...)
	if err != nil {
		return chain.Receipt{}, fmt.Errorf("failed to encode %s: %w", method, err)
	}

	response, err := hederasdk.NewContractExecuteTransaction().
		SetContractID(contractID).
		SetGas(uint64(backend.gas)).
		SetFunctionParameters(functionParameters).
		Execute(backend.hederaClient)
	if err != nil {
		return chain.Receipt{}, fmt.Errorf("failed to execute %s: %w", method, err)
	}

	if _, err := response.GetReceipt(backend.hederaClient); err != nil {
		return chain.Receipt{}, backend.receiptError(ctx, response.TransactionID.String(), method, err)
	}

	return chain.Receipt{
		Contract: artifact.ContractName,
		Method:   method,
		Target:   target,
		TxHash:   response.TransactionID.String(),
	}, nil
}

// Call runs a local contract query and decodes the outputs.
func (backend *Backend) Call(
	ctx context.Context,
	target common.Address,
	artifact contracts.Artifact,
	method string,
	args ...any,
) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contractID, err := ContractIDFromAddress(target)
	if err != nil {
		return nil, err
	}
	functionParameters, err := artifact.ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", method, err)
	}

	result, err := hederasdk.NewContractCallQuery().
		SetContractID(contractID).
		SetGas(uint64(backend.gas)).
		SetFunctionParameters(functionParameters).
		Execute(backend.hederaClient)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}

	values, err := artifact.ABI.Unpack(method, result.ContractCallResult)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return values, nil
}

func (backend *Backend) Close() {
	_ = backend.hederaClient.Close()
}

// receiptError maps a reverted receipt to chain.RevertError, attaching the
// mirror node's error message when it is available.
func (backend *Backend) receiptError(ctx context.Context, transactionID string, method string, err error) error {
	if !IsContractRevert(err) {
		return fmt.Errorf("failed to get %s receipt: %w", chain.MethodLabel(method), err)
	}

	revertErr := chain.RevertError{
		TxHash: transactionID,
		Method: chain.MethodLabel(method),
	}
	if result, mirrorErr := backend.mirrorClient.GetContractResult(ctx, transactionID); mirrorErr == nil {
		revertErr.Reason = strings.TrimSpace(result.ErrorMessage)
	}
	return revertErr
}

func resolveOperatorAddress(ctx context.Context, mirrorClient *mirror.Client, operatorID hederasdk.AccountID) common.Address {
	account, err := mirrorClient.GetAccount(ctx, operatorID.String())
	if err == nil && common.IsHexAddress(account.EvmAddress) {
		return common.HexToAddress(account.EvmAddress)
	}
	return common.HexToAddress(operatorID.ToSolidityAddress())
}
