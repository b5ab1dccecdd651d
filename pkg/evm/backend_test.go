package evm

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/chain"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/contracts"
)

// answerBytecode deploys a contract whose every call returns uint256(42).
const answerBytecode = "600a600c600039600a6000f3" + "602a60005260206000f3"

// revertBytecode deploys a contract whose every call reverts.
const revertBytecode = "6005600c60003960056000f3" + "60006000fd"

type simulatedChain struct {
	backend    *Backend
	sim        *simulated.Backend
	privateKey string
}

// indexingClient answers the first receipt lookups the way a node does while
// its transaction indexer is still catching up.
type indexingClient struct {
	Client
	pending atomic.Int32
	lookups atomic.Int32
}

func (client *indexingClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	client.lookups.Add(1)
	if client.pending.Add(-1) >= 0 {
		return nil, errors.New("transaction indexing is in progress")
	}
	return client.Client.TransactionReceipt(ctx, txHash)
}

func newSimulatedChain(t *testing.T, config Config, autoCommit bool) simulatedChain {
	t.Helper()

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	funds, _ := new(big.Int).SetString("1000000000000000000000", 10)
	sim := simulated.NewBackend(types.GenesisAlloc{
		crypto.PubkeyToAddress(key.PublicKey): {Balance: funds},
	})
	t.Cleanup(func() {
		_ = sim.Close()
	})

	if autoCommit {
		stop := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			ticker := time.NewTicker(5 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					sim.Commit()
				}
			}
		}()
		t.Cleanup(func() {
			close(stop)
			<-done
		})
	}

	config.Client = sim.Client()
	config.PrivateKey = hex.EncodeToString(crypto.FromECDSA(key))
	if config.ReceiptTimeout == 0 {
		config.ReceiptTimeout = 30 * time.Second
	}

	backend, err := NewBackend(context.Background(), config)
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}
	t.Cleanup(backend.Close)

	return simulatedChain{backend: backend, sim: sim, privateKey: config.PrivateKey}
}

func tokenArtifact(t *testing.T, bytecode string) contracts.Artifact {
	t.Helper()

	code, err := hex.DecodeString(bytecode)
	if err != nil {
		t.Fatalf("decode bytecode: %v", err)
	}
	artifact := contracts.SimpleToken()
	artifact.Bytecode = code
	return artifact
}

func TestNewBackendRequiresPrivateKey(t *testing.T) {
	_, err := NewBackend(context.Background(), Config{RPCURL: "http://127.0.0.1:8545"})
	if err == nil {
		t.Fatal("expected error for missing private key")
	}
}

func TestNewBackendRequiresEndpoint(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	_, err = NewBackend(context.Background(), Config{
		PrivateKey: hex.EncodeToString(crypto.FromECDSA(key)),
	})
	if err == nil || !strings.Contains(err.Error(), "rpc URL is required") {
		t.Fatalf("expected missing rpc URL error, got %v", err)
	}
}

func TestBackendReadsChainID(t *testing.T) {
	simChain := newSimulatedChain(t, Config{}, true)

	if simChain.backend.ChainID().Int64() != 1337 {
		t.Fatalf("unexpected chain ID %s", simChain.backend.ChainID())
	}

	simChain.backend.ChainID().SetInt64(1)
	if simChain.backend.ChainID().Int64() != 1337 {
		t.Fatal("ChainID must return a copy")
	}
}

func TestDeployTransactAndCall(t *testing.T) {
	simChain := newSimulatedChain(t, Config{}, true)
	ctx := context.Background()
	artifact := tokenArtifact(t, answerBytecode)

	deployment, err := simChain.backend.Deploy(ctx, artifact, "TokenA", "TKA", big.NewInt(1000))
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if deployment.Address == (common.Address{}) {
		t.Fatal("expected deployed address")
	}
	if deployment.Contract != contracts.SimpleTokenName {
		t.Fatalf("unexpected contract name %q", deployment.Contract)
	}
	if deployment.BlockNumber == 0 || deployment.TxHash == "" {
		t.Fatalf("expected mined deployment, got %+v", deployment)
	}

	code, err := simChain.sim.Client().CodeAt(ctx, deployment.Address, nil)
	if err != nil {
		t.Fatalf("CodeAt failed: %v", err)
	}
	if hex.EncodeToString(code) != "602a60005260206000f3" {
		t.Fatalf("unexpected runtime code %x", code)
	}

	spender := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	receipt, err := simChain.backend.Transact(
		ctx,
		deployment.Address,
		artifact,
		contracts.MethodApprove,
		spender,
		big.NewInt(10),
	)
	if err != nil {
		t.Fatalf("Transact failed: %v", err)
	}
	if receipt.Method != contracts.MethodApprove || receipt.Target != deployment.Address {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if receipt.BlockNumber < deployment.BlockNumber {
		t.Fatalf("receipt block %d precedes deployment block %d", receipt.BlockNumber, deployment.BlockNumber)
	}

	results, err := simChain.backend.Call(
		ctx,
		deployment.Address,
		artifact,
		contracts.MethodBalanceOf,
		simChain.backend.Deployer(),
	)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	balance, ok := results[0].(*big.Int)
	if !ok || balance.Int64() != 42 {
		t.Fatalf("unexpected balanceOf result %v", results)
	}
}

func TestDeployRequiresBytecode(t *testing.T) {
	simChain := newSimulatedChain(t, Config{}, true)

	_, err := simChain.backend.Deploy(context.Background(), contracts.SimpleToken(), "TokenA", "TKA", big.NewInt(1))
	if !errors.Is(err, chain.ErrNotDeployable) {
		t.Fatalf("expected ErrNotDeployable, got %v", err)
	}
}

func TestTransactUnknownMethod(t *testing.T) {
	simChain := newSimulatedChain(t, Config{}, true)
	artifact := tokenArtifact(t, answerBytecode)

	_, err := simChain.backend.Transact(
		context.Background(),
		common.HexToAddress("0x00000000000000000000000000000000000000bb"),
		artifact,
		"burn",
	)
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestTransactRevertReportsRevertError(t *testing.T) {
	simChain := newSimulatedChain(t, Config{GasLimit: 200000}, true)
	ctx := context.Background()
	artifact := tokenArtifact(t, revertBytecode)

	deployment, err := simChain.backend.Deploy(ctx, artifact, "TokenA", "TKA", big.NewInt(1))
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}

	_, err = simChain.backend.Transact(
		ctx,
		deployment.Address,
		artifact,
		contracts.MethodTransfer,
		common.HexToAddress("0x00000000000000000000000000000000000000cc"),
		big.NewInt(1),
	)
	if !errors.Is(err, chain.ErrReverted) {
		t.Fatalf("expected ErrReverted, got %v", err)
	}

	var revertErr chain.RevertError
	if !errors.As(err, &revertErr) {
		t.Fatalf("expected RevertError, got %T", err)
	}
	if revertErr.Method != contracts.MethodTransfer || revertErr.TxHash == "" {
		t.Fatalf("unexpected revert error %+v", revertErr)
	}
}

func TestDeployWaitsThroughReceiptIndexing(t *testing.T) {
	simChain := newSimulatedChain(t, Config{}, true)
	client := &indexingClient{Client: simChain.sim.Client()}
	client.pending.Store(2)

	backend, err := NewBackend(context.Background(), Config{
		Client:         client,
		PrivateKey:     simChain.privateKey,
		ReceiptTimeout: 30 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}

	deployment, err := backend.Deploy(context.Background(), tokenArtifact(t, answerBytecode), "TokenA", "TKA", big.NewInt(1))
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if deployment.Address == (common.Address{}) || deployment.BlockNumber == 0 {
		t.Fatalf("unexpected deployment %+v", deployment)
	}
	if client.lookups.Load() < 3 {
		t.Fatalf("expected receipt retries, got %d lookups", client.lookups.Load())
	}
}

func TestDeployTimesOutWithoutBlocks(t *testing.T) {
	simChain := newSimulatedChain(t, Config{ReceiptTimeout: 50 * time.Millisecond}, false)
	artifact := tokenArtifact(t, answerBytecode)

	_, err := simChain.backend.Deploy(context.Background(), artifact, "TokenA", "TKA", big.NewInt(1))
	if !errors.Is(err, chain.ErrReceiptTimeout) {
		t.Fatalf("expected ErrReceiptTimeout, got %v", err)
	}
}

func TestDeployHonoursCancelledContext(t *testing.T) {
	simChain := newSimulatedChain(t, Config{}, false)
	artifact := tokenArtifact(t, answerBytecode)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := simChain.backend.Deploy(ctx, artifact, "TokenA", "TKA", big.NewInt(1))
	if err == nil || errors.Is(err, chain.ErrReceiptTimeout) {
		t.Fatalf("expected caller context error, got %v", err)
	}
}
