package simplepool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/chain"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/contracts"
)

const (
	DefaultTokenAName   = "TokenA"
	DefaultTokenASymbol = "TKA"
	DefaultTokenBName   = "TokenB"
	DefaultTokenBSymbol = "TKB"
	DefaultLPName       = "LP Token"
	DefaultLPSymbol     = "LPT"

	// Whole-token amounts at 18 decimals.
	DefaultInitialSupply   = "1000000"
	DefaultSeedAmount      = "1000"
	DefaultSwapAmount      = "10"
	DefaultLiquidityAmount = "5"
)

const (
	StageDeployingTokenA = "deploying-token-a"
	StageDeployingTokenB = "deploying-token-b"
	StageDeployingPool   = "deploying-pool"
	StageApproving       = "approving"
	StageSeeding         = "seeding"
	StageMinting         = "minting"
	StageComplete        = "complete"
)

type ClientConfig struct {
	Backend chain.Backend
	// Artifacts defaults to the embedded ABIs, which cannot deploy.
	Artifacts *contracts.Set
}

type DeployTokenOptions struct {
	Name          string
	Symbol        string
	InitialSupply *big.Int
}

type TokenInfo struct {
	Name          string
	Symbol        string
	InitialSupply *big.Int
	Address       common.Address
	Deployment    chain.Deployment
}

type DeployPoolOptions struct {
	TokenA   common.Address
	TokenB   common.Address
	LPName   string
	LPSymbol string
}

type PoolInfo struct {
	TokenA     common.Address
	TokenB     common.Address
	LPName     string
	LPSymbol   string
	Address    common.Address
	Deployment chain.Deployment
}

type DeployStackProgress struct {
	Stage      string
	Percentage int
	Contract   string
	Address    common.Address
	TxHash     string
}

type DeployStackOptions struct {
	TokenA      DeployTokenOptions
	TokenB      DeployTokenOptions
	LPName      string
	LPSymbol    string
	SeedAmountA *big.Int
	SeedAmountB *big.Int
	// LiquidityRecipient receives the initial LP tokens; zero means the deployer.
	LiquidityRecipient common.Address
	SkipSeed           bool
	ProgressCallback   func(DeployStackProgress)
}

type StackResult struct {
	Deployer common.Address
	ChainID  *big.Int
	TokenA   TokenInfo
	TokenB   TokenInfo
	Pool     PoolInfo
	Seeded   bool
	// Receipts holds the seeding transactions in the order they were sent.
	Receipts []chain.Receipt
}

type AddLiquidityOptions struct {
	Pool    common.Address
	TokenA  common.Address
	TokenB  common.Address
	AmountA *big.Int
	AmountB *big.Int
	To      common.Address

	beforeMint func()
}

type LiquidityResult struct {
	TransferA chain.Receipt
	TransferB chain.Receipt
	Mint      chain.Receipt
}

type SwapOptions struct {
	Pool        common.Address
	TokenIn     common.Address
	AmountIn    *big.Int
	Recipient   common.Address
	SkipApprove bool
}

type SwapResult struct {
	Approve *chain.Receipt
	Swap    chain.Receipt
}
