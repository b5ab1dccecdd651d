package simplepool

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/chain"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/contracts"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/shared"
)

type Client struct {
	backend   chain.Backend
	artifacts contracts.Set
}

// NewClient creates a new SimplePool client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Backend == nil {
		return nil, fmt.Errorf("backend is required")
	}

	artifacts := contracts.Embedded()
	if config.Artifacts != nil {
		artifacts = *config.Artifacts
	}
	if err := contracts.ValidateToken(artifacts.Token); err != nil {
		return nil, err
	}
	if err := contracts.ValidatePool(artifacts.Pool); err != nil {
		return nil, err
	}

	return &Client{
		backend:   config.Backend,
		artifacts: artifacts,
	}, nil
}

// Backend returns the configured chain backend.
func (client *Client) Backend() chain.Backend {
	return client.backend
}

// Deployer returns the signer address used for every transaction.
func (client *Client) Deployer() common.Address {
	return client.backend.Deployer()
}

// DeployToken deploys a fixed-supply SimpleToken. The whole supply is
// minted to the deployer by the constructor.
func (client *Client) DeployToken(ctx context.Context, options DeployTokenOptions) (TokenInfo, error) {
	if err := validateTokenOptions("token ", options); err != nil {
		return TokenInfo{}, err
	}

	name := strings.TrimSpace(options.Name)
	symbol := strings.TrimSpace(options.Symbol)
	deployment, err := client.deploy(ctx, client.artifacts.Token, name, name, symbol, options.InitialSupply)
	if err != nil {
		return TokenInfo{}, err
	}

	return TokenInfo{
		Name:          name,
		Symbol:        symbol,
		InitialSupply: new(big.Int).Set(options.InitialSupply),
		Address:       deployment.Address,
		Deployment:    deployment,
	}, nil
}

// DeployPool deploys a SimplePool over two distinct tokens.
func (client *Client) DeployPool(ctx context.Context, options DeployPoolOptions) (PoolInfo, error) {
	if err := validatePoolOptions(options); err != nil {
		return PoolInfo{}, err
	}

	lpName := strings.TrimSpace(options.LPName)
	lpSymbol := strings.TrimSpace(options.LPSymbol)
	deployment, err := client.deploy(
		ctx,
		client.artifacts.Pool,
		contracts.SimplePoolName,
		options.TokenA,
		options.TokenB,
		lpName,
		lpSymbol,
	)
	if err != nil {
		return PoolInfo{}, err
	}

	return PoolInfo{
		TokenA:     options.TokenA,
		TokenB:     options.TokenB,
		LPName:     lpName,
		LPSymbol:   lpSymbol,
		Address:    deployment.Address,
		Deployment: deployment,
	}, nil
}

// Approve grants spender an allowance on token.
func (client *Client) Approve(
	ctx context.Context,
	token common.Address,
	spender common.Address,
	amount *big.Int,
) (chain.Receipt, error) {
	if err := requireAddress("token", token); err != nil {
		return chain.Receipt{}, err
	}
	if err := requireAddress("spender", spender); err != nil {
		return chain.Receipt{}, err
	}
	if err := requirePositive("amount", amount); err != nil {
		return chain.Receipt{}, err
	}
	return client.transact(ctx, token, client.artifacts.Token, contracts.MethodApprove, spender, amount)
}

// Transfer moves amount of token from the deployer to to.
func (client *Client) Transfer(
	ctx context.Context,
	token common.Address,
	to common.Address,
	amount *big.Int,
) (chain.Receipt, error) {
	if err := requireAddress("token", token); err != nil {
		return chain.Receipt{}, err
	}
	if err := requireAddress("recipient", to); err != nil {
		return chain.Receipt{}, err
	}
	if err := requirePositive("amount", amount); err != nil {
		return chain.Receipt{}, err
	}
	return client.transact(ctx, token, client.artifacts.Token, contracts.MethodTransfer, to, amount)
}

// Mint asks the pool to issue LP tokens to to for the balances it holds
// beyond its reserves.
func (client *Client) Mint(ctx context.Context, pool common.Address, to common.Address) (chain.Receipt, error) {
	if err := requireAddress("pool", pool); err != nil {
		return chain.Receipt{}, err
	}
	if err := requireAddress("recipient", to); err != nil {
		return chain.Receipt{}, err
	}
	return client.transact(ctx, pool, client.artifacts.Pool, contracts.MethodMint, to)
}

// Swap calls pool.swap. The pool must already hold an allowance for amountIn.
func (client *Client) Swap(
	ctx context.Context,
	pool common.Address,
	tokenIn common.Address,
	amountIn *big.Int,
	recipient common.Address,
) (chain.Receipt, error) {
	if err := requireAddress("pool", pool); err != nil {
		return chain.Receipt{}, err
	}
	if err := requireAddress("token in", tokenIn); err != nil {
		return chain.Receipt{}, err
	}
	if err := requirePositive("amount in", amountIn); err != nil {
		return chain.Receipt{}, err
	}
	if err := requireAddress("recipient", recipient); err != nil {
		return chain.Receipt{}, err
	}
	return client.transact(ctx, pool, client.artifacts.Pool, contracts.MethodSwap, tokenIn, amountIn, recipient)
}

// DeployStack deploys token A, token B and the pool, then seeds the pool:
// approve A, approve B, transfer A, transfer B, mint. It stops at the first
// failure; contracts that were already deployed stay deployed.
func (client *Client) DeployStack(ctx context.Context, options DeployStackOptions) (StackResult, error) {
	options = applyStackDefaults(options)
	deployer := client.backend.Deployer()
	if options.LiquidityRecipient == (common.Address{}) {
		options.LiquidityRecipient = deployer
	}

	result := StackResult{
		Deployer: deployer,
		ChainID:  client.backend.ChainID(),
	}

	reportStackProgress(options.ProgressCallback, DeployStackProgress{
		Stage:      StageDeployingTokenA,
		Percentage: 10,
		Contract:   options.TokenA.Name,
	})
	tokenA, err := client.DeployToken(ctx, options.TokenA)
	if err != nil {
		return result, err
	}
	result.TokenA = tokenA

	reportStackProgress(options.ProgressCallback, DeployStackProgress{
		Stage:      StageDeployingTokenB,
		Percentage: 25,
		Contract:   options.TokenB.Name,
	})
	tokenB, err := client.DeployToken(ctx, options.TokenB)
	if err != nil {
		return result, err
	}
	result.TokenB = tokenB

	reportStackProgress(options.ProgressCallback, DeployStackProgress{
		Stage:      StageDeployingPool,
		Percentage: 40,
		Contract:   contracts.SimplePoolName,
	})
	pool, err := client.DeployPool(ctx, DeployPoolOptions{
		TokenA:   tokenA.Address,
		TokenB:   tokenB.Address,
		LPName:   options.LPName,
		LPSymbol: options.LPSymbol,
	})
	if err != nil {
		return result, err
	}
	result.Pool = pool

	if options.SkipSeed {
		reportStackProgress(options.ProgressCallback, DeployStackProgress{
			Stage:      StageComplete,
			Percentage: 100,
			Address:    pool.Address,
		})
		return result, nil
	}

	reportStackProgress(options.ProgressCallback, DeployStackProgress{
		Stage:      StageApproving,
		Percentage: 55,
		Address:    pool.Address,
	})
	for _, step := range []struct {
		token  common.Address
		amount *big.Int
	}{
		{token: tokenA.Address, amount: options.SeedAmountA},
		{token: tokenB.Address, amount: options.SeedAmountB},
	} {
		receipt, err := client.Approve(ctx, step.token, pool.Address, step.amount)
		if err != nil {
			return result, err
		}
		result.Receipts = append(result.Receipts, receipt)
	}

	reportStackProgress(options.ProgressCallback, DeployStackProgress{
		Stage:      StageSeeding,
		Percentage: 70,
		Address:    pool.Address,
	})
	liquidity, err := client.AddLiquidity(ctx, AddLiquidityOptions{
		Pool:    pool.Address,
		TokenA:  tokenA.Address,
		TokenB:  tokenB.Address,
		AmountA: options.SeedAmountA,
		AmountB: options.SeedAmountB,
		To:      options.LiquidityRecipient,
		beforeMint: func() {
			reportStackProgress(options.ProgressCallback, DeployStackProgress{
				Stage:      StageMinting,
				Percentage: 85,
				Address:    pool.Address,
			})
		},
	})
	result.Receipts = append(result.Receipts, liquidity.receipts()...)
	if err != nil {
		return result, err
	}
	result.Seeded = true

	reportStackProgress(options.ProgressCallback, DeployStackProgress{
		Stage:      StageComplete,
		Percentage: 100,
		Address:    pool.Address,
		TxHash:     liquidity.Mint.TxHash,
	})
	return result, nil
}

// AddLiquidity transfers both amounts into the pool and mints LP tokens to
// options.To, which defaults to the deployer.
func (client *Client) AddLiquidity(ctx context.Context, options AddLiquidityOptions) (LiquidityResult, error) {
	if options.AmountA == nil {
		options.AmountA = shared.MustParseUnits(DefaultLiquidityAmount, shared.DefaultDecimals)
	}
	if options.AmountB == nil {
		options.AmountB = shared.MustParseUnits(DefaultLiquidityAmount, shared.DefaultDecimals)
	}
	if options.To == (common.Address{}) {
		options.To = client.backend.Deployer()
	}
	if err := requireAddress("pool", options.Pool); err != nil {
		return LiquidityResult{}, err
	}

	var result LiquidityResult
	var err error
	if result.TransferA, err = client.Transfer(ctx, options.TokenA, options.Pool, options.AmountA); err != nil {
		return result, err
	}
	if result.TransferB, err = client.Transfer(ctx, options.TokenB, options.Pool, options.AmountB); err != nil {
		return result, err
	}
	if options.beforeMint != nil {
		options.beforeMint()
	}
	if result.Mint, err = client.Mint(ctx, options.Pool, options.To); err != nil {
		return result, err
	}
	return result, nil
}

// SwapExactIn approves the pool for AmountIn of TokenIn and then swaps it.
// AmountIn defaults to ten whole tokens and Recipient to the deployer.
func (client *Client) SwapExactIn(ctx context.Context, options SwapOptions) (SwapResult, error) {
	if options.AmountIn == nil {
		options.AmountIn = shared.MustParseUnits(DefaultSwapAmount, shared.DefaultDecimals)
	}
	if options.Recipient == (common.Address{}) {
		options.Recipient = client.backend.Deployer()
	}
	if err := requireAddress("pool", options.Pool); err != nil {
		return SwapResult{}, err
	}

	var result SwapResult
	if !options.SkipApprove {
		approval, err := client.Approve(ctx, options.TokenIn, options.Pool, options.AmountIn)
		if err != nil {
			return result, err
		}
		result.Approve = &approval
	}

	swap, err := client.Swap(ctx, options.Pool, options.TokenIn, options.AmountIn, options.Recipient)
	if err != nil {
		return result, err
	}
	result.Swap = swap
	return result, nil
}

// BalanceOf returns the token balance of account.
func (client *Client) BalanceOf(ctx context.Context, token common.Address, account common.Address) (*big.Int, error) {
	if err := requireAddress("token", token); err != nil {
		return nil, err
	}
	return client.callAmount(ctx, token, client.artifacts.Token, contracts.MethodBalanceOf, account)
}

// LPBalanceOf returns the pool's LP token balance of account.
func (client *Client) LPBalanceOf(ctx context.Context, pool common.Address, account common.Address) (*big.Int, error) {
	if err := requireAddress("pool", pool); err != nil {
		return nil, err
	}
	return client.callAmount(ctx, pool, client.artifacts.Pool, contracts.MethodBalanceOf, account)
}

func (client *Client) deploy(
	ctx context.Context,
	artifact contracts.Artifact,
	label string,
	args ...any,
) (chain.Deployment, error) {
	if !artifact.Deployable() {
		return chain.Deployment{}, newDeploymentError(artifact.ContractName, label, chain.ErrNotDeployable)
	}
	deployment, err := client.backend.Deploy(ctx, artifact, args...)
	if err != nil {
		return chain.Deployment{}, newDeploymentError(artifact.ContractName, label, err)
	}
	return deployment, nil
}

func (client *Client) transact(
	ctx context.Context,
	target common.Address,
	artifact contracts.Artifact,
	method string,
	args ...any,
) (chain.Receipt, error) {
	receipt, err := client.backend.Transact(ctx, target, artifact, method, args...)
	if err != nil {
		return chain.Receipt{}, newTransactionError(artifact.ContractName, method, target, err)
	}
	return receipt, nil
}

func (client *Client) callAmount(
	ctx context.Context,
	target common.Address,
	artifact contracts.Artifact,
	method string,
	args ...any,
) (*big.Int, error) {
	values, err := client.backend.Call(ctx, target, artifact, method, args...)
	if err != nil {
		return nil, newTransactionError(artifact.ContractName, method, target, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("%s returned %d values, expected 1", method, len(values))
	}
	amount, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s returned %T, expected *big.Int", method, values[0])
	}
	return amount, nil
}

func applyStackDefaults(options DeployStackOptions) DeployStackOptions {
	defaultSupply := shared.MustParseUnits(DefaultInitialSupply, shared.DefaultDecimals)
	defaultSeed := shared.MustParseUnits(DefaultSeedAmount, shared.DefaultDecimals)

	options.TokenA = applyTokenDefaults(options.TokenA, DefaultTokenAName, DefaultTokenASymbol, defaultSupply)
	options.TokenB = applyTokenDefaults(options.TokenB, DefaultTokenBName, DefaultTokenBSymbol, defaultSupply)
	if strings.TrimSpace(options.LPName) == "" {
		options.LPName = DefaultLPName
	}
	if strings.TrimSpace(options.LPSymbol) == "" {
		options.LPSymbol = DefaultLPSymbol
	}
	if options.SeedAmountA == nil {
		options.SeedAmountA = defaultSeed
	}
	if options.SeedAmountB == nil {
		options.SeedAmountB = new(big.Int).Set(defaultSeed)
	}
	return options
}

func applyTokenDefaults(options DeployTokenOptions, name string, symbol string, supply *big.Int) DeployTokenOptions {
	if strings.TrimSpace(options.Name) == "" {
		options.Name = name
	}
	if strings.TrimSpace(options.Symbol) == "" {
		options.Symbol = symbol
	}
	if options.InitialSupply == nil {
		options.InitialSupply = new(big.Int).Set(supply)
	}
	return options
}

func (result LiquidityResult) receipts() []chain.Receipt {
	receipts := make([]chain.Receipt, 0, 3)
	for _, receipt := range []chain.Receipt{result.TransferA, result.TransferB, result.Mint} {
		if receipt.TxHash != "" {
			receipts = append(receipts, receipt)
		}
	}
	return receipts
}

func reportStackProgress(callback func(DeployStackProgress), progress DeployStackProgress) {
	if callback != nil {
		callback(progress)
	}
}
