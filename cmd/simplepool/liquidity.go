package main

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/deployments"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/shared"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/simplepool"
)

type liquidityFlags struct {
	amountA string
	amountB string
	to      string
	pool    string
	tokenA  string
	tokenB  string
}

type liquidityOutput struct {
	Pool        string `json:"pool"`
	AmountA     string `json:"amountA"`
	AmountB     string `json:"amountB"`
	To          string `json:"to"`
	TransferATx string `json:"transferATx"`
	TransferBTx string `json:"transferBTx"`
	MintTx      string `json:"mintTx"`
}

func (application *app) addLiquidityCommand() *cobra.Command {
	var flags liquidityFlags

	cmd := &cobra.Command{
		Use:   "add-liquidity",
		Short: "Transfer both tokens into the pool and mint LP tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.runAddLiquidity(cmd.Context(), flags)
		},
	}
	cmd.Flags().StringVar(&flags.amountA, "amount-a", simplepool.DefaultLiquidityAmount, "whole-token amount of token A")
	cmd.Flags().StringVar(&flags.amountB, "amount-b", simplepool.DefaultLiquidityAmount, "whole-token amount of token B")
	cmd.Flags().StringVar(&flags.to, "to", "", "LP token recipient (default: signer)")
	cmd.Flags().StringVar(&flags.pool, "pool", "", "pool address (default: latest deployment)")
	cmd.Flags().StringVar(&flags.tokenA, "token-a", "", "token A address (default: latest deployment)")
	cmd.Flags().StringVar(&flags.tokenB, "token-b", "", "token B address (default: latest deployment)")
	return cmd
}

func (application *app) runAddLiquidity(ctx context.Context, flags liquidityFlags) error {
	amountA, err := shared.ParseUnits(flags.amountA, shared.DefaultDecimals)
	if err != nil {
		return err
	}
	amountB, err := shared.ParseUnits(flags.amountB, shared.DefaultDecimals)
	if err != nil {
		return err
	}
	to, err := parseOptionalAddress("to", flags.to)
	if err != nil {
		return err
	}

	store, err := application.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	resolver := application.newRunResolver(store)
	pool, err := resolver.address(ctx, "pool", flags.pool, deployments.RolePool)
	if err != nil {
		return err
	}
	tokenA, err := resolver.address(ctx, "token-a", flags.tokenA, deployments.RoleTokenA)
	if err != nil {
		return err
	}
	tokenB, err := resolver.address(ctx, "token-b", flags.tokenB, deployments.RoleTokenB)
	if err != nil {
		return err
	}

	client, backend, err := application.openClient(ctx)
	if err != nil {
		return err
	}
	defer backend.Close()

	result, err := client.AddLiquidity(ctx, simplepool.AddLiquidityOptions{
		Pool:    pool,
		TokenA:  tokenA,
		TokenB:  tokenB,
		AmountA: amountA,
		AmountB: amountB,
		To:      to,
	})
	if err != nil {
		return err
	}

	if to == (common.Address{}) {
		to = client.Deployer()
	}
	output := liquidityOutput{
		Pool:        pool.Hex(),
		AmountA:     shared.FormatUnits(amountA, shared.DefaultDecimals),
		AmountB:     shared.FormatUnits(amountB, shared.DefaultDecimals),
		To:          to.Hex(),
		TransferATx: result.TransferA.TxHash,
		TransferBTx: result.TransferB.TxHash,
		MintTx:      result.Mint.TxHash,
	}

	if application.settings.JSON {
		return application.printJSON(output)
	}
	application.printf("Added %s A and %s B to %s, LP minted to %s in %s",
		output.AmountA, output.AmountB, output.Pool, output.To, output.MintTx)
	return nil
}
