package main

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/deployments"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/shared"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/simplepool"
)

type swapFlags struct {
	amount      string
	tokenIn     string
	token       string
	pool        string
	recipient   string
	skipApprove bool
}

type swapOutput struct {
	Pool      string `json:"pool"`
	TokenIn   string `json:"tokenIn"`
	AmountIn  string `json:"amountIn"`
	Recipient string `json:"recipient"`
	ApproveTx string `json:"approveTx,omitempty"`
	SwapTx    string `json:"swapTx"`
}

func (application *app) swapCommand() *cobra.Command {
	var flags swapFlags

	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Approve the pool and swap an exact input amount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.runSwap(cmd.Context(), flags)
		},
	}
	cmd.Flags().StringVar(&flags.amount, "amount", simplepool.DefaultSwapAmount, "whole-token amount to swap")
	cmd.Flags().StringVar(&flags.tokenIn, "token-in", "A", "input token: A or B")
	cmd.Flags().StringVar(&flags.token, "token", "", "input token address (overrides --token-in)")
	cmd.Flags().StringVar(&flags.pool, "pool", "", "pool address (default: latest deployment)")
	cmd.Flags().StringVar(&flags.recipient, "recipient", "", "output recipient (default: signer)")
	cmd.Flags().BoolVar(&flags.skipApprove, "skip-approve", false, "assume the allowance is already set")
	return cmd
}

func (application *app) runSwap(ctx context.Context, flags swapFlags) error {
	amountIn, err := shared.ParseUnits(flags.amount, shared.DefaultDecimals)
	if err != nil {
		return err
	}
	role, err := tokenRole(flags.tokenIn)
	if err != nil {
		return err
	}
	recipient, err := parseOptionalAddress("recipient", flags.recipient)
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
	tokenIn, err := resolver.address(ctx, "token", flags.token, role)
	if err != nil {
		return err
	}

	client, backend, err := application.openClient(ctx)
	if err != nil {
		return err
	}
	defer backend.Close()

	result, err := client.SwapExactIn(ctx, simplepool.SwapOptions{
		Pool:        pool,
		TokenIn:     tokenIn,
		AmountIn:    amountIn,
		Recipient:   recipient,
		SkipApprove: flags.skipApprove,
	})
	if result.Approve != nil {
		application.logger.Info().Str("tx", result.Approve.TxHash).Msg("approval confirmed")
	}
	if err != nil {
		return err
	}

	if recipient == (common.Address{}) {
		recipient = client.Deployer()
	}
	output := swapOutput{
		Pool:      pool.Hex(),
		TokenIn:   tokenIn.Hex(),
		AmountIn:  shared.FormatUnits(amountIn, shared.DefaultDecimals),
		Recipient: recipient.Hex(),
		SwapTx:    result.Swap.TxHash,
	}
	if result.Approve != nil {
		output.ApproveTx = result.Approve.TxHash
	}

	if application.settings.JSON {
		return application.printJSON(output)
	}
	application.printf("Swapped %s of %s for %s in %s", output.AmountIn, output.TokenIn, output.Recipient, output.SwapTx)
	return nil
}
