package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/deployments"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/shared"
)

type balancesOutput struct {
	Account string `json:"account"`
	TokenA  string `json:"tokenA"`
	TokenB  string `json:"tokenB"`
	LP      string `json:"lp"`
}

func (application *app) balancesCommand() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Print token A, token B and LP balances of an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.runBalances(cmd.Context(), account)
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "account to inspect (default: signer)")
	return cmd
}

func (application *app) runBalances(ctx context.Context, accountFlag string) error {
	account, err := parseOptionalAddress("account", accountFlag)
	if err != nil {
		return err
	}

	store, err := application.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.LatestRunWith(ctx, application.network.Name, deployments.RolePool)
	if errors.Is(err, deployments.ErrNotFound) {
		return fmt.Errorf("no pool recorded for %s; run deploy first", application.network.Name)
	}
	if err != nil {
		return err
	}
	addresses := make(map[string]common.Address, len(run.Records))
	for _, record := range run.Records {
		address, err := parseAddress(record.Role, record.Address)
		if err != nil {
			return err
		}
		addresses[record.Role] = address
	}

	client, backend, err := application.openClient(ctx)
	if err != nil {
		return err
	}
	defer backend.Close()

	if account == (common.Address{}) {
		account = client.Deployer()
	}
	output := balancesOutput{Account: account.Hex()}

	fields := []struct {
		role   string
		target *string
		lp     bool
	}{
		{role: deployments.RoleTokenA, target: &output.TokenA},
		{role: deployments.RoleTokenB, target: &output.TokenB},
		{role: deployments.RolePool, target: &output.LP, lp: true},
	}
	for _, field := range fields {
		address, ok := addresses[field.role]
		if !ok {
			continue
		}
		var balance *big.Int
		if field.lp {
			balance, err = client.LPBalanceOf(ctx, address, account)
		} else {
			balance, err = client.BalanceOf(ctx, address, account)
		}
		if err != nil {
			return err
		}
		*field.target = shared.FormatUnits(balance, shared.DefaultDecimals)
	}

	if application.settings.JSON {
		return application.printJSON(output)
	}
	application.printf("Account: %s", output.Account)
	application.printf("TokenA:  %s", output.TokenA)
	application.printf("TokenB:  %s", output.TokenB)
	application.printf("LP:      %s", output.LP)
	return nil
}
