package main

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/deployments"
	"github.com/hashgraph-online/simplepool-sdk-go/pkg/simplepool"
)

type deployOutput struct {
	RunID    string `json:"runId,omitempty"`
	Network  string `json:"network"`
	ChainID  string `json:"chainId"`
	Deployer string `json:"deployer"`
	TokenA   string `json:"tokenA,omitempty"`
	TokenB   string `json:"tokenB,omitempty"`
	Pool     string `json:"pool,omitempty"`
	Seeded   bool   `json:"seeded"`
}

func (application *app) deployCommand() *cobra.Command {
	var skipSeed bool

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy TokenA, TokenB and the pool, then seed initial liquidity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.runDeploy(cmd.Context(), skipSeed)
		},
	}
	cmd.Flags().BoolVar(&skipSeed, "skip-seed", false, "deploy contracts without adding initial liquidity")
	return cmd
}

func (application *app) runDeploy(ctx context.Context, skipSeed bool) error {
	store, err := application.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	client, backend, err := application.openClient(ctx)
	if err != nil {
		return err
	}
	defer backend.Close()

	if !application.settings.JSON {
		application.printf("Deploying with %s", client.Deployer().Hex())
	}

	stack, deployErr := client.DeployStack(ctx, simplepool.DeployStackOptions{
		SkipSeed: skipSeed,
		ProgressCallback: func(progress simplepool.DeployStackProgress) {
			application.logger.Debug().
				Str("stage", progress.Stage).
				Int("percentage", progress.Percentage).
				Str("address", addressOrEmpty(progress.Address)).
				Msg("deploy progress")
		},
	})

	output := deployOutput{
		Network:  application.network.Name,
		ChainID:  stack.ChainID.String(),
		Deployer: stack.Deployer.Hex(),
		TokenA:   addressOrEmpty(stack.TokenA.Address),
		TokenB:   addressOrEmpty(stack.TokenB.Address),
		Pool:     addressOrEmpty(stack.Pool.Address),
		Seeded:   stack.Seeded,
	}
	if !application.settings.JSON {
		application.printDeployLines(output)
	}

	run := stackRun(application.network.Name, stack)
	if len(run.Records) > 0 {
		saved, saveErr := store.Save(ctx, run)
		if saveErr != nil {
			return errors.Join(deployErr, saveErr)
		}
		output.RunID = saved.ID
		application.logger.Info().Str("run_id", saved.ID).Str("path", store.Path()).Msg("deployment recorded")
	}

	if deployErr != nil {
		return deployErr
	}
	if application.settings.JSON {
		return application.printJSON(output)
	}
	return nil
}

func (application *app) printDeployLines(output deployOutput) {
	if output.TokenA != "" {
		application.printf("TokenA: %s", output.TokenA)
	}
	if output.TokenB != "" {
		application.printf("TokenB: %s", output.TokenB)
	}
	if output.Pool != "" {
		application.printf("Pool deployed at: %s", output.Pool)
	}
	if output.Seeded {
		application.printf("Initial liquidity added")
	}
}

// stackRun converts whatever part of the stack was deployed into a run.
func stackRun(network string, stack simplepool.StackResult) deployments.Run {
	run := deployments.Run{
		Network:  network,
		Deployer: stack.Deployer.Hex(),
	}
	if stack.ChainID != nil {
		run.ChainID = stack.ChainID.Int64()
	}

	for _, token := range []struct {
		role string
		info simplepool.TokenInfo
	}{
		{role: deployments.RoleTokenA, info: stack.TokenA},
		{role: deployments.RoleTokenB, info: stack.TokenB},
	} {
		if token.info.Address == (common.Address{}) {
			continue
		}
		run.Records = append(run.Records, deployments.Record{
			Role:        token.role,
			Contract:    token.info.Deployment.Contract,
			Name:        token.info.Name,
			Symbol:      token.info.Symbol,
			Address:     token.info.Address.Hex(),
			TxHash:      token.info.Deployment.TxHash,
			BlockNumber: token.info.Deployment.BlockNumber,
		})
	}

	if stack.Pool.Address != (common.Address{}) {
		run.Records = append(run.Records, deployments.Record{
			Role:        deployments.RolePool,
			Contract:    stack.Pool.Deployment.Contract,
			Name:        stack.Pool.LPName,
			Symbol:      stack.Pool.LPSymbol,
			Address:     stack.Pool.Address.Hex(),
			TxHash:      stack.Pool.Deployment.TxHash,
			BlockNumber: stack.Pool.Deployment.BlockNumber,
		})
	}
	return run
}

func addressOrEmpty(address common.Address) string {
	if address == (common.Address{}) {
		return ""
	}
	return address.Hex()
}
