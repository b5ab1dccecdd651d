package main

import (
	"github.com/spf13/cobra"

	"github.com/hashgraph-online/simplepool-sdk-go/pkg/shared"
)

func (application *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "simplepool",
		Short:         "Deploy and drive SimpleToken / SimplePool contracts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return application.configure(cmd)
		},
	}
	registerFlags(root)

	root.AddCommand(application.deployCommand())
	root.AddCommand(application.swapCommand())
	root.AddCommand(application.addLiquidityCommand())
	root.AddCommand(application.deploymentsCommand())
	root.AddCommand(application.balancesCommand())
	root.AddCommand(application.versionCommand())
	return root
}

func (application *app) configure(cmd *cobra.Command) error {
	resolved, err := loadSettings(application.viper, cmd)
	if err != nil {
		return err
	}

	network, err := shared.ResolveNetwork(resolved.Network, resolved.RPCURL)
	if err != nil {
		return err
	}

	application.settings = resolved
	application.network = network
	application.logger = newLogger(application.stderr, resolved.level(), resolved.JSON)
	application.logger.Debug().
		Str("network", network.Name).
		Str("rpc_url", network.RPCURL).
		Str("data_dir", resolved.DataDir).
		Msg("settings loaded")
	return nil
}
