package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

type recordOutput struct {
	RunID       string `json:"runId"`
	Network     string `json:"network"`
	Role        string `json:"role"`
	Contract    string `json:"contract"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Address     string `json:"address"`
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	CreatedAt   string `json:"createdAt"`
}

func (application *app) deploymentsCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "deployments",
		Short: "List recorded deployments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.runDeployments(cmd.Context(), all)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list every network instead of only --network")
	return cmd
}

func (application *app) runDeployments(ctx context.Context, all bool) error {
	store, err := application.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	network := application.network.Name
	if all {
		network = ""
	}
	records, err := store.List(ctx, network)
	if err != nil {
		return err
	}

	outputs := make([]recordOutput, 0, len(records))
	for _, record := range records {
		outputs = append(outputs, recordOutput{
			RunID:       record.RunID,
			Network:     record.Network,
			Role:        record.Role,
			Contract:    record.Contract,
			Name:        record.Name,
			Symbol:      record.Symbol,
			Address:     record.Address,
			TxHash:      record.TxHash,
			BlockNumber: record.BlockNumber,
			CreatedAt:   record.CreatedAt.Format(time.RFC3339),
		})
	}

	if application.settings.JSON {
		return application.printJSON(outputs)
	}
	if len(outputs) == 0 {
		application.printf("No deployments recorded")
		return nil
	}

	writer := tabwriter.NewWriter(application.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "CREATED\tNETWORK\tROLE\tNAME\tADDRESS\tRUN")
	for _, output := range outputs {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
			output.CreatedAt, output.Network, output.Role, output.Name, output.Address, output.RunID)
	}
	return writer.Flush()
}
