package main

import "github.com/spf13/cobra"

func (application *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the simplepool version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			application.printf("simplepool %s", version)
		},
	}
}
