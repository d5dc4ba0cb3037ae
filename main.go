package main

import (
	"os"

	"campusvenue/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCommand()
	root := &cobra.Command{
		Use:   "campusvenue",
		Short: "Campus venue scheduling and conflict resolution",
		Long: `campusvenue books campus venues, rejects overlapping bookings and
suggests free windows. Without a subcommand it runs the API server.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()
		},
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(serve, newSweepCommand())
	return root
}
