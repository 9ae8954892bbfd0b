package main

import (
	_c "context"

	"github.com/spf13/cobra"

	"hermes/runtime"
)

func init() {
	var logLevel string
	spoolCmd := &cobra.Command{
		Use:   "spool",
		Short: "watch a directory and run every job file dropped in",
		Long:  `watch a directory and run every job file dropped in`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				panic("spool directory can't be nil")
			}
			if err := runtime.NewSpooler(_c.Background(), args[0], logLevel).Serve(); err != nil {
				panic(err)
			}
		},
	}
	spoolCmd.Flags().StringVar(&logLevel, "log-level", "info", "spooler log level")
	Command.AddCommand(spoolCmd)
}
