package main

import (
	_c "context"

	"github.com/spf13/cobra"

	"hermes/runtime"
)

func init() {
	Command.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "run one join job",
		Long:  `config sources expression sink, run the join job`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				panic("job file can't be nil")
			}
			name, ext, dir, err := runtime.JobFileParts(args[0])
			if err != nil {
				panic(err)
			}
			job, err := runtime.New(_c.Background(), name, ext, dir)
			if err != nil {
				panic(err)
			}
			if err := job.Serve(); err != nil {
				panic(err)
			}
		},
	})
}
