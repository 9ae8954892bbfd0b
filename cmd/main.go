package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "hermes/stream"
)

var Command = &cobra.Command{
	Use:   "hermes",
	Short: "hermes composable sorted merge join",
	Long:  `hermes joins key sorted partitioned inputs per a composition expression`,
}

func main() {
	if err := Command.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
