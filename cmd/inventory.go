package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hermes"
	"hermes/registry"
)

func init() {
	Command.AddCommand(&cobra.Command{
		Use:   "inventory",
		Short: "list hermes source sink filter inventory.",
		Long:  `list hermes source sink filter inventory.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				panic("inventory type can't be nil.")
			}
			var defs map[string]hermes.PropertyDef

			switch args[0] {
			case "source":
				defs = registry.ListProviderDef()
			case "sink":
				defs = registry.ListSinkDef()
			case "filter":
				defs = registry.ListFilterDef()
			default:
				panic("unknown inventory type.")
			}

			for name, def := range defs {
				fmt.Printf("%s %s:\n%s\n", name, args[0], def.Render())
			}
		}})
}
