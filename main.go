//go:build !( js || wasm)

package main

import (
	"github.com/cottand/refine/cmd"
	"github.com/spf13/cobra"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "refine [subcommand]",
	Short:        "refine\n decide linear arithmetic predicates and refinement subtyping",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.SatCmd)
	rootCmd.AddCommand(cmd.ValidCmd)
	rootCmd.AddCommand(cmd.ImpliesCmd)
	rootCmd.AddCommand(cmd.SubtypeCmd)
	rootCmd.AddCommand(cmd.CheckCmd)
}
