package cmd

import (
	"fmt"
	"github.com/cottand/refine/refine"
	"github.com/spf13/cobra"
)

var SubtypeCmd = newSubtypeCmd()

func newSubtypeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:          "subtype 'sub' 'super'",
		Short:        "Decide whether one refinement type is a subtype of another",
		Long:         "Decide whether one refinement type is a subtype of another, for example\n\n  refine subtype '{#v : Int | #v > 0}' '{#v : Int | #v >= 0}'",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
	}
	flags := addCommonFlags(c)
	join := c.Flags().BoolP("join", "j", false, "also print the least upper bound of both types")
	c.RunE = func(c *cobra.Command, args []string) error {
		cfg, err := flags.setup(c)
		if err != nil {
			return err
		}
		sub, err := refine.ParseType(args[0])
		if err != nil {
			return fmt.Errorf("could not read subtype: %w", err)
		}
		super, err := refine.ParseType(args[1])
		if err != nil {
			return fmt.Errorf("could not read supertype: %w", err)
		}
		checker := refine.Checker{Solver: cfg.Solver()}
		ok, err := checker.IsSubtype(sub, super)
		if err != nil {
			return fmt.Errorf("could not decide subtyping: %w", err)
		}
		printLine(c, sub.String(), verdict(ok, "<:", "</:"), super.String())

		if *join {
			joined, err := checker.Join(sub, super)
			if err != nil {
				return fmt.Errorf("could not join types: %w", err)
			}
			printLine(c, "join:", joined.String())
		}
		return nil
	}
	return c
}
