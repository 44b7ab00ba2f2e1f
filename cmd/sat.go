package cmd

import (
	"fmt"
	"github.com/cottand/refine/formula"
	"github.com/spf13/cobra"
)

var SatCmd = newSatCmd()

func newSatCmd() *cobra.Command {
	c := &cobra.Command{
		Use:          "sat 'predicate'",
		Short:        "Decide whether a linear predicate has a solution",
		Long:         "Decide whether a linear predicate has a solution, and print its simplified disjunctive normal form",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}
	flags := addCommonFlags(c)
	c.RunE = func(c *cobra.Command, args []string) error {
		cfg, err := flags.setup(c)
		if err != nil {
			return err
		}
		vars, err := cfg.VarInfo()
		if err != nil {
			return err
		}
		f, err := formula.Parse(args[0])
		if err != nil {
			return fmt.Errorf("could not read predicate: %w", err)
		}
		solver := cfg.Solver()
		d, _, err := solver.Simplify(f, vars)
		if err != nil {
			return fmt.Errorf("could not decide predicate: %w", err)
		}
		sat, err := solver.IsSatDNF(d)
		if err != nil {
			return fmt.Errorf("could not decide predicate: %w", err)
		}
		printLine(c, verdict(sat, "sat", "unsat"))
		if sat {
			printLine(c, d.String())
		}
		return nil
	}
	return c
}

var ValidCmd = newValidCmd()

func newValidCmd() *cobra.Command {
	c := &cobra.Command{
		Use:          "valid 'predicate'",
		Short:        "Decide whether a linear predicate holds for every assignment",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
	}
	flags := addCommonFlags(c)
	c.RunE = func(c *cobra.Command, args []string) error {
		cfg, err := flags.setup(c)
		if err != nil {
			return err
		}
		vars, err := cfg.VarInfo()
		if err != nil {
			return err
		}
		f, err := formula.Parse(args[0])
		if err != nil {
			return fmt.Errorf("could not read predicate: %w", err)
		}
		valid, err := cfg.Solver().IsValidWith(f, vars)
		if err != nil {
			return fmt.Errorf("could not decide predicate: %w", err)
		}
		printLine(c, verdict(valid, "valid", "not valid"))
		return nil
	}
	return c
}

var ImpliesCmd = newImpliesCmd()

func newImpliesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:          "implies 'premise' 'conclusion'",
		Short:        "Decide whether one linear predicate implies another",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
	}
	flags := addCommonFlags(c)
	c.RunE = func(c *cobra.Command, args []string) error {
		cfg, err := flags.setup(c)
		if err != nil {
			return err
		}
		vars, err := cfg.VarInfo()
		if err != nil {
			return err
		}
		premise, err := formula.Parse(args[0])
		if err != nil {
			return fmt.Errorf("could not read premise: %w", err)
		}
		conclusion, err := formula.Parse(args[1])
		if err != nil {
			return fmt.Errorf("could not read conclusion: %w", err)
		}
		valid, err := cfg.Solver().IsValidImplicationWith(premise, conclusion, vars)
		if err != nil {
			return fmt.Errorf("could not decide implication: %w", err)
		}
		printLine(c, verdict(valid, "valid", "not valid"))
		return nil
	}
	return c
}
