package cmd

import (
	"fmt"
	"github.com/cottand/refine/fm"
	"github.com/cottand/refine/formula"
	"github.com/cottand/refine/refine"
	"github.com/spf13/cobra"
	"slices"
	"strings"
)

var CheckCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	c := &cobra.Command{
		Use:          "check --config obligations.yaml",
		Short:        "Prove every obligation listed in a configuration file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	flags := addCommonFlags(c)
	c.RunE = func(c *cobra.Command, args []string) error {
		cfg, err := flags.setup(c)
		if err != nil {
			return err
		}
		if len(cfg.Obligations) == 0 {
			return fmt.Errorf("no obligations to check: pass a configuration file with --config")
		}
		vars, err := cfg.VarInfo()
		if err != nil {
			return err
		}
		env, err := cfg.Env()
		if err != nil {
			return err
		}
		set, vars, err := constraintsOf(cfg.Obligations, env, vars)
		if err != nil {
			return err
		}
		failed, err := set.Check(cfg.Solver(), vars)
		if err != nil {
			return fmt.Errorf("could not check obligations: %w", err)
		}
		for _, constraint := range set.Constraints() {
			printLine(c, verdict(!slices.Contains(failed, constraint.Origin), "ok  ", "FAIL"), constraint.Origin)
		}
		if len(failed) != 0 {
			return fmt.Errorf("%d of %d obligations failed: %s", len(failed), set.Len(), strings.Join(failed, ", "))
		}
		return nil
	}
	return c
}

// constraintsOf turns each obligation into the validity of premise => conclusion,
// where the premise also carries what env says about the obligation's variables
func constraintsOf(obligations []Obligation, env refine.Env, vars fm.VarInfo) (refine.ConstraintSet, fm.VarInfo, error) {
	set := refine.NewConstraintSet()
	for i, o := range obligations {
		origin := o.Origin
		if origin == "" {
			origin = fmt.Sprintf("obligation %d", i)
		}
		conclusion, err := formula.Parse(o.Conclusion)
		if err != nil {
			return set, vars, fmt.Errorf("could not read conclusion of %s: %w", origin, err)
		}
		var premises []formula.Node
		if o.Premise != "" {
			premise, err := formula.Parse(o.Premise)
			if err != nil {
				return set, vars, fmt.Errorf("could not read premise of %s: %w", origin, err)
			}
			premises = append(premises, premise)
		}

		mentioned := conclusion
		if len(premises) != 0 {
			mentioned = formula.And(premises[0], conclusion)
		}
		facts, withReals, err := env.Assume(mentioned, vars)
		if err != nil {
			return set, vars, fmt.Errorf("could not assume types for %s: %w", origin, err)
		}
		vars = withReals
		premises = append(facts, premises...)

		if len(premises) != 0 {
			conclusion = formula.Implies(formula.AllOf(premises[0], premises[1:]...), conclusion)
		}
		set = set.Add(conclusion, origin)
	}
	return set, vars, nil
}
