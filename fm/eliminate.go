package fm

import (
	"github.com/cottand/refine/internal/log"
	"log/slog"
	"slices"
)

var eliminateLogger = log.DefaultLogger.With("section", "fm.eliminate")

// combineBounds cancels variable id between a lower bound (positive coefficient lowerCoeff)
// and an upper bound (coefficient -upperAbsCoeff) by scaling each by the other's
// coefficient and adding them. Terms left with a zero coefficient are dropped.
func combineBounds(lower LinearInequality, lowerCoeff float64, upper LinearInequality, upperAbsCoeff float64, id int, limits Limits) (LinearInequality, error) {
	var terms []LinearTerm
	accumulate := func(from []LinearTerm, factor float64) {
	outer:
		for _, t := range from {
			if t.Var == id {
				continue
			}
			scaled := t.Coeff * factor
			for k := range terms {
				if terms[k].Var == t.Var {
					terms[k].Coeff += scaled
					continue outer
				}
			}
			terms = append(terms, LinearTerm{Var: t.Var, Coeff: scaled})
		}
	}
	accumulate(lower.Terms, upperAbsCoeff)
	accumulate(upper.Terms, lowerCoeff)

	var pruned []LinearTerm
	for _, t := range terms {
		if t.Coeff != 0 {
			pruned = append(pruned, t)
		}
	}
	return NewInequality(
		limits,
		pruned,
		lower.Constant*upperAbsCoeff+upper.Constant*lowerCoeff,
		lower.Strict || upper.Strict,
	)
}

// EliminateVariable projects id out of sys. Inequalities that do not mention id
// are kept as they are, and every pair of a lower and an upper bound on id is
// combined into one inequality. Bounds on an integer variable are rounded first.
//
// id must be registered in the system's VarInfo.
func EliminateVariable(sys System, id int) (System, error) {
	return eliminateVariable(sys, id, eliminateLogger)
}

func eliminateVariable(sys System, id int, logger *slog.Logger) (System, error) {
	if id < 0 || id >= sys.vars.Len() {
		precondition(VarOutOfRange, "cannot eliminate variable %d from a system over %v", id, sys.vars)
	}

	type bound struct {
		ineq  LinearInequality
		coeff float64
	}
	var lowers, uppers []bound
	result := System{vars: sys.vars, limits: sys.limits}
	var err error
	for _, ineq := range sys.ineqs {
		switch coeff := ineq.Coeff(id); {
		case coeff > 0:
			lowers = append(lowers, bound{ineq, coeff})
		case coeff < 0:
			uppers = append(uppers, bound{ineq, -coeff})
		default:
			if result, err = result.Add(ineq); err != nil {
				return System{}, err
			}
		}
	}

	if sys.vars.IsInteger(id) {
		for i := range lowers {
			lowers[i].ineq = RoundIntegerBound(lowers[i].ineq, true, lowers[i].coeff)
		}
		for i := range uppers {
			uppers[i].ineq = RoundIntegerBound(uppers[i].ineq, false, uppers[i].coeff)
		}
	}

	for _, lower := range lowers {
		for _, upper := range uppers {
			combined, err := combineBounds(lower.ineq, lower.coeff, upper.ineq, upper.coeff, id, sys.limits)
			if err != nil {
				return System{}, err
			}
			if result, err = result.Add(combined); err != nil {
				return System{}, err
			}
		}
	}

	logger.Debug("eliminated variable",
		"var", sys.varName(id),
		"lower", len(lowers),
		"upper", len(uppers),
		"result", result,
	)
	return result, nil
}

// HasContradiction reports whether a system with no variable terms left contains
// a false inequality: c > 0 with c <= 0, or c >= 0 with c < 0.
//
// Terms with a zero coefficient contribute nothing and are ignored.
// Calling it on a system that still has other terms is a programming error.
func HasContradiction(sys System) bool {
	for _, ineq := range sys.ineqs {
		if slices.ContainsFunc(ineq.Terms, func(t LinearTerm) bool { return t.Coeff != 0 }) {
			precondition(ResidualVariableTerms, "contradiction check on %v which still has variable terms", ineq.format(sys.varName))
		}
		if ineq.Strict && ineq.Constant <= 0 {
			return true
		}
		if !ineq.Strict && ineq.Constant < 0 {
			return true
		}
	}
	return false
}

// FMIsUnsat eliminates every variable of sys in id order and checks what is left.
// An error means the elimination outgrew the system's Limits, in which case
// nothing is known about satisfiability.
func FMIsUnsat(sys System) (bool, error) {
	return fmIsUnsat(sys, eliminateLogger)
}

func fmIsUnsat(sys System, logger *slog.Logger) (bool, error) {
	var err error
	// a variable without terms cannot gain any by eliminating another, so skipping it changes nothing
	for _, id := range sys.ActiveVars() {
		if sys, err = eliminateVariable(sys, id, logger); err != nil {
			return false, err
		}
	}
	return HasContradiction(sys), nil
}
