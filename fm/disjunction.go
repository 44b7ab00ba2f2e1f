package fm

import (
	"github.com/cottand/refine/internal/log"
	"github.com/hashicorp/go-set/v3"
	"log/slog"
)

var disjunctionLogger = log.DefaultLogger.With("section", "fm.disjunction")

// NegateInequality returns the complement of ineq: e >= 0 becomes -e > 0, and e > 0 becomes -e >= 0
func NegateInequality(ineq LinearInequality) LinearInequality { return ineq.Negate() }

// ClauseImplies reports whether every solution of a is a solution of b.
//
// Rather than negating b as a whole, which would be a disjunction, each inequality
// of b is refuted separately: a implies b iff a ∧ ¬b_i is unsatisfiable for every i.
// An empty b is true, so it is implied by anything.
//
// a and b must come from the same query: ids that both registries know must name
// the same variable.
func ClauseImplies(a, b System) (bool, error) {
	return clauseImplies(a, b, disjunctionLogger)
}

func clauseImplies(a, b System, logger *slog.Logger) (bool, error) {
	if !a.vars.CompatibleWith(b.vars) {
		precondition(IncompatibleVarOrder, "clauses over incompatible variable orders %v and %v", a.vars, b.vars)
	}
	premise := a
	if b.vars.Len() > a.vars.Len() {
		premise = a.WithVars(b.vars)
	}
	for _, ineq := range b.ineqs {
		test, err := premise.Add(NegateInequality(ineq))
		if err != nil {
			return false, err
		}
		unsat, err := fmIsUnsat(test, logger)
		if err != nil {
			return false, err
		}
		if !unsat {
			logger.Debug("clause does not imply", "premise", a, "counterexample to", ineq.format(premise.varName))
			return false, nil
		}
	}
	return true, nil
}

// RemoveUnsatClauses drops the clauses with no solution, as false ∨ X is X
func RemoveUnsatClauses(d DNF) (DNF, error) {
	return removeUnsatClauses(d, disjunctionLogger)
}

func removeUnsatClauses(d DNF, logger *slog.Logger) (DNF, error) {
	result := DNF{limits: d.limits}
	for _, c := range d.clauses {
		unsat, err := fmIsUnsat(c, logger)
		if err != nil {
			return DNF{}, err
		}
		if unsat {
			logger.Debug("dropping unsatisfiable clause", "clause", c)
			continue
		}
		if result, err = result.AddClause(c); err != nil {
			return DNF{}, err
		}
	}
	return result, nil
}

// RemoveSubsumedClauses drops every clause that implies another clause which is kept.
// Of two equivalent clauses, the earlier one is kept.
//
// This is quadratic in the number of clauses, each step being an implication check.
func RemoveSubsumedClauses(d DNF) (DNF, error) {
	return removeSubsumedClauses(d, disjunctionLogger)
}

func removeSubsumedClauses(d DNF, logger *slog.Logger) (DNF, error) {
	subsumed := set.New[int](d.Len())
	for i, keep := range d.clauses {
		if subsumed.Contains(i) {
			continue
		}
		for j, other := range d.clauses {
			if i == j || subsumed.Contains(j) {
				continue
			}
			implies, err := clauseImplies(other, keep, logger)
			if err != nil {
				return DNF{}, err
			}
			if implies {
				logger.Debug("dropping subsumed clause", "clause", other, "subsumedBy", keep)
				subsumed.Insert(j)
			}
		}
	}

	result := DNF{limits: d.limits}
	var err error
	for i, c := range d.clauses {
		if subsumed.Contains(i) {
			continue
		}
		if result, err = result.AddClause(c); err != nil {
			return DNF{}, err
		}
	}
	return result, nil
}

// SimplifyDNF removes unsatisfiable clauses, then subsumed ones.
// The result is equivalent to d.
func SimplifyDNF(d DNF) (DNF, error) {
	return simplifyDNF(d, disjunctionLogger)
}

func simplifyDNF(d DNF, logger *slog.Logger) (DNF, error) {
	cleaned, err := removeUnsatClauses(d, logger)
	if err != nil {
		return DNF{}, err
	}
	return removeSubsumedClauses(cleaned, logger)
}
