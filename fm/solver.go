package fm

import (
	"github.com/cottand/refine/formula"
	"github.com/cottand/refine/internal/log"
	"github.com/pkg/errors"
	"log/slog"
)

// Solver answers satisfiability and validity questions about linear predicates.
// The zero value uses DefaultLimits and logs to the fm.solver section.
type Solver struct {
	Limits Limits
	Logger *slog.Logger
}

var Default = Solver{
	Limits: DefaultLimits,
	Logger: log.DefaultLogger.With("section", "fm.solver"),
}

func (s Solver) logger() *slog.Logger {
	if s.Logger == nil {
		return Default.Logger
	}
	return s.Logger
}

func (s Solver) parse(f formula.Node, vars VarInfo) (DNF, VarInfo, error) {
	if vars.max <= 0 {
		vars.max = s.Limits.orDefault().MaxVars
	}
	d, vars, err := parseWithLimits(f, vars, s.Limits, s.logger())
	if err != nil {
		return DNF{}, vars, errors.Wrapf(err, "parsing %v", f)
	}
	return d, vars, nil
}

// IsUnsat reports whether the conjunction sys has no solution.
// On error the answer is unknown.
func (s Solver) IsUnsat(sys System) (bool, error) {
	unsat, err := fmIsUnsat(sys, s.logger())
	if err != nil {
		return false, errors.Wrapf(err, "deciding %v", sys)
	}
	return unsat, nil
}

func (s Solver) IsSat(sys System) (bool, error) {
	unsat, err := s.IsUnsat(sys)
	return !unsat, err
}

// IsUnsatDNF reports whether every clause of d is unsatisfiable.
// The empty DNF is false, hence unsatisfiable.
func (s Solver) IsUnsatDNF(d DNF) (bool, error) {
	for _, c := range d.clauses {
		unsat, err := s.IsUnsat(c)
		if err != nil || !unsat {
			return false, err
		}
	}
	return true, nil
}

func (s Solver) IsSatDNF(d DNF) (bool, error) {
	unsat, err := s.IsUnsatDNF(d)
	return !unsat, err
}

// IsValid reports whether f holds for every integer assignment of its variables
func (s Solver) IsValid(f formula.Node) (bool, error) {
	return s.IsValidWith(f, VarInfo{})
}

// IsValidWith is IsValid where the domains of the variables registered in vars
// are taken from it. Variables not in vars are integers.
func (s Solver) IsValidWith(f formula.Node, vars VarInfo) (bool, error) {
	d, _, err := s.parse(formula.Not(f), vars)
	if err != nil {
		return false, err
	}
	valid, err := s.IsUnsatDNF(d)
	s.logger().Debug("validity", "formula", f, "valid", valid)
	return valid, err
}

// IsValidImplication reports whether every integer assignment satisfying premise
// also satisfies conclusion.
func (s Solver) IsValidImplication(premise, conclusion formula.Node) (bool, error) {
	return s.IsValidImplicationWith(premise, conclusion, VarInfo{})
}

// IsValidImplicationWith is IsValidImplication with variable domains taken from vars.
//
// When the conclusion is a single clause, each clause of the premise is checked
// against it with ClauseImplies, which avoids negating the conclusion into a disjunction.
// Otherwise premise ∧ ¬conclusion is parsed and refuted as a whole.
func (s Solver) IsValidImplicationWith(premise, conclusion formula.Node, vars VarInfo) (bool, error) {
	p, vars, err := s.parse(premise, vars)
	if err != nil {
		return false, err
	}
	q, vars, err := s.parse(conclusion, vars)
	if err != nil {
		return false, err
	}
	// variables first seen in the conclusion are unconstrained in the premise
	p = p.withVars(vars)

	logger := s.logger()
	if q.IsConjunctive() {
		for _, clause := range p.clauses {
			implies, err := clauseImplies(clause, q.System(), logger)
			if err != nil {
				return false, errors.Wrapf(err, "checking %v => %v", clause, q)
			}
			if !implies {
				logger.Debug("implication", "premise", premise, "conclusion", conclusion, "valid", false)
				return false, nil
			}
		}
		logger.Debug("implication", "premise", premise, "conclusion", conclusion, "valid", true)
		return true, nil
	}

	d, _, err := s.parse(formula.And(premise, formula.Not(conclusion)), vars)
	if err != nil {
		return false, err
	}
	valid, err := s.IsUnsatDNF(d)
	logger.Debug("implication", "premise", premise, "conclusion", conclusion, "valid", valid)
	return valid, err
}

// Simplify parses f and returns its DNF without unsatisfiable or subsumed clauses,
// along with the registry its variable ids refer to.
func (s Solver) Simplify(f formula.Node, vars VarInfo) (DNF, VarInfo, error) {
	d, vars, err := s.parse(f, vars)
	if err != nil {
		return DNF{}, vars, err
	}
	simplified, err := simplifyDNF(d, s.logger())
	if err != nil {
		return DNF{}, vars, errors.Wrapf(err, "simplifying %v", d)
	}
	return simplified, vars, nil
}

func IsUnsat(sys System) (bool, error) { return Default.IsUnsat(sys) }
func IsSat(sys System) (bool, error)   { return Default.IsSat(sys) }
func IsUnsatDNF(d DNF) (bool, error)   { return Default.IsUnsatDNF(d) }
func IsSatDNF(d DNF) (bool, error)     { return Default.IsSatDNF(d) }

func IsValid(f formula.Node) (bool, error)                   { return Default.IsValid(f) }
func IsValidWith(f formula.Node, vars VarInfo) (bool, error) { return Default.IsValidWith(f, vars) }

func IsValidImplication(premise, conclusion formula.Node) (bool, error) {
	return Default.IsValidImplication(premise, conclusion)
}

func IsValidImplicationWith(premise, conclusion formula.Node, vars VarInfo) (bool, error) {
	return Default.IsValidImplicationWith(premise, conclusion, vars)
}
