package fm

import (
	"github.com/cottand/refine/formula"
	"github.com/cottand/refine/internal/log"
	"log/slog"
	"math"
)

var parseLogger = log.DefaultLogger.With("section", "fm.parse")

// parser turns predicates into DNF. vars is the live registry of the query and
// grows as variables are discovered; clauses built early may carry a prefix of it.
type parser struct {
	limits Limits
	vars   *VarInfo
	logger *slog.Logger
}

// ParseToSystem parses f into a DNF whose clauses share one registry,
// where every variable is integer-valued.
func ParseToSystem(f formula.Node) (DNF, error) {
	d, _, err := ParseToSystemWith(f, VarInfo{})
	return d, err
}

// ParseToSystemWith is ParseToSystem starting from a caller-supplied registry,
// which is how variables are marked as real-valued. vars is not modified;
// the registry after parsing is returned.
func ParseToSystemWith(f formula.Node, vars VarInfo) (DNF, VarInfo, error) {
	return parseWithLimits(f, vars, DefaultLimits, parseLogger)
}

func parseWithLimits(f formula.Node, vars VarInfo, limits Limits, logger *slog.Logger) (DNF, VarInfo, error) {
	live := vars.Clone()
	if live.max <= 0 {
		live.max = limits.orDefault().MaxVars
	}
	p := &parser{limits: limits.orDefault(), vars: &live, logger: logger}
	d, err := p.parseFormula(f)
	if err != nil {
		return DNF{}, vars, err
	}
	// clauses built before a later variable was discovered carry a shorter registry
	d = d.withVars(live)
	logger.Debug("parsed predicate", "formula", f, "dnf", d, "vars", live)
	return d, live, nil
}

func (p *parser) parseArith(n formula.Node) (LinearExpr, error) {
	switch n := n.(type) {
	case *formula.Literal:
		if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
			return LinearExpr{}, nonLinear(NonFiniteLiteral, n)
		}
		return constantExpr(n.Value), nil
	case *formula.Variable:
		id, err := p.vars.FindOrAdd(n.Name, true)
		if err != nil {
			return LinearExpr{}, err
		}
		return varExpr(id), nil
	case *formula.Unary:
		if n.Op != formula.KindNeg {
			break
		}
		operand, err := p.parseArith(n.Operand)
		return operand.negate(), err
	case *formula.Binary:
		if !n.Op.IsArith() {
			break
		}
		a, err := p.parseArith(n.Left)
		if err != nil {
			return LinearExpr{}, err
		}
		b, err := p.parseArith(n.Right)
		if err != nil {
			return LinearExpr{}, err
		}
		switch n.Op {
		case formula.KindAdd:
			return a.add(b), nil
		case formula.KindSub:
			return a.sub(b), nil
		case formula.KindMul:
			if a.isConstant() {
				return b.scale(a.constant), nil
			}
			if b.isConstant() {
				return a.scale(b.constant), nil
			}
			return LinearExpr{}, nonLinear(NonLinearMultiplication, n)
		case formula.KindDiv:
			if !b.isConstant() {
				return LinearExpr{}, nonLinear(NonLinearDivision, n)
			}
			if b.constant == 0 {
				return LinearExpr{}, nonLinear(DivisionByZero, n)
			}
			return a.scale(1 / b.constant), nil
		}
	}
	return LinearExpr{}, nonLinear(UnsupportedNode, n)
}

// singleClause wraps one system in a DNF
func (p *parser) singleClause(ineqs ...LinearInequality) (DNF, error) {
	sys, err := NewSystem(*p.vars, p.limits).AddAll(ineqs...)
	if err != nil {
		return DNF{}, err
	}
	return NewDNF(p.limits, sys)
}

// parseComparison emits the inequalities of a comparison, or of its negation when negate is set.
//
// Only a negated equality produces more than one clause: !(a == b) is a < b || a > b.
func (p *parser) parseComparison(n *formula.Binary, negate bool) (DNF, error) {
	lhs, err := p.parseArith(n.Left)
	if err != nil {
		return DNF{}, err
	}
	rhs, err := p.parseArith(n.Right)
	if err != nil {
		return DNF{}, err
	}

	if n.Op == formula.KindEq {
		if !negate {
			// a == b  →  a - b >= 0 ∧ b - a >= 0
			ge, err := toInequality(lhs, rhs, false, p.limits)
			if err != nil {
				return DNF{}, err
			}
			le, err := toInequality(rhs, lhs, false, p.limits)
			if err != nil {
				return DNF{}, err
			}
			return p.singleClause(ge, le)
		}
		lt, err := toInequality(rhs, lhs, true, p.limits)
		if err != nil {
			return DNF{}, err
		}
		gt, err := toInequality(lhs, rhs, true, p.limits)
		if err != nil {
			return DNF{}, err
		}
		ltClause, err := p.singleClause(lt)
		if err != nil {
			return DNF{}, err
		}
		gtClause, err := p.singleClause(gt)
		if err != nil {
			return DNF{}, err
		}
		return Disjoin(ltClause, gtClause)
	}

	// negating a comparison flips both its direction and its strictness
	var ineq LinearInequality
	switch op := n.Op; {
	case op == formula.KindGt && !negate, op == formula.KindLe && negate:
		ineq, err = toInequality(lhs, rhs, true, p.limits)
	case op == formula.KindGe && !negate, op == formula.KindLt && negate:
		ineq, err = toInequality(lhs, rhs, false, p.limits)
	case op == formula.KindLt && !negate, op == formula.KindGe && negate:
		ineq, err = toInequality(rhs, lhs, true, p.limits)
	case op == formula.KindLe && !negate, op == formula.KindGt && negate:
		ineq, err = toInequality(rhs, lhs, false, p.limits)
	default:
		return DNF{}, nonLinear(UnsupportedNode, n)
	}
	if err != nil {
		return DNF{}, err
	}
	return p.singleClause(ineq)
}

func (p *parser) parseFormula(n formula.Node) (DNF, error) {
	switch n := n.(type) {
	case *formula.Binary:
		switch {
		case n.Op.IsComparison():
			return p.parseComparison(n, false)
		case n.Op == formula.KindAnd:
			left, right, err := p.parseBoth(n, p.parseFormula)
			if err != nil {
				return DNF{}, err
			}
			return Conjoin(left, right)
		case n.Op == formula.KindOr:
			left, right, err := p.parseBoth(n, p.parseFormula)
			if err != nil {
				return DNF{}, err
			}
			return Disjoin(left, right)
		}
	case *formula.Unary:
		if n.Op == formula.KindNot {
			return p.parseNegated(n.Operand)
		}
	}
	return DNF{}, nonLinear(UnsupportedNode, n)
}

// parseNegated parses !n, pushing the negation down to the comparisons with De Morgan
func (p *parser) parseNegated(n formula.Node) (DNF, error) {
	switch n := n.(type) {
	case *formula.Binary:
		switch {
		case n.Op.IsComparison():
			return p.parseComparison(n, true)
		case n.Op == formula.KindAnd:
			// !(a && b)  →  !a || !b
			left, right, err := p.parseBoth(n, p.parseNegated)
			if err != nil {
				return DNF{}, err
			}
			return Disjoin(left, right)
		case n.Op == formula.KindOr:
			// !(a || b)  →  !a && !b
			left, right, err := p.parseBoth(n, p.parseNegated)
			if err != nil {
				return DNF{}, err
			}
			return Conjoin(left, right)
		}
	case *formula.Unary:
		if n.Op == formula.KindNot {
			return p.parseFormula(n.Operand)
		}
	}
	return DNF{}, nonLinear(UnsupportedNode, n)
}

// parseBoth parses the left operand then the right, in that order, so variable ids follow source order
func (p *parser) parseBoth(n *formula.Binary, parse func(formula.Node) (DNF, error)) (DNF, DNF, error) {
	left, err := parse(n.Left)
	if err != nil {
		return DNF{}, DNF{}, err
	}
	right, err := parse(n.Right)
	if err != nil {
		return DNF{}, DNF{}, err
	}
	return left, right, nil
}

// Conjoin distributes a ∧ b over the clauses of both sides: every clause of a is
// merged with every clause of b. This is where the clause count can grow multiplicatively.
func Conjoin(a, b DNF) (DNF, error) {
	result := DNF{limits: a.Limits()}
	for _, left := range a.clauses {
		for _, right := range b.clauses {
			merged, err := mergeSystems(left, right)
			if err != nil {
				return DNF{}, err
			}
			if result, err = result.AddClause(merged); err != nil {
				return DNF{}, err
			}
		}
	}
	return result, nil
}

// Disjoin concatenates the clauses of a and b
func Disjoin(a, b DNF) (DNF, error) {
	result := DNF{limits: a.Limits()}
	var err error
	for _, c := range append(a.Clauses(), b.clauses...) {
		if result, err = result.AddClause(c); err != nil {
			return DNF{}, err
		}
	}
	return result, nil
}

// mergeSystems conjoins two clauses of the same parse. Registries only grow
// during a parse, so the longer one is kept.
func mergeSystems(a, b System) (System, error) {
	merged := a
	if b.vars.Len() > merged.vars.Len() {
		merged = merged.WithVars(b.vars)
	}
	return merged.AddAll(b.ineqs...)
}
