package formula

import (
	"fmt"
)

// Assignment maps variable names to concrete values
type Assignment map[string]float64

// EvalArith computes the value of an arithmetic node under a.
// Division follows float64 semantics, so dividing by zero yields an infinity rather than an error.
func EvalArith(n Node, a Assignment) (float64, error) {
	switch n := n.(type) {
	case *Literal:
		return n.Value, nil
	case *Variable:
		v, ok := a[n.Name]
		if !ok {
			return 0, fmt.Errorf("variable '%s' is not assigned", n.Name)
		}
		return v, nil
	case *Unary:
		if n.Op != KindNeg {
			return 0, fmt.Errorf("expected an arithmetic expression, found %v", n.Op)
		}
		v, err := EvalArith(n.Operand, a)
		return -v, err
	case *Binary:
		if !n.Op.IsArith() {
			return 0, fmt.Errorf("expected an arithmetic expression, found %v", n.Op)
		}
		l, err := EvalArith(n.Left, a)
		if err != nil {
			return 0, err
		}
		r, err := EvalArith(n.Right, a)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case KindAdd:
			return l + r, nil
		case KindSub:
			return l - r, nil
		case KindMul:
			return l * r, nil
		case KindDiv:
			return l / r, nil
		}
	}
	return 0, fmt.Errorf("unsupported node in arithmetic expression: %v", n)
}

// EvalBool decides the truth of a boolean node under a
func EvalBool(n Node, a Assignment) (bool, error) {
	switch n := n.(type) {
	case *Unary:
		if n.Op != KindNot {
			return false, fmt.Errorf("expected a boolean expression, found %v", n.Op)
		}
		v, err := EvalBool(n.Operand, a)
		return !v, err
	case *Binary:
		switch {
		case n.Op.IsComparison():
			l, err := EvalArith(n.Left, a)
			if err != nil {
				return false, err
			}
			r, err := EvalArith(n.Right, a)
			if err != nil {
				return false, err
			}
			return compare(n.Op, l, r), nil
		case n.Op == KindAnd || n.Op == KindOr:
			l, err := EvalBool(n.Left, a)
			if err != nil {
				return false, err
			}
			// no short-circuit: an unassigned variable on the right is still an error
			r, err := EvalBool(n.Right, a)
			if err != nil {
				return false, err
			}
			if n.Op == KindAnd {
				return l && r, nil
			}
			return l || r, nil
		}
	}
	return false, fmt.Errorf("unsupported node in boolean expression: %v", n)
}

func compare(op Kind, l, r float64) bool {
	switch op {
	case KindEq:
		return l == r
	case KindLt:
		return l < r
	case KindGt:
		return l > r
	case KindLe:
		return l <= r
	case KindGe:
		return l >= r
	default:
		panic("unhandled comparison " + op.String())
	}
}
