package fm

import (
	"slices"
)

// LinearExpr is Σ coeffs[i] * x_i + constant, indexed by variable id.
// It is the intermediate form of an arithmetic subtree during parsing.
type LinearExpr struct {
	coeffs   []float64
	constant float64
}

func constantExpr(c float64) LinearExpr {
	return LinearExpr{constant: c}
}

func varExpr(id int) LinearExpr {
	coeffs := make([]float64, id+1)
	coeffs[id] = 1
	return LinearExpr{coeffs: coeffs}
}

func (e LinearExpr) coeff(id int) float64 {
	if id < len(e.coeffs) {
		return e.coeffs[id]
	}
	return 0
}

func (e LinearExpr) add(other LinearExpr) LinearExpr {
	coeffs := make([]float64, max(len(e.coeffs), len(other.coeffs)))
	for i := range coeffs {
		coeffs[i] = e.coeff(i) + other.coeff(i)
	}
	return LinearExpr{coeffs: coeffs, constant: e.constant + other.constant}
}

func (e LinearExpr) scale(factor float64) LinearExpr {
	coeffs := slices.Clone(e.coeffs)
	for i := range coeffs {
		coeffs[i] *= factor
	}
	return LinearExpr{coeffs: coeffs, constant: e.constant * factor}
}

func (e LinearExpr) negate() LinearExpr { return e.scale(-1) }

func (e LinearExpr) sub(other LinearExpr) LinearExpr { return e.add(other.negate()) }

// isConstant is true when no variable has a non-zero coefficient
func (e LinearExpr) isConstant() bool {
	return !slices.ContainsFunc(e.coeffs, func(c float64) bool { return c != 0 })
}

// toInequality builds lhs - rhs >= 0 (or > 0 when strict), keeping the non-zero terms in id order
func toInequality(lhs, rhs LinearExpr, strict bool, limits Limits) (LinearInequality, error) {
	diff := lhs.sub(rhs)
	var terms []LinearTerm
	for id, c := range diff.coeffs {
		if c != 0 {
			terms = append(terms, LinearTerm{Var: id, Coeff: c})
		}
	}
	return NewInequality(limits, terms, diff.constant, strict)
}
