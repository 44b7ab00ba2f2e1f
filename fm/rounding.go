package fm

import (
	"math"
)

// isIntegral is exact: treating a value near an integer as integral could
// move a strict bound past a real solution
func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

// RoundIntegerBound tightens a bound on an integer variable before it is combined.
//
// For a lower bound coeff*x + c >= 0 (coeff > 0) the bound x >= -c/coeff becomes
// x >= ceil(-c/coeff), and a strict bound on an integral value moves up by one.
// Upper bounds round down symmetrically. The result is never strict.
//
// Inequalities with more than one term are tightened only when every
// coefficient is an integer, and then with a normalising coefficient of 1;
// so 3x + 3y in [1, 2] is not refuted, as that needs divisibility reasoning.
func RoundIntegerBound(ineq LinearInequality, isLower bool, targetCoeff float64) LinearInequality {
	if len(ineq.Terms) > 1 {
		for _, t := range ineq.Terms {
			if !isIntegral(t.Coeff) {
				return ineq.clone()
			}
		}
	}

	coeff := 1.0
	if len(ineq.Terms) == 1 {
		coeff = targetCoeff
	}

	result := ineq.clone()
	result.Strict = false
	if isLower {
		bound := -ineq.Constant / coeff
		if ineq.Strict && isIntegral(bound) {
			result.Constant = -(bound + 1) * coeff
		} else {
			result.Constant = -math.Ceil(bound) * coeff
		}
	} else {
		bound := ineq.Constant / coeff
		if ineq.Strict && isIntegral(bound) {
			result.Constant = (bound - 1) * coeff
		} else {
			result.Constant = math.Floor(bound) * coeff
		}
	}
	return result
}
