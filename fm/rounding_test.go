package fm

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestRoundIntegerBound(t *testing.T) {
	term := func(id int, coeff float64) LinearTerm { return LinearTerm{Var: id, Coeff: coeff} }

	testCases := []struct {
		name        string
		input       LinearInequality
		isLower     bool
		targetCoeff float64
		expected    LinearInequality
	}{
		{
			name:        "lower bound normalised by a non-unit coefficient",
			input:       LinearInequality{Terms: []LinearTerm{term(0, 3)}, Constant: -7},
			isLower:     true,
			targetCoeff: 3,
			expected:    LinearInequality{Terms: []LinearTerm{term(0, 3)}, Constant: -9},
		},
		{
			name:        "upper bound normalised by a non-unit coefficient",
			input:       LinearInequality{Terms: []LinearTerm{term(0, -3)}, Constant: 7},
			targetCoeff: 3,
			expected:    LinearInequality{Terms: []LinearTerm{term(0, -3)}, Constant: 6},
		},
		{
			name:        "strict lower bound on an integer moves up by one",
			input:       LinearInequality{Terms: []LinearTerm{term(0, 1)}, Constant: -2, Strict: true},
			isLower:     true,
			targetCoeff: 1,
			expected:    LinearInequality{Terms: []LinearTerm{term(0, 1)}, Constant: -3},
		},
		{
			name:        "strict upper bound on an integer moves down by one",
			input:       LinearInequality{Terms: []LinearTerm{term(0, -1)}, Constant: 3, Strict: true},
			targetCoeff: 1,
			expected:    LinearInequality{Terms: []LinearTerm{term(0, -1)}, Constant: 2},
		},
		{
			name:        "strict bound on a fraction rounds like a non-strict one",
			input:       LinearInequality{Terms: []LinearTerm{term(0, 2)}, Constant: -3, Strict: true},
			isLower:     true,
			targetCoeff: 2,
			expected:    LinearInequality{Terms: []LinearTerm{term(0, 2)}, Constant: -4},
		},
		{
			name:        "integral non-strict bound is unchanged",
			input:       LinearInequality{Terms: []LinearTerm{term(0, 2)}, Constant: -4},
			isLower:     true,
			targetCoeff: 2,
			expected:    LinearInequality{Terms: []LinearTerm{term(0, 2)}, Constant: -4},
		},
		{
			name:        "negative lower bound rounds towards zero",
			input:       LinearInequality{Terms: []LinearTerm{term(0, 1)}, Constant: 2.5},
			isLower:     true,
			targetCoeff: 1,
			expected:    LinearInequality{Terms: []LinearTerm{term(0, 1)}, Constant: 2},
		},
		{
			name:        "negative upper bound rounds away from zero",
			input:       LinearInequality{Terms: []LinearTerm{term(0, -1)}, Constant: -2.5},
			targetCoeff: 1,
			expected:    LinearInequality{Terms: []LinearTerm{term(0, -1)}, Constant: -3},
		},
		{
			name:        "multi-variable with a fractional coefficient is left alone",
			input:       LinearInequality{Terms: []LinearTerm{term(0, 0.5), term(1, 1)}, Constant: -0.3, Strict: true},
			isLower:     true,
			targetCoeff: 0.5,
			expected:    LinearInequality{Terms: []LinearTerm{term(0, 0.5), term(1, 1)}, Constant: -0.3, Strict: true},
		},
		{
			name:        "multi-variable with integer coefficients normalises by one",
			input:       LinearInequality{Terms: []LinearTerm{term(0, 2), term(1, 3)}, Constant: -7.5},
			isLower:     true,
			targetCoeff: 2,
			expected:    LinearInequality{Terms: []LinearTerm{term(0, 2), term(1, 3)}, Constant: -8},
		},
		{
			name:        "multi-variable strict integral bound",
			input:       LinearInequality{Terms: []LinearTerm{term(0, 3), term(1, 3)}, Constant: -1, Strict: true},
			isLower:     true,
			targetCoeff: 3,
			expected:    LinearInequality{Terms: []LinearTerm{term(0, 3), term(1, 3)}, Constant: -2},
		},
		{
			name:        "multi-variable upper bound",
			input:       LinearInequality{Terms: []LinearTerm{term(0, -2), term(1, -3)}, Constant: 8.5},
			targetCoeff: 2,
			expected:    LinearInequality{Terms: []LinearTerm{term(0, -2), term(1, -3)}, Constant: 8},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RoundIntegerBound(tc.input, tc.isLower, tc.targetCoeff))
		})
	}
}

func TestRoundIntegerBoundDoesNotAlias(t *testing.T) {
	input := LinearInequality{Terms: []LinearTerm{{Var: 0, Coeff: 3}}, Constant: -7}
	rounded := RoundIntegerBound(input, true, 3)
	rounded.Terms[0].Coeff = 100

	assert.Equal(t, 3.0, input.Terms[0].Coeff)
	assert.Equal(t, -7.0, input.Constant)
}
