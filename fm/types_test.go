package fm

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestVarInfoFindOrAdd(t *testing.T) {
	vars := VarInfo{}
	x, err := vars.FindOrAdd("x", true)
	require.NoError(t, err)
	y, err := vars.FindOrAdd("y", false)
	require.NoError(t, err)

	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y)
	assert.Equal(t, 2, vars.Len())
	assert.True(t, vars.IsInteger(x))
	assert.False(t, vars.IsInteger(y))
	assert.Equal(t, "[x:int y:real]", vars.String())

	// re-registering keeps the id and the first domain
	again, err := vars.FindOrAdd("x", false)
	require.NoError(t, err)
	assert.Equal(t, x, again)
	assert.True(t, vars.IsInteger(again))

	_, ok := vars.Find("z")
	assert.False(t, ok)
}

func TestVarInfoCapacity(t *testing.T) {
	vars := NewVarInfo(Limits{MaxVars: 2})
	_, err := vars.FindOrAdd("a", true)
	require.NoError(t, err)
	_, err = vars.FindOrAdd("b", true)
	require.NoError(t, err)

	_, err = vars.FindOrAdd("c", true)
	assert.Error(t, err)
	assert.True(t, IsCapacity(err))
	assert.Equal(t, TooManyVars, CodeOf(err))
	assert.Equal(t, 2, vars.Len())

	// existing names are still found when full
	id, err := vars.FindOrAdd("b", true)
	assert.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestVarInfoCloneIsIndependent(t *testing.T) {
	vars := VarInfo{}
	_, _ = vars.FindOrAdd("x", true)

	clone := vars.Clone()
	_, _ = clone.FindOrAdd("y", true)

	assert.Equal(t, 1, vars.Len())
	assert.Equal(t, 2, clone.Len())
	assert.Equal(t, []string{"x", "y"}, clone.Names())
}

func TestVarInfoOutOfRangePanics(t *testing.T) {
	vars := VarInfo{}
	_, _ = vars.FindOrAdd("x", true)
	assert.Panics(t, func() { vars.Name(3) })
	assert.Panics(t, func() { vars.IsInteger(-1) })
}

func TestVarInfoCompatibleWith(t *testing.T) {
	registry := func(names ...string) VarInfo {
		v := VarInfo{}
		for _, n := range names {
			_, _ = v.FindOrAdd(n, true)
		}
		return v
	}
	testCases := []struct {
		name     string
		a, b     VarInfo
		expected bool
	}{
		{"identical", registry("x", "y"), registry("x", "y"), true},
		{"prefix", registry("x", "y"), registry("x"), true},
		{"prefix reversed", registry("x"), registry("x", "y"), true},
		{"empty", VarInfo{}, registry("x"), true},
		{"shifted", registry("x", "y"), registry("y"), false},
		{"swapped", registry("x", "y"), registry("y", "x"), false},
		{"disjoint", registry("x"), registry("z"), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.a.CompatibleWith(tc.b))
		})
	}
}

func TestInequalityTermCap(t *testing.T) {
	terms := []LinearTerm{{Var: 0, Coeff: 1}, {Var: 1, Coeff: 1}}
	_, err := NewInequality(Limits{MaxTermsPerIneq: 1}, terms, 0, false)
	assert.True(t, IsCapacity(err))
	assert.Equal(t, TooManyTerms, CodeOf(err))

	ineq, err := NewInequality(DefaultLimits, terms, 0, false)
	require.NoError(t, err)
	terms[0].Coeff = 42
	assert.Equal(t, 1.0, ineq.Coeff(0), "the inequality must not alias the caller's terms")
}

func TestInequalityNegate(t *testing.T) {
	ineq := LinearInequality{Terms: []LinearTerm{{Var: 0, Coeff: 2}, {Var: 1, Coeff: -1}}, Constant: -3}
	negated := ineq.Negate()

	assert.Equal(t, LinearInequality{Terms: []LinearTerm{{Var: 0, Coeff: -2}, {Var: 1, Coeff: 1}}, Constant: 3, Strict: true}, negated)
	assert.Equal(t, ineq, negated.Negate())
	assert.Equal(t, 2.0, ineq.Coeff(0), "Negate must not modify the receiver")
}

func TestInequalityString(t *testing.T) {
	testCases := []struct {
		ineq     LinearInequality
		expected string
	}{
		{LinearInequality{Terms: []LinearTerm{{0, 2}}, Constant: -3}, "2*x0 - 3 >= 0"},
		{LinearInequality{Terms: []LinearTerm{{0, 1}, {1, -2}}, Strict: true}, "x0 - 2*x1 > 0"},
		{LinearInequality{Terms: []LinearTerm{{1, -1}}, Constant: 0.5}, "-x1 + 0.5 >= 0"},
		{LinearInequality{Constant: -1}, "-1 >= 0"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.ineq.String())
		})
	}
}

func TestSystemIsImmutable(t *testing.T) {
	vars := VarInfo{}
	x, _ := vars.FindOrAdd("x", true)

	base := NewSystem(vars, DefaultLimits)
	one, err := base.Add(LinearInequality{Terms: []LinearTerm{{x, 1}}})
	require.NoError(t, err)
	left, err := one.Add(LinearInequality{Constant: 1})
	require.NoError(t, err)
	right, err := one.Add(LinearInequality{Constant: 2})
	require.NoError(t, err)

	assert.Equal(t, 0, base.Len())
	assert.Equal(t, 1, one.Len())
	assert.Equal(t, 1.0, left.Ineq(1).Constant)
	assert.Equal(t, 2.0, right.Ineq(1).Constant)
	assert.Equal(t, "x >= 0 ∧ 1 >= 0", left.String())

	ineqs := left.Ineqs()
	ineqs[0].Terms[0].Coeff = 7
	assert.Equal(t, 1.0, left.Ineq(0).Coeff(x), "Ineqs must return copies")
}

func TestSystemIneqCap(t *testing.T) {
	sys := NewSystem(VarInfo{}, Limits{MaxIneqs: 1})
	sys, err := sys.Add(LinearInequality{Constant: 1})
	require.NoError(t, err)

	_, err = sys.Add(LinearInequality{Constant: 2})
	assert.True(t, IsCapacity(err))
	assert.Equal(t, TooManyIneqs, CodeOf(err))
}

func TestSystemActiveVars(t *testing.T) {
	sys, err := NewSystem(VarInfo{}, DefaultLimits).AddAll(
		LinearInequality{Terms: []LinearTerm{{2, 1}, {0, 3}}},
		LinearInequality{Terms: []LinearTerm{{2, -1}}},
		LinearInequality{Terms: []LinearTerm{{1, 0}}},
	)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, sys.ActiveVars())
	assert.Empty(t, NewSystem(VarInfo{}, DefaultLimits).ActiveVars())
}

func TestDNF(t *testing.T) {
	sys := NewSystem(VarInfo{}, DefaultLimits)

	empty, err := NewDNF(DefaultLimits)
	require.NoError(t, err)
	assert.Equal(t, "false", empty.String())
	assert.False(t, empty.IsConjunctive())

	single, err := NewDNF(DefaultLimits, sys)
	require.NoError(t, err)
	assert.True(t, single.IsConjunctive())
	assert.Equal(t, "(true)", single.String())
	assert.Equal(t, 0, single.System().Len())

	double, err := single.AddClause(sys)
	require.NoError(t, err)
	assert.Equal(t, 1, single.Len())
	assert.Equal(t, 2, double.Len())
	assert.Panics(t, func() { double.System() })
	assert.Panics(t, func() { empty.System() })

	_, err = NewDNF(Limits{MaxClauses: 1}, sys, sys)
	assert.True(t, IsCapacity(err))
	assert.Equal(t, TooManyClauses, CodeOf(err))
}

func TestFormatWithCode(t *testing.T) {
	err := capacity(TooManyVars, 16, "variable 'q'")
	assert.Equal(t, "(E006) capacity exceeded: at most 16 variables allowed, could not fit variable 'q'", FormatWithCode(err))
}
