package formula

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		input    string
		expected Node
	}{
		{"x > 0", Gt(Var("x"), Num(0))},
		{"#v >= 1", Ge(Var("#v"), Num(1))},
		{"x + 2 * y <= 3", Le(Add(Var("x"), Mul(Num(2), Var("y"))), Num(3))},
		{"a - b - c < 0", Lt(Sub(Sub(Var("a"), Var("b")), Var("c")), Num(0))},
		{"x / 2 / 4 == 1", Eq(Div(Div(Var("x"), Num(2)), Num(4)), Num(1))},
		{"x != -1", Ne(Var("x"), Num(-1))},
		{"-x > 0.5", Gt(Neg(Var("x")), Num(0.5))},
		{"-(x + 1) < 2", Lt(Neg(Add(Var("x"), Num(1))), Num(2))},
		{"x>=-1", Ge(Var("x"), Num(-1))},
		{"a > 0 || b > 0 && c > 0", Or(Gt(Var("a"), Num(0)), And(Gt(Var("b"), Num(0)), Gt(Var("c"), Num(0))))},
		{"(a > 0 || b > 0) && c > 0", And(Or(Gt(Var("a"), Num(0)), Gt(Var("b"), Num(0))), Gt(Var("c"), Num(0)))},
		{"!(x > 0) && !!(y < 1)", And(Not(Gt(Var("x"), Num(0))), Not(Not(Lt(Var("y"), Num(1)))))},
		{"x_1 * 1e3 > 2", Gt(Mul(Var("x_1"), Num(1000)), Num(2))},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			n, err := Parse(tc.input)
			require.NoError(t, err)
			assert.True(t, Equal(tc.expected, n), "expected %v, got %v", tc.expected, n)
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		input   string
		message string
	}{
		{"", "unexpected end of input"},
		{"x >", "unexpected end of input"},
		{"(x > 0", "expected ')'"},
		{"x > 0)", "after end of predicate"},
		{"0 < x < 1", "cannot be chained"},
		{"x + 1", "expected a predicate"},
		{"(x > 0) + 1 > 2", "expected an arithmetic expression"},
		{"x > 0 &&", "unexpected end of input"},
		{"x ? 1", "after end of predicate"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			_, err := Parse(tc.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("x +") })
	assert.NotPanics(t, func() { MustParse("x > 1") })
}

func TestStringRoundTrip(t *testing.T) {
	for _, src := range []string{
		"(x > 0)",
		"((x + (2 * y)) <= 3)",
		"((!(x == 1)) || (#v < -2.5))",
		"((-x) >= 0)",
	} {
		t.Run(src, func(t *testing.T) {
			n, err := Parse(src)
			require.NoError(t, err)
			assert.Equal(t, src, n.String())
		})
	}
}
