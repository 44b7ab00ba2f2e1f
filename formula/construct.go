package formula

// Arithmetic

func Num(v float64) Node    { return &Literal{Value: v} }
func Var(name string) Node  { return &Variable{Name: name} }
func Add(l, r Node) Node    { return &Binary{Op: KindAdd, Left: l, Right: r} }
func Sub(l, r Node) Node    { return &Binary{Op: KindSub, Left: l, Right: r} }
func Mul(l, r Node) Node    { return &Binary{Op: KindMul, Left: l, Right: r} }
func Div(l, r Node) Node    { return &Binary{Op: KindDiv, Left: l, Right: r} }
func Neg(operand Node) Node { return &Unary{Op: KindNeg, Operand: operand} }

// Comparisons

func Eq(l, r Node) Node { return &Binary{Op: KindEq, Left: l, Right: r} }
func Lt(l, r Node) Node { return &Binary{Op: KindLt, Left: l, Right: r} }
func Gt(l, r Node) Node { return &Binary{Op: KindGt, Left: l, Right: r} }
func Le(l, r Node) Node { return &Binary{Op: KindLe, Left: l, Right: r} }
func Ge(l, r Node) Node { return &Binary{Op: KindGe, Left: l, Right: r} }

// Ne is sugar for !(l == r), there is no dedicated node kind for it
func Ne(l, r Node) Node { return Not(Eq(l, r)) }

// Connectives

func And(l, r Node) Node    { return &Binary{Op: KindAnd, Left: l, Right: r} }
func Or(l, r Node) Node     { return &Binary{Op: KindOr, Left: l, Right: r} }
func Not(operand Node) Node { return &Unary{Op: KindNot, Operand: operand} }

// AllOf left-folds conjuncts with And
func AllOf(first Node, rest ...Node) Node {
	current := first
	for _, n := range rest {
		current = And(current, n)
	}
	return current
}

// AnyOf left-folds disjuncts with Or
func AnyOf(first Node, rest ...Node) Node {
	current := first
	for _, n := range rest {
		current = Or(current, n)
	}
	return current
}

// Implies builds !premise || conclusion
func Implies(premise, conclusion Node) Node {
	return Or(Not(premise), conclusion)
}

// Between builds lo <= x && x <= hi
func Between(x Node, lo, hi float64) Node {
	return And(Ge(x, Num(lo)), Le(x, Num(hi)))
}
