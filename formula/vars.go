package formula

import (
	"cmp"
	"fmt"
	"github.com/hashicorp/go-set/v3"
	"iter"
)

// Walk yields n and all of its descendants, parents before children
func Walk(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk(n, yield)
	}
}

func walk(n Node, yield func(Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, child := range n.Children() {
		if !walk(child, yield) {
			return false
		}
	}
	return true
}

// FreeVars returns the names of the variables mentioned in n, ordered by name
func FreeVars(n Node) *set.TreeSet[string] {
	vars := set.NewTreeSet[string](cmp.Compare[string])
	for node := range Walk(n) {
		if v, ok := node.(*Variable); ok {
			vars.Insert(v.Name)
		}
	}
	return vars
}

// Rename returns n with every occurrence of variable from replaced by to.
// Subtrees without from are shared with n.
func Rename(n Node, from, to string) Node {
	switch n := n.(type) {
	case *Variable:
		if n.Name == from {
			return Var(to)
		}
	case *Unary:
		if operand := Rename(n.Operand, from, to); operand != n.Operand {
			return &Unary{Op: n.Op, Operand: operand}
		}
	case *Binary:
		left, right := Rename(n.Left, from, to), Rename(n.Right, from, to)
		if left != n.Left || right != n.Right {
			return &Binary{Op: n.Op, Left: left, Right: right}
		}
	}
	return n
}

// Equal is structural equality of two formula trees
func Equal(a, b Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *Literal:
		other, ok := b.(*Literal)
		return ok && a.Value == other.Value
	case *Variable:
		other, ok := b.(*Variable)
		return ok && a.Name == other.Name
	}
	aChildren, bChildren := a.Children(), b.Children()
	if len(aChildren) != len(bChildren) {
		return false
	}
	for i := range aChildren {
		if !Equal(aChildren[i], bChildren[i]) {
			return false
		}
	}
	return true
}

// Check verifies that n is a well-formed predicate: connectives over predicates,
// comparisons over arithmetic, and arithmetic over arithmetic.
func Check(n Node) error {
	return check(n, true)
}

func check(n Node, wantBool bool) error {
	kind := n.Kind()
	if wantBool && !kind.IsBool() {
		return fmt.Errorf("expected a predicate, found arithmetic expression %v", n)
	}
	if !wantBool && !kind.IsArith() {
		return fmt.Errorf("expected an arithmetic expression, found predicate %v", n)
	}
	childrenBool := kind.IsLogical()
	for _, child := range n.Children() {
		if err := check(child, childrenBool); err != nil {
			return err
		}
	}
	return nil
}
