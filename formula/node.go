// Package formula holds the predicate trees that refinement types are annotated with.
//
// A formula is built from arithmetic nodes (literals, variables, +, -, unary -, *, /),
// comparisons between arithmetic nodes (==, <, >, <=, >=) and boolean connectives
// (&&, ||, !). This is the whole vocabulary the fm solver understands.
package formula

import (
	"fmt"
)

type Kind int

const (
	KindLit Kind = iota
	KindVar
	KindAdd
	KindSub
	KindNeg
	KindMul
	KindDiv
	KindEq
	KindLt
	KindGt
	KindLe
	KindGe
	KindAnd
	KindOr
	KindNot
)

var kindNames = [...]string{
	KindLit: "lit",
	KindVar: "var",
	KindAdd: "add",
	KindSub: "sub",
	KindNeg: "neg",
	KindMul: "mul",
	KindDiv: "div",
	KindEq:  "eq",
	KindLt:  "lt",
	KindGt:  "gt",
	KindLe:  "le",
	KindGe:  "ge",
	KindAnd: "land",
	KindOr:  "lor",
	KindNot: "lnot",
}

var kindSymbols = [...]string{
	KindAdd: "+",
	KindSub: "-",
	KindNeg: "-",
	KindMul: "*",
	KindDiv: "/",
	KindEq:  "==",
	KindLt:  "<",
	KindGt:  ">",
	KindLe:  "<=",
	KindGe:  ">=",
	KindAnd: "&&",
	KindOr:  "||",
	KindNot: "!",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Symbol is the infix or prefix operator for k, or the empty string for leaves
func (k Kind) Symbol() string {
	if k < 0 || int(k) >= len(kindSymbols) {
		return ""
	}
	return kindSymbols[k]
}

// IsArith is true for kinds which produce a number
func (k Kind) IsArith() bool {
	return k >= KindLit && k <= KindDiv
}

// IsComparison is true for kinds which compare two arithmetic operands
func (k Kind) IsComparison() bool {
	return k >= KindEq && k <= KindGe
}

// IsLogical is true for the boolean connectives
func (k Kind) IsLogical() bool {
	return k >= KindAnd && k <= KindNot
}

// IsBool is true for kinds which produce a truth value
func (k Kind) IsBool() bool {
	return k.IsComparison() || k.IsLogical()
}

var (
	_ Node = (*Literal)(nil)
	_ Node = (*Variable)(nil)
	_ Node = (*Unary)(nil)
	_ Node = (*Binary)(nil)
)

// Node is a single node of a formula tree.
// Nodes are never mutated once built, so subtrees may be shared freely.
type Node interface {
	fmt.Stringer
	Kind() Kind
	// Children returns the operands of the node, left to right
	Children() []Node
	isNode()
}

type Literal struct {
	Value float64
}

type Variable struct {
	Name string
}

// Unary is either a KindNeg or a KindNot node
type Unary struct {
	Op      Kind
	Operand Node
}

// Binary is any arithmetic, comparison or connective node with two operands
type Binary struct {
	Op          Kind
	Left, Right Node
}

func (*Literal) Kind() Kind  { return KindLit }
func (*Variable) Kind() Kind { return KindVar }
func (n *Unary) Kind() Kind  { return n.Op }
func (n *Binary) Kind() Kind { return n.Op }

func (*Literal) Children() []Node  { return nil }
func (*Variable) Children() []Node { return nil }
func (n *Unary) Children() []Node  { return []Node{n.Operand} }
func (n *Binary) Children() []Node { return []Node{n.Left, n.Right} }

func (*Literal) isNode()  {}
func (*Variable) isNode() {}
func (*Unary) isNode()    {}
func (*Binary) isNode()   {}
