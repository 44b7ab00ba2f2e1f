// Package refine implements refinement types over the linear predicates decided by package fm.
//
// A refinement type {#v : Int | #v > 0} is a base type narrowed by a predicate over
// the value variable #v. Subtyping between refinements reduces to implication
// between their predicates.
package refine

import (
	"github.com/cottand/refine/formula"
)

// ValueVar is the variable a refinement predicate uses to refer to the refined value
const ValueVar = "#v"

type Type interface {
	String() string
	isType()
}

// Base is an unrefined primitive type. Bool <: Int <: Real.
type Base int

const (
	Bool Base = iota
	Int
	Real
)

var baseNames = [...]string{
	Bool: "Bool",
	Int:  "Int",
	Real: "Real",
}

func (b Base) String() string {
	if b < 0 || int(b) >= len(baseNames) {
		return "Base(?)"
	}
	return baseNames[b]
}

// integer reports whether the value variable of this base ranges over integers
func (b Base) integer() bool { return b != Real }

// Refined is {#v : Base | Pred}
type Refined struct {
	Base Base
	Pred formula.Node
}

func (r Refined) String() string {
	return "{" + ValueVar + " : " + r.Base.String() + " | " + r.Pred.String() + "}"
}

// Arrow is the dependent function type (Param : In) -> Out.
// Out may refer to Param.
type Arrow struct {
	Param   string
	In, Out Type
}

func (a Arrow) String() string {
	return "(" + a.Param + " : " + a.In.String() + ") -> " + a.Out.String()
}

func (Base) isType()    {}
func (Refined) isType() {}
func (Arrow) isType()   {}

// Refine builds a refinement of base, with pred over ValueVar
func Refine(base Base, pred formula.Node) Refined {
	return Refined{Base: base, Pred: pred}
}

// PosInt is {#v : Int | #v > 0}
func PosInt() Refined {
	return Refine(Int, formula.Gt(formula.Var(ValueVar), formula.Num(0)))
}

// NatInt is {#v : Int | #v >= 0}
func NatInt() Refined {
	return Refine(Int, formula.Ge(formula.Var(ValueVar), formula.Num(0)))
}

// Equal is structural equality. Predicates are compared as trees, so
// logically equivalent but differently written refinements are not Equal.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case Base:
		other, ok := b.(Base)
		return ok && a == other
	case Refined:
		other, ok := b.(Refined)
		return ok && a.Base == other.Base && formula.Equal(a.Pred, other.Pred)
	case Arrow:
		other, ok := b.(Arrow)
		return ok && a.Param == other.Param && Equal(a.In, other.In) && Equal(a.Out, other.Out)
	}
	return false
}

// Strip erases every refinement in t, leaving its shape over base types
func Strip(t Type) Type {
	switch t := t.(type) {
	case Refined:
		return t.Base
	case Arrow:
		return Arrow{Param: t.Param, In: Strip(t.In), Out: Strip(t.Out)}
	}
	return t
}
