package refine

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/refine/fm"
	"github.com/cottand/refine/formula"
	"github.com/pkg/errors"
)

// Constraint is a proof obligation: Formula must be valid.
// Origin names where the obligation came from, for error reporting.
type Constraint struct {
	Formula formula.Node
	Origin  string
}

// ConstraintSet is a persistent collection of obligations, in insertion order
type ConstraintSet struct {
	list *immutable.List[Constraint]
}

func NewConstraintSet(cs ...Constraint) ConstraintSet {
	return ConstraintSet{list: immutable.NewList(cs...)}
}

func (s ConstraintSet) l() *immutable.List[Constraint] {
	if s.list == nil {
		return immutable.NewList[Constraint]()
	}
	return s.list
}

func (s ConstraintSet) Add(f formula.Node, origin string) ConstraintSet {
	return ConstraintSet{list: s.l().Append(Constraint{Formula: f, Origin: origin})}
}

// Merge returns the obligations of s followed by those of other
func (s ConstraintSet) Merge(other ConstraintSet) ConstraintSet {
	merged := s.l()
	it := other.l().Iterator()
	for !it.Done() {
		_, c := it.Next()
		merged = merged.Append(c)
	}
	return ConstraintSet{list: merged}
}

func (s ConstraintSet) Len() int { return s.l().Len() }

func (s ConstraintSet) Constraints() []Constraint {
	cs := make([]Constraint, 0, s.Len())
	it := s.l().Iterator()
	for !it.Done() {
		_, c := it.Next()
		cs = append(cs, c)
	}
	return cs
}

// Check decides every obligation with solver, using vars for variable domains,
// and returns the origins of those that are not valid.
// It stops at the first obligation the solver cannot decide.
func (s ConstraintSet) Check(solver fm.Solver, vars fm.VarInfo) ([]string, error) {
	var failed []string
	for _, c := range s.Constraints() {
		valid, err := solver.IsValidWith(c.Formula, vars)
		if err != nil {
			return failed, errors.Wrapf(err, "obligation %s", c.Origin)
		}
		if !valid {
			failed = append(failed, c.Origin)
		}
	}
	return failed, nil
}
