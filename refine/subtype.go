package refine

import (
	"github.com/cottand/refine/fm"
	"github.com/cottand/refine/formula"
	"github.com/cottand/refine/internal/log"
	"github.com/pkg/errors"
	"log/slog"
)

// Checker decides subtyping between refinement types by asking Solver
// whether one predicate implies another.
type Checker struct {
	Solver fm.Solver
	Logger *slog.Logger
}

var DefaultChecker = Checker{
	Solver: fm.Default,
	Logger: log.DefaultLogger.With("section", "refine.subtype"),
}

func (c Checker) logger() *slog.Logger {
	if c.Logger == nil {
		return DefaultChecker.Logger
	}
	return c.Logger
}

// baseWidens reports whether sub widens to super, Bool <: Int <: Real
func baseWidens(sub, super Base) bool {
	return sub == super || sub < super
}

func baseOf(t Type) (Base, bool) {
	switch t := t.(type) {
	case Base:
		return t, true
	case Refined:
		return t.Base, true
	}
	return 0, false
}

// wider is the least base both a and b widen to
func wider(a, b Base) Base {
	return max(a, b)
}

// valueVars registers ValueVar with the domain of base
func (c Checker) valueVars(base Base) (fm.VarInfo, error) {
	vars := fm.NewVarInfo(c.Solver.Limits)
	if _, err := vars.FindOrAdd(ValueVar, base.integer()); err != nil {
		return fm.VarInfo{}, err
	}
	return vars, nil
}

// IsSubtype reports whether every value of sub is a value of super.
//
// Refinements are compared by implication of their predicates, deciding
// ValueVar over the integers unless the relevant base is Real. Arrows are
// contravariant in their input and covariant in their output.
func (c Checker) IsSubtype(sub, super Type) (bool, error) {
	if Equal(sub, super) {
		return true, nil
	}
	logger := c.logger()

	switch sub := sub.(type) {
	case Base:
		switch super := super.(type) {
		case Base:
			return baseWidens(sub, super), nil
		case Refined:
			if !baseWidens(sub, super.Base) {
				return false, nil
			}
			vars, err := c.valueVars(super.Base)
			if err != nil {
				return false, err
			}
			valid, err := c.Solver.IsValidWith(super.Pred, vars)
			if err != nil {
				return false, errors.Wrapf(err, "checking %v <: %v", sub, super)
			}
			logger.Debug("base against refinement", "sub", sub, "super", super, "subtype", valid)
			return valid, nil
		}

	case Refined:
		switch super := super.(type) {
		case Base:
			return baseWidens(sub.Base, super), nil
		case Refined:
			if !baseWidens(sub.Base, super.Base) {
				return false, nil
			}
			vars, err := c.valueVars(sub.Base)
			if err != nil {
				return false, err
			}
			valid, err := c.Solver.IsValidImplicationWith(sub.Pred, super.Pred, vars)
			if err != nil {
				return false, errors.Wrapf(err, "checking %v <: %v", sub, super)
			}
			logger.Debug("refinement against refinement", "sub", sub, "super", super, "subtype", valid)
			return valid, nil
		}

	case Arrow:
		super, ok := super.(Arrow)
		if !ok {
			return false, nil
		}
		in, err := c.IsSubtype(super.In, sub.In)
		if err != nil || !in {
			return false, err
		}
		return c.IsSubtype(sub.Out, super.Out)
	}
	return false, nil
}

// Join is the least upper bound of a and b. Two refinements join to the
// disjunction of their predicates. A refinement and a base join to the wider base.
func (c Checker) Join(a, b Type) (Type, error) {
	if Equal(a, b) {
		return a, nil
	}
	baseA, okA := baseOf(a)
	baseB, okB := baseOf(b)
	if !okA || !okB {
		return nil, errors.Errorf("incompatible types for join: %v and %v", a, b)
	}
	refA, refinedA := a.(Refined)
	refB, refinedB := b.(Refined)
	if refinedA && refinedB {
		joined := Refine(wider(baseA, baseB), formula.Or(refA.Pred, refB.Pred))
		c.logger().Debug("joined refinements", "left", a, "right", b, "joined", joined)
		return joined, nil
	}
	return wider(baseA, baseB), nil
}

func IsSubtype(sub, super Type) (bool, error) { return DefaultChecker.IsSubtype(sub, super) }
func Join(a, b Type) (Type, error)            { return DefaultChecker.Join(a, b) }
