// Package fm decides linear arithmetic over mixed integer and real variables.
//
// Predicates are parsed into a disjunction of conjunctive Systems of linear
// inequalities, and each System is decided by Fourier–Motzkin elimination with
// integer bound tightening. The procedure is sound; it is not complete for
// integer divisibility (see RoundIntegerBound).
package fm

import (
	"github.com/xtgo/set"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Limits bound the size of a query, and so its worst-case running time.
// A zero field means the corresponding field of DefaultLimits.
type Limits struct {
	MaxVars         int `yaml:"maxVars"`
	MaxIneqs        int `yaml:"maxIneqs"`
	MaxClauses      int `yaml:"maxClauses"`
	MaxTermsPerIneq int `yaml:"maxTermsPerIneq"`
}

var DefaultLimits = Limits{
	MaxVars:         16,
	MaxIneqs:        64,
	MaxClauses:      8,
	MaxTermsPerIneq: 8,
}

func (l Limits) orDefault() Limits {
	if l.MaxVars <= 0 {
		l.MaxVars = DefaultLimits.MaxVars
	}
	if l.MaxIneqs <= 0 {
		l.MaxIneqs = DefaultLimits.MaxIneqs
	}
	if l.MaxClauses <= 0 {
		l.MaxClauses = DefaultLimits.MaxClauses
	}
	if l.MaxTermsPerIneq <= 0 {
		l.MaxTermsPerIneq = DefaultLimits.MaxTermsPerIneq
	}
	return l
}

// LinearTerm is Coeff * x_Var
type LinearTerm struct {
	Var   int
	Coeff float64
}

// LinearInequality is Σ Terms + Constant >= 0, or > 0 when Strict.
//
// Every comparison is normalised to this form: a <= b is b - a >= 0,
// and a == b is the pair a - b >= 0, b - a >= 0.
type LinearInequality struct {
	Terms    []LinearTerm
	Constant float64
	Strict   bool
}

// NewInequality builds an inequality, rejecting more than limits.MaxTermsPerIneq terms
func NewInequality(limits Limits, terms []LinearTerm, constant float64, strict bool) (LinearInequality, error) {
	if maxTerms := limits.orDefault().MaxTermsPerIneq; len(terms) > maxTerms {
		return LinearInequality{}, capacity(TooManyTerms, maxTerms, strconv.Itoa(len(terms))+" terms")
	}
	return LinearInequality{Terms: slices.Clone(terms), Constant: constant, Strict: strict}, nil
}

// Coeff returns the coefficient of variable id, 0 if it does not occur
func (i LinearInequality) Coeff(id int) float64 {
	for _, t := range i.Terms {
		if t.Var == id {
			return t.Coeff
		}
	}
	return 0
}

// Negate flips every coefficient, the constant and the strictness:
// the negation of e >= 0 is -e > 0, and of e > 0 is -e >= 0
func (i LinearInequality) Negate() LinearInequality {
	terms := slices.Clone(i.Terms)
	for k := range terms {
		terms[k].Coeff = -terms[k].Coeff
	}
	return LinearInequality{Terms: terms, Constant: -i.Constant, Strict: !i.Strict}
}

func (i LinearInequality) clone() LinearInequality {
	i.Terms = slices.Clone(i.Terms)
	return i
}

func (i LinearInequality) String() string {
	return i.format(func(id int) string { return "x" + strconv.Itoa(id) })
}

func (i LinearInequality) format(name func(int) string) string {
	sb := &strings.Builder{}
	for k, t := range i.Terms {
		coeff := t.Coeff
		switch {
		case k == 0 && coeff < 0:
			sb.WriteString("-")
			coeff = -coeff
		case k > 0 && coeff < 0:
			sb.WriteString(" - ")
			coeff = -coeff
		case k > 0:
			sb.WriteString(" + ")
		}
		if coeff != 1 {
			sb.WriteString(strconv.FormatFloat(coeff, 'g', -1, 64))
			sb.WriteString("*")
		}
		sb.WriteString(name(t.Var))
	}
	switch {
	case len(i.Terms) == 0:
		sb.WriteString(strconv.FormatFloat(i.Constant, 'g', -1, 64))
	case i.Constant < 0:
		sb.WriteString(" - ")
		sb.WriteString(strconv.FormatFloat(-i.Constant, 'g', -1, 64))
	case i.Constant > 0:
		sb.WriteString(" + ")
		sb.WriteString(strconv.FormatFloat(i.Constant, 'g', -1, 64))
	}
	if i.Strict {
		sb.WriteString(" > 0")
	} else {
		sb.WriteString(" >= 0")
	}
	return sb.String()
}

// System is an immutable conjunction of inequalities over one VarInfo.
//
// Add returns a new System and leaves the receiver untouched, which lets the
// solver branch from a shared premise without copying it up front.
// Register every variable on the VarInfo before building the System,
// as the registry is copied into it.
type System struct {
	ineqs  []LinearInequality
	vars   VarInfo
	limits Limits
}

func NewSystem(vars VarInfo, limits Limits) System {
	return System{vars: vars.Clone(), limits: limits.orDefault()}
}

func (s System) Add(ineq LinearInequality) (System, error) {
	limits := s.limits.orDefault()
	if len(s.ineqs) >= limits.MaxIneqs {
		return s, capacity(TooManyIneqs, limits.MaxIneqs, ineq.String())
	}
	if len(ineq.Terms) > limits.MaxTermsPerIneq {
		return s, capacity(TooManyTerms, limits.MaxTermsPerIneq, ineq.String())
	}
	return System{
		ineqs:  append(slices.Clip(s.ineqs), ineq.clone()),
		vars:   s.vars,
		limits: limits,
	}, nil
}

// AddAll adds every inequality in order, failing on the first that does not fit
func (s System) AddAll(ineqs ...LinearInequality) (System, error) {
	var err error
	for _, ineq := range ineqs {
		if s, err = s.Add(ineq); err != nil {
			return s, err
		}
	}
	return s, nil
}

// WithVars returns the same inequalities over another registry.
// Used once parsing has discovered every variable of a query.
func (s System) WithVars(vars VarInfo) System {
	s.vars = vars.Clone()
	return s
}

func (s System) Len() int { return len(s.ineqs) }

func (s System) Ineq(i int) LinearInequality { return s.ineqs[i].clone() }

func (s System) Ineqs() []LinearInequality {
	ret := make([]LinearInequality, len(s.ineqs))
	for i, ineq := range s.ineqs {
		ret[i] = ineq.clone()
	}
	return ret
}

func (s System) Vars() VarInfo { return s.vars.Clone() }

func (s System) Limits() Limits { return s.limits.orDefault() }

// ActiveVars returns the sorted ids of the variables with a coefficient in some inequality
func (s System) ActiveVars() []int {
	var ids []int
	for _, ineq := range s.ineqs {
		for _, t := range ineq.Terms {
			if t.Coeff != 0 {
				ids = append(ids, t.Var)
			}
		}
	}
	sort.Ints(ids)
	return ids[:set.Uniq(sort.IntSlice(ids))]
}

func (s System) String() string {
	if len(s.ineqs) == 0 {
		return "true"
	}
	parts := make([]string, len(s.ineqs))
	for i, ineq := range s.ineqs {
		parts[i] = ineq.format(s.varName)
	}
	return strings.Join(parts, " ∧ ")
}

func (s System) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

func (s System) varName(id int) string {
	if id >= 0 && id < s.vars.Len() {
		return s.vars.Name(id)
	}
	return "x" + strconv.Itoa(id)
}

// DNF is an immutable disjunction of conjunctive clauses.
// The empty DNF is false.
type DNF struct {
	clauses []System
	limits  Limits
}

func NewDNF(limits Limits, clauses ...System) (DNF, error) {
	d := DNF{limits: limits.orDefault()}
	var err error
	for _, c := range clauses {
		if d, err = d.AddClause(c); err != nil {
			return d, err
		}
	}
	return d, nil
}

func (d DNF) AddClause(s System) (DNF, error) {
	limits := d.limits.orDefault()
	if len(d.clauses) >= limits.MaxClauses {
		return d, capacity(TooManyClauses, limits.MaxClauses, "clause "+s.String())
	}
	return DNF{
		clauses: append(slices.Clip(d.clauses), s),
		limits:  limits,
	}, nil
}

func (d DNF) Len() int { return len(d.clauses) }

func (d DNF) Clause(i int) System { return d.clauses[i] }

func (d DNF) Clauses() []System { return slices.Clone(d.clauses) }

func (d DNF) Limits() Limits { return d.limits.orDefault() }

// IsConjunctive is true when the DNF is a single clause
func (d DNF) IsConjunctive() bool { return len(d.clauses) == 1 }

// System returns the only clause of a conjunctive DNF.
// Calling it on any other DNF is a programming error.
func (d DNF) System() System {
	if !d.IsConjunctive() {
		precondition(NotConjunctive, "System() on a DNF with %d clauses", len(d.clauses))
	}
	return d.clauses[0]
}

// withVars stamps vars on every clause
func (d DNF) withVars(vars VarInfo) DNF {
	clauses := make([]System, len(d.clauses))
	for i, c := range d.clauses {
		clauses[i] = c.WithVars(vars)
	}
	return DNF{clauses: clauses, limits: d.limits}
}

func (d DNF) String() string {
	if len(d.clauses) == 0 {
		return "false"
	}
	parts := make([]string, len(d.clauses))
	for i, c := range d.clauses {
		parts[i] = "(" + c.String() + ")"
	}
	return strings.Join(parts, " ∨ ")
}

func (d DNF) LogValue() slog.Value {
	return slog.StringValue(d.String())
}
