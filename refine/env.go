package refine

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/refine/fm"
	"github.com/cottand/refine/formula"
	"github.com/pkg/errors"
	"slices"
)

// Env maps variable names to their types. It is persistent: Bind returns a
// new Env and leaves the receiver untouched, so outer scopes survive inner bindings.
type Env struct {
	types *immutable.Map[string, Type]
}

func NewEnv() Env {
	return Env{types: immutable.NewMap[string, Type](immutable.NewHasher(""))}
}

func (e Env) m() *immutable.Map[string, Type] {
	if e.types == nil {
		return NewEnv().types
	}
	return e.types
}

// Bind returns e extended with name : t, shadowing any earlier binding of name
func (e Env) Bind(name string, t Type) Env {
	return Env{types: e.m().Set(name, t)}
}

func (e Env) Lookup(name string) (Type, error) {
	t, ok := e.m().Get(name)
	if !ok {
		return nil, errors.Errorf("unbound variable '%s'", name)
	}
	return t, nil
}

func (e Env) Has(name string) bool {
	_, ok := e.m().Get(name)
	return ok
}

func (e Env) Len() int { return e.m().Len() }

// Names returns the bound names, sorted
func (e Env) Names() []string {
	names := make([]string, 0, e.Len())
	it := e.m().Iterator()
	for !it.Done() {
		name, _, _ := it.Next()
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Assume returns what e says about the free variables of f.
//
// Each variable bound to a refinement contributes its predicate, with ValueVar
// renamed to the variable. Variables bound to a Real-based type are registered
// as real-valued in the returned copy of vars. Unbound variables are left alone.
func (e Env) Assume(f formula.Node, vars fm.VarInfo) ([]formula.Node, fm.VarInfo, error) {
	vars = vars.Clone()
	var facts []formula.Node
	for _, name := range formula.FreeVars(f).Slice() {
		t, ok := e.m().Get(name)
		if !ok {
			continue
		}
		base, ok := baseOf(t)
		if !ok {
			return nil, vars, errors.Errorf("variable '%s' has function type %v and cannot appear in a predicate", name, t)
		}
		if !base.integer() {
			if _, err := vars.FindOrAdd(name, false); err != nil {
				return nil, vars, err
			}
		}
		if refined, ok := t.(Refined); ok {
			facts = append(facts, formula.Rename(refined.Pred, ValueVar, name))
		}
	}
	return facts, vars, nil
}
