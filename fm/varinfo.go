package fm

import (
	"slices"
	"strings"
)

// VarInfo is the registry of variables of one decision query.
// Variable ids are positions in the registry, so every system and clause that
// takes part in the same query must carry the same registry (or a prefix of it).
//
// The zero value is empty and usable, with room for DefaultLimits.MaxVars variables.
type VarInfo struct {
	names   []string
	integer []bool
	max     int
}

func NewVarInfo(limits Limits) VarInfo {
	return VarInfo{max: limits.orDefault().MaxVars}
}

// FindOrAdd returns the id of name, registering it with the given domain if it is new.
//
// A name that is already registered keeps its id and its original domain:
// callers are expected to register each name with a consistent domain.
func (v *VarInfo) FindOrAdd(name string, integer bool) (int, error) {
	if id, ok := v.Find(name); ok {
		return id, nil
	}
	if len(v.names) >= v.capacity() {
		return -1, capacity(TooManyVars, v.capacity(), "variable '"+name+"'")
	}
	// clip so that appending never writes into a backing array shared with a copy
	v.names = append(slices.Clip(v.names), name)
	v.integer = append(slices.Clip(v.integer), integer)
	return len(v.names) - 1, nil
}

func (v VarInfo) Find(name string) (int, bool) {
	id := slices.Index(v.names, name)
	return id, id >= 0
}

func (v VarInfo) Len() int { return len(v.names) }

func (v VarInfo) Name(id int) string {
	v.checkID(id)
	return v.names[id]
}

func (v VarInfo) IsInteger(id int) bool {
	v.checkID(id)
	return v.integer[id]
}

// Names returns the registered names ordered by id
func (v VarInfo) Names() []string { return slices.Clone(v.names) }

func (v VarInfo) Clone() VarInfo {
	return VarInfo{
		names:   slices.Clone(v.names),
		integer: slices.Clone(v.integer),
		max:     v.max,
	}
}

// CompatibleWith reports whether every variable of the shorter registry sits at
// the same position in the longer one.
func (v VarInfo) CompatibleWith(other VarInfo) bool {
	smaller, larger := v, other
	if smaller.Len() > larger.Len() {
		smaller, larger = larger, smaller
	}
	for i, name := range smaller.names {
		if id, ok := larger.Find(name); !ok || id != i {
			return false
		}
	}
	return true
}

func (v VarInfo) String() string {
	sb := &strings.Builder{}
	sb.WriteString("[")
	for i, name := range v.names {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(name)
		if v.integer[i] {
			sb.WriteString(":int")
		} else {
			sb.WriteString(":real")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

func (v VarInfo) capacity() int {
	if v.max <= 0 {
		return DefaultLimits.MaxVars
	}
	return v.max
}

func (v VarInfo) checkID(id int) {
	if id < 0 || id >= len(v.names) {
		precondition(VarOutOfRange, "variable id %d is not registered in %v", id, v)
	}
}
