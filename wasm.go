//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/cottand/refine/fm"
	"github.com/cottand/refine/formula"
	"github.com/cottand/refine/refine"
)

func main() {
	js.Global().Set("DecidePredicate", js.FuncOf(decidePredicate))
	js.Global().Set("CheckSubtype", js.FuncOf(checkSubtype))

	// wait indefinitely so that Go does not terminate execution
	// and the function remains available
	<-make(chan struct{})
}

// decidePredicate reports satisfiability and validity of args[0]
func decidePredicate(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "solver panicked: " + fmt.Sprint(r)
		}
	}()

	f, err := formula.Parse(args[0].String())
	if err != nil {
		return fmt.Sprintf("could not read predicate:\n\n%s", err)
	}
	d, _, err := fm.Default.Simplify(f, fm.VarInfo{})
	if err != nil {
		return fmt.Sprintf("could not decide predicate:\n\n%s", err)
	}
	valid, err := fm.IsValid(f)
	if err != nil {
		return fmt.Sprintf("could not decide predicate:\n\n%s", err)
	}
	return fmt.Sprintf("satisfiable: %t\nvalid: %t\nsimplified: %s", d.Len() != 0, valid, d)
}

// checkSubtype reports whether args[0] <: args[1]
func checkSubtype(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "solver panicked: " + fmt.Sprint(r)
		}
	}()

	sub, err := refine.ParseType(args[0].String())
	if err != nil {
		return fmt.Sprintf("could not read subtype:\n\n%s", err)
	}
	super, err := refine.ParseType(args[1].String())
	if err != nil {
		return fmt.Sprintf("could not read supertype:\n\n%s", err)
	}
	ok, err := refine.IsSubtype(sub, super)
	if err != nil {
		return fmt.Sprintf("could not decide subtyping:\n\n%s", err)
	}
	return fmt.Sprintf("%v <: %v: %t", sub, super, ok)
}
