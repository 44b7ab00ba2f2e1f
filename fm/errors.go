package fm

import (
	"errors"
	"fmt"
	"github.com/cottand/refine/formula"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include the frame that created them when printed
const enableDebugErrorPrinting bool = false

type ErrCode int

const (
	None ErrCode = iota

	// the formula is outside the linear fragment
	NonLinearMultiplication
	NonLinearDivision
	DivisionByZero
	UnsupportedNode
	NonFiniteLiteral

	// the formula is outside the configured size envelope
	TooManyVars
	TooManyIneqs
	TooManyClauses
	TooManyTerms

	// internal call sequencing is wrong
	IncompatibleVarOrder
	ResidualVariableTerms
	NotConjunctive
	VarOutOfRange
)

type Error interface {
	Error() string
	Code() ErrCode

	withStack([]byte) Error
	getStack() []byte
}

// New records the stack at the point of creation, so that FormatWithCode can
// show where an error was raised
func New[E Error](err E) Error {
	return err.withStack(debug.Stack())
}

func FormatWithCode(e Error) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		lines := strings.Split(string(e.getStack()), "\n")
		if len(lines) > 6 {
			return fmt.Sprintf("%s:(E%03d) %s", strings.TrimSpace(lines[6]), e.Code(), e.Error())
		}
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

// NonLinearError means a predicate cannot be represented as linear inequalities
type NonLinearError struct {
	code  ErrCode
	Node  formula.Node
	stack []byte
}

func (e NonLinearError) Error() string {
	var reason string
	switch e.code {
	case NonLinearMultiplication:
		reason = "non-linear: variable * variable"
	case NonLinearDivision:
		reason = "non-linear: division by variable"
	case DivisionByZero:
		reason = "division by zero"
	case NonFiniteLiteral:
		reason = "literal is not a finite number"
	default:
		reason = "unsupported node in refinement predicate"
	}
	if e.Node == nil {
		return reason
	}
	return fmt.Sprintf("%s in %v", reason, e.Node)
}
func (e NonLinearError) Code() ErrCode    { return e.code }
func (e NonLinearError) getStack() []byte { return e.stack }
func (e NonLinearError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

// CapacityError means a query exceeded one of the configured Limits
type CapacityError struct {
	code  ErrCode
	Limit int
	// What describes the item which did not fit
	What  string
	stack []byte
}

func (e CapacityError) Error() string {
	var bound string
	switch e.code {
	case TooManyVars:
		bound = "variables"
	case TooManyIneqs:
		bound = "inequalities per system"
	case TooManyClauses:
		bound = "DNF clauses"
	case TooManyTerms:
		bound = "terms per inequality"
	}
	msg := fmt.Sprintf("capacity exceeded: at most %d %s allowed", e.Limit, bound)
	if e.What != "" {
		msg += ", could not fit " + e.What
	}
	return msg
}
func (e CapacityError) Code() ErrCode    { return e.code }
func (e CapacityError) getStack() []byte { return e.stack }
func (e CapacityError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

// PreconditionError signals a bug in how the solver's own operations were sequenced.
// It is always raised with panic, never returned.
type PreconditionError struct {
	code   ErrCode
	Detail string
	stack  []byte
}

func (e PreconditionError) Error() string {
	return "precondition violated: " + e.Detail
}
func (e PreconditionError) Code() ErrCode    { return e.code }
func (e PreconditionError) getStack() []byte { return e.stack }
func (e PreconditionError) withStack(stack []byte) Error {
	e.stack = stack
	return e
}

func nonLinear(code ErrCode, node formula.Node) Error {
	return New(NonLinearError{code: code, Node: node})
}

func capacity(code ErrCode, limit int, what string) Error {
	return New(CapacityError{code: code, Limit: limit, What: what})
}

func precondition(code ErrCode, format string, args ...any) {
	panic(New(PreconditionError{code: code, Detail: fmt.Sprintf(format, args...)}))
}

// IsNonLinear reports whether err means the predicate is outside the linear fragment
func IsNonLinear(err error) bool {
	var target NonLinearError
	return errors.As(err, &target)
}

// IsCapacity reports whether err means the predicate is too large for the configured Limits
func IsCapacity(err error) bool {
	var target CapacityError
	return errors.As(err, &target)
}

// CodeOf returns the ErrCode of the first Error in err's chain, or None
func CodeOf(err error) ErrCode {
	var target Error
	if errors.As(err, &target) {
		return target.Code()
	}
	return None
}
