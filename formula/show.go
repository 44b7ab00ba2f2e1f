package formula

import (
	"strconv"
	"strings"
)

func (n *Literal) String() string  { return formatNumber(n.Value) }
func (n *Variable) String() string { return n.Name }

func (n *Unary) String() string {
	return "(" + n.Op.Symbol() + n.Operand.String() + ")"
}

func (n *Binary) String() string {
	return "(" + n.Left.String() + " " + n.Op.Symbol() + " " + n.Right.String() + ")"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// GoIdent maps a formula variable name to a valid Go identifier.
// The value variable of refinement types, #v, becomes v_hash_v.
func GoIdent(name string) string {
	if strings.HasPrefix(name, "#") {
		return "v_hash_" + name[1:]
	}
	return name
}

// GoExpr renders n as a Go expression over float64 variables named by GoIdent.
// Literals always render as floating point constants, so that constant division
// does not become integer division.
func GoExpr(n Node) string {
	sb := &strings.Builder{}
	writeGoExpr(sb, n)
	return sb.String()
}

func writeGoExpr(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Literal:
		s := formatNumber(n.Value)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		if n.Value < 0 {
			s = "(" + s + ")"
		}
		sb.WriteString(s)
	case *Variable:
		sb.WriteString(GoIdent(n.Name))
	case *Unary:
		sb.WriteString("(")
		sb.WriteString(n.Op.Symbol())
		writeGoExpr(sb, n.Operand)
		sb.WriteString(")")
	case *Binary:
		sb.WriteString("(")
		writeGoExpr(sb, n.Left)
		sb.WriteString(" ")
		sb.WriteString(n.Op.Symbol())
		sb.WriteString(" ")
		writeGoExpr(sb, n.Right)
		sb.WriteString(")")
	default:
		panic("unhandled node type in GoExpr")
	}
}
