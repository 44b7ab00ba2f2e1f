package formula

import (
	"github.com/pkg/errors"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"
)

// Parse reads a predicate written with Go-like operators, for example
//
//	#v >= 0 && #v < 10 || !(y == 2 * #v)
//
// Precedence from loosest to tightest is ||, &&, comparisons, + and -, * and /, then prefix - and !.
// Comparisons do not chain. a != b is read as !(a == b).
func Parse(src string) (Node, error) {
	p := newTextParser(src)
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok != scanner.EOF {
		return nil, p.errorf("unexpected %s after end of predicate", p.describe())
	}
	if len(p.scanErrs) != 0 {
		return nil, errors.New(strings.Join(p.scanErrs, "; "))
	}
	if err := Check(n); err != nil {
		return nil, errors.Wrapf(err, "in %q", src)
	}
	return n, nil
}

// MustParse is like Parse but panics on error. Meant for tests and fixed tables.
func MustParse(src string) Node {
	n, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return n
}

type textParser struct {
	s        scanner.Scanner
	tok      rune
	text     string
	pos      scanner.Position
	scanErrs []string
}

func newTextParser(src string) *textParser {
	p := &textParser{}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanFloats | scanner.ScanInts | scanner.SkipComments
	p.s.IsIdentRune = func(ch rune, i int) bool {
		return ch == '#' && i == 0 || ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch) && i > 0
	}
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.scanErrs = append(p.scanErrs, s.Position.String()+": "+msg)
	}
	p.next()
	return p
}

// two-character operators are folded into a single token text
func (p *textParser) next() {
	p.tok = p.s.Scan()
	p.pos = p.s.Position
	p.text = p.s.TokenText()
	switch p.tok {
	case '&', '|':
		if p.s.Peek() == p.tok {
			p.s.Next()
			p.text += p.text
		}
	case '=', '!', '<', '>':
		if p.s.Peek() == '=' {
			p.s.Next()
			p.text += "="
		}
	}
}

func (p *textParser) describe() string {
	if p.tok == scanner.EOF {
		return "end of input"
	}
	return "'" + p.text + "'"
}

func (p *textParser) errorf(format string, args ...any) error {
	return errors.Wrapf(errors.Errorf(format, args...), "column %d", p.pos.Column)
}

func (p *textParser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.text == "||" {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or(left, right)
	}
	return left, nil
}

func (p *textParser) parseAnd() (Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.text == "&&" {
		p.next()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = And(left, right)
	}
	return left, nil
}

var comparisonBuilders = map[string]func(l, r Node) Node{
	"==": Eq,
	"!=": Ne,
	"<":  Lt,
	"<=": Le,
	">":  Gt,
	">=": Ge,
}

func (p *textParser) parseComparison() (Node, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	build, ok := comparisonBuilders[p.text]
	if !ok || p.tok == scanner.EOF {
		return left, nil
	}
	p.next()
	right, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if _, chained := comparisonBuilders[p.text]; chained {
		return nil, p.errorf("comparisons cannot be chained, found %s", p.describe())
	}
	return build(left, right), nil
}

func (p *textParser) parseSum() (Node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.text == "+" || p.text == "-" {
		op := p.text
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		if op == "+" {
			left = Add(left, right)
		} else {
			left = Sub(left, right)
		}
	}
	return left, nil
}

func (p *textParser) parseProduct() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.text == "*" || p.text == "/" {
		op := p.text
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == "*" {
			left = Mul(left, right)
		} else {
			left = Div(left, right)
		}
	}
	return left, nil
}

func (p *textParser) parseUnary() (Node, error) {
	switch p.text {
	case "-":
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if lit, ok := operand.(*Literal); ok {
			return Num(-lit.Value), nil
		}
		return Neg(operand), nil
	case "!":
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not(operand), nil
	}
	return p.parsePrimary()
}

func (p *textParser) parsePrimary() (Node, error) {
	switch p.tok {
	case scanner.Int, scanner.Float:
		v, err := strconv.ParseFloat(p.text, 64)
		if err != nil {
			return nil, p.errorf("invalid number '%s'", p.text)
		}
		p.next()
		return Num(v), nil
	case scanner.Ident:
		name := p.text
		p.next()
		return Var(name), nil
	case '(':
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok != ')' {
			return nil, p.errorf("expected ')', found %s", p.describe())
		}
		p.next()
		return inner, nil
	}
	return nil, p.errorf("unexpected %s", p.describe())
}
