package refine

import (
	"github.com/cottand/refine/formula"
	"github.com/pkg/errors"
	"strings"
	"unicode"
)

// ParseType reads a type in the notation its String method prints:
//
//	Int
//	{#v : Int | #v > 0}
//	(x : {#v : Int | #v >= 0}) -> {#v : Int | #v > x}
func ParseType(src string) (Type, error) {
	r := &typeReader{src: src}
	t, err := r.readType()
	if err != nil {
		return nil, errors.Wrapf(err, "in type %q", src)
	}
	r.skipSpace()
	if r.pos != len(r.src) {
		return nil, errors.Errorf("in type %q: unexpected %q at offset %d", src, r.src[r.pos:], r.pos)
	}
	return t, nil
}

func MustParseType(src string) Type {
	t, err := ParseType(src)
	if err != nil {
		panic(err)
	}
	return t
}

type typeReader struct {
	src string
	pos int
}

func (r *typeReader) skipSpace() {
	for r.pos < len(r.src) && unicode.IsSpace(rune(r.src[r.pos])) {
		r.pos++
	}
}

func (r *typeReader) peek(lit string) bool {
	r.skipSpace()
	return strings.HasPrefix(r.src[r.pos:], lit)
}

func (r *typeReader) expect(lit string) error {
	if !r.peek(lit) {
		return errors.Errorf("expected '%s' at offset %d", lit, r.pos)
	}
	r.pos += len(lit)
	return nil
}

func (r *typeReader) ident() (string, error) {
	r.skipSpace()
	start := r.pos
	for r.pos < len(r.src) {
		c := rune(r.src[r.pos])
		if c != '_' && !unicode.IsLetter(c) && !(unicode.IsDigit(c) && r.pos > start) {
			break
		}
		r.pos++
	}
	if start == r.pos {
		return "", errors.Errorf("expected a name at offset %d", start)
	}
	return r.src[start:r.pos], nil
}

func (r *typeReader) base() (Base, error) {
	start := r.pos
	name, err := r.ident()
	if err != nil {
		return 0, err
	}
	for b, n := range baseNames {
		if n == name {
			return Base(b), nil
		}
	}
	return 0, errors.Errorf("unknown base type '%s' at offset %d", name, start)
}

func (r *typeReader) readType() (Type, error) {
	switch {
	case r.peek("{"):
		return r.readRefined()
	case r.peek("("):
		return r.readArrow()
	}
	b, err := r.base()
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *typeReader) readRefined() (Type, error) {
	if err := r.expect("{"); err != nil {
		return nil, err
	}
	if err := r.expect(ValueVar); err != nil {
		return nil, err
	}
	if err := r.expect(":"); err != nil {
		return nil, err
	}
	base, err := r.base()
	if err != nil {
		return nil, err
	}
	if r.peek("||") {
		return nil, errors.Errorf("expected '|' at offset %d", r.pos)
	}
	if err := r.expect("|"); err != nil {
		return nil, err
	}
	end := strings.IndexByte(r.src[r.pos:], '}')
	if end < 0 {
		return nil, errors.Errorf("unclosed refinement starting before offset %d", r.pos)
	}
	pred, err := formula.Parse(r.src[r.pos : r.pos+end])
	if err != nil {
		return nil, err
	}
	r.pos += end + 1
	return Refine(base, pred), nil
}

func (r *typeReader) readArrow() (Type, error) {
	if err := r.expect("("); err != nil {
		return nil, err
	}
	param, err := r.ident()
	if err != nil {
		return nil, err
	}
	if err := r.expect(":"); err != nil {
		return nil, err
	}
	in, err := r.readType()
	if err != nil {
		return nil, err
	}
	if err := r.expect(")"); err != nil {
		return nil, err
	}
	if err := r.expect("->"); err != nil {
		return nil, err
	}
	out, err := r.readType()
	if err != nil {
		return nil, err
	}
	return Arrow{Param: param, In: in, Out: out}, nil
}
