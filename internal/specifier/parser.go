// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package specifier parses routine specifier strings, the source text
// naming the implementation of a routine. A specifier is either the
// ordinary form
//
//	[<return type>=]<class>.<method>[(<parameter types>)]
//
// or the user-defined type form
//
//	udt[<class>]<operation>
//
// where <operation> is input, output, receive or send, matched without
// regard to case.
package specifier

import (
	"fmt"
	"strings"

	"github.com/canonical/procair/catalog"
)

// Parse normalizes source and parses it as a routine specifier.
func Parse(source string) (spec Spec, err error) {
	defer func() {
		if err != nil {
			err = catalog.Errorf(catalog.CodeSyntax, "cannot parse routine specifier %q: %s", source, err)
		}
	}()

	p := &parser{input: Normalize(source)}
	if udt, ok, err := p.parseUserTypeForm(); err != nil {
		return nil, err
	} else if ok {
		return udt, nil
	}
	return p.parseRoutineForm()
}

// Normalize prepares a routine specifier for parsing. Whitespace is not
// significant anywhere in a specifier, and the = after a leading return
// type hint may be left out when whitespace separates the hint from the
// class name, as in "int examples.Adder.add". Normalize inserts the = in
// that case and then strips every whitespace character.
func Normalize(source string) string {
	s := source
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	j := i
	for j < len(s) && isAlnum(s[j]) {
		j++
	}
	k := j
	for k < len(s) && isSpace(s[k]) {
		k++
	}
	if j > i && k > j && k < len(s) && isAlpha(s[k]) {
		s = s[i:j] + "=" + s[k:]
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// parser walks a normalized specifier. Specifiers are short single-line
// strings of ASCII structure, so the parser tracks only a byte position.
type parser struct {
	input string
	pos   int
}

// parseUserTypeForm parses the udt[<class>]<operation> form. It returns
// (nil, false, nil) if the input does not open with the udt marker. An
// input that does open with the marker must complete the form; it is never
// reparsed as the ordinary form.
func (p *parser) parseUserTypeForm() (*UserTypeSpec, bool, error) {
	if !p.skipStringCI("udt[") {
		return nil, false, nil
	}
	name, ok := p.takeUntilByte(']')
	if !ok {
		return nil, false, fmt.Errorf("missing closing ] in user-type form")
	}
	if name == "" {
		return nil, false, fmt.Errorf("missing class name in user-type form")
	}
	op := p.rest()
	if !isUserTypeOp(op) {
		return nil, false, fmt.Errorf("unknown user-type operation %q", op)
	}
	return &UserTypeSpec{ClassName: name, Op: op}, true, nil
}

// parseRoutineForm parses the [<return>=]<class>.<method>[(<signature>)]
// form. The return type hint runs to the first = in the specifier and the
// method name follows the last dot before the signature, so neither class
// nor method names need quoting.
func (p *parser) parseRoutineForm() (*RoutineSpec, error) {
	var spec RoutineSpec
	rest := p.rest()

	if i := strings.IndexByte(rest, '='); i > 0 {
		spec.ReturnType = rest[:i]
		rest = rest[i+1:]
	}

	if i := strings.IndexByte(rest, '('); i >= 0 {
		if rest[len(rest)-1] != ')' {
			return nil, fmt.Errorf("missing closing ) after parameter signature")
		}
		sig := rest[i+1 : len(rest)-1]
		if strings.ContainsRune(sig, ')') {
			return nil, fmt.Errorf("text after closing ) of parameter signature")
		}
		spec.Signature = &sig
		rest = rest[:i]
	}

	dot := strings.LastIndexByte(rest, '.')
	if dot < 0 {
		return nil, fmt.Errorf("missing . between class and method names")
	}
	cls, meth := rest[:dot], rest[dot+1:]
	if meth == "" {
		return nil, fmt.Errorf("missing method name")
	}
	for _, seg := range strings.Split(cls, ".") {
		if seg == "" {
			return nil, fmt.Errorf("empty segment in class name %q", cls)
		}
	}
	spec.ClassName = cls
	spec.MethodName = meth
	return &spec, nil
}

// skipStringCI jumps over s if the input continues with it, comparing
// letters without regard to case. Returns true in that case.
func (p *parser) skipStringCI(s string) bool {
	if len(p.input) >= p.pos+len(s) && strings.EqualFold(p.input[p.pos:p.pos+len(s)], s) {
		p.pos += len(s)
		return true
	}
	return false
}

// takeUntilByte returns the input up to the next occurrence of b and jumps
// over both. It reports false if b does not occur in the remaining input.
func (p *parser) takeUntilByte(b byte) (string, bool) {
	i := strings.IndexByte(p.input[p.pos:], b)
	if i < 0 {
		return "", false
	}
	s := p.input[p.pos : p.pos+i]
	p.pos += i + 1
	return s, true
}

// rest returns the unconsumed input.
func (p *parser) rest() string {
	return p.input[p.pos:]
}

func isUserTypeOp(op string) bool {
	for _, known := range []string{"input", "output", "receive", "send"} {
		if strings.EqualFold(op, known) {
			return true
		}
	}
	return false
}

// isSpace matches the whitespace characters Normalize strips: space, tab,
// newline, vertical tab, form feed and carriage return.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isAlpha(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isAlnum(b byte) bool {
	return isAlpha(b) || '0' <= b && b <= '9'
}
