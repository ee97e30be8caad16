// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package specifier

import (
	"strings"

	"github.com/canonical/procair/catalog"
)

// Spec is one parsed routine specifier: a *RoutineSpec or a *UserTypeSpec.
type Spec interface {
	// String reconstructs the normalized specifier.
	String() string
	spec()
}

// RoutineSpec is the ordinary specifier form naming a class and method,
// with an optional return type hint and an optional explicit parameter
// signature.
type RoutineSpec struct {
	// ReturnType is the declared return type hint, empty when absent.
	ReturnType string
	// ClassName is the qualified name of the implementing class.
	ClassName string
	// MethodName is the entry point's name within the class.
	MethodName string
	// Signature is the explicit parameter signature with its parentheses
	// removed. Nil when the specifier has no signature; a specifier
	// written with () has the empty one.
	Signature *string
}

func (s *RoutineSpec) spec() {}

func (s *RoutineSpec) String() string {
	var b strings.Builder
	if s.ReturnType != "" {
		b.WriteString(s.ReturnType)
		b.WriteByte('=')
	}
	b.WriteString(s.ClassName)
	b.WriteByte('.')
	b.WriteString(s.MethodName)
	if s.Signature != nil {
		b.WriteByte('(')
		b.WriteString(*s.Signature)
		b.WriteByte(')')
	}
	return b.String()
}

// UserTypeSpec is the udt[<class>]<operation> specifier form binding a
// class to a user-defined type conversion.
type UserTypeSpec struct {
	// ClassName is the qualified name of the mapped class.
	ClassName string
	// Op is the operation word as written: input, output, receive or
	// send in any case.
	Op string
}

func (s *UserTypeSpec) spec() {}

func (s *UserTypeSpec) String() string {
	return "udt[" + s.ClassName + "]" + s.Op
}

// SplitSignature splits an explicit parameter signature into its type name
// fields. A comma splits only when the characters on both sides are not
// themselves commas, so doubled, leading and trailing commas are never
// split points; they leave a comma inside a field instead, and any field
// that is empty or retains a comma makes the signature malformed. The
// empty signature has no fields.
func SplitSignature(sig string) ([]string, error) {
	if sig == "" {
		return []string{}, nil
	}
	var fields []string
	start := 0
	for i := 0; i < len(sig); i++ {
		if sig[i] != ',' {
			continue
		}
		if i > 0 && sig[i-1] != ',' && i+1 < len(sig) && sig[i+1] != ',' {
			fields = append(fields, sig[start:i])
			start = i + 1
		}
	}
	fields = append(fields, sig[start:])
	for _, f := range fields {
		if f == "" || strings.ContainsRune(f, ',') {
			return nil, catalog.Errorf(catalog.CodeSyntax, "malformed parameter signature %q", sig)
		}
	}
	return fields, nil
}

// TypeToken is one type name as written in a specifier: a base name
// followed by one [] marker per array dimension.
type TypeToken struct {
	Base string
	Dims int
}

// ParseTypeToken splits a type name into its base name and array
// dimensions.
func ParseTypeToken(s string) (TypeToken, error) {
	i := strings.IndexByte(s, '[')
	if i < 0 {
		if s == "" {
			return TypeToken{}, catalog.Errorf(catalog.CodeSyntax, "empty type name")
		}
		return TypeToken{Base: s}, nil
	}
	if i == 0 {
		return TypeToken{}, catalog.Errorf(catalog.CodeSyntax, "malformed type name %q", s)
	}
	tok := TypeToken{Base: s[:i]}
	for rest := s[i:]; len(rest) > 0; rest = rest[2:] {
		if len(rest) < 2 || rest[0] != '[' || rest[1] != ']' {
			return TypeToken{}, catalog.Errorf(catalog.CodeSyntax, "malformed type name %q", s)
		}
		tok.Dims++
	}
	return tok, nil
}
