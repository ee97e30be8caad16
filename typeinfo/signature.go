// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package typeinfo

import (
	"strings"
)

// Signature is the shape of a callable: its parameter types in order and
// its return type.
type Signature struct {
	Params []Type
	Return Type
}

// String prints the signature using simple type names, for example
// "(int,int)int".
func (s *Signature) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.SimpleName())
	}
	sb.WriteByte(')')
	sb.WriteString(s.Return.SimpleName())
	return sb.String()
}

// EqualErased reports whether the two signatures match once every type is
// erased. Callable lookup works on erased signatures: a callable declared
// to return a parameterized type is found under a request naming the raw
// class.
func (s *Signature) EqualErased(o *Signature) bool {
	if len(s.Params) != len(o.Params) {
		return false
	}
	for i := range s.Params {
		if Erase(s.Params[i]) != Erase(o.Params[i]) {
			return false
		}
	}
	return Erase(s.Return) == Erase(o.Return)
}

// Callable is one entry point registered on a class. The declared signature
// may carry parameterized types even though lookup erases them; the
// declared return type is what specialization inspects when a routine
// produces a row set.
type Callable interface {
	// Name returns the callable's name within its class.
	Name() string
	// Signature returns the declared signature.
	Signature() *Signature
}

// Registry resolves names against a managed runtime's class namespace.
// Implementations must be safe for concurrent use.
type Registry interface {
	// Lookup returns the class with the given qualified name, resolving
	// per-scope namespaces before shared ones. The core types resolve
	// in every scope.
	Lookup(scope, name string) (*Class, error)
	// FindCallable returns the callable named name on cls or one of its
	// superclasses whose declared signature matches sig once erased.
	FindCallable(cls *Class, name string, sig *Signature) (Callable, error)
}
