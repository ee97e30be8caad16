// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package typeinfo

import (
	"strings"
	"sync"
)

// Type is a descriptor for one managed runtime type. The concrete
// descriptors are Class, Parameterized, TypeVar and Array. Descriptors are
// immutable once their class has been registered with a runtime, and are
// compared by pointer identity.
type Type interface {
	// CanonicalName returns the name of the type as it is written in
	// routine specifier strings: the primitive keyword, the qualified
	// class name, or the element name followed by one [] marker per
	// array dimension.
	CanonicalName() string
	// SimpleName returns the unqualified name used when printing
	// signatures.
	SimpleName() string
	// String returns a printable form of the descriptor.
	String() string
}

// Class describes one named runtime type: a class, an interface, or a
// primitive. A runtime registry must hand out a single Class per qualified
// name so that descriptors can be compared by identity.
type Class struct {
	// Name is the qualified name of the class.
	Name string
	// Primitive marks the built-in value types and void.
	Primitive bool
	// TypeParams holds the type variables a generic class declares, in
	// declaration order. Nil for non-generic classes.
	TypeParams []*TypeVar
	// Super refers to the superclass as a *Class, or as a
	// *Parameterized when the class extends a generic class with
	// arguments. Nil for interfaces, primitives and the root class.
	Super Type
	// Interfaces lists the implemented interface references, each a
	// *Class or *Parameterized.
	Interfaces []Type
}

// CanonicalName returns the qualified class name.
func (c *Class) CanonicalName() string {
	return c.Name
}

// SimpleName returns the class name with any qualifying prefix removed.
func (c *Class) SimpleName() string {
	if i := strings.LastIndexByte(c.Name, '.'); i >= 0 {
		return c.Name[i+1:]
	}
	return c.Name
}

func (c *Class) String() string {
	return c.Name
}

// Parameterized is a use of a generic class with type arguments, such as a
// cursor over a particular element type. The arguments may include type
// variables when the use site is itself inside a generic declaration.
type Parameterized struct {
	Raw  *Class
	Args []Type
}

// CanonicalName returns the name of the raw class. Specifier strings have
// no syntax for type arguments so a parameterized use erases to its raw
// class wherever a name is needed.
func (p *Parameterized) CanonicalName() string {
	return p.Raw.CanonicalName()
}

// SimpleName returns the unqualified name of the raw class.
func (p *Parameterized) SimpleName() string {
	return p.Raw.SimpleName()
}

func (p *Parameterized) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return p.Raw.String() + "<" + strings.Join(args, ",") + ">"
}

// TypeVar is a type variable declared by a generic class. Variables are
// scoped to their declaring class and compared by identity.
type TypeVar struct {
	// Name is the variable name as declared, such as "E".
	Name string
	// Decl is the class declaring the variable.
	Decl *Class
}

// CanonicalName returns the variable name.
func (v *TypeVar) CanonicalName() string {
	return v.Name
}

// SimpleName returns the variable name.
func (v *TypeVar) SimpleName() string {
	return v.Name
}

func (v *TypeVar) String() string {
	return v.Name
}

// Array is an array type over an element type. Arrays are interned; obtain
// them through ArrayOf so that equal array types share one descriptor.
type Array struct {
	Elem Type
}

// CanonicalName returns the element's canonical name followed by [].
func (a *Array) CanonicalName() string {
	return a.Elem.CanonicalName() + "[]"
}

// SimpleName returns the element's simple name followed by [].
func (a *Array) SimpleName() string {
	return a.Elem.SimpleName() + "[]"
}

func (a *Array) String() string {
	return a.CanonicalName()
}

var arrayCacheMutex sync.RWMutex
var arrayCache = map[Type]*Array{}

// ArrayOf returns the array descriptor with the given element type. The
// descriptor is cached on first use so that repeated calls with the same
// element return the identical *Array.
func ArrayOf(elem Type) *Array {
	arrayCacheMutex.RLock()
	a, ok := arrayCache[elem]
	arrayCacheMutex.RUnlock()
	if ok {
		return a
	}

	arrayCacheMutex.Lock()
	defer arrayCacheMutex.Unlock()
	if a, ok := arrayCache[elem]; ok {
		return a
	}
	a = &Array{Elem: elem}
	arrayCache[elem] = a
	return a
}

// Erase returns the erased form of t: a parameterized use erases to its raw
// class, a type variable to the root object class, and an array to an array
// of its erased element. Classes erase to themselves.
func Erase(t Type) Type {
	switch tt := t.(type) {
	case *Parameterized:
		return tt.Raw
	case *TypeVar:
		return Object
	case *Array:
		elem := Erase(tt.Elem)
		if elem == tt.Elem {
			return tt
		}
		return ArrayOf(elem)
	default:
		return t
	}
}
