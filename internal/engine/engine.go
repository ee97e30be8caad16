// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package engine provides the in-process runtime the resolver binds
// routines against: a registry of scoped classes and their callables on
// one side, and a binding host that records what each resolution pass
// stored on the other.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/canonical/procair/catalog"
	"github.com/canonical/procair/typeinfo"
)

// Func is the native implementation of a callable.
type Func func(args ...any) (any, error)

// Callable is a named entry point of a class.
type Callable struct {
	name string
	sig  *typeinfo.Signature
	fn   Func
}

// Name returns the callable's name.
func (c *Callable) Name() string { return c.name }

// Signature returns the callable's declared signature.
func (c *Callable) Signature() *typeinfo.Signature { return c.sig }

// Invoke runs the callable's implementation.
func (c *Callable) Invoke(args ...any) (any, error) {
	if c.fn == nil {
		return nil, fmt.Errorf("callable %s has no implementation", c.name)
	}
	return c.fn(args...)
}

// Engine is an in-process class registry and binding host. The registry
// side resolves scoped class names and searches classes for callables;
// the host side stores the bindings a resolution pass produces and keeps
// them addressable by handle.
type Engine struct {
	mu        sync.RWMutex
	classes   map[string]map[string]*typeinfo.Class
	callables map[*typeinfo.Class]map[string][]*Callable
	typeNames map[catalog.TypeID]string
	userTypes map[string]map[catalog.TypeID]*typeinfo.Class

	handle uint64

	hostMu   sync.Mutex
	bindings map[catalog.Handle]*NativeBinding
}

// New returns an empty engine.
func New() *Engine {
	return &Engine{
		classes:   map[string]map[string]*typeinfo.Class{},
		callables: map[*typeinfo.Class]map[string][]*Callable{},
		typeNames: map[catalog.TypeID]string{},
		userTypes: map[string]map[catalog.TypeID]*typeinfo.Class{},
		bindings:  map[catalog.Handle]*NativeBinding{},
	}
}

// DefineClass registers cls under its canonical name in scope.
func (e *Engine) DefineClass(scope string, cls *typeinfo.Class) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	m := e.classes[scope]
	if m == nil {
		m = map[string]*typeinfo.Class{}
		e.classes[scope] = m
	}
	name := cls.CanonicalName()
	if _, ok := m[name]; ok {
		return fmt.Errorf("class %q already defined in scope %q", name, scope)
	}
	m[name] = cls
	return nil
}

// MustDefineClass is DefineClass, panicking on error.
func (e *Engine) MustDefineClass(scope string, cls *typeinfo.Class) *typeinfo.Class {
	if err := e.DefineClass(scope, cls); err != nil {
		panic(err)
	}
	return cls
}

// DefineCallable registers an entry point on cls. Callables of the same
// name may coexist as long as their signatures differ after erasure.
func (e *Engine) DefineCallable(cls *typeinfo.Class, name string, sig *typeinfo.Signature, fn Func) (*Callable, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m := e.callables[cls]
	if m == nil {
		m = map[string][]*Callable{}
		e.callables[cls] = m
	}
	for _, cb := range m[name] {
		if cb.sig.EqualErased(sig) {
			return nil, fmt.Errorf("callable %s.%s with signature %s already defined",
				cls.CanonicalName(), name, sig)
		}
	}
	cb := &Callable{name: name, sig: sig, fn: fn}
	m[name] = append(m[name], cb)
	return cb, nil
}

// MustDefineCallable is DefineCallable, panicking on error.
func (e *Engine) MustDefineCallable(cls *typeinfo.Class, name string, sig *typeinfo.Signature, fn Func) *Callable {
	cb, err := e.DefineCallable(cls, name, sig, fn)
	if err != nil {
		panic(err)
	}
	return cb
}

// MapType maps a catalog type to the managed type name the host reports
// for it.
func (e *Engine) MapType(id catalog.TypeID, name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.typeNames[id] = name
}

// MapUserType maps a catalog type to a user-defined class within scope.
// The mapping wins over MapType when type names are derived.
func (e *Engine) MapUserType(scope string, id catalog.TypeID, cls *typeinfo.Class) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m := e.userTypes[scope]
	if m == nil {
		m = map[catalog.TypeID]*typeinfo.Class{}
		e.userTypes[scope] = m
	}
	m[id] = cls
}

// LoadTypes merges the catalog's type names into the engine's mapping.
func (e *Engine) LoadTypes(ctx context.Context, cat catalog.Catalog) error {
	names, err := cat.TypeNames(ctx)
	if err != nil {
		return fmt.Errorf("cannot load catalog type names: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, name := range names {
		e.typeNames[id] = name
	}
	return nil
}

// Lookup implements typeinfo.Registry. The well-known core types resolve
// in every scope.
func (e *Engine) Lookup(scope, name string) (*typeinfo.Class, error) {
	if cls, ok := typeinfo.WellKnown(name); ok {
		return cls, nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if cls, ok := e.classes[scope][name]; ok {
		return cls, nil
	}
	return nil, fmt.Errorf("class %q not found in scope %q", name, scope)
}

// FindCallable implements typeinfo.Registry. The search walks the
// superclass chain from cls, matching signatures after erasure.
func (e *Engine) FindCallable(cls *typeinfo.Class, name string, sig *typeinfo.Signature) (typeinfo.Callable, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for c := cls; c != nil; c = superClass(c) {
		for _, cb := range e.callables[c][name] {
			if cb.sig.EqualErased(sig) {
				return cb, nil
			}
		}
	}
	return nil, fmt.Errorf("no callable %s.%s with signature %s", cls.CanonicalName(), name, sig)
}

// typeNameFor maps a catalog type to a managed type name. A user-defined
// class mapped in scope wins over the engine-wide name table.
func (e *Engine) typeNameFor(scope string, id catalog.TypeID) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if cls, ok := e.userTypes[scope][id]; ok {
		return cls.CanonicalName(), nil
	}
	if name, ok := e.typeNames[id]; ok {
		return name, nil
	}
	return "", catalog.Errorf(catalog.CodeNoSuchClass, "no managed type mapped for catalog type %d", id)
}

func superClass(c *typeinfo.Class) *typeinfo.Class {
	if c.Super == nil {
		return nil
	}
	if s, ok := typeinfo.Erase(c.Super).(*typeinfo.Class); ok {
		return s
	}
	return nil
}
