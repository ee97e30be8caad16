// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package procair

import (
	"context"

	"github.com/canonical/procair/catalog"
	"github.com/canonical/procair/internal/resolve"
	"github.com/canonical/procair/typeinfo"
)

// Binding is a resolved routine, ready for the hosting environment to
// invoke.
type Binding struct {
	// Handle identifies the binding on the host side.
	Handle catalog.Handle
	// Routine is the catalog routine the binding was resolved from.
	Routine catalog.RoutineID
	// Class and Method name the bound entry point, and Callable is the
	// entry point itself. User-defined type bindings carry the class
	// alone.
	Class    *typeinfo.Class
	Method   string
	Callable typeinfo.Callable
	// Signature is the signature the entry point was matched with. It
	// reflects the calling convention, not the catalog declaration: a
	// row-set routine shows its cursor or provider return here.
	Signature *typeinfo.Signature
	// TypeNames holds the managed type name of each parameter in
	// order, with the return type's name last.
	TypeNames []string
	// MultiCall is set when the routine produces a row set and the
	// entry point is called repeatedly to drain it.
	MultiCall bool
	// ReturnIsOutParam is set when the composite result is written
	// through a trailing out parameter instead of being returned.
	ReturnIsOutParam bool
	// Alternate is set when the entry point was bound through the
	// alternate rendering of its return type.
	Alternate bool
	// UserType marks a user-defined type binding, with UserTypeOp the
	// conversion it implements.
	UserType   bool
	UserTypeOp catalog.UserTypeOp
}

// Binder resolves catalog routines into entry point bindings. Bindings
// are cached per routine, scope and calling convention; the catalog is
// consulted once per distinct resolution.
type Binder struct {
	reg   typeinfo.Registry
	host  catalog.Host
	cache *bindingCache
}

// NewBinder creates a Binder resolving names through reg and storing
// bindings in host.
func NewBinder(reg typeinfo.Registry, host catalog.Host) *Binder {
	if reg == nil || host == nil {
		return nil
	}
	return &Binder{reg: reg, host: host, cache: newBindingCache()}
}

// Resolve binds the routine r under the given handle. asTrigger selects
// the trigger calling convention, which has a fixed shape and admits no
// explicit signature in the specifier.
//
// A cache hit returns the earlier binding along with its original
// handle. Concurrent first resolutions of the same routine may each run
// a full pass; the binding cached first wins and is the one returned.
func (b *Binder) Resolve(ctx context.Context, h catalog.Handle, r *catalog.Routine, asTrigger bool) (*Binding, error) {
	key := bindingKey{routine: r.ID, scope: r.Schema, trigger: asTrigger}
	if bd, ok := b.cache.lookup(key); ok {
		return bd, nil
	}

	res, err := resolve.Routine(ctx, &resolve.Request{
		Registry: b.reg,
		Host:     b.host,
		Handle:   h,
		Routine:  r,
		Trigger:  asTrigger,
	})
	if err != nil {
		return nil, err
	}
	bd := &Binding{
		Handle:           h,
		Routine:          r.ID,
		Class:            res.Class,
		Method:           res.Method,
		Callable:         res.Callable,
		Signature:        res.Signature,
		TypeNames:        res.TypeNames,
		MultiCall:        res.MultiCall,
		ReturnIsOutParam: res.ReturnIsOutParam,
		Alternate:        res.Alternate,
		UserType:         res.UserType,
		UserTypeOp:       res.UserTypeOp,
	}
	return b.cache.store(key, bd), nil
}

// UDTClass reports the implementing class of a user-defined type
// routine without building a binding. It reports false for routines
// with the ordinary specifier form.
func (b *Binder) UDTClass(r *catalog.Routine) (*typeinfo.Class, bool, error) {
	return resolve.UDTClass(b.reg, r)
}

// Invalidate drops the cached bindings of the given routine, so that
// the next Resolve runs a fresh pass. It reports how many bindings
// were dropped. Bindings already handed out stay valid; the host still
// holds their state under their handles.
func (b *Binder) Invalidate(id catalog.RoutineID) int {
	return b.cache.invalidate(id)
}
