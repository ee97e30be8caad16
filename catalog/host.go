// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package catalog

import (
	"context"

	"github.com/canonical/procair/typeinfo"
)

// Reconcile positions addressing slots outside the plain parameter range.
const (
	// ReconcileTrailingOut addresses the trailing out-parameter slot of
	// a routine whose composite result is passed as its last parameter.
	// The declared list is position-aligned with the resolved list.
	ReconcileTrailingOut = -1
	// ReconcileReturn addresses the return slot. The declared list
	// holds the single declared return type.
	ReconcileReturn = -2
)

// UserTypeOp selects which conversion of a user-defined type a routine
// implements. The value is the lowercased initial of the operation name in
// the specifier.
type UserTypeOp byte

const (
	UserTypeInput   UserTypeOp = 'i'
	UserTypeOutput  UserTypeOp = 'o'
	UserTypeReceive UserTypeOp = 'r'
	UserTypeSend    UserTypeOp = 's'
)

// RoutineStore describes an ordinary or trigger routine binding to the
// host.
type RoutineStore struct {
	// Scope is the schema the binding resolves names in.
	Scope string
	// Class is the resolved implementing class.
	Class *typeinfo.Class
	// ReadOnly is true unless the catalog declares the routine
	// volatile.
	ReadOnly bool
	// MultiCall is true for routines producing a row set.
	MultiCall bool
	// ParamTypes holds the catalog parameter types, Invalid for
	// triggers.
	ParamTypes []TypeID
	// ReturnType is the catalog return type, Invalid for triggers.
	ReturnType TypeID
	// ParamNames and ReturnName, when non-empty, override the host's
	// own mapping of the catalog types to managed type names. Trigger
	// bindings use them to install their fixed shape.
	ParamNames []string
	ReturnName string
}

// StoredRoutine is the host's answer to StoreRoutine.
type StoredRoutine struct {
	// TypeNames holds the managed type name chosen for each parameter
	// in order, with the return type's name last. The slice is shared
	// with the host: Reconcile calls made under the same handle rewrite
	// its entries in place.
	TypeNames []string
	// ReturnIsOutParam is true when the return type mapped to the
	// composite row carrier, which the entry point receives as a
	// trailing writable parameter instead of returning.
	ReturnIsOutParam bool
}

// UserTypeStore describes a user-defined type binding to the host.
type UserTypeStore struct {
	Scope    string
	Class    *typeinfo.Class
	ReadOnly bool
	// Op is the conversion the routine implements.
	Op UserTypeOp
	// TypeID is the catalog type the class maps; the routine's return
	// type for input and receive, its first parameter type for output
	// and send.
	TypeID TypeID
}

// Ops is the set of host operations available inside Host.Do.
type Ops interface {
	// StoreRoutine records a routine binding under h and returns the
	// managed type names inferred for its parameter and return types.
	StoreRoutine(h Handle, s *RoutineStore) (*StoredRoutine, error)
	// StoreUserType records a user-defined type binding under h.
	StoreUserType(h Handle, s *UserTypeStore) error
	// Reconcile installs a coercion between the inferred type at the
	// addressed position and the type declared in the specifier, and
	// rewrites the addressed entry of resolved to the declared name.
	// Positions 0 through len(resolved)-2 address parameters and take
	// declared lists aligned with resolved; the negative positions are
	// documented with their constants.
	Reconcile(h Handle, resolved, declared []string, pos int) error
}

// Host serializes entry to the hosting environment's native context. A
// resolution pass batches all its stores and reconciliations into a single
// Do call.
type Host interface {
	// Do runs fn inside the host context, holding it for the duration.
	// Calls to Do are serialized and must not be nested.
	Do(ctx context.Context, fn func(Ops) error) error
}
