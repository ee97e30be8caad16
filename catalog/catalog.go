// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package catalog defines the relational side of routine resolution: the
// catalog row describing a routine, the numeric type identities the
// catalog speaks in, the coded errors resolution reports, and the host
// boundary through which bindings are stored and type lists reconciled.
package catalog

import (
	"context"
)

// TypeID identifies a type in the catalog. Type identities are opaque
// numbers; the host maps them to managed type names during storage.
type TypeID uint32

// Invalid is the TypeID of no type. Trigger routines store it in place of
// their parameter and return types.
const Invalid TypeID = 0

// RoutineID identifies a routine row in the catalog.
type RoutineID uint32

// Handle identifies one binding under construction on the host side.
// Handles are allocated by the host and remain valid until released.
type Handle uint64

// Routine is one catalog row describing a routine to be bound.
type Routine struct {
	// ID is the routine's catalog identity.
	ID RoutineID
	// Schema is the schema the routine belongs to. Class lookups made
	// while resolving the routine are scoped to it.
	Schema string
	// Name is the routine's catalog name.
	Name string
	// ParamTypes holds the declared parameter types in order.
	ParamTypes []TypeID
	// ReturnType is the declared return type.
	ReturnType TypeID
	// ReturnsSet marks routines that produce a row set rather than a
	// single value.
	ReturnsSet bool
	// Volatile marks routines the catalog declares volatile. Every
	// other routine is bound read-only.
	Volatile bool
	// Source is the routine specifier naming the implementation.
	Source string
}

// Catalog supplies routine rows and the catalog's type names.
type Catalog interface {
	// Routine returns the routine with the given identity.
	Routine(ctx context.Context, id RoutineID) (*Routine, error)
	// Routines returns every routine in the catalog, in a stable
	// implementation-defined order.
	Routines(ctx context.Context) ([]*Routine, error)
	// TypeNames returns the catalog's mapping from type identities to
	// managed type names.
	TypeNames(ctx context.Context) (map[TypeID]string, error)
}
