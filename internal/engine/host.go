// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package engine

import (
	"context"
	"sync/atomic"

	"github.com/canonical/procair/catalog"
	"github.com/canonical/procair/typeinfo"
)

// NativeBinding is the host-side record of one resolved binding.
type NativeBinding struct {
	Handle   catalog.Handle
	Scope    string
	Class    *typeinfo.Class
	ReadOnly bool

	// Routine bindings. TypeNames shares its backing array with the
	// slice handed to the resolver, so reconciliation is visible on
	// both sides.
	MultiCall        bool
	TypeNames        []string
	ReturnIsOutParam bool
	Reconciles       []ReconcileEvent

	// User-defined type bindings.
	UserType bool
	Op       catalog.UserTypeOp
	TypeID   catalog.TypeID
}

// ReconcileEvent records one coercion installed by a reconcile call.
type ReconcileEvent struct {
	Pos      int
	From, To string
}

// NewHandle mints a fresh handle for a resolution pass.
func (e *Engine) NewHandle() catalog.Handle {
	return catalog.Handle(atomic.AddUint64(&e.handle, 1))
}

// Do implements catalog.Host. Passes are serialized on the engine's host
// lock; fn must not call Do again.
func (e *Engine) Do(ctx context.Context, fn func(catalog.Ops) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.hostMu.Lock()
	defer e.hostMu.Unlock()
	return fn(ops{e})
}

// Binding returns the binding stored under h.
func (e *Engine) Binding(h catalog.Handle) (*NativeBinding, bool) {
	e.hostMu.Lock()
	defer e.hostMu.Unlock()
	b, ok := e.bindings[h]
	return b, ok
}

// ops exposes the host operations to a resolution pass. The host lock is
// held for the whole Do call, so the binding table needs no further
// locking here.
type ops struct {
	e *Engine
}

func (o ops) StoreRoutine(h catalog.Handle, s *catalog.RoutineStore) (*catalog.StoredRoutine, error) {
	names := make([]string, len(s.ParamTypes)+1)
	for i, id := range s.ParamTypes {
		if i < len(s.ParamNames) && s.ParamNames[i] != "" {
			names[i] = s.ParamNames[i]
			continue
		}
		name, err := o.e.typeNameFor(s.Scope, id)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	ret := s.ReturnName
	if ret == "" {
		var err error
		ret, err = o.e.typeNameFor(s.Scope, s.ReturnType)
		if err != nil {
			return nil, err
		}
	}
	names[len(names)-1] = ret

	b := &NativeBinding{
		Handle:           h,
		Scope:            s.Scope,
		Class:            s.Class,
		ReadOnly:         s.ReadOnly,
		MultiCall:        s.MultiCall,
		TypeNames:        names,
		ReturnIsOutParam: ret == typeinfo.RecordSetName,
	}
	o.e.bindings[h] = b
	return &catalog.StoredRoutine{TypeNames: names, ReturnIsOutParam: b.ReturnIsOutParam}, nil
}

func (o ops) StoreUserType(h catalog.Handle, s *catalog.UserTypeStore) error {
	o.e.bindings[h] = &NativeBinding{
		Handle:   h,
		Scope:    s.Scope,
		Class:    s.Class,
		ReadOnly: s.ReadOnly,
		UserType: true,
		Op:       s.Op,
		TypeID:   s.TypeID,
	}
	return nil
}

func (o ops) Reconcile(h catalog.Handle, resolved, declared []string, pos int) error {
	b := o.e.bindings[h]
	if b == nil {
		return catalog.Errorf(catalog.CodeInternal,
			"internal error: no binding stored under handle %d", h)
	}
	idx := pos
	var to string
	switch {
	case pos >= 0 && pos < len(resolved)-1 && pos < len(declared):
		to = declared[pos]
	case pos == catalog.ReconcileTrailingOut && len(resolved) > 0 && len(declared) > 0:
		idx = len(resolved) - 1
		to = declared[len(declared)-1]
	case pos == catalog.ReconcileReturn && len(resolved) > 0 && len(declared) > 0:
		idx = len(resolved) - 1
		to = declared[0]
	default:
		return catalog.Errorf(catalog.CodeInternal,
			"internal error: reconcile position %d out of range", pos)
	}
	b.Reconciles = append(b.Reconciles, ReconcileEvent{Pos: pos, From: resolved[idx], To: to})
	resolved[idx] = to
	if idx < len(b.TypeNames) {
		b.TypeNames[idx] = to
	}
	return nil
}
