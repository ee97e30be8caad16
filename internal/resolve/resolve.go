// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package resolve turns one catalog routine row into a binding: it parses
// the routine's specifier, resolves the implementing class, stores the
// binding on the host, reconciles explicitly declared types against the
// host's own mapping, and locates the entry point callable.
package resolve

import (
	"context"

	"github.com/canonical/procair/catalog"
	"github.com/canonical/procair/internal/ctxlog"
	"github.com/canonical/procair/internal/specifier"
	"github.com/canonical/procair/typeinfo"
)

// Request carries the collaborators and inputs of one resolution pass.
type Request struct {
	// Registry resolves class names and callables.
	Registry typeinfo.Registry
	// Host stores bindings and applies reconciliations.
	Host catalog.Host
	// Handle identifies the binding under construction to the host.
	Handle catalog.Handle
	// Routine is the catalog row being bound.
	Routine *catalog.Routine
	// Trigger binds the routine as a trigger, giving it the fixed
	// trigger shape regardless of its declared types.
	Trigger bool
}

// Result describes a completed resolution pass.
type Result struct {
	// Class is the implementing class.
	Class *typeinfo.Class
	// Method names the entry point within Class. Empty for user-type
	// bindings, which bind a whole class rather than a callable.
	Method string
	// Callable is the resolved entry point, nil for user-type bindings.
	Callable typeinfo.Callable
	// Signature is the signature the entry point was found under.
	Signature *typeinfo.Signature
	// TypeNames is the final managed type name list, return type last.
	TypeNames []string
	// MultiCall marks row-set routines.
	MultiCall bool
	// ReturnIsOutParam marks routines whose composite result rides in a
	// trailing writable parameter.
	ReturnIsOutParam bool
	// Alternate reports that the entry point was bound under the
	// alternate return form.
	Alternate bool
	// UserType marks user-defined type bindings, with UserTypeOp the
	// conversion bound.
	UserType   bool
	UserTypeOp catalog.UserTypeOp
}

// Routine resolves one routine row into a binding. All host stores and
// reconciliations of the pass happen inside a single Host.Do call; the
// entry point search runs after the host context has been released.
func Routine(ctx context.Context, req *Request) (*Result, error) {
	r := req.Routine
	spec, err := specifier.Parse(r.Source)
	if err != nil {
		return nil, err
	}
	readOnly := !r.Volatile

	switch s := spec.(type) {
	case *specifier.UserTypeSpec:
		return setupUserType(ctx, req, s, readOnly)
	case *specifier.RoutineSpec:
		cls, err := loadClass(req.Registry, r.Schema, s.ClassName)
		if err != nil {
			return nil, err
		}
		var stored *catalog.StoredRoutine
		var multiCall bool
		if req.Trigger {
			stored, err = setupTrigger(ctx, req, s, cls, readOnly)
		} else {
			multiCall = r.ReturnsSet
			stored, err = setupOrdinary(ctx, req, s, cls, readOnly, multiCall)
		}
		if err != nil {
			return nil, err
		}

		ep, err := findEntryPoint(ctx, req.Registry, r.Schema, cls, s.MethodName,
			stored.TypeNames, stored.ReturnIsOutParam, multiCall)
		if err != nil {
			return nil, err
		}
		if multiCall && !stored.ReturnIsOutParam {
			if err := checkCursorElement(req.Registry, r.Schema, ep); err != nil {
				return nil, err
			}
		}

		ctxlog.FromContext(ctx).Debug("resolved routine binding",
			"routine", r.ID,
			"scope", r.Schema,
			"class", cls.CanonicalName(),
			"method", s.MethodName,
			"signature", ep.sig.String(),
			"alternate", ep.alternate)
		return &Result{
			Class:            cls,
			Method:           s.MethodName,
			Callable:         ep.callable,
			Signature:        ep.sig,
			TypeNames:        ep.typeNames,
			MultiCall:        multiCall,
			ReturnIsOutParam: stored.ReturnIsOutParam,
			Alternate:        ep.alternate,
		}, nil
	}
	return nil, catalog.Errorf(catalog.CodeInternal, "internal error: unknown specifier form %T", spec)
}

// UDTClass returns the implementing class when r's specifier has the
// user-type form, reporting false for the ordinary form. The class must
// satisfy the user-type contract.
func UDTClass(reg typeinfo.Registry, r *catalog.Routine) (*typeinfo.Class, bool, error) {
	spec, err := specifier.Parse(r.Source)
	if err != nil {
		return nil, false, err
	}
	s, ok := spec.(*specifier.UserTypeSpec)
	if !ok {
		return nil, false, nil
	}
	cls, err := userTypeClass(reg, r.Schema, s.ClassName)
	if err != nil {
		return nil, false, err
	}
	return cls, true, nil
}

// setupUserType binds a user-defined type conversion. The catalog type
// being mapped is the routine's return type for input and receive, and its
// first parameter type for output and send.
func setupUserType(ctx context.Context, req *Request, s *specifier.UserTypeSpec, readOnly bool) (*Result, error) {
	r := req.Routine
	cls, err := userTypeClass(req.Registry, r.Schema, s.ClassName)
	if err != nil {
		return nil, err
	}

	op := catalog.UserTypeOp(lowerByte(s.Op[0]))
	var id catalog.TypeID
	switch op {
	case catalog.UserTypeInput, catalog.UserTypeReceive:
		id = r.ReturnType
	case catalog.UserTypeOutput, catalog.UserTypeSend:
		if len(r.ParamTypes) == 0 {
			return nil, catalog.Errorf(catalog.CodeInternal,
				"internal error: %s routine of a user-defined type has no parameters", s.Op)
		}
		id = r.ParamTypes[0]
	default:
		return nil, catalog.Errorf(catalog.CodeInternal, "internal error in user-type specifier handling")
	}

	err = req.Host.Do(ctx, func(ops catalog.Ops) error {
		return ops.StoreUserType(req.Handle, &catalog.UserTypeStore{
			Scope:    r.Schema,
			Class:    cls,
			ReadOnly: readOnly,
			Op:       op,
			TypeID:   id,
		})
	})
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("resolved user-type binding",
		"routine", r.ID,
		"scope", r.Schema,
		"class", cls.CanonicalName(),
		"op", string(op))
	return &Result{Class: cls, UserType: true, UserTypeOp: op}, nil
}

// setupTrigger stores the fixed trigger shape: one trigger event
// parameter, no return value, and no catalog types. Triggers take no
// explicit signature.
func setupTrigger(ctx context.Context, req *Request, s *specifier.RoutineSpec, cls *typeinfo.Class, readOnly bool) (*catalog.StoredRoutine, error) {
	if s.Signature != nil {
		return nil, catalog.Errorf(catalog.CodeSyntax, "triggers may not declare a parameter signature")
	}
	store := &catalog.RoutineStore{
		Scope:      req.Routine.Schema,
		Class:      cls,
		ReadOnly:   readOnly,
		ParamTypes: []catalog.TypeID{catalog.Invalid},
		ReturnType: catalog.Invalid,
		ParamNames: []string{typeinfo.TriggerEventName},
		ReturnName: "void",
	}
	var stored *catalog.StoredRoutine
	err := req.Host.Do(ctx, func(ops catalog.Ops) error {
		var err error
		stored, err = ops.StoreRoutine(req.Handle, store)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// setupOrdinary stores an ordinary routine binding and applies the
// specifier's explicit types to the stored name list.
func setupOrdinary(ctx context.Context, req *Request, s *specifier.RoutineSpec, cls *typeinfo.Class, readOnly, multiCall bool) (*catalog.StoredRoutine, error) {
	r := req.Routine
	store := &catalog.RoutineStore{
		Scope:      r.Schema,
		Class:      cls,
		ReadOnly:   readOnly,
		MultiCall:  multiCall,
		ParamTypes: r.ParamTypes,
		ReturnType: r.ReturnType,
	}
	var stored *catalog.StoredRoutine
	err := req.Host.Do(ctx, func(ops catalog.Ops) error {
		var err error
		stored, err = ops.StoreRoutine(req.Handle, store)
		if err != nil {
			return err
		}
		names := stored.TypeNames
		if s.Signature != nil {
			err := reconcileSignature(ops, req.Handle, names, *s.Signature, multiCall, stored.ReturnIsOutParam)
			if err != nil {
				return err
			}
		}
		// A return type hint that still differs once the signature has
		// been applied wins over it.
		if s.ReturnType != "" && s.ReturnType != names[len(names)-1] {
			return ops.Reconcile(req.Handle, names, []string{s.ReturnType}, catalog.ReconcileReturn)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// checkCursorElement verifies that a row-set entry point declares a cursor
// over the resolved row type. A raw cursor declaration is accepted as is;
// a parameterized one must bind the cursor's element to the row type,
// boxed when the row type is primitive.
func checkCursorElement(reg typeinfo.Registry, scope string, ep *entryPoint) error {
	declared := ep.callable.Signature().Return
	args, ok := typeinfo.Specializes(declared, typeinfo.Cursor)
	if !ok {
		return catalog.Errorf(catalog.CodeNoSuchMethod,
			"callable %s returns %s, which is not a cursor", ep.callable.Name(), declared)
	}
	if len(args) == 0 {
		return nil
	}
	want, err := loadType(reg, scope, ep.typeNames[len(ep.typeNames)-1])
	if err != nil {
		return err
	}
	if c, ok := want.(*typeinfo.Class); ok && c.Primitive {
		if boxed, ok := typeinfo.Boxed(c); ok {
			want = boxed
		}
	}
	if got := args[0]; got.CanonicalName() != want.CanonicalName() {
		return catalog.Errorf(catalog.CodeNoSuchMethod,
			"callable %s yields rows of %s, want %s", ep.callable.Name(), got, want)
	}
	return nil
}

func userTypeClass(reg typeinfo.Registry, scope, name string) (*typeinfo.Class, error) {
	cls, err := loadClass(reg, scope, name)
	if err != nil {
		return nil, err
	}
	if _, ok := typeinfo.Specializes(cls, typeinfo.UserType); !ok {
		return nil, catalog.Errorf(catalog.CodeNoSuchClass,
			"class %q does not implement %s", cls.CanonicalName(), typeinfo.UserTypeName)
	}
	return cls, nil
}

func lowerByte(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b | 0x20
	}
	return b
}
