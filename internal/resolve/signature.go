// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package resolve

import (
	"context"
	"errors"

	"github.com/canonical/procair/catalog"
	"github.com/canonical/procair/internal/ctxlog"
	"github.com/canonical/procair/typeinfo"
)

// buildSignature computes the signature a routine's entry point must have.
// typeNames holds one managed type name per parameter with the return
// type's name last. A routine returning a single composite value does not
// return it: the row carrier is passed as a trailing writable parameter
// and the entry point reports row presence in a boolean, so the parameter
// list extends by one and consumes the return slot's name.
func buildSignature(reg typeinfo.Registry, scope string, typeNames []string, retIsOut, multiCall, altForm bool) (*typeinfo.Signature, error) {
	rtIdx := len(typeNames) - 1
	retName := typeNames[rtIdx]

	if retIsOut != (retName == typeinfo.RecordSetName) {
		return nil, catalog.Errorf(catalog.CodeInternal,
			"internal error: return type %q disagrees with the out-parameter flag", retName)
	}
	if !multiCall && retIsOut {
		rtIdx++
	}

	params := make([]typeinfo.Type, rtIdx)
	for i := range params {
		t, err := loadType(reg, scope, typeNames[i])
		if err != nil {
			return nil, err
		}
		params[i] = t
	}
	ret, err := returnSignature(reg, scope, retName, retIsOut, multiCall, altForm)
	if err != nil {
		return nil, err
	}
	return &typeinfo.Signature{Params: params, Return: ret}, nil
}

// returnSignature chooses the entry point's return type. Single-value
// routines return their resolved type directly. Row-set routines return a
// cursor over rows, unless the rows are composite, in which case they
// return a record set provider, or a record set source in the alternate
// form. Single composite values are carried in the trailing out parameter,
// leaving a boolean row-presence return.
func returnSignature(reg typeinfo.Registry, scope, retName string, composite, multiCall, altForm bool) (typeinfo.Type, error) {
	if !composite {
		if multiCall {
			return typeinfo.Cursor, nil
		}
		return loadType(reg, scope, retName)
	}
	if multiCall {
		if altForm {
			return typeinfo.RecordSetSource, nil
		}
		return typeinfo.RecordSetProvider, nil
	}
	return typeinfo.Boolean, nil
}

// entryPoint is the outcome of a successful callable search.
type entryPoint struct {
	callable typeinfo.Callable
	sig      *typeinfo.Signature
	// typeNames is the final type name list; the return entry differs
	// from the input when the alternate form was bound.
	typeNames []string
	alternate bool
}

// findEntryPoint searches cls for the callable implementing the routine.
// The primary signature is tried first. If it matches nothing and the
// return type has an alternate rendering, the search is retried once with
// the return slot rewritten: a primitive return retries boxed, and a
// record set return retries the alternate row-set form. Both failures are
// reported together.
func findEntryPoint(ctx context.Context, reg typeinfo.Registry, scope string, cls *typeinfo.Class, method string, typeNames []string, retIsOut, multiCall bool) (*entryPoint, error) {
	sig, err := buildSignature(reg, scope, typeNames, retIsOut, multiCall, false)
	if err != nil {
		return nil, err
	}
	callable, primaryErr := reg.FindCallable(cls, method, sig)
	if primaryErr == nil {
		return &entryPoint{callable: callable, sig: sig, typeNames: typeNames}, nil
	}

	retName := typeNames[len(typeNames)-1]
	realRet, err := loadType(reg, scope, retName)
	if err != nil {
		return nil, err
	}
	var alt typeinfo.Type
	if c, ok := realRet.(*typeinfo.Class); ok && c.Primitive {
		if boxed, ok := typeinfo.Boxed(c); ok {
			alt = boxed
		}
	}
	if realRet == typeinfo.Type(typeinfo.RecordSet) {
		// The name stays the same; only the requested return form
		// changes on a retry.
		alt = typeinfo.RecordSet
	}
	if alt == nil {
		return nil, memberError(cls, method, sig, primaryErr)
	}

	altNames := append([]string(nil), typeNames...)
	altNames[len(altNames)-1] = alt.CanonicalName()
	altSig, err := buildSignature(reg, scope, altNames, retIsOut, multiCall, true)
	if err != nil {
		return nil, err
	}
	callable, altErr := reg.FindCallable(cls, method, altSig)
	if altErr != nil {
		return nil, memberBothError(cls, method, sig, altSig, primaryErr, altErr)
	}
	ctxlog.FromContext(ctx).Debug("bound alternate entry point form",
		"class", cls.CanonicalName(), "method", method, "signature", altSig.String())
	return &entryPoint{callable: callable, sig: altSig, typeNames: altNames, alternate: true}, nil
}

func memberError(cls *typeinfo.Class, method string, sig *typeinfo.Signature, cause error) error {
	return catalog.Errorf(catalog.CodeNoSuchMethod,
		"cannot find method %s.%s with signature %s: %w",
		cls.CanonicalName(), method, sig, cause)
}

func memberBothError(cls *typeinfo.Class, method string, sig, altSig *typeinfo.Signature, cause, altCause error) error {
	return catalog.Errorf(catalog.CodeNoSuchMethod,
		"cannot find method %s.%s with signature %s or %s: %w",
		cls.CanonicalName(), method, sig, altSig, errors.Join(cause, altCause))
}
