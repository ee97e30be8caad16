// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package resolve

import (
	"github.com/canonical/procair/catalog"
	"github.com/canonical/procair/internal/specifier"
)

// reconcileSignature applies an explicit parameter signature to the stored
// type names, issuing one reconcile call per differing position. The host
// rewrites the addressed entries of names in place.
//
// The expected field count is the parameter count, except when a single
// composite value rides in the trailing out parameter: that slot is a
// parameter in the entry point's signature, so the explicit signature
// names it too, and its field is applied at the trailing-out position
// rather than as a plain parameter.
func reconcileSignature(ops catalog.Ops, h catalog.Handle, names []string, explicit string, multiCall, retIsOut bool) error {
	lastIsOut := !multiCall && retIsOut

	fields, err := specifier.SplitSignature(explicit)
	if err != nil {
		return err
	}
	expected := len(names) - 1
	if lastIsOut {
		expected = len(names)
	}
	if len(fields) != expected {
		return catalog.Errorf(catalog.CodeSyntax,
			"expected %d parameter types, found %d", expected, len(fields))
	}

	for i := 0; i < len(names)-1; i++ {
		if names[i] == fields[i] {
			continue
		}
		if err := ops.Reconcile(h, names, fields, i); err != nil {
			return err
		}
	}
	if lastIsOut && names[expected-1] != fields[expected-1] {
		if err := ops.Reconcile(h, names, fields, catalog.ReconcileTrailingOut); err != nil {
			return err
		}
	}
	return nil
}
