// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package resolve

import (
	"github.com/canonical/procair/catalog"
	"github.com/canonical/procair/internal/specifier"
	"github.com/canonical/procair/typeinfo"
)

// loadType resolves one type name from a specifier or a stored type list
// into a descriptor. Primitive keywords resolve directly; every other base
// name goes through the registry, scoped to the routine's schema. Each
// trailing [] marker wraps the result in one array level.
func loadType(reg typeinfo.Registry, scope, name string) (typeinfo.Type, error) {
	tok, err := specifier.ParseTypeToken(name)
	if err != nil {
		return nil, err
	}

	var t typeinfo.Type
	if p, ok := typeinfo.Primitive(tok.Base); ok {
		t = p
	} else {
		cls, err := reg.Lookup(scope, tok.Base)
		if err != nil {
			return nil, catalog.Errorf(catalog.CodeNoSuchClass, "no such class %q: %w", tok.Base, err)
		}
		t = cls
	}
	for i := 0; i < tok.Dims; i++ {
		t = typeinfo.ArrayOf(t)
	}
	return t, nil
}

// loadClass resolves a type name that must denote a plain class, such as
// the implementing class of a specifier. Primitives are classes here too;
// they simply have no callables, so binding against one fails later with
// the entry point error.
func loadClass(reg typeinfo.Registry, scope, name string) (*typeinfo.Class, error) {
	t, err := loadType(reg, scope, name)
	if err != nil {
		return nil, err
	}
	cls, ok := t.(*typeinfo.Class)
	if !ok {
		return nil, catalog.Errorf(catalog.CodeNoSuchClass, "cannot use %q as a routine class", name)
	}
	return cls, nil
}
