// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package typeinfo describes the managed runtime's view of types: named
// classes, primitives, parameterized uses of generic classes, type
// variables and arrays. It defines the registry contract the resolver uses
// to turn names into descriptors, and the specialization walk that recovers
// the type arguments a class binds to a generic ancestor.
package typeinfo
