/*
Procair binds the routines of a relational catalog to the entry points of a
managed runtime.

A catalog declares each routine with numeric type ids and a textual
specifier naming the implementation. The runtime declares classes and
callables with names and signatures. Procair reconciles the two views: it
parses the specifier, maps the catalog types to managed type names, builds
the signature the entry point must have, searches the implementing class
for it, and records the outcome with the hosting environment so the routine
can be invoked.

# Specifiers

An ordinary routine specifier names a method, optionally with an explicit
return type and parameter signature:

	[returnType=]className.methodName[(paramType,...)]

Whitespace is insignificant. The explicit types, when present, override the
types inferred from the catalog declaration, and each override installs a
coercion between the two.

A user-defined type routine instead names the class implementing the type
and the conversion the routine performs:

	udt[className]input|output|receive|send

# Calling conventions

How an entry point is shaped depends on what the routine produces. A plain
value is returned directly. A single composite value is written through a
trailing writable parameter, with a boolean return reporting row presence.
A row set is drained through a cursor, or through a record set provider
when the rows are composite. When a search with the built signature finds
nothing, it is retried once with the alternate rendering of the return
type: boxed for a primitive, or the record set source form for composite
row sets.

# Example

	binder := procair.NewBinder(eng, eng)
	binding, err := binder.Resolve(ctx, eng.NewHandle(), routine, false)
	if err != nil {
		...
	}
	result, err := binding.Callable.(*engine.Callable).Invoke(args...)

Trigger routines use a fixed shape and are resolved with the trigger flag
instead.
*/
package procair
