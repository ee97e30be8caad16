package example

import (
	"context"
	"fmt"

	"github.com/canonical/procair"
	"github.com/canonical/procair/catalog"
	"github.com/canonical/procair/internal/engine"
	"github.com/canonical/procair/typeinfo"
)

// A catalog document for a host with no catalog database.
const document = `
types:
  23: int
  25: core.String
routines:
  - id: 1
    schema: app
    name: total
    params: [23, 23]
    return: 23
    source: app.Prices.total
  - id: 2
    schema: app
    name: tags
    return: 25
    returns_set: true
    source: app.Tags.list
  - id: 3
    schema: app
    name: money_in
    params: [25]
    return: 7777
    source: udt[pkg.Money]input
  - id: 4
    schema: app
    name: money_out
    params: [7777]
    return: 25
    source: udt[pkg.Money]output
`

func example() {
	cat, err := catalog.NewYAMLCatalog([]byte(document))
	if err != nil {
		panic(err)
	}

	eng := engine.New()
	prices := eng.MustDefineClass("app", &typeinfo.Class{Name: "app.Prices", Super: typeinfo.Object})
	eng.MustDefineCallable(prices, "total", &typeinfo.Signature{
		Params: []typeinfo.Type{typeinfo.Int, typeinfo.Int},
		Return: typeinfo.Int,
	}, func(args ...any) (any, error) {
		return args[0].(int) + args[1].(int), nil
	})

	tags := eng.MustDefineClass("app", &typeinfo.Class{Name: "app.Tags", Super: typeinfo.Object})
	eng.MustDefineCallable(tags, "list", &typeinfo.Signature{
		Return: &typeinfo.Parameterized{Raw: typeinfo.Cursor, Args: []typeinfo.Type{typeinfo.String}},
	}, nil)

	money := eng.MustDefineClass("app", &typeinfo.Class{
		Name:       "pkg.Money",
		Super:      typeinfo.Object,
		Interfaces: []typeinfo.Type{typeinfo.UserType},
	})
	eng.MapUserType("app", 7777, money)

	ctx := context.Background()
	if err := eng.LoadTypes(ctx, cat); err != nil {
		panic(err)
	}
	binder := procair.NewBinder(eng, eng)

	routines, err := cat.Routines(ctx)
	if err != nil {
		panic(err)
	}
	for _, r := range routines {
		b, err := binder.Resolve(ctx, eng.NewHandle(), r, false)
		if err != nil {
			panic(err)
		}
		if b.UserType {
			fmt.Printf("%s is the %c conversion of %s\n", r.Name, b.UserTypeOp, b.Class)
			continue
		}
		fmt.Printf("%s binds to %s.%s%s\n", r.Name, b.Class, b.Method, b.Signature)
	}

	// A second resolution of the same routine is served from the
	// binder's cache.
	r, err := cat.Routine(ctx, 1)
	if err != nil {
		panic(err)
	}
	b, err := binder.Resolve(ctx, eng.NewHandle(), r, false)
	if err != nil {
		panic(err)
	}
	total, err := b.Callable.(*engine.Callable).Invoke(2, 3)
	if err != nil {
		panic(err)
	}
	fmt.Printf("total(2, 3) = %d\n", total)
}
