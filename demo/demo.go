package demo

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/canonical/procair"
	"github.com/canonical/procair/catalog"
	"github.com/canonical/procair/internal/engine"
	"github.com/canonical/procair/typeinfo"
)

func example() error {
	ctx := context.Background()

	// Declare the engine classes the catalog routines bind to.
	eng := engine.New()
	adder := eng.MustDefineClass("demo", &typeinfo.Class{Name: "demo.Adder", Super: typeinfo.Object})
	eng.MustDefineCallable(adder, "add", &typeinfo.Signature{
		Params: []typeinfo.Type{typeinfo.Int, typeinfo.Int},
		Return: typeinfo.Int,
	}, func(args ...any) (any, error) {
		return args[0].(int) + args[1].(int), nil
	})
	eng.MustDefineCallable(adder, "mult", &typeinfo.Signature{
		Params: []typeinfo.Type{typeinfo.Int, typeinfo.Int},
		Return: typeinfo.BoxedInt,
	}, func(args ...any) (any, error) {
		return args[0].(int) * args[1].(int), nil
	})

	calc := eng.MustDefineClass("demo", &typeinfo.Class{Name: "demo.Calc", Super: typeinfo.Object})
	eng.MustDefineCallable(calc, "sum", &typeinfo.Signature{
		Params: []typeinfo.Type{typeinfo.BoxedLong, typeinfo.Int},
		Return: typeinfo.Int,
	}, nil)

	names := eng.MustDefineClass("demo", &typeinfo.Class{Name: "demo.Names", Super: typeinfo.Object})
	eng.MustDefineCallable(names, "list", &typeinfo.Signature{
		Return: &typeinfo.Parameterized{Raw: typeinfo.Cursor, Args: []typeinfo.Type{typeinfo.String}},
	}, nil)

	audit := eng.MustDefineClass("demo", &typeinfo.Class{Name: "demo.Audit", Super: typeinfo.Object})
	eng.MustDefineCallable(audit, "onchange", &typeinfo.Signature{
		Params: []typeinfo.Type{typeinfo.TriggerEvent},
		Return: typeinfo.Void,
	}, nil)

	// Create the catalog and declare the routines.
	sqldb, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return err
	}
	if _, err := sqldb.Exec(catalog.Schema); err != nil {
		return err
	}
	_, err = sqldb.Exec(`
INSERT INTO type_name (id, name) VALUES (23, 'int'), (25, 'core.String');
INSERT INTO routine (id, schema, name, return_type, returns_set, volatile, source) VALUES
	(1, 'demo', 'add', 23, FALSE, FALSE, 'demo.Adder.add'),
	(2, 'demo', 'mult', 23, FALSE, TRUE, 'demo.Adder.mult'),
	(3, 'demo', 'sum', 23, FALSE, FALSE, 'demo.Calc.sum(core.Long,int)'),
	(4, 'demo', 'list_names', 25, TRUE, FALSE, 'demo.Names.list');
INSERT INTO routine_param (routine_id, position, type_id) VALUES
	(1, 0, 23), (1, 1, 23),
	(2, 0, 23), (2, 1, 23),
	(3, 0, 23), (3, 1, 23);
`)
	if err != nil {
		return err
	}
	cat := catalog.NewSQLCatalog(sqldb)

	if err := eng.LoadTypes(ctx, cat); err != nil {
		return err
	}
	binder := procair.NewBinder(eng, eng)

	// Bind every routine in the catalog and tabulate the results.
	routines, err := cat.Routines(ctx)
	if err != nil {
		return err
	}
	var add *procair.Binding
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Specifier", "Entry point", "Alternate"})
	for _, r := range routines {
		b, err := binder.Resolve(ctx, eng.NewHandle(), r, false)
		if err != nil {
			return err
		}
		if r.ID == 1 {
			add = b
		}
		t.AppendRow(table.Row{r.ID, r.Name, r.Source,
			fmt.Sprintf("%s.%s%s", b.Class, b.Method, b.Signature), b.Alternate})
	}
	t.Render()

	// Call the entry point the add routine bound to.
	sum, err := add.Callable.(*engine.Callable).Invoke(19, 23)
	if err != nil {
		return err
	}
	fmt.Printf("add(19, 23) = %d\n", sum)

	// Triggers bind to a fixed entry point shape, whatever the
	// catalog declares.
	trigger := &catalog.Routine{
		ID:       5,
		Schema:   "demo",
		Name:     "audit",
		Volatile: true,
		Source:   "demo.Audit.onchange",
	}
	b, err := binder.Resolve(ctx, eng.NewHandle(), trigger, true)
	if err != nil {
		return err
	}
	fmt.Printf("trigger %s binds to %s.%s%s\n", trigger.Name, b.Class, b.Method, b.Signature)
	return nil
}

func main() {
	err := example()
	if err != nil {
		panic(err)
	}
}
