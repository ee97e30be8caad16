package catalog_test

import (
	"context"

	. "gopkg.in/check.v1"

	"github.com/canonical/procair/catalog"
)

type yamlCatalogSuite struct{}

var _ = Suite(&yamlCatalogSuite{})

const exampleDoc = `
types:
  16: boolean
  23: int
  25: core.String
routines:
  - id: 1
    schema: examples
    name: add
    params: [23, 23]
    return: 23
    source: examples.Adder.add
  - id: 2
    schema: examples
    name: names
    return: 25
    returns_set: true
    volatile: true
    source: examples.Names.list
`

func (s *yamlCatalogSuite) TestNewYAMLCatalog(c *C) {
	cat, err := catalog.NewYAMLCatalog([]byte(exampleDoc))
	c.Assert(err, IsNil)

	r, err := cat.Routine(context.Background(), 1)
	c.Assert(err, IsNil)
	c.Assert(r, DeepEquals, &catalog.Routine{
		ID:         1,
		Schema:     "examples",
		Name:       "add",
		ParamTypes: []catalog.TypeID{23, 23},
		ReturnType: 23,
		Source:     "examples.Adder.add",
	})

	routines, err := cat.Routines(context.Background())
	c.Assert(err, IsNil)
	c.Assert(routines, HasLen, 2)
	c.Assert(routines[1].Volatile, Equals, true)

	names, err := cat.TypeNames(context.Background())
	c.Assert(err, IsNil)
	c.Assert(names[25], Equals, "core.String")
}

func (s *yamlCatalogSuite) TestNewYAMLCatalogBadDocument(c *C) {
	_, err := catalog.NewYAMLCatalog([]byte("routines: {not: a list}"))
	c.Assert(err, ErrorMatches, "cannot parse catalog document: .*")
}

func (s *yamlCatalogSuite) TestNewYAMLCatalogMissingSource(c *C) {
	_, err := catalog.NewYAMLCatalog([]byte(`
routines:
  - id: 1
    schema: examples
    name: add
`))
	c.Assert(err, ErrorMatches, "routine 1 has no source")
}

func (s *yamlCatalogSuite) TestNewYAMLCatalogDuplicateRoutine(c *C) {
	_, err := catalog.NewYAMLCatalog([]byte(`
routines:
  - id: 1
    schema: examples
    name: add
    source: examples.Adder.add
  - id: 1
    schema: examples
    name: add2
    source: examples.Adder.add2
`))
	c.Assert(err, ErrorMatches, "duplicate routine 1")
}

func (s *yamlCatalogSuite) TestRoutineMissing(c *C) {
	cat, err := catalog.NewYAMLCatalog([]byte(exampleDoc))
	c.Assert(err, IsNil)
	_, err = cat.Routine(context.Background(), 9)
	c.Assert(err, ErrorMatches, "cannot read routine 9: not in catalog")
}
