// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package resolve

import (
	gc "gopkg.in/check.v1"

	"github.com/canonical/procair/catalog"
	"github.com/canonical/procair/typeinfo"
)

type BridgeSuite struct{}

var _ = gc.Suite(&BridgeSuite{})

func (s *BridgeSuite) TestLoadType(c *gc.C) {
	reg := fixture()
	tests := []struct {
		name     string
		expected typeinfo.Type
	}{
		{"int", typeinfo.Int},
		{"void", typeinfo.Void},
		{"core.String", typeinfo.String},
		{"core.Int", typeinfo.BoxedInt},
		{"examples.Adder", reg.classes["examples/examples.Adder"]},
		{"int[]", typeinfo.ArrayOf(typeinfo.Int)},
		{"core.String[][]", typeinfo.ArrayOf(typeinfo.ArrayOf(typeinfo.String))},
	}
	for _, t := range tests {
		got, err := loadType(reg, "examples", t.name)
		c.Assert(err, gc.IsNil, gc.Commentf("name: %s", t.name))
		c.Check(got, gc.Equals, t.expected, gc.Commentf("name: %s", t.name))
	}
}

func (s *BridgeSuite) TestLoadTypeUnknown(c *gc.C) {
	reg := fixture()
	_, err := loadType(reg, "examples", "no.Such")
	c.Assert(err, gc.ErrorMatches, `no such class "no\.Such": class "no\.Such" not found in scope "examples"`)
	c.Check(catalog.ErrorCode(err), gc.Equals, catalog.CodeNoSuchClass)
}

func (s *BridgeSuite) TestLoadTypeMalformed(c *gc.C) {
	reg := fixture()
	for _, name := range []string{"", "int[", "int[]x"} {
		_, err := loadType(reg, "examples", name)
		c.Assert(err, gc.NotNil, gc.Commentf("name: %q", name))
		c.Check(catalog.ErrorCode(err), gc.Equals, catalog.CodeSyntax, gc.Commentf("name: %q", name))
	}
}

func (s *BridgeSuite) TestLoadClass(c *gc.C) {
	reg := fixture()

	cls, err := loadClass(reg, "examples", "examples.Adder")
	c.Assert(err, gc.IsNil)
	c.Check(cls, gc.Equals, reg.classes["examples/examples.Adder"])

	// Primitives are classes without callables; using one fails at the
	// entry point search, not here.
	cls, err = loadClass(reg, "examples", "int")
	c.Assert(err, gc.IsNil)
	c.Check(cls, gc.Equals, typeinfo.Int)

	_, err = loadClass(reg, "examples", "int[]")
	c.Assert(err, gc.ErrorMatches, `cannot use "int\[\]" as a routine class`)
	c.Check(catalog.ErrorCode(err), gc.Equals, catalog.CodeNoSuchClass)
}
