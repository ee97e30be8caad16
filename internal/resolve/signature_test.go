// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package resolve

import (
	"context"

	gc "gopkg.in/check.v1"

	"github.com/canonical/procair/catalog"
	"github.com/canonical/procair/typeinfo"
)

type SignatureSuite struct{}

var _ = gc.Suite(&SignatureSuite{})

func (s *SignatureSuite) TestBuildSignature(c *gc.C) {
	reg := fixture()
	tests := []struct {
		summary   string
		typeNames []string
		retIsOut  bool
		multiCall bool
		altForm   bool
		expected  string
	}{{
		summary:   "single value",
		typeNames: []string{"int", "core.String", "boolean"},
		expected:  "(int,String)boolean",
	}, {
		summary:   "arrays",
		typeNames: []string{"int[]", "core.String[][]", "int"},
		expected:  "(int[],String[][])int",
	}, {
		summary:   "trailing out parameter",
		typeNames: []string{"int", "core.RecordSet"},
		retIsOut:  true,
		expected:  "(int,RecordSet)boolean",
	}, {
		summary:   "row set",
		typeNames: []string{"int", "core.String"},
		multiCall: true,
		expected:  "(int)Cursor",
	}, {
		summary:   "composite row set",
		typeNames: []string{"int", "core.RecordSet"},
		retIsOut:  true,
		multiCall: true,
		expected:  "(int)RecordSetProvider",
	}, {
		summary:   "composite row set alternate",
		typeNames: []string{"int", "core.RecordSet"},
		retIsOut:  true,
		multiCall: true,
		altForm:   true,
		expected:  "(int)RecordSetSource",
	}}
	for _, t := range tests {
		sig, err := buildSignature(reg, "examples", t.typeNames, t.retIsOut, t.multiCall, t.altForm)
		c.Assert(err, gc.IsNil, gc.Commentf("test: %s", t.summary))
		c.Check(sig.String(), gc.Equals, t.expected, gc.Commentf("test: %s", t.summary))
	}
}

func (s *SignatureSuite) TestBuildSignatureFlagMismatch(c *gc.C) {
	reg := fixture()

	_, err := buildSignature(reg, "examples", []string{"int", "int"}, true, false, false)
	c.Assert(err, gc.ErrorMatches, `internal error: return type "int" disagrees with the out-parameter flag`)
	c.Check(catalog.ErrorCode(err), gc.Equals, catalog.CodeInternal)

	_, err = buildSignature(reg, "examples", []string{"int", "core.RecordSet"}, false, false, false)
	c.Assert(err, gc.ErrorMatches, `internal error: return type "core.RecordSet" disagrees with the out-parameter flag`)
	c.Check(catalog.ErrorCode(err), gc.Equals, catalog.CodeInternal)
}

func (s *SignatureSuite) TestBuildSignatureUnknownType(c *gc.C) {
	reg := fixture()
	_, err := buildSignature(reg, "examples", []string{"no.Such", "int"}, false, false, false)
	c.Assert(err, gc.ErrorMatches, `no such class "no\.Such": .*`)
	c.Check(catalog.ErrorCode(err), gc.Equals, catalog.CodeNoSuchClass)
}

func (s *SignatureSuite) TestReturnSignature(c *gc.C) {
	reg := fixture()
	tests := []struct {
		summary   string
		retName   string
		composite bool
		multiCall bool
		altForm   bool
		expected  typeinfo.Type
	}{{
		summary:  "single value returns its type",
		retName:  "core.String",
		expected: typeinfo.String,
	}, {
		summary:   "row set returns a cursor",
		retName:   "core.String",
		multiCall: true,
		expected:  typeinfo.Cursor,
	}, {
		summary:   "composite single rides the out parameter",
		retName:   "core.RecordSet",
		composite: true,
		expected:  typeinfo.Boolean,
	}, {
		summary:   "composite row set returns a provider",
		retName:   "core.RecordSet",
		composite: true,
		multiCall: true,
		expected:  typeinfo.RecordSetProvider,
	}, {
		summary:   "composite row set alternate returns a source",
		retName:   "core.RecordSet",
		composite: true,
		multiCall: true,
		altForm:   true,
		expected:  typeinfo.RecordSetSource,
	}}
	for _, t := range tests {
		ret, err := returnSignature(reg, "examples", t.retName, t.composite, t.multiCall, t.altForm)
		c.Assert(err, gc.IsNil, gc.Commentf("test: %s", t.summary))
		c.Check(ret, gc.Equals, t.expected, gc.Commentf("test: %s", t.summary))
	}
}

func (s *SignatureSuite) TestFindEntryPointPrimary(c *gc.C) {
	reg := fixture()
	cls := reg.classes["examples/examples.Adder"]
	names := []string{"int", "int", "int"}

	ep, err := findEntryPoint(context.Background(), reg, "examples", cls, "add", names, false, false)
	c.Assert(err, gc.IsNil)
	c.Check(ep.alternate, gc.Equals, false)
	c.Check(ep.sig.String(), gc.Equals, "(int,int)int")
	c.Check(ep.typeNames, gc.DeepEquals, names)
}

func (s *SignatureSuite) TestFindEntryPointBoxedAlternate(c *gc.C) {
	reg := fixture()
	cls := reg.classes["examples/examples.Adder"]
	names := []string{"int", "int", "int"}

	ep, err := findEntryPoint(context.Background(), reg, "examples", cls, "mult", names, false, false)
	c.Assert(err, gc.IsNil)
	c.Check(ep.alternate, gc.Equals, true)
	c.Check(ep.sig.String(), gc.Equals, "(int,int)Int")
	c.Check(ep.typeNames, gc.DeepEquals, []string{"int", "int", "core.Int"})
	// The caller's name list is left alone; the rewrite works on a copy.
	c.Check(names, gc.DeepEquals, []string{"int", "int", "int"})
}

func (s *SignatureSuite) TestFindEntryPointNoAlternate(c *gc.C) {
	// A class return type has no second rendering, so a failed search
	// reports the one signature it tried.
	reg := fixture()
	cls := reg.classes["examples/examples.Adder"]
	names := []string{"int", "core.String"}

	_, err := findEntryPoint(context.Background(), reg, "examples", cls, "add", names, false, false)
	c.Assert(err, gc.ErrorMatches,
		`cannot find method examples\.Adder\.add with signature \(int\)String: .*`)
	c.Check(catalog.ErrorCode(err), gc.Equals, catalog.CodeNoSuchMethod)
}

func (s *SignatureSuite) TestFindEntryPointBothFormsReported(c *gc.C) {
	reg := fixture()
	cls := reg.classes["examples/examples.Adder"]
	names := []string{"void"}

	_, err := findEntryPoint(context.Background(), reg, "examples", cls, "reset", names, false, false)
	c.Assert(err, gc.ErrorMatches,
		`(?s)cannot find method examples\.Adder\.reset with signature \(\)void or \(\)Void: .*`)
	c.Check(catalog.ErrorCode(err), gc.Equals, catalog.CodeNoSuchMethod)
}

func (s *SignatureSuite) TestCheckCursorElement(c *gc.C) {
	reg := fixture()
	tests := []struct {
		summary  string
		declared typeinfo.Type
		rowName  string
		err      string
	}{{
		summary:  "raw cursor accepts any row type",
		declared: typeinfo.Cursor,
		rowName:  "core.String",
	}, {
		summary: "element matches row type",
		declared: &typeinfo.Parameterized{
			Raw: typeinfo.Cursor, Args: []typeinfo.Type{typeinfo.String},
		},
		rowName: "core.String",
	}, {
		summary: "primitive row type matches boxed",
		declared: &typeinfo.Parameterized{
			Raw: typeinfo.Cursor, Args: []typeinfo.Type{typeinfo.BoxedInt},
		},
		rowName: "int",
	}, {
		summary: "element mismatch",
		declared: &typeinfo.Parameterized{
			Raw: typeinfo.Cursor, Args: []typeinfo.Type{typeinfo.BoxedInt},
		},
		rowName: "core.String",
		err:     "callable rows yields rows of core.Int, want core.String",
	}, {
		summary:  "not a cursor at all",
		declared: typeinfo.String,
		rowName:  "core.String",
		err:      "callable rows returns core.String, which is not a cursor",
	}}
	for _, t := range tests {
		ep := &entryPoint{
			callable:  &fakeCallable{name: "rows", sig: &typeinfo.Signature{Return: t.declared}},
			typeNames: []string{t.rowName},
		}
		err := checkCursorElement(reg, "examples", ep)
		if t.err == "" {
			c.Check(err, gc.IsNil, gc.Commentf("test: %s", t.summary))
			continue
		}
		c.Check(err, gc.ErrorMatches, t.err, gc.Commentf("test: %s", t.summary))
		c.Check(catalog.ErrorCode(err), gc.Equals, catalog.CodeNoSuchMethod)
	}
}
