package specifier

import (
	. "gopkg.in/check.v1"

	"github.com/canonical/procair/catalog"
)

type PartsSuite struct{}

var _ = Suite(&PartsSuite{})

func (s *PartsSuite) TestSpecString(c *C) {
	tests := []struct {
		spec Spec
		want string
	}{{
		&RoutineSpec{ClassName: "examples.Adder", MethodName: "add"},
		"examples.Adder.add",
	}, {
		&RoutineSpec{ReturnType: "int", ClassName: "examples.Adder", MethodName: "add", Signature: ptr("int,long")},
		"int=examples.Adder.add(int,long)",
	}, {
		&RoutineSpec{ClassName: "x", MethodName: "y", Signature: ptr("")},
		"x.y()",
	}, {
		&UserTypeSpec{ClassName: "pkg.Money", Op: "input"},
		"udt[pkg.Money]input",
	}}
	for _, t := range tests {
		c.Check(t.spec.String(), Equals, t.want)
	}
}

func (s *PartsSuite) TestSpecStringRoundTrips(c *C) {
	for _, input := range []string{
		"examples.Adder.add",
		"int=examples.Adder.add(int,int)",
		"x.y()",
		"udt[pkg.Money]send",
	} {
		spec, err := Parse(input)
		c.Assert(err, IsNil)
		c.Check(spec.String(), Equals, input)
	}
}

func (s *PartsSuite) TestSplitSignature(c *C) {
	tests := []struct {
		summary string
		sig     string
		want    []string
	}{
		{"empty signature has no fields", "", []string{}},
		{"single field", "int", []string{"int"}},
		{"two fields", "int,long", []string{"int", "long"}},
		{"three fields", "a,b,c", []string{"a", "b", "c"}},
		{"array markers pass through", "int[],core.String[][]", []string{"int[]", "core.String[][]"}},
	}
	for _, t := range tests {
		fields, err := SplitSignature(t.sig)
		c.Assert(err, IsNil, Commentf("test: %s", t.summary))
		c.Check(fields, DeepEquals, t.want, Commentf("test: %s", t.summary))
	}
}

func (s *PartsSuite) TestSplitSignatureMalformed(c *C) {
	for _, sig := range []string{
		"int,,int",
		",int",
		"int,",
		",",
		",,",
	} {
		_, err := SplitSignature(sig)
		c.Assert(err, ErrorMatches, "malformed parameter signature .*", Commentf("signature: %q", sig))
		c.Check(catalog.ErrorCode(err), Equals, catalog.CodeSyntax)
	}
}

func (s *PartsSuite) TestParseTypeToken(c *C) {
	tests := []struct {
		token string
		want  TypeToken
	}{
		{"int", TypeToken{Base: "int"}},
		{"core.String", TypeToken{Base: "core.String"}},
		{"int[]", TypeToken{Base: "int", Dims: 1}},
		{"core.String[][]", TypeToken{Base: "core.String", Dims: 2}},
	}
	for _, t := range tests {
		tok, err := ParseTypeToken(t.token)
		c.Assert(err, IsNil)
		c.Check(tok, Equals, t.want)
	}
}

func (s *PartsSuite) TestParseTypeTokenMalformed(c *C) {
	for _, token := range []string{
		"",
		"[]int",
		"int[",
		"int[]x",
		"int[x]",
		"int[][",
	} {
		_, err := ParseTypeToken(token)
		c.Assert(err, NotNil, Commentf("token: %q", token))
		c.Check(catalog.ErrorCode(err), Equals, catalog.CodeSyntax)
	}
}
