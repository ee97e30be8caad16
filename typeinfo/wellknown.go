// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package typeinfo

// Qualified names of the well-known core runtime types.
const (
	ObjectName            = "core.Object"
	StringName            = "core.String"
	RecordSetName         = "core.RecordSet"
	CursorName            = "core.Cursor"
	RecordSetProviderName = "core.RecordSetProvider"
	RecordSetSourceName   = "core.RecordSetSource"
	TriggerEventName      = "core.TriggerEvent"
	UserTypeName          = "core.UserType"
)

// The primitive types. Void is the primitive return type of routines that
// produce no value.
var (
	Boolean = &Class{Name: "boolean", Primitive: true}
	Byte    = &Class{Name: "byte", Primitive: true}
	Short   = &Class{Name: "short", Primitive: true}
	Int     = &Class{Name: "int", Primitive: true}
	Long    = &Class{Name: "long", Primitive: true}
	Char    = &Class{Name: "char", Primitive: true}
	Float   = &Class{Name: "float", Primitive: true}
	Double  = &Class{Name: "double", Primitive: true}
	Void    = &Class{Name: "void", Primitive: true}
)

// The core classes every runtime provides. Cursor is generic over its
// element type; the remaining interface types are not.
var (
	Object            = &Class{Name: ObjectName}
	String            = &Class{Name: StringName, Super: Object}
	RecordSet         = &Class{Name: RecordSetName, Super: Object}
	Cursor            *Class
	RecordSetProvider = &Class{Name: RecordSetProviderName}
	RecordSetSource   = &Class{Name: RecordSetSourceName}
	TriggerEvent      = &Class{Name: TriggerEventName, Super: Object}
	UserType          = &Class{Name: UserTypeName}
)

// The boxed wrapper classes for the primitive types.
var (
	BoxedBoolean = &Class{Name: "core.Boolean", Super: Object}
	BoxedByte    = &Class{Name: "core.Byte", Super: Object}
	BoxedShort   = &Class{Name: "core.Short", Super: Object}
	BoxedInt     = &Class{Name: "core.Int", Super: Object}
	BoxedLong    = &Class{Name: "core.Long", Super: Object}
	BoxedChar    = &Class{Name: "core.Char", Super: Object}
	BoxedFloat   = &Class{Name: "core.Float", Super: Object}
	BoxedDouble  = &Class{Name: "core.Double", Super: Object}
	BoxedVoid    = &Class{Name: "core.Void", Super: Object}
)

func init() {
	e := &TypeVar{Name: "E"}
	Cursor = &Class{Name: CursorName, TypeParams: []*TypeVar{e}}
	e.Decl = Cursor
	wellKnown[CursorName] = Cursor
}

var primitives = map[string]*Class{
	"boolean": Boolean,
	"byte":    Byte,
	"short":   Short,
	"int":     Int,
	"long":    Long,
	"char":    Char,
	"float":   Float,
	"double":  Double,
	"void":    Void,
}

var boxes = map[*Class]*Class{
	Boolean: BoxedBoolean,
	Byte:    BoxedByte,
	Short:   BoxedShort,
	Int:     BoxedInt,
	Long:    BoxedLong,
	Char:    BoxedChar,
	Float:   BoxedFloat,
	Double:  BoxedDouble,
	Void:    BoxedVoid,
}

var wellKnown = map[string]*Class{
	ObjectName:            Object,
	StringName:            String,
	RecordSetName:         RecordSet,
	RecordSetProviderName: RecordSetProvider,
	RecordSetSourceName:   RecordSetSource,
	TriggerEventName:      TriggerEvent,
	UserTypeName:          UserType,
	BoxedBoolean.Name:     BoxedBoolean,
	BoxedByte.Name:        BoxedByte,
	BoxedShort.Name:       BoxedShort,
	BoxedInt.Name:         BoxedInt,
	BoxedLong.Name:        BoxedLong,
	BoxedChar.Name:        BoxedChar,
	BoxedFloat.Name:       BoxedFloat,
	BoxedDouble.Name:      BoxedDouble,
	BoxedVoid.Name:        BoxedVoid,
}

// Primitive returns the primitive class named by the given keyword.
func Primitive(name string) (*Class, bool) {
	p, ok := primitives[name]
	return p, ok
}

// Boxed returns the wrapper class of the primitive p.
func Boxed(p *Class) (*Class, bool) {
	w, ok := boxes[p]
	return w, ok
}

// WellKnown returns the core class with the given qualified name. Registry
// implementations consult it before their own namespaces so that the core
// types resolve in every scope.
func WellKnown(name string) (*Class, bool) {
	c, ok := wellKnown[name]
	return c, ok
}
