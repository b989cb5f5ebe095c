package avro

// Type identifies a schema node kind. The first eight values are the Avro
// primitive types; the compound and symbolic kinds follow.
type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeBytes
	TypeString
	TypeRecord
	TypeEnum
	TypeArray
	TypeMap
	TypeUnion
	TypeFixed
	// TypeSymbolic is a placeholder for a named type referenced before (or
	// instead of) its full definition. It never appears in schema text.
	TypeSymbolic
	// typeInvalid is the zero-is-not-enough sentinel for builder frames that
	// have not received a kind yet.
	typeInvalid Type = -1
)

var typeNames = map[Type]string{
	TypeNull:     "null",
	TypeBool:     "boolean",
	TypeInt:      "int",
	TypeLong:     "long",
	TypeFloat:    "float",
	TypeDouble:   "double",
	TypeBytes:    "bytes",
	TypeString:   "string",
	TypeRecord:   "record",
	TypeEnum:     "enum",
	TypeArray:    "array",
	TypeMap:      "map",
	TypeUnion:    "union",
	TypeFixed:    "fixed",
	TypeSymbolic: "symbolic",
}

// primitiveTypes maps schema-text names to primitive kinds.
var primitiveTypes = map[string]Type{
	"null":    TypeNull,
	"boolean": TypeBool,
	"int":     TypeInt,
	"long":    TypeLong,
	"float":   TypeFloat,
	"double":  TypeDouble,
	"bytes":   TypeBytes,
	"string":  TypeString,
}

// String returns the schema-text name of the type ("record", "int", ...).
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "invalid"
}

// IsPrimitive reports whether t is one of the eight primitive kinds.
func (t Type) IsPrimitive() bool { return t >= TypeNull && t <= TypeString }

// IsCompound reports whether t carries child nodes or named members.
func (t Type) IsCompound() bool { return t >= TypeRecord && t <= TypeFixed }

// IsNamed reports whether t carries a name and namespace of its own.
func (t Type) IsNamed() bool {
	return t == TypeRecord || t == TypeEnum || t == TypeFixed
}

// PrimitiveTypeByName resolves a schema-text primitive name ("long", ...).
func PrimitiveTypeByName(name string) (Type, bool) {
	t, ok := primitiveTypes[name]
	return t, ok
}
