package dts

// Type is a type node: *KeywordType, *ReferenceType, *ArrayType or *UnionType.
type Type interface {
	typeNode()
}

// Keyword names a predefined type.
type Keyword string

const (
	AnyKeyword     Keyword = "any"
	VoidKeyword    Keyword = "void"
	StringKeyword  Keyword = "string"
	NumberKeyword  Keyword = "number"
	BooleanKeyword Keyword = "boolean"
)

// KeywordType is a predefined type such as `any` or `string`.
type KeywordType struct {
	Keyword Keyword
}

// ReferenceType refers to a named type, optionally with type arguments.
type ReferenceType struct {
	Name          string
	TypeArguments []Type
}

// ArrayType is `Elem[]`.
type ArrayType struct {
	Elem Type
}

// UnionType is `A | B | ...`.
type UnionType struct {
	Types []Type
}

func (*KeywordType) typeNode()   {}
func (*ReferenceType) typeNode() {}
func (*ArrayType) typeNode()     {}
func (*UnionType) typeNode()     {}

func NewKeyword(k Keyword) *KeywordType { return &KeywordType{Keyword: k} }

func NewReference(name string, args ...Type) *ReferenceType {
	return &ReferenceType{Name: name, TypeArguments: args}
}

func NewArray(elem Type) *ArrayType { return &ArrayType{Elem: elem} }

func NewUnion(types ...Type) *UnionType { return &UnionType{Types: types} }
