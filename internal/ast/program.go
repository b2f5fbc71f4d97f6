package ast

import (
	"aslc/internal/source"
)

// Program is the root of one parsed compilation unit.
type Program struct {
	File  source.FileID
	Funcs []FuncID
	Span  source.Span
}

// Func is one function declaration. ReturnType is NoTypeID for
// procedures (void functions).
type Func struct {
	Name       string
	NameSpan   source.Span
	Params     []ParamID
	ReturnType TypeID
	Decls      []VarDeclID
	Body       []StmtID
	Span       source.Span
}

// Param is a single declared parameter.
type Param struct {
	Name     string
	NameSpan source.Span
	Type     TypeID
}

// VarDecl declares one or more names of the same type.
type VarDecl struct {
	Names     []string
	NameSpans []source.Span
	Type      TypeID
	Span      source.Span
}

// BasicKind enumerates the primitive type spellings.
type BasicKind uint8

const (
	BasicInt BasicKind = iota
	BasicFloat
	BasicBool
	BasicChar
)

func (k BasicKind) String() string {
	switch k {
	case BasicInt:
		return "int"
	case BasicFloat:
		return "float"
	case BasicBool:
		return "bool"
	case BasicChar:
		return "char"
	}
	return "invalid"
}

// TypeNode is a type-denoting node: a basic type or a fixed-size array
// of a basic type.
type TypeNode struct {
	IsArray bool
	Basic   BasicKind // element type when IsArray
	Count   uint32    // only when IsArray
	Span    source.Span
}
