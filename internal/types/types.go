// Package types implements the interned type algebra of the ASL language:
// the four primitive types, void, the absorbing error type, fixed-size
// arrays of primitives, and function signatures.
package types

import (
	"fmt"
	"strings"
)

// TypeID is a stable handle to an interned type descriptor.
// Equal structures intern to equal IDs, so comparing IDs is comparing types.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// IsValid reports whether the ID refers to an interned type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates type categories.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindError is the absorbing element of the algebra: it silences
	// follow-up diagnostics on dependent expressions.
	KindError
	KindInteger
	KindFloat
	KindBoolean
	KindCharacter
	KindVoid
	KindArray
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "bool"
	case KindCharacter:
		return "char"
	case KindVoid:
		return "void"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	}
	return "invalid"
}

// ParamsID indexes a deduplicated parameter list inside the interner.
type ParamsID uint32

// NoParamsID marks the empty parameter list.
const NoParamsID ParamsID = 0

// Type is the structural descriptor behind a TypeID.
type Type struct {
	Kind Kind

	// Arrays
	Elem  TypeID
	Count uint32

	// Functions
	Params ParamsID
	Ret    TypeID
}

// String renders the type the way diagnostics spell it.
func (in *Interner) String(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<none>"
	}
	switch t.Kind {
	case KindArray:
		return fmt.Sprintf("array[%d] of %s", t.Count, in.String(t.Elem))
	case KindFunction:
		params := in.ParamList(t.Params)
		parts := make([]string, len(params))
		for i, p := range params {
			parts[i] = in.String(p)
		}
		return fmt.Sprintf("function(%s):%s", strings.Join(parts, ","), in.String(t.Ret))
	default:
		return t.Kind.String()
	}
}
