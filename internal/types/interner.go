package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the types that exist before any declaration.
type Builtins struct {
	Invalid   TypeID
	Error     TypeID
	Integer   TypeID
	Float     TypeID
	Boolean   TypeID
	Character TypeID
	Void      TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins

	paramLists  [][]TypeID
	paramsIndex map[string]ParamsID
}

// NewInterner constructs an interner seeded with the built-in types.
func NewInterner() *Interner {
	in := &Interner{
		index:       make(map[typeKey]TypeID, 16),
		paramsIndex: make(map[string]ParamsID, 8),
	}
	in.paramLists = append(in.paramLists, nil) // reserve 0 as the empty list
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Error = in.Intern(Type{Kind: KindError})
	in.builtins.Integer = in.Intern(Type{Kind: KindInteger})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.Boolean = in.Intern(Type{Kind: KindBoolean})
	in.builtins.Character = in.Intern(Type{Kind: KindCharacter})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	return in
}

// Builtins returns TypeIDs for the built-in types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// MakeArray interns a fixed-size array type.
func (in *Interner) MakeArray(count uint32, elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindArray, Count: count, Elem: elem})
}

// MakeFunction interns a function signature.
func (in *Interner) MakeFunction(params []TypeID, ret TypeID) TypeID {
	return in.Intern(Type{Kind: KindFunction, Params: in.internParams(params), Ret: ret})
}

// ParamList resolves a ParamsID back to the ordered parameter types.
func (in *Interner) ParamList(id ParamsID) []TypeID {
	if int(id) >= len(in.paramLists) {
		return nil
	}
	return in.paramLists[id]
}

func (in *Interner) internParams(params []TypeID) ParamsID {
	if len(params) == 0 {
		return NoParamsID
	}
	var sb strings.Builder
	for _, p := range params {
		fmt.Fprintf(&sb, "%d,", p)
	}
	key := sb.String()
	if id, ok := in.paramsIndex[key]; ok {
		return id
	}
	lenLists, err := safecast.Conv[uint32](len(in.paramLists))
	if err != nil {
		panic(fmt.Errorf("len(paramLists) overflow: %w", err))
	}
	id := ParamsID(lenLists)
	stored := make([]TypeID, len(params))
	copy(stored, params)
	in.paramLists = append(in.paramLists, stored)
	in.paramsIndex[key] = id
	return id
}

type typeKey Type
