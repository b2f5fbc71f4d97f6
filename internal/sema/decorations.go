// Package sema implements the two semantic passes of the compiler: the
// symbol pass that builds scopes and signatures, and the type-check pass
// that decorates every expression with a type and an l-value flag.
package sema

import (
	"aslc/internal/ast"
	"aslc/internal/symbols"
	"aslc/internal/types"
)

// Decorations is the side table attached to the parse tree. The symbol
// pass writes scope and type-node entries; the type-check pass writes
// expression types and l-value flags. Code generation only reads.
type Decorations struct {
	ExprType   map[ast.ExprID]types.TypeID
	ExprLValue map[ast.ExprID]bool
	LeftType   map[ast.LeftID]types.TypeID
	LeftLValue map[ast.LeftID]bool
	TypeNode   map[ast.TypeID]types.TypeID
	FuncScope  map[ast.FuncID]symbols.ScopeID
	ProgScope  symbols.ScopeID
}

// NewDecorations allocates the empty side table.
func NewDecorations() *Decorations {
	return &Decorations{
		ExprType:   make(map[ast.ExprID]types.TypeID),
		ExprLValue: make(map[ast.ExprID]bool),
		LeftType:   make(map[ast.LeftID]types.TypeID),
		LeftLValue: make(map[ast.LeftID]bool),
		TypeNode:   make(map[ast.TypeID]types.TypeID),
		FuncScope:  make(map[ast.FuncID]symbols.ScopeID),
		ProgScope:  symbols.NoScopeID,
	}
}
