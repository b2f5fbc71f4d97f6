package sema

import (
	"fmt"

	"aslc/internal/ast"
	"aslc/internal/diag"
	"aslc/internal/source"
	"aslc/internal/symbols"
	"aslc/internal/types"
)

// Declare runs the symbol pass: it builds a scope per function, registers
// parameters and local variables (flagging duplicates), installs every
// function signature in the global scope, and decorates type-denoting
// nodes with their semantic type.
func Declare(b *ast.Builder, prog *ast.Program, tbl *symbols.Table, in *types.Interner, dec *Decorations, rep diag.Reporter) {
	d := declarer{b: b, tbl: tbl, in: in, dec: dec, rep: rep}

	dec.ProgScope = tbl.PushNewScope(symbols.GlobalScopeName)
	for _, fnID := range prog.Funcs {
		d.declareFunc(fnID)
	}
	tbl.PopScope()
}

type declarer struct {
	b   *ast.Builder
	tbl *symbols.Table
	in  *types.Interner
	dec *Decorations
	rep diag.Reporter
}

func (d *declarer) declareFunc(fnID ast.FuncID) {
	fn := d.b.Func(fnID)

	sc := d.tbl.PushNewScope(fn.Name)
	d.dec.FuncScope[fnID] = sc

	paramTypes := make([]types.TypeID, 0, len(fn.Params))
	for _, paramID := range fn.Params {
		param := d.b.Param(paramID)
		ty := d.resolveType(param.Type)
		paramTypes = append(paramTypes, ty)
		if d.tbl.FindInCurrentScope(param.Name) {
			d.duplicateIdent(param.Name, param.NameSpan)
			continue
		}
		d.tbl.AddParameter(param.Name, ty)
	}

	for _, declID := range fn.Decls {
		decl := d.b.VarDecl(declID)
		ty := d.resolveType(decl.Type)
		for i, name := range decl.Names {
			if d.tbl.FindInCurrentScope(name) {
				d.duplicateIdent(name, decl.NameSpans[i])
				continue
			}
			d.tbl.AddLocalVar(name, ty)
		}
	}

	d.tbl.PopScope()

	if d.tbl.FindInCurrentScope(fn.Name) {
		d.duplicateIdent(fn.Name, fn.NameSpan)
		return
	}
	ret := d.returnType(fn)
	d.tbl.AddFunction(fn.Name, d.in.MakeFunction(paramTypes, ret))
}

// returnType resolves the declared return type, defaulting to void.
func (d *declarer) returnType(fn *ast.Func) types.TypeID {
	if !fn.ReturnType.IsValid() {
		return d.in.Builtins().Void
	}
	return d.resolveType(fn.ReturnType)
}

// resolveType interns the semantic type of a type-denoting node and
// decorates the node with it.
func (d *declarer) resolveType(id ast.TypeID) types.TypeID {
	if !id.IsValid() {
		return d.in.Builtins().Error
	}
	if ty, ok := d.dec.TypeNode[id]; ok {
		return ty
	}
	node := d.b.Type(id)
	basic := d.basicType(node.Basic)
	ty := basic
	if node.IsArray {
		ty = d.in.MakeArray(node.Count, basic)
	}
	d.dec.TypeNode[id] = ty
	return ty
}

func (d *declarer) basicType(kind ast.BasicKind) types.TypeID {
	b := d.in.Builtins()
	switch kind {
	case ast.BasicInt:
		return b.Integer
	case ast.BasicFloat:
		return b.Float
	case ast.BasicBool:
		return b.Boolean
	case ast.BasicChar:
		return b.Character
	}
	return b.Error
}

func (d *declarer) duplicateIdent(name string, sp source.Span) {
	diag.ReportError(d.rep, diag.SemaDuplicateIdent, sp,
		fmt.Sprintf("identifier '%s' already declared", name)).Emit()
}
