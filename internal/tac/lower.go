package tac

import (
	"aslc/internal/ast"
	"aslc/internal/sema"
	"aslc/internal/symbols"
	"aslc/internal/types"
)

// ReturnSlot is the synthetic first parameter that carries the return
// value of a non-void function.
const ReturnSlot = "_result"

// Lower generates TAC for every function, in declaration order.
// It requires a tree decorated by both semantic passes; behavior on
// programs with semantic errors is unspecified.
func Lower(b *ast.Builder, prog *ast.Program, tbl *symbols.Table, in *types.Interner, dec *sema.Decorations) *Program {
	out := &Program{Subs: make([]Subroutine, 0, len(prog.Funcs))}
	for _, fnID := range prog.Funcs {
		out.Subs = append(out.Subs, LowerFunc(b, fnID, tbl, in, dec))
	}
	return out
}

// LowerFunc generates the subroutine of a single function. Temporary and
// label counters are function-local, and the decorated tree is only
// read, so distinct functions may be lowered concurrently.
func LowerFunc(b *ast.Builder, fnID ast.FuncID, tbl *symbols.Table, in *types.Interner, dec *sema.Decorations) Subroutine {
	lw := lowerer{
		b:   b,
		tbl: tbl,
		in:  in,
		dec: dec,
		// Scope nesting is rebuilt here purely for identifier
		// classification; no symbols are added.
		stack: []symbols.ScopeID{dec.ProgScope, dec.FuncScope[fnID]},
	}
	return lw.lowerFunc(fnID)
}

type lowerer struct {
	b     *ast.Builder
	tbl   *symbols.Table
	in    *types.Interner
	dec   *sema.Decorations
	cnt   counters
	stack []symbols.ScopeID
	retTy types.TypeID
}

// codeAttribs is the result of lowering one expression: the place
// holding the value, an optional element-selecting index, and the
// instructions computing it.
type codeAttribs struct {
	addr string
	offs string
	code []Instr
}

func (lw *lowerer) lowerFunc(fnID ast.FuncID) Subroutine {
	fn := lw.b.Func(fnID)
	lw.cnt.reset()
	lw.retTy = lw.in.Builtins().Void
	if fn.ReturnType.IsValid() {
		lw.retTy = lw.dec.TypeNode[fn.ReturnType]
	}

	subr := Subroutine{Name: fn.Name}
	if fn.ReturnType.IsValid() {
		subr.Params = append(subr.Params, ReturnSlot)
	}
	for _, paramID := range fn.Params {
		subr.Params = append(subr.Params, lw.b.Param(paramID).Name)
	}
	for _, declID := range fn.Decls {
		decl := lw.b.VarDecl(declID)
		size := lw.in.SizeOf(lw.dec.TypeNode[decl.Type])
		for _, name := range decl.Names {
			subr.Locals = append(subr.Locals, Local{Name: name, Size: size})
		}
	}

	code := lw.lowerStmts(fn.Body)
	// Every subroutine ends on an unconditional RETURN, whatever the
	// body did before.
	subr.Code = append(code, Return())
	return subr
}

// symbolOf resolves a name through the rebuilt scope nesting.
func (lw *lowerer) symbolOf(name string) (symbols.Symbol, bool) {
	for i := len(lw.stack) - 1; i >= 0; i-- {
		if sym, ok := lw.tbl.Scope(lw.stack[i]).Entries[name]; ok {
			return sym, true
		}
	}
	return symbols.Symbol{}, false
}

func (lw *lowerer) isParameter(name string) bool {
	sym, ok := lw.symbolOf(name)
	return ok && sym.Kind == symbols.KindParameter
}

func (lw *lowerer) typeOf(name string) types.TypeID {
	sym, ok := lw.symbolOf(name)
	if !ok {
		return types.NoTypeID
	}
	return sym.Type
}
