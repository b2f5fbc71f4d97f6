package sema

import (
	"aslc/internal/ast"
	"aslc/internal/diag"
	"aslc/internal/symbols"
	"aslc/internal/types"
)

// Result carries the artifacts of the type-check pass beyond the side
// table itself.
type Result struct {
	// NoMain is true when no proper entry point was declared.
	NoMain bool
}

// Check runs the type-check pass over a program whose scopes were built
// by Declare. It re-enters the recorded scopes, decorates every
// expression with a type and an l-value flag, and validates statements.
func Check(b *ast.Builder, prog *ast.Program, tbl *symbols.Table, in *types.Interner, dec *Decorations, rep diag.Reporter) Result {
	c := checker{b: b, tbl: tbl, in: in, dec: dec, rep: rep}

	tbl.PushScope(dec.ProgScope)
	for _, fnID := range prog.Funcs {
		c.checkFunc(fnID)
	}
	res := Result{NoMain: tbl.NoMainProperlyDeclared()}
	if res.NoMain {
		diag.ReportError(rep, diag.SemaNoMainProperlyDeclared, prog.Span,
			"there is no main procedure properly declared").Emit()
	}
	tbl.PopScope()
	return res
}

type checker struct {
	b   *ast.Builder
	tbl *symbols.Table
	in  *types.Interner
	dec *Decorations
	rep diag.Reporter
}

func (c *checker) checkFunc(fnID ast.FuncID) {
	fn := c.b.Func(fnID)

	// The return-statement checks only consult the return type, so the
	// current-function slot carries a parameterless signature.
	ret := c.in.Builtins().Void
	if fn.ReturnType.IsValid() {
		if ty, ok := c.dec.TypeNode[fn.ReturnType]; ok {
			ret = ty
		}
	}
	c.tbl.SetCurrentFunction(c.in.MakeFunction(nil, ret))

	c.tbl.PushScope(c.dec.FuncScope[fnID])
	c.checkStmts(fn.Body)
	c.tbl.PopScope()
}
