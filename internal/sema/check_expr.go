package sema

import (
	"fmt"

	"aslc/internal/ast"
	"aslc/internal/diag"
	"aslc/internal/source"
	"aslc/internal/symbols"
	"aslc/internal/types"
)

// checkExpr computes and decorates the type and l-value flag of an
// expression, emitting diagnostics for local mismatches. Children typed
// as error absorb follow-up complaints.
func (c *checker) checkExpr(id ast.ExprID) (types.TypeID, bool) {
	expr := c.b.Expr(id)
	var (
		t    types.TypeID
		lval bool
	)

	switch expr.Kind {
	case ast.ExprIdent:
		t = c.lookupIdent(expr.Ident.Name, expr.Span)
		lval = true
		if c.tbl.FindInStack(expr.Ident.Name) != symbols.NoScopeID && c.tbl.IsFunctionClass(expr.Ident.Name) {
			lval = false
		}

	case ast.ExprLit:
		t = c.litType(expr.Lit.Kind)

	case ast.ExprParen:
		t, lval = c.checkExpr(expr.Paren.Inner)

	case ast.ExprArrayAcc:
		t, lval = c.checkArrayAcc(expr)

	case ast.ExprUnary:
		t = c.checkUnary(expr)

	case ast.ExprBinary:
		t = c.checkBinary(expr)

	case ast.ExprCall:
		t = c.checkCallExpr(expr)

	default:
		// Parser-recovered node: poison quietly.
		t = c.in.Builtins().Error
	}

	c.dec.ExprType[id] = t
	c.dec.ExprLValue[id] = lval
	return t, lval
}

func (c *checker) litType(kind ast.LitKind) types.TypeID {
	b := c.in.Builtins()
	switch kind {
	case ast.LitInt:
		return b.Integer
	case ast.LitFloat:
		return b.Float
	case ast.LitBool:
		return b.Boolean
	case ast.LitChar:
		return b.Character
	}
	return b.Error
}

func (c *checker) checkArrayAcc(expr *ast.Expr) (types.TypeID, bool) {
	acc := &expr.ArrayAcc
	t := c.lookupIdent(acc.Name, acc.NameSpan)
	idxTy, _ := c.checkExpr(acc.Index)

	arrayOK := !c.in.IsError(t)
	if !c.in.IsError(t) && !c.in.IsArray(t) {
		c.nonArrayInArrayAccess(expr.Span)
		t = c.in.Builtins().Error
		arrayOK = false
	}
	if !c.in.IsError(idxTy) && !c.in.IsInteger(idxTy) {
		c.nonIntegerIndex(c.b.Expr(acc.Index).Span)
		t = c.in.Builtins().Error
		arrayOK = false
	}
	if arrayOK {
		t = c.in.Elem(t)
	}

	lval := true
	if c.tbl.FindInStack(acc.Name) != symbols.NoScopeID && c.tbl.IsFunctionClass(acc.Name) {
		lval = false
	}
	return t, lval
}

func (c *checker) checkUnary(expr *ast.Expr) types.TypeID {
	t, _ := c.checkExpr(expr.Unary.Operand)
	b := c.in.Builtins()

	switch expr.Unary.Op {
	case ast.UnaryNot:
		if !c.in.IsError(t) && !c.in.IsBoolean(t) {
			c.incompatibleOperator(expr.Span, expr.Unary.Op.String())
		}
		return b.Boolean
	case ast.UnaryNeg:
		if !c.in.IsError(t) && !c.in.IsNumeric(t) {
			c.incompatibleOperator(expr.Span, expr.Unary.Op.String())
		}
		if c.in.IsFloat(t) {
			return b.Float
		}
		return b.Integer
	}
	return b.Error
}

func (c *checker) checkBinary(expr *ast.Expr) types.TypeID {
	bin := &expr.Binary
	t1, _ := c.checkExpr(bin.Left)
	t2, _ := c.checkExpr(bin.Right)
	b := c.in.Builtins()

	switch {
	case bin.Op == ast.BinMod:
		if (!c.in.IsError(t1) && !c.in.IsInteger(t1)) ||
			(!c.in.IsError(t2) && !c.in.IsInteger(t2)) {
			c.incompatibleOperator(bin.OpSpan, bin.Op.String())
		}
		return b.Integer

	case bin.Op.IsArithmetic():
		if (!c.in.IsError(t1) && !c.in.IsNumeric(t1)) ||
			(!c.in.IsError(t2) && !c.in.IsNumeric(t2)) {
			c.incompatibleOperator(bin.OpSpan, bin.Op.String())
		}
		if c.in.IsFloat(t1) || c.in.IsFloat(t2) {
			return b.Float
		}
		return b.Integer

	case bin.Op.IsRelational():
		if !c.in.IsError(t1) && !c.in.IsError(t2) &&
			!c.in.Comparable(t1, t2, bin.Op.String()) {
			c.incompatibleOperator(bin.OpSpan, bin.Op.String())
		}
		return b.Boolean

	case bin.Op.IsLogical():
		if (!c.in.IsError(t1) && !c.in.IsBoolean(t1)) ||
			(!c.in.IsError(t2) && !c.in.IsBoolean(t2)) {
			c.incompatibleOperator(bin.OpSpan, bin.Op.String())
		}
		return b.Boolean
	}
	return b.Error
}

func (c *checker) checkCallExpr(expr *ast.Expr) types.TypeID {
	call := &expr.Call
	tID := c.lookupIdent(call.Name, call.NameSpan)

	// Always type the arguments, even for broken callees.
	for _, arg := range call.Args {
		c.checkExpr(arg)
	}

	if c.in.IsError(tID) {
		return c.in.Builtins().Error
	}
	if !c.in.IsFunction(tID) {
		diag.ReportError(c.rep, diag.SemaIsNotCallable, call.NameSpan,
			fmt.Sprintf("identifier '%s' is not callable", call.Name)).Emit()
		return c.in.Builtins().Error
	}

	t := c.in.Ret(tID)
	if c.in.IsVoidReturning(tID) {
		diag.ReportError(c.rep, diag.SemaIsNotFunction, call.NameSpan,
			fmt.Sprintf("identifier '%s' is not a function", call.Name)).Emit()
		t = c.in.Builtins().Error
	}
	c.checkCallArgs(tID, call.Name, call.NameSpan, call.Args)
	return t
}

// checkCallArgs validates arity and per-parameter compatibility for a
// call whose callee is a known function type.
func (c *checker) checkCallArgs(fnTy types.TypeID, name string, nameSpan source.Span, args []ast.ExprID) {
	if c.in.NumParams(fnTy) != len(args) {
		diag.ReportError(c.rep, diag.SemaNumberOfParameters, nameSpan,
			fmt.Sprintf("call to '%s' with wrong number of parameters", name)).Emit()
		return
	}
	for i, arg := range args {
		parTy := c.in.ParamAt(fnTy, i)
		argTy := c.dec.ExprType[arg]
		if c.in.IsError(argTy) || argTy == parTy {
			continue
		}
		if c.in.IsInteger(argTy) && c.in.IsFloat(parTy) {
			continue
		}
		diag.ReportError(c.rep, diag.SemaIncompatibleParameter, c.b.Expr(arg).Span,
			fmt.Sprintf("parameter #%d with incompatible types in call to '%s'", i+1, name)).Emit()
	}
}

// lookupIdent resolves a name through the scope stack, reporting
// undeclared identifiers and answering the error type for them.
func (c *checker) lookupIdent(name string, sp source.Span) types.TypeID {
	if c.tbl.FindInStack(name) == symbols.NoScopeID {
		diag.ReportError(c.rep, diag.SemaUndeclaredIdent, sp,
			fmt.Sprintf("identifier '%s' is undeclared", name)).Emit()
		return c.in.Builtins().Error
	}
	return c.tbl.GetType(name)
}

func (c *checker) incompatibleOperator(sp source.Span, op string) {
	diag.ReportError(c.rep, diag.SemaIncompatibleOperator, sp,
		fmt.Sprintf("incompatible types for operator '%s'", op)).Emit()
}
