package sema

import (
	"fmt"

	"aslc/internal/ast"
	"aslc/internal/diag"
	"aslc/internal/source"
	"aslc/internal/symbols"
	"aslc/internal/types"
)

func (c *checker) checkStmts(stmts []ast.StmtID) {
	for _, id := range stmts {
		c.checkStmt(id)
	}
}

func (c *checker) checkStmt(id ast.StmtID) {
	stmt := c.b.Stmt(id)
	switch stmt.Kind {
	case ast.StmtAssign:
		c.checkAssign(stmt)
	case ast.StmtIf:
		c.checkIf(stmt)
	case ast.StmtWhile:
		c.checkWhile(stmt)
	case ast.StmtProcCall:
		c.checkProcCall(stmt)
	case ast.StmtRead:
		c.checkRead(stmt)
	case ast.StmtWriteExpr:
		c.checkWriteExpr(stmt)
	case ast.StmtWriteStr:
		// Always accepted.
	case ast.StmtReturn:
		c.checkReturn(stmt)
	}
}

func (c *checker) checkAssign(stmt *ast.Stmt) {
	t1, lval := c.checkLeft(stmt.Assign.Left)
	t2, _ := c.checkExpr(stmt.Assign.Expr)

	if !c.in.IsError(t1) && !c.in.IsError(t2) && !c.in.Copyable(t1, t2) {
		diag.ReportError(c.rep, diag.SemaIncompatibleAssignment, stmt.Span,
			"incompatible types in assignment").Emit()
	}
	if !c.in.IsError(t1) && !lval {
		left := c.b.Left(stmt.Assign.Left)
		diag.ReportError(c.rep, diag.SemaNonReferenceableLeftExpr, left.Span,
			"left expression is not referenceable").Emit()
	}
}

func (c *checker) checkIf(stmt *ast.Stmt) {
	t, _ := c.checkExpr(stmt.If.Cond)
	if !c.in.IsError(t) && !c.in.IsBoolean(t) {
		c.booleanRequired(c.b.Expr(stmt.If.Cond).Span)
	}
	c.checkStmts(stmt.If.Then)
	c.checkStmts(stmt.If.Else)
}

func (c *checker) checkWhile(stmt *ast.Stmt) {
	t, _ := c.checkExpr(stmt.While.Cond)
	if !c.in.IsError(t) && !c.in.IsBoolean(t) {
		c.booleanRequired(c.b.Expr(stmt.While.Cond).Span)
	}
	c.checkStmts(stmt.While.Body)
}

func (c *checker) checkProcCall(stmt *ast.Stmt) {
	call := &stmt.Call
	t := c.lookupIdent(call.Name, call.NameSpan)

	// Arguments are always visited so that every expression ends up
	// decorated, even when the callee itself is in error.
	for _, arg := range call.Args {
		c.checkExpr(arg)
	}

	if c.in.IsError(t) {
		return
	}
	if !c.in.IsFunction(t) {
		diag.ReportError(c.rep, diag.SemaIsNotCallable, call.NameSpan,
			fmt.Sprintf("identifier '%s' is not callable", call.Name)).Emit()
		return
	}
	c.checkCallArgs(t, call.Name, call.NameSpan, call.Args)
}

func (c *checker) checkRead(stmt *ast.Stmt) {
	t, lval := c.checkLeft(stmt.Read.Left)
	left := c.b.Left(stmt.Read.Left)
	if !c.in.IsError(t) && !c.in.IsPrimitive(t) {
		c.readWriteRequireBasic(left.Span)
	}
	if !c.in.IsError(t) && !lval {
		diag.ReportError(c.rep, diag.SemaNonReferenceableExpression, left.Span,
			"expression is not referenceable").Emit()
	}
}

func (c *checker) checkWriteExpr(stmt *ast.Stmt) {
	t, _ := c.checkExpr(stmt.Write.Expr)
	if !c.in.IsError(t) && !c.in.IsPrimitive(t) {
		c.readWriteRequireBasic(c.b.Expr(stmt.Write.Expr).Span)
	}
}

func (c *checker) checkReturn(stmt *ast.Stmt) {
	fnTy := c.tbl.CurrentFunction()

	if !stmt.Return.Expr.IsValid() {
		if !c.in.IsVoidReturning(fnTy) {
			c.incompatibleReturn(stmt.Span)
		}
		return
	}

	t, _ := c.checkExpr(stmt.Return.Expr)
	retTy := c.in.Ret(fnTy)

	if !c.in.IsError(t) && c.in.IsVoidReturning(fnTy) {
		c.incompatibleReturn(stmt.Span)
		return
	}
	if !c.in.IsError(t) && t != retTy {
		if !(c.in.IsInteger(t) && c.in.IsFloat(retTy)) {
			c.incompatibleReturn(stmt.Span)
		}
	}
}

// checkLeft types an assignment or read target and decorates the node.
func (c *checker) checkLeft(id ast.LeftID) (types.TypeID, bool) {
	left := c.b.Left(id)
	t := c.lookupIdent(left.Name, left.NameSpan)
	b := !c.tbl.IsFunctionClass(left.Name)
	if c.tbl.FindInStack(left.Name) == symbols.NoScopeID {
		b = true // suppress follow-up l-value complaints
	}

	if left.Index.IsValid() {
		idxTy, _ := c.checkExpr(left.Index)
		arrayOK := !c.in.IsError(t)
		if !c.in.IsError(t) && !c.in.IsArray(t) {
			c.nonArrayInArrayAccess(left.Span)
			t = c.in.Builtins().Error
			arrayOK = false
		}
		if !c.in.IsError(idxTy) && !c.in.IsInteger(idxTy) {
			c.nonIntegerIndex(c.b.Expr(left.Index).Span)
			t = c.in.Builtins().Error
			arrayOK = false
		}
		if arrayOK {
			t = c.in.Elem(t)
		}
	}

	c.dec.LeftType[id] = t
	c.dec.LeftLValue[id] = b
	return t, b
}

func (c *checker) booleanRequired(sp source.Span) {
	diag.ReportError(c.rep, diag.SemaBooleanRequired, sp,
		"instruction requires a boolean condition").Emit()
}

func (c *checker) incompatibleReturn(sp source.Span) {
	diag.ReportError(c.rep, diag.SemaIncompatibleReturn, sp,
		"incompatible type in return").Emit()
}

func (c *checker) readWriteRequireBasic(sp source.Span) {
	diag.ReportError(c.rep, diag.SemaReadWriteRequireBasic, sp,
		"basic type required in read/write instruction").Emit()
}

func (c *checker) nonArrayInArrayAccess(sp source.Span) {
	diag.ReportError(c.rep, diag.SemaNonArrayInArrayAccess, sp,
		"array access to a non-array operand").Emit()
}

func (c *checker) nonIntegerIndex(sp source.Span) {
	diag.ReportError(c.rep, diag.SemaNonIntegerIndexInArrayAccess, sp,
		"array index is not an integer").Emit()
}
