package tac

import (
	"aslc/internal/ast"
	"aslc/internal/types"
)

// lowerExpr produces the {addr, offs, code} triple of one expression.
func (lw *lowerer) lowerExpr(id ast.ExprID) codeAttribs {
	expr := lw.b.Expr(id)
	switch expr.Kind {
	case ast.ExprIdent:
		return codeAttribs{addr: expr.Ident.Name}
	case ast.ExprLit:
		return lw.lowerLit(&expr.Lit)
	case ast.ExprParen:
		inner := lw.lowerExpr(expr.Paren.Inner)
		return codeAttribs{addr: inner.addr, code: inner.code}
	case ast.ExprArrayAcc:
		return lw.lowerArrayAcc(expr)
	case ast.ExprUnary:
		return lw.lowerUnary(expr)
	case ast.ExprBinary:
		return lw.lowerBinary(expr)
	case ast.ExprCall:
		return lw.lowerCallExpr(expr)
	}
	return codeAttribs{}
}

func (lw *lowerer) lowerLit(lit *ast.LitExpr) codeAttribs {
	tmp := lw.cnt.newTemp()
	switch lit.Kind {
	case ast.LitInt:
		return codeAttribs{addr: tmp, code: []Instr{ILoad(tmp, lit.Text)}}
	case ast.LitFloat:
		return codeAttribs{addr: tmp, code: []Instr{FLoad(tmp, lit.Text)}}
	case ast.LitBool:
		k := "0"
		if lit.Text == "true" {
			k = "1"
		}
		return codeAttribs{addr: tmp, code: []Instr{ILoad(tmp, k)}}
	case ast.LitChar:
		// Strip the surrounding quotes; escapes stay as written.
		return codeAttribs{addr: tmp, code: []Instr{ChLoad(tmp, lit.Text[1 : len(lit.Text)-1])}}
	}
	return codeAttribs{addr: tmp}
}

func (lw *lowerer) lowerArrayAcc(expr *ast.Expr) codeAttribs {
	acc := &expr.ArrayAcc
	idx := lw.lowerExpr(acc.Index)
	code := idx.code

	base := acc.Name
	if lw.isParameter(base) {
		ref := lw.cnt.newTemp()
		code = append(code, Load(ref, base))
		base = ref
	}

	tmp := lw.cnt.newTemp()
	code = append(code, LoadX(tmp, base, idx.addr))
	return codeAttribs{addr: tmp, code: code}
}

func (lw *lowerer) lowerUnary(expr *ast.Expr) codeAttribs {
	operand := lw.lowerExpr(expr.Unary.Operand)
	code := operand.code
	tmp := lw.cnt.newTemp()

	switch expr.Unary.Op {
	case ast.UnaryNot:
		code = append(code, Not(tmp, operand.addr))
	case ast.UnaryNeg:
		if lw.in.IsFloat(lw.dec.ExprType[expr.Unary.Operand]) {
			code = append(code, FNeg(tmp, operand.addr))
		} else {
			code = append(code, Neg(tmp, operand.addr))
		}
	}
	return codeAttribs{addr: tmp, code: code}
}

func (lw *lowerer) lowerBinary(expr *ast.Expr) codeAttribs {
	bin := &expr.Binary
	left := lw.lowerExpr(bin.Left)
	right := lw.lowerExpr(bin.Right)
	code := append(left.code, right.code...)

	t1 := lw.dec.ExprType[bin.Left]
	t2 := lw.dec.ExprType[bin.Right]

	switch {
	case bin.Op.IsLogical():
		tmp := lw.cnt.newTemp()
		if bin.Op == ast.BinAnd {
			code = append(code, And(tmp, left.addr, right.addr))
		} else {
			code = append(code, Or(tmp, left.addr, right.addr))
		}
		return codeAttribs{addr: tmp, code: code}

	case bin.Op == ast.BinMod:
		quot := lw.cnt.newTemp()
		tmp := lw.cnt.newTemp()
		code = append(code,
			Div(quot, left.addr, right.addr),
			Mul(tmp, quot, right.addr),
			Sub(tmp, left.addr, tmp),
		)
		return codeAttribs{addr: tmp, code: code}

	case bin.Op.IsRelational():
		return lw.lowerRelational(bin, t1, t2, left, right, code)

	default: // * / + -
		return lw.lowerArithmetic(bin, t1, t2, left, right, code)
	}
}

// lowerArithmetic emits the integer or float flavor of * / + -, widening
// the integer side into the result temporary when the operands mix.
func (lw *lowerer) lowerArithmetic(bin *ast.BinaryExpr, t1, t2 types.TypeID, left, right codeAttribs, code []Instr) codeAttribs {
	tmp := lw.cnt.newTemp()

	if lw.in.IsFloat(t1) || lw.in.IsFloat(t2) {
		a, b := left.addr, right.addr
		switch {
		case lw.in.IsInteger(t1):
			code = append(code, Float(tmp, a))
			a = tmp
		case lw.in.IsInteger(t2):
			code = append(code, Float(tmp, b))
			b = tmp
		}
		switch bin.Op {
		case ast.BinMul:
			code = append(code, FMul(tmp, a, b))
		case ast.BinDiv:
			code = append(code, FDiv(tmp, a, b))
		case ast.BinAdd:
			code = append(code, FAdd(tmp, a, b))
		case ast.BinSub:
			code = append(code, FSub(tmp, a, b))
		}
		return codeAttribs{addr: tmp, code: code}
	}

	switch bin.Op {
	case ast.BinMul:
		code = append(code, Mul(tmp, left.addr, right.addr))
	case ast.BinDiv:
		code = append(code, Div(tmp, left.addr, right.addr))
	case ast.BinAdd:
		code = append(code, Add(tmp, left.addr, right.addr))
	case ast.BinSub:
		code = append(code, Sub(tmp, left.addr, right.addr))
	}
	return codeAttribs{addr: tmp, code: code}
}

// lowerRelational emits EQ/LT/LE (or their float variants); the missing
// orderings are synthesized with NOT.
func (lw *lowerer) lowerRelational(bin *ast.BinaryExpr, t1, t2 types.TypeID, left, right codeAttribs, code []Instr) codeAttribs {
	tmp := lw.cnt.newTemp()

	if lw.in.IsFloat(t1) || lw.in.IsFloat(t2) {
		a, b := left.addr, right.addr
		switch {
		case lw.in.IsInteger(t1):
			code = append(code, Float(tmp, a))
			a = tmp
		case lw.in.IsInteger(t2):
			code = append(code, Float(tmp, b))
			b = tmp
		}
		switch bin.Op {
		case ast.BinEq:
			code = append(code, FEq(tmp, a, b))
		case ast.BinNe:
			code = append(code, FEq(tmp, a, b), Not(tmp, tmp))
		case ast.BinLt:
			code = append(code, FLt(tmp, a, b))
		case ast.BinLe:
			code = append(code, FLe(tmp, a, b))
		case ast.BinGt:
			code = append(code, FLe(tmp, a, b), Not(tmp, tmp))
		case ast.BinGe:
			code = append(code, FLt(tmp, a, b), Not(tmp, tmp))
		}
		return codeAttribs{addr: tmp, code: code}
	}

	switch bin.Op {
	case ast.BinEq:
		code = append(code, Eq(tmp, left.addr, right.addr))
	case ast.BinNe:
		code = append(code, Eq(tmp, left.addr, right.addr), Not(tmp, tmp))
	case ast.BinLt:
		code = append(code, Lt(tmp, left.addr, right.addr))
	case ast.BinLe:
		code = append(code, Le(tmp, left.addr, right.addr))
	case ast.BinGt:
		code = append(code, Le(tmp, left.addr, right.addr), Not(tmp, tmp))
	case ast.BinGe:
		code = append(code, Lt(tmp, left.addr, right.addr), Not(tmp, tmp))
	}
	return codeAttribs{addr: tmp, code: code}
}

func (lw *lowerer) lowerCallExpr(expr *ast.Expr) codeAttribs {
	call := &expr.Call
	fnTy := lw.typeOf(call.Name)
	if !lw.in.IsFunction(fnTy) {
		return codeAttribs{addr: lw.cnt.newTemp()}
	}

	code, pushes := lw.lowerArgs(fnTy, call.Args)

	// Return slot first, then the arguments left to right.
	code = append(code, PushEmpty())
	code = append(code, pushes...)
	code = append(code, Call(call.Name))
	for range pushes {
		code = append(code, PopEmpty())
	}
	result := lw.cnt.newTemp()
	code = append(code, Pop(result))
	return codeAttribs{addr: result, code: code}
}

// lowerArgs evaluates the actual arguments, widening integers passed to
// float parameters and taking the address of array actuals. The PUSH
// instructions come back separately so the caller can front the return
// slot.
func (lw *lowerer) lowerArgs(fnTy types.TypeID, args []ast.ExprID) (code, pushes []Instr) {
	for i, argID := range args {
		arg := lw.lowerExpr(argID)
		code = append(code, arg.code...)

		addr := arg.addr
		argTy := lw.dec.ExprType[argID]
		parTy := lw.in.ParamAt(fnTy, i)
		switch {
		case lw.in.IsFloat(parTy) && lw.in.IsInteger(argTy):
			tmp := lw.cnt.newTemp()
			code = append(code, Float(tmp, addr))
			addr = tmp
		case lw.in.IsArray(argTy):
			tmp := lw.cnt.newTemp()
			code = append(code, ALoad(tmp, addr))
			addr = tmp
		}
		pushes = append(pushes, Push(addr))
	}
	return code, pushes
}
