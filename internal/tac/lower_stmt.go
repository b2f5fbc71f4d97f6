package tac

import (
	"fmt"

	"aslc/internal/ast"
	"aslc/internal/types"
)

func (lw *lowerer) lowerStmts(stmts []ast.StmtID) []Instr {
	var code []Instr
	for _, id := range stmts {
		code = append(code, lw.lowerStmt(id)...)
	}
	return code
}

func (lw *lowerer) lowerStmt(id ast.StmtID) []Instr {
	stmt := lw.b.Stmt(id)
	switch stmt.Kind {
	case ast.StmtAssign:
		return lw.lowerAssign(stmt)
	case ast.StmtIf:
		return lw.lowerIf(stmt)
	case ast.StmtWhile:
		return lw.lowerWhile(stmt)
	case ast.StmtProcCall:
		return lw.lowerProcCall(stmt)
	case ast.StmtRead:
		return lw.lowerRead(stmt)
	case ast.StmtWriteExpr:
		return lw.lowerWriteExpr(stmt)
	case ast.StmtWriteStr:
		return lw.lowerWriteStr(stmt)
	case ast.StmtReturn:
		return lw.lowerReturn(stmt)
	}
	return nil
}

func (lw *lowerer) lowerAssign(stmt *ast.Stmt) []Instr {
	dst := lw.lowerLeft(stmt.Assign.Left)
	src := lw.lowerExpr(stmt.Assign.Expr)
	code := append(dst.code, src.code...)

	dstTy := lw.dec.LeftType[stmt.Assign.Left]
	srcTy := lw.dec.ExprType[stmt.Assign.Expr]

	srcAddr := src.addr
	if lw.in.IsFloat(dstTy) && lw.in.IsInteger(srcTy) {
		tmp := lw.cnt.newTemp()
		code = append(code, Float(tmp, srcAddr))
		srcAddr = tmp
	}

	switch {
	case dst.offs != "":
		code = append(code, XLoad(dst.addr, dst.offs, srcAddr))
	case lw.in.IsArray(dstTy):
		code = append(code, lw.copyArray(dst.addr, srcAddr, dstTy)...)
	default:
		code = append(code, Load(dst.addr, srcAddr))
	}
	return code
}

// copyArray emits the unrolled element-by-element copy used for
// whole-array assignment. Parameters hold array references and get
// dereferenced first.
func (lw *lowerer) copyArray(dstAddr, srcAddr string, arrTy types.TypeID) []Instr {
	var code []Instr
	if lw.isParameter(dstAddr) {
		tmp := lw.cnt.newTemp()
		code = append(code, Load(tmp, dstAddr))
		dstAddr = tmp
	}
	if lw.isParameter(srcAddr) {
		tmp := lw.cnt.newTemp()
		code = append(code, Load(tmp, srcAddr))
		srcAddr = tmp
	}
	idx := lw.cnt.newTemp()
	val := lw.cnt.newTemp()
	n := lw.in.ArraySize(arrTy)
	for k := uint32(0); k < n; k++ {
		code = append(code,
			ILoad(idx, fmt.Sprintf("%d", k)),
			LoadX(val, srcAddr, idx),
			XLoad(dstAddr, idx, val),
		)
	}
	return code
}

func (lw *lowerer) lowerIf(stmt *ast.Stmt) []Instr {
	cond := lw.lowerExpr(stmt.If.Cond)
	thenCode := lw.lowerStmts(stmt.If.Then)

	suffix := lw.cnt.newIfLabel()
	endifLabel := "endif" + suffix

	if len(stmt.If.Else) == 0 {
		code := append(cond.code, FJump(cond.addr, endifLabel))
		code = append(code, thenCode...)
		return append(code, Label(endifLabel))
	}

	elseLabel := "else" + suffix
	elseCode := lw.lowerStmts(stmt.If.Else)
	code := append(cond.code, FJump(cond.addr, elseLabel))
	code = append(code, thenCode...)
	code = append(code, UJump(endifLabel), Label(elseLabel))
	code = append(code, elseCode...)
	return append(code, Label(endifLabel))
}

func (lw *lowerer) lowerWhile(stmt *ast.Stmt) []Instr {
	suffix := lw.cnt.newWhileLabel()
	whileLabel := "while" + suffix
	endLabel := "endwhile" + suffix

	cond := lw.lowerExpr(stmt.While.Cond)
	body := lw.lowerStmts(stmt.While.Body)

	code := []Instr{Label(whileLabel)}
	code = append(code, cond.code...)
	code = append(code, FJump(cond.addr, endLabel))
	code = append(code, body...)
	return append(code, UJump(whileLabel), Label(endLabel))
}

func (lw *lowerer) lowerProcCall(stmt *ast.Stmt) []Instr {
	call := &stmt.Call
	fnTy := lw.typeOf(call.Name)
	if !lw.in.IsFunction(fnTy) {
		return nil
	}

	code, pushes := lw.lowerArgs(fnTy, call.Args)

	nonVoid := !lw.in.IsVoidReturning(fnTy)
	if nonVoid {
		// Reserve the return slot before the arguments.
		code = append(code, PushEmpty())
	}
	code = append(code, pushes...)
	code = append(code, Call(call.Name))
	for range pushes {
		code = append(code, PopEmpty())
	}
	if nonVoid {
		code = append(code, PopEmpty())
	}
	return code
}

func (lw *lowerer) lowerRead(stmt *ast.Stmt) []Instr {
	dst := lw.lowerLeft(stmt.Read.Left)
	code := dst.code

	tmp := dst.addr
	if dst.offs != "" {
		tmp = lw.cnt.newTemp()
	}

	ty := lw.dec.LeftType[stmt.Read.Left]
	switch {
	case lw.in.IsFloat(ty):
		code = append(code, ReadF(tmp))
	case lw.in.IsCharacter(ty):
		code = append(code, ReadC(tmp))
	default:
		code = append(code, ReadI(tmp))
	}

	if dst.offs != "" {
		code = append(code, XLoad(dst.addr, dst.offs, tmp))
	}
	return code
}

func (lw *lowerer) lowerWriteExpr(stmt *ast.Stmt) []Instr {
	val := lw.lowerExpr(stmt.Write.Expr)
	code := val.code

	ty := lw.dec.ExprType[stmt.Write.Expr]
	switch {
	case lw.in.IsFloat(ty):
		code = append(code, WriteF(val.addr))
	case lw.in.IsCharacter(ty):
		code = append(code, WriteC(val.addr))
	default:
		// Integers and booleans share WRITEI.
		code = append(code, WriteI(val.addr))
	}
	return code
}

// lowerWriteStr decodes the raw string literal character by character.
// \n becomes WRITELN; \t, \" and \\ stay as two-character escapes for
// CHLOAD; everything else is emitted verbatim.
func (lw *lowerer) lowerWriteStr(stmt *ast.Stmt) []Instr {
	s := stmt.WriteStr.Raw
	var code []Instr
	tmp := lw.cnt.newTemp()

	i := 1
	for i < len(s)-1 {
		if s[i] != '\\' {
			code = append(code, ChLoad(tmp, s[i:i+1]), WriteC(tmp))
			i++
			continue
		}
		switch s[i+1] {
		case 'n':
			code = append(code, WriteLn())
			i += 2
		case 't', '"', '\\':
			code = append(code, ChLoad(tmp, s[i:i+2]), WriteC(tmp))
			i += 2
		default:
			code = append(code, ChLoad(tmp, s[i:i+1]), WriteC(tmp))
			i++
		}
	}
	return code
}

func (lw *lowerer) lowerReturn(stmt *ast.Stmt) []Instr {
	if !stmt.Return.Expr.IsValid() {
		return []Instr{Return()}
	}
	val := lw.lowerExpr(stmt.Return.Expr)
	code := val.code

	addr := val.addr
	retTy := lw.retTy
	srcTy := lw.dec.ExprType[stmt.Return.Expr]
	if lw.in.IsFloat(retTy) && lw.in.IsInteger(srcTy) {
		tmp := lw.cnt.newTemp()
		code = append(code, Float(tmp, addr))
		addr = tmp
	}
	return append(code, Load(ReturnSlot, addr), Return())
}

// lowerLeft resolves an assignment or read target to its address and
// optional element offset. Array parameters are dereferenced when an
// element is selected.
func (lw *lowerer) lowerLeft(id ast.LeftID) codeAttribs {
	left := lw.b.Left(id)
	attrs := codeAttribs{addr: left.Name}

	if left.Index.IsValid() {
		idx := lw.lowerExpr(left.Index)
		attrs.offs = idx.addr
		attrs.code = idx.code
		if lw.isParameter(left.Name) {
			tmp := lw.cnt.newTemp()
			attrs.code = append(attrs.code, Load(tmp, left.Name))
			attrs.addr = tmp
		}
	}
	return attrs
}
