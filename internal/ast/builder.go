package ast

import (
	"aslc/internal/source"
)

// Hints suggests arena capacities for a Builder.
type Hints struct{ Funcs, Stmts, Exprs uint }

// Builder owns the arenas of one parsed program.
type Builder struct {
	Funcs    *Arena[Func]
	Params   *Arena[Param]
	VarDecls *Arena[VarDecl]
	Types    *Arena[TypeNode]
	Stmts    *Arena[Stmt]
	Exprs    *Arena[Expr]
	Lefts    *Arena[Left]
}

func NewBuilder(hints Hints) *Builder {
	if hints.Funcs == 0 {
		hints.Funcs = 1 << 4
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Funcs:    NewArena[Func](hints.Funcs),
		Params:   NewArena[Param](hints.Funcs * 2),
		VarDecls: NewArena[VarDecl](hints.Funcs * 4),
		Types:    NewArena[TypeNode](hints.Funcs * 4),
		Stmts:    NewArena[Stmt](hints.Stmts),
		Exprs:    NewArena[Expr](hints.Exprs),
		Lefts:    NewArena[Left](hints.Stmts),
	}
}

func (b *Builder) NewFunc(f Func) FuncID         { return FuncID(b.Funcs.Allocate(f)) }
func (b *Builder) NewParam(p Param) ParamID      { return ParamID(b.Params.Allocate(p)) }
func (b *Builder) NewVarDecl(d VarDecl) VarDeclID { return VarDeclID(b.VarDecls.Allocate(d)) }
func (b *Builder) NewType(t TypeNode) TypeID     { return TypeID(b.Types.Allocate(t)) }
func (b *Builder) NewStmt(s Stmt) StmtID         { return StmtID(b.Stmts.Allocate(s)) }
func (b *Builder) NewExpr(e Expr) ExprID         { return ExprID(b.Exprs.Allocate(e)) }
func (b *Builder) NewLeft(l Left) LeftID         { return LeftID(b.Lefts.Allocate(l)) }

func (b *Builder) Func(id FuncID) *Func          { return b.Funcs.Get(uint32(id)) }
func (b *Builder) Param(id ParamID) *Param       { return b.Params.Get(uint32(id)) }
func (b *Builder) VarDecl(id VarDeclID) *VarDecl { return b.VarDecls.Get(uint32(id)) }
func (b *Builder) Type(id TypeID) *TypeNode      { return b.Types.Get(uint32(id)) }
func (b *Builder) Stmt(id StmtID) *Stmt          { return b.Stmts.Get(uint32(id)) }
func (b *Builder) Expr(id ExprID) *Expr          { return b.Exprs.Get(uint32(id)) }
func (b *Builder) Left(id LeftID) *Left          { return b.Lefts.Get(uint32(id)) }

// Convenience constructors used by the parser and by tests.

func (b *Builder) NewIdentExpr(sp source.Span, name string) ExprID {
	return b.NewExpr(Expr{Kind: ExprIdent, Span: sp, Ident: IdentExpr{Name: name}})
}

func (b *Builder) NewLitExpr(sp source.Span, kind LitKind, text string) ExprID {
	return b.NewExpr(Expr{Kind: ExprLit, Span: sp, Lit: LitExpr{Kind: kind, Text: text}})
}

func (b *Builder) NewBinaryExpr(sp, opSpan source.Span, op BinaryOp, left, right ExprID) ExprID {
	return b.NewExpr(Expr{Kind: ExprBinary, Span: sp, Binary: BinaryExpr{Op: op, OpSpan: opSpan, Left: left, Right: right}})
}

func (b *Builder) NewUnaryExpr(sp source.Span, op UnaryOp, operand ExprID) ExprID {
	return b.NewExpr(Expr{Kind: ExprUnary, Span: sp, Unary: UnaryExpr{Op: op, Operand: operand}})
}

func (b *Builder) NewParenExpr(sp source.Span, inner ExprID) ExprID {
	return b.NewExpr(Expr{Kind: ExprParen, Span: sp, Paren: ParenExpr{Inner: inner}})
}

func (b *Builder) NewCallExpr(sp, nameSpan source.Span, name string, args []ExprID) ExprID {
	return b.NewExpr(Expr{Kind: ExprCall, Span: sp, Call: CallExpr{Name: name, NameSpan: nameSpan, Args: args}})
}

func (b *Builder) NewArrayAccExpr(sp, nameSpan source.Span, name string, index ExprID) ExprID {
	return b.NewExpr(Expr{Kind: ExprArrayAcc, Span: sp, ArrayAcc: ArrayAccExpr{Name: name, NameSpan: nameSpan, Index: index}})
}
