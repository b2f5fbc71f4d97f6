package parser

import (
	"fmt"

	"aslc/internal/ast"
	"aslc/internal/diag"
	"aslc/internal/token"
)

// blockEnd reports tokens that terminate a statement list. A stray
// 'func' means a missing endfunc; stopping there lets the program loop
// pick the next function up instead of swallowing it.
func blockEnd(kind token.Kind) bool {
	switch kind {
	case token.KwEndFunc, token.KwElse, token.KwEndIf, token.KwEndWhile,
		token.KwFunc, token.EOF:
		return true
	}
	return false
}

func (p *Parser) parseStatements() []ast.StmtID {
	var stmts []ast.StmtID
	for !blockEnd(p.cur().Kind) {
		stmt, ok := p.parseStatement()
		if !ok {
			p.sync(token.Semicolon, token.KwEndFunc, token.KwEndIf, token.KwEndWhile,
				token.KwElse, token.KwIf, token.KwWhile, token.KwRead, token.KwWrite, token.KwReturn)
			p.accept(token.Semicolon)
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func (p *Parser) parseStatement() (ast.StmtID, bool) {
	switch p.cur().Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwRead:
		return p.parseRead()
	case token.KwWrite:
		return p.parseWrite()
	case token.Ident:
		if p.peek().Kind == token.LParen {
			return p.parseProcCall()
		}
		return p.parseAssign()
	}
	p.errorHere(diag.SynExpectStatement,
		fmt.Sprintf("expected a statement, found %s", p.cur().Kind))
	return ast.NoStmtID, false
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.bump() // 'if'
	cond := p.parseExpr()
	if _, ok := p.expect(token.KwThen, diag.SynUnexpectedToken); !ok {
		return ast.NoStmtID, false
	}
	thenStmts := p.parseStatements()
	var elseStmts []ast.StmtID
	if _, ok := p.accept(token.KwElse); ok {
		elseStmts = p.parseStatements()
	}
	endTok, ok := p.expect(token.KwEndIf, diag.SynUnexpectedToken)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.builder.NewStmt(ast.Stmt{
		Kind: ast.StmtIf,
		Span: kw.Span.Cover(endTok.Span),
		If:   ast.IfStmt{Cond: cond, Then: thenStmts, Else: elseStmts},
	}), true
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	kw := p.bump() // 'while'
	cond := p.parseExpr()
	if _, ok := p.expect(token.KwDo, diag.SynUnexpectedToken); !ok {
		return ast.NoStmtID, false
	}
	body := p.parseStatements()
	endTok, ok := p.expect(token.KwEndWhile, diag.SynUnexpectedToken)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.builder.NewStmt(ast.Stmt{
		Kind:  ast.StmtWhile,
		Span:  kw.Span.Cover(endTok.Span),
		While: ast.WhileStmt{Cond: cond, Body: body},
	}), true
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	kw := p.bump() // 'return'
	ret := ast.ReturnStmt{Expr: ast.NoExprID}
	if !p.at(token.Semicolon) {
		ret.Expr = p.parseExpr()
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.builder.NewStmt(ast.Stmt{
		Kind:   ast.StmtReturn,
		Span:   kw.Span.Cover(semi.Span),
		Return: ret,
	}), true
}

func (p *Parser) parseRead() (ast.StmtID, bool) {
	kw := p.bump() // 'read'
	left, ok := p.parseLeftExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.builder.NewStmt(ast.Stmt{
		Kind: ast.StmtRead,
		Span: kw.Span.Cover(semi.Span),
		Read: ast.ReadStmt{Left: left},
	}), true
}

func (p *Parser) parseWrite() (ast.StmtID, bool) {
	kw := p.bump() // 'write'

	if strTok, ok := p.accept(token.StringLit); ok {
		semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon)
		if !ok {
			return ast.NoStmtID, false
		}
		return p.builder.NewStmt(ast.Stmt{
			Kind:     ast.StmtWriteStr,
			Span:     kw.Span.Cover(semi.Span),
			WriteStr: ast.WriteStrStmt{Raw: strTok.Text},
		}), true
	}

	expr := p.parseExpr()
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.builder.NewStmt(ast.Stmt{
		Kind:  ast.StmtWriteExpr,
		Span:  kw.Span.Cover(semi.Span),
		Write: ast.WriteStmt{Expr: expr},
	}), true
}

func (p *Parser) parseProcCall() (ast.StmtID, bool) {
	nameTok := p.bump() // ident
	p.bump()            // '('
	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			args = append(args, p.parseExpr())
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken); !ok {
		return ast.NoStmtID, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.builder.NewStmt(ast.Stmt{
		Kind: ast.StmtProcCall,
		Span: nameTok.Span.Cover(semi.Span),
		Call: ast.CallStmt{Name: nameTok.Text, NameSpan: nameTok.Span, Args: args},
	}), true
}

func (p *Parser) parseAssign() (ast.StmtID, bool) {
	left, ok := p.parseLeftExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken); !ok {
		return ast.NoStmtID, false
	}
	expr := p.parseExpr()
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.builder.NewStmt(ast.Stmt{
		Kind:   ast.StmtAssign,
		Span:   p.builder.Left(left).Span.Cover(semi.Span),
		Assign: ast.AssignStmt{Left: left, Expr: expr},
	}), true
}

func (p *Parser) parseLeftExpr() (ast.LeftID, bool) {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return ast.NoLeftID, false
	}
	left := ast.Left{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Index:    ast.NoExprID,
		Span:     nameTok.Span,
	}
	if _, ok := p.accept(token.LBracket); ok {
		left.Index = p.parseExpr()
		closeTok, ok := p.expect(token.RBracket, diag.SynUnexpectedToken)
		if !ok {
			return ast.NoLeftID, false
		}
		left.Span = nameTok.Span.Cover(closeTok.Span)
	}
	return p.builder.NewLeft(left), true
}
