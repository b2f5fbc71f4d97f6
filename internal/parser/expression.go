package parser

import (
	"fmt"

	"aslc/internal/ast"
	"aslc/internal/diag"
	"aslc/internal/token"
)

// Expression parsing is classic precedence climbing, loosest level first:
// or < and < relational < additive < multiplicative < unary < primary.

func (p *Parser) parseExpr() ast.ExprID {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.ExprID {
	left := p.parseAnd()
	for p.at(token.KwOr) {
		opTok := p.bump()
		right := p.parseAnd()
		left = p.binary(ast.BinOr, opTok, left, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.ExprID {
	left := p.parseRelational()
	for p.at(token.KwAnd) {
		opTok := p.bump()
		right := p.parseRelational()
		left = p.binary(ast.BinAnd, opTok, left, right)
	}
	return left
}

var relationalOps = map[token.Kind]ast.BinaryOp{
	token.EqEq:  ast.BinEq,
	token.NotEq: ast.BinNe,
	token.Lt:    ast.BinLt,
	token.LtEq:  ast.BinLe,
	token.Gt:    ast.BinGt,
	token.GtEq:  ast.BinGe,
}

func (p *Parser) parseRelational() ast.ExprID {
	left := p.parseAdditive()
	for {
		op, ok := relationalOps[p.cur().Kind]
		if !ok {
			return left
		}
		opTok := p.bump()
		right := p.parseAdditive()
		left = p.binary(op, opTok, left, right)
	}
}

func (p *Parser) parseAdditive() ast.ExprID {
	left := p.parseMultiplicative()
	for {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.Plus:
			op = ast.BinAdd
		case token.Minus:
			op = ast.BinSub
		default:
			return left
		}
		opTok := p.bump()
		right := p.parseMultiplicative()
		left = p.binary(op, opTok, left, right)
	}
}

func (p *Parser) parseMultiplicative() ast.ExprID {
	left := p.parseUnary()
	for {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case token.Star:
			op = ast.BinMul
		case token.Slash:
			op = ast.BinDiv
		case token.Percent:
			op = ast.BinMod
		default:
			return left
		}
		opTok := p.bump()
		right := p.parseUnary()
		left = p.binary(op, opTok, left, right)
	}
}

func (p *Parser) parseUnary() ast.ExprID {
	switch p.cur().Kind {
	case token.KwNot:
		opTok := p.bump()
		operand := p.parseUnary()
		return p.builder.NewUnaryExpr(opTok.Span.Cover(p.builder.Expr(operand).Span), ast.UnaryNot, operand)
	case token.Minus:
		opTok := p.bump()
		operand := p.parseUnary()
		return p.builder.NewUnaryExpr(opTok.Span.Cover(p.builder.Expr(operand).Span), ast.UnaryNeg, operand)
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.ExprID {
	switch p.cur().Kind {
	case token.LParen:
		open := p.bump()
		inner := p.parseExpr()
		closeTok, _ := p.expect(token.RParen, diag.SynUnexpectedToken)
		return p.builder.NewParenExpr(open.Span.Cover(closeTok.Span), inner)

	case token.IntLit:
		tok := p.bump()
		return p.builder.NewLitExpr(tok.Span, ast.LitInt, tok.Text)
	case token.FloatLit:
		tok := p.bump()
		return p.builder.NewLitExpr(tok.Span, ast.LitFloat, tok.Text)
	case token.CharLit:
		tok := p.bump()
		return p.builder.NewLitExpr(tok.Span, ast.LitChar, tok.Text)
	case token.KwTrue, token.KwFalse:
		tok := p.bump()
		return p.builder.NewLitExpr(tok.Span, ast.LitBool, tok.Text)

	case token.Ident:
		nameTok := p.bump()
		switch p.cur().Kind {
		case token.LBracket:
			p.bump()
			index := p.parseExpr()
			closeTok, _ := p.expect(token.RBracket, diag.SynUnexpectedToken)
			return p.builder.NewArrayAccExpr(nameTok.Span.Cover(closeTok.Span), nameTok.Span, nameTok.Text, index)
		case token.LParen:
			p.bump()
			var args []ast.ExprID
			if !p.at(token.RParen) {
				for {
					args = append(args, p.parseExpr())
					if _, ok := p.accept(token.Comma); !ok {
						break
					}
				}
			}
			closeTok, _ := p.expect(token.RParen, diag.SynUnexpectedToken)
			return p.builder.NewCallExpr(nameTok.Span.Cover(closeTok.Span), nameTok.Span, nameTok.Text, args)
		}
		return p.builder.NewIdentExpr(nameTok.Span, nameTok.Text)
	}

	// The offending token stays put: it is usually a statement terminator
	// the caller can resynchronize on.
	p.errorHere(diag.SynExpectExpression,
		fmt.Sprintf("expected an expression, found %s", p.cur().Kind))
	return p.builder.NewExpr(ast.Expr{Kind: ast.ExprInvalid, Span: p.cur().Span})
}

func (p *Parser) binary(op ast.BinaryOp, opTok token.Token, left, right ast.ExprID) ast.ExprID {
	span := p.builder.Expr(left).Span.Cover(p.builder.Expr(right).Span)
	return p.builder.NewBinaryExpr(span, opTok.Span, op, left, right)
}
