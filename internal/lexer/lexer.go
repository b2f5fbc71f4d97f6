// Package lexer turns ASL source bytes into tokens. It never aborts:
// malformed input produces a diagnostic and scanning continues at the
// next byte that can start a token.
package lexer

import (
	"aslc/internal/diag"
	"aslc/internal/source"
	"aslc/internal/token"
)

type Lexer struct {
	cursor   Cursor
	reporter diag.Reporter
}

func New(file *source.File, reporter diag.Reporter) *Lexer {
	return &Lexer{
		cursor:   NewCursor(file),
		reporter: reporter,
	}
}

// Scan tokenizes the whole file. The returned slice always ends with an
// EOF token.
func Scan(file *source.File, reporter diag.Reporter) []token.Token {
	lx := New(file, reporter)
	toks := make([]token.Token, 0, len(file.Content)/4)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next significant token, skipping whitespace and `//`
// comments. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.cursor.SpanFrom(lx.cursor.Off),
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber()
	case ch == '\'':
		return lx.scanChar()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch ch := lx.cursor.Peek(); {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.cursor.Bump()
		case ch == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.Text(start)
	kind := token.Ident
	if kw, ok := token.LookupKeyword(text); ok {
		kind = kw
	}
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	kind := token.IntLit
	if lx.cursor.Peek() == '.' && isDigit(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// A letter glued to the number is a malformed literal, not two tokens.
	if isIdentStart(lx.cursor.Peek()) {
		for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		span := lx.cursor.SpanFrom(start)
		diag.ReportError(lx.reporter, diag.LexBadNumber, span,
			"malformed number '"+lx.cursor.Text(start)+"'").Emit()
		return token.Token{Kind: token.Invalid, Span: span, Text: lx.cursor.Text(start)}
	}

	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Text(start)}
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\'':
			lx.cursor.Bump()
			return token.Token{Kind: token.CharLit, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Text(start)}
		case '\n':
			span := lx.cursor.SpanFrom(start)
			diag.ReportError(lx.reporter, diag.LexUnterminatedChar, span,
				"unterminated character literal").Emit()
			return token.Token{Kind: token.Invalid, Span: span, Text: lx.cursor.Text(start)}
		case '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		default:
			lx.cursor.Bump()
		}
	}
	span := lx.cursor.SpanFrom(start)
	diag.ReportError(lx.reporter, diag.LexUnterminatedChar, span,
		"unterminated character literal").Emit()
	return token.Token{Kind: token.Invalid, Span: span, Text: lx.cursor.Text(start)}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Text(start)}
		case '\n':
			span := lx.cursor.SpanFrom(start)
			diag.ReportError(lx.reporter, diag.LexUnterminatedString, span,
				"unterminated string").Emit()
			return token.Token{Kind: token.Invalid, Span: span, Text: lx.cursor.Text(start)}
		case '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		default:
			lx.cursor.Bump()
		}
	}
	span := lx.cursor.SpanFrom(start)
	diag.ReportError(lx.reporter, diag.LexUnterminatedString, span,
		"unterminated string").Emit()
	return token.Token{Kind: token.Invalid, Span: span, Text: lx.cursor.Text(start)}
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Off
	ch := lx.cursor.Peek()
	next := lx.cursor.PeekAt(1)

	two := func(kind token.Kind) token.Token {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Text(start)}
	}
	one := func(kind token.Kind) token.Token {
		lx.cursor.Bump()
		return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.Text(start)}
	}

	switch ch {
	case '=':
		if next == '=' {
			return two(token.EqEq)
		}
		return one(token.Assign)
	case '!':
		if next == '=' {
			return two(token.NotEq)
		}
	case '<':
		if next == '=' {
			return two(token.LtEq)
		}
		return one(token.Lt)
	case '>':
		if next == '=' {
			return two(token.GtEq)
		}
		return one(token.Gt)
	case '+':
		return one(token.Plus)
	case '-':
		return one(token.Minus)
	case '*':
		return one(token.Star)
	case '/':
		return one(token.Slash)
	case '%':
		return one(token.Percent)
	case '(':
		return one(token.LParen)
	case ')':
		return one(token.RParen)
	case '[':
		return one(token.LBracket)
	case ']':
		return one(token.RBracket)
	case ',':
		return one(token.Comma)
	case ':':
		return one(token.Colon)
	case ';':
		return one(token.Semicolon)
	}

	lx.cursor.Bump()
	span := lx.cursor.SpanFrom(start)
	diag.ReportError(lx.reporter, diag.LexUnknownChar, span,
		"unknown character '"+lx.cursor.Text(start)+"'").Emit()
	return token.Token{Kind: token.Invalid, Span: span, Text: lx.cursor.Text(start)}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
