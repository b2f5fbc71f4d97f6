// Package parser builds the arena AST from a token stream by recursive
// descent. Syntax errors become diagnostics; the parser recovers at
// statement and function boundaries and keeps going.
package parser

import (
	"fmt"

	"aslc/internal/ast"
	"aslc/internal/diag"
	"aslc/internal/source"
	"aslc/internal/token"
)

type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	builder  *ast.Builder
	reporter diag.Reporter
	bad      bool
}

// Result carries the parsed program together with its arenas.
type Result struct {
	Builder *ast.Builder
	Program *ast.Program
	// HasErrors is true when at least one syntax diagnostic was emitted.
	// Callers skip the semantic passes for such programs.
	HasErrors bool
}

// Parse consumes the token stream of one file.
func Parse(file *source.File, toks []token.Token, reporter diag.Reporter) Result {
	p := &Parser{
		file:     file,
		toks:     toks,
		builder:  ast.NewBuilder(ast.Hints{}),
		reporter: reporter,
	}
	prog := p.parseProgram()
	return Result{Builder: p.builder, Program: prog, HasErrors: p.bad}
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) bump() token.Token {
	tok := p.cur()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) accept(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.bump(), true
	}
	return token.Token{}, false
}

func (p *Parser) expect(kind token.Kind, code diag.Code) (token.Token, bool) {
	if tok, ok := p.accept(kind); ok {
		return tok, true
	}
	p.errorHere(code, fmt.Sprintf("expected %s, found %s", kind, p.cur().Kind))
	return token.Token{}, false
}

func (p *Parser) errorHere(code diag.Code, msg string) {
	p.bad = true
	diag.ReportError(p.reporter, code, p.cur().Span, msg).Emit()
}

// sync skips tokens until one of the kinds (or EOF) is current.
func (p *Parser) sync(kinds ...token.Kind) {
	for !p.at(token.EOF) {
		for _, k := range kinds {
			if p.at(k) {
				return
			}
		}
		p.bump()
	}
}

func (p *Parser) parseProgram() *ast.Program {
	start := p.cur().Span
	prog := &ast.Program{File: p.file.ID, Span: start}

	for !p.at(token.EOF) {
		if !p.at(token.KwFunc) {
			p.errorHere(diag.SynExpectFunction,
				fmt.Sprintf("expected 'func' at top level, found %s", p.cur().Kind))
			p.sync(token.KwFunc)
			continue
		}
		if fn, ok := p.parseFunction(); ok {
			prog.Funcs = append(prog.Funcs, fn)
		}
	}
	if len(p.toks) > 0 {
		prog.Span = start.Cover(p.toks[len(p.toks)-1].Span)
	}
	return prog
}

func (p *Parser) parseFunction() (ast.FuncID, bool) {
	kw := p.bump() // 'func'

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.sync(token.KwFunc)
		return ast.NoFuncID, false
	}

	fn := ast.Func{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
	}

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
		p.sync(token.KwFunc)
		return ast.NoFuncID, false
	}
	if !p.at(token.RParen) {
		for {
			param, ok := p.parseParam()
			if !ok {
				p.sync(token.RParen, token.KwFunc)
				break
			}
			fn.Params = append(fn.Params, param)
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
	}
	p.expect(token.RParen, diag.SynUnexpectedToken)

	if _, ok := p.accept(token.Colon); ok {
		fn.ReturnType = p.parseBasicType()
	}

	fn.Decls = p.parseDeclarations()
	fn.Body = p.parseStatements()

	endTok, _ := p.expect(token.KwEndFunc, diag.SynUnexpectedToken)
	fn.Span = kw.Span.Cover(endTok.Span)
	return p.builder.NewFunc(fn), true
}

func (p *Parser) parseParam() (ast.ParamID, bool) {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return ast.NoParamID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
		return ast.NoParamID, false
	}
	ty := p.parseType()
	if !ty.IsValid() {
		return ast.NoParamID, false
	}
	return p.builder.NewParam(ast.Param{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Type:     ty,
	}), true
}

// parseDeclarations accepts any number of `var` blocks. Declarations in
// one block may be separated by semicolons; a block may be closed by an
// optional `endvar`.
func (p *Parser) parseDeclarations() []ast.VarDeclID {
	var decls []ast.VarDeclID
	for p.at(token.KwVar) {
		p.bump() // 'var'
		for {
			if decl, ok := p.parseVarDecl(); ok {
				decls = append(decls, decl)
			} else {
				p.sync(token.Semicolon, token.KwEndVar, token.KwVar, token.KwEndFunc)
			}
			if _, ok := p.accept(token.Semicolon); ok {
				// Another declaration only when the identifier is
				// followed by ':' or ','; otherwise the identifier
				// starts the first statement.
				if p.at(token.Ident) && (p.peek().Kind == token.Colon || p.peek().Kind == token.Comma) {
					continue
				}
			}
			break
		}
		p.accept(token.KwEndVar)
	}
	return decls
}

func (p *Parser) parseVarDecl() (ast.VarDeclID, bool) {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		return ast.NoVarDeclID, false
	}
	decl := ast.VarDecl{
		Names:     []string{nameTok.Text},
		NameSpans: []source.Span{nameTok.Span},
	}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !ok {
			return ast.NoVarDeclID, false
		}
		decl.Names = append(decl.Names, tok.Text)
		decl.NameSpans = append(decl.NameSpans, tok.Span)
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
		return ast.NoVarDeclID, false
	}
	decl.Type = p.parseType()
	if !decl.Type.IsValid() {
		return ast.NoVarDeclID, false
	}
	decl.Span = nameTok.Span.Cover(p.builder.Type(decl.Type).Span)
	return p.builder.NewVarDecl(decl), true
}

// parseType parses `basictype` or `array [ INT ] of basictype`.
func (p *Parser) parseType() ast.TypeID {
	if kw, ok := p.accept(token.KwArray); ok {
		if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken); !ok {
			return ast.NoTypeID
		}
		sizeTok, ok := p.expect(token.IntLit, diag.SynBadArraySize)
		if !ok {
			return ast.NoTypeID
		}
		var count uint32
		if _, err := fmt.Sscanf(sizeTok.Text, "%d", &count); err != nil || count == 0 {
			p.bad = true
			diag.ReportError(p.reporter, diag.SynBadArraySize, sizeTok.Span,
				fmt.Sprintf("array size must be a positive integer, found '%s'", sizeTok.Text)).Emit()
			return ast.NoTypeID
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnexpectedToken); !ok {
			return ast.NoTypeID
		}
		if _, ok := p.expect(token.KwOf, diag.SynUnexpectedToken); !ok {
			return ast.NoTypeID
		}
		elem := p.parseBasicType()
		if !elem.IsValid() {
			return ast.NoTypeID
		}
		elemNode := p.builder.Type(elem)
		return p.builder.NewType(ast.TypeNode{
			IsArray: true,
			Basic:   elemNode.Basic,
			Count:   count,
			Span:    kw.Span.Cover(elemNode.Span),
		})
	}
	return p.parseBasicType()
}

func (p *Parser) parseBasicType() ast.TypeID {
	var basic ast.BasicKind
	switch p.cur().Kind {
	case token.KwInt:
		basic = ast.BasicInt
	case token.KwFloat:
		basic = ast.BasicFloat
	case token.KwBool:
		basic = ast.BasicBool
	case token.KwChar:
		basic = ast.BasicChar
	default:
		p.errorHere(diag.SynExpectType,
			fmt.Sprintf("expected a type, found %s", p.cur().Kind))
		return ast.NoTypeID
	}
	tok := p.bump()
	return p.builder.NewType(ast.TypeNode{Basic: basic, Span: tok.Span})
}
