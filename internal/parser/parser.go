// Package parser implements stackc's recursive-descent, precedence-climbing
// parser. It consumes the fully materialized token stream produced by
// package lexer and builds the ast.Program tree consumed by package codegen.
package parser

import (
	"github.com/tinylang/stackc/internal/ast"
	"github.com/tinylang/stackc/internal/lexer"
)

// Parse turns a token stream into a Program. Parsing is fatal-on-first-error:
// the parser does not attempt to recover and continue after a syntax error.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	p := &parser{c: newCursor(tokens)}
	return p.parseProgram()
}

type parser struct {
	c *cursor
}

func (p *parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.c.atEnd() {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		prog.Funcs = append(prog.Funcs, fn)
	}

	if len(prog.Funcs) == 0 {
		return nil, newError(lexer.Position{}, ErrEmptyProgram, "a program must declare at least one function")
	}

	hasMain := false
	for _, fn := range prog.Funcs {
		if fn.Name == "main" {
			hasMain = true
			break
		}
	}
	if !hasMain {
		return nil, newError(prog.Funcs[0].Pos(), ErrMissingMain, "a program must declare a function named `main`")
	}

	return prog, nil
}

func (p *parser) parseFunction() (*ast.FuncDecl, error) {
	kwTok, err := p.expect(lexer.KindKeywordFunctionDecl, ErrUnexpectedToken, "expected `func`")
	if err != nil {
		return nil, err
	}

	nameTok, err := p.expect(lexer.KindIdentifier, ErrExpectedIdent, "expected a function name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.KindOpenScope, ErrMissingOpenScope, "expected `{` after function name"); err != nil {
		return nil, err
	}

	body, err := p.parseBlockItems()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{Token: kwTok, Name: nameTok.Literal, Body: body}, nil
}

// parseBlockItems parses BlockItem* up to, and consuming, a closing `}`.
func (p *parser) parseBlockItems() ([]ast.Stmt, error) {
	var items []ast.Stmt
	for !p.c.check(lexer.KindCloseScope) {
		if p.c.atEnd() {
			return nil, newError(p.c.current().Pos, ErrMissingCloseScope, "expected `}` before end of input")
		}
		item, err := p.parseBlockItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	p.c.consume() // closing `}`
	return items, nil
}

func (p *parser) parseBlockItem() (ast.Stmt, error) {
	switch p.c.current().Kind {
	case lexer.KindKeywordVariableDecl:
		return p.parseVarDecl()
	default:
		return p.parseStatement()
	}
}

func (p *parser) parseVarDecl() (ast.Stmt, error) {
	kwTok := p.c.consume() // `let`

	nameTok, err := p.expect(lexer.KindIdentifier, ErrExpectedIdent, "expected a variable name after `let`")
	if err != nil {
		return nil, err
	}

	var init ast.Expr
	if p.c.match(lexer.KindOpAssign) {
		init, err = p.parseAddExpr()
		if err != nil {
			return nil, err
		}
	} else {
		init = &ast.Literal{Token: lexer.NewToken(lexer.KindLiteralInt, "0", kwTok.Pos), Value: 0}
	}

	if _, err := p.expect(lexer.KindEnd, ErrMissingSemicolon, "expected `;` after variable declaration"); err != nil {
		return nil, err
	}

	return &ast.VarDecl{Token: kwTok, Name: nameTok.Literal, Init: init}, nil
}

// expect consumes the current token if it has the given kind, or returns a
// parse error carrying code and message otherwise.
func (p *parser) expect(kind lexer.TokenKind, code, message string) (lexer.Token, error) {
	if p.c.atEnd() {
		return lexer.Token{}, newError(p.c.current().Pos, code, "%s, found end of input", message)
	}
	if !p.c.check(kind) {
		cur := p.c.current()
		return lexer.Token{}, newError(cur.Pos, code, "%s, found `%s`", message, cur.Literal)
	}
	return p.c.consume(), nil
}
