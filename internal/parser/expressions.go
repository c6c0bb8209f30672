package parser

import (
	"errors"

	"github.com/tinylang/stackc/internal/ast"
	"github.com/tinylang/stackc/internal/lexer"
)

// The expression grammar is a chain of left-associative binary levels,
// precedence-climbing from loosest to tightest:
//
//	or_expr  -> and_expr  {"||" and_expr}
//	and_expr -> equ_expr  {"&&" equ_expr}
//	equ_expr -> rel_expr  {("=="|"~=") rel_expr}
//	rel_expr -> add_expr  {(">"|"<"|">="|"<=") add_expr}
//	add_expr -> term      {("+"|"-") term}
//	term     -> factor    {("*"|"/") factor}
//	factor   -> <int> | <id> | "(" or_expr ")" | "-" factor
//
// Only add_expr is reachable from `let` initializers and assignment
// right-hand sides; or_expr (and everything above add_expr in the chain) is
// reachable only from an `if` guard. This asymmetry is deliberate: the
// language has no boolean value to store in a variable.

func (p *parser) parseLeftAssocLevel(
	next func() (ast.Expr, error),
	kinds ...lexer.TokenKind,
) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.currentIsAny(kinds...) {
		opTok := p.c.consume()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Token: opTok, Operator: opTok.Literal, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) currentIsAny(kinds ...lexer.TokenKind) bool {
	for _, k := range kinds {
		if p.c.check(k) {
			return true
		}
	}
	return false
}

func (p *parser) parseOrExpr() (ast.Expr, error) {
	return p.parseLeftAssocLevel(p.parseAndExpr, lexer.KindOpLogicalOr)
}

func (p *parser) parseAndExpr() (ast.Expr, error) {
	return p.parseLeftAssocLevel(p.parseEquExpr, lexer.KindOpLogicalAnd)
}

func (p *parser) parseEquExpr() (ast.Expr, error) {
	return p.parseLeftAssocLevel(p.parseRelExpr, lexer.KindOpEqual, lexer.KindOpNotEqual)
}

func (p *parser) parseRelExpr() (ast.Expr, error) {
	return p.parseLeftAssocLevel(p.parseAddExpr,
		lexer.KindOpGreaterThan, lexer.KindOpLessThan,
		lexer.KindOpGreaterEqual, lexer.KindOpLessEqual)
}

func (p *parser) parseAddExpr() (ast.Expr, error) {
	return p.parseLeftAssocLevel(p.parseTerm, lexer.KindOpPlus, lexer.KindOpMinus)
}

func (p *parser) parseTerm() (ast.Expr, error) {
	return p.parseLeftAssocLevel(p.parseFactor, lexer.KindOpMul, lexer.KindOpDiv)
}

// parseFactor parses an integer literal, an identifier reference, a
// parenthesized expression, or a right-associative unary minus.
func (p *parser) parseFactor() (ast.Expr, error) {
	if p.c.atEnd() {
		return nil, newError(p.c.current().Pos, ErrInvalidFactor, "expected an expression, found end of input")
	}

	tok := p.c.current()
	switch tok.Kind {
	case lexer.KindLiteralInt:
		p.c.consume()
		val, err := parseInt(tok.Literal)
		if err != nil {
			return nil, newError(tok.Pos, ErrInvalidFactor, "invalid integer literal `%s`", tok.Literal)
		}
		return &ast.Literal{Token: tok, Value: val}, nil

	case lexer.KindIdentifier:
		p.c.consume()
		return &ast.Var{Token: tok, Name: tok.Literal}, nil

	case lexer.KindOpenParen:
		p.c.consume()
		inner, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KindCloseParen, ErrMissingCloseParen, "expected `)` to close grouped expression"); err != nil {
			return nil, err
		}
		return inner, nil

	case lexer.KindOpMinus:
		p.c.consume()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnOp{Token: tok, Operator: "-", Operand: operand}, nil

	default:
		return nil, newError(tok.Pos, ErrInvalidFactor, "expected an expression, found `%s`", tok.Literal)
	}
}

func parseInt(literal string) (int64, error) {
	var v int64
	for i := 0; i < len(literal); i++ {
		c := literal[i]
		if c < '0' || c > '9' {
			return 0, errNotDigits
		}
		v = v*10 + int64(c-'0')
	}
	return v, nil
}

var errNotDigits = errors.New("not all digits")
