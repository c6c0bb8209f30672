package parser

import (
	"github.com/tinylang/stackc/internal/ast"
	"github.com/tinylang/stackc/internal/lexer"
)

// parseStatement parses dump, exit, call, assign and if/else. `let`
// declarations are handled one level up, by parseBlockItem, since they are
// not statements in the grammar's own terms.
func (p *parser) parseStatement() (ast.Stmt, error) {
	switch p.c.current().Kind {
	case lexer.KindKeywordDebugDump:
		return p.parseDebugDump()
	case lexer.KindKeywordExit:
		return p.parseExit()
	case lexer.KindKeywordIf:
		return p.parseConditional()
	case lexer.KindIdentifier:
		return p.parseAssignOrCall()
	default:
		cur := p.c.current()
		return nil, newError(cur.Pos, ErrUnexpectedToken, "expected a statement, found `%s`", cur.Literal)
	}
}

func (p *parser) parseDebugDump() (ast.Stmt, error) {
	kwTok := p.c.consume() // `dump`

	value, err := p.parseAddExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.KindEnd, ErrMissingSemicolon, "expected `;` after `dump`"); err != nil {
		return nil, err
	}

	return &ast.DebugDump{Token: kwTok, Value: value}, nil
}

func (p *parser) parseExit() (ast.Stmt, error) {
	kwTok := p.c.consume() // `exit`

	value, err := p.parseAddExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.KindEnd, ErrMissingSemicolon, "expected `;` after `exit`"); err != nil {
		return nil, err
	}

	return &ast.Exit{Token: kwTok, Value: value}, nil
}

// parseAssignOrCall disambiguates `<id> = add_expr ;` from `<id> ( ) ;` by
// looking one token past the identifier.
func (p *parser) parseAssignOrCall() (ast.Stmt, error) {
	nameTok := p.c.consume()

	if p.c.match(lexer.KindOpenParen) {
		if _, err := p.expect(lexer.KindCloseParen, ErrMissingCloseParen, "expected `)` after `(`"); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KindEnd, ErrMissingSemicolon, "expected `;` after function call"); err != nil {
			return nil, err
		}
		return &ast.FuncCall{Token: nameTok, Name: nameTok.Literal}, nil
	}

	if _, err := p.expect(lexer.KindOpAssign, ErrUnexpectedToken, "expected `=` or `(` after identifier"); err != nil {
		return nil, err
	}

	value, err := p.parseAddExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.KindEnd, ErrMissingSemicolon, "expected `;` after assignment"); err != nil {
		return nil, err
	}

	return &ast.Assign{Token: nameTok, Name: nameTok.Literal, Value: value}, nil
}

func (p *parser) parseConditional() (ast.Stmt, error) {
	kwTok := p.c.consume() // `if`

	guard, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}

	thenTok, err := p.expect(lexer.KindOpenScope, ErrMissingOpenScope, "expected `{` after `if` guard")
	if err != nil {
		return nil, err
	}
	thenItems, err := p.parseBlockItems()
	if err != nil {
		return nil, err
	}
	then := &ast.Block{Token: thenTok, Items: thenItems}

	var elseBlock *ast.Block
	if p.c.match(lexer.KindKeywordElse) {
		elseTok, err := p.expect(lexer.KindOpenScope, ErrMissingOpenScope, "expected `{` after `else`")
		if err != nil {
			return nil, err
		}
		elseItems, err := p.parseBlockItems()
		if err != nil {
			return nil, err
		}
		elseBlock = &ast.Block{Token: elseTok, Items: elseItems}
	}

	return &ast.Conditional{Token: kwTok, Guard: guard, Then: then, Else: elseBlock}, nil
}
