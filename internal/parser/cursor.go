package parser

import "github.com/tinylang/stackc/internal/lexer"

// cursor is a mutable navigation abstraction over a fully materialized
// token stream. Unlike the reference cursor this is adapted from, stackc's
// lexer runs to completion before parsing begins, so there is no lazy
// fetch-from-lexer step to hide: cursor only needs to track an index into
// an already-complete slice.
type cursor struct {
	tokens []lexer.Token
	pos    int
}

func newCursor(tokens []lexer.Token) *cursor {
	return &cursor{tokens: tokens}
}

// current returns the token at the cursor, or the stream's final token
// (expected to be an implicit end-of-input marker check via atEnd) once
// the cursor has run past the end.
func (c *cursor) current() lexer.Token {
	if c.pos >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[c.pos]
}

// previous returns the most recently consumed token. Calling it before any
// advance has happened returns the zero Token.
func (c *cursor) previous() lexer.Token {
	if c.pos == 0 {
		return lexer.Token{}
	}
	idx := c.pos - 1
	if idx >= len(c.tokens) {
		idx = len(c.tokens) - 1
	}
	return c.tokens[idx]
}

// consume returns the current token and advances the cursor past it.
func (c *cursor) consume() lexer.Token {
	tok := c.current()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return tok
}

// atEnd reports whether the cursor has consumed every token in the stream.
func (c *cursor) atEnd() bool {
	return c.pos >= len(c.tokens)
}

// check reports whether the current token has the given kind, without
// consuming it.
func (c *cursor) check(kind lexer.TokenKind) bool {
	return !c.atEnd() && c.current().Kind == kind
}

// match consumes and returns true if the current token has the given kind;
// otherwise it leaves the cursor untouched and returns false.
func (c *cursor) match(kind lexer.TokenKind) bool {
	if c.check(kind) {
		c.consume()
		return true
	}
	return false
}
