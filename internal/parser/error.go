package parser

import (
	"fmt"

	"github.com/tinylang/stackc/internal/lexer"
)

// Error codes for programmatic error handling, mirroring the granularity
// the reference parser's error catalog uses.
const (
	ErrUnexpectedToken   = "E_UNEXPECTED_TOKEN"
	ErrMissingSemicolon  = "E_MISSING_SEMICOLON"
	ErrMissingOpenScope  = "E_MISSING_OPEN_SCOPE"
	ErrMissingCloseScope = "E_MISSING_CLOSE_SCOPE"
	ErrMissingCloseParen = "E_MISSING_RPAREN"
	ErrExpectedIdent     = "E_EXPECTED_IDENT"
	ErrInvalidFactor     = "E_INVALID_FACTOR"
	ErrEmptyProgram      = "E_EMPTY_PROGRAM"
	ErrMissingMain       = "E_MISSING_MAIN"
)

// Error is a fatal parse-time diagnostic.
type Error struct {
	Message string
	Code    string
	Pos     lexer.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s Error: %s", e.Pos, e.Message)
}

func newError(pos lexer.Position, code, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Code: code, Pos: pos}
}
