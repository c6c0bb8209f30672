package lexer

import "fmt"

// Error reports a fatal lexical error at a source position.
type Error struct {
	Message string
	Pos     Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s Error: %s", e.Pos, e.Message)
}

func newError(pos Position, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: pos}
}
