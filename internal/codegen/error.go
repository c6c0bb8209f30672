package codegen

import (
	"fmt"

	"github.com/tinylang/stackc/internal/lexer"
)

// Kind distinguishes the two fatal error classes codegen can raise, matching
// the diagnostic taxonomy used elsewhere in the pipeline.
type Kind string

const (
	// KindSemantic covers undeclared identifiers, undeclared function
	// calls, and redeclaration within the same lexical scope.
	KindSemantic Kind = "Semantic"
	// KindCodegen covers internal inconsistencies: an AST node reaching
	// codegen in a position it should never occupy, or an operator with
	// no known lowering.
	KindCodegen Kind = "Codegen"
)

// Error is a fatal diagnostic raised while lowering the AST to assembly.
type Error struct {
	Message string
	Kind    Kind
	Pos     lexer.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s Error: %s", e.Pos, e.Kind, e.Message)
}

func newSemanticError(pos lexer.Position, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Kind: KindSemantic, Pos: pos}
}

func newCodegenError(pos lexer.Position, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Kind: KindCodegen, Pos: pos}
}
