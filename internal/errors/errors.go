// Package errors renders any pipeline-stage failure (lexer, parser, or
// codegen) as a single diagnostic with source context and a caret pointing
// at the offending column, the way the CLI layer reports failures to the
// user.
package errors

import (
	"fmt"
	"strings"

	"github.com/tinylang/stackc/internal/codegen"
	"github.com/tinylang/stackc/internal/lexer"
	"github.com/tinylang/stackc/internal/parser"
	"github.com/tinylang/stackc/internal/toolchain"
)

// CompilerError is a position-anchored diagnostic with enough context
// (the originating source and, optionally, its filename) to render a
// source snippet and caret.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// NewCompilerError builds a CompilerError directly.
func NewCompilerError(pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// FromError classifies a lexer.Error, parser.Error, or codegen.Error into a
// CompilerError, attaching the source text the position refers into. Any
// other error is wrapped with a zero Position.
func FromError(err error, source, file string) *CompilerError {
	switch e := err.(type) {
	case *lexer.Error:
		return NewCompilerError(e.Pos, e.Message, source, file)
	case *parser.Error:
		return NewCompilerError(e.Pos, e.Message, source, file)
	case *codegen.Error:
		return NewCompilerError(e.Pos, fmt.Sprintf("%s: %s", e.Kind, e.Message), source, file)
	case *toolchain.Error:
		return NewCompilerError(lexer.Position{}, e.Error(), source, file)
	default:
		return NewCompilerError(lexer.Position{}, err.Error(), source, file)
	}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the header, a source snippet, a caret, and the message.
// If color is true, ANSI escapes highlight the caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	line, col := e.Pos.Row+1, e.Pos.Col+1
	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, line, col)
	} else {
		fmt.Fprintf(&sb, "Error at %d:%d\n", line, col)
	}

	if sourceLine := e.getSourceLine(line); sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// getSourceLine extracts a 1-indexed line from the source.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders a batch of errors, numbering them when there is more
// than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
