package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinylang/stackc/internal/ast"
	"github.com/tinylang/stackc/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.Lex(src)
	require.NoError(t, err)
	prog, err := Parse(tokens)
	require.NoError(t, err)
	return prog
}

func TestParseMinimalProgram(t *testing.T) {
	prog := mustParse(t, "func main { exit 0; }")
	require.Len(t, prog.Funcs, 1)
	require.Equal(t, "main", prog.Funcs[0].Name)
	require.Len(t, prog.Funcs[0].Body, 1)

	exit, ok := prog.Funcs[0].Body[0].(*ast.Exit)
	require.True(t, ok)
	lit, ok := exit.Value.(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, int64(0), lit.Value)
}

func TestParseRequiresMain(t *testing.T) {
	tokens, err := lexer.Lex("func helper { exit 0; }")
	require.NoError(t, err)
	_, err = Parse(tokens)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ErrMissingMain, perr.Code)
}

func TestParseVarDeclWithoutInitializer(t *testing.T) {
	prog := mustParse(t, "func main { let x; exit x; }")
	decl, ok := prog.Funcs[0].Body[0].(*ast.VarDecl)
	require.True(t, ok)
	lit, ok := decl.Init.(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, int64(0), lit.Value)
}

func TestParseAssignVsCallDisambiguation(t *testing.T) {
	prog := mustParse(t, "func helper { exit 0; } func main { helper(); exit 0; }")
	call, ok := prog.Funcs[1].Body[0].(*ast.FuncCall)
	require.True(t, ok)
	require.Equal(t, "helper", call.Name)
}

func TestParseAssignment(t *testing.T) {
	prog := mustParse(t, "func main { let x = 1; x = 2; exit x; }")
	assign, ok := prog.Funcs[0].Body[1].(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "x", assign.Name)
}

func TestParseAddExprLeftAssociative(t *testing.T) {
	prog := mustParse(t, "func main { exit 1 - 2 - 3; }")
	exit := prog.Funcs[0].Body[0].(*ast.Exit)

	outer, ok := exit.Value.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "-", outer.Operator)

	inner, ok := outer.Left.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "-", inner.Operator)

	require.Equal(t, int64(1), inner.Left.(*ast.Literal).Value)
	require.Equal(t, int64(2), inner.Right.(*ast.Literal).Value)
	require.Equal(t, int64(3), outer.Right.(*ast.Literal).Value)
}

func TestParseMulBindsTighterThanAdd(t *testing.T) {
	prog := mustParse(t, "func main { exit 1 + 2 * 3; }")
	exit := prog.Funcs[0].Body[0].(*ast.Exit)

	add, ok := exit.Value.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "+", add.Operator)
	require.Equal(t, int64(1), add.Left.(*ast.Literal).Value)

	mul, ok := add.Right.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "*", mul.Operator)
}

func TestParseUnaryMinusIsRightAssociative(t *testing.T) {
	prog := mustParse(t, "func main { exit - - 1; }")
	exit := prog.Funcs[0].Body[0].(*ast.Exit)

	outer, ok := exit.Value.(*ast.UnOp)
	require.True(t, ok)
	inner, ok := outer.Operand.(*ast.UnOp)
	require.True(t, ok)
	require.Equal(t, int64(1), inner.Operand.(*ast.Literal).Value)
}

func TestParseGroupedExpressionResetsPrecedence(t *testing.T) {
	prog := mustParse(t, "func main { exit (1 + 2) * 3; }")
	exit := prog.Funcs[0].Body[0].(*ast.Exit)

	mul, ok := exit.Value.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "*", mul.Operator)

	add, ok := mul.Left.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "+", add.Operator)
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, "func main { if 1 > 0 { exit 1; } else { exit 0; } }")
	cond, ok := prog.Funcs[0].Body[0].(*ast.Conditional)
	require.True(t, ok)
	require.NotNil(t, cond.Else)

	guard, ok := cond.Guard.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, ">", guard.Operator)
}

func TestParseIfWithoutElse(t *testing.T) {
	prog := mustParse(t, "func main { if 1 { exit 1; } }")
	cond := prog.Funcs[0].Body[0].(*ast.Conditional)
	require.Nil(t, cond.Else)
}

func TestParseIfGuardAllowsLogicalOperators(t *testing.T) {
	prog := mustParse(t, "func main { if 1 > 0 && 2 > 1 { exit 1; } }")
	cond := prog.Funcs[0].Body[0].(*ast.Conditional)
	guard, ok := cond.Guard.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "&&", guard.Operator)
}

func TestParseRejectsMissingSemicolon(t *testing.T) {
	tokens, err := lexer.Lex("func main { exit 0 }")
	require.NoError(t, err)
	_, err = Parse(tokens)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ErrMissingSemicolon, perr.Code)
}

func TestParseRejectsMismatchedBraces(t *testing.T) {
	tokens, err := lexer.Lex("func main { exit 0;")
	require.NoError(t, err)
	_, err = Parse(tokens)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ErrMissingCloseScope, perr.Code)
}

func TestParseRejectsEmptyProgram(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, ErrEmptyProgram, perr.Code)
}

func TestParseRejectsLetInIfGuardContextOnlyForm(t *testing.T) {
	// Relational operators are legal only as an `if` guard, never on the
	// right-hand side of `let`/assignment: parsing `let x = 1 > 0;` must
	// stop after `1`, then fail on the unconsumed `>`.
	tokens, err := lexer.Lex("func main { let x = 1 > 0; exit x; }")
	require.NoError(t, err)
	_, err = Parse(tokens)
	require.Error(t, err)
}
