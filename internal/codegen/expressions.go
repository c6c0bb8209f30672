package codegen

import (
	"fmt"
	"strings"

	"github.com/tinylang/stackc/internal/ast"
)

func (g *generator) compileExpr(out *strings.Builder, expr ast.Expr) error {
	switch node := expr.(type) {
	case *ast.Literal:
		return g.compileLiteral(out, node)
	case *ast.Var:
		return g.compileVar(out, node)
	case *ast.UnOp:
		return g.compileUnOp(out, node)
	case *ast.BinOp:
		return g.compileBinOp(out, node)
	default:
		return newCodegenError(expr.Pos(), "unsupported expression node %T", expr)
	}
}

func (g *generator) compileLiteral(out *strings.Builder, lit *ast.Literal) error {
	fmt.Fprintf(out, "; --- Literal %d ---\n", lit.Value)
	fmt.Fprintf(out, "    mov rax, %d\n", lit.Value)
	out.WriteString("    push rax\n")
	return nil
}

func (g *generator) compileVar(out *strings.Builder, v *ast.Var) error {
	loc, ok := g.resolveLocal(v.Name)
	if !ok {
		return newSemanticError(v.Pos(), "undeclared variable %q", v.Name)
	}
	fmt.Fprintf(out, "    mov rax, [rbp%+d]\n", loc.offset)
	out.WriteString("    push rax\n")
	return nil
}

func (g *generator) compileUnOp(out *strings.Builder, u *ast.UnOp) error {
	if u.Operator != "-" {
		return newCodegenError(u.Pos(), "unsupported unary operator %q", u.Operator)
	}
	if err := g.compileExpr(out, u.Operand); err != nil {
		return err
	}
	out.WriteString("    pop rax\n")
	out.WriteString("    neg rax\n")
	out.WriteString("    push rax\n")
	return nil
}

func (g *generator) compileBinOp(out *strings.Builder, b *ast.BinOp) error {
	switch b.Operator {
	case "&&":
		return g.compileShortCircuitAnd(out, b)
	case "||":
		return g.compileShortCircuitOr(out, b)
	}

	if err := g.compileExpr(out, b.Left); err != nil {
		return err
	}
	if err := g.compileExpr(out, b.Right); err != nil {
		return err
	}
	fmt.Fprintf(out, "; --- BinOp::%s ---\n", binOpName(b.Operator))
	// Right was pushed last and so sits on top of the stack.
	out.WriteString("    pop rbx\n")
	out.WriteString("    pop rax\n")

	switch b.Operator {
	case "+":
		out.WriteString("    add rax, rbx\n")
	case "-":
		out.WriteString("    sub rax, rbx\n")
	case "*":
		out.WriteString("    imul rax, rbx\n")
	case "/":
		out.WriteString("    cqo\n")
		out.WriteString("    idiv rbx\n")
	case "==":
		emitCompare(out, "sete")
	case "~=":
		emitCompare(out, "setne")
	case ">":
		emitCompare(out, "setg")
	case "<":
		emitCompare(out, "setl")
	case ">=":
		emitCompare(out, "setge")
	case "<=":
		emitCompare(out, "setle")
	default:
		return newCodegenError(b.Pos(), "unsupported binary operator %q", b.Operator)
	}

	out.WriteString("    push rax\n")
	return nil
}

// binOpName renders a binary operator's source spelling as the PascalCase
// name used in assembly comment banners, matching the naming already used
// for token kinds (OpPlus, OpLogicalAnd, ...).
func binOpName(op string) string {
	names := map[string]string{
		"+": "OpPlus", "-": "OpMinus", "*": "OpMul", "/": "OpDiv",
		"==": "OpEqual", "~=": "OpNotEqual",
		">": "OpGreaterThan", "<": "OpLessThan",
		">=": "OpGreaterEqual", "<=": "OpLessEqual",
	}
	if name, ok := names[op]; ok {
		return name
	}
	return op
}

// emitCompare turns the rax/rbx comparison result into a 0/1 integer using
// the given set-on-condition mnemonic.
func emitCompare(out *strings.Builder, setcc string) {
	out.WriteString("    cmp rax, rbx\n")
	fmt.Fprintf(out, "    %s al\n", setcc)
	out.WriteString("    movzx rax, al\n")
}

func (g *generator) compileShortCircuitAnd(out *strings.Builder, b *ast.BinOp) error {
	falseLabel := g.nextLabel("andfalse")
	endLabel := g.nextLabel("andend")

	if err := g.compileExpr(out, b.Left); err != nil {
		return err
	}
	out.WriteString("    pop rax\n")
	out.WriteString("    cmp rax, 0\n")
	fmt.Fprintf(out, "    je %s\n", falseLabel)

	if err := g.compileExpr(out, b.Right); err != nil {
		return err
	}
	out.WriteString("    pop rax\n")
	out.WriteString("    cmp rax, 0\n")
	fmt.Fprintf(out, "    je %s\n", falseLabel)

	out.WriteString("    mov rax, 1\n")
	fmt.Fprintf(out, "    jmp %s\n", endLabel)
	fmt.Fprintf(out, "%s:\n", falseLabel)
	out.WriteString("    mov rax, 0\n")
	fmt.Fprintf(out, "%s:\n", endLabel)
	out.WriteString("    push rax\n")
	return nil
}

func (g *generator) compileShortCircuitOr(out *strings.Builder, b *ast.BinOp) error {
	trueLabel := g.nextLabel("ortrue")
	endLabel := g.nextLabel("orend")

	if err := g.compileExpr(out, b.Left); err != nil {
		return err
	}
	out.WriteString("    pop rax\n")
	out.WriteString("    cmp rax, 0\n")
	fmt.Fprintf(out, "    jne %s\n", trueLabel)

	if err := g.compileExpr(out, b.Right); err != nil {
		return err
	}
	out.WriteString("    pop rax\n")
	out.WriteString("    cmp rax, 0\n")
	fmt.Fprintf(out, "    jne %s\n", trueLabel)

	out.WriteString("    mov rax, 0\n")
	fmt.Fprintf(out, "    jmp %s\n", endLabel)
	fmt.Fprintf(out, "%s:\n", trueLabel)
	out.WriteString("    mov rax, 1\n")
	fmt.Fprintf(out, "%s:\n", endLabel)
	out.WriteString("    push rax\n")
	return nil
}
